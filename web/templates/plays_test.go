package templates

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchids/plays-registry/internal/domain"
)

func TestPlayListPage_EscapesTitles(t *testing.T) {
	page := &domain.PlayPage{
		Plays: []*domain.Play{
			{ID: "id-1", Title: "<script>alert(1)</script>"},
			{ID: "id-2", Title: "Bravo & Co"},
		},
		NextCursor: "id-2",
	}

	var buf bytes.Buffer
	require.NoError(t, PlayListPage(page, "b").Render(context.Background(), &buf))
	html := buf.String()

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Bravo &amp; Co")
	assert.Contains(t, html, `href="/plays/id-1"`)
	assert.Contains(t, html, "cursor=id-2")
	assert.Contains(t, html, "title_prefix=b")
}

func TestPlayListPage_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PlayListPage(&domain.PlayPage{}, "").Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "No plays found.")
	assert.NotContains(t, buf.String(), "Next page")
}

func TestPlayPage(t *testing.T) {
	play := &domain.Play{
		ID:        "id-1",
		Title:     "Spain PnR",
		VideoPath: "https://example.com/clip.mp4",
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, PlayPage(play).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "<h1>Spain PnR</h1>")
	assert.Contains(t, buf.String(), "https://example.com/clip.mp4")
	assert.Contains(t, buf.String(), "2025-01-02 03:04:05 UTC")
}

func TestMessagePage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MessagePage(404, "Play <missing>").Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, "<title>404</title>")
	assert.Contains(t, html, "<h1>Play &lt;missing&gt;</h1>")
	assert.Contains(t, html, `<a href="/">All plays</a>`)
}
