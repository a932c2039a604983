package memory

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchids/plays-registry/internal/domain"
)

var scenarioTitles = []string{"Alpha Cut", "Alpha Spain", "Bravo Ghost", "Charlie Spain", "Delta Split"}

func seedPlays(t *testing.T, store *PlayStore, titles ...string) []*domain.Play {
	t.Helper()

	plays := make([]*domain.Play, 0, len(titles))
	for i, title := range titles {
		plays = append(plays, store.Create(title, fmt.Sprintf("https://cdn.example.com/clip-%d.mp4", i)))
	}
	return plays
}

func titlesOf(plays []*domain.Play) []string {
	titles := make([]string, 0, len(plays))
	for _, p := range plays {
		titles = append(titles, p.Title)
	}
	return titles
}

func idsOf(plays []*domain.Play) []string {
	ids := make([]string, 0, len(plays))
	for _, p := range plays {
		ids = append(ids, p.ID)
	}
	return ids
}

func listAll(t *testing.T, store *PlayStore, prefix string, limit int) []*domain.Play {
	t.Helper()

	var all []*domain.Play
	cursor := ""
	for {
		page, err := store.List(domain.ListQuery{Cursor: cursor, Limit: limit, TitlePrefix: prefix})
		require.NoError(t, err)
		all = append(all, page.Plays...)
		if !page.HasMore() {
			return all
		}
		cursor = page.NextCursor
	}
}

func TestPlayStore_CreateAndGet(t *testing.T) {
	store := NewPlayStore()

	play := store.Create("Spain PnR", "https://example.com/clip.mp4")
	require.NotNil(t, play)

	_, err := uuid.Parse(play.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spain PnR", play.Title)
	assert.Equal(t, "https://example.com/clip.mp4", play.VideoPath)
	assert.False(t, play.CreatedAt.IsZero())

	found, ok := store.Get(play.ID)
	require.True(t, ok)
	assert.Equal(t, *play, *found)
	assert.Equal(t, 1, store.Len())
}

func TestPlayStore_GetReturnsCopy(t *testing.T) {
	store := NewPlayStore()
	play := store.Create("Original", "/videos/a.mp4")

	found, ok := store.Get(play.ID)
	require.True(t, ok)
	found.Title = "Changed"

	again, ok := store.Get(play.ID)
	require.True(t, ok)
	assert.Equal(t, "Original", again.Title)
}

func TestPlayStore_GetMissing(t *testing.T) {
	store := NewPlayStore()

	play, ok := store.Get("00000000-0000-0000-0000-000000000000")
	assert.False(t, ok)
	assert.Nil(t, play)
}

func TestPlayStore_IDsAreUnique(t *testing.T) {
	store := NewPlayStore()
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		p := store.Create("Clip", "./clip.mp4")
		require.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestPlayStore_Delete(t *testing.T) {
	store := NewPlayStore()
	plays := seedPlays(t, store, scenarioTitles...)

	assert.True(t, store.Delete(plays[1].ID))
	assert.False(t, store.Delete(plays[1].ID), "second delete reports absence")
	assert.False(t, store.Delete("never-existed"))

	_, ok := store.Get(plays[1].ID)
	assert.False(t, ok)

	page, err := store.List(domain.ListQuery{Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha Cut", "Bravo Ghost", "Charlie Spain", "Delta Split"}, titlesOf(page.Plays))
	assert.NotContains(t, idsOf(page.Plays), plays[1].ID)
	assert.False(t, page.HasMore())
}

func TestPlayStore_ListPaginationScenario(t *testing.T) {
	store := NewPlayStore()
	plays := seedPlays(t, store, scenarioTitles...)

	page1, err := store.List(domain.ListQuery{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha Cut", "Alpha Spain"}, titlesOf(page1.Plays))
	assert.Equal(t, plays[1].ID, page1.NextCursor)

	page2, err := store.List(domain.ListQuery{Limit: 2, Cursor: page1.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bravo Ghost", "Charlie Spain"}, titlesOf(page2.Plays))
	assert.Equal(t, plays[3].ID, page2.NextCursor)

	page3, err := store.List(domain.ListQuery{Limit: 2, Cursor: page2.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"Delta Split"}, titlesOf(page3.Plays))
	assert.Empty(t, page3.NextCursor)
}

func TestPlayStore_ListPrefixFilter(t *testing.T) {
	store := NewPlayStore()
	plays := seedPlays(t, store, scenarioTitles...)

	page, err := store.List(domain.ListQuery{Limit: 10, TitlePrefix: "  alpha  "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha Cut", "Alpha Spain"}, titlesOf(page.Plays))
	assert.Empty(t, page.NextCursor)

	page, err = store.List(domain.ListQuery{Limit: 1, TitlePrefix: "ALPHA"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha Cut"}, titlesOf(page.Plays))
	assert.Equal(t, plays[0].ID, page.NextCursor)

	page, err = store.List(domain.ListQuery{Limit: 1, TitlePrefix: "alpha", Cursor: page.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha Spain"}, titlesOf(page.Plays))
	assert.Empty(t, page.NextCursor)
}

func TestPlayStore_ListPrefixMatchesNothing(t *testing.T) {
	store := NewPlayStore()
	seedPlays(t, store, scenarioTitles...)

	page, err := store.List(domain.ListQuery{Limit: 10, TitlePrefix: "zulu"})
	require.NoError(t, err)
	assert.Empty(t, page.Plays)
	assert.Empty(t, page.NextCursor)
}

func TestPlayStore_ListRejectsUnknownCursor(t *testing.T) {
	store := NewPlayStore()
	seedPlays(t, store, scenarioTitles...)

	_, err := store.List(domain.ListQuery{Limit: 2, Cursor: uuid.NewString()})
	assert.ErrorIs(t, err, domain.ErrInvalidCursor)
}

func TestPlayStore_ListRejectsDeletedCursor(t *testing.T) {
	store := NewPlayStore()
	plays := seedPlays(t, store, scenarioTitles...)

	require.True(t, store.Delete(plays[2].ID))

	_, err := store.List(domain.ListQuery{Limit: 2, Cursor: plays[2].ID})
	assert.ErrorIs(t, err, domain.ErrInvalidCursor)
}

func TestPlayStore_ListRejectsCursorOutsideFilteredView(t *testing.T) {
	store := NewPlayStore()
	plays := seedPlays(t, store, scenarioTitles...)

	// "Bravo Ghost" exists but does not match the prefix.
	_, err := store.List(domain.ListQuery{Limit: 2, Cursor: plays[2].ID, TitlePrefix: "alpha"})
	assert.ErrorIs(t, err, domain.ErrInvalidCursor)

	// The same cursor is fine without the filter.
	page, err := store.List(domain.ListQuery{Limit: 2, Cursor: plays[2].ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Charlie Spain", "Delta Split"}, titlesOf(page.Plays))
}

func TestPlayStore_ListCursorOnLastItem(t *testing.T) {
	store := NewPlayStore()
	plays := seedPlays(t, store, scenarioTitles...)

	page, err := store.List(domain.ListQuery{Limit: 2, Cursor: plays[4].ID})
	require.NoError(t, err)
	assert.Empty(t, page.Plays)
	assert.Empty(t, page.NextCursor)
}

func TestPlayStore_ListZeroAndNegativeLimit(t *testing.T) {
	store := NewPlayStore()
	plays := seedPlays(t, store, scenarioTitles...)

	for _, limit := range []int{0, -1} {
		page, err := store.List(domain.ListQuery{Limit: limit})
		require.NoError(t, err)
		assert.Empty(t, page.Plays)
		assert.Empty(t, page.NextCursor)

		page, err = store.List(domain.ListQuery{Limit: limit, Cursor: plays[0].ID})
		require.NoError(t, err)
		assert.Empty(t, page.Plays)
		assert.Empty(t, page.NextCursor)
	}

	empty := NewPlayStore()
	page, err := empty.List(domain.ListQuery{Limit: 0})
	require.NoError(t, err)
	assert.Empty(t, page.Plays)
	assert.Empty(t, page.NextCursor)
}

func TestPlayStore_DeleteAlreadyReturnedKeepsPaginationStable(t *testing.T) {
	store := NewPlayStore()
	plays := seedPlays(t, store, scenarioTitles...)

	page1, err := store.List(domain.ListQuery{Limit: 2})
	require.NoError(t, err)

	// Removing an item from the first page must not shift the second.
	require.True(t, store.Delete(plays[0].ID))

	page2, err := store.List(domain.ListQuery{Limit: 2, Cursor: page1.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bravo Ghost", "Charlie Spain"}, titlesOf(page2.Plays))
}

func TestPlayStore_OrderInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	store := NewPlayStore()

	var expected []string
	for i := 0; i < 300; i++ {
		if len(expected) > 0 && rng.Intn(3) == 0 {
			idx := rng.Intn(len(expected))
			require.True(t, store.Delete(expected[idx]))
			expected = append(expected[:idx], expected[idx+1:]...)
			continue
		}
		p := store.Create(fmt.Sprintf("Clip %03d", i), "/media/clip.mp4")
		expected = append(expected, p.ID)
	}

	page, err := store.List(domain.ListQuery{Limit: len(expected) + 1})
	require.NoError(t, err)
	assert.Equal(t, expected, idsOf(page.Plays))
	assert.Equal(t, len(expected), store.Len())
}

func TestPlayStore_PaginationCompleteness(t *testing.T) {
	store := NewPlayStore()
	titles := []string{
		"Alpha 1", "bravo 1", "ALPHA 2", "Charlie", "alpha 3",
		"Bravo 2", "Alpha 4", "Delta", "alphabet", "Echo",
	}
	seedPlays(t, store, titles...)

	for _, prefix := range []string{"", "alpha", "bravo", " b ", "zulu"} {
		full, err := store.List(domain.ListQuery{Limit: len(titles), TitlePrefix: prefix})
		require.NoError(t, err)

		for limit := 1; limit <= 4; limit++ {
			got := listAll(t, store, prefix, limit)
			assert.Equal(t, idsOf(full.Plays), idsOf(got), "prefix %q limit %d", prefix, limit)
		}
	}
}

func TestPlayStore_DeletedNeverListedAgain(t *testing.T) {
	store := NewPlayStore()
	plays := seedPlays(t, store, scenarioTitles...)
	require.True(t, store.Delete(plays[0].ID))

	for _, prefix := range []string{"", "alpha", "Alpha Cut"} {
		for _, p := range listAll(t, store, prefix, 1) {
			assert.NotEqual(t, plays[0].ID, p.ID)
		}
	}
}

func TestPlayStore_Clear(t *testing.T) {
	store := NewPlayStore()
	plays := seedPlays(t, store, scenarioTitles...)

	store.Clear()

	assert.Equal(t, 0, store.Len())
	_, ok := store.Get(plays[0].ID)
	assert.False(t, ok)

	page, err := store.List(domain.ListQuery{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Plays)

	_, err = store.List(domain.ListQuery{Limit: 10, Cursor: plays[0].ID})
	assert.ErrorIs(t, err, domain.ErrInvalidCursor)

	again := store.Create("After Clear", "../clip.mp4")
	page, err = store.List(domain.ListQuery{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{again.ID}, idsOf(page.Plays))
}

func TestPlayStore_ConcurrentAccess(t *testing.T) {
	store := NewPlayStore()
	seedPlays(t, store, scenarioTitles...)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				p := store.Create(fmt.Sprintf("Worker %d clip %d", w, i), "/tmp/clip.mp4")
				if i%2 == 0 {
					store.Delete(p.ID)
				}
				_, _ = store.List(domain.ListQuery{Limit: 5, TitlePrefix: "worker"})
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, len(scenarioTitles)+8*25, store.Len())
	all := listAll(t, store, "", 7)
	assert.Len(t, all, store.Len())
}
