package domain

import (
	"time"

	"github.com/google/uuid"
)

type Play struct {
	ID        string
	Title     string
	VideoPath string
	CreatedAt time.Time
}

func NewPlay(title, videoPath string) *Play {
	return &Play{
		ID:        uuid.NewString(),
		Title:     title,
		VideoPath: videoPath,
		CreatedAt: time.Now().UTC(),
	}
}

func (p *Play) Validate() error {
	if p.Title == "" {
		return ErrInvalidTitle
	}
	if p.VideoPath == "" {
		return ErrInvalidVideoPath
	}
	return nil
}

// ListQuery selects a page of the filtered view. An empty Cursor starts at the
// beginning; an empty TitlePrefix matches every play.
type ListQuery struct {
	Cursor      string
	Limit       int
	TitlePrefix string
}

// PlayPage is one page of a listing. NextCursor is empty once the filtered view
// is exhausted.
type PlayPage struct {
	Plays      []*Play
	NextCursor string
}

func (p *PlayPage) HasMore() bool {
	return p.NextCursor != ""
}

type PlayStats struct {
	PlayID     string
	TotalViews int64
	TodayViews int64
	HourViews  int64
}
