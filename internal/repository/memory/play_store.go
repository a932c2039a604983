package memory

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/orchids/plays-registry/internal/domain"
	"github.com/orchids/plays-registry/internal/pagination"
)

type entry struct {
	play     domain.Play
	titleKey string
}

// PlayStore keeps plays in insertion order. Deleting a play never reorders the
// remaining ones.
type PlayStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
	order   []string
}

func NewPlayStore() *PlayStore {
	return &PlayStore{
		entries: make(map[string]*entry),
	}
}

func (s *PlayStore) Create(title, videoPath string) *domain.Play {
	play := domain.NewPlay(title, videoPath)
	e := &entry{
		play:     *play,
		titleKey: pagination.FoldKey(title),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[play.ID] = e
	s.order = append(s.order, play.ID)

	return play
}

func (s *PlayStore) Get(id string) (*domain.Play, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	play := e.play
	return &play, true
}

func (s *PlayStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return false
	}
	delete(s.entries, id)

	if idx := slices.Index(s.order, id); idx >= 0 {
		s.order = slices.Delete(s.order, idx, idx+1)
	}

	return true
}

// List filters and slices under a single read lock so that the view the
// cursor is resolved against is the view the page is cut from.
func (s *PlayStore) List(query domain.ListQuery) (*domain.PlayPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matcher := pagination.NewPrefixMatcher(query.TitlePrefix)

	view := s.order
	if !matcher.MatchAll() {
		view = make([]string, 0, len(s.order))
		for _, id := range s.order {
			if matcher.Match(s.entries[id].titleKey) {
				view = append(view, id)
			}
		}
	}

	ids, next, err := pagination.Page(view, query.Cursor, query.Limit)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCursor, query.Cursor)
		}
		return nil, err
	}

	plays := make([]*domain.Play, 0, len(ids))
	for _, id := range ids {
		play := s.entries[id].play
		plays = append(plays, &play)
	}

	return &domain.PlayPage{
		Plays:      plays,
		NextCursor: next,
	}, nil
}

func (s *PlayStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

// Clear drops every play. Intended for test isolation only.
func (s *PlayStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*entry)
	s.order = nil
}
