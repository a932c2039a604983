// Package pagination implements identity-based cursor paging over an ordered
// key sequence.
//
// The cursor is the key of the last item of the previous page, so deleting an
// item that was already returned never skips or repeats later items. A cursor
// that does not name a key of the current view is rejected instead of being
// reinterpreted as the start or the end of the sequence.
package pagination

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// ErrInvalidCursor is returned by Page when the cursor is not a key of the
// view it is resolved against.
var ErrInvalidCursor = errors.New("cursor does not resolve to a position in the filtered view")

// Page slices keys starting right after cursor, taking at most limit keys.
// keys must already be filtered and in canonical order. next is the last key of
// page, or empty when page reaches the end of keys.
func Page(keys []string, cursor string, limit int) (page []string, next string, err error) {
	if limit < 0 {
		limit = 0
	}

	start := 0
	if cursor != "" {
		idx := slices.Index(keys, cursor)
		if idx < 0 {
			return nil, "", ErrInvalidCursor
		}
		start = idx + 1
	}

	end := min(start+limit, len(keys))
	page = slices.Clone(keys[start:end])

	if end < len(keys) && len(page) > 0 {
		next = page[len(page)-1]
	}

	return page, next, nil
}

// FoldKey returns the case-insensitive comparison key of s.
func FoldKey(s string) string {
	return cases.Fold().String(s)
}

// PrefixMatcher reports whether a folded key starts with a title prefix.
type PrefixMatcher struct {
	prefix string
}

// NewPrefixMatcher trims and folds prefix. A blank prefix matches everything.
func NewPrefixMatcher(prefix string) PrefixMatcher {
	return PrefixMatcher{prefix: FoldKey(strings.TrimSpace(prefix))}
}

func (m PrefixMatcher) MatchAll() bool {
	return m.prefix == ""
}

// Match expects key to be produced by FoldKey.
func (m PrefixMatcher) Match(key string) bool {
	return strings.HasPrefix(key, m.prefix)
}
