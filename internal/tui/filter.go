package tui

import (
	"strings"

	"cloudstream/internal/domain"
	"github.com/sahilm/fuzzy"
)

// filterItems fuzzy-matches the visible display list against a local filter
// query and returns the indexes of matching rows, best match first. This is
// a purely local narrowing of whatever the composer produced; it never
// touches the remote search state.
func filterItems(items []domain.DisplayItem, query string) []int {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		idx := make([]int, len(items))
		for i := range items {
			idx[i] = i
		}
		return idx
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = strings.ToLower(item.Name)
	}

	matches := fuzzy.Find(query, names)

	idx := make([]int, len(matches))
	for i, match := range matches {
		idx[i] = match.Index
	}
	return idx
}
