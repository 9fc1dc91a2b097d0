package tui

import (
	"cloudstream/internal/domain"
	"cloudstream/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ListingLoadedMsg carries a fresh remote listing for a folder or the
// shared view.
type ListingLoadedMsg struct {
	FolderID string
	Mode     domain.ViewMode
	Records  []domain.FileRecord
}

// SearchDoneMsg carries the outcome of a smart search.
type SearchDoneMsg struct {
	State service.SearchState
}

// QuotaLoadedMsg carries the storage quota for the sidebar stat.
type QuotaLoadedMsg struct {
	Quota *domain.Quota
}

// PlaybackStartedMsg signals that the external player was launched.
type PlaybackStartedMsg struct {
	Item domain.DisplayItem
}
