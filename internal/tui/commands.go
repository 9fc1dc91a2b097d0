package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cloudstream/internal/domain"
)

const remoteTimeout = 30 * time.Second

// loadListingCmd fetches the listing for the current navigation position.
// A navigation triggered while a previous listing is in flight is not
// cancelled; the later reply wins by carrying the folder id it was issued
// for, and stale replies are dropped in Update.
func (m *Model) loadListingCmd(mode domain.ViewMode, folderID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()

		var (
			records []domain.FileRecord
			err     error
		)
		if mode == domain.ViewShared {
			records, err = m.repo.ListShared(ctx)
		} else {
			records, err = m.repo.ListChildren(ctx, folderID)
		}
		if err != nil {
			return ErrMsg{Err: err, Context: "listing"}
		}
		return ListingLoadedMsg{FolderID: folderID, Mode: mode, Records: records}
	}
}

// runSearchCmd executes the smart search.
func (m *Model) runSearchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()

		state, err := m.search.RunSearch(ctx, query)
		if err != nil {
			return ErrMsg{Err: err, Context: "search"}
		}
		return SearchDoneMsg{State: state}
	}
}

// loadQuotaCmd fetches the storage quota for the root sidebar stat.
func (m *Model) loadQuotaCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()

		quota, err := m.repo.Quota(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "quota"}
		}
		return QuotaLoadedMsg{Quota: quota}
	}
}

// playCmd resolves the record behind a display row and launches playback.
func (m *Model) playCmd(item domain.DisplayItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()

		rec, ok := m.recordFor(item.ID)
		if !ok {
			// History rows may reference files no longer listed; play
			// straight from the cached identity.
			rec = domain.FileRecord{ID: item.PlayID, Name: item.Name, MIMEType: item.MIMEType}
		}
		if err := m.playback.Play(ctx, rec); err != nil {
			return ErrMsg{Err: err, Context: "playback"}
		}
		return PlaybackStartedMsg{Item: item}
	}
}
