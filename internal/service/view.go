package service

import (
	"cloudstream/internal/domain"
)

// ComposeDisplayList merges the current view mode, remote listing, watch
// history, and search refinement into the ordered list of rows actually
// rendered. Pure function: identical inputs yield an identical ordered list.
//
// In History mode the list is projected purely from cached history
// metadata; the remote listing and search state are ignored, so history
// renders offline and against stale listings. In Browse/Shared mode the
// remote listing drives the list, optionally narrowed to refinedIDs, with
// live watch progress attached per item.
func ComposeDisplayList(
	mode domain.ViewMode,
	remote []domain.FileRecord,
	history []domain.WatchHistoryEntry,
	refinedIDs map[string]struct{}, // nil means "no refinement, show all"
) []domain.DisplayItem {
	if mode == domain.ViewHistory {
		items := make([]domain.DisplayItem, 0, len(history))
		for _, e := range history {
			items = append(items, e.DisplayItem())
		}
		return items
	}

	progress := make(map[string]domain.WatchHistoryEntry, len(history))
	for _, e := range history {
		progress[e.FileID] = e
	}

	items := make([]domain.DisplayItem, 0, len(remote))
	for _, rec := range remote {
		if refinedIDs != nil {
			if _, ok := refinedIDs[rec.ID]; !ok {
				continue
			}
		}
		items = append(items, displayItem(rec, progress))
	}
	return items
}

// displayItem builds the row view model for a remote record. Semantic
// fields resolve through a shortcut target; display fields stay the
// record's own. Progress is looked up under the effective id, which is
// where playback records it.
func displayItem(rec domain.FileRecord, progress map[string]domain.WatchHistoryEntry) domain.DisplayItem {
	item := domain.DisplayItem{
		ID:           rec.ID,
		PlayID:       rec.EffectiveID(),
		Name:         rec.Name,
		Kind:         rec.EffectiveKind(),
		MIMEType:     rec.EffectiveMIMEType(),
		ThumbnailRef: rec.ThumbnailRef,
		SizeLabel:    rec.SizeLabel,
	}

	if e, ok := progress[item.PlayID]; ok {
		item.HasProgress = true
		item.ProgressSeconds = e.ProgressSeconds
		item.DurationSeconds = e.DurationSeconds
	}

	return item
}
