package domain

import "testing"

func TestWatchHistoryEntryFallbacks(t *testing.T) {
	e := WatchHistoryEntry{FileID: "gone", ProgressSeconds: 10, DurationSeconds: 100}

	if got := e.DisplayName(); got != FallbackName {
		t.Errorf("DisplayName() = %q, want %q", got, FallbackName)
	}
	if got := e.MIMEType(); got != FallbackMIMEType {
		t.Errorf("MIMEType() = %q, want %q", got, FallbackMIMEType)
	}
}

func TestWatchHistoryEntryDisplayItem(t *testing.T) {
	e := WatchHistoryEntry{
		FileID:          "v1",
		ProgressSeconds: 30,
		DurationSeconds: 120,
		CachedName:      "lecture.mp4",
		CachedMIMEType:  "video/mp4",
		CachedSizeLabel: "700 MB",
	}

	item := e.DisplayItem()

	if item.ID != "v1" || item.PlayID != "v1" {
		t.Errorf("identity = %q/%q, want v1/v1", item.ID, item.PlayID)
	}
	if item.Name != "lecture.mp4" {
		t.Errorf("Name = %q, want %q", item.Name, "lecture.mp4")
	}
	if item.Kind != KindVideo {
		t.Errorf("Kind = %v, want %v", item.Kind, KindVideo)
	}
	if !item.FromHistory || !item.HasProgress {
		t.Error("history projection must carry FromHistory and HasProgress")
	}
	if got := item.ProgressPercent(); got != 25 {
		t.Errorf("ProgressPercent() = %d, want 25", got)
	}
}
