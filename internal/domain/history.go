package domain

// Fallback display metadata for history entries whose originating remote
// file was never seen or has vanished. An entry must always be renderable.
const (
	FallbackName     = "Unknown Video"
	FallbackMIMEType = "video/mp4"
)

// WatchHistoryEntry is a locally persisted playback-progress record. The
// cachedX fields snapshot the originating FileRecord so the entry renders
// correctly even when the remote file is no longer listed.
type WatchHistoryEntry struct {
	FileID          string  `json:"fileId"`
	ProgressSeconds float64 `json:"progress"`
	DurationSeconds float64 `json:"duration"`
	LastWatchedAt   int64   `json:"timestamp"` // unix milliseconds

	CachedName         string `json:"cachedName,omitempty"`
	CachedThumbnailRef string `json:"cachedThumbnail,omitempty"`
	CachedMIMEType     string `json:"cachedMimeType,omitempty"`
	CachedSizeLabel    string `json:"cachedSize,omitempty"`
}

// DisplayName returns the cached name, falling back to a stable label so the
// entry is always renderable.
func (e WatchHistoryEntry) DisplayName() string {
	if e.CachedName != "" {
		return e.CachedName
	}
	return FallbackName
}

// MIMEType returns the cached MIME type, falling back to a playable default.
func (e WatchHistoryEntry) MIMEType() string {
	if e.CachedMIMEType != "" {
		return e.CachedMIMEType
	}
	return FallbackMIMEType
}

// ProgressPercent returns the watch progress as a 0-100 integer.
func (e WatchHistoryEntry) ProgressPercent() int {
	return ProgressPercent(e.ProgressSeconds, e.DurationSeconds)
}

// DisplayItem projects the entry into a view row using only cached fields,
// so history renders offline and against stale listings.
func (e WatchHistoryEntry) DisplayItem() DisplayItem {
	return DisplayItem{
		ID:              e.FileID,
		PlayID:          e.FileID,
		Name:            e.DisplayName(),
		Kind:            ClassifyMIME(e.MIMEType()),
		MIMEType:        e.MIMEType(),
		ThumbnailRef:    e.CachedThumbnailRef,
		SizeLabel:       e.CachedSizeLabel,
		HasProgress:     true,
		ProgressSeconds: e.ProgressSeconds,
		DurationSeconds: e.DurationSeconds,
		FromHistory:     true,
	}
}
