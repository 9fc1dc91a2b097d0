package service

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"cloudstream/internal/domain"
)

// HistoryService owns the watch-history log: an upsert-only collection
// keyed by file id, persisted synchronously on every update. History is
// never expired or evicted.
type HistoryService struct {
	store  domain.Store
	logger *slog.Logger

	mu      sync.Mutex
	entries []domain.WatchHistoryEntry // newest first

	now func() int64 // unix milliseconds, swappable in tests
}

// NewHistoryService creates a history service, loading the persisted log.
func NewHistoryService(store domain.Store, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := store.LoadHistory()
	if err != nil {
		logger.Warn("failed to load watch history", "error", err)
	}
	return &HistoryService{
		store:   store,
		logger:  logger,
		entries: entries,
		now:     func() int64 { return time.Now().UnixMilli() },
	}
}

// RecordProgress upserts the history entry for fileID. Cached display
// metadata prefers the hint's fields when present and non-empty, then any
// prior cached value, then the stable fallbacks; a prior value is never
// erased by a missing hint. Progress and duration are trusted as reported
// by the playback surface, without clamping.
func (s *HistoryService) RecordProgress(fileID string, progressSeconds, durationSeconds float64, hint *domain.FileRecord) error {
	if fileID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.WatchHistoryEntry{
		FileID:          fileID,
		ProgressSeconds: progressSeconds,
		DurationSeconds: durationSeconds,
		LastWatchedAt:   s.now(),
	}

	idx := -1
	for i, e := range s.entries {
		if e.FileID == fileID {
			idx = i
			break
		}
	}

	var prior domain.WatchHistoryEntry
	if idx >= 0 {
		prior = s.entries[idx]
	}
	entry.CachedName = pick(hintName(hint), prior.CachedName, domain.FallbackName)
	entry.CachedMIMEType = pick(hintMIME(hint), prior.CachedMIMEType, domain.FallbackMIMEType)
	entry.CachedThumbnailRef = pick(hintThumb(hint), prior.CachedThumbnailRef, "")
	entry.CachedSizeLabel = pick(hintSize(hint), prior.CachedSizeLabel, "")

	updated := make([]domain.WatchHistoryEntry, len(s.entries), len(s.entries)+1)
	copy(updated, s.entries)
	if idx >= 0 {
		updated[idx] = entry
	} else {
		updated = append([]domain.WatchHistoryEntry{entry}, updated...)
	}

	// Persist before adopting the new collection; a failed write leaves the
	// in-memory log matching what is on disk.
	if err := s.store.SaveHistory(updated); err != nil {
		s.logger.Error("failed to persist watch history", "fileID", fileID, "error", err)
		return err
	}
	s.entries = updated

	s.logger.Debug("recorded progress", "fileID", fileID,
		"progress", progressSeconds, "duration", durationSeconds)
	return nil
}

// List returns the history entries sorted by last-watched time, newest
// first. The returned slice is a copy.
func (s *HistoryService) List() []domain.WatchHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.WatchHistoryEntry, len(s.entries))
	copy(out, s.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastWatchedAt > out[j].LastWatchedAt
	})
	return out
}

// ProgressOf returns the recorded progress/duration pair for a file id.
func (s *HistoryService) ProgressOf(fileID string) (progressSeconds, durationSeconds float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.FileID == fileID {
			return e.ProgressSeconds, e.DurationSeconds, true
		}
	}
	return 0, 0, false
}

// pick returns the first non-empty value
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func hintName(hint *domain.FileRecord) string {
	if hint == nil {
		return ""
	}
	return hint.Name
}

func hintMIME(hint *domain.FileRecord) string {
	if hint == nil {
		return ""
	}
	return hint.MIMEType
}

func hintThumb(hint *domain.FileRecord) string {
	if hint == nil {
		return ""
	}
	return hint.ThumbnailRef
}

func hintSize(hint *domain.FileRecord) string {
	if hint == nil {
		return ""
	}
	return hint.SizeLabel
}
