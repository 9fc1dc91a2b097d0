package service

import (
	"context"
	"log/slog"
	"time"

	"cloudstream/internal/domain"
)

// launcher abstracts media player launching (consumer-defined interface)
type launcher interface {
	Launch(url string, startOffset time.Duration) error
}

// PlaybackService orchestrates playback: resolve a stream URL through any
// shortcut, hand it to the external player resuming at the saved offset,
// and fold progress reports into the history log.
type PlaybackService struct {
	repo     domain.DriveRepository
	launcher launcher
	history  *HistoryService
	logger   *slog.Logger
}

// NewPlaybackService creates a new playback service
func NewPlaybackService(repo domain.DriveRepository, launcher launcher, history *HistoryService, logger *slog.Logger) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackService{
		repo:     repo,
		launcher: launcher,
		history:  history,
		logger:   logger,
	}
}

// Play launches playback of a record, resuming from the saved position when
// one exists. Shortcuts play their target, never the shortcut itself.
func (s *PlaybackService) Play(ctx context.Context, rec domain.FileRecord) error {
	if rec.EffectiveKind() != domain.KindVideo {
		s.logger.Warn("refusing playback of non-video item",
			"fileID", rec.ID, "mimeType", rec.EffectiveMIMEType())
		return domain.ErrPlaybackUnsupported
	}

	playID := rec.EffectiveID()

	var offset time.Duration
	if progress, _, ok := s.history.ProgressOf(playID); ok && progress > 0 {
		offset = time.Duration(progress * float64(time.Second))
	}

	url := s.repo.StreamURL(playID)
	s.logger.Info("launching playback", "fileID", playID, "name", rec.Name, "offset", offset)

	if err := s.launcher.Launch(url, offset); err != nil {
		s.logger.Error("player launch failed", "fileID", playID, "error", err)
		return domain.ErrPlaybackUnsupported
	}

	// Seed the history entry immediately so the item shows up in the
	// history view even if the player never reports progress back, and so
	// the cached metadata snapshot picks up the freshest record.
	hint := rec
	progress, duration, _ := s.history.ProgressOf(playID)
	return s.history.RecordProgress(playID, progress, duration, &hint)
}

// ReportProgress records a playback-progress report. Called at suspension
// points only: on pause and on teardown. Values are trusted as reported.
func (s *PlaybackService) ReportProgress(fileID string, progressSeconds, durationSeconds float64, hint *domain.FileRecord) error {
	return s.history.RecordProgress(fileID, progressSeconds, durationSeconds, hint)
}

