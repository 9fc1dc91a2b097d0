package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloudstream/internal/domain"
)

type fakeLauncher struct {
	url    string
	offset time.Duration
	calls  int
	err    error
}

func (f *fakeLauncher) Launch(url string, startOffset time.Duration) error {
	f.calls++
	f.url = url
	f.offset = startOffset
	return f.err
}

func TestPlayRefusesNonVideo(t *testing.T) {
	launch := &fakeLauncher{}
	svc := NewPlaybackService(&fakeRepo{}, launch, newTestHistory(&fakeStore{}), nil)

	rec := domain.FileRecord{ID: "doc1", Name: "notes.pdf", MIMEType: "application/pdf"}
	if err := svc.Play(context.Background(), rec); !errors.Is(err, domain.ErrPlaybackUnsupported) {
		t.Errorf("Play(document) = %v, want ErrPlaybackUnsupported", err)
	}
	if launch.calls != 0 {
		t.Error("non-video playback must never reach the launcher")
	}
}

func TestPlayResumesFromHistory(t *testing.T) {
	launch := &fakeLauncher{}
	history := newTestHistory(&fakeStore{})
	history.RecordProgress("v1", 90, 300, nil)

	svc := NewPlaybackService(&fakeRepo{}, launch, history, nil)
	rec := domain.FileRecord{ID: "v1", Name: "clip.mp4", MIMEType: "video/mp4"}

	if err := svc.Play(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
	if launch.offset != 90*time.Second {
		t.Errorf("resume offset = %v, want 90s", launch.offset)
	}
}

func TestPlayShortcutUsesTarget(t *testing.T) {
	launch := &fakeLauncher{}
	history := newTestHistory(&fakeStore{})
	svc := NewPlaybackService(&fakeRepo{}, launch, history, nil)

	rec := domain.FileRecord{
		ID:       "s1",
		Name:     "Movie Link",
		MIMEType: domain.MIMEShortcut,
		Shortcut: &domain.ShortcutTarget{TargetID: "f2", TargetMIMEType: "video/mp4"},
	}

	if err := svc.Play(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
	if launch.url != "https://example.invalid/f2" {
		t.Errorf("stream url = %q, want the target id in the path", launch.url)
	}

	// The history entry was seeded under the target id.
	if _, _, ok := history.ProgressOf("f2"); !ok {
		t.Error("playback must seed history under the effective id")
	}
	if _, _, ok := history.ProgressOf("s1"); ok {
		t.Error("no history entry may be recorded under the shortcut's own id")
	}
}

func TestPlayLaunchFailure(t *testing.T) {
	launch := &fakeLauncher{err: errors.New("no player found")}
	history := newTestHistory(&fakeStore{})
	svc := NewPlaybackService(&fakeRepo{}, launch, history, nil)

	rec := domain.FileRecord{ID: "v1", Name: "clip.mp4", MIMEType: "video/mp4"}
	if err := svc.Play(context.Background(), rec); !errors.Is(err, domain.ErrPlaybackUnsupported) {
		t.Errorf("Play with failing launcher = %v, want ErrPlaybackUnsupported", err)
	}
	if _, _, ok := history.ProgressOf("v1"); ok {
		t.Error("a failed launch must not seed history")
	}
}

func TestReportProgress(t *testing.T) {
	history := newTestHistory(&fakeStore{})
	svc := NewPlaybackService(&fakeRepo{}, &fakeLauncher{}, history, nil)

	hint := &domain.FileRecord{ID: "v1", Name: "clip.mp4", MIMEType: "video/mp4"}
	if err := svc.ReportProgress("v1", 42, 120, hint); err != nil {
		t.Fatal(err)
	}

	progress, duration, ok := history.ProgressOf("v1")
	if !ok || progress != 42 || duration != 120 {
		t.Errorf("ProgressOf = %v, %v, %v; want 42, 120, true", progress, duration, ok)
	}
}
