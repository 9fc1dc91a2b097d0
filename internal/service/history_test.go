package service

import (
	"errors"
	"testing"

	"cloudstream/internal/domain"
)

// fakeStore implements domain.Store in memory for service tests.
type fakeStore struct {
	history  []domain.WatchHistoryEntry
	saveErr  error
	session  domain.Session
	hasSess  bool
	clientID string
	apiKey   string
}

func (f *fakeStore) SaveHistory(entries []domain.WatchHistoryEntry) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.history = entries
	return nil
}

func (f *fakeStore) LoadHistory() ([]domain.WatchHistoryEntry, error) {
	return f.history, nil
}

func (f *fakeStore) SaveSession(sess domain.Session) error {
	f.session = sess
	f.hasSess = true
	return nil
}

func (f *fakeStore) LoadSession() (domain.Session, bool) {
	return f.session, f.hasSess
}

func (f *fakeStore) ClearSession() error {
	f.session = domain.Session{}
	f.hasSess = false
	return nil
}

func (f *fakeStore) SaveDriveConfig(clientID, apiKey string) error {
	f.clientID, f.apiKey = clientID, apiKey
	return nil
}

func (f *fakeStore) LoadDriveConfig() (string, string, bool) {
	return f.clientID, f.apiKey, f.clientID != ""
}

func (f *fakeStore) Close() error { return nil }

func newTestHistory(st *fakeStore) *HistoryService {
	svc := NewHistoryService(st, nil)
	clock := int64(1000)
	svc.now = func() int64 {
		clock++
		return clock
	}
	return svc
}

func TestRecordProgressUpsertsInPlace(t *testing.T) {
	st := &fakeStore{}
	svc := newTestHistory(st)

	hint := &domain.FileRecord{ID: "v1", Name: "clip.mp4", MIMEType: "video/mp4"}
	if err := svc.RecordProgress("v1", 10, 120, hint); err != nil {
		t.Fatal(err)
	}
	if err := svc.RecordProgress("v1", 45, 120, hint); err != nil {
		t.Fatal(err)
	}

	entries := svc.List()
	if len(entries) != 1 {
		t.Fatalf("expected a single entry after repeated updates, got %d", len(entries))
	}
	if entries[0].ProgressSeconds != 45 {
		t.Errorf("ProgressSeconds = %v, want 45", entries[0].ProgressSeconds)
	}
}

func TestRecordProgressPreservesCachedMetadata(t *testing.T) {
	st := &fakeStore{}
	svc := newTestHistory(st)

	hint := &domain.FileRecord{ID: "v1", Name: "clip.mp4", MIMEType: "video/x-matroska", SizeLabel: "1.2 GB"}
	if err := svc.RecordProgress("v1", 10, 120, hint); err != nil {
		t.Fatal(err)
	}

	// An update without a hint must not erase the cached fields.
	if err := svc.RecordProgress("v1", 88, 120, nil); err != nil {
		t.Fatal(err)
	}

	e := svc.List()[0]
	if e.CachedName != "clip.mp4" {
		t.Errorf("CachedName = %q, want %q", e.CachedName, "clip.mp4")
	}
	if e.CachedMIMEType != "video/x-matroska" {
		t.Errorf("CachedMIMEType = %q, want %q", e.CachedMIMEType, "video/x-matroska")
	}
	if e.CachedSizeLabel != "1.2 GB" {
		t.Errorf("CachedSizeLabel = %q, want %q", e.CachedSizeLabel, "1.2 GB")
	}
}

func TestRecordProgressFallbackMetadata(t *testing.T) {
	st := &fakeStore{}
	svc := newTestHistory(st)

	if err := svc.RecordProgress("mystery", 5, 60, nil); err != nil {
		t.Fatal(err)
	}

	e := svc.List()[0]
	if e.CachedName != domain.FallbackName {
		t.Errorf("CachedName = %q, want %q", e.CachedName, domain.FallbackName)
	}
	if e.CachedMIMEType != domain.FallbackMIMEType {
		t.Errorf("CachedMIMEType = %q, want %q", e.CachedMIMEType, domain.FallbackMIMEType)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	st := &fakeStore{}
	svc := newTestHistory(st)

	svc.RecordProgress("a", 1, 10, nil)
	svc.RecordProgress("b", 2, 10, nil)
	svc.RecordProgress("c", 3, 10, nil)
	// Re-watch the oldest; it should move to the front.
	svc.RecordProgress("a", 4, 10, nil)

	entries := svc.List()
	want := []string{"a", "c", "b"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, id := range want {
		if entries[i].FileID != id {
			t.Errorf("entries[%d].FileID = %q, want %q", i, entries[i].FileID, id)
		}
	}
}

func TestRecordProgressFailedSaveLeavesMemoryUnchanged(t *testing.T) {
	st := &fakeStore{}
	svc := newTestHistory(st)
	svc.RecordProgress("v1", 10, 120, nil)

	st.saveErr = errors.New("disk full")
	if err := svc.RecordProgress("v2", 5, 60, nil); err == nil {
		t.Fatal("expected an error from a failed save")
	}

	entries := svc.List()
	if len(entries) != 1 || entries[0].FileID != "v1" {
		t.Errorf("in-memory log diverged from disk after failed save: %+v", entries)
	}
}

func TestRecordProgressEmptyIDIsNoOp(t *testing.T) {
	st := &fakeStore{}
	svc := newTestHistory(st)

	if err := svc.RecordProgress("", 10, 120, nil); err != nil {
		t.Fatal(err)
	}
	if len(svc.List()) != 0 {
		t.Error("empty file id must not create an entry")
	}
}

func TestProgressOf(t *testing.T) {
	st := &fakeStore{}
	svc := newTestHistory(st)
	svc.RecordProgress("v1", 30, 120, nil)

	progress, duration, ok := svc.ProgressOf("v1")
	if !ok || progress != 30 || duration != 120 {
		t.Errorf("ProgressOf(v1) = %v, %v, %v; want 30, 120, true", progress, duration, ok)
	}

	if _, _, ok := svc.ProgressOf("absent"); ok {
		t.Error("ProgressOf must report a miss for unknown ids")
	}
}
