package domain

import "context"

// DriveRepository provides normalized access to the cloud-drive provider.
// Provider field absence (missing thumbnail, missing size) normalizes to the
// empty value; it never fails a listing. Network and auth failures surface
// as ErrRemoteUnavailable / ErrAuthRequired.
type DriveRepository interface {
	// ListChildren returns the direct children of a folder, folders first.
	ListChildren(ctx context.Context, folderID string) ([]FileRecord, error)

	// ListShared returns entries shared with the signed-in user.
	ListShared(ctx context.Context) ([]FileRecord, error)

	// SearchByName returns non-trashed entries whose name contains query.
	SearchByName(ctx context.Context, query string) ([]FileRecord, error)

	// GetFile fetches a single record by id (used for shortcut resolution).
	GetFile(ctx context.Context, fileID string) (FileRecord, error)

	// Quota returns the storage quota, or nil when the provider does not
	// report one.
	Quota(ctx context.Context) (*Quota, error)

	// StreamURL returns a direct media-fetch URL for a file, authenticated
	// with the current session token.
	StreamURL(fileID string) string
}

// Refiner narrows name-matched search candidates to semantically relevant
// ids. Best effort: an empty result or an error means "no opinion" and the
// caller shows all candidates unfiltered.
type Refiner interface {
	Refine(ctx context.Context, query string, candidates []FileRecord) ([]string, error)
}

// Store is the local device persistence boundary: the watch-history log plus
// session and credential material. Writes are atomic from the caller's
// perspective; either the whole value is saved or none of it.
type Store interface {
	// SaveHistory replaces the persisted watch-history collection.
	SaveHistory(entries []WatchHistoryEntry) error

	// LoadHistory returns the persisted watch-history collection, newest
	// first. A missing key loads as an empty collection.
	LoadHistory() ([]WatchHistoryEntry, error)

	SaveSession(s Session) error
	LoadSession() (Session, bool)
	ClearSession() error

	SaveDriveConfig(clientID, apiKey string) error
	LoadDriveConfig() (clientID, apiKey string, ok bool)

	Close() error
}
