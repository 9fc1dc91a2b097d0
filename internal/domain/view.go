package domain

import "context"

// RootFolderID is the provider alias for the drive root.
const RootFolderID = "root"

// ViewMode selects the data source the display list is composed from.
type ViewMode int

const (
	ViewBrowse ViewMode = iota
	ViewHistory
	ViewShared
)

// String returns a human-readable representation of the view mode
func (v ViewMode) String() string {
	switch v {
	case ViewBrowse:
		return "Browse"
	case ViewHistory:
		return "History"
	case ViewShared:
		return "Shared"
	default:
		return "Unknown"
	}
}

// AuthFlow is a single asynchronous authentication operation with one
// resolution point: it returns an established session or an error.
type AuthFlow interface {
	Run(ctx context.Context) (Session, error)
}
