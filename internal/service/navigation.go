package service

import (
	"log/slog"
	"sync"

	"cloudstream/internal/domain"
)

// Crumb is one segment of the breadcrumb trail.
type Crumb struct {
	ID   string
	Name string
}

// Navigator owns the current folder, breadcrumb trail, view mode, and the
// back stack. The trail is built incrementally as the user descends and
// truncated, never rebuilt, when navigating back. Invariant: the trail is
// empty exactly when the current folder is the root sentinel or the view
// mode is not Browse; illegal combinations are normalized away rather than
// allowed to arise.
type Navigator struct {
	logger *slog.Logger

	// resetSearch clears the search state; invoked on every folder
	// navigation and view switch.
	resetSearch func()

	mu       sync.Mutex
	mode     domain.ViewMode
	folderID string
	trail    []Crumb
	back     []string // previously visited folder ids, most recent last
}

// NewNavigator creates a navigator rooted in Browse mode.
func NewNavigator(resetSearch func(), logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	if resetSearch == nil {
		resetSearch = func() {}
	}
	return &Navigator{
		logger:      logger,
		resetSearch: resetSearch,
		mode:        domain.ViewBrowse,
		folderID:    domain.RootFolderID,
	}
}

// EnterFolder descends into a folder: appends to the breadcrumb trail,
// pushes the departed folder onto the back stack, and clears any active
// search.
func (n *Navigator) EnterFolder(id, name string) {
	n.mu.Lock()
	n.back = append(n.back, n.folderID)
	n.trail = append(n.trail, Crumb{ID: id, Name: name})
	n.folderID = id
	n.mu.Unlock()

	n.resetSearch()
	n.logger.Debug("entered folder", "folderID", id, "name", name)
}

// GoToRoot returns to the drive root, clearing the trail and back stack.
func (n *Navigator) GoToRoot() {
	n.mu.Lock()
	n.folderID = domain.RootFolderID
	n.trail = nil
	n.back = nil
	n.mu.Unlock()

	n.resetSearch()
}

// SwitchView changes the view mode. Entering any view starts at the top:
// the folder resets to root and the trail clears, so a non-root folder can
// never coexist with a non-Browse mode.
func (n *Navigator) SwitchView(mode domain.ViewMode) {
	n.mu.Lock()
	n.mode = mode
	n.folderID = domain.RootFolderID
	n.trail = nil
	n.back = nil
	n.mu.Unlock()

	n.resetSearch()
	n.logger.Debug("switched view", "mode", mode.String())
}

// Back restores the previously visited folder, truncating the trail by one
// segment. With nothing to restore it falls back to the root.
func (n *Navigator) Back() {
	n.mu.Lock()
	if len(n.back) == 0 {
		n.mu.Unlock()
		n.GoToRoot()
		return
	}
	prev := n.back[len(n.back)-1]
	n.back = n.back[:len(n.back)-1]
	if len(n.trail) > 0 {
		n.trail = n.trail[:len(n.trail)-1]
	}
	n.folderID = prev
	n.mu.Unlock()

	n.resetSearch()
}

// Mode returns the current view mode.
func (n *Navigator) Mode() domain.ViewMode {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.mode
}

// CurrentFolderID returns the current folder id (root sentinel at the top).
func (n *Navigator) CurrentFolderID() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.folderID
}

// Breadcrumbs returns a copy of the breadcrumb trail.
func (n *Navigator) Breadcrumbs() []Crumb {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Crumb, len(n.trail))
	copy(out, n.trail)
	return out
}

// AtRoot reports whether the navigator sits at the drive root.
func (n *Navigator) AtRoot() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.folderID == domain.RootFolderID
}
