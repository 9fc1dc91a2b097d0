package domain

import (
	"math"
	"strconv"
	"strings"
)

// Well-known Drive MIME types.
const (
	MIMEFolder   = "application/vnd.google-apps.folder"
	MIMEShortcut = "application/vnd.google-apps.shortcut"
)

// FileKind classifies a remote entry for navigation and playback decisions.
type FileKind int

const (
	KindUnknown FileKind = iota
	KindFolder
	KindVideo
	KindImage
	KindDocument
)

// String returns a human-readable representation of the file kind
func (k FileKind) String() string {
	switch k {
	case KindFolder:
		return "Folder"
	case KindVideo:
		return "Video"
	case KindImage:
		return "Image"
	case KindDocument:
		return "Document"
	default:
		return "Unknown"
	}
}

// ClassifyMIME maps a provider MIME type onto a FileKind.
// Pure function: folder MIME exact-matches, video/* and image/* by prefix,
// everything else is a document.
func ClassifyMIME(mimeType string) FileKind {
	switch {
	case mimeType == MIMEFolder:
		return KindFolder
	case strings.HasPrefix(mimeType, "video/"):
		return KindVideo
	case strings.HasPrefix(mimeType, "image/"):
		return KindImage
	default:
		return KindDocument
	}
}

// ShortcutTarget identifies the record a shortcut points at.
type ShortcutTarget struct {
	TargetID       string `json:"targetId"`
	TargetMIMEType string `json:"targetMimeType"`
}

// FileRecord is a normalized description of a remote entry, independent of
// the provider wire format.
type FileRecord struct {
	ID           string          `json:"id"`
	ParentID     string          `json:"parentId,omitempty"` // empty at root or when unknown
	Name         string          `json:"name"`
	MIMEType     string          `json:"mimeType"`
	ThumbnailRef string          `json:"thumbnail,omitempty"`
	SizeLabel    string          `json:"size,omitempty"` // display only, not authoritative
	CreatedAt    string          `json:"createdAt,omitempty"`
	Description  string          `json:"description,omitempty"`
	Shortcut     *ShortcutTarget `json:"shortcutTarget,omitempty"`
}

// Kind classifies the record by its own MIME type.
func (f FileRecord) Kind() FileKind {
	return ClassifyMIME(f.MIMEType)
}

// EffectiveID returns the id all navigation and playback decisions must use.
// Shortcuts resolve through their target, never through the shortcut's own id.
func (f FileRecord) EffectiveID() string {
	if f.Shortcut != nil && f.Shortcut.TargetID != "" {
		return f.Shortcut.TargetID
	}
	return f.ID
}

// EffectiveMIMEType returns the MIME type used for type classification and
// playback negotiation, resolved through a shortcut target when present.
func (f FileRecord) EffectiveMIMEType() string {
	if f.Shortcut != nil && f.Shortcut.TargetMIMEType != "" {
		return f.Shortcut.TargetMIMEType
	}
	return f.MIMEType
}

// EffectiveKind classifies the record by its effective MIME type.
func (f FileRecord) EffectiveKind() FileKind {
	return ClassifyMIME(f.EffectiveMIMEType())
}

// Quota is a provider storage quota snapshot.
type Quota struct {
	UsedBytes  int64
	TotalBytes int64
}

// Percent returns the used percentage, clamped to [0, 100].
// A zero or unreported total yields 0.
func (q Quota) Percent() int {
	if q.TotalBytes <= 0 {
		return 0
	}
	p := int(math.Round(100 * float64(q.UsedBytes) / float64(q.TotalBytes)))
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// StorageBreakdown splits the used percentage into per-category sub-bars.
// The splits are illustrative proportions of the overall percent, not
// independently measured per-category usage.
type StorageBreakdown struct {
	Percent int // overall used percent
	Video   int
	Images  int
	Audio   int
	Other   int
}

// Breakdown derives the illustrative category split from the quota.
func (q Quota) Breakdown() StorageBreakdown {
	p := q.Percent()
	return StorageBreakdown{
		Percent: p,
		Video:   p * 50 / 100,
		Images:  p * 25 / 100,
		Audio:   p * 15 / 100,
		Other:   p * 10 / 100,
	}
}

// ProgressPercent converts a progress/duration pair into a 0-100 integer.
// A zero duration yields 0 rather than propagating a division by zero.
func ProgressPercent(progressSeconds, durationSeconds float64) int {
	if durationSeconds <= 0 {
		return 0
	}
	p := int(math.Round(100 * progressSeconds / durationSeconds))
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// FormatBytes renders a byte count as a human-readable label ("2.5 MB").
// Deterministic: the same count always yields the same label, and larger
// counts never format to a smaller-looking unit.
func FormatBytes(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(byteUnits) {
		i = len(byteUnits) - 1
	}
	v := float64(bytes) / math.Pow(1024, float64(i))
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + byteUnits[i]
}

// DisplayItem is the per-row view model rendered to the user, merged from a
// FileRecord and/or a WatchHistoryEntry. Display fields (Name, ThumbnailRef)
// always come from the record itself; semantic fields (PlayID, Kind,
// MIMEType) resolve through a shortcut target when one is present.
type DisplayItem struct {
	ID           string // display identity (the record's own id)
	PlayID       string // id used for navigation and playback
	Name         string
	Kind         FileKind // effective kind, shortcut-resolved
	MIMEType     string   // effective MIME type, shortcut-resolved
	ThumbnailRef string
	SizeLabel    string

	// Watch progress, present when a history entry exists for the item.
	HasProgress     bool
	ProgressSeconds float64
	DurationSeconds float64

	FromHistory bool // projected purely from cached history metadata
}

// ProgressPercent returns the watch progress as a 0-100 integer.
func (d DisplayItem) ProgressPercent() int {
	if !d.HasProgress {
		return 0
	}
	return ProgressPercent(d.ProgressSeconds, d.DurationSeconds)
}
