package drive

import (
	"cloudstream/internal/domain"
	gdrive "google.golang.org/api/drive/v3"
)

// mapFile normalizes a Drive API file into a domain.FileRecord. Absent
// provider fields (thumbnail, size, parents) normalize to empty values.
func mapFile(f *gdrive.File) domain.FileRecord {
	rec := domain.FileRecord{
		ID:           f.Id,
		Name:         f.Name,
		MIMEType:     f.MimeType,
		ThumbnailRef: f.ThumbnailLink,
		CreatedAt:    f.CreatedTime,
		Description:  f.Description,
	}

	if len(f.Parents) > 0 {
		rec.ParentID = f.Parents[0]
	}
	if f.Size > 0 {
		rec.SizeLabel = domain.FormatBytes(f.Size)
	}
	if f.ShortcutDetails != nil && f.ShortcutDetails.TargetId != "" {
		rec.Shortcut = &domain.ShortcutTarget{
			TargetID:       f.ShortcutDetails.TargetId,
			TargetMIMEType: f.ShortcutDetails.TargetMimeType,
		}
	}

	return rec
}
