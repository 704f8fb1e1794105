package model

import (
	"io"

	"github.com/google/uuid"
)

// MaxImageSize is the largest accepted image upload, in bytes.
const MaxImageSize = 5 << 20

// StoredImageContentType is the content type every stored image is labelled with.
const StoredImageContentType = "image/jpeg"

// ImageUpload describes an incoming card image.
type ImageUpload struct {
	UserID      string
	CardID      uuid.UUID
	ContentType string
	Size        int64
	Data        io.Reader
}

// CleanupOutcome reports what happened to the image a card referenced before an upload.
type CleanupOutcome int

const (
	// CleanupNone means the card had no previous image.
	CleanupNone CleanupOutcome = iota
	// CleanupDeleted means the previous image blob was deleted.
	CleanupDeleted
	// CleanupFailed means deleting the previous blob failed and it may be orphaned.
	CleanupFailed
)

func (o CleanupOutcome) String() string {
	switch o {
	case CleanupNone:
		return "none"
	case CleanupDeleted:
		return "deleted"
	case CleanupFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ImageReplacement is the result of a successful image replacement.
type ImageReplacement struct {
	URL        string
	Key        string
	Cleanup    CleanupOutcome
	CleanupErr error
}
