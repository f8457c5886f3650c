package skip

import (
	"errors"

	"github.com/kailas-cloud/pagecluster/internal/domain"
)

// Skip reason classes used as metric labels.
const (
	ClassDecode    = "decode"
	ClassRender    = "render"
	ClassInvalid   = "invalid"
	ClassDuplicate = "duplicate"
	ClassOther     = "other"
)

// Class maps a skip cause to a bounded label value.
func Class(err error) string {
	switch {
	case errors.Is(err, domain.ErrImageDecode):
		return ClassDecode
	case errors.Is(err, domain.ErrRenderFailed):
		return ClassRender
	case errors.Is(err, domain.ErrInvalidDocument):
		return ClassInvalid
	case errors.Is(err, domain.ErrDuplicateDocument):
		return ClassDuplicate
	default:
		return ClassOther
	}
}

// Rejection is a pool entry dropped before clustering (render failure, malformed entry).
type Rejection struct {
	Tier     string
	Filename string
	Err      error
}
