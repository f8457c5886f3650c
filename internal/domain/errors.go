package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrImageDecode signals a screenshot that cannot be opened or decoded.
	ErrImageDecode = errors.New("image decode failed")
	// ErrInvalidDocument signals a document record that fails validation.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrDimensionMismatch signals a feature vector whose length differs from the cluster centroid.
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
	// ErrInvalidParams signals clustering parameters outside their allowed ranges.
	ErrInvalidParams = errors.New("invalid clustering parameters")
	// ErrRenderFailed signals a pool entry the renderer could not produce text or a screenshot for.
	ErrRenderFailed = errors.New("render failed")
	// ErrTierFailed signals a tier whose processing aborted before producing clusters.
	ErrTierFailed = errors.New("tier failed")
	// ErrDuplicateDocument signals a filename seen twice within one tier.
	ErrDuplicateDocument = errors.New("duplicate document")
)

// ImageDecodeError wraps ErrImageDecode with the screenshot location.
type ImageDecodeError struct {
	Path string
	Err  error
}

func (e *ImageDecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrImageDecode.Error(), e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", ErrImageDecode.Error(), e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is / errors.As.
func (e *ImageDecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrImageDecode}
	}
	return []error{ErrImageDecode, e.Err}
}

// NewImageDecodeError creates an image decode error for path.
func NewImageDecodeError(path string, err error) error {
	return &ImageDecodeError{Path: path, Err: err}
}
