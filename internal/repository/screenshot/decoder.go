// Package screenshot opens and decodes page screenshots.
package screenshot

import (
	"context"
	"image"
	// Registered screenshot formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/viant/afs"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/kailas-cloud/pagecluster/internal/domain"
)

// Decoder reads screenshots from any afs-supported location.
type Decoder struct {
	fs afs.Service
}

// New creates a screenshot decoder.
func New(fs afs.Service) *Decoder {
	return &Decoder{fs: fs}
}

// Decode opens and decodes the screenshot at path.
// Every failure is returned as *domain.ImageDecodeError.
func (d *Decoder) Decode(ctx context.Context, path string) (image.Image, error) {
	rc, err := d.fs.OpenURL(ctx, path)
	if err != nil {
		return nil, domain.NewImageDecodeError(path, err)
	}
	defer func() { _ = rc.Close() }()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, domain.NewImageDecodeError(path, err)
	}
	return img, nil
}
