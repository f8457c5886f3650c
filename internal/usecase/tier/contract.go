package tier

import (
	"context"
	"image"
	"time"

	"github.com/kailas-cloud/pagecluster/internal/domain/skip"
)

// ImageDecoder opens and decodes a screenshot.
type ImageDecoder interface {
	Decode(ctx context.Context, path string) (image.Image, error)
}

// SkipSink collects documents excluded from clustering. Shared across tiers.
type SkipSink interface {
	Append(r skip.Record)
}

// Recorder receives per-document and per-tier outcomes.
type Recorder interface {
	DocumentProcessed(tier, status string)
	DocumentSkipped(tier, reason string)
	TierFinished(tier string, clusters, vocabulary int, d time.Duration, err error)
}
