package pipeline

import (
	"context"
	"time"

	domdoc "github.com/kailas-cloud/pagecluster/internal/domain/document"
	"github.com/kailas-cloud/pagecluster/internal/domain/skip"
	domtier "github.com/kailas-cloud/pagecluster/internal/domain/tier"
)

// TierProcessor clusters one tier.
type TierProcessor interface {
	Process(ctx context.Context, name string, docs []domdoc.Document) domtier.Result
}

// SkipLog is the shared skip sink, read back once all tiers finish.
type SkipLog interface {
	Append(r skip.Record)
	Records() []skip.Record
}

// Recorder receives run-level outcomes.
type Recorder interface {
	DocumentProcessed(tier, status string)
	DocumentSkipped(tier, reason string)
	RunFinished(d time.Duration)
}
