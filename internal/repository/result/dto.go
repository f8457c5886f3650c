package result

import (
	"time"

	"github.com/kailas-cloud/pagecluster/internal/usecase/pipeline"
)

// Run is the stored JSON form of a run report.
type Run struct {
	RunID       string                `json:"run_id"`
	StartedAt   time.Time             `json:"started_at"`
	DurationMS  int64                 `json:"duration_ms"`
	Clusters    map[string][][]string `json:"clusters"`
	Skipped     []SkippedEntry        `json:"skipped"`
	FailedTiers map[string]string     `json:"failed_tiers,omitempty"`
}

// SkippedEntry is one stored skip record.
type SkippedEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Tier      string    `json:"tier"`
	Filename  string    `json:"filename"`
	Reason    string    `json:"reason"`
}

func runFromReport(r pipeline.Report) Run {
	row := Run{
		RunID:      r.RunID,
		StartedAt:  r.StartedAt,
		DurationMS: r.Duration.Milliseconds(),
		Clusters:   r.Clusters(),
		Skipped:    make([]SkippedEntry, len(r.Skipped)),
	}
	for i, s := range r.Skipped {
		row.Skipped[i] = SkippedEntry{Timestamp: s.Timestamp, Tier: s.Tier, Filename: s.Filename, Reason: s.Reason}
	}
	for _, t := range r.Failed() {
		if row.FailedTiers == nil {
			row.FailedTiers = make(map[string]string)
		}
		row.FailedTiers[t.Name] = t.Err.Error()
	}
	return row
}
