package pipeline

import (
	"time"

	"github.com/kailas-cloud/pagecluster/internal/domain/skip"
	domtier "github.com/kailas-cloud/pagecluster/internal/domain/tier"
)

// Report is the outcome of one run over every tier.
type Report struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Tiers     []domtier.Result // sorted by name
	Skipped   []skip.Record    // sorted by timestamp
}

// Clusters maps tier name to its member groups. Failed tiers map to no groups.
func (r Report) Clusters() map[string][][]string {
	out := make(map[string][][]string, len(r.Tiers))
	for _, t := range r.Tiers {
		groups := t.Groups
		if groups == nil {
			groups = [][]string{}
		}
		out[t.Name] = groups
	}
	return out
}

// Clustered returns the number of documents placed in a cluster.
func (r Report) Clustered() int {
	n := 0
	for _, t := range r.Tiers {
		n += t.Clustered
	}
	return n
}

// ClusterCount returns the number of clusters across tiers.
func (r Report) ClusterCount() int {
	n := 0
	for _, t := range r.Tiers {
		n += len(t.Groups)
	}
	return n
}

// Failed returns the tiers that aborted.
func (r Report) Failed() []domtier.Result {
	var out []domtier.Result
	for _, t := range r.Tiers {
		if t.Failed() {
			out = append(out, t)
		}
	}
	return out
}
