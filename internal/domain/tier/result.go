// Package tier holds the clustering outcome of one tier.
package tier

import "time"

// Result is the outcome of clustering one tier.
// Groups are member filenames per cluster in creation order; Err is set when
// the tier aborted, in which case Groups is empty.
type Result struct {
	Name           string
	Groups         [][]string
	Documents      int
	Clustered      int
	Skipped        int
	VocabularySize int
	Duration       time.Duration
	Err            error
}

// Clusters returns the number of clusters.
func (r Result) Clusters() int { return len(r.Groups) }

// Failed reports whether the tier aborted.
func (r Result) Failed() bool { return r.Err != nil }
