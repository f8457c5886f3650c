// Package batch holds the per-document outcome of feature extraction within a tier.
package batch

import "github.com/kailas-cloud/pagecluster/internal/domain/cluster"

// ItemStatus is the extraction outcome of a single document.
type ItemStatus string

// Document outcome values.
const (
	StatusOK      ItemStatus = "ok"
	StatusSkipped ItemStatus = "skipped"
)

// Result is the outcome of extracting features for one document.
type Result struct {
	filename string
	status   ItemStatus
	item     cluster.Item
	err      error
}

// NewOK creates a successful result carrying the document's feature pair.
func NewOK(item cluster.Item) Result {
	return Result{filename: item.Filename, status: StatusOK, item: item}
}

// NewSkipped creates a result for a document excluded from clustering.
func NewSkipped(filename string, err error) Result {
	return Result{filename: filename, status: StatusSkipped, err: err}
}

// Filename returns the document identifier.
func (r Result) Filename() string { return r.filename }

// Status returns the extraction outcome.
func (r Result) Status() ItemStatus { return r.status }

// Item returns the feature pair (zero value for skipped documents).
func (r Result) Item() cluster.Item { return r.item }

// Err returns the skip reason, if any.
func (r Result) Err() error { return r.err }
