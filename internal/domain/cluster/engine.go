package cluster

import (
	"fmt"

	"github.com/kailas-cloud/pagecluster/internal/domain"
	"github.com/kailas-cloud/pagecluster/internal/domain/similarity"
)

// Assignment describes where Add placed an item.
type Assignment struct {
	Cluster int     // index in creation order
	Score   float64 // fused score against the chosen cluster; 0 for a new cluster
	Created bool
}

// Engine holds the clusters of one tier. Assignment depends on input order:
// each item is compared against the clusters built from all earlier items.
// Not safe for concurrent use.
type Engine struct {
	params    Params
	threshold float64
	clusters  []*Cluster
	assigned  map[string]int
	textDim   int
	imageDim  int
}

// NewEngine creates an empty engine.
func NewEngine(p Params) *Engine {
	return &Engine{
		params:    p,
		threshold: p.CombinedThreshold(),
		assigned:  make(map[string]int),
		textDim:   -1,
		imageDim:  -1,
	}
}

// Score is the fused similarity of it against c.
func (e *Engine) Score(it Item, c *Cluster) float64 {
	return e.params.textWeight*similarity.Cosine(it.Text, c.textCentroid) +
		e.params.imageWeight*similarity.HistogramIntersection(it.Image, c.imageCentroid)
}

// Add assigns it to the best qualifying cluster or opens a new one.
// A cluster qualifies when its fused score is >= the combined threshold; among qualifying
// clusters the highest score wins and ties go to the earliest created.
func (e *Engine) Add(it Item) (Assignment, error) {
	if err := e.checkDims(it); err != nil {
		return Assignment{}, err
	}
	if idx, ok := e.assigned[it.Filename]; ok {
		return Assignment{}, fmt.Errorf("%q already in cluster %d: %w", it.Filename, idx, domain.ErrDuplicateDocument)
	}

	best := -1
	bestScore := 0.0 // scores are non-negative; a cluster must beat this strictly
	for i, c := range e.clusters {
		s := e.Score(it, c)
		if s >= e.threshold && s > bestScore {
			best, bestScore = i, s
		}
	}

	if best < 0 {
		e.clusters = append(e.clusters, newCluster(it))
		idx := len(e.clusters) - 1
		e.assigned[it.Filename] = idx
		return Assignment{Cluster: idx, Created: true}, nil
	}

	e.clusters[best].add(it)
	e.assigned[it.Filename] = best
	return Assignment{Cluster: best, Score: bestScore}, nil
}

func (e *Engine) checkDims(it Item) error {
	if e.textDim < 0 {
		e.textDim, e.imageDim = len(it.Text), len(it.Image)
		return nil
	}
	if len(it.Text) != e.textDim {
		return fmt.Errorf("text vector of %q has %d dims, want %d: %w",
			it.Filename, len(it.Text), e.textDim, domain.ErrDimensionMismatch)
	}
	if len(it.Image) != e.imageDim {
		return fmt.Errorf("image histogram of %q has %d bins, want %d: %w",
			it.Filename, len(it.Image), e.imageDim, domain.ErrDimensionMismatch)
	}
	return nil
}

// Params returns the engine configuration.
func (e *Engine) Params() Params { return e.params }

// Len returns the number of clusters.
func (e *Engine) Len() int { return len(e.clusters) }

// Cluster returns the i-th cluster in creation order.
func (e *Engine) Cluster(i int) *Cluster { return e.clusters[i] }

// Groups returns member filenames per cluster, clusters in creation order.
func (e *Engine) Groups() [][]string {
	out := make([][]string, len(e.clusters))
	for i, c := range e.clusters {
		out[i] = c.Members()
	}
	return out
}
