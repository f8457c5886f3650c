package cluster

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/pagecluster/internal/domain"
)

// Reference configuration.
const (
	DefaultTextThreshold  = 0.7
	DefaultImageThreshold = 0.85
	DefaultTextWeight     = 0.7
	DefaultImageWeight    = 0.3
)

const weightTolerance = 1e-9

// Params is the immutable fusion configuration of the clustering engine.
type Params struct {
	textThreshold  float64
	imageThreshold float64
	textWeight     float64
	imageWeight    float64
}

// NewParams validates and creates clustering parameters.
// Thresholds and weights must lie in [0,1]; weights must sum to 1.
func NewParams(textThreshold, imageThreshold, textWeight, imageWeight float64) (Params, error) {
	for name, v := range map[string]float64{
		"text_threshold":  textThreshold,
		"image_threshold": imageThreshold,
		"text_weight":     textWeight,
		"image_weight":    imageWeight,
	} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return Params{}, fmt.Errorf("%s must be in [0,1], got %v: %w", name, v, domain.ErrInvalidParams)
		}
	}
	if math.Abs(textWeight+imageWeight-1) > weightTolerance {
		return Params{}, fmt.Errorf(
			"text_weight + image_weight must equal 1, got %v: %w",
			textWeight+imageWeight, domain.ErrInvalidParams,
		)
	}
	return Params{
		textThreshold:  textThreshold,
		imageThreshold: imageThreshold,
		textWeight:     textWeight,
		imageWeight:    imageWeight,
	}, nil
}

// DefaultParams returns the reference configuration (0.7/0.85 thresholds, 0.7/0.3 weights).
func DefaultParams() Params {
	return Params{
		textThreshold:  DefaultTextThreshold,
		imageThreshold: DefaultImageThreshold,
		textWeight:     DefaultTextWeight,
		imageWeight:    DefaultImageWeight,
	}
}

// TextThreshold returns the text similarity floor.
func (p Params) TextThreshold() float64 { return p.textThreshold }

// ImageThreshold returns the image similarity floor.
func (p Params) ImageThreshold() float64 { return p.imageThreshold }

// TextWeight returns the text share of the fused score.
func (p Params) TextWeight() float64 { return p.textWeight }

// ImageWeight returns the image share of the fused score.
func (p Params) ImageWeight() float64 { return p.imageWeight }

// CombinedThreshold is the single floor the fused score must reach to join a cluster.
func (p Params) CombinedThreshold() float64 {
	return p.textWeight*p.textThreshold + p.imageWeight*p.imageThreshold
}
