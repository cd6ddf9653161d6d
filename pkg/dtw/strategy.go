package dtw

import (
	"fmt"
	"math"
	"strings"

	"github.com/bastiangx/wordswipe/pkg/geom"
)

// Strategy decides how a candidate is pruned during a dictionary scan.
//
// Skip is consulted with endpoint summaries only, before the candidate path is built.
// Distance returns the windowed DTW distance, or +Inf once the candidate is known to be
// worse than bsf. Neither may discard a candidate whose true distance is <= bsf.
type Strategy interface {
	Skip(query, candidate geom.Endpoints, bsf float64) bool
	Distance(query, candidate geom.Path, w int, bsf float64) float64
}

// Kim pre-filters with the endpoint lower bound and abandons on row minimums.
type Kim struct{}

// Skip reports whether the endpoint bound already exceeds bsf.
func (Kim) Skip(query, candidate geom.Endpoints, bsf float64) bool {
	return LowerBound(query, candidate) > bsf
}

// Distance runs Bounded.
func (Kim) Distance(query, candidate geom.Path, w int, bsf float64) float64 {
	return Bounded(query, candidate, w, bsf)
}

// UCR never pre-filters and abandons with the cumulative row bound.
type UCR struct{}

// Skip always returns false.
func (UCR) Skip(geom.Endpoints, geom.Endpoints, float64) bool {
	return false
}

// Distance runs Cumulative.
func (UCR) Distance(query, candidate geom.Path, w int, bsf float64) float64 {
	return Cumulative(query, candidate, w, bsf)
}

// Combined uses Kim's pre-filter followed by the cumulative bound.
type Combined struct{}

// Skip reports whether the endpoint bound already exceeds bsf.
func (Combined) Skip(query, candidate geom.Endpoints, bsf float64) bool {
	return Kim{}.Skip(query, candidate, bsf)
}

// Distance runs Cumulative.
func (Combined) Distance(query, candidate geom.Path, w int, bsf float64) float64 {
	return Cumulative(query, candidate, w, bsf)
}

// Exhaustive computes every windowed distance in full.
type Exhaustive struct{}

// Skip always returns false.
func (Exhaustive) Skip(geom.Endpoints, geom.Endpoints, float64) bool {
	return false
}

// Distance runs the banded DP without abandoning.
func (Exhaustive) Distance(query, candidate geom.Path, w int, _ float64) float64 {
	return Bounded(query, candidate, w, math.Inf(1))
}

// ParseStrategy maps a config name to a Strategy:
// "combined" (or empty), "kim", "ucr" and "none".
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "combined":
		return Combined{}, nil
	case "kim":
		return Kim{}, nil
	case "ucr":
		return UCR{}, nil
	case "none", "exhaustive":
		return Exhaustive{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
