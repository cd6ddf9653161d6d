package dtw

import (
	"math"

	"github.com/bastiangx/wordswipe/pkg/geom"
)

// DTW computes the Dynamic Time Warping distance between a and b.
// A nil opts means DefaultOptions.
//
// Example:
//
//	opts := dtw.Options{Window: 3}
//	dist, err := dtw.DTW(query, candidate, &opts)
func DTW(a, b geom.Path, opts *Options) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmptyInput
	}

	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Window < -1 {
		return 0, ErrBadWindow
	}

	bsf := math.Inf(1)
	if o.Cutoff > 0 {
		bsf = o.Cutoff
	}
	return banded(a, b, o.Window, bsf, nil), nil
}

// Bounded computes the windowed DTW distance and abandons with +Inf as soon as every
// cell of a DP row exceeds bsf. A negative w means no band.
func Bounded(a, b geom.Path, w int, bsf float64) float64 {
	return banded(a, b, w, bsf, nil)
}

// Cumulative computes the windowed DTW distance, abandoning with +Inf when a row minimum
// plus the lower bound of all remaining rows exceeds bsf. A negative w means no band.
func Cumulative(a, b geom.Path, w int, bsf float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return math.Inf(1)
	}
	if w < 0 || math.IsInf(bsf, 1) {
		return banded(a, b, w, bsf, nil)
	}
	w = reach(len(a), len(b), w)
	return banded(a, b, w, bsf, cumulativeBound(a, b, w))
}

// LowerBound returns Kim's endpoint lower bound of the DTW distance between the paths
// summarized by a and b. When both are single points the start and end cells coincide
// and the distance is counted once.
func LowerBound(a, b geom.Endpoints) float64 {
	if a.Single && b.Single {
		return geom.Dist(a.First, b.First)
	}
	return geom.Dist(a.First, b.First) + geom.Dist(a.Last, b.Last)
}

// reach widens a band of width w to the length gap of the paths, so the end cell
// (n-1, m-1) is always inside it.
func reach(n, m, w int) int {
	return max(w, abs(n-m))
}

// banded runs the DP over two rolling rows restricted to |i-j| <= reach(n, m, w)
// (w < 0: no band).
// rest, when non-nil, has len(a)+1 entries: rest[i] lower-bounds the cost of rows i..n-1.
func banded(a, b geom.Path, w int, bsf float64, rest []float64) float64 {
	n, m := len(a), len(b)
	inf := math.Inf(1)
	if n == 0 || m == 0 {
		return inf
	}
	if w < 0 {
		w = max(n, m)
	} else {
		w = reach(n, m, w)
	}

	prev := make([]float64, m)
	curr := make([]float64, m)
	for j := range prev {
		prev[j] = inf
		curr[j] = inf
	}

	for i := 0; i < n; i++ {
		lo := max(0, i-w)
		hi := min(m-1, i+w)
		rowMin := inf

		for j := lo; j <= hi; j++ {
			var best float64
			if i == 0 && j == 0 {
				best = 0
			} else {
				best = inf
				if i > 0 {
					best = math.Min(best, prev[j])
					if j > 0 {
						best = math.Min(best, prev[j-1])
					}
				}
				if j > lo {
					best = math.Min(best, curr[j-1])
				}
			}
			curr[j] = geom.Dist(a[i], b[j]) + best
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}

		bound, limit := rowMin, bsf
		if rest != nil {
			// the suffix sums are added in a different order than the DP accumulates,
			// so allow for rounding before calling a tie a loss
			bound += rest[i+1]
			limit += bsf * 1e-9
		}
		if bound > limit {
			return inf
		}
		prev, curr = curr, prev
	}

	return prev[m-1]
}

// cumulativeBound returns the suffix sums of per-row lower bounds: row i of any alignment
// visits some b[j] with |i-j| <= w, so its cost is at least the distance from a[i] to the
// bounding box of that window of b.
func cumulativeBound(a, b geom.Path, w int) []float64 {
	n := len(a)
	boxes := envelope(b, n, w)

	rest := make([]float64, n+1)
	for i := n - 1; i >= 0; i-- {
		rest[i] = rest[i+1] + boxes[i].dist(a[i])
	}
	return rest
}

// box is an axis-aligned bounding box.
type box struct {
	minX, maxX, minY, maxY float64
}

// dist returns the distance from p to the box, 0 when p is inside.
func (bx box) dist(p geom.Point) float64 {
	dx := math.Max(0, math.Max(bx.minX-p.X, p.X-bx.maxX))
	dy := math.Max(0, math.Max(bx.minY-p.Y, p.Y-bx.maxY))
	return math.Sqrt(dx*dx + dy*dy)
}

// envelope returns, for rows 0..n-1, the bounding box of b[max(0,i-w) .. min(m-1,i+w)].
// w must be at least |n-m| so no row is empty. Both window ends only move forward, so monotonic deques give the extrema in O(n+m).
func envelope(b geom.Path, n, w int) []box {
	m := len(b)
	boxes := make([]box, n)

	minX := newExtremum(m, func(i, j int) bool { return b[i].X <= b[j].X })
	maxX := newExtremum(m, func(i, j int) bool { return b[i].X >= b[j].X })
	minY := newExtremum(m, func(i, j int) bool { return b[i].Y <= b[j].Y })
	maxY := newExtremum(m, func(i, j int) bool { return b[i].Y >= b[j].Y })
	all := []*extremum{minX, maxX, minY, maxY}

	next := 0
	for i := 0; i < n; i++ {
		lo := max(0, i-w)
		hi := min(m-1, i+w)
		for ; next <= hi; next++ {
			for _, e := range all {
				e.push(next)
			}
		}
		for _, e := range all {
			e.evict(lo)
		}
		boxes[i] = box{
			minX: b[minX.front()].X,
			maxX: b[maxX.front()].X,
			minY: b[minY.front()].Y,
			maxY: b[maxY.front()].Y,
		}
	}
	return boxes
}

// extremum is a monotonic deque of indices whose front is the window extremum.
type extremum struct {
	idx       []int
	head      int
	dominates func(i, j int) bool
}

func newExtremum(capacity int, dominates func(i, j int) bool) *extremum {
	return &extremum{idx: make([]int, 0, capacity), dominates: dominates}
}

func (e *extremum) push(j int) {
	for len(e.idx) > e.head && e.dominates(j, e.idx[len(e.idx)-1]) {
		e.idx = e.idx[:len(e.idx)-1]
	}
	e.idx = append(e.idx, j)
}

func (e *extremum) evict(lo int) {
	for e.head < len(e.idx) && e.idx[e.head] < lo {
		e.head++
	}
}

func (e *extremum) front() int {
	return e.idx[e.head]
}

// abs returns the absolute value of an int.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
