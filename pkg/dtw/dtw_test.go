package dtw_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/bastiangx/wordswipe/pkg/dtw"
	"github.com/bastiangx/wordswipe/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naiveDTW fills the whole cost matrix with no window and no pruning.
func naiveDTW(a, b geom.Path) float64 {
	n, m := len(a), len(b)
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, m)
		for j := range d[i] {
			var best float64
			switch {
			case i == 0 && j == 0:
				best = 0
			case i == 0:
				best = d[i][j-1]
			case j == 0:
				best = d[i-1][j]
			default:
				best = math.Min(d[i-1][j-1], math.Min(d[i-1][j], d[i][j-1]))
			}
			d[i][j] = geom.Dist(a[i], b[j]) + best
		}
	}
	return d[n-1][m-1]
}

func randomPath(rng *rand.Rand, n int) geom.Path {
	p := make(geom.Path, n)
	for i := range p {
		p[i] = geom.Point{X: rng.Float64(), Y: rng.Float64()}
	}
	return p
}

// TestDTW_EmptyInput verifies that DTW returns ErrEmptyInput
// when either path is empty.
func TestDTW_EmptyInput(t *testing.T) {
	p := geom.Path{{X: 0, Y: 0}}

	_, err := dtw.DTW(nil, p, nil)
	assert.ErrorIs(t, err, dtw.ErrEmptyInput, "empty first path should error")

	_, err = dtw.DTW(p, geom.Path{}, nil)
	assert.ErrorIs(t, err, dtw.ErrEmptyInput, "empty second path should error")
}

// TestDTW_BadWindow ensures that Window < -1 triggers ErrBadWindow.
func TestDTW_BadWindow(t *testing.T) {
	opts := dtw.DefaultOptions()
	opts.Window = -2

	p := geom.Path{{X: 0, Y: 0}}
	_, err := dtw.DTW(p, p, &opts)
	assert.ErrorIs(t, err, dtw.ErrBadWindow, "Window < -1 must error")
}

// TestDTW_Identical verifies identical paths have zero distance.
func TestDTW_Identical(t *testing.T) {
	p := geom.Path{{X: 0.1, Y: 0.5}, {X: 0.3, Y: 0.5}, {X: 0.7, Y: 0.2}}

	dist, err := dtw.DTW(p, p, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dist, "identical paths must have zero distance")
}

// TestDTW_SinglePoint covers the degenerate 1x1 alignment.
func TestDTW_SinglePoint(t *testing.T) {
	a := geom.Path{{X: 0, Y: 0}}
	b := geom.Path{{X: 0.3, Y: 0.4}}

	dist, err := dtw.DTW(a, b, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, dist, 1e-12, "1x1 alignment is the point distance")
}

// TestDTW_Stretch checks that repeating points costs nothing.
func TestDTW_Stretch(t *testing.T) {
	a := geom.Path{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	b := geom.Path{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}

	dist, err := dtw.DTW(a, b, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dist, "a perfect stretched match has zero cost")
}

// TestDTW_WindowWidensToLengthGap verifies that a length mismatch larger than
// the window still reaches the end cell.
func TestDTW_WindowWidensToLengthGap(t *testing.T) {
	a := geom.Path{{X: 0}, {X: 1}, {X: 2}}
	b := geom.Path{{X: 0}, {X: 1}, {X: 2}, {X: 3}, {X: 4}}

	opts := dtw.Options{Window: 0}
	narrow, err := dtw.DTW(a, b, &opts)
	require.NoError(t, err)
	assert.False(t, math.IsInf(narrow, 1), "window=0 with length gap 2 must stay finite")

	opts.Window = 2
	gap, err := dtw.DTW(a, b, &opts)
	require.NoError(t, err)
	assert.Equal(t, gap, narrow, "a window below the gap behaves like the gap")
	assert.InDelta(t, 3.0, gap, 1e-12, "extra points 3 and 4 align with 2")

	for _, w := range []int{0, 1} {
		assert.Equal(t, gap, dtw.Bounded(a, b, w, math.Inf(1)), "bounded w=%d", w)
		assert.Equal(t, gap, dtw.Cumulative(a, b, w, 10), "cumulative w=%d", w)
	}
}

// TestCumulative_NoBand checks that a negative window runs the unconstrained DP
// instead of abandoning every candidate.
func TestCumulative_NoBand(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 100; trial++ {
		a := randomPath(rng, 1+rng.Intn(15))
		b := randomPath(rng, 1+rng.Intn(15))
		exact := naiveDTW(a, b)

		assert.InDelta(t, exact, dtw.Cumulative(a, b, -1, exact), 1e-9, "trial %d", trial)
	}
}

// TestDTW_MatchesNaive compares the rolling implementation with a full matrix.
func TestDTW_MatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		a := randomPath(rng, 1+rng.Intn(20))
		b := randomPath(rng, 1+rng.Intn(20))

		got, err := dtw.DTW(a, b, nil)
		require.NoError(t, err)
		assert.InDelta(t, naiveDTW(a, b), got, 1e-9, "trial %d", trial)
	}
}

// TestDTW_WindowNeverBeatsUnconstrained checks that the band only removes alignments.
func TestDTW_WindowNeverBeatsUnconstrained(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 200; trial++ {
		a := randomPath(rng, 5+rng.Intn(15))
		b := randomPath(rng, 5+rng.Intn(15))
		w := rng.Intn(8)

		banded := dtw.Bounded(a, b, w, math.Inf(1))
		assert.GreaterOrEqual(t, banded, naiveDTW(a, b)-1e-12, "trial %d", trial)
	}
}

// TestLowerBound_Validity samples random paths and checks Kim's bound against
// brute-force DTW with no window.
func TestLowerBound_Validity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 500; trial++ {
		a := randomPath(rng, 1+rng.Intn(12))
		b := randomPath(rng, 1+rng.Intn(12))

		lb := dtw.LowerBound(a.Endpoints(), b.Endpoints())
		assert.LessOrEqual(t, lb, naiveDTW(a, b), "trial %d: bound above true distance", trial)
	}
}

// TestLowerBound_SingleCell counts the shared start/end cell once.
func TestLowerBound_SingleCell(t *testing.T) {
	a := geom.Path{{X: 0, Y: 0}}
	b := geom.Path{{X: 0.3, Y: 0.4}}

	assert.InDelta(t, 0.5, dtw.LowerBound(a.Endpoints(), b.Endpoints()), 1e-12)
}

// TestPruned_ExactOrAbandoned checks both abandoning variants: every answer is either the
// exact banded distance, or +Inf for a candidate whose exact distance exceeds bsf.
func TestPruned_ExactOrAbandoned(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	variants := map[string]func(a, b geom.Path, w int, bsf float64) float64{
		"bounded":    dtw.Bounded,
		"cumulative": dtw.Cumulative,
	}

	for name, fn := range variants {
		for trial := 0; trial < 300; trial++ {
			a := randomPath(rng, 5+rng.Intn(20))
			b := randomPath(rng, 5+rng.Intn(20))
			w := 3 + rng.Intn(10)
			exact := dtw.Bounded(a, b, w, math.Inf(1))
			bsf := rng.Float64() * 10

			got := fn(a, b, w, bsf)
			if math.IsInf(got, 1) {
				assert.Greater(t, exact, bsf, "%s trial %d: abandoned a candidate within bsf", name, trial)
				continue
			}
			assert.Equal(t, exact, got, "%s trial %d: completed distance must be exact", name, trial)
		}
	}
}

// TestPruned_TieIsComputed ensures a candidate equal to bsf is never abandoned.
func TestPruned_TieIsComputed(t *testing.T) {
	a := geom.Path{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 1, Y: 0}}
	b := geom.Path{{X: 0, Y: 0.1}, {X: 0.5, Y: 0.1}, {X: 1, Y: 0.1}}
	exact := dtw.Bounded(a, b, 1, math.Inf(1))

	assert.Equal(t, exact, dtw.Bounded(a, b, 1, exact))
	assert.Equal(t, exact, dtw.Cumulative(a, b, 1, exact))
}

func TestParseStrategy(t *testing.T) {
	cases := map[string]dtw.Strategy{
		"":         dtw.Combined{},
		"combined": dtw.Combined{},
		"KIM":      dtw.Kim{},
		"ucr":      dtw.UCR{},
		"none":     dtw.Exhaustive{},
	}
	for name, want := range cases {
		got, err := dtw.ParseStrategy(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := dtw.ParseStrategy("fastest")
	assert.ErrorIs(t, err, dtw.ErrUnknownStrategy)
}

func TestStrategies_Skip(t *testing.T) {
	q := geom.Path{{X: 0, Y: 0}, {X: 1, Y: 0}}.Endpoints()
	far := geom.Path{{X: 0, Y: 1}, {X: 1, Y: 1}}.Endpoints()

	assert.True(t, dtw.Kim{}.Skip(q, far, 1.5), "bound 2 exceeds bsf 1.5")
	assert.False(t, dtw.Kim{}.Skip(q, far, 2), "bound equal to bsf is not skipped")
	assert.True(t, dtw.Combined{}.Skip(q, far, 1.5))
	assert.False(t, dtw.UCR{}.Skip(q, far, 0))
	assert.False(t, dtw.Exhaustive{}.Skip(q, far, 0))
}
