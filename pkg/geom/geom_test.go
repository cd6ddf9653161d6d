package geom_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/bastiangx/wordswipe/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDist_IsMetric(t *testing.T) {
	a := geom.Point{X: 0.1, Y: 0.2}
	b := geom.Point{X: 0.4, Y: 0.6}

	assert.InDelta(t, 0.5, geom.Dist(a, b), 1e-12, "3-4-5 triangle scaled by 0.1")
	assert.Equal(t, geom.Dist(a, b), geom.Dist(b, a), "distance must be symmetric")
	assert.Equal(t, 0.0, geom.Dist(a, a), "distance to self must be zero")
}

func TestPath_LengthAndDensity(t *testing.T) {
	p := geom.Path{{X: 0, Y: 0}, {X: 0.3, Y: 0}, {X: 0.3, Y: 0.4}}

	assert.InDelta(t, 0.7, p.Length(), 1e-12)
	assert.InDelta(t, 0.35, p.Density(), 1e-12)
	assert.Equal(t, 0.0, geom.Path{{X: 1, Y: 1}}.Density(), "single point has no spacing")
	assert.Equal(t, 0.0, geom.Path(nil).Length())
}

func TestResample_FixedSpacing(t *testing.T) {
	p := geom.Path{{X: 0.1, Y: 0.5}, {X: 0.7, Y: 0.5}}

	out := p.Resample(0.1)
	require.Len(t, out, 7, "0.6 long segment at 0.1 spacing yields 7 points")
	assert.Equal(t, p.First(), out.First())
	assert.InDelta(t, 0.7, out.Last().X, 1e-9)
	for i := 1; i < len(out); i++ {
		assert.InDelta(t, 0.1, geom.Dist(out[i-1], out[i]), 1e-9)
	}
}

func TestResample_KeepsLastPoint(t *testing.T) {
	p := geom.Path{{X: 0, Y: 0}, {X: 0.25, Y: 0}}

	out := p.Resample(0.1)
	require.Len(t, out, 4)
	assert.Equal(t, p.Last(), out.Last(), "remainder shorter than spacing still ends on the last point")
}

func TestResample_Degenerate(t *testing.T) {
	single := geom.Path{{X: 0.3, Y: 0.3}}
	assert.Equal(t, single, single.Resample(0.05))

	p := geom.Path{{X: 0, Y: 0}, {X: 1, Y: 0}}
	assert.Equal(t, p, p.Resample(0), "non-positive spacing returns the raw path")
}

// TestResample_LengthStability checks that resampling at a spacing small relative to the
// path keeps the total length within 1% of the original polyline.
func TestResample_LengthStability(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(6)
		p := make(geom.Path, n)
		for i := range p {
			p[i] = geom.Point{X: rng.Float64(), Y: rng.Float64()}
		}
		orig := p.Length()
		if orig == 0 {
			continue
		}

		out := p.Resample(orig / 1000)
		got := out.Length()
		assert.LessOrEqual(t, math.Abs(got-orig)/orig, 0.01, "trial %d: length drift too large", trial)
	}
}

func TestResample_KeepsCorners(t *testing.T) {
	zigzag := geom.Path{{X: 0, Y: 0}, {X: 0.3, Y: 0.3}, {X: 0, Y: 0.6}, {X: 0.3, Y: 0.9}, {X: 0, Y: 0.95}}
	orig := zigzag.Length()

	for _, spacing := range []float64{0.05, 0.1, 0.15, 0.2, 0.4} {
		out := zigzag.Resample(spacing)
		assert.InDelta(t, orig, out.Length(), orig*0.01, "spacing %v: length drift too large", spacing)
		for _, corner := range zigzag {
			assert.Contains(t, out, corner, "spacing %v: waypoint dropped", spacing)
		}
		for i := 1; i < len(out); i++ {
			assert.LessOrEqual(t, geom.Dist(out[i-1], out[i]), spacing+1e-9, "spacing %v", spacing)
		}
	}
}

func TestNormalize(t *testing.T) {
	abs := []geom.Point{{X: 100, Y: 50}, {X: 300, Y: 200}}

	rel, err := geom.Normalize(abs, 400, 200, 0.4)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, rel[0].X, 1e-12)
	assert.InDelta(t, 0.1, rel[0].Y, 1e-12)
	assert.InDelta(t, 0.75, rel[1].X, 1e-12)
	assert.InDelta(t, 0.4, rel[1].Y, 1e-12)

	_, err = geom.Normalize(abs, 0, 200, 1)
	assert.ErrorIs(t, err, geom.ErrBadCanvas)
}
