// Package geom holds the 2D point and path primitives shared by layouts, ideal word paths and
// drawn gestures. All coordinates live in the keyboard-relative frame.
package geom

import (
	"errors"
	"math"
)

// ErrBadCanvas is returned by Normalize for non-positive canvas sizes.
var ErrBadCanvas = errors.New("geom: canvas width and height must be positive")

// Point is a position in keyboard-relative coordinates.
type Point struct {
	X float64
	Y float64
}

// Path is an ordered sequence of points in traversal order.
type Path []Point

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp returns the point at fraction t along the segment a->b.
func Lerp(a, b Point, t float64) Point {
	return Point{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
	}
}

// Length returns the total polyline length of the path.
func (p Path) Length() float64 {
	total := 0.0
	for i := 1; i < len(p); i++ {
		total += Dist(p[i-1], p[i])
	}
	return total
}

// Density returns the average spacing between consecutive points,
// or 0 for paths with fewer than two points.
func (p Path) Density() float64 {
	if len(p) < 2 {
		return 0
	}
	return p.Length() / float64(len(p)-1)
}

// First returns the first point. The path must be non-empty.
func (p Path) First() Point { return p[0] }

// Last returns the last point. The path must be non-empty.
func (p Path) Last() Point { return p[len(p)-1] }

// Resample walks the polyline and emits a point every spacing units of arc length,
// restarting the walk at each waypoint so corners are kept and the length is unchanged.
// The first and last points of p are always part of the result.
// A non-positive spacing, or a path with fewer than two points, yields a copy of p.
func (p Path) Resample(spacing float64) Path {
	if len(p) < 2 || spacing <= 0 {
		out := make(Path, len(p))
		copy(out, p)
		return out
	}

	out := make(Path, 0, int(p.Length()/spacing)+len(p))
	out = append(out, p[0])

	for i := 1; i < len(p); i++ {
		from, to := p[i-1], p[i]
		seg := Dist(from, to)
		if seg == 0 {
			continue
		}
		// a remainder shorter than a rounding error would duplicate the waypoint
		for k := 1; float64(k)*spacing < seg-spacing*1e-6; k++ {
			out = append(out, Lerp(from, to, float64(k)*spacing/seg))
		}
		out = append(out, to)
	}
	return out
}

// Normalize maps absolute canvas coordinates into the keyboard-relative frame.
// The y axis is additionally scaled by yScale so vertical travel does not outweigh
// horizontal travel on wide keyboards.
func Normalize(abs []Point, width, height, yScale float64) (Path, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrBadCanvas
	}
	out := make(Path, len(abs))
	for i, pt := range abs {
		out[i] = Point{
			X: pt.X / width,
			Y: pt.Y / height * yScale,
		}
	}
	return out, nil
}

// Endpoints summarizes a path by its first and last points. Single is set when the
// path consists of one point, in which case First and Last coincide.
type Endpoints struct {
	First  Point
	Last   Point
	Single bool
}

// Endpoints returns the endpoint summary of a non-empty path.
func (p Path) Endpoints() Endpoints {
	return Endpoints{First: p[0], Last: p[len(p)-1], Single: len(p) == 1}
}
