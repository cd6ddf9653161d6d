// Package wordpath builds the ideal gesture of a word: the polyline through the key
// centers of its letters, optionally resampled to the point density of a drawn path.
package wordpath

import (
	"github.com/bastiangx/wordswipe/pkg/geom"
	"github.com/bastiangx/wordswipe/pkg/layout"
)

// WordPath is the ideal path of one word. The zero value has no path.
type WordPath struct {
	Word      string
	waypoints geom.Path
	// fixed is a path resampled ahead of time; when set it is returned for every spacing.
	fixed geom.Path
}

// New maps every letter of word to its key center. Letters without a key are skipped and
// repeated letters collapse into one waypoint.
// A word whose first letter has no key gets no waypoints at all.
func New(l *layout.Layout, word string) WordPath {
	wp := WordPath{Word: word}

	for i, r := range word {
		center, ok := l.Center(r)
		if !ok {
			if i == 0 {
				return wp
			}
			continue
		}
		if n := len(wp.waypoints); n > 0 && wp.waypoints[n-1] == center {
			continue
		}
		wp.waypoints = append(wp.waypoints, center)
	}
	return wp
}

// Valid reports whether the word produced at least one waypoint.
func (wp WordPath) Valid() bool {
	return len(wp.waypoints) > 0
}

// Waypoints returns the raw key centers in typing order.
func (wp WordPath) Waypoints() geom.Path {
	return wp.waypoints
}

// Endpoints returns the first and last waypoints without resampling.
// The bool is false when the word has no path.
func (wp WordPath) Endpoints() (geom.Endpoints, bool) {
	if !wp.Valid() {
		return geom.Endpoints{}, false
	}
	return wp.waypoints.Endpoints(), true
}

// Path returns the ideal path resampled at spacing, or the raw waypoints when
// spacing <= 0. The bool is false when the word has no path.
func (wp WordPath) Path(spacing float64) (geom.Path, bool) {
	if !wp.Valid() {
		return nil, false
	}
	if wp.fixed != nil {
		return wp.fixed, true
	}
	if spacing <= 0 {
		return wp.waypoints, true
	}
	return wp.waypoints.Resample(spacing), true
}

// Source hands out word paths to the recognizer, either by generating them on
// demand or from a table built ahead of time.
type Source interface {
	Lookup(word string) (WordPath, bool)
}

// Lazy generates every path on demand from the layout.
type Lazy struct {
	layout *layout.Layout
}

// NewLazy returns a Source that builds paths per lookup.
func NewLazy(l *layout.Layout) *Lazy {
	return &Lazy{layout: l}
}

// Lookup builds the word path; false when the word has no path.
func (s *Lazy) Lookup(word string) (WordPath, bool) {
	wp := New(s.layout, word)
	return wp, wp.Valid()
}
