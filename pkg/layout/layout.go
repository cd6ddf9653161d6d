// Package layout maps keyboard letters to their normalized key centers.
//
// A Layout is built once (from the built-in QWERTY table or from a layout file) and
// is read-only afterwards, so it can be shared by every concurrent recognition scan.
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/wordswipe/pkg/geom"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyLayout is returned when a layout would contain no keys.
	ErrEmptyLayout = errors.New("layout: no keys defined")

	// ErrBadKey is returned for key identifiers that are not a single letter.
	ErrBadKey = errors.New("layout: key must be a single letter")

	// ErrUnknownFormat is returned by LoadFile for unsupported file extensions.
	ErrUnknownFormat = errors.New("layout: unsupported file format")
)

// qwertyRows are the letter rows of the built-in layout, top to bottom.
var qwertyRows = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

// Layout is an immutable letter -> key center table.
type Layout struct {
	centers map[rune]geom.Point
}

// New builds a layout from a center table. Keys are lowercased; the table is copied.
func New(centers map[rune]geom.Point) (*Layout, error) {
	if len(centers) == 0 {
		return nil, ErrEmptyLayout
	}
	l := &Layout{centers: make(map[rune]geom.Point, len(centers))}
	for r, p := range centers {
		if !unicode.IsLetter(r) {
			return nil, fmt.Errorf("%w: %q", ErrBadKey, r)
		}
		l.centers[unicode.ToLower(r)] = p
	}
	return l, nil
}

// Default returns the built-in QWERTY layout. Each row is staggered by half a key
// like a phone keyboard; centers lie in [0,1]x[0,1].
func Default() *Layout {
	const keyWidth = 0.1
	rowHeight := 1.0 / float64(len(qwertyRows))

	centers := make(map[rune]geom.Point, 26)
	for row, letters := range qwertyRows {
		offset := float64(row) * keyWidth / 2
		if row == 2 {
			offset = 1.5 * keyWidth
		}
		for col, r := range letters {
			centers[r] = geom.Point{
				X: offset + (float64(col)+0.5)*keyWidth,
				Y: (float64(row) + 0.5) * rowHeight,
			}
		}
	}
	return &Layout{centers: centers}
}

// Center returns the key center of r. The bool is false for characters without a key,
// which callers skip rather than fail on.
func (l *Layout) Center(r rune) (geom.Point, bool) {
	p, ok := l.centers[unicode.ToLower(r)]
	return p, ok
}

// Len returns the number of keys.
func (l *Layout) Len() int {
	return len(l.centers)
}

// Keys returns the defined letters in ascending order.
func (l *Layout) Keys() []rune {
	keys := make([]rune, 0, len(l.centers))
	for r := range l.centers {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Scale returns a copy of the layout with every center multiplied by (sx, sy).
func (l *Layout) Scale(sx, sy float64) *Layout {
	scaled := &Layout{centers: make(map[rune]geom.Point, len(l.centers))}
	for r, p := range l.centers {
		scaled.centers[r] = geom.Point{X: p.X * sx, Y: p.Y * sy}
	}
	return scaled
}

// layoutFile is the on-disk shape shared by the TOML and YAML formats:
//
//	[keys]
//	q = [0.05, 0.1667]
type layoutFile struct {
	Keys map[string][]float64 `toml:"keys" yaml:"keys"`
}

// LoadFile reads a layout table from a .toml, .yaml or .yml file.
func LoadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file %s: %w", path, err)
	}

	var lf layoutFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &lf); err != nil {
			return nil, fmt.Errorf("failed to parse layout file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &lf); err != nil {
			return nil, fmt.Errorf("failed to parse layout file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, ext)
	}

	centers := make(map[rune]geom.Point, len(lf.Keys))
	for key, xy := range lf.Keys {
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrBadKey, key)
		}
		if len(xy) != 2 {
			return nil, fmt.Errorf("layout: key %q needs [x, y], got %d values", key, len(xy))
		}
		r, _ := utf8.DecodeRuneInString(key)
		centers[r] = geom.Point{X: xy[0], Y: xy[1]}
	}

	l, err := New(centers)
	if err != nil {
		return nil, fmt.Errorf("invalid layout file %s: %w", path, err)
	}
	log.Debugf("Loaded layout with %d keys from %s", l.Len(), path)
	return l, nil
}
