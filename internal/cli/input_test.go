package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/bastiangx/wordswipe/internal/logger"
	"github.com/bastiangx/wordswipe/pkg/dictionary"
	"github.com/bastiangx/wordswipe/pkg/geom"
	"github.com/bastiangx/wordswipe/pkg/layout"
	"github.com/bastiangx/wordswipe/pkg/recognize"
	"github.com/bastiangx/wordswipe/pkg/topk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoints(t *testing.T) {
	pts, err := ParsePoints("600,150 250,50;900.5,150\t850,50")
	require.NoError(t, err)
	assert.Equal(t, []geom.Point{{X: 600, Y: 150}, {X: 250, Y: 50}, {X: 900.5, Y: 150}, {X: 850, Y: 50}}, pts)

	_, err = ParsePoints("600 150")
	assert.ErrorIs(t, err, ErrBadPoint)

	_, err = ParsePoints("1,x")
	assert.ErrorIs(t, err, ErrBadPoint)
}

// spy records what the handler asked for.
type spy struct {
	paths    []geom.Path
	contains []string
	nearest  []string
}

func (s *spy) Recognize(_ context.Context, p geom.Path, _ int) ([]topk.Candidate, error) {
	s.paths = append(s.paths, p)
	return []topk.Candidate{{Word: "hello", Distance: 0.5}}, nil
}

func (s *spy) Contains(w string) bool {
	s.contains = append(s.contains, w)
	return w == "hello"
}

func (s *spy) Nearest(w string, _ int) []string {
	s.nearest = append(s.nearest, w)
	return []string{"hello"}
}

func (s *spy) Stats() map[string]int { return map[string]int{"totalWords": 1} }

func TestRun_Dispatch(t *testing.T) {
	r := &spy{}
	h := NewInputHandler(r, Options{K: 3, CanvasWidth: 1000, CanvasHeight: 300, YScale: 0.4})

	input := "? hello\n?helo\n\n600,150 300,150\nhello\n1,2 3"
	require.NoError(t, h.Run(context.Background(), strings.NewReader(input)))

	assert.Equal(t, []string{"hello", "helo"}, r.contains)
	assert.Equal(t, []string{"helo"}, r.nearest, "only misses get suggestions")
	require.Len(t, r.paths, 1, "words and malformed gestures are not recognized")
	assert.InDelta(t, 0.6, r.paths[0][0].X, 1e-12)
	assert.InDelta(t, 0.2, r.paths[0][0].Y, 1e-12)
	assert.Equal(t, 5, h.requestCount)
}

func TestRun_RealRecognizer(t *testing.T) {
	rec, err := recognize.New(dictionary.New([]string{"hello", "world"}), layout.Default().Scale(1, 0.4),
		recognize.WithLogger(logger.Discard()))
	require.NoError(t, err)

	h := NewInputHandler(rec, Options{K: 2, CanvasWidth: 1, CanvasHeight: 1, YScale: 0.4})
	assert.NoError(t, h.Run(context.Background(), strings.NewReader("0.6,0.5 0.25,0.17 0.9,0.5 0.85,0.17\n? world\n")))
}
