// Package cli handles cmd line input for debugging the recognizer in real-time
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordswipe/internal/utils"
	"github.com/bastiangx/wordswipe/pkg/geom"
	"github.com/bastiangx/wordswipe/pkg/recognize"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// ErrBadPoint is returned for a gesture line that is not a list of x,y pairs.
var ErrBadPoint = errors.New("expected x,y pairs separated by spaces")

// Options configure the InputHandler.
type Options struct {
	K            int
	CanvasWidth  float64
	CanvasHeight float64
	YScale       float64
}

// InputHandler reads gestures or membership queries line by line. A line starting with
// '?' asks whether the rest is a dictionary word; any other line is a gesture written as
// absolute canvas points, e.g. "600,150 250,50 900,150 850,50".
type InputHandler struct {
	recognizer   recognize.IRecognizer
	opts         Options
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(r recognize.IRecognizer, opts Options) *InputHandler {
	return &InputHandler{recognizer: r, opts: opts}
}

// Start begins the interface loop on stdin.
func (h *InputHandler) Start(ctx context.Context) error {
	return h.Run(ctx, os.Stdin)
}

// Run prompts for input and handles each non-empty line until in ends or ctx is done.
func (h *InputHandler) Run(ctx context.Context, in io.Reader) error {
	stats := h.recognizer.Stats()
	log.Print("WordSwipe CLI [BETA]")
	log.Printf("%s words loaded. Enter x,y points of a gesture, or '? word' (Ctrl+C to exit):",
		humanize.Comma(int64(stats["totalWords"])))

	reader := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			h.handleInput(ctx, line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// handleInput dispatches one line.
func (h *InputHandler) handleInput(ctx context.Context, line string) {
	h.requestCount++

	if word, ok := strings.CutPrefix(line, "?"); ok {
		h.handleMembership(strings.TrimSpace(word))
		return
	}
	if !utils.ContainsNumbers(line) {
		log.Warnf("Not a gesture: '%s'. Use '? %s' to look up a word", line, line)
		return
	}

	abs, err := ParsePoints(line)
	if err != nil {
		log.Errorf("Bad gesture: %v", err)
		return
	}
	path, err := geom.Normalize(abs, h.opts.CanvasWidth, h.opts.CanvasHeight, h.opts.YScale)
	if err != nil {
		log.Errorf("Bad canvas: %v", err)
		return
	}

	start := time.Now()
	results, err := h.recognizer.Recognize(ctx, path, h.opts.K)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("Recognition failed: %v", err)
		return
	}
	log.Debugf("Took [ %v ] for %d points", elapsed, len(path))

	if len(results) == 0 {
		log.Warnf("No word fits this gesture (%d points)", len(path))
		return
	}

	log.Printf("Found %d words for %d points in %v:", len(results), len(path), elapsed)
	for i, c := range results {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", c.Word)
		log.Printf("%2d. %-40s (dist: %8s)", i+1, clWord, humanize.FtoaWithDigits(c.Distance, 4))
	}
}

func (h *InputHandler) handleMembership(word string) {
	if word == "" {
		log.Warn("Usage: ? word")
		return
	}
	if h.recognizer.Contains(word) {
		log.Printf("'%s' is in the dictionary", word)
		return
	}
	if near := h.recognizer.Nearest(word, 5); len(near) > 0 {
		log.Printf("'%s' is not in the dictionary. Did you mean: %s?", word, strings.Join(near, ", "))
		return
	}
	log.Printf("'%s' is not in the dictionary", word)
}

// ParsePoints reads "x,y x,y ..." into points. Pairs may also be separated by ';'.
func ParsePoints(line string) ([]geom.Point, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ';'
	})

	points := make([]geom.Point, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadPoint, f)
		}
		x, errX := strconv.ParseFloat(xs, 64)
		y, errY := strconv.ParseFloat(ys, 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadPoint, f)
		}
		points = append(points, geom.Point{X: x, Y: y})
	}
	return points, nil
}
