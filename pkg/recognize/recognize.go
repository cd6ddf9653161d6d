package recognize

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bastiangx/wordswipe/internal/logger"
	"github.com/bastiangx/wordswipe/pkg/dictionary"
	"github.com/bastiangx/wordswipe/pkg/dtw"
	"github.com/bastiangx/wordswipe/pkg/geom"
	"github.com/bastiangx/wordswipe/pkg/layout"
	"github.com/bastiangx/wordswipe/pkg/topk"
	"github.com/bastiangx/wordswipe/pkg/wordpath"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyQuery       = errors.New("recognize: empty query path")
	ErrNotInitialized   = errors.New("recognize: dictionary or layout not initialized")
	ErrInvalidParameter = errors.New("recognize: invalid parameter")
)

// nearestEdits is how far Nearest looks for a misspelled membership query.
const nearestEdits = 2

// Recognizer matches drawn paths against every dictionary word. It is immutable after New
// and safe for concurrent use.
type Recognizer struct {
	dict     *dictionary.Dictionary
	layout   *layout.Layout
	source   wordpath.Source
	strategy dtw.Strategy
	ratio    float64
	workers  int
	logger   *log.Logger
}

var _ IRecognizer = (*Recognizer)(nil)

// New creates a recognizer over dict, with word paths built on layout.
func New(dict *dictionary.Dictionary, l *layout.Layout, opts ...Option) (*Recognizer, error) {
	if dict.Len() == 0 || l == nil || l.Len() == 0 {
		return nil, ErrNotInitialized
	}

	r := &Recognizer{
		dict:     dict,
		layout:   l,
		strategy: dtw.Combined{},
		ratio:    DefaultWindowRatio,
		workers:  1,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.ratio < 0 || math.IsNaN(r.ratio) {
		return nil, fmt.Errorf("%w: window ratio %v", ErrInvalidParameter, r.ratio)
	}
	if r.source == nil {
		r.source = wordpath.NewLazy(l)
	}
	if r.logger == nil {
		r.logger = logger.New("recognize")
	}

	r.logger.Debugf("Recognizer ready: %d words, strategy %T, ratio %.2f, %d workers",
		dict.Len(), r.strategy, r.ratio, r.workers)
	return r, nil
}

// query is what every shard needs to score candidates against one drawn path.
type query struct {
	path    geom.Path
	ends    geom.Endpoints
	spacing float64
	window  int
	k       int
}

// scanStats counts what happened to each scanned word.
type scanStats struct {
	noPath    int
	skipped   int
	abandoned int
	computed  int
}

func (s *scanStats) add(o scanStats) {
	s.noPath += o.noPath
	s.skipped += o.skipped
	s.abandoned += o.abandoned
	s.computed += o.computed
}

// Recognize returns up to k words ranked by windowed DTW distance to path, closest first.
// Equal distances rank alphabetically. Words without a path on the layout are never
// returned, so fewer than k results is possible.
func (r *Recognizer) Recognize(ctx context.Context, path geom.Path, k int) ([]topk.Candidate, error) {
	if r == nil || r.dict == nil {
		return nil, ErrNotInitialized
	}
	if len(path) == 0 {
		return nil, ErrEmptyQuery
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k = %d", ErrInvalidParameter, k)
	}

	start := time.Now()
	q := query{
		path:    path,
		ends:    path.Endpoints(),
		spacing: path.Density(),
		window:  int(math.Round(r.ratio * float64(len(path)))),
		k:       k,
	}

	words := r.dict.Words()
	shards := min(r.workers, len(words))

	var (
		results []topk.Candidate
		stats   scanStats
		err     error
	)
	if shards <= 1 {
		results, stats, err = r.scan(ctx, q, words, 0, newSharedBound())
	} else {
		results, stats, err = r.scanParallel(ctx, q, words, shards)
	}
	if err != nil {
		return nil, err
	}

	r.logger.Debugf("Recognized %d points (window %d) in %v: %d computed, %d abandoned, %d skipped, %d without path",
		len(path), q.window, time.Since(start), stats.computed, stats.abandoned, stats.skipped, stats.noPath)
	return results, nil
}

// scanParallel splits words into contiguous shards scanned concurrently. Each shard owns
// its tracker; the shared bound only prunes, so merging by (distance, index) gives the
// same ranking as a sequential scan.
func (r *Recognizer) scanParallel(ctx context.Context, q query, words []string, shards int) ([]topk.Candidate, scanStats, error) {
	g, gctx := errgroup.WithContext(ctx)
	bound := newSharedBound()
	lists := make([][]topk.Candidate, shards)
	stats := make([]scanStats, shards)

	size := (len(words) + shards - 1) / shards
	for s := 0; s < shards; s++ {
		lo := s * size
		hi := min(lo+size, len(words))
		if lo >= hi {
			break
		}
		g.Go(func() error {
			res, st, err := r.scan(gctx, q, words[lo:hi], lo, bound)
			lists[s], stats[s] = res, st
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, scanStats{}, err
	}

	var total scanStats
	for _, st := range stats {
		total.add(st)
	}
	return topk.Merge(q.k, lists...), total, nil
}

// scan scores words in order. offset is the index of words[0] in the full dictionary.
func (r *Recognizer) scan(ctx context.Context, q query, words []string, offset int, shared *sharedBound) ([]topk.Candidate, scanStats, error) {
	tracker, err := topk.New(q.k)
	if err != nil {
		return nil, scanStats{}, err
	}

	var st scanStats
	for i, word := range words {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}

		wp, ok := r.source.Lookup(word)
		if !ok {
			st.noPath++
			continue
		}
		ends, _ := wp.Endpoints()

		bsf := math.Min(tracker.Bound(), shared.load())
		if r.strategy.Skip(q.ends, ends, bsf) {
			st.skipped++
			continue
		}

		candidate, _ := wp.Path(q.spacing)
		d := r.strategy.Distance(q.path, candidate, q.window, bsf)
		if math.IsInf(d, 1) {
			st.abandoned++
			continue
		}
		st.computed++

		if tracker.Insert(topk.Candidate{Word: word, Distance: d, Index: offset + i}) {
			shared.lower(tracker.Bound())
		}
	}
	return tracker.Results(), st, nil
}

// Contains reports whether word is in the dictionary. Case is folded since entries are
// stored lowercase; the word is otherwise taken literally.
func (r *Recognizer) Contains(word string) bool {
	if r == nil {
		return false
	}
	return r.dict.Contains(strings.ToLower(word))
}

// Nearest suggests up to limit dictionary words within two edits of word.
func (r *Recognizer) Nearest(word string, limit int) []string {
	if r == nil {
		return nil
	}
	return r.dict.Nearest(word, nearestEdits, limit)
}

// Stats returns statistics about the loaded dictionary and path source
func (r *Recognizer) Stats() map[string]int {
	stats := map[string]int{
		"totalWords": r.dict.Len(),
		"layoutKeys": r.layout.Len(),
		"workers":    r.workers,
	}
	if c, ok := r.source.(*wordpath.Cache); ok {
		for k, v := range c.Stats() {
			stats[k] = v
		}
	}
	return stats
}

// sharedBound is the smallest k-th best distance any shard has reached. Readers may see a
// stale, larger value, which only prunes less.
type sharedBound struct {
	bits atomic.Uint64
}

func newSharedBound() *sharedBound {
	b := &sharedBound{}
	b.bits.Store(math.Float64bits(math.Inf(1)))
	return b
}

func (b *sharedBound) load() float64 {
	return math.Float64frombits(b.bits.Load())
}

// lower replaces the bound with v if v is smaller.
func (b *sharedBound) lower(v float64) {
	for {
		old := b.bits.Load()
		if v >= math.Float64frombits(old) {
			return
		}
		if b.bits.CompareAndSwap(old, math.Float64bits(v)) {
			return
		}
	}
}
