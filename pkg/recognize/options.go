package recognize

import (
	"runtime"

	"github.com/bastiangx/wordswipe/pkg/dtw"
	"github.com/bastiangx/wordswipe/pkg/wordpath"
	"github.com/charmbracelet/log"
)

// DefaultWindowRatio is the Sakoe-Chiba window as a fraction of the query length.
const DefaultWindowRatio = 0.1

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithWindowRatio sets the window as a fraction of the query length. Negative values are
// rejected by New.
func WithWindowRatio(ratio float64) Option {
	return func(r *Recognizer) { r.ratio = ratio }
}

// WithStrategy sets the pruning strategy. Default is dtw.Combined.
func WithStrategy(s dtw.Strategy) Option {
	return func(r *Recognizer) {
		if s != nil {
			r.strategy = s
		}
	}
}

// WithSource sets where word paths come from. Default generates them lazily from the layout.
func WithSource(s wordpath.Source) Option {
	return func(r *Recognizer) {
		if s != nil {
			r.source = s
		}
	}
}

// WithWorkers sets how many shards the dictionary is split into per query.
// n <= 0 uses GOMAXPROCS; 1 scans sequentially.
func WithWorkers(n int) Option {
	return func(r *Recognizer) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		r.workers = n
	}
}

// WithLogger replaces the component logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Recognizer) {
		if l != nil {
			r.logger = l
		}
	}
}
