package dtw

import "errors"

var (
	// ErrEmptyInput indicates one or both input paths are empty.
	ErrEmptyInput = errors.New("dtw: input paths must be non-empty")

	// ErrBadWindow indicates a window below -1.
	ErrBadWindow = errors.New("dtw: window must be >= -1 (use -1 for no constraint)")

	// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
	ErrUnknownStrategy = errors.New("dtw: unknown pruning strategy")
)

// Options configures the reference DTW computation.
//
// Fields:
//   - Window: Sakoe–Chiba band half-width |i-j| <= Window, widened to the length gap of the
//     paths. -1 disables the constraint.
//   - Cutoff: best-so-far distance for row-minimum early abandoning. 0 or +Inf disables it.
type Options struct {
	Window int
	Cutoff float64
}

// DefaultOptions returns unconstrained, unpruned options.
func DefaultOptions() Options {
	return Options{Window: -1}
}
