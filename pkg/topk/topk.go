// Package topk keeps the k best (lowest distance) candidates seen during a dictionary scan.
package topk

import (
	"errors"
	"math"
	"sort"
)

// ErrInvalidK is returned for a non-positive capacity.
var ErrInvalidK = errors.New("topk: k must be positive")

// Candidate is a scored word. Index is the word's position in scan order and breaks
// ties between equal distances: the earlier word ranks first.
type Candidate struct {
	Word     string
	Distance float64
	Index    int
}

// Tracker is a fixed-capacity list sorted ascending by distance. Unfilled slots hold a
// sentinel with an empty word and +Inf distance. A Tracker is owned by one scan.
type Tracker struct {
	slots []Candidate
}

// New returns a tracker with k sentinel slots.
func New(k int) (*Tracker, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	slots := make([]Candidate, k)
	for i := range slots {
		slots[i] = Candidate{Distance: math.Inf(1), Index: -1}
	}
	return &Tracker{slots: slots}, nil
}

// Insert places c if it is strictly better than the current k-th entry, dropping that
// entry. Equal distances go after the entries already held. It reports whether c was kept.
func (t *Tracker) Insert(c Candidate) bool {
	k := len(t.slots)
	if !(c.Distance < t.slots[k-1].Distance) {
		return false
	}

	pos := sort.Search(k, func(i int) bool {
		return t.slots[i].Distance > c.Distance
	})
	copy(t.slots[pos+1:], t.slots[pos:k-1])
	t.slots[pos] = c
	return true
}

// Bound returns the k-th best distance held, +Inf until k candidates were kept.
func (t *Tracker) Bound() float64 {
	return t.slots[len(t.slots)-1].Distance
}

// K returns the capacity.
func (t *Tracker) K() int {
	return len(t.slots)
}

// Results returns the real candidates held, ascending by distance.
func (t *Tracker) Results() []Candidate {
	out := make([]Candidate, 0, len(t.slots))
	for _, c := range t.slots {
		if math.IsInf(c.Distance, 1) {
			break
		}
		out = append(out, c)
	}
	return out
}

// Merge combines per-shard results into the k best overall, ordered by distance and
// then scan index, so sharded scans rank exactly like a single sequential scan.
func Merge(k int, lists ...[]Candidate) []Candidate {
	all := make([]Candidate, 0, max(k, 0))
	for _, l := range lists {
		all = append(all, l...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Distance != all[j].Distance {
			return all[i].Distance < all[j].Distance
		}
		return all[i].Index < all[j].Index
	})
	if len(all) > k {
		all = all[:k]
	}
	return all
}
