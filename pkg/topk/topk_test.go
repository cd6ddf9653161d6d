package topk_test

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/bastiangx/wordswipe/pkg/topk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidK(t *testing.T) {
	_, err := topk.New(0)
	assert.ErrorIs(t, err, topk.ErrInvalidK)
	_, err = topk.New(-3)
	assert.ErrorIs(t, err, topk.ErrInvalidK)
}

func TestTracker_InitialState(t *testing.T) {
	tr, err := topk.New(3)
	require.NoError(t, err)

	assert.Equal(t, 3, tr.K())
	assert.True(t, math.IsInf(tr.Bound(), 1), "empty tracker has an infinite bound")
	assert.Empty(t, tr.Results(), "sentinels are not results")
}

func TestTracker_InsertKeepsBest(t *testing.T) {
	tr, _ := topk.New(2)

	assert.True(t, tr.Insert(topk.Candidate{Word: "held", Distance: 0.5}))
	assert.True(t, tr.Insert(topk.Candidate{Word: "hoe", Distance: 0.9}))
	assert.Equal(t, 0.9, tr.Bound())

	assert.True(t, tr.Insert(topk.Candidate{Word: "hello", Distance: 0.1}))
	assert.False(t, tr.Insert(topk.Candidate{Word: "help", Distance: 0.7}), "worse than k-th")
	assert.False(t, tr.Insert(topk.Candidate{Word: "hell", Distance: 0.5}), "equal to k-th is not better")

	res := tr.Results()
	require.Len(t, res, 2)
	assert.Equal(t, "hello", res[0].Word)
	assert.Equal(t, "held", res[1].Word)
	assert.Equal(t, 0.5, tr.Bound())
}

func TestTracker_TiesKeepFirstSeen(t *testing.T) {
	tr, _ := topk.New(3)

	tr.Insert(topk.Candidate{Word: "b", Distance: 1, Index: 0})
	tr.Insert(topk.Candidate{Word: "a", Distance: 1, Index: 1})
	tr.Insert(topk.Candidate{Word: "c", Distance: 0.5, Index: 2})

	res := tr.Results()
	require.Len(t, res, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{res[0].Word, res[1].Word, res[2].Word})
}

func TestTracker_RejectsInfinite(t *testing.T) {
	tr, _ := topk.New(2)
	assert.False(t, tr.Insert(topk.Candidate{Word: "x", Distance: math.Inf(1)}))
	assert.Empty(t, tr.Results())
}

// TestTracker_Invariants drives random inserts and checks size, order, and that every
// rejected candidate is no better than the final k-th entry.
func TestTracker_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 50; trial++ {
		k := 1 + rng.Intn(8)
		tr, _ := topk.New(k)
		var rejected []float64

		for i := 0; i < 100; i++ {
			d := math.Round(rng.Float64()*50) / 10
			if !tr.Insert(topk.Candidate{Word: "w", Distance: d, Index: i}) {
				rejected = append(rejected, d)
			}
			res := tr.Results()
			assert.LessOrEqual(t, len(res), k)
			assert.True(t, sort.SliceIsSorted(res, func(a, b int) bool { return res[a].Distance < res[b].Distance }))
		}

		for _, d := range rejected {
			assert.GreaterOrEqual(t, d, tr.Bound(), "trial %d: rejected %v beats bound %v", trial, d, tr.Bound())
		}
	}
}

func TestMerge(t *testing.T) {
	a := []topk.Candidate{{Word: "a", Distance: 0.2, Index: 0}, {Word: "b", Distance: 0.5, Index: 1}}
	b := []topk.Candidate{{Word: "c", Distance: 0.2, Index: 5}, {Word: "d", Distance: 0.1, Index: 6}}

	got := topk.Merge(3, a, b)
	require.Len(t, got, 3)
	assert.Equal(t, "d", got[0].Word)
	assert.Equal(t, "a", got[1].Word, "tie broken by scan index")
	assert.Equal(t, "c", got[2].Word)

	assert.Empty(t, topk.Merge(3))
}
