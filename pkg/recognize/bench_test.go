package recognize_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/bastiangx/wordswipe/pkg/dtw"
	"github.com/bastiangx/wordswipe/pkg/layout"
	"github.com/bastiangx/wordswipe/pkg/recognize"
	"github.com/bastiangx/wordswipe/pkg/wordpath"
)

func benchmarkRecognize(b *testing.B, s dtw.Strategy, workers int) {
	rng := rand.New(rand.NewSource(1))
	dict := randomWords(rng, 5000)
	r := newRecognizer(b, dict,
		recognize.WithStrategy(s),
		recognize.WithWorkers(workers),
		recognize.WithSource(wordpath.NewCache(layout.Default(), dict, 0)))
	q := noisyPath(b, rng, dict[0])
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Recognize(ctx, q, 7); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRecognize_Exhaustive(b *testing.B) { benchmarkRecognize(b, dtw.Exhaustive{}, 1) }
func BenchmarkRecognize_Kim(b *testing.B)        { benchmarkRecognize(b, dtw.Kim{}, 1) }
func BenchmarkRecognize_UCR(b *testing.B)        { benchmarkRecognize(b, dtw.UCR{}, 1) }
func BenchmarkRecognize_Combined(b *testing.B)   { benchmarkRecognize(b, dtw.Combined{}, 1) }
func BenchmarkRecognize_Parallel4(b *testing.B)  { benchmarkRecognize(b, dtw.Combined{}, 4) }
