// Package recognize is the core, scanning the dictionary for the words whose ideal paths best match a drawn gesture.
package recognize

import (
	"context"

	"github.com/bastiangx/wordswipe/pkg/geom"
	"github.com/bastiangx/wordswipe/pkg/topk"
)

// IRecognizer defines the interface the server and the CLI drive
type IRecognizer interface {
	// Recognize returns the k closest words to the drawn path, best first
	Recognize(ctx context.Context, path geom.Path, k int) ([]topk.Candidate, error)

	// Contains reports whether word is in the dictionary
	Contains(word string) bool

	// Nearest suggests dictionary words close to a word that is not a member
	Nearest(word string, limit int) []string

	// Stats returns statistics about the loaded dictionary and path source
	Stats() map[string]int
}
