package wordpath

import (
	"github.com/bastiangx/wordswipe/pkg/layout"
	"github.com/charmbracelet/log"
)

// Cache holds the path of every dictionary word, built once at startup.
// It is never written after NewCache returns, so concurrent lookups need no locking.
type Cache struct {
	paths   map[string]WordPath
	spacing float64
	skipped int
}

// NewCache precomputes the paths of words. With spacing > 0 every path is resampled once
// at that spacing and returned as-is for any query; otherwise only waypoints are stored
// and resampling happens per query, exactly like Lazy.
func NewCache(l *layout.Layout, words []string, spacing float64) *Cache {
	c := &Cache{
		paths:   make(map[string]WordPath, len(words)),
		spacing: spacing,
	}

	for _, word := range words {
		wp := New(l, word)
		if !wp.Valid() {
			c.skipped++
			continue
		}
		if spacing > 0 {
			wp.fixed = wp.waypoints.Resample(spacing)
		}
		c.paths[word] = wp
	}

	log.Debugf("Populated path cache with %d words (%d without path)", len(c.paths), c.skipped)
	return c
}

// Lookup returns the cached path of word.
func (c *Cache) Lookup(word string) (WordPath, bool) {
	wp, ok := c.paths[word]
	return wp, ok
}

// Stats reports the cache size.
func (c *Cache) Stats() map[string]int {
	return map[string]int{
		"cachedPaths":  len(c.paths),
		"skippedWords": c.skipped,
	}
}
