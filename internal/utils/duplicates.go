package utils

import (
	"strings"
)

// WordFilter drops repeated words while a word list is being read
type WordFilter struct {
	seenWords map[string]bool
}

// NewWordFilter creates an empty filter
func NewWordFilter() *WordFilter {
	return &WordFilter{seenWords: make(map[string]bool)}
}

// ShouldInclude checks if a word is seen for the first time.
// Returns true if the word should be included, false if it's a duplicate
func (f *WordFilter) ShouldInclude(word string) bool {
	lowerWord := strings.ToLower(word)
	if f.seenWords[lowerWord] {
		return false
	}
	f.seenWords[lowerWord] = true
	return true
}

// Seen returns how many distinct words passed the filter
func (f *WordFilter) Seen() int {
	return len(f.seenWords)
}
