// Package dictionary holds the immutable word set scanned by the recognizer.
//
// Words are stored in a patricia trie for membership and prefix queries, and in a sorted
// slice that fixes the scan order, so equal distances always rank lexicographically.
package dictionary

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/bastiangx/wordswipe/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Dictionary is a read-only set of lowercase words.
type Dictionary struct {
	trie  *patricia.Trie
	words []string
}

// New builds a dictionary from words. Entries are lowercased and trimmed; invalid and
// duplicate entries are dropped.
func New(words []string) *Dictionary {
	d := &Dictionary{trie: patricia.NewTrie()}
	filter := utils.NewWordFilter()

	dropped := 0
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if !utils.IsValidWord(w) {
			dropped++
			continue
		}
		if !filter.ShouldInclude(w) {
			continue
		}
		d.trie.Insert(patricia.Prefix(w), len(w))
		d.words = append(d.words, w)
	}
	sort.Strings(d.words)

	if dropped > 0 {
		log.Debugf("Dropped %d invalid dictionary entries", dropped)
	}
	return d
}

// Contains reports whether word is in the dictionary, as typed.
func (d *Dictionary) Contains(word string) bool {
	if d == nil || word == "" {
		return false
	}
	return d.trie.Get(patricia.Prefix(word)) != nil
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.words)
}

// Words returns all words in ascending order. The slice is shared and must not be modified.
func (d *Dictionary) Words() []string {
	if d == nil {
		return nil
	}
	return d.words
}

// WithPrefix returns up to limit words starting with prefix, in ascending order.
// A non-positive limit returns every match.
func (d *Dictionary) WithPrefix(prefix string, limit int) []string {
	if d == nil {
		return nil
	}

	var out []string
	err := d.trie.VisitSubtree(patricia.Prefix(strings.ToLower(prefix)), func(p patricia.Prefix, _ patricia.Item) error {
		out = append(out, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}

	sort.Strings(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Nearest returns up to limit words within maxEdits Levenshtein edits of word, closest
// first and then alphabetically. It backs the "did you mean" output of failed lookups.
func (d *Dictionary) Nearest(word string, maxEdits, limit int) []string {
	if d == nil || word == "" {
		return nil
	}
	word = strings.ToLower(word)
	wordLen := utf8.RuneCountInString(word)

	type match struct {
		word  string
		edits int
	}
	var matches []match
	for _, w := range d.words {
		if diff := utf8.RuneCountInString(w) - wordLen; diff > maxEdits || -diff > maxEdits {
			continue
		}
		if e := levenshtein.ComputeDistance(word, w); e <= maxEdits {
			matches = append(matches, match{word: w, edits: e})
		}
	}

	// words are already sorted, so a stable sort keeps alphabetical order within ties
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].edits < matches[j].edits
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.word
	}
	return out
}
