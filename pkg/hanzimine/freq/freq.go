package freq

import (
	"sort"
	"unicode/utf8"

	"github.com/cognicore/hanzimine/pkg/hanzimine/corpus"
	"github.com/cognicore/hanzimine/pkg/hanzimine/progress"
)

// Counter maps a substring to its number of occurrences.
type Counter map[string]int64

// Add increments the count of every key in keys.
func (c Counter) Add(keys []string) {
	for _, k := range keys {
		c[k]++
	}
}

// Get returns the count for key and whether key was counted at all.
func (c Counter) Get(key string) (int64, bool) {
	n, ok := c[key]
	return n, ok
}

// Total returns the sum of all counts.
func (c Counter) Total() int64 {
	var total int64
	for _, n := range c {
		total += n
	}
	return total
}

// Keys returns the counted keys in lexical order.
func (c Counter) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Filter returns a new counter with the entries for which keep returns true.
func (c Counter) Filter(keep func(key string, n int64) bool) Counter {
	out := make(Counter)
	for k, n := range c {
		if keep(k, n) {
			out[k] = n
		}
	}
	return out
}

// Clone returns a copy of the counter.
func (c Counter) Clone() Counter {
	out := make(Counter, len(c))
	for k, n := range c {
		out[k] = n
	}
	return out
}

// Tables holds the frequency tables built over one corpus.
type Tables struct {
	// Tokens counts every substring with length in [Low, High].
	Tokens Counter
	// Bigrams counts every two-character substring.
	Bigrams Counter
	// Unigrams counts every character of the flattened corpus text.
	Unigrams Counter

	Low, High int
}

// CountRunes counts every character of text, whitespace included.
func CountRunes(text string) Counter {
	c := make(Counter, utf8.RuneCountInString(text)/4+1)
	for _, r := range text {
		c[string(r)]++
	}
	return c
}

// Build counts every phrase of docs. Token substrings use the length window
// [low, high]; the unigram table is built once over text.
func Build(docs [][]string, text string, low, high int, obs progress.Observer) *Tables {
	obs = progress.OrNop(obs)

	t := &Tables{
		Tokens:   make(Counter),
		Bigrams:  make(Counter),
		Unigrams: CountRunes(text),
		Low:      low,
		High:     high,
	}

	for i, doc := range docs {
		for _, phrase := range doc {
			if phrase == "" {
				continue
			}
			t.Tokens.Add(corpus.AllGram(phrase, low, high))
			t.Bigrams.Add(corpus.NGram(phrase, 2))
		}
		obs.Step("count", i+1, len(docs))
	}

	return t
}
