package segment

import (
	"sort"
	"strings"
)

// DictSegmenter splits text with a fixed token dictionary, preferring the
// earliest start and, at one start, the longest token.
type DictSegmenter struct {
	tokens [][]rune

	runes []rune
	spans []Span
}

// NewDictSegmenter creates a segmenter over tokens. Empty and duplicate
// tokens are ignored.
func NewDictSegmenter(tokens []string) *DictSegmenter {
	seen := make(map[string]struct{}, len(tokens))
	d := &DictSegmenter{}
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		d.tokens = append(d.tokens, []rune(tok))
	}
	return d
}

// Load sets the text to segment.
func (d *DictSegmenter) Load(text string) *DictSegmenter {
	d.runes = []rune(text)
	d.spans = nil
	return d
}

// Segment finds every occurrence of every dictionary token, orders them by
// (start, longest first) and claims them with a per-character bitmap.
// An occurrence lying entirely on claimed characters is dropped; one that
// reaches past them is kept.
func (d *DictSegmenter) Segment() *DictSegmenter {
	var found []Span
	for _, tok := range d.tokens {
		for _, at := range indexAll(d.runes, tok) {
			found = append(found, Span{Token: string(tok), Start: at, End: at + len(tok)})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if la, lb := a.End-a.Start, b.End-b.Start; la != lb {
			return la > lb
		}
		return a.Token < b.Token
	})

	claimed := make([]bool, len(d.runes))
	d.spans = d.spans[:0]
	for _, sp := range found {
		if !claimAny(claimed, sp.Start, sp.End) {
			continue
		}
		d.spans = append(d.spans, sp)
	}
	return d
}

// claimAny marks [start, end) and reports whether any position was free.
func claimAny(claimed []bool, start, end int) bool {
	fresh := false
	for k := start; k < end; k++ {
		if !claimed[k] {
			fresh = true
		}
	}
	if !fresh {
		return false
	}
	for k := start; k < end; k++ {
		claimed[k] = true
	}
	return true
}

// Spans returns the kept spans in text order.
func (d *DictSegmenter) Spans() []Span {
	out := make([]Span, len(d.spans))
	copy(out, d.spans)
	return out
}

// String renders the text with recognized tokens in brackets, or only the
// tokens joined by sep when keywordOnly is set. In bracketed output a token
// overlapping the previous one shows only its remaining characters:
// "abcde" with abc and cde renders as 【abc】【de】. Keyword-only output
// keeps whole tokens.
func (d *DictSegmenter) String(keywordOnly bool, sep string) string {
	return renderString(d.runes, d.spans, Options{KeywordOnly: keywordOnly, Sep: sep})
}

// List returns the recognized tokens, interleaved with the text between
// them unless keywordOnly is set. Overlaps are clipped as in String when
// the text is interleaved.
func (d *DictSegmenter) List(keywordOnly bool) []string {
	return renderList(d.runes, d.spans, Options{KeywordOnly: keywordOnly})
}
