package segment

import (
	"regexp"
	"strings"

	"github.com/cognicore/hanzimine/pkg/hanzimine/corpus"
)

// DefaultEscape drops grams containing blanks or tabs.
var DefaultEscape = regexp.MustCompile(`[ \t]+`)

// GramSegmenter splits text into overlapping fixed-size character grams.
type GramSegmenter struct {
	size  int
	text  string
	grams []string
}

// NewGramSegmenter creates a segmenter producing grams of size characters.
// Sizes below 1 are raised to 1.
func NewGramSegmenter(size int) *GramSegmenter {
	if size < 1 {
		size = 1
	}
	return &GramSegmenter{size: size}
}

// Load sets the text to segment.
func (g *GramSegmenter) Load(text string) *GramSegmenter {
	g.text = text
	g.grams = nil
	return g
}

// Segment slides the window over the text and drops every gram matching
// escape. A nil escape means DefaultEscape.
func (g *GramSegmenter) Segment(escape *regexp.Regexp) *GramSegmenter {
	if escape == nil {
		escape = DefaultEscape
	}
	g.grams = g.grams[:0]
	for _, gram := range corpus.NGram(g.text, g.size) {
		if !escape.MatchString(gram) {
			g.grams = append(g.grams, gram)
		}
	}
	return g
}

// String joins the grams with sep.
func (g *GramSegmenter) String(sep string) string {
	return strings.Join(g.grams, sep)
}

// List returns the grams in text order.
func (g *GramSegmenter) List() []string {
	out := make([]string, len(g.grams))
	copy(out, g.grams)
	return out
}
