package clean

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/hanzimine/pkg/hanzimine/internalerr"
	"github.com/cognicore/hanzimine/pkg/hanzimine/progress"
)

// DefaultPunctuation matches ASCII and CJK punctuation, brackets and quotes.
var DefaultPunctuation = regexp.MustCompile(`[,.!！?？:;＇，ㆍ．／：；｀、。·‥…¨〃∼´～˝%\-\\(){}\[\]<>（）［］｛｝‘’“”〔〕〈〉《》「」『』【】$]`)

var (
	blankRun  = regexp.MustCompile(`[ \t]+`)
	lineEdges = regexp.MustCompile(`(?m)^[ \t]+|[ \t]+$`)
)

// CharClass names a group of characters RemoveChars can strip.
type CharClass string

const (
	Korean   CharClass = "Korean"
	Alphabet CharClass = "Alphabet"
	Numbers  CharClass = "Numbers"
)

var classPatterns = map[CharClass]*regexp.Regexp{
	Korean:   regexp.MustCompile(`[가-힣]+`),
	Alphabet: regexp.MustCompile(`[a-zA-Z]+`),
	Numbers:  regexp.MustCompile(`\p{Nd}+`),
}

// ParseCharClass validates a class name.
func ParseCharClass(name string) (CharClass, error) {
	c := CharClass(name)
	if _, ok := classPatterns[c]; !ok {
		return "", fmt.Errorf("%w: unknown character class %q", internalerr.ErrInvalidInput, name)
	}
	return c, nil
}

// Mapping replaces every occurrence of Pattern with Replacement.
type Mapping struct {
	Pattern     string
	Replacement string
}

// MergeDict is an ordered list of literal replacements, applied in order.
type MergeDict []Mapping

// Apply runs every replacement over s.
func (d MergeDict) Apply(s string) string {
	for _, m := range d {
		s = strings.ReplaceAll(s, m.Pattern, m.Replacement)
	}
	return s
}

// Text is a corpus text being cleaned. Each step returns the receiver so
// steps can be chained.
type Text struct {
	s   string
	obs progress.Observer
}

// New starts cleaning s. obs may be nil.
func New(s string, obs progress.Observer) *Text {
	return &Text{s: s, obs: progress.OrNop(obs)}
}

// String returns the cleaned text.
func (t *Text) String() string {
	return t.s
}

// RemoveComments replaces everything from header to the end of its line
// with a blank.
func (t *Text) RemoveComments(header string) *Text {
	if header == "" {
		return t
	}
	re := regexp.MustCompile(`(?m)` + regexp.QuoteMeta(header) + `.*$`)
	t.s = strings.TrimSpace(re.ReplaceAllString(t.s, " "))
	t.obs.Phase("clean", "comments removed")
	return t
}

// RemovePunctuation replaces every match of pattern with a blank.
// A nil pattern means DefaultPunctuation.
func (t *Text) RemovePunctuation(pattern *regexp.Regexp) *Text {
	if pattern == nil {
		pattern = DefaultPunctuation
	}
	t.s = strings.TrimSpace(pattern.ReplaceAllString(t.s, " "))
	t.obs.Phase("clean", "punctuation removed")
	return t
}

// RemoveChars replaces every run of the given character classes with a blank.
func (t *Text) RemoveChars(classes ...CharClass) *Text {
	var names []string
	for _, c := range classes {
		re, ok := classPatterns[c]
		if !ok {
			continue
		}
		t.s = re.ReplaceAllString(t.s, " ")
		names = append(names, string(c))
	}
	t.s = strings.TrimSpace(t.s)
	t.obs.Phase("clean", strings.Join(names, ", ")+" removed")
	return t
}

// MergeSpaces collapses runs of blanks and tabs and trims every line.
// Newlines are kept since they separate lines and documents.
func (t *Text) MergeSpaces() *Text {
	s := blankRun.ReplaceAllString(t.s, " ")
	s = lineEdges.ReplaceAllString(s, "")
	t.s = strings.TrimSpace(s)
	t.obs.Phase("clean", "spaces merged")
	return t
}

// MergeChars applies the replacements of d in order.
func (t *Text) MergeChars(d MergeDict) *Text {
	t.s = d.Apply(t.s)
	t.obs.Phase("clean", fmt.Sprintf("%d character mappings merged", len(d)))
	return t
}

// NormalizeNFC composes the text to Unicode normalization form C so that
// visually identical characters count as one.
func (t *Text) NormalizeNFC() *Text {
	t.s = norm.NFC.String(t.s)
	t.obs.Phase("clean", "normalized to NFC")
	return t
}
