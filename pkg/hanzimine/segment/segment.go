package segment

import (
	"strings"

	"github.com/cognicore/hanzimine/pkg/hanzimine/report"
)

// Markers enclosing a recognized token in rendered text.
const (
	OpenMark  = "【"
	CloseMark = "】"
)

// Span is a recognized token at runes [Start, End) of the loaded text.
type Span struct {
	Token string
	Start int
	End   int
	// Score and Rank are set by ScoreSegmenter only.
	Score float64
	Rank  int
}

// Options control how a segmentation is rendered.
type Options struct {
	// Verbose appends the score to each token: 【token/0.123】.
	Verbose bool
	// KeywordOnly drops the text between recognized tokens.
	KeywordOnly bool
	// Sep joins tokens in keyword-only output. Empty means a single space.
	Sep string
}

func (o Options) sep() string {
	if o.Sep == "" {
		return " "
	}
	return o.Sep
}

// piece is either gap text or a recognized span.
type piece struct {
	text string
	span *Span
}

// layout interleaves the unrecognized text with spans sorted by Start.
// With clip set, a span overlapping its predecessor is cut down to the
// characters not yet emitted, so the pieces concatenate back to the text.
// Without it, overlapping spans are emitted whole, back to back.
func layout(runes []rune, spans []Span, clip bool) []piece {
	var out []piece
	cursor := 0
	for i := range spans {
		sp := &spans[i]
		if sp.Start > cursor {
			out = append(out, piece{text: string(runes[cursor:sp.Start])})
		}
		if clip && sp.Start < cursor {
			if sp.End <= cursor {
				continue
			}
			cut := *sp
			cut.Start = cursor
			cut.Token = string(runes[cursor:sp.End])
			sp = &cut
		}
		out = append(out, piece{text: sp.Token, span: sp})
		if sp.End > cursor {
			cursor = sp.End
		}
	}
	if cursor < len(runes) {
		out = append(out, piece{text: string(runes[cursor:])})
	}
	return out
}

func label(sp *Span, verbose bool) string {
	if verbose {
		return sp.Token + "/" + report.FormatFloat(sp.Score)
	}
	return sp.Token
}

func renderString(runes []rune, spans []Span, opts Options) string {
	if opts.KeywordOnly {
		return strings.Join(renderList(runes, spans, opts), opts.sep())
	}
	var b strings.Builder
	for _, p := range layout(runes, spans, true) {
		if p.span == nil {
			b.WriteString(p.text)
			continue
		}
		b.WriteString(OpenMark)
		b.WriteString(label(p.span, opts.Verbose))
		b.WriteString(CloseMark)
	}
	return b.String()
}

func renderList(runes []rune, spans []Span, opts Options) []string {
	var out []string
	for _, p := range layout(runes, spans, !opts.KeywordOnly) {
		switch {
		case p.span != nil:
			out = append(out, label(p.span, opts.Verbose))
		case !opts.KeywordOnly && p.text != "":
			out = append(out, p.text)
		}
	}
	return out
}

// indexAll returns every rune offset at which tok occurs in runes,
// overlapping occurrences included.
func indexAll(runes []rune, tok []rune) []int {
	var out []int
	if len(tok) == 0 {
		return out
	}
	for i := 0; i+len(tok) <= len(runes); i++ {
		if hasAt(runes, tok, i) {
			out = append(out, i)
		}
	}
	return out
}

func hasAt(runes, tok []rune, at int) bool {
	for j, r := range tok {
		if runes[at+j] != r {
			return false
		}
	}
	return true
}
