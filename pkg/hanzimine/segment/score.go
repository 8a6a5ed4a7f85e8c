package segment

import (
	"sort"
	"unicode/utf8"

	"github.com/cognicore/hanzimine/pkg/hanzimine/corpus"
	"github.com/cognicore/hanzimine/pkg/hanzimine/score"
)

// Candidate is a scored token found in the loaded text.
type Candidate struct {
	Token string
	Score float64
}

// ScoreSegmenter splits text using a scored token table. Higher scoring
// tokens claim their spans first; on equal scores the longer token wins.
type ScoreSegmenter struct {
	scores map[string]float64

	runes      []rune
	candidates []Candidate
	spans      []Span
}

// NewScoreSegmenter keeps the tokens whose kind score is at least cutoff.
func NewScoreSegmenter(scores map[string]score.Record, kind score.Kind, cutoff float64) *ScoreSegmenter {
	usable := make(map[string]float64, len(scores))
	for tok, rec := range scores {
		if v := rec.Value(kind); v >= cutoff {
			usable[tok] = v
		}
	}
	return &ScoreSegmenter{scores: usable}
}

// Len returns the number of usable tokens.
func (s *ScoreSegmenter) Len() int {
	return len(s.scores)
}

// Load ranks the usable tokens occurring in text with a length in
// [minWindow, maxWindow]. Any previous segmentation is discarded.
func (s *ScoreSegmenter) Load(text string, minWindow, maxWindow int) *ScoreSegmenter {
	s.runes = []rune(text)
	s.spans = nil
	s.candidates = s.candidates[:0]

	seen := make(map[string]struct{})
	for _, g := range corpus.AllGram(text, minWindow, maxWindow) {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		if v, ok := s.scores[g]; ok {
			s.candidates = append(s.candidates, Candidate{Token: g, Score: v})
		}
	}

	sort.Slice(s.candidates, func(i, j int) bool {
		a, b := s.candidates[i], s.candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		la, lb := utf8.RuneCountInString(a.Token), utf8.RuneCountInString(b.Token)
		if la != lb {
			return la > lb
		}
		return a.Token < b.Token
	})
	return s
}

// Candidates returns the ranked candidates found by Load.
func (s *ScoreSegmenter) Candidates() []Candidate {
	out := make([]Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Segment claims spans in rank order. Each candidate takes every
// left-to-right occurrence whose characters are all still unclaimed.
func (s *ScoreSegmenter) Segment() *ScoreSegmenter {
	claimed := make([]bool, len(s.runes))
	s.spans = s.spans[:0]

	for rank, cand := range s.candidates {
		tok := []rune(cand.Token)
		for i := 0; i+len(tok) <= len(s.runes); {
			if hasAt(s.runes, tok, i) && free(claimed, i, i+len(tok)) {
				for k := i; k < i+len(tok); k++ {
					claimed[k] = true
				}
				s.spans = append(s.spans, Span{
					Token: cand.Token,
					Start: i,
					End:   i + len(tok),
					Score: cand.Score,
					Rank:  rank,
				})
				i += len(tok)
				continue
			}
			i++
		}
	}

	sort.Slice(s.spans, func(i, j int) bool {
		return s.spans[i].Start < s.spans[j].Start
	})
	return s
}

func free(claimed []bool, start, end int) bool {
	for k := start; k < end; k++ {
		if claimed[k] {
			return false
		}
	}
	return true
}

// Spans returns the claimed spans in text order.
func (s *ScoreSegmenter) Spans() []Span {
	out := make([]Span, len(s.spans))
	copy(out, s.spans)
	return out
}

// String renders the segmentation.
func (s *ScoreSegmenter) String(opts Options) string {
	return renderString(s.runes, s.spans, opts)
}

// List returns recognized tokens (and, unless KeywordOnly, the text
// between them) in text order.
func (s *ScoreSegmenter) List(opts Options) []string {
	return renderList(s.runes, s.spans, opts)
}
