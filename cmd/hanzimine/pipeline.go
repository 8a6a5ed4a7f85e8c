package main

import (
	"fmt"
	"strings"

	"github.com/cognicore/hanzimine/pkg/hanzimine/clean"
	"github.com/cognicore/hanzimine/pkg/hanzimine/config"
	"github.com/cognicore/hanzimine/pkg/hanzimine/cooccur"
	"github.com/cognicore/hanzimine/pkg/hanzimine/corpus"
	"github.com/cognicore/hanzimine/pkg/hanzimine/extract"
	"github.com/cognicore/hanzimine/pkg/hanzimine/progress"
	"github.com/cognicore/hanzimine/pkg/hanzimine/score"
	"github.com/cognicore/hanzimine/pkg/hanzimine/segment"
)

// cleanText runs the configured cleaning steps in a fixed order
func cleanText(text string, c config.Clean, merge clean.MergeDict, obs progress.Observer) (string, error) {
	classes := make([]clean.CharClass, 0, len(c.Remove))
	for _, name := range c.Remove {
		cc, err := clean.ParseCharClass(name)
		if err != nil {
			return "", err
		}
		classes = append(classes, cc)
	}

	t := clean.New(text, obs)
	if c.NFC {
		t.NormalizeNFC()
	}
	t.RemoveComments(c.Comments)
	if len(merge) > 0 {
		t.MergeChars(merge)
	}
	if c.Punctuation {
		t.RemovePunctuation(nil)
	}
	if len(classes) > 0 {
		t.RemoveChars(classes...)
	}
	if c.MergeSpaces {
		t.MergeSpaces()
	}
	return t.String(), nil
}

func extractScores(c *corpus.Corpus, p config.Extract, obs progress.Observer) (extract.Scores, error) {
	e := extract.New(c, extract.WithObserver(obs))
	if err := e.Train(p.MinFreq, p.MinWindow, p.MaxWindow); err != nil {
		return nil, err
	}
	return e.Extract()
}

// tokenized reports whether segment output under c is plain space-separated
// tokens, the input the co-occurrence quantifier expects.
func tokenized(c config.Segment) bool {
	return c.KeywordOnly || c.Method == config.MethodGram
}

// segmenter renders text line by line with the segmenter selected by
// cfg.Method. Line and document breaks are kept, so tokenized output can be
// fed to the co-occurrence quantifier.
type segmenter struct {
	cfg    config.Segment
	obs    progress.Observer
	scores extract.Scores
	tokens []string
}

func (s segmenter) run(text string) (string, error) {
	render, err := s.renderer()
	if err != nil {
		return "", err
	}

	lines := strings.Split(text, "\n")
	total := 0
	for i, line := range lines {
		var n int
		lines[i], n = render(strings.TrimRight(line, "\r"))
		total += n
	}
	progress.OrNop(s.obs).Phase("segment", fmt.Sprintf("%s: %d tokens in %d lines", s.cfg.Method, total, len(lines)))
	return strings.Join(lines, "\n"), nil
}

// renderer returns a function segmenting one line and reporting how many
// tokens it found.
func (s segmenter) renderer() (func(string) (string, int), error) {
	switch s.cfg.Method {
	case config.MethodDict:
		d := segment.NewDictSegmenter(s.tokens)
		return func(line string) (string, int) {
			d.Load(line).Segment()
			return d.String(s.cfg.KeywordOnly, " "), len(d.Spans())
		}, nil
	case config.MethodGram:
		g := segment.NewGramSegmenter(s.cfg.GramSize)
		return func(line string) (string, int) {
			grams := g.Load(line).Segment(nil).List()
			return strings.Join(grams, " "), len(grams)
		}, nil
	}

	kind, err := score.ParseKind(s.cfg.Method)
	if err != nil {
		return nil, err
	}
	seg := segment.NewScoreSegmenter(s.scores, kind, s.cfg.Cutoff)
	opts := segment.Options{Verbose: s.cfg.Verbose, KeywordOnly: s.cfg.KeywordOnly}
	return func(line string) (string, int) {
		seg.Load(line, s.cfg.MinWindow, s.cfg.MaxWindow).Segment()
		return seg.String(opts), len(seg.Spans())
	}, nil
}

func quantify(text string, c config.Cooccur, obs progress.Observer) (*cooccur.Quantifier, error) {
	pairing, err := cooccur.ParsePairing(c.Pairing)
	if err != nil {
		return nil, err
	}
	q := cooccur.New(cooccur.WithObserver(obs), cooccur.WithPairing(pairing)).Load(text)
	if err := q.Count(c.Cutoff); err != nil {
		return nil, err
	}
	if err := q.Score(); err != nil {
		return nil, err
	}
	return q, nil
}
