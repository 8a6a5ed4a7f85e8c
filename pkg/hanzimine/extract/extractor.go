package extract

import (
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/cognicore/hanzimine/pkg/hanzimine/corpus"
	"github.com/cognicore/hanzimine/pkg/hanzimine/freq"
	"github.com/cognicore/hanzimine/pkg/hanzimine/internalerr"
	"github.com/cognicore/hanzimine/pkg/hanzimine/progress"
	"github.com/cognicore/hanzimine/pkg/hanzimine/report"
	"github.com/cognicore/hanzimine/pkg/hanzimine/score"
)

// Window configuration constants
const (
	// MinWindow is the smallest candidate length. Cohesion needs at least
	// two characters; smaller requests are clamped.
	MinWindow = 2

	DefaultMinFreq   = 5
	DefaultMinWindow = 2
	DefaultMaxWindow = 8
)

// Params are the values Train was called with, after clamping.
type Params struct {
	MinFreq   int64
	MinWindow int
	MaxWindow int
}

// Extractor discovers word candidates in a corpus and scores them.
// An Extractor is built for one corpus and used by one owner.
type Extractor struct {
	corpus *corpus.Corpus
	obs    progress.Observer

	params      Params
	tables      *freq.Tables
	entropy     *score.Accumulated
	diagnostics []error
	trained     bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithObserver routes progress and diagnostics to obs.
func WithObserver(obs progress.Observer) Option {
	return func(e *Extractor) {
		e.obs = obs
	}
}

// New creates an extractor over c.
func New(c *corpus.Corpus, opts ...Option) *Extractor {
	e := &Extractor{corpus: c, obs: progress.Nop}
	for _, opt := range opts {
		opt(e)
	}
	e.obs = progress.OrNop(e.obs)
	return e
}

// Train counts every substring of length [minWindow-1, maxWindow+1] and
// accumulates branch entropy over words of at least minWindow characters.
// The window is widened by one on each side so every one-character-shorter
// context of a candidate is counted.
func (e *Extractor) Train(minFreq int64, minWindow, maxWindow int) error {
	if minFreq < 0 {
		return fmt.Errorf("%w: min freq %d is negative", internalerr.ErrInvalidInput, minFreq)
	}
	e.diagnostics = nil
	if minWindow < MinWindow {
		clamped := &score.WindowClamped{Requested: minWindow, Used: MinWindow}
		e.diagnostics = append(e.diagnostics, clamped)
		e.obs.Warn(clamped)
		minWindow = MinWindow
	}
	if maxWindow < minWindow {
		return fmt.Errorf("%w: max window %d is below min window %d", internalerr.ErrInvalidInput, maxWindow, minWindow)
	}
	e.params = Params{MinFreq: minFreq, MinWindow: minWindow, MaxWindow: maxWindow}

	e.tables = freq.Build(e.corpus.Docs(), e.corpus.Text(), minWindow-1, maxWindow+1, e.obs)
	e.entropy = score.AccumulateBranchEntropy(e.tables.Tokens, minWindow, e.obs)
	e.diagnostics = append(e.diagnostics, e.entropy.Diagnostics()...)
	e.trained = true

	e.obs.Phase("train", fmt.Sprintf("%d substrings, %d bigrams, %d characters counted",
		len(e.tables.Tokens), len(e.tables.Bigrams), len(e.tables.Unigrams)))
	return nil
}

// Extract scores every counted substring whose length lies in
// [MinWindow, MaxWindow] and whose frequency is at least MinFreq.
func (e *Extractor) Extract() (Scores, error) {
	if !e.trained {
		return nil, internalerr.ErrNotTrained
	}

	lo, hi := e.params.MinWindow, e.params.MaxWindow
	candidates := e.tables.Tokens.Filter(func(w string, n int64) bool {
		l := utf8.RuneCountInString(w)
		return (l-hi)*(l-lo) <= 0 && n >= e.params.MinFreq
	})

	scores := make(Scores, len(candidates))
	keys := candidates.Keys()
	for i, w := range keys {
		scores[w] = e.score(w, candidates[w])
		e.obs.Step("extract", i+1, len(keys))
	}

	e.obs.Phase("extract", fmt.Sprintf("%d candidates scored", len(scores)))
	return scores, nil
}

func (e *Extractor) score(w string, n int64) score.Record {
	cl, cr, c, cs := score.Cohesion(w, e.tables.Tokens, e.tables.Unigrams, e.params.MinWindow)
	bl, br := e.entropy.Lookup(w)
	return score.Record{
		Freq:           n,
		CohesionL:      cl,
		CohesionR:      cr,
		Cohesion:       c,
		CohesionS:      cs,
		BranchEntropyL: bl,
		BranchEntropyR: br,
		BranchEntropy:  (bl + br) / 2,
	}
}

// Params returns the effective training parameters.
func (e *Extractor) Params() Params {
	return e.params
}

// Tables returns the frequency tables built by Train, or nil before Train.
func (e *Extractor) Tables() *freq.Tables {
	return e.tables
}

// Diagnostics returns the warnings raised by the last Train call.
func (e *Extractor) Diagnostics() []error {
	out := make([]error, len(e.diagnostics))
	copy(out, e.diagnostics)
	return out
}

// Scores maps each candidate token to its scores.
type Scores map[string]score.Record

// Entry is one ranked candidate.
type Entry struct {
	Token  string
	Record score.Record
}

// Ranked returns every candidate sorted by kind, highest first.
// Equal scores are ordered by token.
func (s Scores) Ranked(kind score.Kind) []Entry {
	entries := make([]Entry, 0, len(s))
	for tok, rec := range s {
		entries = append(entries, Entry{Token: tok, Record: rec})
	}
	sort.Slice(entries, func(i, j int) bool {
		vi, vj := entries[i].Record.Value(kind), entries[j].Record.Value(kind)
		if vi != vj {
			return vi > vj
		}
		return entries[i].Token < entries[j].Token
	})
	return entries
}

// WriteReport writes the ranked table to w and returns the number of rows.
func (s Scores) WriteReport(w io.Writer, kind score.Kind) (int, error) {
	rw := report.NewWriter(w)
	if err := rw.Header(append([]string{"token"}, score.Header()...)...); err != nil {
		return 0, err
	}
	for _, entry := range s.Ranked(kind) {
		row := make([]string, 0, len(score.Kinds)+1)
		row = append(row, entry.Token)
		for _, v := range entry.Record.Values() {
			row = append(row, report.FormatFloat(v))
		}
		if err := rw.Row(row...); err != nil {
			return rw.Rows(), err
		}
	}
	return rw.Rows(), rw.Flush()
}

// Report writes the ranked table to path.
func (s Scores) Report(path string, kind score.Kind) (int, error) {
	var rows int
	err := report.ToFile(path, func(w io.Writer) error {
		var err error
		rows, err = s.WriteReport(w, kind)
		return err
	})
	return rows, err
}
