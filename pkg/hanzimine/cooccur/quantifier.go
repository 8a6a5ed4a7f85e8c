package cooccur

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"

	"github.com/cognicore/hanzimine/pkg/hanzimine/corpus"
	"github.com/cognicore/hanzimine/pkg/hanzimine/internalerr"
	"github.com/cognicore/hanzimine/pkg/hanzimine/progress"
	"github.com/cognicore/hanzimine/pkg/hanzimine/report"
)

// Default cutoffs
const (
	DefaultFreqCutoff  = 5
	DefaultScoreCutoff = 1.5
)

// Record holds the association scores of one pair.
type Record struct {
	FreqA, FreqB int64
	Observed     int64
	Expected     float64
	TScore       float64
	SLLR         float64
}

// Method selects the Record field used to filter and rank partners.
type Method int

const (
	MethodObserved Method = iota
	MethodExpected
	MethodTScore
	MethodSLLR
)

// Header lists the association fields in export column order.
var Header = []string{"total_freq", "observed_cooccurrence", "expected_cooccurrence", "t_score", "sLLRatio"}

func (m Method) String() string {
	switch m {
	case MethodObserved:
		return "observed_cooccurrence"
	case MethodExpected:
		return "expected_cooccurrence"
	case MethodTScore:
		return "t_score"
	case MethodSLLR:
		return "sLLRatio"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps a header name to its Method.
func ParseMethod(name string) (Method, error) {
	for _, m := range []Method{MethodObserved, MethodExpected, MethodTScore, MethodSLLR} {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", internalerr.ErrUnknownScore, name)
}

// Value returns the field selected by m.
func (r Record) Value(m Method) float64 {
	switch m {
	case MethodObserved:
		return float64(r.Observed)
	case MethodExpected:
		return r.Expected
	case MethodTScore:
		return r.TScore
	case MethodSLLR:
		return r.SLLR
	}
	return 0
}

// Partner is a token associated with a report target.
type Partner struct {
	Token  string
	Record Record
}

// Quantifier scores how strongly tokens of a segmented corpus co-occur.
// Documents are separated by blank lines, lines by newlines, tokens by
// whitespace.
type Quantifier struct {
	docSep   *regexp.Regexp
	tokenSep *regexp.Regexp
	pairing  Pairing
	obs      progress.Observer

	text string
	docs []string

	total   int64
	freq    map[string]int64
	counter *Counter
	scores  map[Pair]Record
	counted bool
}

// Option configures a Quantifier.
type Option func(*Quantifier)

// WithObserver routes progress to obs.
func WithObserver(obs progress.Observer) Option {
	return func(q *Quantifier) { q.obs = obs }
}

// WithPairing selects how pairs are accumulated.
func WithPairing(p Pairing) Option {
	return func(q *Quantifier) { q.pairing = p }
}

// WithDocSeparator overrides the document separator.
func WithDocSeparator(sep *regexp.Regexp) Option {
	return func(q *Quantifier) { q.docSep = sep }
}

// WithTokenSeparator overrides the token separator.
func WithTokenSeparator(sep *regexp.Regexp) Option {
	return func(q *Quantifier) { q.tokenSep = sep }
}

// New creates a quantifier.
func New(opts ...Option) *Quantifier {
	q := &Quantifier{
		docSep:   corpus.DefaultDocSeparator,
		tokenSep: corpus.DefaultTokenSeparator,
		pairing:  PairingFirstSeen,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.obs = progress.OrNop(q.obs)
	return q
}

// Load sets the segmented text. Counts and scores from a previous text
// are discarded.
func (q *Quantifier) Load(text string) *Quantifier {
	q.text = text
	q.docs = corpus.SplitDocs(text, q.docSep)
	q.total = 0
	q.freq = nil
	q.counter = nil
	q.scores = nil
	q.counted = false
	return q
}

// Count computes global token frequencies, keeps tokens occurring at least
// cutoff times, and accumulates pair counts document by document.
func (q *Quantifier) Count(cutoff int64) error {
	if cutoff < 0 {
		return fmt.Errorf("%w: cutoff %d is negative", internalerr.ErrInvalidInput, cutoff)
	}

	q.total = 0
	all := make(map[string]int64)
	for _, tok := range corpus.Tokenize(q.text, q.tokenSep) {
		all[tok]++
		q.total++
	}
	q.freq = make(map[string]int64, len(all))
	for tok, n := range all {
		if n >= cutoff {
			q.freq[tok] = n
		}
	}

	q.counter = NewCounter(q.pairing)
	for i, doc := range q.docs {
		local := NewLocalCount()
		for _, line := range corpus.LineSeparator.Split(doc, -1) {
			var kept []string
			for _, tok := range corpus.Tokenize(line, q.tokenSep) {
				if _, ok := q.freq[tok]; ok {
					kept = append(kept, tok)
				}
			}
			local.Add(kept)
		}
		q.counter.AddDocument(local)
		q.obs.Step("cooccur count", i+1, len(q.docs))
	}

	q.counted = true
	q.obs.Phase("cooccur count", fmt.Sprintf("%d tokens kept of %d, %d pairs",
		len(q.freq), len(all), q.counter.UniquePairs()))
	return nil
}

// Score computes expected counts, t-scores and simple log-likelihood
// ratios for every counted pair.
func (q *Quantifier) Score() error {
	if !q.counted {
		return internalerr.ErrNotCounted
	}

	pairs := q.sortedPairs()
	q.scores = make(map[Pair]Record, len(pairs))
	for i, p := range pairs {
		fa, fb := q.freq[p.A], q.freq[p.B]
		observed := q.counter.Nxy[p]
		expected := Expected(fa, fb, q.total)
		q.scores[p] = Record{
			FreqA:    fa,
			FreqB:    fb,
			Observed: observed,
			Expected: expected,
			TScore:   TScore(observed, expected),
			SLLR:     SimpleLLR(observed, expected),
		}
		q.obs.Step("cooccur score", i+1, len(pairs))
	}
	q.obs.Phase("cooccur score", fmt.Sprintf("%d pairs scored", len(q.scores)))
	return nil
}

func (q *Quantifier) sortedPairs() []Pair {
	pairs := make([]Pair, 0, len(q.counter.Nxy))
	for p := range q.counter.Nxy {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}

// Report returns the partners of target whose method score is at least
// cutoff, highest first. Under PairingFirstSeen only pairs with target as
// the first-seen token are considered.
func (q *Quantifier) Report(target string, method Method, cutoff float64) ([]Partner, error) {
	if q.scores == nil {
		return nil, fmt.Errorf("%w: score before reporting", internalerr.ErrNotCounted)
	}

	var out []Partner
	for p, rec := range q.scores {
		var partner string
		switch {
		case p.A == target:
			partner = p.B
		case q.pairing == PairingSymmetric && p.B == target:
			partner = p.A
			rec.FreqA, rec.FreqB = rec.FreqB, rec.FreqA
		default:
			continue
		}
		if rec.Value(method) >= cutoff {
			out = append(out, Partner{Token: partner, Record: rec})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		vi, vj := out[i].Record.Value(method), out[j].Record.Value(method)
		if vi != vj {
			return vi > vj
		}
		return out[i].Token < out[j].Token
	})
	return out, nil
}

// WriteExport writes the report for target to w as a tab-separated table
// and returns the number of rows.
func (q *Quantifier) WriteExport(w io.Writer, target string, method Method, cutoff float64) (int, error) {
	partners, err := q.Report(target, method, cutoff)
	if err != nil {
		return 0, err
	}

	rw := report.NewWriter(w)
	if err := rw.Header(append([]string{"tokens"}, Header...)...); err != nil {
		return 0, err
	}
	for _, p := range partners {
		err := rw.Row(
			p.Token,
			strconv.FormatInt(p.Record.FreqB, 10),
			strconv.FormatInt(p.Record.Observed, 10),
			report.FormatFloat(p.Record.Expected),
			report.FormatFloat(p.Record.TScore),
			report.FormatFloat(p.Record.SLLR),
		)
		if err != nil {
			return rw.Rows(), err
		}
	}
	return rw.Rows(), rw.Flush()
}

// Export writes the report for target to path.
func (q *Quantifier) Export(path, target string, method Method, cutoff float64) (int, error) {
	var rows int
	err := report.ToFile(path, func(w io.Writer) error {
		var err error
		rows, err = q.WriteExport(w, target, method, cutoff)
		return err
	})
	return rows, err
}

// Docs returns the loaded documents.
func (q *Quantifier) Docs() []string {
	return q.docs
}

// TotalTokens returns the number of tokens in the loaded text, before the
// frequency cutoff.
func (q *Quantifier) TotalTokens() int64 {
	return q.total
}

// TokenFreq returns the frequency of a kept token, 0 if it was cut.
func (q *Quantifier) TokenFreq(tok string) int64 {
	return q.freq[tok]
}

// Pairs returns the pair counter, or nil before Count.
func (q *Quantifier) Pairs() *Counter {
	return q.counter
}

// Scores returns a copy of the pair scores, or nil before Score.
func (q *Quantifier) Scores() map[Pair]Record {
	if q.scores == nil {
		return nil
	}
	out := make(map[Pair]Record, len(q.scores))
	for p, r := range q.scores {
		out[p] = r
	}
	return out
}
