package score

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/cognicore/hanzimine/pkg/hanzimine/freq"
	"github.com/cognicore/hanzimine/pkg/hanzimine/internalerr"
	"github.com/cognicore/hanzimine/pkg/hanzimine/progress"
)

// Entropy returns -p*log2(p). Entropy(0) is 0, its limit value.
func Entropy(p float64) float64 {
	if p <= 0 {
		return 0
	}
	return -p * math.Log2(p)
}

// Side names which one-character-shorter context of a word is meant.
type Side int

const (
	// Left is the word without its last character.
	Left Side = iota
	// Right is the word without its first character.
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// MissingContext reports a context substring that was absent from the
// token table (or counted zero times). Its entropy contribution is 0.
type MissingContext struct {
	Word    string
	Context string
	Side    Side
}

func (e *MissingContext) Error() string {
	return fmt.Sprintf("%s context %q of %q not counted", e.Side, e.Context, e.Word)
}

// Unwrap lets errors.Is match internalerr.ErrMissingContext.
func (e *MissingContext) Unwrap() error {
	return internalerr.ErrMissingContext
}

// WindowClamped reports that a requested minimum window was raised.
type WindowClamped struct {
	Requested, Used int
}

func (e *WindowClamped) Error() string {
	return fmt.Sprintf("min window %d is below %d, using %d", e.Requested, e.Used, e.Used)
}

// Unwrap lets errors.Is match internalerr.ErrInvalidInput.
func (e *WindowClamped) Unwrap() error {
	return internalerr.ErrInvalidInput
}

// Contribution is the entropy one word adds to the bucket of a shorter context.
type Contribution struct {
	Context string
	Entropy float64
}

// BranchEntropy returns the left and right contributions of word:
// entropy(f(word)/f(word[:-1])) keyed by word[:-1], and
// entropy(f(word)/f(word[1:])) keyed by word[1:].
// A context that is missing or zero yields 0 and a *MissingContext.
func BranchEntropy(word string, tokens freq.Counter) (left, right Contribution, diags []error) {
	whole := float64(tokens[word])

	_, lastSize := utf8.DecodeLastRuneInString(word)
	_, firstSize := utf8.DecodeRuneInString(word)
	left.Context = word[:len(word)-lastSize]
	right.Context = word[firstSize:]

	if n, ok := tokens[left.Context]; ok && n != 0 {
		left.Entropy = Entropy(whole / float64(n))
	} else {
		diags = append(diags, &MissingContext{Word: word, Context: left.Context, Side: Left})
	}
	if n, ok := tokens[right.Context]; ok && n != 0 {
		right.Entropy = Entropy(whole / float64(n))
	} else {
		diags = append(diags, &MissingContext{Word: word, Context: right.Context, Side: Right})
	}
	return left, right, diags
}

// Accumulated holds per-context entropy totals. It is built once by
// AccumulateBranchEntropy and only read afterwards.
type Accumulated struct {
	left        map[string]float64
	right       map[string]float64
	diagnostics []error
}

// AccumulateBranchEntropy adds the branch entropy contribution of every
// counted word of at least minWindow characters into the bucket of its
// shorter context. Words are visited in lexical order so the totals and
// diagnostics are reproducible.
func AccumulateBranchEntropy(tokens freq.Counter, minWindow int, obs progress.Observer) *Accumulated {
	obs = progress.OrNop(obs)
	acc := &Accumulated{
		left:  make(map[string]float64),
		right: make(map[string]float64),
	}

	keys := tokens.Keys()
	for i, w := range keys {
		if utf8.RuneCountInString(w) >= minWindow && w != "" {
			l, r, diags := BranchEntropy(w, tokens)
			acc.left[l.Context] += l.Entropy
			acc.right[r.Context] += r.Entropy
			for _, d := range diags {
				acc.diagnostics = append(acc.diagnostics, d)
				obs.Warn(d)
			}
		}
		obs.Step("branch entropy", i+1, len(keys))
	}
	return acc
}

// Lookup returns the accumulated left and right entropy of word.
// A word no longer string extends reads as 0 on that side.
func (a *Accumulated) Lookup(word string) (left, right float64) {
	return a.left[word], a.right[word]
}

// Len returns the number of contexts with an accumulated total on either side.
func (a *Accumulated) Len() int {
	n := len(a.left)
	for k := range a.right {
		if _, ok := a.left[k]; !ok {
			n++
		}
	}
	return n
}

// Diagnostics returns the missing-context reports collected while accumulating.
func (a *Accumulated) Diagnostics() []error {
	out := make([]error, len(a.diagnostics))
	copy(out, a.diagnostics)
	return out
}
