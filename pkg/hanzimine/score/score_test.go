package score

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/cognicore/hanzimine/pkg/hanzimine/freq"
	"github.com/cognicore/hanzimine/pkg/hanzimine/internalerr"
	"github.com/cognicore/hanzimine/pkg/hanzimine/progress"
)

const eps = 1e-12

func TestCohesionBelowWindowIsZero(t *testing.T) {
	tokens := freq.Counter{"ab": 4, "abc": 2, "a": 5}
	unigrams := freq.Counter{"a": 5, "b": 5, "c": 5}

	for _, w := range []string{"", "a", "ab"} {
		l, r, c, s := Cohesion(w, tokens, unigrams, 3)
		if l != 0 || r != 0 || c != 0 || s != 0 {
			t.Errorf("Cohesion(%q) below window should be 0, got %v %v %v %v", w, l, r, c, s)
		}
	}
}

func TestCohesionFormula(t *testing.T) {
	tokens := freq.Counter{"學而": 4, "學而時": 2}
	unigrams := freq.Counter{"學": 8, "而": 16, "時": 4}

	l, r, c, s := Cohesion("學而", tokens, unigrams, 2)
	if math.Abs(l-0.5) > eps {
		t.Errorf("cohesion_l: expected 0.5, got %f", l)
	}
	if math.Abs(r-0.25) > eps {
		t.Errorf("cohesion_r: expected 0.25, got %f", r)
	}
	if c != math.Sqrt(l*r) {
		t.Errorf("cohesion should equal sqrt(l*r) exactly, got %f", c)
	}
	if math.Abs(s-0.375) > eps {
		t.Errorf("cohesion_s: expected 0.375, got %f", s)
	}

	// length 3: exponent 1/2
	l, r, _, _ = Cohesion("學而時", tokens, unigrams, 2)
	if math.Abs(l-math.Sqrt(2.0/8.0)) > eps {
		t.Errorf("cohesion_l of length-3 word: got %f", l)
	}
	if math.Abs(r-math.Sqrt(2.0/4.0)) > eps {
		t.Errorf("cohesion_r of length-3 word: got %f", r)
	}
}

func TestCohesionUnseenWord(t *testing.T) {
	l, r, c, s := Cohesion("xy", freq.Counter{}, freq.Counter{"x": 1, "y": 1}, 2)
	if l != 0 || r != 0 || c != 0 || s != 0 {
		t.Error("Unseen word should score 0")
	}
}

func TestCohesionZeroUnigram(t *testing.T) {
	l, r, _, _ := Cohesion("xy", freq.Counter{"xy": 1}, freq.Counter{"y": 2}, 2)
	if l != 0 {
		t.Errorf("Missing first-char frequency should guard to 0, got %f", l)
	}
	if math.IsInf(r, 0) || math.IsNaN(r) || r == 0 {
		t.Errorf("Right side should still be computed, got %f", r)
	}
}

func TestEntropyBoundaries(t *testing.T) {
	if Entropy(1) != 0 {
		t.Errorf("entropy(1) should be 0, got %f", Entropy(1))
	}
	if Entropy(0) != 0 {
		t.Errorf("entropy(0) should be 0, got %f", Entropy(0))
	}

	// -p*log2(p) peaks at 1/e; two-outcome branch entropy peaks at 0.5
	binary := func(p float64) float64 { return Entropy(p) + Entropy(1-p) }
	if math.Abs(binary(0.5)-1) > eps {
		t.Errorf("two-outcome entropy at 0.5 should be 1 bit, got %f", binary(0.5))
	}
	for _, p := range []float64{0.1, 0.3, 0.45, 0.55, 0.7, 0.9} {
		if binary(p) >= binary(0.5) {
			t.Errorf("two-outcome entropy at %f should be below the 0.5 peak", p)
		}
	}
}

func TestBranchEntropy(t *testing.T) {
	tokens := freq.Counter{"ab": 4, "bc": 2, "abc": 2}

	left, right, diags := BranchEntropy("abc", tokens)
	if left.Context != "ab" || right.Context != "bc" {
		t.Fatalf("Unexpected contexts %q %q", left.Context, right.Context)
	}
	if math.Abs(left.Entropy-Entropy(0.5)) > eps {
		t.Errorf("Left entropy: expected %f, got %f", Entropy(0.5), left.Entropy)
	}
	if right.Entropy != 0 {
		t.Errorf("Right entropy of certain extension should be 0, got %f", right.Entropy)
	}
	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics, got %v", diags)
	}
}

func TestBranchEntropyMissingContext(t *testing.T) {
	tokens := freq.Counter{"ab": 1, "a": 0}

	left, right, diags := BranchEntropy("ab", tokens)
	if left.Entropy != 0 || right.Entropy != 0 {
		t.Error("Missing contexts should contribute 0")
	}
	if len(diags) != 2 {
		t.Fatalf("Expected 2 diagnostics (zero-count left, absent right), got %d", len(diags))
	}
	for _, d := range diags {
		if !errors.Is(d, internalerr.ErrMissingContext) {
			t.Errorf("Diagnostic should match ErrMissingContext: %v", d)
		}
	}
	var mc *MissingContext
	if !errors.As(diags[1], &mc) || mc.Side != Right || mc.Context != "b" {
		t.Errorf("Unexpected right diagnostic %v", diags[1])
	}
}

func TestBranchEntropyMultibyte(t *testing.T) {
	tokens := freq.Counter{"學而": 3, "學": 3, "而": 6}
	left, right, _ := BranchEntropy("學而", tokens)
	if left.Context != "學" || right.Context != "而" {
		t.Errorf("Contexts should be split on characters, got %q %q", left.Context, right.Context)
	}
	if math.Abs(right.Entropy-Entropy(0.5)) > eps {
		t.Errorf("Expected right entropy %f, got %f", Entropy(0.5), right.Entropy)
	}
}

func TestAccumulateBranchEntropy(t *testing.T) {
	// "ab" extends to "abc" and "abd"; "xb" and "yb" end in "b"
	tokens := freq.Counter{
		"a": 2, "b": 4, "c": 1, "d": 1, "x": 1, "y": 1,
		"ab": 2, "bc": 1, "bd": 1, "xb": 1, "yb": 1,
		"abc": 1, "abd": 1,
	}
	rec := &progress.Recorder{}
	acc := AccumulateBranchEntropy(tokens, 3, rec)

	left, right := acc.Lookup("ab")
	if math.Abs(left-2*Entropy(0.5)) > eps {
		t.Errorf("Accumulated left entropy of ab: expected %f, got %f", 2*Entropy(0.5), left)
	}
	if right != 0 {
		t.Errorf("ab is never a right context, expected 0, got %f", right)
	}

	_, right = acc.Lookup("bc")
	if right != 0 {
		t.Errorf("bc always extends abc: entropy(1)=0, got %f", right)
	}

	if l, r := acc.Lookup("zz"); l != 0 || r != 0 {
		t.Error("Absent bucket should read as 0")
	}
	if len(acc.Diagnostics()) != 0 {
		t.Errorf("Expected no diagnostics, got %v", acc.Diagnostics())
	}
	if rec.Steps["branch entropy"] != len(tokens) {
		t.Errorf("Expected a progress step per counted token, got %d", rec.Steps["branch entropy"])
	}
}

func TestAccumulateBranchEntropyWindow(t *testing.T) {
	tokens := freq.Counter{"a": 1, "b": 1, "ab": 1}

	acc := AccumulateBranchEntropy(tokens, 3, nil)
	if acc.Len() != 0 {
		t.Errorf("Words below the window should not contribute, got %d buckets", acc.Len())
	}

	acc = AccumulateBranchEntropy(tokens, 2, nil)
	if acc.Len() != 2 {
		t.Errorf("Expected buckets for a and b, got %d", acc.Len())
	}
}

func TestAccumulateReportsMissingContexts(t *testing.T) {
	rec := &progress.Recorder{}
	acc := AccumulateBranchEntropy(freq.Counter{"abc": 1}, 2, rec)

	if len(acc.Diagnostics()) != 2 {
		t.Errorf("Expected 2 diagnostics, got %d", len(acc.Diagnostics()))
	}
	if len(rec.Warnings) != 2 {
		t.Errorf("Diagnostics should reach the observer, got %d", len(rec.Warnings))
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("pmi"); !errors.Is(err, internalerr.ErrUnknownScore) {
		t.Errorf("Unknown kind should fail with ErrUnknownScore, got %v", err)
	}
	if Kind(42).String() != "Kind(42)" {
		t.Errorf("Unexpected out-of-range name %q", Kind(42).String())
	}
}

func TestHeaderOrder(t *testing.T) {
	want := []string{"freq", "cohesion_l", "cohesion_r", "cohesion", "cohesion_s",
		"branch_entropy_l", "branch_entropy_r", "branch_entropy"}
	if !reflect.DeepEqual(Header(), want) {
		t.Errorf("Expected header %v, got %v", want, Header())
	}
}

func TestRecordValues(t *testing.T) {
	r := Record{Freq: 3, CohesionL: 1, CohesionR: 2, Cohesion: 3, CohesionS: 4,
		BranchEntropyL: 5, BranchEntropyR: 6, BranchEntropy: 7}
	want := []float64{3, 1, 2, 3, 4, 5, 6, 7}
	if !reflect.DeepEqual(r.Values(), want) {
		t.Errorf("Expected %v, got %v", want, r.Values())
	}
	if r.Value(Kind(-1)) != 0 {
		t.Error("Unknown kind should read as 0")
	}
}
