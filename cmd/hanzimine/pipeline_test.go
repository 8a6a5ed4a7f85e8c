package main

import (
	"testing"

	"github.com/cognicore/hanzimine/pkg/hanzimine/clean"
	"github.com/cognicore/hanzimine/pkg/hanzimine/config"
	"github.com/cognicore/hanzimine/pkg/hanzimine/extract"
	"github.com/cognicore/hanzimine/pkg/hanzimine/progress"
	"github.com/cognicore/hanzimine/pkg/hanzimine/score"
)

func TestCleanText(t *testing.T) {
	c := config.DefaultConfig().Clean
	c.Remove = []string{"Alphabet"}
	merge := clean.MergeDict{{Pattern: "說", Replacement: "悅"}}

	got, err := cleanText("學而時習之，不亦說乎？# note\n\n有朋 abc", c, merge, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := "學而時習之 不亦悅乎\n\n有朋"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCleanTextUnknownClass(t *testing.T) {
	c := config.DefaultConfig().Clean
	c.Remove = []string{"Greek"}
	if _, err := cleanText("a", c, nil, nil); err == nil {
		t.Error("Unknown character class should fail")
	}
}

func TestSegmentDictKeepsLines(t *testing.T) {
	seg := segmenter{
		cfg:    config.Segment{Method: config.MethodDict, KeywordOnly: true},
		tokens: []string{"學而", "不亦"},
	}

	got, err := seg.run("學而時習之不亦說乎\n\n不亦樂乎")
	if err != nil {
		t.Fatal(err)
	}
	want := "學而 不亦\n\n不亦"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestSegmentGram(t *testing.T) {
	seg := segmenter{cfg: config.Segment{Method: config.MethodGram, GramSize: 2}}

	got, err := seg.run("學而時\n不亦")
	if err != nil {
		t.Fatal(err)
	}
	if got != "學而 而時\n不亦" {
		t.Errorf("Unexpected grams %q", got)
	}
}

func TestSegmentByScore(t *testing.T) {
	rec := &progress.Recorder{}
	seg := segmenter{
		cfg: config.Segment{Method: score.KindFreq.String(), MinWindow: 2, MaxWindow: 3, KeywordOnly: true},
		obs: rec,
		scores: extract.Scores{
			"學而":  {Freq: 5},
			"而時習": {Freq: 9},
			"不亦":  {Freq: 3},
		},
	}

	got, err := seg.run("學而時習之\n不亦說乎")
	if err != nil {
		t.Fatal(err)
	}
	if got != "而時習\n不亦" {
		t.Errorf("Higher score should claim first, got %q", got)
	}
	if len(rec.Phases) != 1 {
		t.Errorf("Expected one segment phase, got %v", rec.Phases)
	}
}

func TestSegmentOutputFeedsQuantifier(t *testing.T) {
	tests := []struct {
		cfg  config.Segment
		want bool
	}{
		{config.Segment{Method: config.MethodDict}, false},
		{config.Segment{Method: config.MethodDict, KeywordOnly: true}, true},
		{config.Segment{Method: score.KindCohesion.String()}, false},
		{config.Segment{Method: config.MethodGram}, true},
	}
	for _, tt := range tests {
		if got := tokenized(tt.cfg); got != tt.want {
			t.Errorf("tokenized(%+v) = %v, want %v", tt.cfg, got, tt.want)
		}
	}

	seg := segmenter{
		cfg:    config.Segment{Method: config.MethodDict, KeywordOnly: true},
		tokens: []string{"學而", "時習"},
	}
	out, err := seg.run("學而時習之")
	if err != nil {
		t.Fatal(err)
	}
	c := config.DefaultConfig().Cooccur
	c.Cutoff = 1
	q, err := quantify(out, c, nil)
	if err != nil {
		t.Fatal(err)
	}
	if q.TokenFreq("學而") != 1 || q.Pairs().GetPairCount("學而", "時習") != 1 {
		t.Errorf("Keyword-only output should count plain tokens, got %q", out)
	}
}

func TestSegmentUnknownMethod(t *testing.T) {
	seg := segmenter{cfg: config.Segment{Method: "viterbi"}}
	if _, err := seg.run("a"); err == nil {
		t.Error("Unknown method should fail")
	}
}

func TestQuantify(t *testing.T) {
	c := config.DefaultConfig().Cooccur
	c.Cutoff = 1
	c.Pairing = "symmetric"

	q, err := quantify("學而 時習\n\n學而 不亦", c, nil)
	if err != nil {
		t.Fatal(err)
	}
	if q.Pairs().GetPairCount("時習", "學而") != 1 {
		t.Errorf("Expected one co-occurrence, got %d", q.Pairs().GetPairCount("時習", "學而"))
	}

	c.Pairing = "both"
	if _, err := quantify("a b", c, nil); err == nil {
		t.Error("Unknown pairing should fail")
	}
}

func TestExtractScores(t *testing.T) {
	p := config.DefaultConfig().Extract
	p.MinFreq = -1
	if _, err := extractScores(nil, p, nil); err == nil {
		t.Error("Negative min freq should fail training")
	}
}
