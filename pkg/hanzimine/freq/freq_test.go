package freq

import (
	"reflect"
	"testing"

	"github.com/cognicore/hanzimine/pkg/hanzimine/progress"
)

func TestBuildTokens(t *testing.T) {
	docs := [][]string{{"abcab"}}
	tables := Build(docs, "abcab", 1, 3, nil)

	tests := []struct {
		key  string
		want int64
	}{
		{"a", 2},
		{"b", 2},
		{"c", 1},
		{"ab", 2},
		{"bc", 1},
		{"ca", 1},
		{"abc", 1},
		{"bca", 1},
		{"cab", 1},
	}
	for _, tt := range tests {
		if got := tables.Tokens[tt.key]; got != tt.want {
			t.Errorf("Tokens[%q] = %d, want %d", tt.key, got, tt.want)
		}
	}
	if _, ok := tables.Tokens.Get("abca"); ok {
		t.Error("Substrings longer than the window should not be counted")
	}
}

func TestBuildBigrams(t *testing.T) {
	docs := [][]string{{"abab", "ba"}, {"ab"}}
	tables := Build(docs, "abab ba\n\nab", 3, 4, nil)

	want := Counter{"ab": 3, "ba": 2}
	if !reflect.DeepEqual(tables.Bigrams, want) {
		t.Errorf("Expected bigrams %v, got %v", want, tables.Bigrams)
	}
	if _, ok := tables.Tokens.Get("ab"); ok {
		t.Error("Bigrams outside the token window should only be in the bigram table")
	}
}

func TestBuildUnigramsFlattened(t *testing.T) {
	text := "學而\n\n學"
	tables := Build([][]string{{"學而"}, {"學"}}, text, 1, 2, nil)

	if tables.Unigrams["學"] != 2 {
		t.Errorf("Expected 學 count 2, got %d", tables.Unigrams["學"])
	}
	if tables.Unigrams["\n"] != 2 {
		t.Errorf("Unigrams count the raw text, expected 2 newlines, got %d", tables.Unigrams["\n"])
	}
}

func TestBuildEmptyPhrases(t *testing.T) {
	tables := Build([][]string{{"", ""}, {}}, "", 1, 3, nil)
	if len(tables.Tokens) != 0 || len(tables.Bigrams) != 0 {
		t.Error("Empty phrases should contribute nothing")
	}
}

func TestBuildReportsProgress(t *testing.T) {
	rec := &progress.Recorder{}
	Build([][]string{{"ab"}, {"cd"}, {"ef"}}, "", 1, 2, rec)
	if rec.Steps["count"] != 3 {
		t.Errorf("Expected progress for 3 docs, got %d", rec.Steps["count"])
	}
}

func TestCounterHelpers(t *testing.T) {
	c := Counter{"b": 2, "a": 1, "c": 5}

	if c.Total() != 8 {
		t.Errorf("Expected total 8, got %d", c.Total())
	}
	if !reflect.DeepEqual(c.Keys(), []string{"a", "b", "c"}) {
		t.Errorf("Keys should be sorted, got %v", c.Keys())
	}

	big := c.Filter(func(_ string, n int64) bool { return n >= 2 })
	if len(big) != 2 || big["a"] != 0 {
		t.Errorf("Unexpected filter result %v", big)
	}

	clone := c.Clone()
	clone["a"] = 99
	if c["a"] != 1 {
		t.Error("Clone should not alias the original")
	}
}
