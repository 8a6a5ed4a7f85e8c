package corpus

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default separators
var (
	// DefaultDocSeparator splits documents on runs of two or more newlines.
	DefaultDocSeparator = regexp.MustCompile(`(\r?\n){2,}`)
	// DefaultTokenSeparator splits a line into whitespace-delimited tokens.
	DefaultTokenSeparator = regexp.MustCompile(`[\s]+`)
	// LineSeparator splits a document into lines.
	LineSeparator = regexp.MustCompile(`\r?\n`)
)

// Corpus is a cleaned text viewed as documents made of phrases.
// A phrase is a whitespace-free run of characters.
type Corpus struct {
	text   string
	docSep *regexp.Regexp
	docs   [][]string
}

// New creates a corpus over text using DefaultDocSeparator.
func New(text string) *Corpus {
	return NewWithSeparator(text, nil)
}

// NewWithSeparator creates a corpus that splits documents with sep.
// A nil sep falls back to DefaultDocSeparator.
func NewWithSeparator(text string, sep *regexp.Regexp) *Corpus {
	if sep == nil {
		sep = DefaultDocSeparator
	}
	return &Corpus{text: text, docSep: sep}
}

// Text returns the flattened corpus text.
func (c *Corpus) Text() string {
	return c.text
}

// Docs returns the documents, each split into phrases.
// The split happens once and is cached.
func (c *Corpus) Docs() [][]string {
	if c.docs == nil {
		parts := c.docSep.Split(c.text, -1)
		c.docs = make([][]string, 0, len(parts))
		for _, part := range parts {
			c.docs = append(c.docs, strings.Fields(part))
		}
	}
	return c.docs
}

// Format selects the Export encoding.
type Format int

const (
	// FormatText writes the flattened text unchanged.
	FormatText Format = iota
	// FormatYAML writes the document/phrase list as YAML.
	FormatYAML
)

// Export writes the corpus to w.
func (c *Corpus) Export(w io.Writer, format Format) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, c.text)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(c.Docs()); err != nil {
			return fmt.Errorf("encode corpus: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %d", format)
	}
}

// NGram returns every contiguous n-character slice of text, left to right.
func NGram(text string, n int) []string {
	runes := []rune(text)
	if n <= 0 || len(runes) < n {
		return nil
	}
	grams := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+n]))
	}
	return grams
}

// AllGram returns every contiguous slice of text whose length lies in
// [minWindow, maxWindow], ordered by increasing length and then left to right.
// The length of text caps maxWindow.
func AllGram(text string, minWindow, maxWindow int) []string {
	runes := []rune(text)
	if maxWindow > len(runes) {
		maxWindow = len(runes)
	}
	if minWindow < 1 {
		minWindow = 1
	}
	var grams []string
	for n := minWindow; n <= maxWindow; n++ {
		for i := 0; i+n <= len(runes); i++ {
			grams = append(grams, string(runes[i:i+n]))
		}
	}
	return grams
}

// Tokenize splits line on sep and drops empty tokens.
// A nil sep falls back to DefaultTokenSeparator.
func Tokenize(line string, sep *regexp.Regexp) []string {
	if sep == nil {
		sep = DefaultTokenSeparator
	}
	var tokens []string
	for _, tok := range sep.Split(line, -1) {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// SplitDocs splits text into trimmed documents with sep.
func SplitDocs(text string, sep *regexp.Regexp) []string {
	if sep == nil {
		sep = DefaultDocSeparator
	}
	parts := sep.Split(text, -1)
	docs := make([]string, len(parts))
	for i, part := range parts {
		docs[i] = strings.TrimSpace(part)
	}
	return docs
}
