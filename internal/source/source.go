// Package source reads corpus text from files and databases. Every reader
// returns documents joined by a blank line, the corpus document separator.
package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	_ "modernc.org/sqlite"

	"github.com/cognicore/hanzimine/pkg/hanzimine/corpus"
	"github.com/cognicore/hanzimine/pkg/hanzimine/internalerr"
)

// Format names an input format
type Format string

const (
	FormatText   Format = "text"
	FormatHTML   Format = "html"
	FormatJSONL  Format = "jsonl"
	FormatSQLite Format = "sqlite"
)

// DefaultQuery selects one document per row from a table named docs
const DefaultQuery = "SELECT text FROM docs ORDER BY rowid"

// Detect guesses the format of path from its extension. Unknown extensions
// are read as text.
func Detect(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return FormatHTML
	case ".jsonl", ".ndjson":
		return FormatJSONL
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	}
	return FormatText
}

// ParseFormat validates a format name. An empty name means Detect.
func ParseFormat(name, path string) (Format, error) {
	if name == "" {
		return Detect(path), nil
	}
	switch f := Format(name); f {
	case FormatText, FormatHTML, FormatJSONL, FormatSQLite:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown input format %q", internalerr.ErrInvalidInput, name)
}

// Load reads path in the given format. query is only used for SQLite and
// defaults to DefaultQuery.
func Load(ctx context.Context, path string, format Format, query string) (string, error) {
	switch format {
	case FormatHTML:
		return FromHTML(path)
	case FormatJSONL:
		return FromJSONL(path)
	case FormatSQLite:
		if query == "" {
			query = DefaultQuery
		}
		return FromSQLite(ctx, path, query)
	case FormatText, "":
		return FromFile(path)
	}
	return "", fmt.Errorf("%w: unknown input format %q", internalerr.ErrInvalidInput, format)
}

// FromFile reads a UTF-8 text file as is
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file %s: %w", path, err)
	}
	return string(data), nil
}

// Join trims each document, drops empty ones, and separates the rest with a
// blank line. Paragraph breaks inside a document are reduced to a single
// newline so they do not split it.
func Join(docs []string) string {
	kept := make([]string, 0, len(docs))
	for _, d := range docs {
		d = strings.TrimSpace(corpus.DefaultDocSeparator.ReplaceAllString(d, "\n"))
		if d != "" {
			kept = append(kept, d)
		}
	}
	return strings.Join(kept, "\n\n")
}

// Elements whose text is never corpus content
var skipped = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
}

// Elements that start a new document
var blocks = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true, "td": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "section": true, "article": true,
	"table": true, "ul": true, "ol": true, "dd": true, "dt": true,
}

// FromHTML extracts the text of an HTML file. Each block element becomes a
// document whose whitespace runs are collapsed to one space, so phrases
// split across inline elements stay apart. Script and style content is
// dropped.
func FromHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return "", fmt.Errorf("parse html %s: %w", path, err)
	}
	return Join(htmlBlocks(doc)), nil
}

func htmlBlocks(root *html.Node) []string {
	var docs []string
	var cur strings.Builder
	flush := func() {
		if doc := strings.Join(strings.Fields(cur.String()), " "); doc != "" {
			docs = append(docs, doc)
		}
		cur.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			cur.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipped[n.Data] {
				return
			}
			if blocks[n.Data] {
				flush()
				defer flush()
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	flush()
	return docs
}

// jsonlDoc is one line of a JSONL corpus
type jsonlDoc struct {
	Text string `json:"text"`
}

// FromJSONL reads the text field of every line of a JSONL file.
// Malformed lines are skipped with a warning.
func FromJSONL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file %s: %w", path, err)
	}

	var docs []string
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var doc jsonlDoc
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		docs = append(docs, doc.Text)
	}

	text := Join(docs)
	if text == "" {
		return "", fmt.Errorf("%w: no documents found in %s", internalerr.ErrNotFound, path)
	}
	return text, nil
}

// FromSQLite runs query against the SQLite database at path. query must
// select a single text column; each row is one document and NULL rows are
// skipped.
func FromSQLite(ctx context.Context, path, query string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("open database %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return "", fmt.Errorf("open database %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return "", fmt.Errorf("query %s: %w", path, err)
	}
	defer rows.Close()

	var docs []string
	for rows.Next() {
		var text sql.NullString
		if err := rows.Scan(&text); err != nil {
			return "", fmt.Errorf("scan row: %w", err)
		}
		if text.Valid {
			docs = append(docs, text.String)
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("read rows: %w", err)
	}
	return Join(docs), nil
}
