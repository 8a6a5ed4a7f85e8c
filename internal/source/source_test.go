package source

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/hanzimine/pkg/hanzimine/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestDetect(t *testing.T) {
	tests := map[string]Format{
		"analects.txt":   FormatText,
		"analects":       FormatText,
		"page.HTML":      FormatHTML,
		"feed.jsonl":     FormatJSONL,
		"corpus.sqlite3": FormatSQLite,
		"corpus.db":      FormatSQLite,
	}
	for path, want := range tests {
		if got := Detect(path); got != want {
			t.Errorf("Detect(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("", "a.jsonl"); err != nil || f != FormatJSONL {
		t.Errorf("Empty name should detect, got %q, %v", f, err)
	}
	if f, err := ParseFormat("html", "a.txt"); err != nil || f != FormatHTML {
		t.Errorf("Explicit name should win, got %q, %v", f, err)
	}
	if _, err := ParseFormat("pdf", "a.pdf"); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Unknown format should fail, got %v", err)
	}
}

func TestJoin(t *testing.T) {
	got := Join([]string{"  學而時習之 ", "", "不亦\n\n\n說乎", "   "})
	want := "學而時習之\n\n不亦\n說乎"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestFromFile(t *testing.T) {
	path := writeFile(t, "a.txt", "學而\n\n時習")
	text, err := FromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if text != "學而\n\n時習" {
		t.Errorf("Text files should be read unchanged, got %q", text)
	}

	if _, err := FromFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Should error on nonexistent file")
	}
}

func TestFromHTML(t *testing.T) {
	path := writeFile(t, "page.html", `<html><head><title>論語</title><style>p { color: red }</style></head>
<body>
  <p>學而<b>時習</b>之</p>
  <div>不亦說乎<script>alert(1)</script></div>
</body></html>`)

	text, err := FromHTML(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "學而時習之\n\n不亦說乎"
	if text != want {
		t.Errorf("Expected %q, got %q", want, text)
	}
}

func TestFromHTMLKeepsPhraseBreaks(t *testing.T) {
	path := writeFile(t, "phrases.html", "<p>學而 <b>時習</b> 之</p><p>不亦\n\t説乎 <i>  </i>樂</p>")

	text, err := FromHTML(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "學而 時習 之\n\n不亦 説乎 樂"
	if text != want {
		t.Errorf("Expected %q, got %q", want, text)
	}
}

func TestFromJSONL(t *testing.T) {
	path := writeFile(t, "feed.jsonl", `{"text": "學而"}
not json
{"text": "不亦"}
{"id": 1}
`)

	text, err := FromJSONL(path)
	if err != nil {
		t.Fatal(err)
	}
	if text != "學而\n\n不亦" {
		t.Errorf("Unexpected text %q", text)
	}
}

func TestFromJSONLEmpty(t *testing.T) {
	path := writeFile(t, "empty.jsonl", "garbage\n\n")
	if _, err := FromJSONL(path); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFromSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "corpus.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	stmts := []string{
		"CREATE TABLE docs (text TEXT)",
		"INSERT INTO docs (text) VALUES ('學而時習之')",
		"INSERT INTO docs (text) VALUES (NULL)",
		"INSERT INTO docs (text) VALUES ('不亦說乎')",
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("%s: %v", stmt, err)
		}
	}
	db.Close()

	text, err := Load(ctx, path, Detect(path), "")
	if err != nil {
		t.Fatal(err)
	}
	if text != "學而時習之\n\n不亦說乎" {
		t.Errorf("Unexpected text %q", text)
	}

	if _, err := FromSQLite(ctx, path, "SELECT body FROM docs"); err == nil {
		t.Error("Should error on an unknown column")
	}
}

func TestFromSQLiteMissing(t *testing.T) {
	if _, err := FromSQLite(context.Background(), filepath.Join(t.TempDir(), "none.db"), DefaultQuery); err == nil {
		t.Error("Should not create a database that does not exist")
	}
}
