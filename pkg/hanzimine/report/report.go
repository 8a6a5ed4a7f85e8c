package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Sep is the column separator of every report.
const Sep = "\t"

// FormatFloat renders a score with three decimals.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

// Writer writes a tab-separated table: one header row, then records.
type Writer struct {
	w    *bufio.Writer
	cols int
	rows int
	err  error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Header writes the header row. Every later row must have the same width.
func (w *Writer) Header(cols ...string) error {
	w.cols = len(cols)
	return w.line(cols)
}

// Row writes one record.
func (w *Writer) Row(fields ...string) error {
	if w.cols != 0 && len(fields) != w.cols {
		return fmt.Errorf("report row has %d fields, header has %d", len(fields), w.cols)
	}
	if err := w.line(fields); err != nil {
		return err
	}
	w.rows++
	return nil
}

func (w *Writer) line(fields []string) error {
	if w.err != nil {
		return w.err
	}
	_, w.err = w.w.WriteString(strings.Join(fields, Sep) + "\n")
	return w.err
}

// Rows returns the number of records written so far.
func (w *Writer) Rows() int {
	return w.rows
}

// Flush writes any buffered data.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

// ToFile creates path and runs write against it. The file is closed even
// when write fails; the first error wins.
func ToFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
