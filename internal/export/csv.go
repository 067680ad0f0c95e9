// Package export serializes a view's filtered records to CSV and delivers
// the file to a directory or an S3 bucket.
package export

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
)

// Column is one CSV column: a header and how to render a record's cell.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// WriteCSV writes a header row followed by one row per record. Every field
// is wrapped in double quotes with embedded quotes doubled, and rows end
// with "\n".
func WriteCSV[T any](w io.Writer, columns []Column[T], records []T) error {
	bw := bufio.NewWriter(w)
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}
	writeRow(bw, headers)

	cells := make([]string, len(columns))
	for _, r := range records {
		for i, c := range columns {
			cells[i] = c.Value(r)
		}
		writeRow(bw, cells)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// Encode returns the CSV document for records.
func Encode[T any](columns []Column[T], records []T) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, columns, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteByte('\n')
}

// FileName is "<view>-export-YYYY-MM-DD.csv" for the local date of now.
func FileName(view string, now time.Time) string {
	return fmt.Sprintf("%s-export-%s.csv", view, now.Format(time.DateOnly))
}
