package grid

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// CSVLoader reads comma-separated survey exports.
type CSVLoader struct{}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Format returns the loader name.
func (l *CSVLoader) Format() string { return "csv" }

// Load reads every record as raw text. Records may have differing field counts.
func (l *CSVLoader) Load(r io.Reader) (*Grid, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("skipping BOM: %w", err)
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return New(records), nil
}
