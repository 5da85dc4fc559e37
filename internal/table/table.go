// Package table decodes the CSV export of the content plan.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Record is one data row addressed by header name. Column order follows the header.
type Record struct {
	Columns []string
	Values  map[string]string
}

// Get returns the raw value of column, or "" when the column is absent.
func (r Record) Get(column string) string {
	return r.Values[column]
}

// DecodeError reports structurally malformed table text.
type DecodeError struct {
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("decode table: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("decode table: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode reads delimited text whose first row is the header. Blank lines are
// skipped and every record must have as many fields as the header.
func Decode(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, decodeError(err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []Record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, decodeError(err)
		}
		if blank(fields) {
			continue
		}
		values := make(map[string]string, len(header))
		for i, col := range header {
			values[col] = fields[i]
		}
		records = append(records, Record{Columns: header, Values: values})
	}
	return records, nil
}

// blank reports rows made only of empty cells (",,,"), which spreadsheets
// export for visually empty lines.
func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func decodeError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &DecodeError{Line: pe.Line, Err: pe.Err}
	}
	return &DecodeError{Err: err}
}
