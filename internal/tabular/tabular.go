// Package tabular converts provider CSV exports into header-keyed rows
// validated against a column schema. Parsing is not fail-fast: every
// malformed row and schema-violating field in a file is collected into one
// aggregated error, and a file that produces any error yields zero rows.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Column describes one required header column. A non-empty Enum restricts the
// accepted values.
type Column struct {
	Name string
	Enum []string
}

// Schema lists the columns a provider export must carry. Column order within
// the file is free; header names must match exactly.
type Schema struct {
	Columns []Column
}

// Row is one validated record keyed by header name.
type Row map[string]string

// ParseError aggregates every row and field failure found in a file.
type ParseError struct {
	err error
}

func (e *ParseError) Error() string {
	return "parsing rows: " + e.err.Error()
}

func (e *ParseError) Unwrap() error { return e.err }

// Issues returns the individual row/field failures.
func (e *ParseError) Issues() []error { return multierr.Errors(e.err) }

// Parse reads a CSV export and validates every record against the schema.
// Row numbers in error messages are 1-based file lines, counting the header.
func Parse(r io.Reader, schema Schema) ([]Row, error) {
	cr := csv.NewReader(decode(r))
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &ParseError{err: err}
	}

	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var errs error
	for _, col := range schema.Columns {
		if _, ok := index[col.Name]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("header: missing column %q", col.Name))
		}
	}
	if errs != nil {
		return nil, &ParseError{err: errs}
	}

	var rows []Row
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			errs = multierr.Append(errs, fmt.Errorf("row %d: expected %d fields, got %d", i+2, len(header), len(rec)))
			continue
		}

		row := make(Row, len(schema.Columns))
		for _, col := range schema.Columns {
			val := rec[index[col.Name]]
			if len(col.Enum) > 0 && !contains(col.Enum, val) {
				errs = multierr.Append(errs, fmt.Errorf("row %d, field %s: invalid value %q (expected one of %s)",
					i+2, col.Name, val, strings.Join(col.Enum, ", ")))
				continue
			}
			row[col.Name] = val
		}
		rows = append(rows, row)
	}

	if errs != nil {
		return nil, &ParseError{err: errs}
	}
	return rows, nil
}

// decode strips a UTF-8 or UTF-16 byte order mark; bank exports sometimes
// carry one.
func decode(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

func contains(values []string, v string) bool {
	for _, val := range values {
		if val == v {
			return true
		}
	}
	return false
}
