package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

// Table is a delimited-text file read into string-keyed rows.
type Table struct {
	// Header holds the column names from the first line
	Header []string
	// Rows maps header names to field values. A row shorter than the header
	// has no entry for the missing trailing columns; fields beyond the
	// header are discarded.
	Rows []map[string]string
}

// Keys returns the keys of the first row in header order, or nil when the
// table has no data rows. Repeated header names are reported once.
func (t *Table) Keys() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	first := t.Rows[0]
	seen := make(map[string]bool, len(first))
	keys := make([]string, 0, len(first))
	for _, h := range t.Header {
		if _, ok := first[h]; !ok || seen[h] {
			continue
		}
		seen[h] = true
		keys = append(keys, h)
	}
	return keys
}

// ReadOptions controls parsing.
type ReadOptions struct {
	// Delimiter separates fields; zero means ','
	Delimiter rune
}

// ReadFile reads the table stored at path.
func ReadFile(path string, opts ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	t, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

// Read parses a table from r. The first record is the header; an empty
// input yields an empty table.
func Read(r io.Reader, opts ReadOptions) (*Table, error) {
	cr := csv.NewReader(r)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	t := &Table{Header: header}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, field := range record {
			if i >= len(header) {
				break
			}
			row[header[i]] = field
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
