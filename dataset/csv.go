package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// table is a parsed CSV file with a header row.
type table struct {
	header []string
	rows   [][]string
}

func readTable(r io.Reader, name string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: empty file", ErrMalformed, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}

	t := &table{header: header}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// column returns the index of the first header among names.
func (t *table) column(file string, names ...string) (int, error) {
	for _, name := range names {
		for i, h := range t.header {
			if h == name {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("%w: %s needs %q", ErrMissingColumn, file, names[0])
}

// columnsWithPrefix returns the indexes of every header starting with prefix.
func (t *table) columnsWithPrefix(prefix string) []int {
	var out []int
	for i, h := range t.header {
		if strings.HasPrefix(h, prefix) {
			out = append(out, i)
		}
	}
	return out
}

// cell returns the trimmed value at col, or "" for short rows.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
