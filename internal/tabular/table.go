// Package tabular reads raw string tables from the file formats the
// dashboard data ships in. It performs no cleaning or numeric coercion.
package tabular

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Table is a header plus string rows. Rows may be shorter than the header.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Column returns the index of the header equal to name, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when the row is short.
func (t *Table) Cell(row, col int) string {
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Source names a table inside a file.
// Table selects a sheet (xlsx) or table (sqlite); it is ignored otherwise.
type Source struct {
	Name  string
	Path  string
	Table string
}

// Open reads the table described by src, dispatching on the file extension.
func Open(ctx context.Context, src Source) (*Table, error) {
	var (
		t   *Table
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(src.Path)); ext {
	case ".csv":
		t, err = openCSV(src.Path)
	case ".xlsx":
		t, err = ReadXLSX(src.Path, src.Table)
	case ".db", ".sqlite", ".sqlite3":
		t, err = ReadSQLite(ctx, src.Path, src.Table)
	case ".arrow", ".ipc":
		t, err = openArrow(src.Path)
	default:
		return nil, fmt.Errorf("%s: unsupported source extension %q", src.Path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path, err)
	}

	t.Name = src.Name
	if t.Name == "" {
		t.Name = filepath.Base(src.Path)
	}
	return t, nil
}

func openCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // nolint: errcheck
	return ReadCSV(f)
}

func openArrow(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // nolint: errcheck
	return ReadArrow(f)
}
