package engine

import (
	"fmt"
	"time"

	"wcidash/internal/canon"
)

// Mode selects one of the attribution matrices.
type Mode string

const (
	ByNationality Mode = "By nationality"
	ByResidence   Mode = "By residence"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ByNationality, ByResidence}

// Slug is the URL-friendly form of the mode.
func (m Mode) Slug() string {
	switch m {
	case ByNationality:
		return "nationality"
	case ByResidence:
		return "residence"
	default:
		return canon.Key(string(m))
	}
}

// ParseMode accepts a display label or a slug, in any case or punctuation.
func ParseMode(s string) (Mode, error) {
	key := canon.Key(s)
	for _, m := range Modes {
		if key == canon.Key(string(m)) || key == m.Slug() {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Matrix holds an attribution matrix in Struct-of-Arrays format.
// Values is column-major: Values[col][row].
type Matrix struct {
	Name      string
	KeyColumn string

	// Key column value per row (cleaned display names)
	Keys []string

	// Non-key column headers in source order
	Labels []string

	Values [][]float64
}

func (m *Matrix) NumRows() int { return len(m.Keys) }
func (m *Matrix) NumCols() int { return len(m.Labels) }

// At returns the value at (row, col).
func (m *Matrix) At(row, col int) float64 {
	return m.Values[col][row]
}

// ModeData pairs a matrix with the index built from it.
type ModeData struct {
	Matrix *Matrix
	Index  *MatrixIndex
}

// Dataset is an immutable snapshot of everything the dashboard serves.
// It is safe for concurrent readers; a reload replaces the whole value.
type Dataset struct {
	Metrics  *MetricsTable
	Modes    map[Mode]*ModeData
	LoadedAt time.Time
}

// Resolve runs the attribution resolver against the matrix of mode.
// A country with no data yields an empty Result, not an error.
func (d *Dataset) Resolve(mode Mode, accused string, topN int) (Result, error) {
	md, ok := d.Modes[mode]
	if !ok || md == nil {
		return Result{}, &ConfigurationError{Mode: mode, Reason: "matrix not loaded"}
	}
	if md.Matrix == nil || md.Index == nil {
		return Result{}, &ConfigurationError{Mode: mode, Reason: "index not built"}
	}
	return Resolve(md.Matrix, md.Index, accused, topN), nil
}

// Suggest returns up to n known country names close to query.
func (d *Dataset) Suggest(query string, n int) []string {
	var names []string
	if d.Metrics != nil {
		names = d.Metrics.Countries()
	} else {
		seen := make(map[string]bool)
		for _, md := range d.Modes {
			for _, k := range md.Matrix.Keys {
				if !seen[k] {
					seen[k] = true
					names = append(names, k)
				}
			}
		}
	}
	return Suggest(names, query, n)
}
