package engine

import (
	"math"
	"strconv"
	"strings"

	"wcidash/internal/tabular"
)

// ParseLenient parses s as a float. Blank, unparseable and non-finite
// values become 0; messy source cells never fail a load.
func ParseLenient(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if isHexFloat(s) {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// isHexFloat reports a 0x prefix after an optional sign. ParseFloat
// accepts hex floats; the coercion rule treats them as unparseable.
func isHexFloat(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// ToNumeric copies t into a Matrix keyed by keyColumn, parsing every other
// column with ParseLenient. The input table is not modified. Row count and
// the order of the non-key columns are preserved.
func ToNumeric(t *tabular.Table, keyColumn string) (*Matrix, error) {
	keyIdx := t.Column(keyColumn)
	if keyIdx < 0 {
		return nil, &ValidationError{Table: t.Name, Missing: []string{keyColumn}}
	}

	numRows := len(t.Rows)
	m := &Matrix{
		Name:      t.Name,
		KeyColumn: keyColumn,
		Keys:      make([]string, numRows),
		Labels:    make([]string, 0, len(t.Header)-1),
		Values:    make([][]float64, 0, len(t.Header)-1),
	}

	for i := 0; i < numRows; i++ {
		m.Keys[i] = t.Cell(i, keyIdx)
	}

	for c, label := range t.Header {
		if c == keyIdx {
			continue
		}
		col := make([]float64, numRows)
		for i := 0; i < numRows; i++ {
			col[i] = ParseLenient(t.Cell(i, c))
		}
		m.Labels = append(m.Labels, label)
		m.Values = append(m.Values, col)
	}

	return m, nil
}
