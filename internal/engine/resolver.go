package engine

import (
	"sort"

	"wcidash/internal/canon"
)

// DefaultTopN is the number of attributors kept when the caller passes topN <= 0.
const DefaultTopN = 10

// Orientation tells which reading of the matrix answered a query.
type Orientation int

const (
	// NoMatch: the accused country is neither a column nor a row key.
	NoMatch Orientation = iota
	// ColumnMatch: rows are attributors, the matched column is the accused.
	ColumnMatch
	// RowMatch: the matched row is the accused, columns are attributors.
	RowMatch
)

func (o Orientation) String() string {
	switch o {
	case ColumnMatch:
		return "column"
	case RowMatch:
		return "row"
	default:
		return "none"
	}
}

// Attribution is one attributor's share of its own total attributions
// that point at the accused country.
type Attribution struct {
	Attributor  string
	Share       float64
	Count       float64
	Denominator float64
}

type Result struct {
	Orientation Orientation
	Entries     []Attribution
}

func (r Result) Empty() bool { return len(r.Entries) == 0 }

// Resolve ranks the attributors of accused in m.
//
// The orientation of m is probed per call. If accused names a column, each
// row is an attributor and its count is divided by that row's total.
// Otherwise accused is looked up as a row and each column is an attributor
// divided by the column's total. Entries with a zero count or zero
// denominator are dropped. The result is sorted by share, highest first,
// equal shares keeping matrix order, and cut to topN.
func Resolve(m *Matrix, idx *MatrixIndex, accused string, topN int) Result {
	if topN <= 0 {
		topN = DefaultTopN
	}
	key := canon.Key(accused)

	res := Result{Entries: []Attribution{}}

	if col := columnOf(m, key); col >= 0 {
		res.Orientation = ColumnMatch
		for i, count := range m.Values[col] {
			denom := idx.RowTotals[i]
			if count > 0 && denom > 0 {
				res.Entries = append(res.Entries, Attribution{
					Attributor:  m.Keys[i],
					Share:       count / denom,
					Count:       count,
					Denominator: denom,
				})
			}
		}
	} else {
		row, ok := idx.RowLookup[key]
		if !ok {
			return res
		}
		res.Orientation = RowMatch
		for j, label := range m.Labels {
			count := m.At(row, j)
			denom := idx.ColumnSums[j]
			if count > 0 && denom > 0 {
				res.Entries = append(res.Entries, Attribution{
					Attributor:  label,
					Share:       count / denom,
					Count:       count,
					Denominator: denom,
				})
			}
		}
	}

	sort.SliceStable(res.Entries, func(i, j int) bool {
		return res.Entries[i].Share > res.Entries[j].Share
	})
	if len(res.Entries) > topN {
		res.Entries = res.Entries[:topN]
	}
	return res
}

// columnOf returns the first label whose canonical key equals key, or -1.
func columnOf(m *Matrix, key string) int {
	for j, label := range m.Labels {
		if canon.Key(label) == key {
			return j
		}
	}
	return -1
}
