package engine

import (
	"gonum.org/v1/gonum/mat"

	"wcidash/internal/canon"
)

// KeyCollision records a row whose canonical key was taken over by a later row.
type KeyCollision struct {
	Key         string
	Overwritten int
	Winner      int
}

// MatrixIndex holds the lookups derived from one Matrix snapshot.
// It is never updated in place; a changed matrix gets a new index.
type MatrixIndex struct {
	// canonical row key -> row, last write wins
	RowLookup map[string]int

	// label -> column sum; ColumnSums holds the same values by position
	ColumnTotals map[string]float64
	ColumnSums   []float64

	RowTotals []float64

	// Rows unreachable through RowLookup because a later row shares their key
	Collisions []KeyCollision
}

// CollisionCount is the number of rows shadowed in RowLookup.
func (ix *MatrixIndex) CollisionCount() int {
	return len(ix.Collisions)
}

// BuildIndex computes the row lookup plus row and column totals of m.
func BuildIndex(m *Matrix) *MatrixIndex {
	rows, cols := m.NumRows(), m.NumCols()

	ix := &MatrixIndex{
		RowLookup:    make(map[string]int, rows),
		ColumnTotals: make(map[string]float64, cols),
		ColumnSums:   make([]float64, cols),
		RowTotals:    make([]float64, rows),
	}

	for i, k := range m.Keys {
		key := canon.Key(k)
		if prev, ok := ix.RowLookup[key]; ok {
			ix.Collisions = append(ix.Collisions, KeyCollision{Key: key, Overwritten: prev, Winner: i})
		}
		ix.RowLookup[key] = i
	}

	// gonum refuses zero-sized matrices; the zeroed totals are already right.
	if rows > 0 && cols > 0 {
		data := make([]float64, rows*cols)
		for j, col := range m.Values {
			for i, v := range col {
				data[i*cols+j] = v
			}
		}
		dense := mat.NewDense(rows, cols, data)

		for i := 0; i < rows; i++ {
			ix.RowTotals[i] = mat.Sum(dense.RowView(i))
		}
		for j := 0; j < cols; j++ {
			ix.ColumnSums[j] = mat.Sum(dense.ColView(j))
		}
	}

	for j, label := range m.Labels {
		ix.ColumnTotals[label] = ix.ColumnSums[j]
	}

	return ix
}
