package engine

import (
	"strconv"

	"wcidash/internal/tabular"
)

// newMatrix builds a Matrix from row-major values.
func newMatrix(keys, labels []string, rows [][]float64) *Matrix {
	m := &Matrix{
		Name:      "test",
		KeyColumn: ColCountry,
		Keys:      keys,
		Labels:    labels,
		Values:    make([][]float64, len(labels)),
	}
	for j := range labels {
		m.Values[j] = make([]float64, len(keys))
		for i := range keys {
			m.Values[j][i] = rows[i][j]
		}
	}
	return m
}

// ruritaniaMatrix: rows are attributors, the "Ruritania" column is accused.
// Row totals are Alpha 20, Beta 5, Gamma 10.
func ruritaniaMatrix() *Matrix {
	return newMatrix(
		[]string{"Alpha", "Beta", "Gamma"},
		[]string{"Ruritania", "Zembla"},
		[][]float64{
			{5, 15},
			{0, 5},
			{10, 0},
		},
	)
}

// accusedRowsMatrix is the transposed orientation: rows are accused,
// columns are attributors. Column totals are Alpha 20, Beta 5, Gamma 10.
func accusedRowsMatrix() *Matrix {
	return newMatrix(
		[]string{"Ruritania", "Freedonia"},
		[]string{"Alpha", "Beta", "Gamma"},
		[][]float64{
			{5, 0, 10},
			{15, 5, 0},
		},
	)
}

func metricsCSVTable() *tabular.Table {
	return &tabular.Table{
		Name:   "df_wci",
		Header: append([]string(nil), RequiredColumns...),
		Rows: [][]string{
			{"Ruritania", "RUR", "12.3456", "0.000123", "0.0000456", "14", "9"},
			{"Freedonia", "FRE", "3.5", "0.00002", "0.000001", "7", "x"},
			{"Zembla", "ZEM", "0", "0", "0", "0", "0"},
		},
	}
}

func matrixTable(name string, m *Matrix) *tabular.Table {
	t := &tabular.Table{Name: name, Header: append([]string{ColCountry}, m.Labels...)}
	for i, k := range m.Keys {
		row := []string{k}
		for j := range m.Labels {
			row = append(row, strconv.FormatFloat(m.At(i, j), 'g', -1, 64))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func testDataset() (*Dataset, error) {
	return NewDataset(metricsCSVTable(), map[Mode]*tabular.Table{
		ByNationality: matrixTable("nat", ruritaniaMatrix()),
		ByResidence:   matrixTable("res", accusedRowsMatrix()),
	})
}
