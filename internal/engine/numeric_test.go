package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wcidash/internal/tabular"
)

func TestParseLenient(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{" 7 ", 7},
		{"-3", -3},
		{"1e3", 1000},
		{"", 0},
		{"   ", 0},
		{"n/a", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1e999", 0},
		{"0x1p3", 0},
		{"-0X1P3", 0},
		{"+0x10", 0},
		{"0.5", 0.5},
		{"1,000", 0},
		{"12abc", 0},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLenient(tc.in))
		})
	}
}

func TestToNumeric(t *testing.T) {
	in := &tabular.Table{
		Name:   "acc",
		Header: []string{"Alpha", "Country", "Beta"},
		Rows: [][]string{
			{"1", "Ruritania", "x"},
			{"", "Freedonia"},
		},
	}

	m, err := ToNumeric(in, "Country")
	require.NoError(t, err)

	assert.Equal(t, "acc", m.Name)
	assert.Equal(t, []string{"Ruritania", "Freedonia"}, m.Keys)
	assert.Equal(t, []string{"Alpha", "Beta"}, m.Labels)
	assert.Equal(t, [][]float64{{1, 0}, {0, 0}}, m.Values)

	// input untouched
	assert.Equal(t, []string{"1", "Ruritania", "x"}, in.Rows[0])
	assert.Len(t, in.Rows[1], 2)
}

func TestToNumeric_MissingKey(t *testing.T) {
	in := &tabular.Table{Name: "acc", Header: []string{"Nation", "A"}}

	_, err := ToNumeric(in, "Country")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Country"}, verr.Missing)
}
