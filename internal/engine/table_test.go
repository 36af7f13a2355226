package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wcidash/internal/tabular"
)

func TestNewMetricsTable(t *testing.T) {
	mt, err := NewMetricsTable(metricsCSVTable())
	require.NoError(t, err)
	require.Len(t, mt.Rows, 3)

	r, ok := mt.Lookup("ruritania")
	require.True(t, ok)
	assert.Equal(t, "RUR", r.ISO3)
	assert.Equal(t, 12.3456, r.WCI)
	assert.Equal(t, 14.0, r.RespondentsNat)

	f, ok := mt.Lookup("Freedonia")
	require.True(t, ok)
	assert.Equal(t, 0.0, f.RespondentsRes, "unparseable metric coerced to zero")

	z, ok := mt.Lookup(" zem ")
	require.True(t, ok, "ISO3 fallback")
	assert.Equal(t, "Zembla", z.Country)

	_, ok = mt.Lookup("Nonexistentland")
	assert.False(t, ok)

	assert.Equal(t, []string{"Ruritania", "Freedonia", "Zembla"}, mt.Countries())
}

func TestNewMetricsTable_CleansNames(t *testing.T) {
	tbl := metricsCSVTable()
	tbl.Rows[0][0] = "\u200b Ruritania\u00a0"
	tbl.Rows[0][1] = " RUR "

	mt, err := NewMetricsTable(tbl)
	require.NoError(t, err)
	assert.Equal(t, "Ruritania", mt.Rows[0].Country)
	assert.Equal(t, "RUR", mt.Rows[0].ISO3)
}

func TestNewMetricsTable_MissingColumns(t *testing.T) {
	tbl := &tabular.Table{
		Name:   "df_wci",
		Header: []string{"Country", "ISO3", "WCI", "respondents_nat"},
	}

	_, err := NewMetricsTable(tbl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"WCI_per_capita", "WCI_per_GDP", "respondents_res"}, verr.Missing)
	assert.Contains(t, err.Error(), "df_wci")
	assert.Contains(t, err.Error(), "WCI_per_GDP")
}

func TestNewMetricsTable_Duplicates(t *testing.T) {
	tbl := metricsCSVTable()
	tbl.Rows = append(tbl.Rows,
		[]string{"RURITANIA.", "RU2", "1", "1", "1", "1", "1"},
		[]string{"Elbonia", "FRE", "1", "1", "1", "1", "1"},
	)

	_, err := NewMetricsTable(tbl)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"RURITANIA.", "FRE"}, verr.Duplicates)
}

func TestMetricByLabel(t *testing.T) {
	m, err := MetricByLabel("WCI per GDP")
	require.NoError(t, err)
	assert.Equal(t, ColWCIPerGDP, m.Column)

	_, err = MetricByLabel("Bogus")
	assert.True(t, errors.Is(err, ErrUnknownMetric))

	for _, m := range Catalog {
		_, ok := CountryMetrics{}.Value(m.Column)
		assert.True(t, ok, m.Column)
	}
}
