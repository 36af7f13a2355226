package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapView(t *testing.T) {
	// 1. Setup
	mt, err := NewMetricsTable(metricsCSVTable())
	require.NoError(t, err)

	// 2. Run
	data, err := mt.MapView("WCI")
	require.NoError(t, err)

	// 3. Assertions
	assert.Equal(t, "WCI", data.Metric)
	assert.Equal(t, ".4f", data.Spec)
	require.Len(t, data.Points, 3)
	assert.Equal(t, "RUR", data.Points[0].ISO3)
	assert.Equal(t, 12.3456, data.Points[0].Value)
	assert.Equal(t, 0.0, data.Min)
	assert.Equal(t, 12.3456, data.Max)
	assert.InDelta(t, (12.3456+3.5)/3, data.Mean, 1e-12)
}

func TestMapView_FlatRangeIsWidened(t *testing.T) {
	tbl := metricsCSVTable()
	for _, r := range tbl.Rows {
		r[2] = "4"
	}
	mt, err := NewMetricsTable(tbl)
	require.NoError(t, err)

	data, err := mt.MapView("WCI")
	require.NoError(t, err)
	assert.Equal(t, 4.0, data.Min)
	assert.Equal(t, 4.0+1e-9, data.Max)
}

func TestMapView_UnknownMetric(t *testing.T) {
	mt, err := NewMetricsTable(metricsCSVTable())
	require.NoError(t, err)

	_, err = mt.MapView("WCI_per_capita")
	assert.True(t, errors.Is(err, ErrUnknownMetric))
}

func TestRanking(t *testing.T) {
	mt, err := NewMetricsTable(metricsCSVTable())
	require.NoError(t, err)

	top, err := mt.Ranking("Respondents (by nationality)", 10)
	require.NoError(t, err)

	// Zembla has zero respondents and is left out
	require.Len(t, top, 2)
	assert.Equal(t, "Ruritania", top[0].Country)
	assert.Equal(t, "Freedonia", top[1].Country)

	one, err := mt.Ranking("WCI", 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Ruritania", one[0].Country)
}
