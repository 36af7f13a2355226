package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "wci")

	assert.NotNil(t, m.QueriesTotal)
	assert.NotNil(t, m.QueryEmptyTotal)
	assert.NotNil(t, m.QueryDuration)
	assert.NotNil(t, m.ReloadsTotal)
	assert.NotNil(t, m.ReloadFailuresTotal)
	assert.NotNil(t, m.DatasetRows)
	assert.NotNil(t, m.IndexKeyCollisions)

	// a second set on the same registry is a duplicate registration
	assert.Panics(t, func() { NewMetrics(reg, "wci") })
}

func TestRecordQuery(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry(), "wci")

	m.RecordQuery("nationality", "column", false, 0.001)
	m.RecordQuery("nationality", "none", true, 0.001)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues("nationality", "column")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues("nationality", "none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueryEmptyTotal.WithLabelValues("nationality")))
}

func TestRecordReload(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "wci")

	m.RecordReload(map[string]int{"metrics": 190}, map[string]int{"residence": 2})
	m.RecordReloadFailure()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReloadsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReloadFailuresTotal))
	assert.Equal(t, 190.0, testutil.ToFloat64(m.DatasetRows.WithLabelValues("metrics")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.IndexKeyCollisions.WithLabelValues("residence")))

	n, err := testutil.GatherAndCount(reg, "wci_reloads_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
