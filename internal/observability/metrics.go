package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the dashboard. They are
// registered on the registerer passed to NewMetrics, so tests can use a
// private registry.
type Metrics struct {
	// QueriesTotal counts attribution queries by mode and matched orientation.
	QueriesTotal *prometheus.CounterVec

	// QueryEmptyTotal counts attribution queries that found no data.
	QueryEmptyTotal *prometheus.CounterVec

	QueryDuration prometheus.Histogram

	ReloadsTotal        prometheus.Counter
	ReloadFailuresTotal prometheus.Counter

	// DatasetRows is the row count of each loaded table.
	DatasetRows *prometheus.GaugeVec

	// IndexKeyCollisions is the number of matrix rows shadowed by a later
	// row with the same canonical key.
	IndexKeyCollisions *prometheus.GaugeVec
}

// NewMetrics creates and registers all collectors under namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		QueriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of attribution queries",
		}, []string{"mode", "orientation"}),
		QueryEmptyTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_empty_total",
			Help:      "Total number of attribution queries with no data",
		}, []string{"mode"}),
		QueryDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Duration of attribution queries in seconds",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		}),
		ReloadsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Total number of successful dataset loads",
		}),
		ReloadFailuresTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reload_failures_total",
			Help:      "Total number of failed dataset loads",
		}),
		DatasetRows: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Number of rows per loaded table",
		}, []string{"table"}),
		IndexKeyCollisions: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_key_collisions",
			Help:      "Matrix rows unreachable by name because of a duplicate canonical key",
		}, []string{"mode"}),
	}
}

// RecordQuery records one attribution query.
func (m *Metrics) RecordQuery(mode, orientation string, empty bool, durationSeconds float64) {
	m.QueriesTotal.WithLabelValues(mode, orientation).Inc()
	if empty {
		m.QueryEmptyTotal.WithLabelValues(mode).Inc()
	}
	m.QueryDuration.Observe(durationSeconds)
}

// RecordReload records a successful load and the shape of the new dataset.
// rows is keyed by table name, collisions by mode slug.
func (m *Metrics) RecordReload(rows, collisions map[string]int) {
	m.ReloadsTotal.Inc()
	for table, n := range rows {
		m.DatasetRows.WithLabelValues(table).Set(float64(n))
	}
	for mode, n := range collisions {
		m.IndexKeyCollisions.WithLabelValues(mode).Set(float64(n))
	}
}

func (m *Metrics) RecordReloadFailure() {
	m.ReloadFailuresTotal.Inc()
}
