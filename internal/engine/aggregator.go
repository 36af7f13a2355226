package engine

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"wcidash/internal/models"
)

// flatRangeEpsilon widens a degenerate colour range so min != max.
const flatRangeEpsilon = 1e-9

// MapView builds the choropleth payload for one catalog metric.
func (mt *MetricsTable) MapView(metricLabel string) (*models.MapData, error) {
	metric, err := MetricByLabel(metricLabel)
	if err != nil {
		return nil, err
	}
	kind := SelectDisplayFormat(metric.Label)

	data := &models.MapData{
		Metric: metric.Label,
		Format: kind.String(),
		Spec:   kind.Spec(),
		Points: make([]models.MapPoint, 0, len(mt.Rows)),
	}

	vals := make([]float64, len(mt.Rows))
	for i, r := range mt.Rows {
		v, _ := r.Value(metric.Column)
		vals[i] = v
		data.Points = append(data.Points, models.MapPoint{Country: r.Country, ISO3: r.ISO3, Value: v})
	}

	if len(vals) > 0 {
		data.Min = floats.Min(vals)
		data.Max = floats.Max(vals)
		data.Mean = stat.Mean(vals, nil)
	}
	if data.Min == data.Max {
		data.Max = data.Min + flatRangeEpsilon
	}

	return data, nil
}

// Ranking returns the limit countries with the highest value of a metric.
// Zero values are left out.
func (mt *MetricsTable) Ranking(metricLabel string, limit int) ([]models.MapPoint, error) {
	metric, err := MetricByLabel(metricLabel)
	if err != nil {
		return nil, err
	}

	out := make([]models.MapPoint, 0)
	for _, r := range mt.Rows {
		if v, _ := r.Value(metric.Column); v > 0 {
			out = append(out, models.MapPoint{Country: r.Country, ISO3: r.ISO3, Value: v})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
