package api

import (
	"fmt"

	"wcidash/internal/engine"
	"wcidash/internal/models"
)

func newAttributionChart(mode engine.Mode, accused string, res engine.Result) models.AttributionChart {
	chart := models.AttributionChart{
		Title:       fmt.Sprintf("Who attributes %s? (%s)", accused, mode),
		Mode:        string(mode),
		Accused:     accused,
		Orientation: res.Orientation.String(),
		Empty:       res.Empty(),
		Items:       make([]models.AttributionItem, 0, len(res.Entries)),
	}
	for _, e := range res.Entries {
		chart.Items = append(chart.Items, models.AttributionItem{
			Attributor:  e.Attributor,
			Share:       e.Share,
			SharePct:    e.Share * 100,
			Count:       e.Count,
			Denominator: e.Denominator,
		})
	}
	return chart
}
