package engine

import (
	"fmt"
	"strings"

	"wcidash/internal/canon"
	"wcidash/internal/tabular"
)

// Column names of the country metrics table.
const (
	ColCountry        = "Country"
	ColISO3           = "ISO3"
	ColWCI            = "WCI"
	ColWCIPerCapita   = "WCI_per_capita"
	ColWCIPerGDP      = "WCI_per_GDP"
	ColRespondentsNat = "respondents_nat"
	ColRespondentsRes = "respondents_res"
)

// RequiredColumns must all be present in the metrics table.
var RequiredColumns = []string{
	ColCountry,
	ColISO3,
	ColWCI,
	ColWCIPerCapita,
	ColWCIPerGDP,
	ColRespondentsNat,
	ColRespondentsRes,
}

// Metric is a selectable map metric: a display label and its column.
type Metric struct {
	Label  string
	Column string
}

// Catalog lists the map metrics in menu order.
var Catalog = []Metric{
	{Label: "WCI", Column: ColWCI},
	{Label: "WCI per capita", Column: ColWCIPerCapita},
	{Label: "WCI per GDP", Column: ColWCIPerGDP},
	{Label: "Respondents (by nationality)", Column: ColRespondentsNat},
	{Label: "Respondents (by residence)", Column: ColRespondentsRes},
}

// MetricByLabel finds a catalog entry by its exact display label.
func MetricByLabel(label string) (Metric, error) {
	for _, m := range Catalog {
		if m.Label == label {
			return m, nil
		}
	}
	return Metric{}, fmt.Errorf("%w: %q", ErrUnknownMetric, label)
}

type CountryMetrics struct {
	Country        string
	ISO3           string
	WCI            float64
	WCIPerCapita   float64
	WCIPerGDP      float64
	RespondentsNat float64
	RespondentsRes float64
}

// Value returns the metric stored under column.
func (c CountryMetrics) Value(column string) (float64, bool) {
	switch column {
	case ColWCI:
		return c.WCI, true
	case ColWCIPerCapita:
		return c.WCIPerCapita, true
	case ColWCIPerGDP:
		return c.WCIPerGDP, true
	case ColRespondentsNat:
		return c.RespondentsNat, true
	case ColRespondentsRes:
		return c.RespondentsRes, true
	default:
		return 0, false
	}
}

// MetricsTable is the validated per-country metrics table.
type MetricsTable struct {
	Rows  []CountryMetrics
	byKey map[string]int
}

// RequireColumns reports every column of cols absent from t's header.
func RequireColumns(t *tabular.Table, cols ...string) error {
	var missing []string
	for _, c := range cols {
		if t.Column(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Table: t.Name, Missing: missing}
	}
	return nil
}

// NewMetricsTable validates t and converts it to typed rows. Country names
// are cleaned, ISO3 codes trimmed, and metric cells parsed leniently.
// Duplicate countries (by canonical key) or ISO3 codes reject the table.
func NewMetricsTable(t *tabular.Table) (*MetricsTable, error) {
	t = withCleanHeader(t)
	if err := RequireColumns(t, RequiredColumns...); err != nil {
		return nil, err
	}

	col := make(map[string]int, len(RequiredColumns))
	for _, c := range RequiredColumns {
		col[c] = t.Column(c)
	}

	mt := &MetricsTable{
		Rows:  make([]CountryMetrics, 0, len(t.Rows)),
		byKey: make(map[string]int, len(t.Rows)),
	}
	seenISO := make(map[string]bool, len(t.Rows))
	var dups []string

	for i := range t.Rows {
		row := CountryMetrics{
			Country:        canon.Clean(t.Cell(i, col[ColCountry])),
			ISO3:           canon.Clean(t.Cell(i, col[ColISO3])),
			WCI:            ParseLenient(t.Cell(i, col[ColWCI])),
			WCIPerCapita:   ParseLenient(t.Cell(i, col[ColWCIPerCapita])),
			WCIPerGDP:      ParseLenient(t.Cell(i, col[ColWCIPerGDP])),
			RespondentsNat: ParseLenient(t.Cell(i, col[ColRespondentsNat])),
			RespondentsRes: ParseLenient(t.Cell(i, col[ColRespondentsRes])),
		}

		key := canon.Key(row.Country)
		if _, ok := mt.byKey[key]; ok {
			dups = append(dups, row.Country)
		}
		if seenISO[row.ISO3] {
			dups = append(dups, row.ISO3)
		}
		seenISO[row.ISO3] = true
		mt.byKey[key] = len(mt.Rows)
		mt.Rows = append(mt.Rows, row)
	}

	if len(dups) > 0 {
		return nil, &ValidationError{Table: t.Name, Duplicates: dups}
	}
	return mt, nil
}

// Lookup finds a country by canonical name, then by ISO3 code.
func (mt *MetricsTable) Lookup(country string) (CountryMetrics, bool) {
	if i, ok := mt.byKey[canon.Key(country)]; ok {
		return mt.Rows[i], true
	}
	code := canon.Clean(country)
	for _, r := range mt.Rows {
		if r.ISO3 != "" && strings.EqualFold(r.ISO3, code) {
			return r, true
		}
	}
	return CountryMetrics{}, false
}

// Countries returns the display names in table order.
func (mt *MetricsTable) Countries() []string {
	out := make([]string, len(mt.Rows))
	for i, r := range mt.Rows {
		out[i] = r.Country
	}
	return out
}
