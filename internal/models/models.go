package models

import "time"

type MetricInfo struct {
	Label  string `json:"label"`
	Column string `json:"column"`
	Format string `json:"format"`
	Spec   string `json:"spec"`
}

// MapData feeds the choropleth: one point per country plus the colour range.
type MapData struct {
	Metric string     `json:"metric"`
	Format string     `json:"format"`
	Spec   string     `json:"spec"`
	Min    float64    `json:"min"`
	Max    float64    `json:"max"`
	Mean   float64    `json:"mean"`
	Points []MapPoint `json:"points"`
}

type MapPoint struct {
	Country string  `json:"country"`
	ISO3    string  `json:"iso3"`
	Value   float64 `json:"value"`
}

type CountryDetail struct {
	Country string  `json:"country"`
	ISO3    string  `json:"iso3"`
	Metric  string  `json:"metric"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

type CountryList struct {
	Data   []string `json:"data"`
	Total  int      `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// AttributionChart is the payload behind "who attributes X".
// Items are ordered by share, highest first.
type AttributionChart struct {
	Title       string            `json:"title"`
	Mode        string            `json:"mode"`
	Accused     string            `json:"accused"`
	Orientation string            `json:"orientation"`
	Empty       bool              `json:"empty"`
	Items       []AttributionItem `json:"items"`
	Suggestions []string          `json:"suggestions,omitempty"`
}

type AttributionItem struct {
	Attributor  string  `json:"attributor"`
	Share       float64 `json:"share"`
	SharePct    float64 `json:"share_pct"`
	Count       float64 `json:"count"`
	Denominator float64 `json:"denominator"`
}

type ModeStatus struct {
	Rows          int `json:"rows"`
	Columns       int `json:"columns"`
	KeyCollisions int `json:"key_collisions"`
}

type ReloadStatus struct {
	LoadedAt  time.Time             `json:"loaded_at"`
	Countries int                   `json:"countries"`
	Modes     map[string]ModeStatus `json:"modes"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
