package engine

import (
	"fmt"
	"strings"
)

// FormatKind selects how a metric value is displayed.
type FormatKind int

const (
	FixedFourDecimals FormatKind = iota
	ScientificTwoDigits
	IntegerNoDecimals
)

// intensiveMetrics are ratio metrics whose values span many magnitudes.
var intensiveMetrics = map[string]bool{
	"WCI per capita": true,
	"WCI per GDP":    true,
}

const countPrefix = "Respondents"

// SelectDisplayFormat maps a metric label to its display format.
// Every label resolves; unknown labels get FixedFourDecimals.
func SelectDisplayFormat(metricLabel string) FormatKind {
	if intensiveMetrics[metricLabel] {
		return ScientificTwoDigits
	}
	if strings.HasPrefix(metricLabel, countPrefix) {
		return IntegerNoDecimals
	}
	return FixedFourDecimals
}

func (k FormatKind) String() string {
	switch k {
	case ScientificTwoDigits:
		return "scientific"
	case IntegerNoDecimals:
		return "integer"
	default:
		return "fixed4"
	}
}

// Spec returns the d3-format specifier used by chart hover templates.
func (k FormatKind) Spec() string {
	switch k {
	case ScientificTwoDigits:
		return ".2e"
	case IntegerNoDecimals:
		return ".0f"
	default:
		return ".4f"
	}
}

// Format renders v for display.
func (k FormatKind) Format(v float64) string {
	switch k {
	case ScientificTwoDigits:
		return fmt.Sprintf("%.2e", v)
	case IntegerNoDecimals:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.4f", v)
	}
}
