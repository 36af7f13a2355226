package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectDisplayFormat(t *testing.T) {
	tests := []struct {
		label string
		want  FormatKind
	}{
		{"WCI per capita", ScientificTwoDigits},
		{"WCI per GDP", ScientificTwoDigits},
		{"Respondents (by nationality)", IntegerNoDecimals},
		{"Respondents (by residence)", IntegerNoDecimals},
		{"WCI", FixedFourDecimals},
		{"", FixedFourDecimals},
		{"wci per capita", FixedFourDecimals},
		{"Something else entirely", FixedFourDecimals},
	}
	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			assert.Equal(t, tc.want, SelectDisplayFormat(tc.label))
		})
	}
}

func TestFormatKind(t *testing.T) {
	assert.Equal(t, ".2e", ScientificTwoDigits.Spec())
	assert.Equal(t, ".0f", IntegerNoDecimals.Spec())
	assert.Equal(t, ".4f", FixedFourDecimals.Spec())

	assert.Equal(t, "1.23e-04", ScientificTwoDigits.Format(0.000123))
	assert.Equal(t, "14", IntegerNoDecimals.Format(14.2))
	assert.Equal(t, "12.3456", FixedFourDecimals.Format(12.3456))

	assert.Equal(t, "scientific", ScientificTwoDigits.String())
	assert.Equal(t, "integer", IntegerNoDecimals.String())
	assert.Equal(t, "fixed4", FixedFourDecimals.String())
}

func FuzzSelectDisplayFormat(f *testing.F) {
	f.Add("WCI")
	f.Add("Respondents")
	f.Add("\xff")
	f.Fuzz(func(t *testing.T, label string) {
		switch SelectDisplayFormat(label) {
		case ScientificTwoDigits, IntegerNoDecimals, FixedFourDecimals:
		default:
			t.Errorf("SelectDisplayFormat(%q) returned an unknown kind", label)
		}
	})
}
