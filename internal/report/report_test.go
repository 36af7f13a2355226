package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wcidash/internal/engine"
)

func init() {
	color.NoColor = true
}

func TestWriteAttributions(t *testing.T) {
	// 1. Setup
	res := engine.Result{
		Orientation: engine.ColumnMatch,
		Entries: []engine.Attribution{
			{Attributor: "Gamma", Share: 1, Count: 10, Denominator: 10},
			{Attributor: "Côte d'Ivoire", Share: 0.25, Count: 5, Denominator: 20},
		},
	}
	var buf bytes.Buffer

	// 2. Run
	require.NoError(t, WriteAttributions(&buf, "Ruritania", engine.ByNationality, res, nil))

	// 3. Assertions
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Who attributes Ruritania? (By nationality)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "#  Attributor"))
	assert.Contains(t, lines[2], "100.00%")
	assert.Contains(t, lines[2], "10/10")
	assert.Contains(t, lines[3], "25.00%")
	assert.Contains(t, lines[3], "5/20")

	// columns line up despite the non-ASCII name
	assert.Equal(t, strings.Index(lines[2], "100.00%")+len("ô")-1, strings.Index(lines[3], "25.00%"))
	assert.Equal(t, strings.Repeat("█", 20), lines[2][strings.LastIndex(lines[2], "  ")+2:])
}

func TestWriteAttributions_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteAttributions(&buf, "Atlantis", engine.ByResidence, engine.Result{}, []string{"Austria", "Australia"}))

	assert.Equal(t, "Who attributes Atlantis? (By residence)\nNo attribution data\nDid you mean: Austria, Australia?\n", buf.String())
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer

	err := WriteSummary(&buf, 3, []ModeSummary{
		{Mode: engine.ByNationality, Rows: 3, Columns: 2},
		{
			Mode: engine.ByResidence, Rows: 2, Columns: 3,
			Keys:          []string{"Ruritania", "RURITANIA."},
			KeyCollisions: []engine.KeyCollision{{Key: "ruritania", Overwritten: 0, Winner: 1}},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "3 countries in the metrics table")
	assert.Contains(t, out, "By residence    2     3        1")
	assert.Contains(t, out, `By residence: "RURITANIA." shadows "Ruritania"`)
}
