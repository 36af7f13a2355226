// Package report renders attribution results and dataset summaries as
// aligned terminal tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"wcidash/internal/engine"
)

var (
	titleStyle  = color.New(color.Bold, color.FgHiWhite)
	headerStyle = color.New(color.Bold, color.FgHiCyan)
	emptyStyle  = color.New(color.FgHiYellow)
	warnStyle   = color.New(color.FgHiRed)
)

const barWidth = 20

// WriteAttributions prints the ranked attributors of accused. Counts are
// always whole numbers; the share column uses two decimals.
func WriteAttributions(w io.Writer, accused string, mode engine.Mode, res engine.Result, suggestions []string) error {
	if _, err := titleStyle.Fprintf(w, "Who attributes %s? (%s)\n", accused, mode); err != nil {
		return err
	}

	if res.Empty() {
		if _, err := emptyStyle.Fprintln(w, "No attribution data"); err != nil {
			return err
		}
		if len(suggestions) > 0 {
			_, err := fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(suggestions, ", "))
			return err
		}
		return nil
	}

	header := []string{"#", "Attributor", "Share", "Count", ""}
	rows := make([][]string, 0, len(res.Entries))
	for i, e := range res.Entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			e.Attributor,
			fmt.Sprintf("%.2f%%", e.Share*100),
			fmt.Sprintf("%.0f/%.0f", e.Count, e.Denominator),
			bar(e.Share),
		})
	}
	return writeTable(w, header, rows)
}

// ModeSummary is one line of WriteSummary.
type ModeSummary struct {
	Mode          engine.Mode
	Rows          int
	Columns       int
	KeyCollisions []engine.KeyCollision
	Keys          []string
}

// WriteSummary prints matrix shapes and every shadowed row key.
func WriteSummary(w io.Writer, countries int, modes []ModeSummary) error {
	if _, err := titleStyle.Fprintf(w, "%d countries in the metrics table\n", countries); err != nil {
		return err
	}

	header := []string{"Mode", "Rows", "Columns", "Collisions"}
	rows := make([][]string, 0, len(modes))
	for _, m := range modes {
		rows = append(rows, []string{string(m.Mode), fmt.Sprint(m.Rows), fmt.Sprint(m.Columns), fmt.Sprint(len(m.KeyCollisions))})
	}
	if err := writeTable(w, header, rows); err != nil {
		return err
	}

	for _, m := range modes {
		for _, c := range m.KeyCollisions {
			if _, err := warnStyle.Fprintf(w, "%s: %q shadows %q\n", m.Mode, m.Keys[c.Winner], m.Keys[c.Overwritten]); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	if _, err := headerStyle.Fprintln(w, formatRow(header, widths)); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, formatRow(r, widths)); err != nil {
			return err
		}
	}
	return nil
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = runewidth.FillRight(cell, widths[i])
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}

func bar(share float64) string {
	n := int(share*barWidth + 0.5)
	if n < 0 {
		n = 0
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("█", n)
}
