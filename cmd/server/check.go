package main

import (
	"github.com/spf13/cobra"

	"wcidash/internal/engine"
	"wcidash/internal/report"
)

func newCheckCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load every source and report table shapes and key collisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := loadOnce(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			summaries := make([]report.ModeSummary, 0, len(engine.Modes))
			for _, mode := range engine.Modes {
				md, ok := d.Modes[mode]
				if !ok {
					continue
				}
				summaries = append(summaries, report.ModeSummary{
					Mode:          mode,
					Rows:          md.Matrix.NumRows(),
					Columns:       md.Matrix.NumCols(),
					KeyCollisions: md.Index.Collisions,
					Keys:          md.Matrix.Keys,
				})
			}
			return report.WriteSummary(cmd.OutOrStdout(), len(d.Metrics.Rows), summaries)
		},
	}
}
