package main

import (
	"github.com/spf13/cobra"

	"wcidash/internal/canon"
	"wcidash/internal/engine"
	"wcidash/internal/report"
)

func newQueryCmd(configPath *string) *cobra.Command {
	var (
		modeName string
		top      int
	)

	cmd := &cobra.Command{
		Use:   "query <country>",
		Short: "Print who attributes a country",
		Example: `  wci query Ruritania
  wci query "Korea (Republic of)" --mode residence --top 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := engine.ParseMode(modeName)
			if err != nil {
				return err
			}

			cfg, d, err := loadOnce(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			if top <= 0 {
				top = cfg.Query.DefaultTopN
			}

			res, err := d.Resolve(mode, args[0], top)
			if err != nil {
				return err
			}
			var suggestions []string
			if res.Empty() {
				suggestions = d.Suggest(args[0], cfg.Query.Suggestions)
			}
			return report.WriteAttributions(cmd.OutOrStdout(), canon.Clean(args[0]), mode, res, suggestions)
		},
	}
	cmd.Flags().StringVarP(&modeName, "mode", "m", engine.ByNationality.Slug(), "Attribution mode (nationality or residence)")
	cmd.Flags().IntVarP(&top, "top", "n", 0, "Number of attributors to show (default from config)")
	return cmd
}
