package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"moodlog/internal/application/reports"
	"moodlog/internal/presentation"
	"moodlog/internal/report"
)

var (
	reportMode string
	reportDate string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the statistics report and coach recommendation",
	Long: `Build the gated statistics report for the trailing window ending at
a date, plus the coach recommendation derived from it. When the window has
too few records the report still shows counts, but distributions and the
coach are withheld.

Examples:
  moodlog report                       # last 7 days ending today
  moodlog report --mode 30d
  moodlog report --date 2026-02-14 --json | jq .coach`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := report.Mode(reportMode)
		asOf, err := resolveDate(reportDate)
		if err != nil {
			return err
		}

		return withService(func(ctx context.Context, svc *reports.Service) error {
			rep, err := svc.Report(ctx, cfg.UserID, mode, asOf)
			if err != nil {
				return err
			}
			dto := presentation.FromReport(rep)
			if jsonOut {
				return jsonFormatter().FormatReport(dto)
			}
			textRenderer().RenderReport(dto)
			return nil
		})
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportMode, "mode", string(report.Mode7d), "report window: 7d or 30d")
	reportCmd.Flags().StringVar(&reportDate, "date", "", "window end date in YYYY-MM-DD (default: today)")
	rootCmd.AddCommand(reportCmd)
}
