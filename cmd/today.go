package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"moodlog/internal/application/reports"
	"moodlog/internal/presentation"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's sessions and the daily insight",
	Long: `Show the morning and evening sessions for a day together with the
derived insight line and badges.

Examples:
  moodlog today
  moodlog today --date 2026-02-14
  moodlog today --json | jq .insight`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDate(todayDate)
		if err != nil {
			return err
		}

		return withService(func(ctx context.Context, svc *reports.Service) error {
			view, err := svc.Today(ctx, cfg.UserID, date)
			if err != nil {
				return err
			}
			dto := presentation.FromToday(view)
			if jsonOut {
				return jsonFormatter().FormatToday(dto)
			}
			textRenderer().RenderToday(dto)
			return nil
		})
	},
}

func init() {
	todayCmd.Flags().StringVar(&todayDate, "date", "", "date in YYYY-MM-DD (default: today)")
	rootCmd.AddCommand(todayCmd)
}
