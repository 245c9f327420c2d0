package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"moodlog/internal/application/reports"
	"moodlog/internal/journal/domain"
	"moodlog/internal/presentation"
)

var (
	listFrom string
	listTo   string
	listDays int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions",
	Long: `List recorded sessions in a date range, ordered by date and slot
(morning before evening).

Examples:
  moodlog list                          # last 7 days
  moodlog list --days 30
  moodlog list --from 2026-02-01 --to 2026-02-14
  moodlog list --json | jq '.[].entry_id'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := resolveRange()
		if err != nil {
			return err
		}

		return withService(func(ctx context.Context, svc *reports.Service) error {
			sessions, err := svc.List(ctx, cfg.UserID, start, end)
			if err != nil {
				return err
			}
			dtos := presentation.FromDomainSessions(sessions)
			if jsonOut {
				return jsonFormatter().FormatSessions(dtos)
			}
			textRenderer().RenderSessions(dtos)
			return nil
		})
	},
}

func resolveRange() (domain.Date, domain.Date, error) {
	if (listFrom == "") != (listTo == "") {
		return "", "", fmt.Errorf("--from and --to must be given together")
	}
	if listFrom != "" {
		start, err := domain.ParseDate(listFrom)
		if err != nil {
			return "", "", err
		}
		end, err := domain.ParseDate(listTo)
		if err != nil {
			return "", "", err
		}
		if end.Before(start) {
			return "", "", fmt.Errorf("--to %s is before --from %s", end, start)
		}
		return start, end, nil
	}

	days := listDays
	if days <= 0 {
		days = 7
	}
	end := domain.Today(location())
	return end.AddDays(-(days - 1)), end, nil
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "range start in YYYY-MM-DD")
	listCmd.Flags().StringVar(&listTo, "to", "", "range end in YYYY-MM-DD")
	listCmd.Flags().IntVar(&listDays, "days", 7, "trailing window size when --from/--to are absent")
	rootCmd.AddCommand(listCmd)
}
