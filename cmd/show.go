package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"moodlog/internal/application/reports"
	"moodlog/internal/presentation"
)

var showCmd = &cobra.Command{
	Use:   "show <entry-id>",
	Short: "Show a single session",
	Long: `Show one recorded session by entry id. Entry ids are the date and
slot joined with an underscore.

Examples:
  moodlog show 2026-02-14_morning
  moodlog show 2026-02-14_evening --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *reports.Service) error {
			session, err := svc.Get(ctx, cfg.UserID, args[0])
			if err != nil {
				return err
			}
			dto := presentation.FromDomainSession(session)
			if jsonOut {
				return jsonFormatter().FormatSession(dto)
			}
			textRenderer().RenderSession(dto)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
