package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"moodlog/internal/application/reports"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete a session",
	Long: `Delete one recorded session by entry id.

Examples:
  moodlog delete 2026-02-14_morning`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *reports.Service) error {
			if err := svc.Delete(ctx, cfg.UserID, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
