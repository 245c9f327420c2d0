package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"moodlog/internal/application/reports"
	"moodlog/internal/flags"
	"moodlog/internal/journal/domain"
	"moodlog/internal/presentation"
	"moodlog/internal/pubsub"
	"moodlog/internal/report"
	"moodlog/internal/watcher"
)

var watchMode string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the report whenever the database changes",
	Long: `Render the report for the trailing window ending today, then keep
watching the database file and re-render on every external write. Useful
alongside a second terminal or a sync tool writing into the same database.

Requires the db-watch feature flag (enabled by default). Stop with Ctrl-C.

Examples:
  moodlog watch
  moodlog watch --mode 30d`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := report.Mode(watchMode)
		if !mode.IsValid() {
			return fmt.Errorf("invalid report mode %q", watchMode)
		}

		return withService(func(ctx context.Context, svc *reports.Service) error {
			registry := flags.New(cfg.Flags)
			if !registry.Enabled(flags.FlagDBWatch) {
				return fmt.Errorf("the db-watch feature flag is disabled")
			}

			ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer cancel()

			w, err := watcher.New(watcher.Config{
				DBPath:      cfg.DBPath(),
				DebounceDur: time.Duration(cfg.Report.WatchDebounceMS) * time.Millisecond,
			})
			if err != nil {
				return err
			}
			changes, err := w.Start()
			if err != nil {
				return err
			}
			defer func() { _ = w.Stop() }()

			// Renders follow InvalidatedEvent, which the service only
			// publishes after the revision bump and cache flush, so a
			// re-render never sees the pre-write snapshot.
			events := svc.Subscribe(ctx)
			go svc.WatchInvalidations(ctx, changes)

			if err := renderWatchReport(ctx, svc, mode); err != nil {
				return err
			}

			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-events:
					if !ok {
						return nil
					}
					if ev.Type != pubsub.InvalidatedEvent {
						continue
					}
					if err := renderWatchReport(ctx, svc, mode); err != nil {
						return err
					}
				}
			}
		})
	},
}

func renderWatchReport(ctx context.Context, svc *reports.Service, mode report.Mode) error {
	rep, err := svc.Report(ctx, cfg.UserID, mode, domain.Today(location()))
	if err != nil {
		return err
	}
	fmt.Printf("\n--- %s ---\n", time.Now().Format("15:04:05"))
	textRenderer().RenderReport(presentation.FromReport(rep))
	return nil
}

func init() {
	watchCmd.Flags().StringVar(&watchMode, "mode", string(report.Mode7d), "report window: 7d or 30d")
	rootCmd.AddCommand(watchCmd)
}
