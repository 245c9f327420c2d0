package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"moodlog/internal/application/reports"
	"moodlog/internal/journal/domain"
	"moodlog/internal/presentation"
)

var (
	addDate   string
	addMood   string
	addEnergy int
	addTopics []string
	addNote   string
)

var addCmd = &cobra.Command{
	Use:   "add <morning|evening>",
	Short: "Record a mood/energy session",
	Long: `Record a mood/energy session for one slot of a day. Recording the
same slot twice replaces the earlier session.

Moods (low to high):
  very_bad, sad, anxious, angry, calm, content, good, very_good

Examples:
  moodlog add morning --mood calm --energy 3
  moodlog add evening --mood good --energy 4 --topic work --topic exercise
  moodlog add morning --date 2026-02-14 --mood anxious --energy 2 --note "slept badly"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot := domain.Slot(strings.ToLower(args[0]))
		if !slot.IsValid() {
			return fmt.Errorf("slot must be %q or %q, got %q",
				domain.SlotMorning, domain.SlotEvening, args[0])
		}

		mood := domain.Mood(strings.ToLower(addMood))
		if !mood.IsValid() {
			return fmt.Errorf("unknown mood %q", addMood)
		}

		if len(addTopics) > domain.MaxTopicsPerEntry {
			return fmt.Errorf("at most %d topics per entry, got %d",
				domain.MaxTopicsPerEntry, len(addTopics))
		}

		date, err := resolveDate(addDate)
		if err != nil {
			return err
		}

		session, err := domain.NewSession(date, slot, mood, addEnergy, addTopics, addNote)
		if err != nil {
			return err
		}

		return withService(func(ctx context.Context, svc *reports.Service) error {
			if err := svc.Add(ctx, cfg.UserID, session); err != nil {
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

// resolveDate parses an explicit date or falls back to today in the
// configured timezone.
func resolveDate(s string) (domain.Date, error) {
	if s == "" {
		return domain.Today(location()), nil
	}
	return domain.ParseDate(s)
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "session date in YYYY-MM-DD (default: today)")
	addCmd.Flags().StringVar(&addMood, "mood", "", "mood name (required)")
	addCmd.Flags().IntVar(&addEnergy, "energy", 0, "energy level 1-5 (required)")
	addCmd.Flags().StringArrayVar(&addTopics, "topic", nil, "topic tag (repeatable, max 5)")
	addCmd.Flags().StringVar(&addNote, "note", "", "free-form note")
	_ = addCmd.MarkFlagRequired("mood")
	_ = addCmd.MarkFlagRequired("energy")
	rootCmd.AddCommand(addCmd)
}
