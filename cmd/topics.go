package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"moodlog/internal/journal/domain"
)

var topicsListCmd = &cobra.Command{
	Use:   "topics:list",
	Short: "List preset topics",
	Long: `List the preset topics offered when recording a session.

Examples:
  moodlog topics:list
  moodlog topics:list --json | jq '.[]'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUserRepo(func(repo domain.UserRepository) error {
			topics, err := repo.ListTopicPresets(cfg.UserID)
			if err != nil {
				return err
			}
			if jsonOut {
				return jsonFormatter().FormatTopics(topics)
			}
			textRenderer().RenderTopics(topics)
			return nil
		})
	},
}

var topicsAddCmd = &cobra.Command{
	Use:   "topics:add <topic>",
	Short: "Add a preset topic",
	Long: `Add a preset topic to the profile. Adding an existing preset is a
no-op.

Examples:
  moodlog topics:add exercise`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUserRepo(func(repo domain.UserRepository) error {
			if err := repo.AddTopicPreset(cfg.UserID, args[0]); err != nil {
				return err
			}
			fmt.Printf("Added preset %q\n", args[0])
			return nil
		})
	},
}

var topicsRemoveCmd = &cobra.Command{
	Use:   "topics:remove <topic>",
	Short: "Remove a preset topic",
	Long: `Remove a preset topic from the profile. Removing an absent preset
is a no-op. Sessions already tagged with the topic keep it.

Examples:
  moodlog topics:remove exercise`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUserRepo(func(repo domain.UserRepository) error {
			if err := repo.RemoveTopicPreset(cfg.UserID, args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed preset %q\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(topicsListCmd)
	rootCmd.AddCommand(topicsAddCmd)
	rootCmd.AddCommand(topicsRemoveCmd)
}
