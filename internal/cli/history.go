package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Punishment history commands",
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryCountCmd())
	cmd.AddCommand(newHistoryShowCmd())

	return cmd
}

func newHistoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <player-id>",
		Short: "List a player's full punishment history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Punishment
			if err := client.Get(fmt.Sprintf("/api/v1/players/%s/history", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newHistoryCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <player-id>",
		Short: "Count a player's punishment records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CountResult
			if err := client.Get(fmt.Sprintf("/api/v1/players/%s/history/count", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <punishment-id>",
		Short: "Show a single punishment record by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Punishment
			if err := client.Get(fmt.Sprintf("/api/v1/punishments/%s", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate punishment statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result StatsResult
			if err := client.Get("/api/v1/stats", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <player-id> <key>",
		Short: "Resolve a display placeholder for a player",
		Long: `Resolve a display placeholder for a player.

Keys include: banned, ban_reason, ban_remaining, muted, mute_reason,
mute_remaining, warning_count, frozen, freeze_reason, points,
history_count, and the aggregate total_*/active_* counters.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LookupResult
			if err := client.Get(fmt.Sprintf("/api/v1/players/%s/lookup/%s", args[0], args[1]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
