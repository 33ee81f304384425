package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWarnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warn",
		Short: "Warning management commands",
	}

	cmd.AddCommand(newSanctionIssueCmd("warning", "/api/v1/warnings"))
	cmd.AddCommand(newWarnListCmd())
	cmd.AddCommand(newWarnCountCmd())

	return cmd
}

func newWarnListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <player-id>",
		Short: "List a player's warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Punishment
			if err := client.Get(fmt.Sprintf("/api/v1/warnings/%s", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newWarnCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <player-id>",
		Short: "Count a player's valid warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CountResult
			if err := client.Get(fmt.Sprintf("/api/v1/warnings/%s/count", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
