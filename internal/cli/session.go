package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Connection lifecycle commands",
	}

	cmd.AddCommand(newSessionConnectCmd())
	cmd.AddCommand(newSessionDisconnectCmd())
	cmd.AddCommand(newSessionGetCmd())

	return cmd
}

func newSessionConnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <player-id>",
		Short: "Mark a player as connected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionResult
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s", args[0]), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newSessionDisconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect <player-id>",
		Short: "Mark a player as disconnected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionResult
			if err := client.Delete(fmt.Sprintf("/api/v1/sessions/%s", args[0]), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <player-id>",
		Short: "Show a player's connection state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionResult
			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
