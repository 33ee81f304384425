package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newFreezeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freeze",
		Short: "Freeze management commands",
	}

	cmd.AddCommand(newFreezeAddCmd())
	cmd.AddCommand(newFreezeGetCmd())
	cmd.AddCommand(newFreezeLiftCmd())

	return cmd
}

func newFreezeAddCmd() *cobra.Command {
	var executorID, executorName, reason string
	var silent bool

	cmd := &cobra.Command{
		Use:   "add <player-id>",
		Short: "Freeze an online player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"executor_id":   executorID,
				"executor_name": executorName,
				"reason":        reason,
				"silent":        silent,
			}

			var result FreezeResult
			if err := client.Post(fmt.Sprintf("/api/v1/freezes/%s", args[0]), body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&executorID, "executor", "", "Executor player ID")
	cmd.Flags().StringVar(&executorName, "executor-name", "", "Executor display name")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason (required)")
	cmd.Flags().BoolVar(&silent, "silent", false, "Suppress notification to the player")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}

func newFreezeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <player-id>",
		Short: "Show a player's freeze state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result FreezeResult
			err := client.Get(fmt.Sprintf("/api/v1/freezes/%s", args[0]), &result)
			if errors.Is(err, errNoContent) {
				NewOutput(cfg.Output).PrintMessage("Not frozen")
				return nil
			}
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newFreezeLiftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lift <player-id>",
		Short: "Lift a player's freeze",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RevokeResult
			if err := client.Delete(fmt.Sprintf("/api/v1/freezes/%s", args[0]), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
