package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "points",
		Short: "Point balance commands",
	}

	cmd.AddCommand(newPointsGetCmd())
	cmd.AddCommand(newPointsAddCmd())
	cmd.AddCommand(newPointsResetCmd())

	return cmd
}

func newPointsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <player-id>",
		Short: "Show a player's point balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PointsResult
			if err := client.Get(fmt.Sprintf("/api/v1/players/%s/points", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newPointsAddCmd() *cobra.Command {
	var delta int

	cmd := &cobra.Command{
		Use:   "add <player-id>",
		Short: "Adjust a player's point balance (negative deltas deduct)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]int{"delta": delta}

			var result PointsResult
			if err := client.Post(fmt.Sprintf("/api/v1/players/%s/points", args[0]), body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&delta, "delta", 0, "Amount to add or deduct (required)")
	_ = cmd.MarkFlagRequired("delta")

	return cmd
}

func newPointsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <player-id>",
		Short: "Reset a player's point balance to zero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PointsResult
			if err := client.Delete(fmt.Sprintf("/api/v1/players/%s/points", args[0]), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
