package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// issueFlags holds the shared flags for issuing a punishment
type issueFlags struct {
	target       string
	targetName   string
	targetIP     string
	executorID   string
	executorName string
	reason       string
	duration     string
	silent       bool
}

func (f *issueFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.target, "target", "", "Target player ID (required)")
	cmd.Flags().StringVar(&f.targetName, "target-name", "", "Target display name")
	cmd.Flags().StringVar(&f.targetIP, "ip", "", "Target IP address")
	cmd.Flags().StringVar(&f.executorID, "executor", "", "Executor player ID")
	cmd.Flags().StringVar(&f.executorName, "executor-name", "", "Executor display name")
	cmd.Flags().StringVar(&f.reason, "reason", "", "Reason (required)")
	cmd.Flags().StringVar(&f.duration, "duration", "", "Duration, e.g. 2h45m (omit for permanent)")
	cmd.Flags().BoolVar(&f.silent, "silent", false, "Suppress public announcement")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("reason")
}

func (f *issueFlags) body() (map[string]any, error) {
	body := map[string]any{
		"target_id":     f.target,
		"target_name":   f.targetName,
		"target_ip":     f.targetIP,
		"executor_id":   f.executorID,
		"executor_name": f.executorName,
		"reason":        f.reason,
		"silent":        f.silent,
	}
	if f.duration != "" {
		d, err := time.ParseDuration(f.duration)
		if err != nil {
			return nil, fmt.Errorf("invalid --duration: %w", err)
		}
		body["duration_seconds"] = int64(d / time.Second)
	}
	return body, nil
}

// newSanctionIssueCmd creates an issue subcommand for a ban or mute
func newSanctionIssueCmd(noun, path string) *cobra.Command {
	flags := &issueFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Issue a %s", noun),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := flags.body()
			if err != nil {
				return err
			}

			var result Punishment
			if err := client.Post(path, body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// newSanctionGetCmd creates a get subcommand for a ban or mute
func newSanctionGetCmd(noun, path string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <player-id>",
		Short: fmt.Sprintf("Show a player's active %s", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Punishment
			err := client.Get(fmt.Sprintf("%s/%s", path, args[0]), &result)
			if errors.Is(err, errNoContent) {
				NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("No active %s", noun))
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

// newSanctionIPCmd creates an IP lookup subcommand for a ban or mute
func newSanctionIPCmd(noun, path string) *cobra.Command {
	return &cobra.Command{
		Use:   "ip <address>",
		Short: fmt.Sprintf("Show the active %s for an IP address", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Punishment
			err := client.Get(fmt.Sprintf("%s/ip/%s", path, args[0]), &result)
			if errors.Is(err, errNoContent) {
				NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("No active %s", noun))
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

// newSanctionRevokeCmd creates a revoke subcommand for a ban or mute
func newSanctionRevokeCmd(noun, path string) *cobra.Command {
	var executorID, executorName, note string

	cmd := &cobra.Command{
		Use:   "revoke <player-id>",
		Short: fmt.Sprintf("Revoke a player's active %s", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"executor_id":   executorID,
				"executor_name": executorName,
				"note":          note,
			}

			var result RevokeResult
			if err := client.Delete(fmt.Sprintf("%s/%s", path, args[0]), body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&executorID, "executor", "", "Executor player ID")
	cmd.Flags().StringVar(&executorName, "executor-name", "", "Executor display name")
	cmd.Flags().StringVar(&note, "note", "", "Audit note")

	return cmd
}
