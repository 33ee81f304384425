package cli

import (
	"github.com/spf13/cobra"
)

func newMuteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mute",
		Short: "Mute management commands",
	}

	cmd.AddCommand(newSanctionIssueCmd("mute", "/api/v1/mutes"))
	cmd.AddCommand(newSanctionGetCmd("mute", "/api/v1/mutes"))
	cmd.AddCommand(newSanctionIPCmd("mute", "/api/v1/mutes"))
	cmd.AddCommand(newSanctionRevokeCmd("mute", "/api/v1/mutes"))

	return cmd
}
