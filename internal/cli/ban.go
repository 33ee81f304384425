package cli

import (
	"github.com/spf13/cobra"
)

func newBanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ban",
		Short: "Ban management commands",
	}

	cmd.AddCommand(newSanctionIssueCmd("ban", "/api/v1/bans"))
	cmd.AddCommand(newSanctionGetCmd("ban", "/api/v1/bans"))
	cmd.AddCommand(newSanctionIPCmd("ban", "/api/v1/bans"))
	cmd.AddCommand(newSanctionRevokeCmd("ban", "/api/v1/bans"))

	return cmd
}
