package commands

import (
	"github.com/spf13/cobra"

	"github.com/pointbank/passbook/internal/activity"
)

func newLogCommand(g *globalFlags) *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the local activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}
			entries, err := activity.Read(e.logDir)
			if err != nil {
				return err
			}
			if account != "" {
				entries = activity.ForAccount(entries, account)
			}
			return e.out.Activity(entries)
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "only entries for this account")
	return cmd
}
