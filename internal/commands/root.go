package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pointbank/passbook/internal/buildinfo"
	"github.com/pointbank/passbook/internal/render"
)

type globalFlags struct {
	configPath string
	verbose    bool
	now        string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "passbook",
		Short:   "Student point passbook",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "passbook.yaml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log service requests to stderr")
	rootCmd.PersistentFlags().StringVar(&g.now, "now", "", "reference time (RFC3339) instead of the clock")
	_ = rootCmd.PersistentFlags().MarkHidden("now")

	rootCmd.AddCommand(
		newInitCommand(g),
		newAccountsCommand(g),
		newShowCommand(g),
		newRecordCommand(g),
		newTransactionsCommand(g),
		newSavingsCommand(g),
		newGoalCommand(g),
		newTemplatesCommand(g),
		newExportCommand(g),
		newOpenCommand(g),
		newLogCommand(g),
	)

	return rootCmd
}

// Execute runs cmd and prints any error to its stderr in the error style.
func Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		render.NewStyles(cmd.ErrOrStderr()).Error("%v", err)
	}
	return err
}
