package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pointbank/passbook/internal/config"
	"github.com/pointbank/passbook/internal/export"
	"github.com/pointbank/passbook/internal/render"
)

func newOpenCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "open <file>",
		Short: "Show a passbook previously written by export, without the service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(g.configPath)
			if err != nil {
				return err
			}
			return runOpen(cmd, cfg, args[0])
		},
	}
}

func runOpen(cmd *cobra.Command, cfg *config.Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	loc := cfg.Location()
	rows, err := export.Read(f, loc)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	r := render.New(cmd.OutOrStdout(), render.Options{Location: loc, MemoWidth: cfg.Display.MemoWidth})
	return r.Ledger(rows)
}
