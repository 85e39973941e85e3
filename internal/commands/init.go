package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/pointbank/passbook/internal/config"
)

func newInitCommand(g *globalFlags) *cobra.Command {
	var url, timezone string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a passbook.yaml pointing at the ledger service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runInit(g.configPath, url, timezone, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", g.configPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "ledger service URL (required)")
	_ = cmd.MarkFlagRequired("url")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone for dates (default Asia/Seoul)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")

	return cmd
}

func runInit(path, url, timezone string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default(url)
	if timezone != "" {
		if err := config.ValidateTimezone(timezone); err != nil {
			return err
		}
		cfg.Display.Timezone = timezone
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	dir := logDir(path, cfg.Log.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}
