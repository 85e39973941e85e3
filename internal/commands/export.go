package commands

import (
	"github.com/spf13/cobra"

	"github.com/pointbank/passbook/internal/export"
)

func newExportCommand(g *globalFlags) *cobra.Command {
	var pin, out string

	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Write an account's passbook with running balances to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}
			sess, err := e.session(args[0], pin)
			if err != nil {
				return err
			}
			snap, err := e.svc.View(cmd.Context(), sess)
			if err != nil {
				return err
			}

			if err := export.WriteFile(out, snap.Rows, e.cfg.Location()); err != nil {
				return err
			}
			e.out.Success("Wrote %d rows to %s", len(snap.Rows), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "4-digit PIN")
	cmd.Flags().StringVar(&out, "out", "", "CSV file to write")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
