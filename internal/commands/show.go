package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pointbank/passbook/internal/render"
)

func newShowCommand(g *globalFlags) *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show the passbook, savings and goal progress for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}
			return runShow(cmd, e, args[0], pin)
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "4-digit PIN")
	return cmd
}

func runShow(cmd *cobra.Command, e *env, name, pin string) error {
	sess, err := e.session(name, pin)
	if err != nil {
		return err
	}
	snap, err := e.svc.View(cmd.Context(), sess)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Passbook: %s\n\n", snap.Account)
	if err := e.out.Ledger(snap.Rows); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nSavings")
	if err := e.out.Savings(snap.Savings); err != nil {
		return err
	}

	if active := snap.ActiveSavings(); len(active) > 0 {
		var locked int64
		for _, c := range active {
			locked += c.Principal
		}
		e.out.Info("%d active contract(s), %s points locked until maturity", len(active), render.Points(locked))
	}

	fmt.Fprintln(w, "\nGoal")
	return e.out.Projection(snap.Goal, snap.Projection)
}
