package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pointbank/passbook/internal/ledger"
	"github.com/pointbank/passbook/internal/render"
	"github.com/pointbank/passbook/internal/validate"
)

func newSavingsCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "savings",
		Short: "Preview, open and cancel fixed-term savings",
	}
	cmd.AddCommand(
		newSavingsPreviewCommand(g),
		newSavingsSubscribeCommand(g),
		newSavingsCancelCommand(g),
	)
	return cmd
}

func newSavingsPreviewCommand(g *globalFlags) *cobra.Command {
	var principal int64
	var weeks int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show interest and maturity for a savings plan without opening it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := referenceTime(g.now)
			if err != nil {
				return err
			}
			// Offline: there is no balance to check the principal against.
			errs := validate.Savings(principal, weeks, principal)
			if err := validate.Join(errs); err != nil {
				return err
			}
			r := render.New(cmd.OutOrStdout(), render.Options{Location: now.Location()})
			return r.Preview(ledger.PreviewSavings(principal, weeks, now))
		},
	}

	cmd.Flags().Int64Var(&principal, "principal", 0, "points to put in")
	cmd.Flags().IntVar(&weeks, "weeks", ledger.MinWeeks, fmt.Sprintf("term in weeks (%d-%d)", ledger.MinWeeks, ledger.MaxWeeks))
	_ = cmd.MarkFlagRequired("principal")
	return cmd
}

func newSavingsSubscribeCommand(g *globalFlags) *cobra.Command {
	var pin string
	var principal int64
	var weeks int

	cmd := &cobra.Command{
		Use:   "subscribe <name>",
		Short: "Open a savings contract from an account's balance",
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

			p, err := e.svc.Subscribe(cmd.Context(), sess, principal, weeks)
			e.logAction(sess.Account, "savings_create", fmt.Sprintf("principal=%d weeks=%d", principal, weeks), err)
			if err != nil {
				return err
			}
			e.out.Success("Savings opened")
			return e.out.Preview(p)
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "4-digit PIN")
	cmd.Flags().Int64Var(&principal, "principal", 0, "points to put in")
	cmd.Flags().IntVar(&weeks, "weeks", ledger.MinWeeks, fmt.Sprintf("term in weeks (%d-%d)", ledger.MinWeeks, ledger.MaxWeeks))
	_ = cmd.MarkFlagRequired("principal")
	return cmd
}

func newSavingsCancelCommand(g *globalFlags) *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "cancel <name> <id>",
		Short: "Cancel an active savings contract",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}
			sess, err := e.session(args[0], pin)
			if err != nil {
				return err
			}

			err = e.svc.CancelSavings(cmd.Context(), sess, args[1])
			e.logAction(sess.Account, "savings_cancel", "id="+args[1], err)
			if err != nil {
				return err
			}
			e.out.Success("Canceled savings %s", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "4-digit PIN")
	return cmd
}
