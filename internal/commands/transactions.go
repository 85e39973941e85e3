package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pointbank/passbook/internal/render"
)

func newTransactionsCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Correct an account's passbook",
	}
	cmd.AddCommand(newTransactionsDeleteCommand(g))
	return cmd
}

func newTransactionsDeleteCommand(g *globalFlags) *cobra.Command {
	var pin string
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <name> <id>",
		Short: "Delete a mistaken transaction by ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}
			return runTransactionsDelete(cmd, e, args[0], args[1], pin, yes)
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "4-digit PIN")
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}

func runTransactionsDelete(cmd *cobra.Command, e *env, name, id, pin string, yes bool) error {
	sess, err := e.session(name, pin)
	if err != nil {
		return err
	}

	if !yes {
		ok, err := e.prompts.Confirm(fmt.Sprintf("Delete transaction %s from %s's passbook?", id, sess.Account))
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("not deleted (confirm interactively or pass --yes)")
		}
	}

	err = e.svc.DeleteTransaction(cmd.Context(), sess, id)
	e.logAction(sess.Account, "delete_transaction", "id="+id, err)
	if err != nil {
		return err
	}

	balance, err := e.svc.Balance(cmd.Context(), sess)
	if err != nil {
		return err
	}
	e.out.Success("Deleted transaction %s. Balance is now %s points", id, render.Points(balance))
	return nil
}
