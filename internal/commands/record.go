package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pointbank/passbook/internal/passbook"
	"github.com/pointbank/passbook/internal/render"
)

type recordFlags struct {
	pin      string
	memo     string
	deposit  int64
	withdraw int64
	template string
}

func newRecordCommand(g *globalFlags) *cobra.Command {
	f := &recordFlags{}

	cmd := &cobra.Command{
		Use:   "record <name>",
		Short: "Record a deposit or withdrawal in an account's passbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}
			return runRecord(cmd, e, args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.pin, "pin", "", "4-digit PIN")
	cmd.Flags().StringVar(&f.memo, "memo", "", "what the entry is for")
	cmd.Flags().Int64Var(&f.deposit, "deposit", 0, "points to deposit")
	cmd.Flags().Int64Var(&f.withdraw, "withdraw", 0, "points to withdraw")
	cmd.Flags().StringVar(&f.template, "template", "", "pre-fill from a template ID")
	cmd.MarkFlagsMutuallyExclusive("template", "deposit")
	cmd.MarkFlagsMutuallyExclusive("template", "withdraw")

	return cmd
}

func runRecord(cmd *cobra.Command, e *env, name string, f *recordFlags) error {
	entry := passbook.Entry{Memo: f.memo, Deposit: f.deposit, Withdraw: f.withdraw}
	if f.template != "" {
		var err error
		entry, err = e.svc.ApplyTemplate(cmd.Context(), f.template, f.memo)
		if err != nil {
			return err
		}
	}

	sess, err := e.session(name, f.pin)
	if err != nil {
		return err
	}

	balance, err := e.svc.Record(cmd.Context(), sess, entry)
	e.logAction(sess.Account, "add_transaction",
		fmt.Sprintf("memo=%q deposit=%d withdraw=%d", entry.Memo, entry.Deposit, entry.Withdraw), err)
	if err != nil {
		return err
	}

	e.out.Success("Saved. Balance is now %s points", render.Points(balance))
	return nil
}
