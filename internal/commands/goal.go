package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pointbank/passbook/internal/model"
)

func newGoalCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage an account's savings goal",
	}
	cmd.AddCommand(newGoalSetCommand(g))
	return cmd
}

func newGoalSetCommand(g *globalFlags) *cobra.Command {
	var pin, date string
	var amount int64

	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Set the goal amount and date, then show the projection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}

			d, err := time.ParseInLocation("2006-01-02", date, e.cfg.Location())
			if err != nil {
				return fmt.Errorf("parsing --date: %w", err)
			}
			goal := model.Goal{Amount: amount, Date: d}

			sess, err := e.session(args[0], pin)
			if err != nil {
				return err
			}

			p, err := e.svc.SetGoal(cmd.Context(), sess, goal)
			e.logAction(sess.Account, "set_goal", fmt.Sprintf("amount=%d date=%s", amount, date), err)
			if err != nil {
				return err
			}
			e.out.Success("Goal saved")
			return e.out.Projection(goal, p)
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "4-digit PIN")
	cmd.Flags().Int64Var(&amount, "amount", 0, "target balance in points")
	cmd.Flags().StringVar(&date, "date", "", "target date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
