package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pointbank/passbook/internal/accounts"
	"github.com/pointbank/passbook/internal/validate"
)

func newAccountsCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List, create and delete accounts",
	}
	cmd.AddCommand(
		newAccountsListCommand(g),
		newAccountsCreateCommand(g),
		newAccountsDeleteCommand(g),
	)
	return cmd
}

func newAccountsListCommand(g *globalFlags) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List account names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}
			dir, err := accounts.Load(cmd.Context(), e.client)
			if err != nil {
				return err
			}
			if prefix == "" {
				return e.out.Accounts(dir.All())
			}
			names := dir.Match(prefix)
			if len(names) == 0 && dir.Len() > 0 {
				e.out.Info("No accounts match %q (%d in total).", prefix, dir.Len())
				return nil
			}
			return e.out.Accounts(names)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "only names starting with this")
	return cmd
}

func newAccountsCreateCommand(g *globalFlags) *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an account protected by a 4-digit PIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}
			return runAccountsCreate(cmd, e, args[0], pin)
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "4-digit PIN")
	return cmd
}

func runAccountsCreate(cmd *cobra.Command, e *env, name, pin string) error {
	sess, err := e.session(name, pin)
	if err != nil {
		return err
	}
	if err := sess.Check(); err != nil {
		return err
	}

	dir, err := accounts.Load(cmd.Context(), e.client)
	if err != nil {
		return err
	}
	if dir.Exists(sess.Account) {
		return fmt.Errorf("account %q already exists", sess.Account)
	}

	err = e.client.CreateAccount(cmd.Context(), sess.Account, sess.PIN)
	e.logAction(sess.Account, "create_account", "", err)
	if err != nil {
		return err
	}
	e.out.Success("Created account %s", sess.Account)
	return nil
}

func newAccountsDeleteCommand(g *globalFlags) *cobra.Command {
	var pin string
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an account and its passbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}
			return runAccountsDelete(cmd, e, args[0], pin, yes)
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "4-digit PIN")
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}

func runAccountsDelete(cmd *cobra.Command, e *env, name, pin string, yes bool) error {
	if err := validate.Join(validate.Name(name)); err != nil {
		return err
	}
	sess, err := e.session(name, pin)
	if err != nil {
		return err
	}
	if err := sess.Check(); err != nil {
		return err
	}

	if !yes {
		ok, err := e.prompts.Confirm(fmt.Sprintf("Delete account %s and all of its records?", sess.Account))
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("not deleted (confirm interactively or pass --yes)")
		}
	}

	err = e.client.DeleteAccount(cmd.Context(), sess.Account, sess.PIN)
	e.logAction(sess.Account, "delete_account", "", err)
	if err != nil {
		return err
	}
	e.out.Success("Deleted account %s", sess.Account)
	return nil
}
