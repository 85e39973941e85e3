package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pointbank/passbook/internal/model"
	"github.com/pointbank/passbook/internal/validate"
)

func newTemplatesCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage quick-entry templates",
	}
	cmd.AddCommand(
		newTemplatesListCommand(g),
		newTemplatesAddCommand(g),
		newTemplatesDeleteCommand(g),
	)
	return cmd
}

func newTemplatesListCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}
			tmpls, err := e.client.Templates(cmd.Context())
			if err != nil {
				return err
			}
			return e.out.Templates(tmpls)
		},
	}
}

func newTemplatesAddCommand(g *globalFlags) *cobra.Command {
	var adminPIN, label, kind string
	var amount int64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a template (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}

			t := model.Template{
				Label:  strings.TrimSpace(label),
				Kind:   model.TemplateKind(strings.ToLower(kind)),
				Amount: amount,
			}
			if err := validate.Join(validate.Template(t.Label, t.Kind, t.Amount)); err != nil {
				return err
			}
			pin, err := e.prompts.PIN("admin", adminPIN)
			if err != nil {
				return err
			}

			err = e.client.CreateTemplate(cmd.Context(), pin, t)
			e.logAction("admin", "template_create", fmt.Sprintf("label=%q kind=%s amount=%d", t.Label, t.Kind, t.Amount), err)
			if err != nil {
				return err
			}
			e.out.Success("Added template %s", t.Label)
			return nil
		},
	}

	cmd.Flags().StringVar(&adminPIN, "admin-pin", "", "admin PIN")
	cmd.Flags().StringVar(&label, "label", "", "label shown in the list")
	cmd.Flags().StringVar(&kind, "kind", string(model.TemplateDeposit), "deposit or withdraw")
	cmd.Flags().Int64Var(&amount, "amount", 0, "points")
	_ = cmd.MarkFlagRequired("label")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newTemplatesDeleteCommand(g *globalFlags) *cobra.Command {
	var adminPIN string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a template (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}
			pin, err := e.prompts.PIN("admin", adminPIN)
			if err != nil {
				return err
			}

			err = e.client.DeleteTemplate(cmd.Context(), pin, args[0])
			e.logAction("admin", "template_delete", "id="+args[0], err)
			if err != nil {
				return err
			}
			e.out.Success("Deleted template %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&adminPIN, "admin-pin", "", "admin PIN")
	return cmd
}
