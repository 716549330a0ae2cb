package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"finmanager/internal/client"
	"finmanager/internal/listview"
	"finmanager/internal/models"
)

var counterpartyColumns = []column[models.Counterparty]{
	{title: "ID", value: func(c models.Counterparty) string { return fmt.Sprint(c.ID) }},
	{title: "Name", value: func(c models.Counterparty) string { return c.Name }},
	{title: "Reference", value: func(c models.Counterparty) string { return c.Reference }},
	{title: "Description", value: func(c models.Counterparty) string { return c.Description }},
}

func newCounterpartiesCommand(a *app) *cobra.Command {
	lf := &listFlags{}
	cmd := &cobra.Command{
		Use:     "counterparties",
		Aliases: []string{"counterparty", "cp"},
		Short:   "List and manage counterparties",
	}
	lf.register(cmd)

	cmd.AddCommand(
		newCounterpartiesListCommand(a, lf),
		newCounterpartiesAddCommand(a, lf),
		newCounterpartiesEditCommand(a, lf),
		newCounterpartiesDeleteCommand(a, lf),
	)
	return cmd
}

func newCounterpartiesListCommand(a *app, lf *listFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List counterparties",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := listview.New(a.client.ListCounterparties)
			if err := loadView(cmd.Context(), cmd, a, "counterparties", v); err != nil {
				renderList(cmd.OutOrStdout(), a.theme, "counterparties", v, counterpartyColumns)
				return err
			}
			if err := applyListFlags(v, lf); err != nil {
				return err
			}
			renderList(cmd.OutOrStdout(), a.theme, "counterparties", v, counterpartyColumns)
			return nil
		},
	}
}

func newCounterpartiesAddCommand(a *app, lf *listFlags) *cobra.Command {
	var form client.CounterpartyForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a counterparty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := listview.New(a.client.ListCounterparties)
			return mutateAndShow(cmd, a, v, lf, "counterparties", counterpartyColumns,
				func(ctx context.Context) error {
					_, err := a.client.CreateCounterparty(ctx, form)
					return err
				},
				"Counterparty created successfully", "Failed to create counterparty")
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "counterparty name (required)")
	cmd.Flags().StringVar(&form.Reference, "reference", "", "account number, IBAN or other identifier")
	cmd.Flags().StringVar(&form.Description, "description", "", "counterparty description")
	return cmd
}

func newCounterpartiesEditCommand(a *app, lf *listFlags) *cobra.Command {
	var name, reference, description string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a counterparty's name, reference or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			v := listview.New(a.client.ListCounterparties)
			if err := loadView(ctx, cmd, a, "counterparties", v); err != nil {
				return err
			}
			current, ok := findByID(v.Items(), id, func(c models.Counterparty) uint { return c.ID })
			if !ok {
				return fmt.Errorf("counterparty %d not found", id)
			}

			form := client.CounterpartyForm{Name: current.Name, Reference: current.Reference, Description: current.Description}
			if cmd.Flags().Changed("name") {
				form.Name = name
			}
			if cmd.Flags().Changed("reference") {
				form.Reference = reference
			}
			if cmd.Flags().Changed("description") {
				form.Description = description
			}

			return mutateAndShow(cmd, a, v, lf, "counterparties", counterpartyColumns,
				func(ctx context.Context) error {
					_, err := a.client.UpdateCounterparty(ctx, id, form)
					return err
				},
				"Counterparty updated successfully", "Failed to update counterparty")
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&reference, "reference", "", "new reference, empty to clear")
	cmd.Flags().StringVar(&description, "description", "", "new description, empty to clear")
	return cmd
}

func newCounterpartiesDeleteCommand(a *app, lf *listFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a counterparty; its transactions keep no counterparty",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			v := listview.New(a.client.ListCounterparties)
			if err := loadView(ctx, cmd, a, "counterparties", v); err != nil {
				return err
			}

			label := fmt.Sprintf("counterparty %d", id)
			if current, ok := findByID(v.Items(), id, func(c models.Counterparty) uint { return c.ID }); ok {
				label = fmt.Sprintf("counterparty %q", current.Name)
			}
			if !yes {
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete "+label+"?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), a.theme.Muted.Render("Cancelled."))
					return nil
				}
			}

			return mutateAndShow(cmd, a, v, lf, "counterparties", counterpartyColumns,
				func(ctx context.Context) error {
					_, err := a.client.DeleteCounterparty(ctx, id)
					return err
				},
				"Counterparty deleted successfully", "Failed to delete counterparty")
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
