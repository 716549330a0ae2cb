package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"finmanager/internal/client"
	"finmanager/internal/listview"
	"finmanager/internal/models"
)

var categoryColumns = []column[models.Category]{
	{title: "ID", value: func(c models.Category) string { return fmt.Sprint(c.ID) }},
	{title: "Name", value: func(c models.Category) string { return c.Name }},
	{title: "Description", value: func(c models.Category) string { return c.Description }},
}

func newCategoriesCommand(a *app) *cobra.Command {
	lf := &listFlags{}
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "List and manage transaction categories",
	}
	lf.register(cmd)

	cmd.AddCommand(
		newCategoriesListCommand(a, lf),
		newCategoriesAddCommand(a, lf),
		newCategoriesEditCommand(a, lf),
		newCategoriesDeleteCommand(a, lf),
	)
	return cmd
}

func newCategoriesListCommand(a *app, lf *listFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := listview.New(a.client.ListCategories)
			if err := loadView(cmd.Context(), cmd, a, "categories", v); err != nil {
				renderList(cmd.OutOrStdout(), a.theme, "categories", v, categoryColumns)
				return err
			}
			if err := applyListFlags(v, lf); err != nil {
				return err
			}
			renderList(cmd.OutOrStdout(), a.theme, "categories", v, categoryColumns)
			return nil
		},
	}
}

func newCategoriesAddCommand(a *app, lf *listFlags) *cobra.Command {
	var form client.CategoryForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := listview.New(a.client.ListCategories)
			return mutateAndShow(cmd, a, v, lf, "categories", categoryColumns,
				func(ctx context.Context) error {
					_, err := a.client.CreateCategory(ctx, form)
					return err
				},
				"Category created successfully", "Failed to create category")
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "category name (required)")
	cmd.Flags().StringVar(&form.Description, "description", "", "category description")
	return cmd
}

func newCategoriesEditCommand(a *app, lf *listFlags) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a category's name or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			v := listview.New(a.client.ListCategories)
			if err := loadView(ctx, cmd, a, "categories", v); err != nil {
				return err
			}
			current, ok := findByID(v.Items(), id, func(c models.Category) uint { return c.ID })
			if !ok {
				return fmt.Errorf("category %d not found", id)
			}

			form := client.CategoryForm{Name: current.Name, Description: current.Description}
			if cmd.Flags().Changed("name") {
				form.Name = name
			}
			if cmd.Flags().Changed("description") {
				form.Description = description
			}

			return mutateAndShow(cmd, a, v, lf, "categories", categoryColumns,
				func(ctx context.Context) error {
					_, err := a.client.UpdateCategory(ctx, id, form)
					return err
				},
				"Category updated successfully", "Failed to update category")
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description, empty to clear")
	return cmd
}

func newCategoriesDeleteCommand(a *app, lf *listFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a category; its transactions become uncategorized",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			v := listview.New(a.client.ListCategories)
			if err := loadView(ctx, cmd, a, "categories", v); err != nil {
				return err
			}

			label := fmt.Sprintf("category %d", id)
			if current, ok := findByID(v.Items(), id, func(c models.Category) uint { return c.ID }); ok {
				label = fmt.Sprintf("category %q", current.Name)
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

			return mutateAndShow(cmd, a, v, lf, "categories", categoryColumns,
				func(ctx context.Context) error {
					_, err := a.client.DeleteCategory(ctx, id)
					return err
				},
				"Category deleted successfully", "Failed to delete category")
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
