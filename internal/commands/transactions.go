package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"finmanager/internal/client"
	"finmanager/internal/listview"
	"finmanager/internal/models"
)

const dateLayout = "2006-01-02"

var transactionColumns = []column[models.TransactionView]{
	{title: "ID", value: func(t models.TransactionView) string { return fmt.Sprint(t.ID) }},
	{title: "Date", value: func(t models.TransactionView) string { return t.TransactionDate.Format(dateLayout) }},
	{title: "Value date", value: func(t models.TransactionView) string {
		if t.ValueDate == nil {
			return "-"
		}
		return t.ValueDate.Format(dateLayout)
	}},
	{
		title: "Amount",
		value: func(t models.TransactionView) string { return t.Amount.StringFixed(2) + " " + t.Currency },
		style: func(theme Theme, t models.TransactionView) lipgloss.Style {
			if t.Amount.IsNegative() {
				return theme.Debit
			}
			return theme.Credit
		},
	},
	{title: "Description", value: func(t models.TransactionView) string { return t.Description }},
	{title: "Category", value: func(t models.TransactionView) string { return orDash(t.CategoryName) }},
	{title: "Counterparty", value: func(t models.TransactionView) string { return orDash(t.CounterpartyName) }},
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func newTransactionsCommand(a *app) *cobra.Command {
	lf := &listFlags{}
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"transaction", "tx"},
		Short:   "List and record transactions",
	}
	lf.register(cmd)

	cmd.AddCommand(
		newTransactionsListCommand(a, lf),
		newTransactionsAddCommand(a, lf),
	)
	return cmd
}

func newTransactionsListCommand(a *app, lf *listFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := listview.New(a.client.ListTransactions)
			if err := loadView(cmd.Context(), cmd, a, "transactions", v); err != nil {
				renderList(cmd.OutOrStdout(), a.theme, "transactions", v, transactionColumns)
				return err
			}
			if err := applyListFlags(v, lf); err != nil {
				return err
			}
			renderList(cmd.OutOrStdout(), a.theme, "transactions", v, transactionColumns)
			return nil
		},
	}
}

type transactionFlags struct {
	date           string
	valueDate      string
	amount         string
	currency       string
	description    string
	reference      string
	categoryID     uint
	counterpartyID uint
}

// form converts the flags into a submission. Unset references stay nil.
func (f *transactionFlags) form(cmd *cobra.Command) (client.TransactionForm, error) {
	form := client.TransactionForm{
		TransactionDate: f.date,
		ValueDate:       f.valueDate,
		Currency:        strings.ToUpper(strings.TrimSpace(f.currency)),
		Description:     f.description,
		Reference:       f.reference,
	}
	if f.amount != "" {
		amount, err := decimal.NewFromString(f.amount)
		if err != nil {
			return form, fmt.Errorf("invalid amount %q: %w", f.amount, err)
		}
		form.Amount = &amount
	}
	if cmd.Flags().Changed("category-id") {
		id := f.categoryID
		form.CategoryID = &id
	}
	if cmd.Flags().Changed("counterparty-id") {
		id := f.counterpartyID
		form.CounterpartyID = &id
	}
	return form, nil
}

func newTransactionsAddCommand(a *app, lf *listFlags) *cobra.Command {
	f := &transactionFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction; negative amounts are debits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := f.form(cmd)
			if err != nil {
				return err
			}
			v := listview.New(a.client.ListTransactions)
			return mutateAndShow(cmd, a, v, lf, "transactions", transactionColumns,
				func(ctx context.Context) error {
					_, err := a.client.CreateTransaction(ctx, form)
					return err
				},
				"Transaction created successfully", "Failed to create transaction")
		},
	}

	cmd.Flags().StringVar(&f.date, "date", "", "transaction date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&f.valueDate, "value-date", "", "value date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.amount, "amount", "", "signed amount, e.g. -42.10 (required)")
	cmd.Flags().StringVar(&f.currency, "currency", "", "ISO 4217 currency code (server default EUR)")
	cmd.Flags().StringVar(&f.description, "description", "", "free-text description")
	cmd.Flags().StringVar(&f.reference, "reference", "", "bank reference")
	cmd.Flags().UintVar(&f.categoryID, "category-id", 0, "category to file the transaction under")
	cmd.Flags().UintVar(&f.counterpartyID, "counterparty-id", 0, "counterparty of the transaction")
	return cmd
}
