package commands

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// NewInvoicesCommand creates the invoices command group.
func NewInvoicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoices",
		Aliases: []string{"invoice", "inv"},
		Short:   "Manage invoices",
		Long:    "List, inspect, finalize and void Lago invoices",
	}

	cmd.AddCommand(newInvoicesListCommand())
	cmd.AddCommand(newInvoicesGetCommand())
	cmd.AddCommand(newInvoiceActionCommand("finalize", "Finalize a draft invoice", "finalized",
		func(c lago.InvoicesClient) func(context.Context, string) (*lago.Invoice, error) { return c.Finalize }))
	cmd.AddCommand(newInvoiceActionCommand("void", "Void a finalized invoice", "voided",
		func(c lago.InvoicesClient) func(context.Context, string) (*lago.Invoice, error) { return c.Void }))

	return cmd
}

func invoiceRow(inv lago.Invoice) []any {
	return []any{
		inv.LagoID, inv.Number, inv.Status, inv.PaymentStatus,
		formatCents(inv.TotalAmountCents, inv.Currency), inv.IssuingDate,
	}
}

func newInvoicesListCommand() *cobra.Command {
	var (
		pages          pageFlags
		customer       string
		statuses       []string
		paymentStatus  []string
		paymentOverdue bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Long:  "List invoices, optionally filtered by customer and status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			invoices, err := list(cmd.Context(), &pages,
				func(ctx context.Context, page int) (*lago.ListResponse[lago.Invoice], error) {
					filter := &lago.InvoiceFilter{
						Pagination:      pages.pagination(page),
						Statuses:        statuses,
						PaymentStatuses: paymentStatus,
					}
					if customer != "" {
						filter.ExternalCustomerID = &customer
					}

					if cmd.Flags().Changed("overdue") {
						filter.PaymentOverdue = &paymentOverdue
					}

					return client.Invoices().List(ctx, filter)
				})
			if err != nil {
				return fmt.Errorf("failed to list invoices: %w", err)
			}

			return renderList(cmd, invoices, "invoices",
				[]any{"Lago ID", "Number", "Status", "Payment", "Total", "Issued"}, invoiceRow)
		},
	}

	pages.register(cmd)
	cmd.Flags().StringVar(&customer, "customer", "", "filter by external customer id")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "filter by status: draft, finalized, voided (repeatable)")
	cmd.Flags().StringSliceVar(&paymentStatus, "payment-status", nil, "filter by payment status (repeatable)")
	cmd.Flags().BoolVar(&paymentOverdue, "overdue", false, "filter by overdue payment")

	return cmd
}

func newInvoicesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LAGO_ID",
		Short: "Get invoice details",
		Long:  "Display detailed information about an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			invoice, err := client.Invoices().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get invoice: %w", err)
			}

			return render(cmd, invoice, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Lago ID", invoice.LagoID)
				_ = table.Append("Number", invoice.Number)
				_ = table.Append("Type", invoice.InvoiceType)
				_ = table.Append("Status", invoice.Status)
				_ = table.Append("Payment Status", invoice.PaymentStatus)
				_ = table.Append("Fees", formatCents(invoice.FeesAmountCents, invoice.Currency))
				_ = table.Append("Taxes", formatCents(invoice.TaxesAmountCents, invoice.Currency))
				_ = table.Append("Total", formatCents(invoice.TotalAmountCents, invoice.Currency))
				_ = table.Append("Issuing Date", invoice.IssuingDate)
				_ = table.Append("Due Date", invoice.PaymentDueDate)
				_ = table.Append("File", valueOrNA(invoice.FileURL))
			})
		},
	}
}

func newInvoiceActionCommand(
	use, short, done string,
	action func(lago.InvoicesClient) func(context.Context, string) (*lago.Invoice, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use + " LAGO_ID",
		Short: short,
		Long:  short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			invoice, err := action(client.Invoices())(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to %s invoice: %w", use, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s invoice %s (%s)\n",
				cases.Title(language.English).String(done), invoice.Number, invoice.Status)

			return nil
		},
	}
}
