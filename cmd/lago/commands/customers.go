package commands

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// NewCustomersCommand creates the customers command group.
func NewCustomersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer", "cus"},
		Short:   "Manage customers",
		Long:    "List, inspect and delete Lago customers",
	}

	cmd.AddCommand(newCustomersListCommand())
	cmd.AddCommand(newCustomersGetCommand())
	cmd.AddCommand(newCustomersDeleteCommand())

	return cmd
}

func newCustomersListCommand() *cobra.Command {
	var (
		pages     pageFlags
		search    string
		countries []string
		currency  []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Long:  "List customers of the organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			customers, err := list(cmd.Context(), &pages,
				func(ctx context.Context, page int) (*lago.ListResponse[lago.Customer], error) {
					filter := &lago.CustomerFilter{
						Pagination: pages.pagination(page),
						Countries:  countries,
						Currencies: currency,
					}
					if search != "" {
						filter.SearchTerm = &search
					}

					return client.Customers().List(ctx, filter)
				})
			if err != nil {
				return fmt.Errorf("failed to list customers: %w", err)
			}

			return renderList(cmd, customers, "customers",
				[]any{"External ID", "Name", "Email", "Country", "Currency", "Created"},
				func(c lago.Customer) []any {
					return []any{c.ExternalID, c.Name, c.Email, c.Country, c.Currency, formatTime(c.CreatedAt)}
				})
		},
	}

	pages.register(cmd)
	cmd.Flags().StringVar(&search, "search", "", "search by name, email or external id")
	cmd.Flags().StringSliceVar(&countries, "country", nil, "filter by country code (repeatable)")
	cmd.Flags().StringSliceVar(&currency, "currency", nil, "filter by currency (repeatable)")

	return cmd
}

func newCustomersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get EXTERNAL_ID",
		Short: "Get customer details",
		Long:  "Display detailed information about a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			customer, err := client.Customers().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get customer: %w", err)
			}

			return render(cmd, customer, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Lago ID", customer.LagoID)
				_ = table.Append("External ID", customer.ExternalID)
				_ = table.Append("Name", customer.Name)
				_ = table.Append("Email", customer.Email)
				_ = table.Append("Country", customer.Country)
				_ = table.Append("Currency", customer.Currency)
				_ = table.Append("Timezone", customer.Timezone)
				_ = table.Append("Created", formatTime(customer.CreatedAt))
			})
		},
	}
}

func newCustomersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete EXTERNAL_ID",
		Short: "Delete a customer",
		Long:  "Delete a customer and terminate its subscriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			customer, err := client.Customers().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete customer: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted customer %s\n", customer.ExternalID)

			return nil
		},
	}
}
