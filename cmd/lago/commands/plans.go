package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// NewPlansCommand creates the plans command group.
func NewPlansCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plans",
		Aliases: []string{"plan"},
		Short:   "Manage plans",
		Long:    "List and inspect Lago plans",
	}

	cmd.AddCommand(newPlansListCommand())
	cmd.AddCommand(newPlansGetCommand())

	return cmd
}

func newPlansListCommand() *cobra.Command {
	var pages pageFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plans",
		Long:  "List all plans of the organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			plans, err := list(cmd.Context(), &pages,
				func(ctx context.Context, page int) (*lago.ListResponse[lago.Plan], error) {
					return client.Plans().List(ctx, &lago.ListOptions{Pagination: pages.pagination(page)})
				})
			if err != nil {
				return fmt.Errorf("failed to list plans: %w", err)
			}

			return renderList(cmd, plans, "plans",
				[]any{"Code", "Name", "Interval", "Amount", "In Advance", "Charges"},
				func(p lago.Plan) []any {
					return []any{
						p.Code, p.Name, p.Interval, formatCents(p.AmountCents, p.AmountCurrency),
						strconv.FormatBool(p.PayInAdvance), strconv.Itoa(len(p.Charges)),
					}
				})
		},
	}

	pages.register(cmd)

	return cmd
}

func newPlansGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CODE",
		Short: "Get plan details",
		Long:  "Display detailed information about a plan and its charges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			plan, err := client.Plans().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get plan: %w", err)
			}

			return render(cmd, plan, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Lago ID", plan.LagoID)
				_ = table.Append("Code", plan.Code)
				_ = table.Append("Name", plan.Name)
				_ = table.Append("Interval", plan.Interval)
				_ = table.Append("Amount", formatCents(plan.AmountCents, plan.AmountCurrency))
				_ = table.Append("Pay In Advance", strconv.FormatBool(plan.PayInAdvance))
				_ = table.Append("Charges", strconv.Itoa(len(plan.Charges)))
				_ = table.Append("Created", formatTime(plan.CreatedAt))
			})
		},
	}
}
