package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// NewSubscriptionsCommand creates the subscriptions command group.
func NewSubscriptionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subscription", "sub"},
		Short:   "Manage subscriptions",
		Long:    "List and terminate Lago subscriptions",
	}

	cmd.AddCommand(newSubscriptionsListCommand())
	cmd.AddCommand(newSubscriptionsTerminateCommand())

	return cmd
}

func newSubscriptionsListCommand() *cobra.Command {
	var (
		pages    pageFlags
		customer string
		planCode string
		statuses []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		Long:  "List subscriptions, optionally filtered by customer, plan and status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			subscriptions, err := list(cmd.Context(), &pages,
				func(ctx context.Context, page int) (*lago.ListResponse[lago.Subscription], error) {
					filter := &lago.SubscriptionFilter{
						Pagination: pages.pagination(page),
						Statuses:   statuses,
					}
					if customer != "" {
						filter.ExternalCustomerID = &customer
					}

					if planCode != "" {
						filter.PlanCode = &planCode
					}

					return client.Subscriptions().List(ctx, filter)
				})
			if err != nil {
				return fmt.Errorf("failed to list subscriptions: %w", err)
			}

			return renderList(cmd, subscriptions, "subscriptions",
				[]any{"External ID", "Customer", "Plan", "Status", "Started", "Ending"},
				func(s lago.Subscription) []any {
					return []any{
						s.ExternalID, s.ExternalCustomerID, s.PlanCode, s.Status,
						formatTimePtr(s.StartedAt), formatTimePtr(s.EndingAt),
					}
				})
		},
	}

	pages.register(cmd)
	cmd.Flags().StringVar(&customer, "customer", "", "filter by external customer id")
	cmd.Flags().StringVar(&planCode, "plan", "", "filter by plan code")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "filter by status: active, pending, canceled, terminated (repeatable)")

	return cmd
}

func newSubscriptionsTerminateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "terminate EXTERNAL_ID",
		Short: "Terminate a subscription",
		Long:  "Terminate a subscription immediately",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			subscription, err := client.Subscriptions().Terminate(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to terminate subscription: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Terminated subscription %s (%s)\n",
				subscription.ExternalID, subscription.Status)

			return nil
		},
	}
}
