package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lago-client/internal/constants"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// NewEventsCommand creates the events command group.
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event"},
		Short:   "Send usage events",
		Long:    "Send usage events to Lago",
	}

	cmd.AddCommand(newEventsSendCommand())

	return cmd
}

func newEventsSendCommand() *cobra.Command {
	var (
		subscription  string
		code          string
		transactionID string
		timestamp     string
		properties    []string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a usage event",
		Long: `Send a single usage event. Properties are key=value pairs; values that
parse as JSON numbers or booleans are sent as such.`,
		Example: `  lago events send --subscription sub_1 --code api_calls --property calls=3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := parseProperties(properties)
			if err != nil {
				return err
			}

			input := &lago.EventInput{
				TransactionID:          transactionID,
				ExternalSubscriptionID: subscription,
				Code:                   code,
				Properties:             props,
			}

			if timestamp != "" {
				ts, err := time.Parse(time.RFC3339, timestamp)
				if err != nil {
					return fmt.Errorf("invalid --timestamp, expected RFC3339: %w", err)
				}

				input.Timestamp = lago.Ptr(ts.Unix())
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			event, err := client.Events().Create(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("failed to send event: %w", err)
			}

			return render(cmd, event, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Transaction ID", event.TransactionID)
				_ = table.Append("Subscription", event.ExternalSubscriptionID)
				_ = table.Append("Code", event.Code)
				_ = table.Append("Timestamp", formatTime(event.Timestamp))
			})
		},
	}

	cmd.Flags().StringVar(&subscription, "subscription", "", "external subscription id")
	cmd.Flags().StringVar(&code, "code", "", "billable metric code")
	cmd.Flags().StringVar(&transactionID, "transaction-id", "", "idempotency key (generated when empty)")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "event time in RFC3339 (defaults to reception time)")
	cmd.Flags().StringArrayVarP(&properties, "property", "p", nil, "event property as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("subscription")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func parseProperties(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil //nolint:nilnil
	}

	props := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidProperties, pair)
		}

		var parsed any
		if err := json.Unmarshal([]byte(value), &parsed); err == nil {
			switch parsed.(type) {
			case float64, bool:
				props[key] = parsed

				continue
			}
		}

		props[key] = value
	}

	return props, nil
}
