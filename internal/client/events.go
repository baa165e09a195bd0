package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
	"github.com/google/uuid"
)

// EventsClient implements lago.EventsClient.
type EventsClient struct {
	httpClient *http.Client
	newID      func() string
}

// NewEventsClient creates a new events client.
func NewEventsClient(httpClient *http.Client) *EventsClient {
	return &EventsClient{
		httpClient: httpClient,
		newID:      uuid.NewString,
	}
}

// Create implements lago.EventsClient.Create. An empty transaction_id is
// replaced with a random UUID so retried posts stay idempotent.
func (c *EventsClient) Create(ctx context.Context, input *lago.EventInput) (*lago.Event, error) {
	err := requireInput(input, "event")
	if err != nil {
		return nil, err
	}

	event, err := c.prepare(*input)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/events", wrap("event", event))
	if err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}

	created, err := decodeRoot[lago.Event](resp, "event")
	if err != nil {
		return nil, fmt.Errorf("parsing event response: %w", err)
	}

	return created, nil
}

// BatchCreate implements lago.EventsClient.BatchCreate.
func (c *EventsClient) BatchCreate(ctx context.Context, inputs []lago.EventInput) ([]lago.Event, error) {
	events := make([]lago.EventInput, 0, len(inputs))

	for _, input := range inputs {
		event, err := c.prepare(input)
		if err != nil {
			return nil, err
		}

		events = append(events, event)
	}

	resp, err := c.httpClient.Post(ctx, "/events/batch", wrap("events", events))
	if err != nil {
		return nil, fmt.Errorf("creating event batch: %w", err)
	}

	created, err := decodeRoot[[]lago.Event](resp, "events")
	if err != nil {
		return nil, fmt.Errorf("parsing event batch response: %w", err)
	}

	return *created, nil
}

// Get implements lago.EventsClient.Get.
func (c *EventsClient) Get(ctx context.Context, transactionID string) (*lago.Event, error) {
	path, err := resourcePath("events", transactionID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting event: %w", err)
	}

	event, err := decodeRoot[lago.Event](resp, "event")
	if err != nil {
		return nil, fmt.Errorf("parsing event: %w", err)
	}

	return event, nil
}

// List implements lago.EventsClient.List.
func (c *EventsClient) List(ctx context.Context, filter *lago.EventFilter) (*lago.ListResponse[lago.Event], error) {
	resp, err := c.httpClient.Get(ctx, "/events", queryOf(filter))
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	list, err := decodeList[lago.Event](resp, "events")
	if err != nil {
		return nil, fmt.Errorf("parsing events list: %w", err)
	}

	return list, nil
}

func (c *EventsClient) prepare(event lago.EventInput) (lago.EventInput, error) {
	if strings.TrimSpace(event.Code) == "" {
		return event, lago.NewConfigurationError(lago.ErrEmptyEventCode)
	}

	if event.TransactionID == "" {
		event.TransactionID = c.newID()
	}

	return event, nil
}
