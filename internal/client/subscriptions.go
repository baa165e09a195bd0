package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// SubscriptionsClient implements lago.SubscriptionsClient.
type SubscriptionsClient struct {
	httpClient *http.Client
}

// NewSubscriptionsClient creates a new subscriptions client.
func NewSubscriptionsClient(httpClient *http.Client) *SubscriptionsClient {
	return &SubscriptionsClient{
		httpClient: httpClient,
	}
}

// Create implements lago.SubscriptionsClient.Create.
func (c *SubscriptionsClient) Create(ctx context.Context, input *lago.SubscriptionInput) (*lago.Subscription, error) {
	err := requireInput(input, "subscription")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/subscriptions", wrap("subscription", input))
	if err != nil {
		return nil, fmt.Errorf("creating subscription: %w", err)
	}

	subscription, err := decodeRoot[lago.Subscription](resp, "subscription")
	if err != nil {
		return nil, fmt.Errorf("parsing subscription response: %w", err)
	}

	return subscription, nil
}

// Get implements lago.SubscriptionsClient.Get.
func (c *SubscriptionsClient) Get(ctx context.Context, externalID string) (*lago.Subscription, error) {
	path, err := resourcePath("subscriptions", externalID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting subscription: %w", err)
	}

	subscription, err := decodeRoot[lago.Subscription](resp, "subscription")
	if err != nil {
		return nil, fmt.Errorf("parsing subscription: %w", err)
	}

	return subscription, nil
}

// List implements lago.SubscriptionsClient.List.
func (c *SubscriptionsClient) List(ctx context.Context, filter *lago.SubscriptionFilter) (*lago.ListResponse[lago.Subscription], error) {
	resp, err := c.httpClient.Get(ctx, "/subscriptions", queryOf(filter))
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}

	list, err := decodeList[lago.Subscription](resp, "subscriptions")
	if err != nil {
		return nil, fmt.Errorf("parsing subscriptions list: %w", err)
	}

	return list, nil
}

// Update implements lago.SubscriptionsClient.Update.
func (c *SubscriptionsClient) Update(ctx context.Context, externalID string, input *lago.SubscriptionInput) (*lago.Subscription, error) {
	err := requireInput(input, "subscription")
	if err != nil {
		return nil, err
	}

	path, err := resourcePath("subscriptions", externalID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, path, wrap("subscription", input))
	if err != nil {
		return nil, fmt.Errorf("updating subscription: %w", err)
	}

	subscription, err := decodeRoot[lago.Subscription](resp, "subscription")
	if err != nil {
		return nil, fmt.Errorf("parsing subscription response: %w", err)
	}

	return subscription, nil
}

// Terminate implements lago.SubscriptionsClient.Terminate.
func (c *SubscriptionsClient) Terminate(ctx context.Context, externalID string) (*lago.Subscription, error) {
	path, err := resourcePath("subscriptions", externalID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("terminating subscription: %w", err)
	}

	subscription, err := decodeRoot[lago.Subscription](resp, "subscription")
	if err != nil {
		return nil, fmt.Errorf("parsing terminated subscription: %w", err)
	}

	return subscription, nil
}
