package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// CustomersClient implements lago.CustomersClient.
type CustomersClient struct {
	httpClient *http.Client
}

// NewCustomersClient creates a new customers client.
func NewCustomersClient(httpClient *http.Client) *CustomersClient {
	return &CustomersClient{
		httpClient: httpClient,
	}
}

// Create implements lago.CustomersClient.Create. Lago upserts on external_id.
func (c *CustomersClient) Create(ctx context.Context, input *lago.CustomerInput) (*lago.Customer, error) {
	err := requireInput(input, "customer")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/customers", wrap("customer", input))
	if err != nil {
		return nil, fmt.Errorf("creating customer: %w", err)
	}

	customer, err := decodeRoot[lago.Customer](resp, "customer")
	if err != nil {
		return nil, fmt.Errorf("parsing customer response: %w", err)
	}

	return customer, nil
}

// Get implements lago.CustomersClient.Get.
func (c *CustomersClient) Get(ctx context.Context, externalID string) (*lago.Customer, error) {
	path, err := resourcePath("customers", externalID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting customer: %w", err)
	}

	customer, err := decodeRoot[lago.Customer](resp, "customer")
	if err != nil {
		return nil, fmt.Errorf("parsing customer: %w", err)
	}

	return customer, nil
}

// List implements lago.CustomersClient.List.
func (c *CustomersClient) List(ctx context.Context, filter *lago.CustomerFilter) (*lago.ListResponse[lago.Customer], error) {
	resp, err := c.httpClient.Get(ctx, "/customers", queryOf(filter))
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	list, err := decodeList[lago.Customer](resp, "customers")
	if err != nil {
		return nil, fmt.Errorf("parsing customers list: %w", err)
	}

	return list, nil
}

// Delete implements lago.CustomersClient.Delete.
func (c *CustomersClient) Delete(ctx context.Context, externalID string) (*lago.Customer, error) {
	path, err := resourcePath("customers", externalID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("deleting customer: %w", err)
	}

	customer, err := decodeRoot[lago.Customer](resp, "customer")
	if err != nil {
		return nil, fmt.Errorf("parsing deleted customer: %w", err)
	}

	return customer, nil
}

// CurrentUsage implements lago.CustomersClient.CurrentUsage.
func (c *CustomersClient) CurrentUsage(ctx context.Context, externalCustomerID, externalSubscriptionID string) (*lago.CustomerUsage, error) {
	path, err := resourcePath("customers", externalCustomerID, "current_usage")
	if err != nil {
		return nil, err
	}

	query := lago.Params{}.Add("external_subscription_id", externalSubscriptionID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting current usage: %w", err)
	}

	usage, err := decodeRoot[lago.CustomerUsage](resp, "customer_usage")
	if err != nil {
		return nil, fmt.Errorf("parsing current usage: %w", err)
	}

	return usage, nil
}

type portalURL struct {
	PortalURL string `json:"portal_url"`
}

// PortalURL implements lago.CustomersClient.PortalURL.
func (c *CustomersClient) PortalURL(ctx context.Context, externalID string) (string, error) {
	path, err := resourcePath("customers", externalID, "portal_url")
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return "", fmt.Errorf("getting customer portal url: %w", err)
	}

	portal, err := decodeRoot[portalURL](resp, "customer")
	if err != nil {
		return "", fmt.Errorf("parsing customer portal url: %w", err)
	}

	return portal.PortalURL, nil
}
