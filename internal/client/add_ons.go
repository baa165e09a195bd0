package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// AddOnsClient implements lago.AddOnsClient.
type AddOnsClient struct {
	httpClient *http.Client
}

// NewAddOnsClient creates a new add-ons client.
func NewAddOnsClient(httpClient *http.Client) *AddOnsClient {
	return &AddOnsClient{
		httpClient: httpClient,
	}
}

// Create implements lago.AddOnsClient.Create.
func (c *AddOnsClient) Create(ctx context.Context, input *lago.AddOnInput) (*lago.AddOn, error) {
	err := requireInput(input, "add_on")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/add_ons", wrap("add_on", input))
	if err != nil {
		return nil, fmt.Errorf("creating add-on: %w", err)
	}

	addOn, err := decodeRoot[lago.AddOn](resp, "add_on")
	if err != nil {
		return nil, fmt.Errorf("parsing add-on response: %w", err)
	}

	return addOn, nil
}

// Get implements lago.AddOnsClient.Get.
func (c *AddOnsClient) Get(ctx context.Context, code string) (*lago.AddOn, error) {
	path, err := resourcePath("add_ons", code)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting add-on: %w", err)
	}

	addOn, err := decodeRoot[lago.AddOn](resp, "add_on")
	if err != nil {
		return nil, fmt.Errorf("parsing add-on: %w", err)
	}

	return addOn, nil
}

// List implements lago.AddOnsClient.List.
func (c *AddOnsClient) List(ctx context.Context, opts *lago.ListOptions) (*lago.ListResponse[lago.AddOn], error) {
	resp, err := c.httpClient.Get(ctx, "/add_ons", queryOf(opts))
	if err != nil {
		return nil, fmt.Errorf("listing add-ons: %w", err)
	}

	list, err := decodeList[lago.AddOn](resp, "add_ons")
	if err != nil {
		return nil, fmt.Errorf("parsing add-ons list: %w", err)
	}

	return list, nil
}

// Delete implements lago.AddOnsClient.Delete.
func (c *AddOnsClient) Delete(ctx context.Context, code string) (*lago.AddOn, error) {
	path, err := resourcePath("add_ons", code)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("deleting add-on: %w", err)
	}

	addOn, err := decodeRoot[lago.AddOn](resp, "add_on")
	if err != nil {
		return nil, fmt.Errorf("parsing deleted add-on: %w", err)
	}

	return addOn, nil
}
