package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// FeesClient implements lago.FeesClient.
type FeesClient struct {
	httpClient *http.Client
}

// NewFeesClient creates a new fees client.
func NewFeesClient(httpClient *http.Client) *FeesClient {
	return &FeesClient{
		httpClient: httpClient,
	}
}

// Get implements lago.FeesClient.Get.
func (c *FeesClient) Get(ctx context.Context, id string) (*lago.Fee, error) {
	path, err := resourcePath("fees", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting fee: %w", err)
	}

	fee, err := decodeRoot[lago.Fee](resp, "fee")
	if err != nil {
		return nil, fmt.Errorf("parsing fee: %w", err)
	}

	return fee, nil
}

// List implements lago.FeesClient.List.
func (c *FeesClient) List(ctx context.Context, filter *lago.FeeFilter) (*lago.ListResponse[lago.Fee], error) {
	resp, err := c.httpClient.Get(ctx, "/fees", queryOf(filter))
	if err != nil {
		return nil, fmt.Errorf("listing fees: %w", err)
	}

	list, err := decodeList[lago.Fee](resp, "fees")
	if err != nil {
		return nil, fmt.Errorf("parsing fees list: %w", err)
	}

	return list, nil
}
