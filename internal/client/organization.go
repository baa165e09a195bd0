package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// OrganizationClient implements lago.OrganizationClient.
type OrganizationClient struct {
	httpClient *http.Client
}

// NewOrganizationClient creates a new organization client.
func NewOrganizationClient(httpClient *http.Client) *OrganizationClient {
	return &OrganizationClient{
		httpClient: httpClient,
	}
}

// Update implements lago.OrganizationClient.Update.
func (c *OrganizationClient) Update(ctx context.Context, input *lago.OrganizationInput) (*lago.Organization, error) {
	err := requireInput(input, "organization")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, "/organizations", wrap("organization", input))
	if err != nil {
		return nil, fmt.Errorf("updating organization: %w", err)
	}

	organization, err := decodeRoot[lago.Organization](resp, "organization")
	if err != nil {
		return nil, fmt.Errorf("parsing organization response: %w", err)
	}

	return organization, nil
}
