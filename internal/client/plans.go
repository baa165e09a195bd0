package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// PlansClient implements lago.PlansClient.
type PlansClient struct {
	httpClient *http.Client
}

// NewPlansClient creates a new plans client.
func NewPlansClient(httpClient *http.Client) *PlansClient {
	return &PlansClient{
		httpClient: httpClient,
	}
}

// Create implements lago.PlansClient.Create.
func (c *PlansClient) Create(ctx context.Context, input *lago.PlanInput) (*lago.Plan, error) {
	err := requireInput(input, "plan")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/plans", wrap("plan", input))
	if err != nil {
		return nil, fmt.Errorf("creating plan: %w", err)
	}

	plan, err := decodeRoot[lago.Plan](resp, "plan")
	if err != nil {
		return nil, fmt.Errorf("parsing plan response: %w", err)
	}

	return plan, nil
}

// Get implements lago.PlansClient.Get.
func (c *PlansClient) Get(ctx context.Context, code string) (*lago.Plan, error) {
	path, err := resourcePath("plans", code)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting plan: %w", err)
	}

	plan, err := decodeRoot[lago.Plan](resp, "plan")
	if err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}

	return plan, nil
}

// List implements lago.PlansClient.List.
func (c *PlansClient) List(ctx context.Context, opts *lago.ListOptions) (*lago.ListResponse[lago.Plan], error) {
	resp, err := c.httpClient.Get(ctx, "/plans", queryOf(opts))
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}

	list, err := decodeList[lago.Plan](resp, "plans")
	if err != nil {
		return nil, fmt.Errorf("parsing plans list: %w", err)
	}

	return list, nil
}

// Update implements lago.PlansClient.Update.
func (c *PlansClient) Update(ctx context.Context, code string, input *lago.PlanInput) (*lago.Plan, error) {
	err := requireInput(input, "plan")
	if err != nil {
		return nil, err
	}

	path, err := resourcePath("plans", code)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, path, wrap("plan", input))
	if err != nil {
		return nil, fmt.Errorf("updating plan: %w", err)
	}

	plan, err := decodeRoot[lago.Plan](resp, "plan")
	if err != nil {
		return nil, fmt.Errorf("parsing plan response: %w", err)
	}

	return plan, nil
}

// Delete implements lago.PlansClient.Delete.
func (c *PlansClient) Delete(ctx context.Context, code string) (*lago.Plan, error) {
	path, err := resourcePath("plans", code)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("deleting plan: %w", err)
	}

	plan, err := decodeRoot[lago.Plan](resp, "plan")
	if err != nil {
		return nil, fmt.Errorf("parsing deleted plan: %w", err)
	}

	return plan, nil
}
