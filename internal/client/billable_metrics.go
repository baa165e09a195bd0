package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// BillableMetricsClient implements lago.BillableMetricsClient.
type BillableMetricsClient struct {
	httpClient *http.Client
}

// NewBillableMetricsClient creates a new billable metrics client.
func NewBillableMetricsClient(httpClient *http.Client) *BillableMetricsClient {
	return &BillableMetricsClient{
		httpClient: httpClient,
	}
}

// Create implements lago.BillableMetricsClient.Create.
func (c *BillableMetricsClient) Create(ctx context.Context, input *lago.BillableMetricInput) (*lago.BillableMetric, error) {
	err := requireInput(input, "billable_metric")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/billable_metrics", wrap("billable_metric", input))
	if err != nil {
		return nil, fmt.Errorf("creating billable metric: %w", err)
	}

	metric, err := decodeRoot[lago.BillableMetric](resp, "billable_metric")
	if err != nil {
		return nil, fmt.Errorf("parsing billable metric response: %w", err)
	}

	return metric, nil
}

// Get implements lago.BillableMetricsClient.Get.
func (c *BillableMetricsClient) Get(ctx context.Context, code string) (*lago.BillableMetric, error) {
	path, err := resourcePath("billable_metrics", code)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting billable metric: %w", err)
	}

	metric, err := decodeRoot[lago.BillableMetric](resp, "billable_metric")
	if err != nil {
		return nil, fmt.Errorf("parsing billable metric: %w", err)
	}

	return metric, nil
}

// List implements lago.BillableMetricsClient.List.
func (c *BillableMetricsClient) List(ctx context.Context, opts *lago.ListOptions) (*lago.ListResponse[lago.BillableMetric], error) {
	resp, err := c.httpClient.Get(ctx, "/billable_metrics", queryOf(opts))
	if err != nil {
		return nil, fmt.Errorf("listing billable metrics: %w", err)
	}

	list, err := decodeList[lago.BillableMetric](resp, "billable_metrics")
	if err != nil {
		return nil, fmt.Errorf("parsing billable metrics list: %w", err)
	}

	return list, nil
}

// Update implements lago.BillableMetricsClient.Update.
func (c *BillableMetricsClient) Update(ctx context.Context, code string, input *lago.BillableMetricInput) (*lago.BillableMetric, error) {
	err := requireInput(input, "billable_metric")
	if err != nil {
		return nil, err
	}

	path, err := resourcePath("billable_metrics", code)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, path, wrap("billable_metric", input))
	if err != nil {
		return nil, fmt.Errorf("updating billable metric: %w", err)
	}

	metric, err := decodeRoot[lago.BillableMetric](resp, "billable_metric")
	if err != nil {
		return nil, fmt.Errorf("parsing billable metric response: %w", err)
	}

	return metric, nil
}

// Delete implements lago.BillableMetricsClient.Delete.
func (c *BillableMetricsClient) Delete(ctx context.Context, code string) (*lago.BillableMetric, error) {
	path, err := resourcePath("billable_metrics", code)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("deleting billable metric: %w", err)
	}

	metric, err := decodeRoot[lago.BillableMetric](resp, "billable_metric")
	if err != nil {
		return nil, fmt.Errorf("parsing deleted billable metric: %w", err)
	}

	return metric, nil
}
