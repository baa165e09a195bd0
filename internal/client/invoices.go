package client

import (
	"bytes"
	"context"
	"fmt"

	"github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// InvoicesClient implements lago.InvoicesClient.
type InvoicesClient struct {
	httpClient *http.Client
}

// NewInvoicesClient creates a new invoices client.
func NewInvoicesClient(httpClient *http.Client) *InvoicesClient {
	return &InvoicesClient{
		httpClient: httpClient,
	}
}

// Get implements lago.InvoicesClient.Get.
func (c *InvoicesClient) Get(ctx context.Context, id string) (*lago.Invoice, error) {
	path, err := resourcePath("invoices", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	invoice, err := decodeRoot[lago.Invoice](resp, "invoice")
	if err != nil {
		return nil, fmt.Errorf("parsing invoice: %w", err)
	}

	return invoice, nil
}

// List implements lago.InvoicesClient.List.
func (c *InvoicesClient) List(ctx context.Context, filter *lago.InvoiceFilter) (*lago.ListResponse[lago.Invoice], error) {
	resp, err := c.httpClient.Get(ctx, "/invoices", queryOf(filter))
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	list, err := decodeList[lago.Invoice](resp, "invoices")
	if err != nil {
		return nil, fmt.Errorf("parsing invoices list: %w", err)
	}

	return list, nil
}

// Update implements lago.InvoicesClient.Update.
func (c *InvoicesClient) Update(ctx context.Context, id string, input *lago.InvoiceUpdateInput) (*lago.Invoice, error) {
	err := requireInput(input, "invoice")
	if err != nil {
		return nil, err
	}

	path, err := resourcePath("invoices", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, path, wrap("invoice", input))
	if err != nil {
		return nil, fmt.Errorf("updating invoice: %w", err)
	}

	invoice, err := decodeRoot[lago.Invoice](resp, "invoice")
	if err != nil {
		return nil, fmt.Errorf("parsing invoice response: %w", err)
	}

	return invoice, nil
}

// Finalize implements lago.InvoicesClient.Finalize.
func (c *InvoicesClient) Finalize(ctx context.Context, id string) (*lago.Invoice, error) {
	return c.action(ctx, id, "finalize", c.httpClient.Put, "finalizing invoice")
}

// Void implements lago.InvoicesClient.Void.
func (c *InvoicesClient) Void(ctx context.Context, id string) (*lago.Invoice, error) {
	return c.action(ctx, id, "void", c.httpClient.Post, "voiding invoice")
}

// Refresh implements lago.InvoicesClient.Refresh.
func (c *InvoicesClient) Refresh(ctx context.Context, id string) (*lago.Invoice, error) {
	return c.action(ctx, id, "refresh", c.httpClient.Put, "refreshing invoice")
}

// Download implements lago.InvoicesClient.Download. Lago answers with an
// empty body while the PDF is still being generated; Download then returns
// nil and no error.
func (c *InvoicesClient) Download(ctx context.Context, id string) (*lago.Invoice, error) {
	path, err := resourcePath("invoices", id, "download")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("downloading invoice: %w", err)
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, nil //nolint:nilnil // generation is asynchronous
	}

	invoice, err := decodeRoot[lago.Invoice](resp, "invoice")
	if err != nil {
		return nil, fmt.Errorf("parsing invoice response: %w", err)
	}

	return invoice, nil
}

// RetryPayment implements lago.InvoicesClient.RetryPayment.
func (c *InvoicesClient) RetryPayment(ctx context.Context, id string) error {
	path, err := resourcePath("invoices", id, "retry_payment")
	if err != nil {
		return err
	}

	_, err = c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("retrying invoice payment: %w", err)
	}

	return nil
}

type sendFunc func(ctx context.Context, path string, body interface{}) (*http.Response, error)

func (c *InvoicesClient) action(ctx context.Context, id, action string, send sendFunc, operation string) (*lago.Invoice, error) {
	path, err := resourcePath("invoices", id, action)
	if err != nil {
		return nil, err
	}

	resp, err := send(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	invoice, err := decodeRoot[lago.Invoice](resp, "invoice")
	if err != nil {
		return nil, fmt.Errorf("parsing invoice response: %w", err)
	}

	return invoice, nil
}
