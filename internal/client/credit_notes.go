package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// CreditNotesClient implements lago.CreditNotesClient.
type CreditNotesClient struct {
	httpClient *http.Client
}

// NewCreditNotesClient creates a new credit notes client.
func NewCreditNotesClient(httpClient *http.Client) *CreditNotesClient {
	return &CreditNotesClient{
		httpClient: httpClient,
	}
}

// Create implements lago.CreditNotesClient.Create.
func (c *CreditNotesClient) Create(ctx context.Context, input *lago.CreditNoteInput) (*lago.CreditNote, error) {
	err := requireInput(input, "credit_note")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/credit_notes", wrap("credit_note", input))
	if err != nil {
		return nil, fmt.Errorf("creating credit note: %w", err)
	}

	note, err := decodeRoot[lago.CreditNote](resp, "credit_note")
	if err != nil {
		return nil, fmt.Errorf("parsing credit note response: %w", err)
	}

	return note, nil
}

// Get implements lago.CreditNotesClient.Get.
func (c *CreditNotesClient) Get(ctx context.Context, id string) (*lago.CreditNote, error) {
	path, err := resourcePath("credit_notes", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting credit note: %w", err)
	}

	note, err := decodeRoot[lago.CreditNote](resp, "credit_note")
	if err != nil {
		return nil, fmt.Errorf("parsing credit note: %w", err)
	}

	return note, nil
}

// List implements lago.CreditNotesClient.List.
func (c *CreditNotesClient) List(ctx context.Context, filter *lago.CreditNoteFilter) (*lago.ListResponse[lago.CreditNote], error) {
	resp, err := c.httpClient.Get(ctx, "/credit_notes", queryOf(filter))
	if err != nil {
		return nil, fmt.Errorf("listing credit notes: %w", err)
	}

	list, err := decodeList[lago.CreditNote](resp, "credit_notes")
	if err != nil {
		return nil, fmt.Errorf("parsing credit notes list: %w", err)
	}

	return list, nil
}

// Void implements lago.CreditNotesClient.Void.
func (c *CreditNotesClient) Void(ctx context.Context, id string) (*lago.CreditNote, error) {
	path, err := resourcePath("credit_notes", id, "void")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("voiding credit note: %w", err)
	}

	note, err := decodeRoot[lago.CreditNote](resp, "credit_note")
	if err != nil {
		return nil, fmt.Errorf("parsing voided credit note: %w", err)
	}

	return note, nil
}
