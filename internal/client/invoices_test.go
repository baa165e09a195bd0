package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

func invoiceBody(status string) map[string]interface{} {
	return map[string]interface{}{
		"invoice": map[string]interface{}{
			"lago_id":            "inv_1",
			"number":             "LAG-1234-001-002",
			"status":             status,
			"payment_status":     "pending",
			"currency":           "EUR",
			"total_amount_cents": 2000,
			"file_url":           "https://getlago.com/invoice/file",
			"created_at":         "2022-04-29T08:59:51Z",
		},
	}
}

func TestInvoicesClient_Get(t *testing.T) {
	t.Parallel()

	tests := []TestGetOperation[lago.Invoice]{
		{
			Name:         "existing invoice",
			ID:           "inv_1",
			ExpectedPath: "/invoices/inv_1",
			StatusCode:   http.StatusOK,
			Response:     invoiceBody("finalized"),
			Check: func(t *testing.T, invoice *lago.Invoice) {
				t.Helper()
				assert.Equal(t, "LAG-1234-001-002", invoice.Number)
				assert.Equal(t, int64(2000), invoice.TotalAmountCents)
			},
		},
		{
			Name:       "server error",
			ID:         "inv_1",
			StatusCode: http.StatusInternalServerError,
			Response:   map[string]interface{}{"status": 500, "error": "Internal Server Error"},
			WantErr:    true,
			ErrKind:    lago.ErrorKindAPI,
		},
	}

	RunGetTests(t, tests, func(c *Client) func(context.Context, string) (*lago.Invoice, error) {
		return c.Invoices().Get
	})
}

func TestInvoicesClient_Actions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		call         func(lago.InvoicesClient) (*lago.Invoice, error)
		expectedVerb string
		expectedPath string
		status       string
	}{
		{
			name:         "finalize",
			call:         func(c lago.InvoicesClient) (*lago.Invoice, error) { return c.Finalize(context.Background(), "inv_1") },
			expectedVerb: http.MethodPut,
			expectedPath: "/invoices/inv_1/finalize",
			status:       "finalized",
		},
		{
			name:         "void",
			call:         func(c lago.InvoicesClient) (*lago.Invoice, error) { return c.Void(context.Background(), "inv_1") },
			expectedVerb: http.MethodPost,
			expectedPath: "/invoices/inv_1/void",
			status:       "voided",
		},
		{
			name:         "refresh",
			call:         func(c lago.InvoicesClient) (*lago.Invoice, error) { return c.Refresh(context.Background(), "inv_1") },
			expectedVerb: http.MethodPut,
			expectedPath: "/invoices/inv_1/refresh",
			status:       "draft",
		},
		{
			name:         "download",
			call:         func(c lago.InvoicesClient) (*lago.Invoice, error) { return c.Download(context.Background(), "inv_1") },
			expectedVerb: http.MethodPost,
			expectedPath: "/invoices/inv_1/download",
			status:       "finalized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var captured CapturedRequest

			server := NewJSONServer(t, http.StatusOK, invoiceBody(tt.status), &captured)
			client := NewTestClient(t, server.URL)

			invoice, err := tt.call(client.Invoices())
			require.NoError(t, err)
			require.NotNil(t, invoice)

			assert.Equal(t, tt.expectedVerb, captured.Method)
			assert.Equal(t, tt.expectedPath, captured.Path)
			assert.Nil(t, captured.Body)
			assert.Equal(t, tt.status, invoice.Status)
		})
	}
}

func TestInvoicesClient_Download_Pending(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoices/inv_1/download", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	invoice, err := client.Invoices().Download(context.Background(), "inv_1")
	require.NoError(t, err)
	assert.Nil(t, invoice)
}

func TestInvoicesClient_Update(t *testing.T) {
	t.Parallel()

	var captured CapturedRequest

	server := NewJSONServer(t, http.StatusOK, invoiceBody("finalized"), &captured)
	client := NewTestClient(t, server.URL)

	invoice, err := client.Invoices().Update(context.Background(), "inv_1", &lago.InvoiceUpdateInput{
		PaymentStatus: "succeeded",
	})
	require.NoError(t, err)
	require.NotNil(t, invoice)

	assert.Equal(t, http.MethodPut, captured.Method)
	assert.Equal(t, "/invoices/inv_1", captured.Path)
	assert.JSONEq(t, `{"payment_status":"succeeded"}`, string(captured.Body["invoice"]))
}

func TestInvoicesClient_RetryPayment(t *testing.T) {
	t.Parallel()

	var captured CapturedRequest

	server := NewJSONServer(t, http.StatusOK, nil, &captured)
	client := NewTestClient(t, server.URL)

	err := client.Invoices().RetryPayment(context.Background(), "inv_1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "/invoices/inv_1/retry_payment", captured.Path)
}

func TestInvoicesClient_List(t *testing.T) {
	t.Parallel()

	var captured CapturedRequest

	server := NewJSONServer(t, http.StatusOK, map[string]interface{}{
		"invoices": []map[string]interface{}{{"lago_id": "inv_1", "created_at": "2022-04-29T08:59:51Z"}},
		"meta":     map[string]interface{}{"current_page": 1, "total_pages": 1, "total_count": 1},
	}, &captured)
	client := NewTestClient(t, server.URL)

	list, err := client.Invoices().List(context.Background(), &lago.InvoiceFilter{
		ExternalCustomerID: lago.Ptr("cus_1"),
		Statuses:           []string{"finalized"},
		PaymentOverdue:     lago.Ptr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "external_customer_id=cus_1&status%5B%5D=finalized&payment_overdue=true", captured.RawQuery)
	require.Len(t, list.Items, 1)
	assert.Nil(t, list.Meta.NextPage)
}
