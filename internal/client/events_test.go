package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

func eventBody(transactionID string) map[string]interface{} {
	return map[string]interface{}{
		"event": map[string]interface{}{
			"lago_id":                  "evt_1",
			"transaction_id":           transactionID,
			"external_subscription_id": "sub_1",
			"code":                     "api_calls",
			"timestamp":                "2022-04-29T08:59:51Z",
			"created_at":               "2022-04-29T08:59:51Z",
		},
	}
}

func TestEventsClient_Create(t *testing.T) {
	t.Parallel()

	var captured CapturedRequest

	server := NewJSONServer(t, http.StatusOK, eventBody("tx_1"), &captured)
	client := NewTestClient(t, server.URL)

	event, err := client.Events().Create(context.Background(), &lago.EventInput{
		TransactionID:          "tx_1",
		ExternalSubscriptionID: "sub_1",
		Code:                   "api_calls",
		Timestamp:              lago.Ptr(int64(1651222791)),
		Properties:             map[string]any{"region": "eu"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "/events", captured.Path)
	assert.JSONEq(t, `{
		"transaction_id": "tx_1",
		"external_subscription_id": "sub_1",
		"code": "api_calls",
		"timestamp": 1651222791,
		"properties": {"region": "eu"}
	}`, string(captured.Body["event"]))
	assert.Equal(t, "tx_1", event.TransactionID)
}

func TestEventsClient_Create_GeneratesTransactionID(t *testing.T) {
	t.Parallel()

	var captured CapturedRequest

	server := NewJSONServer(t, http.StatusOK, eventBody("generated"), &captured)
	client := NewTestClient(t, server.URL)

	input := &lago.EventInput{ExternalSubscriptionID: "sub_1", Code: "api_calls"}

	_, err := client.Events().Create(context.Background(), input)
	require.NoError(t, err)

	var sent lago.EventInput

	require.NoError(t, json.Unmarshal(captured.Body["event"], &sent))
	assert.Len(t, sent.TransactionID, 36)
	assert.Empty(t, input.TransactionID, "caller input must not be mutated")
}

func TestEventsClient_Create_EmptyCode(t *testing.T) {
	t.Parallel()

	var captured CapturedRequest

	server := NewJSONServer(t, http.StatusOK, eventBody("tx_1"), &captured)
	client := NewTestClient(t, server.URL)

	_, err := client.Events().Create(context.Background(), &lago.EventInput{ExternalSubscriptionID: "sub_1"})
	require.Error(t, err)
	require.ErrorIs(t, err, lago.ErrEmptyEventCode)
	assert.True(t, lago.IsKind(err, lago.ErrorKindConfiguration))
	assert.Empty(t, captured.Method, "request must not be sent")
}

func TestEventsClient_BatchCreate(t *testing.T) {
	t.Parallel()

	var captured CapturedRequest

	server := NewJSONServer(t, http.StatusOK, map[string]interface{}{
		"events": []map[string]interface{}{
			{"transaction_id": "tx_1", "code": "api_calls", "created_at": "2022-04-29T08:59:51Z"},
			{"transaction_id": "tx_2", "code": "storage", "created_at": "2022-04-29T08:59:51Z"},
		},
	}, &captured)
	client := NewTestClient(t, server.URL)

	events, err := client.Events().BatchCreate(context.Background(), []lago.EventInput{
		{TransactionID: "tx_1", ExternalSubscriptionID: "sub_1", Code: "api_calls"},
		{ExternalSubscriptionID: "sub_1", Code: "storage"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/events/batch", captured.Path)

	var sent []lago.EventInput

	require.NoError(t, json.Unmarshal(captured.Body["events"], &sent))
	require.Len(t, sent, 2)
	assert.Equal(t, "tx_1", sent[0].TransactionID)
	assert.NotEmpty(t, sent[1].TransactionID)
	require.Len(t, events, 2)
	assert.Equal(t, "storage", events[1].Code)
}

func TestEventsClient_BatchCreate_RejectsEmptyCode(t *testing.T) {
	t.Parallel()

	var captured CapturedRequest

	server := NewJSONServer(t, http.StatusOK, nil, &captured)
	client := NewTestClient(t, server.URL)

	_, err := client.Events().BatchCreate(context.Background(), []lago.EventInput{
		{Code: "api_calls"},
		{Code: ""},
	})
	require.ErrorIs(t, err, lago.ErrEmptyEventCode)
	assert.Empty(t, captured.Method)
}

func TestEventsClient_Get(t *testing.T) {
	t.Parallel()

	tests := []TestGetOperation[lago.Event]{
		{
			Name:         "existing event",
			ID:           "tx_1",
			ExpectedPath: "/events/tx_1",
			StatusCode:   http.StatusOK,
			Response:     eventBody("tx_1"),
			Check: func(t *testing.T, event *lago.Event) {
				t.Helper()
				assert.Equal(t, time.Date(2022, 4, 29, 8, 59, 51, 0, time.UTC), event.Timestamp)
			},
		},
		{
			Name:       "not found",
			ID:         "tx_404",
			StatusCode: http.StatusNotFound,
			Response:   NotFoundBody("event_not_found"),
			WantErr:    true,
			ErrKind:    lago.ErrorKindAPI,
		},
	}

	RunGetTests(t, tests, func(c *Client) func(context.Context, string) (*lago.Event, error) {
		return c.Events().Get
	})
}

func TestEventsClient_List(t *testing.T) {
	t.Parallel()

	var captured CapturedRequest

	server := NewJSONServer(t, http.StatusOK, map[string]interface{}{
		"events": []interface{}{},
		"meta":   map[string]interface{}{"current_page": 1},
	}, &captured)
	client := NewTestClient(t, server.URL)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.FixedZone("CET", 3600))

	_, err := client.Events().List(context.Background(), &lago.EventFilter{
		Code:          lago.Ptr("api_calls"),
		TimestampFrom: &from,
	})
	require.NoError(t, err)

	assert.Equal(t, "code=api_calls&timestamp_from=2023-12-31T23%3A00%3A00Z", captured.RawQuery)
}
