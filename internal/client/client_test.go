package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/fivetwenty-io/lago-client/internal/client"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
	debug []string
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.debug = append(l.debug, msg)
}

func (l *recordingLogger) Info(string, map[string]interface{}) {}

func (l *recordingLogger) Warn(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) Error(string, map[string]interface{}) {}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		client, err := New(nil)
		require.ErrorIs(t, err, lago.ErrConfigRequired)
		assert.True(t, lago.IsKind(err, lago.ErrorKindConfiguration))
		assert.Nil(t, client)
	})

	t.Run("creates client for a region", func(t *testing.T) {
		t.Parallel()

		config, err := lago.NewConfig(lago.Options{
			Region:      lago.RegionEU,
			Credentials: lago.StaticCredentials("key"),
		})
		require.NoError(t, err)

		client, err := New(config)
		require.NoError(t, err)
		assert.Equal(t, "https://api.eu.getlago.com/api/v1", client.Config().Endpoint())
	})

	t.Run("initializes every resource client", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, "https://lago.example.com/api/v1")

		assert.NotNil(t, client.Customers())
		assert.NotNil(t, client.Subscriptions())
		assert.NotNil(t, client.Plans())
		assert.NotNil(t, client.Invoices())
		assert.NotNil(t, client.CreditNotes())
		assert.NotNil(t, client.Fees())
		assert.NotNil(t, client.Wallets())
		assert.NotNil(t, client.BillableMetrics())
		assert.NotNil(t, client.Coupons())
		assert.NotNil(t, client.AddOns())
		assert.NotNil(t, client.Events())
		assert.NotNil(t, client.Organization())
		assert.NotNil(t, client.Webhooks())
	})
}

func TestClient_ConfigWiring(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/plans/startup", r.URL.Path)
		assert.Equal(t, "billing-worker/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "Bearer rotated-key", r.Header.Get("Authorization"))

		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"plan":{"code":"startup","created_at":"2022-04-29T08:59:51Z"}}`))
	}))
	defer server.Close()

	logger := &recordingLogger{}
	retry := lago.RetryConfig{
		Mode:              lago.RetryStandard,
		MaxAttempts:       2,
		InitialDelay:      time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		BackoffMultiplier: 2,
	}

	config, err := lago.NewConfig(lago.Options{
		Region: lago.CustomRegion(server.URL + "/api/v1/"),
		Credentials: lago.EnvCredentials{Lookup: func(string) (string, bool) {
			return "rotated-key", true
		}},
		Retry:     &retry,
		UserAgent: "billing-worker/1.0",
		Logger:    logger,
		Debug:     true,
	})
	require.NoError(t, err)

	client, err := New(config)
	require.NoError(t, err)

	plan, err := client.Plans().Get(context.Background(), "startup")
	require.NoError(t, err)
	assert.Equal(t, "startup", plan.Code)
	assert.Equal(t, int32(2), calls.Load())

	logger.mu.Lock()
	defer logger.mu.Unlock()

	assert.Equal(t, []string{"Retrying request"}, logger.warns)
	assert.Contains(t, logger.debug, "HTTP Request")
	assert.Contains(t, logger.debug, "HTTP Response")
}

func TestClient_MissingCredentials(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	config, err := lago.NewConfig(lago.Options{
		Region: lago.CustomRegion(server.URL),
		Credentials: lago.EnvCredentials{Lookup: func(string) (string, bool) {
			return "", false
		}},
	})
	require.NoError(t, err)

	client, err := New(config)
	require.NoError(t, err)

	_, err = client.Customers().Get(context.Background(), "cus_1")
	require.ErrorIs(t, err, lago.ErrMissingAPIKey)
	assert.True(t, lago.IsKind(err, lago.ErrorKindConfiguration))
	assert.Equal(t, int32(0), calls.Load())
}

func TestClient_CollectAll(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Query().Get("page") {
		case "1":
			_, _ = w.Write([]byte(`{"customers":[{"external_id":"a"},{"external_id":"b"}],"meta":{"current_page":1,"next_page":2}}`))
		case "2":
			_, _ = w.Write([]byte(`{"customers":[{"external_id":"c"}],"meta":{"current_page":2}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	customers, err := lago.CollectAll(context.Background(), 10,
		func(ctx context.Context, page int) (*lago.ListResponse[lago.Customer], error) {
			return client.Customers().List(ctx, &lago.CustomerFilter{
				Pagination: lago.Pagination{Page: lago.Ptr(page)},
			})
		})
	require.NoError(t, err)
	require.Len(t, customers, 3)
	assert.Equal(t, "c", customers[2].ExternalID)
}
