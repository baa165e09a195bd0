package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDial = errors.New("dial failed")

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestResource(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/api/v1/customers":                     "customers",
		"/api/v1/customers/cus_1/current_usage": "customers",
		"/api/v1/invoices/abc/finalize":         "invoices",
		"/proxy/api/v1/events/batch":            "events",
		"/api/v1/webhooks/json_public_key":      "webhooks",
		"/":                                     "unknown",
		"":                                      "unknown",
		"/health":                               "health",
	}

	for path, want := range tests {
		assert.Equal(t, want, Resource(path), path)
	}
}

func TestTransport_RecordsAttempts(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing") {
			w.WriteHeader(http.StatusNotFound)

			return
		}

		_, _ = io.WriteString(w, `{}`)
	}))
	defer server.Close()

	collector := NewCollector()
	client := &http.Client{Transport: collector.Transport(http.DefaultTransport)}

	for _, path := range []string{"/api/v1/customers/a", "/api/v1/customers/b", "/api/v1/customers/missing"} {
		resp, err := client.Get(server.URL + path)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	assert.InDelta(t, 2, testutil.ToFloat64(collector.requestsTotal.WithLabelValues("GET", "customers", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(collector.requestsTotal.WithLabelValues("GET", "customers", "404")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(collector.requestsInFlight.WithLabelValues("GET", "customers")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(collector.requestDuration))
}

func TestTransport_RecordsTransportErrors(t *testing.T) {
	t.Parallel()

	collector := NewCollector()
	transport := collector.Transport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errDial
	}))

	req := httptest.NewRequest(http.MethodPost, "https://api.example.com/api/v1/events", nil)

	_, err := transport.RoundTrip(req)
	require.ErrorIs(t, err, errDial)

	assert.InDelta(t, 1, testutil.ToFloat64(collector.transportErrors.WithLabelValues("POST", "events")), 0)
	assert.Equal(t, 0, testutil.CollectAndCount(collector.requestsTotal))
}

func TestCollector_NilIsNoop(t *testing.T) {
	t.Parallel()

	var collector *Collector

	assert.NotPanics(t, func() {
		collector.RecordRequest("GET", "customers", http.StatusOK, time.Second)
		collector.RecordTransportError("GET", "customers")
		collector.RecordRelay(true)
		collector.RecordWebhook(http.StatusOK)
		collector.Middleware()
		assert.InDelta(t, 0, testutil.ToFloat64(collector.RelayEvents(ResultForwarded)), 0)
	})

	base := http.DefaultTransport
	assert.Same(t, base, collector.Transport(base))
}

func TestMiddleware_RecordsWebhookStatus(t *testing.T) {
	t.Parallel()

	collector := NewCollector()

	router := gin.New()
	router.Use(collector.Middleware())
	router.POST("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/bad", func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) })

	for _, path := range []string{"/ok", "/ok", "/bad"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, path, nil))
	}

	assert.InDelta(t, 2, testutil.ToFloat64(collector.webhooksTotal.WithLabelValues("200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(collector.webhooksTotal.WithLabelValues("401")), 0)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	t.Parallel()

	collector := NewCollector()
	collector.RecordRelay(false)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `lago_relay_events_total{result="failed"} 1`)
}
