// Package metrics exports Prometheus metrics for API calls made by the client,
// events forwarded by the relay and webhooks accepted by the receiver.
//
// Every method except Registry and Handler is safe on a nil *Collector, so
// callers can leave metrics disabled without branching.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lago"

// Relay outcomes.
const (
	ResultForwarded = "forwarded"
	ResultFailed    = "failed"
)

// Collector holds the metric vectors. It is safe for concurrent use.
type Collector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec
	transportErrors  *prometheus.CounterVec

	relayEvents *prometheus.CounterVec

	webhooksTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewCollector creates a collector on a fresh registry.
func NewCollector() *Collector {
	return NewCollectorWithRegistry(prometheus.NewRegistry())
}

// NewCollectorWithRegistry creates a collector registered on registry.
func NewCollectorWithRegistry(registry *prometheus.Registry) *Collector {
	factory := promauto.With(registry)

	return &Collector{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of HTTP attempts sent to the Lago API",
			},
			[]string{"method", "resource", "status_code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "Duration of HTTP attempts sent to the Lago API",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "resource", "status_code"},
		),
		requestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "api_requests_in_flight",
				Help:      "Number of HTTP attempts currently in flight",
			},
			[]string{"method", "resource"},
		),
		transportErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_transport_errors_total",
				Help:      "Total number of attempts that failed without a response",
			},
			[]string{"method", "resource"},
		),
		relayEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "relay_events_total",
				Help:      "Total number of broker messages handled by the relay",
			},
			[]string{"result"},
		),
		webhooksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhooks_received_total",
				Help:      "Total number of webhook deliveries by response status",
			},
			[]string{"status_code"},
		),
		registry: registry,
	}
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordRequest records one completed attempt.
func (c *Collector) RecordRequest(method, resource string, statusCode int, duration time.Duration) {
	if c == nil {
		return
	}

	code := strconv.Itoa(statusCode)
	c.requestsTotal.WithLabelValues(method, resource, code).Inc()
	c.requestDuration.WithLabelValues(method, resource, code).Observe(duration.Seconds())
}

// RecordTransportError records an attempt that produced no response.
func (c *Collector) RecordTransportError(method, resource string) {
	if c == nil {
		return
	}

	c.transportErrors.WithLabelValues(method, resource).Inc()
}

// RecordRelay records the outcome of one relayed message.
func (c *Collector) RecordRelay(forwarded bool) {
	if c == nil {
		return
	}

	result := ResultFailed
	if forwarded {
		result = ResultForwarded
	}

	c.relayEvents.WithLabelValues(result).Inc()
}

// RelayEvents returns the relay counter for result. A nil collector returns
// a counter registered nowhere.
func (c *Collector) RelayEvents(result string) prometheus.Counter {
	if c == nil {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "relay_events_total",
			ConstLabels: prometheus.Labels{"result": result},
		})
	}

	return c.relayEvents.WithLabelValues(result)
}

// RecordWebhook records a webhook delivery answered with statusCode.
func (c *Collector) RecordWebhook(statusCode int) {
	if c == nil {
		return
	}

	c.webhooksTotal.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Transport instruments every attempt sent through next. Retries show up as
// separate attempts.
func (c *Collector) Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	if c == nil {
		return next
	}

	return &instrumentedTransport{collector: c, next: next}
}

// Middleware records the status of every webhook delivery.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()
		c.RecordWebhook(ctx.Writer.Status())
	}
}

type instrumentedTransport struct {
	collector *Collector
	next      http.RoundTripper
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resource := Resource(req.URL.Path)

	inFlight := t.collector.requestsInFlight.WithLabelValues(req.Method, resource)
	inFlight.Inc()
	defer inFlight.Dec()

	start := time.Now()

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.collector.RecordTransportError(req.Method, resource)

		return nil, err
	}

	t.collector.RecordRequest(req.Method, resource, resp.StatusCode, time.Since(start))

	return resp, nil
}

// Resource reduces an API path to its collection name so identifiers do not
// become label values: /api/v1/customers/cus_1/current_usage is "customers".
func Resource(path string) string {
	path = strings.Trim(path, "/")

	if i := strings.Index(path, "api/v1/"); i >= 0 {
		path = path[i+len("api/v1/"):]
	}

	resource, _, _ := strings.Cut(path, "/")
	if resource == "" {
		return "unknown"
	}

	return resource
}
