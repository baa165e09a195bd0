package relay

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/fivetwenty-io/lago-client/internal/metrics"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

var errUnavailable = errors.New("lago unavailable")

type fakeEvents struct {
	mu     sync.Mutex
	inputs []lago.EventInput
	err    error
}

func (f *fakeEvents) Create(_ context.Context, input *lago.EventInput) (*lago.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inputs = append(f.inputs, *input)
	if f.err != nil {
		return nil, f.err
	}

	return &lago.Event{
		LagoID:                 "evt_1",
		TransactionID:          input.TransactionID,
		ExternalSubscriptionID: input.ExternalSubscriptionID,
		Code:                   input.Code,
	}, nil
}

func (f *fakeEvents) BatchCreate(context.Context, []lago.EventInput) ([]lago.Event, error) {
	return nil, nil
}

func (f *fakeEvents) Get(context.Context, string) (*lago.Event, error) {
	return nil, nil //nolint:nilnil
}

func (f *fakeEvents) List(context.Context, *lago.EventFilter) (*lago.ListResponse[lago.Event], error) {
	return nil, nil //nolint:nilnil
}

func newTestRelay(events lago.EventsClient) *Relay {
	r := New(events, 1000, 10, nil)
	r.newID = func() string { return "generated-id" }

	return r
}

func TestRelay_Handle(t *testing.T) {
	t.Parallel()

	events := &fakeEvents{}
	r := newTestRelay(events)

	event, err := r.Handle(context.Background(),
		[]byte(`{"transaction_id":"tx_1","external_subscription_id":"sub_1","code":"api_calls","properties":{"calls":3}}`))
	require.NoError(t, err)
	assert.Equal(t, "tx_1", event.TransactionID)

	require.Len(t, events.inputs, 1)
	assert.Equal(t, "api_calls", events.inputs[0].Code)
	assert.InDelta(t, 3, events.inputs[0].Properties["calls"], 0)
}

func TestRelay_Handle_GeneratesTransactionID(t *testing.T) {
	t.Parallel()

	events := &fakeEvents{}
	r := newTestRelay(events)

	event, err := r.Handle(context.Background(), []byte(`{"external_subscription_id":"sub_1","code":"api_calls"}`))
	require.NoError(t, err)
	assert.Equal(t, "generated-id", event.TransactionID)
	assert.Equal(t, "generated-id", events.inputs[0].TransactionID)
}

func TestRelay_Handle_InvalidMessage(t *testing.T) {
	t.Parallel()

	events := &fakeEvents{}
	r := newTestRelay(events)

	_, err := r.Handle(context.Background(), []byte(`not json`))
	require.ErrorIs(t, err, ErrInvalidMessage)
	assert.Empty(t, events.inputs)
}

func TestRelay_Handle_CreateFails(t *testing.T) {
	t.Parallel()

	r := newTestRelay(&fakeEvents{err: errUnavailable})

	_, err := r.Handle(context.Background(), []byte(`{"code":"api_calls"}`))
	require.ErrorIs(t, err, errUnavailable)
	assert.Contains(t, err.Error(), "generated-id")
}

func TestRelay_Handle_LimiterHonoursContext(t *testing.T) {
	t.Parallel()

	events := &fakeEvents{}
	r := newTestRelay(events)
	r.Limiter = rate.NewLimiter(rate.Every(1<<40), 1)
	require.True(t, r.Limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Handle(ctx, []byte(`{"code":"api_calls"}`))
	require.Error(t, err)
	assert.Empty(t, events.inputs)
}

func TestRelay_Process(t *testing.T) {
	t.Parallel()

	ok := newTestRelay(&fakeEvents{}).process(context.Background(), []byte(`{"code":"api_calls"}`))
	assert.Equal(t, Reply{OK: true, TransactionID: "generated-id"}, ok)

	failed := newTestRelay(&fakeEvents{err: errUnavailable}).process(context.Background(), []byte(`{"code":"api_calls"}`))
	assert.False(t, failed.OK)
	assert.Contains(t, failed.Error, "lago unavailable")
}

func TestRelay_NilLogger(t *testing.T) {
	t.Parallel()

	r := &Relay{Events: &fakeEvents{}}

	assert.NotPanics(t, func() {
		reply := r.process(context.Background(), []byte(`{"code":"api_calls"}`))
		assert.True(t, reply.OK)
		assert.Len(t, reply.TransactionID, 36)
	})
}

func TestRelay_RecordsMetrics(t *testing.T) {
	t.Parallel()

	collector := metrics.NewCollector()

	r := newTestRelay(&fakeEvents{})
	r.Metrics = collector
	r.process(context.Background(), []byte(`{"code":"api_calls"}`))
	r.process(context.Background(), []byte(`not json`))
	r.process(context.Background(), []byte(`{"code":"api_calls"}`))

	assert.InDelta(t, 2, testutil.ToFloat64(collector.RelayEvents(metrics.ResultForwarded)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(collector.RelayEvents(metrics.ResultFailed)), 0)
}
