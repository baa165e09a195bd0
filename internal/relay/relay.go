// Package relay forwards usage events published on NATS to the Lago events API.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"golang.org/x/time/rate"

	"github.com/fivetwenty-io/lago-client/internal/constants"
	"github.com/fivetwenty-io/lago-client/internal/metrics"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// Static errors for err113 compliance.
var (
	ErrInvalidMessage = errors.New("invalid event message")
	ErrDrainTimeout   = errors.New("timed out draining subscription")
)

const drainPoll = 50 * time.Millisecond

// Relay queue-subscribes to a subject and creates one Lago event per message.
type Relay struct {
	Events  lago.EventsClient
	Limiter *rate.Limiter
	Logger  lago.Logger
	Metrics *metrics.Collector

	newID func() string
}

// New creates a relay forwarding at most ratePerSecond events per second.
func New(events lago.EventsClient, ratePerSecond float64, burst int, logger lago.Logger) *Relay {
	if logger == nil {
		logger = lago.NopLogger{}
	}

	return &Relay{
		Events:  events,
		Limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		Logger:  logger,
		newID:   uuid.NewString,
	}
}

// Reply is sent back on msg.Reply when the publisher requested one.
type Reply struct {
	OK            bool   `json:"ok"`
	TransactionID string `json:"transaction_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Handle decodes data as an event input and sends it to Lago. A missing
// transaction_id is generated so redeliveries of the returned event dedupe.
func (r *Relay) Handle(ctx context.Context, data []byte) (*lago.Event, error) {
	var input lago.EventInput

	err := json.Unmarshal(data, &input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	if input.TransactionID == "" {
		input.TransactionID = r.id()
	}

	if r.Limiter != nil {
		err = r.Limiter.Wait(ctx)
		if err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	event, err := r.Events.Create(ctx, &input)
	if err != nil {
		return nil, fmt.Errorf("creating event %s: %w", input.TransactionID, err)
	}

	return event, nil
}

// Run consumes subject in queue group queue until ctx is done, then drains
// the subscription so in-flight messages are still forwarded.
func (r *Relay) Run(ctx context.Context, nc *nats.Conn, subject, queue string) error {
	if subject == "" {
		subject = constants.DefaultRelaySubject
	}

	if queue == "" {
		queue = constants.DefaultRelayQueue
	}

	// Drained messages must still reach Lago after ctx is cancelled.
	work := context.WithoutCancel(ctx)

	sub, err := nc.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		r.respond(msg, r.process(work, msg.Data))
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", subject, err)
	}

	r.log().Info("Relay started", map[string]interface{}{"subject": subject, "queue": queue})

	<-ctx.Done()

	err = sub.Drain()
	if err != nil {
		return fmt.Errorf("draining %s: %w", subject, err)
	}

	return waitDrained(sub, nc.Opts.DrainTimeout)
}

func (r *Relay) process(ctx context.Context, data []byte) Reply {
	event, err := r.Handle(ctx, data)
	r.Metrics.RecordRelay(err == nil)

	if err != nil {
		r.log().Error("Relay failed to forward event", map[string]interface{}{"error": err})

		return Reply{Error: err.Error()}
	}

	r.log().Debug("Relay forwarded event", map[string]interface{}{
		"transaction_id": event.TransactionID,
		"code":           event.Code,
	})

	return Reply{OK: true, TransactionID: event.TransactionID}
}

func (r *Relay) respond(msg *nats.Msg, reply Reply) {
	if msg.Reply == "" {
		return
	}

	data, err := json.Marshal(reply)
	if err != nil {
		return
	}

	err = msg.Respond(data)
	if err != nil {
		r.log().Warn("Relay failed to reply", map[string]interface{}{"error": err, "reply": msg.Reply})
	}
}

func (r *Relay) id() string {
	if r.newID == nil {
		return uuid.NewString()
	}

	return r.newID()
}

func (r *Relay) log() lago.Logger {
	if r.Logger == nil {
		return lago.NopLogger{}
	}

	return r.Logger
}

func waitDrained(sub *nats.Subscription, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = nats.DefaultDrainTimeout
	}

	ticker := time.NewTicker(drainPoll)
	defer ticker.Stop()

	deadline := time.After(timeout)

	for sub.IsValid() {
		select {
		case <-ticker.C:
		case <-deadline:
			return ErrDrainTimeout
		}
	}

	return nil
}
