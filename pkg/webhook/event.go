package webhook

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedEvent is returned when a webhook body is not a Lago event.
var ErrMalformedEvent = errors.New("malformed webhook event")

// Event is a decoded webhook notification. Object holds the resource found
// under the key named by ObjectType, e.g. "invoice" for invoice.created.
type Event struct {
	WebhookType string          `json:"webhook_type"`
	ObjectType  string          `json:"object_type"`
	Object      json.RawMessage `json:"object,omitempty"`
	// UniqueKey is the X-Lago-Unique-Key header, stable across redeliveries.
	UniqueKey string `json:"unique_key,omitempty"`
}

// ParseEvent decodes a webhook body.
func ParseEvent(body []byte) (Event, error) {
	var raw map[string]json.RawMessage

	err := json.Unmarshal(body, &raw)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}

	var event Event

	err = unmarshalField(raw, "webhook_type", &event.WebhookType)
	if err != nil {
		return Event{}, err
	}

	if event.WebhookType == "" {
		return Event{}, fmt.Errorf("%w: webhook_type is required", ErrMalformedEvent)
	}

	err = unmarshalField(raw, "object_type", &event.ObjectType)
	if err != nil {
		return Event{}, err
	}

	if event.ObjectType != "" {
		event.Object = raw[event.ObjectType]
	}

	return event, nil
}

// Decode unmarshals the event object into v.
func (e Event) Decode(v interface{}) error {
	if len(e.Object) == 0 {
		return fmt.Errorf("%w: no %q object", ErrMalformedEvent, e.ObjectType)
	}

	err := json.Unmarshal(e.Object, v)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", e.ObjectType, err)
	}

	return nil
}

func unmarshalField(raw map[string]json.RawMessage, key string, dst *string) error {
	value, ok := raw[key]
	if !ok {
		return nil
	}

	err := json.Unmarshal(value, dst)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedEvent, key, err)
	}

	return nil
}
