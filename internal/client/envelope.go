package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// Static errors for err113 compliance.
var (
	ErrMissingEnvelopeKey = errors.New("response envelope is missing its root key")
	ErrInputRequired      = errors.New("request input is required")
)

// resourcePath builds /collection/{id}/suffix... with the identifier escaped.
func resourcePath(collection, id string, suffix ...string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", lago.NewConfigurationError(fmt.Errorf("%w: %s", lago.ErrEmptyIdentifier, collection))
	}

	path := "/" + collection + "/" + url.PathEscape(id)
	for _, segment := range suffix {
		path += "/" + segment
	}

	return path, nil
}

func requireInput[T any](input *T, name string) error {
	if input == nil {
		return lago.NewConfigurationError(fmt.Errorf("%w: %s", ErrInputRequired, name))
	}

	return nil
}

// wrap builds Lago's root-keyed request body: {"customer": {...}}.
func wrap(root string, payload interface{}) map[string]interface{} {
	return map[string]interface{}{root: payload}
}

// decodeRoot unwraps a single-object envelope.
func decodeRoot[T any](resp *http.Response, root string) (*T, error) {
	envelope, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var out T

	err = decodeField(resp, envelope, root, &out)
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// decodeList unwraps a collection envelope: {"customers": [...], "meta": {...}}.
func decodeList[T any](resp *http.Response, root string) (*lago.ListResponse[T], error) {
	envelope, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	list := &lago.ListResponse[T]{}

	err = decodeField(resp, envelope, root, &list.Items)
	if err != nil {
		return nil, err
	}

	if raw, ok := envelope["meta"]; ok {
		err = json.Unmarshal(raw, &list.Meta)
		if err != nil {
			return nil, lago.NewSerializationError(resp.StatusCode, fmt.Errorf("decoding meta: %w", err))
		}
	}

	return list, nil
}

func decodeEnvelope(resp *http.Response) (map[string]json.RawMessage, error) {
	var envelope map[string]json.RawMessage

	err := json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, lago.NewSerializationError(resp.StatusCode, fmt.Errorf("decoding response envelope: %w", err))
	}

	return envelope, nil
}

func decodeField(resp *http.Response, envelope map[string]json.RawMessage, root string, out interface{}) error {
	raw, ok := envelope[root]
	if !ok {
		return lago.NewSerializationError(resp.StatusCode, fmt.Errorf("%w: %q", ErrMissingEnvelopeKey, root))
	}

	err := json.Unmarshal(raw, out)
	if err != nil {
		return lago.NewSerializationError(resp.StatusCode, fmt.Errorf("decoding %s: %w", root, err))
	}

	return nil
}

// queryOf returns the builder's params, or nil for a nil filter.
func queryOf[T lago.QueryBuilder](filter *T) lago.Params {
	if filter == nil {
		return nil
	}

	return (*filter).Params()
}
