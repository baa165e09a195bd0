package client

import (
	"bytes"
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

var errNotRSAKey = errors.New("public key is not RSA")

// WebhooksClient implements lago.WebhooksClient.
type WebhooksClient struct {
	httpClient *http.Client
}

// NewWebhooksClient creates a new webhooks client.
func NewWebhooksClient(httpClient *http.Client) *WebhooksClient {
	return &WebhooksClient{
		httpClient: httpClient,
	}
}

// PublicKey implements lago.WebhooksClient.PublicKey. Lago serves the key as
// a base64 encoded PEM block; it verifies JWT signed webhooks.
func (c *WebhooksClient) PublicKey(ctx context.Context) (*rsa.PublicKey, error) {
	resp, err := c.httpClient.Get(ctx, "/webhooks/public_key", nil)
	if err != nil {
		return nil, fmt.Errorf("getting webhook public key: %w", err)
	}

	key, err := ParsePublicKey(resp.Body)
	if err != nil {
		return nil, lago.NewSerializationError(resp.StatusCode, err)
	}

	return key, nil
}

// ParsePublicKey decodes the body of GET /webhooks/public_key.
func ParsePublicKey(body []byte) (*rsa.PublicKey, error) {
	decoded, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(body)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", lago.ErrInvalidPublicKey, err)
	}

	block, _ := pem.Decode(decoded)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block", lago.ErrInvalidPublicKey)
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", lago.ErrInvalidPublicKey, err)
	}

	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %w", lago.ErrInvalidPublicKey, errNotRSAKey)
	}

	return key, nil
}
