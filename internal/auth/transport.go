package auth

import (
	"net/http"

	"github.com/fivetwenty-io/lago-client/internal/constants"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// BearerTransport authenticates every round trip with the key returned by
// Provider. The provider is consulted on each attempt, so a retried request
// picks up rotated credentials.
type BearerTransport struct {
	Provider lago.CredentialsProvider
	Base     http.RoundTripper
}

// RoundTrip implements http.RoundTripper. A provider failure is returned as a
// configuration error and the request is never dispatched.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	key, err := t.apiKey()
	if err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}

		return nil, err
	}

	authed := req.Clone(req.Context())
	authed.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+key)

	return t.base().RoundTrip(authed)
}

func (t *BearerTransport) apiKey() (string, error) {
	if t.Provider == nil {
		return "", lago.NewConfigurationError(lago.ErrMissingAPIKey)
	}

	creds, err := t.Provider.Provide()
	if err != nil {
		if _, ok := lago.AsError(err); ok {
			return "", err
		}

		return "", lago.NewConfigurationError(err)
	}

	if creds.APIKey == "" {
		return "", lago.NewConfigurationError(lago.ErrMissingAPIKey)
	}

	return creds.APIKey, nil
}

func (t *BearerTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}

	return http.DefaultTransport
}
