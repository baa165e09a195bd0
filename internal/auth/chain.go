package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// ErrNoProviders is returned by an empty Chain.
var ErrNoProviders = errors.New("no credentials providers configured")

// Chain tries each provider in order and returns the first key found.
type Chain []lago.CredentialsProvider

// Provide implements lago.CredentialsProvider.
func (c Chain) Provide() (lago.Credentials, error) {
	if len(c) == 0 {
		return lago.Credentials{}, lago.NewConfigurationError(ErrNoProviders)
	}

	var errs []error

	for _, provider := range c {
		creds, err := provider.Provide()
		if err == nil && creds.APIKey != "" {
			return creds, nil
		}

		if err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		return lago.Credentials{}, lago.NewConfigurationError(lago.ErrMissingAPIKey)
	}

	return lago.Credentials{}, lago.NewConfigurationError(
		fmt.Errorf("%w: %w", lago.ErrMissingAPIKey, errors.Join(errs...)))
}

// Func adapts a key lookup, such as a config accessor, into a provider. The
// function is called on every attempt.
type Func func() string

// Provide implements lago.CredentialsProvider.
func (f Func) Provide() (lago.Credentials, error) {
	key := strings.TrimSpace(f())
	if key == "" {
		return lago.Credentials{}, lago.NewConfigurationError(lago.ErrMissingAPIKey)
	}

	return lago.Credentials{APIKey: key}, nil
}
