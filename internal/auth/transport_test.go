package auth_test

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/fivetwenty-io/lago-client/internal/auth"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type sequenceProvider struct {
	keys  []string
	calls int
}

func (p *sequenceProvider) Provide() (lago.Credentials, error) {
	key := p.keys[min(p.calls, len(p.keys)-1)]
	p.calls++

	return lago.Credentials{APIKey: key}, nil
}

type failingProvider struct{}

func (failingProvider) Provide() (lago.Credentials, error) {
	return lago.Credentials{}, errors.New("vault sealed")
}

func okResponse(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("{}")),
		Header:     http.Header{},
		Request:    req,
	}
}

func TestBearerTransport(t *testing.T) {
	t.Parallel()

	t.Run("sets the bearer header without mutating the request", func(t *testing.T) {
		t.Parallel()

		var seen string

		transport := &auth.BearerTransport{
			Provider: lago.StaticCredentials("key-1"),
			Base: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				seen = req.Header.Get("Authorization")

				return okResponse(req), nil
			}),
		}

		req, err := http.NewRequest(http.MethodGet, "http://lago.test/api/v1/customers", nil)
		require.NoError(t, err)

		resp, err := transport.RoundTrip(req)
		require.NoError(t, err)
		_ = resp.Body.Close()

		assert.Equal(t, "Bearer key-1", seen)
		assert.Empty(t, req.Header.Get("Authorization"))
	})

	t.Run("resolves credentials on every round trip", func(t *testing.T) {
		t.Parallel()

		provider := &sequenceProvider{keys: []string{"old", "new"}}

		var seen []string

		transport := &auth.BearerTransport{
			Provider: provider,
			Base: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				seen = append(seen, req.Header.Get("Authorization"))

				return okResponse(req), nil
			}),
		}

		for range 2 {
			req, err := http.NewRequest(http.MethodGet, "http://lago.test/", nil)
			require.NoError(t, err)

			resp, err := transport.RoundTrip(req)
			require.NoError(t, err)
			_ = resp.Body.Close()
		}

		assert.Equal(t, []string{"Bearer old", "Bearer new"}, seen)
	})

	t.Run("provider failure is not dispatched", func(t *testing.T) {
		t.Parallel()

		for name, provider := range map[string]lago.CredentialsProvider{
			"nil":     nil,
			"failing": failingProvider{},
			"empty":   lago.StaticCredentials(""),
			"env":     lago.EnvCredentials{Lookup: func(string) (string, bool) { return "", false }},
		} {
			dispatched := false

			transport := &auth.BearerTransport{
				Provider: provider,
				Base: roundTripFunc(func(req *http.Request) (*http.Response, error) {
					dispatched = true

					return okResponse(req), nil
				}),
			}

			req, err := http.NewRequest(http.MethodPost, "http://lago.test/", strings.NewReader(`{}`))
			require.NoError(t, err)

			_, err = transport.RoundTrip(req)
			require.Error(t, err, name)
			assert.True(t, lago.IsKind(err, lago.ErrorKindConfiguration), name)
			assert.False(t, dispatched, name)
		}
	})
}

func TestChain(t *testing.T) {
	t.Parallel()

	missing := lago.EnvCredentials{Lookup: func(string) (string, bool) { return "", false }}

	creds, err := auth.Chain{missing, lago.StaticCredentials(""), auth.Func(func() string { return " cfg-key " })}.Provide()
	require.NoError(t, err)
	assert.Equal(t, "cfg-key", creds.APIKey)

	creds, err = auth.Chain{lago.StaticCredentials("flag"), missing}.Provide()
	require.NoError(t, err)
	assert.Equal(t, "flag", creds.APIKey)

	_, err = auth.Chain{missing, auth.Func(func() string { return "" })}.Provide()
	require.ErrorIs(t, err, lago.ErrMissingAPIKey)
	assert.True(t, lago.IsKind(err, lago.ErrorKindConfiguration))

	_, err = auth.Chain{}.Provide()
	require.ErrorIs(t, err, auth.ErrNoProviders)

	_, err = auth.Chain{lago.StaticCredentials("")}.Provide()
	require.ErrorIs(t, err, lago.ErrMissingAPIKey)
}
