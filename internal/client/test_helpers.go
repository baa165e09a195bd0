package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// TestAPIKey is the bearer token every test client sends.
const TestAPIKey = "test-api-key"

// NewTestClient creates a client pointed at baseURL with a static key and
// retries disabled.
func NewTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	retry := lago.NoRetry()

	config, err := lago.NewConfig(lago.Options{
		Region:      lago.CustomRegion(baseURL),
		Credentials: lago.StaticCredentials(TestAPIKey),
		Retry:       &retry,
	})
	require.NoError(t, err)

	client, err := New(config)
	require.NoError(t, err)

	return client
}

// NotFoundBody is the error envelope Lago returns for unknown resources.
func NotFoundBody(code string) map[string]interface{} {
	return map[string]interface{}{
		"status": http.StatusNotFound,
		"error":  "Not Found",
		"code":   code,
	}
}

// CapturedRequest is what the test server saw.
type CapturedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Body          map[string]json.RawMessage
}

// NewJSONServer answers every request with status and response encoded as
// JSON, recording the last request into captured.
func NewJSONServer(t *testing.T, status int, response interface{}, captured *CapturedRequest) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if captured != nil {
			captured.Method = request.Method
			captured.Path = request.URL.EscapedPath()
			captured.RawQuery = request.URL.RawQuery
			captured.Authorization = request.Header.Get("Authorization")
			captured.Body = nil

			data, err := io.ReadAll(request.Body)
			assert.NoError(t, err)

			if len(data) > 0 {
				assert.NoError(t, json.Unmarshal(data, &captured.Body))
			}
		}

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)

		if response != nil {
			_ = json.NewEncoder(writer).Encode(response)
		}
	}))
	t.Cleanup(server.Close)

	return server
}

// TestCreateOperation represents a generic create operation test case.
type TestCreateOperation[TRequest, TResponse any] struct {
	Name         string
	Request      *TRequest
	ExpectedPath string
	ExpectedRoot string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	ErrKind      lago.ErrorKind
	Check        func(t *testing.T, result *TResponse)
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[TResponse any] struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	ErrKind      lago.ErrorKind
	Check        func(t *testing.T, result *TResponse)
}

// TestDeleteOperation represents a generic delete operation test case.
type TestDeleteOperation[TResponse any] struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	ErrKind      lago.ErrorKind
}

// RunCreateTests runs a series of create operation tests.
func RunCreateTests[TRequest, TResponse any](
	t *testing.T,
	tests []TestCreateOperation[TRequest, TResponse],
	createFunc func(*Client) func(context.Context, *TRequest) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			var captured CapturedRequest

			server := NewJSONServer(t, testCase.StatusCode, testCase.Response, &captured)
			client := NewTestClient(t, server.URL)

			result, err := createFunc(client)(context.Background(), testCase.Request)

			if testCase.WantErr {
				require.Error(t, err)
				assertKind(t, err, testCase.ErrKind)
				assert.Nil(t, result)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, http.MethodPost, captured.Method)
			assert.Equal(t, testCase.ExpectedPath, captured.Path)
			assert.Equal(t, "Bearer "+TestAPIKey, captured.Authorization)

			if testCase.ExpectedRoot != "" {
				assert.Contains(t, captured.Body, testCase.ExpectedRoot)
			}

			if testCase.Check != nil {
				testCase.Check(t, result)
			}
		})
	}
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*Client) func(context.Context, string) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			var captured CapturedRequest

			server := NewJSONServer(t, testCase.StatusCode, testCase.Response, &captured)
			client := NewTestClient(t, server.URL)

			result, err := getFunc(client)(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)
				assertKind(t, err, testCase.ErrKind)
				assert.Nil(t, result)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, http.MethodGet, captured.Method)
			assert.Equal(t, testCase.ExpectedPath, captured.Path)

			if testCase.Check != nil {
				testCase.Check(t, result)
			}
		})
	}
}

// RunDeleteTests runs a series of delete operation tests.
func RunDeleteTests[TResponse any](
	t *testing.T,
	tests []TestDeleteOperation[TResponse],
	deleteFunc func(*Client) func(context.Context, string) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			var captured CapturedRequest

			server := NewJSONServer(t, testCase.StatusCode, testCase.Response, &captured)
			client := NewTestClient(t, server.URL)

			result, err := deleteFunc(client)(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)
				assertKind(t, err, testCase.ErrKind)
				assert.Nil(t, result)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, http.MethodDelete, captured.Method)
			assert.Equal(t, testCase.ExpectedPath, captured.Path)
		})
	}
}

func assertKind(t *testing.T, err error, kind lago.ErrorKind) {
	t.Helper()

	if kind == 0 {
		return
	}

	lagoErr, ok := lago.AsError(err)
	require.True(t, ok, "expected *lago.Error, got %T", err)
	assert.Equal(t, kind, lagoErr.Kind)
}
