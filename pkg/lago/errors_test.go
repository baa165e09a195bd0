package lago_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/lago-client/pkg/lago"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIError(t *testing.T) {
	t.Parallel()

	t.Run("decodes the error envelope", func(t *testing.T) {
		t.Parallel()

		body := `{"status":422,"error":"Unprocessable Entity","code":"validation_errors","error_details":{"external_id":["value_already_exist"]}}`
		err := lago.NewAPIError(http.StatusUnprocessableEntity, body)

		assert.Equal(t, lago.ErrorKindAPI, err.Kind)
		assert.Equal(t, 422, err.StatusCode)
		assert.Equal(t, body, err.Message)
		assert.Equal(t, "validation_errors", err.Code)
		assert.Contains(t, err.Details, "external_id")
		assert.Contains(t, err.Error(), "status 422")
	})

	t.Run("keeps non-JSON bodies raw", func(t *testing.T) {
		t.Parallel()

		err := lago.NewAPIError(http.StatusBadGateway, "<html>bad gateway</html>")
		assert.Equal(t, "<html>bad gateway</html>", err.Message)
		assert.Empty(t, err.Code)
		assert.Nil(t, err.Details)
	})
}

func TestError_Retryable(t *testing.T) {
	t.Parallel()

	assert.True(t, lago.NewHTTPError(context.DeadlineExceeded).Retryable())
	assert.True(t, lago.NewRateLimitError("").Retryable())
	assert.True(t, lago.NewAPIError(500, "").Retryable())
	assert.False(t, lago.NewAPIError(499, "").Retryable())
	assert.False(t, lago.NewUnauthorizedError("").Retryable())
	assert.False(t, lago.NewSerializationError(200, errors.New("eof")).Retryable())
	assert.False(t, lago.NewConfigurationError(lago.ErrUnsupportedMethod).Retryable())
}

func TestError_Helpers(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("getting customer: %w", lago.NewAPIError(http.StatusNotFound, `{"status":404,"error":"Not Found"}`))

	assert.True(t, lago.IsNotFound(wrapped))
	assert.False(t, lago.IsServerError(wrapped))
	assert.Equal(t, http.StatusNotFound, lago.StatusCode(wrapped))

	assert.True(t, lago.IsUnauthorized(fmt.Errorf("x: %w", lago.NewUnauthorizedError(""))))
	assert.True(t, lago.IsRateLimit(lago.NewRateLimitError("")))
	assert.Equal(t, http.StatusTooManyRequests, lago.StatusCode(lago.NewRateLimitError("")))
	assert.True(t, lago.IsServerError(lago.NewAPIError(503, "")))
	assert.Zero(t, lago.StatusCode(errors.New("plain")))

	lagoErr, ok := lago.AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, lago.ErrorKindAPI, lagoErr.Kind)

	_, ok = lago.AsError(errors.New("plain"))
	assert.False(t, ok)
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	err := lago.NewHTTPError(context.Canceled)
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "http")

	cfgErr := lago.NewConfigurationError(fmt.Errorf("%w: PATCH", lago.ErrUnsupportedMethod))
	require.ErrorIs(t, cfgErr, lago.ErrUnsupportedMethod)
	assert.Equal(t, "configuration", cfgErr.Kind.String())
}
