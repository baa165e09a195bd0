package client

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

func TestResourcePath(t *testing.T) {
	t.Parallel()

	path, err := resourcePath("customers", "a b/c", "current_usage")
	require.NoError(t, err)
	assert.Equal(t, "/customers/a%20b%2Fc/current_usage", path)

	_, err = resourcePath("plans", "")
	require.ErrorIs(t, err, lago.ErrEmptyIdentifier)
	assert.True(t, lago.IsKind(err, lago.ErrorKindConfiguration))
}

func TestDecodeList(t *testing.T) {
	t.Parallel()

	resp := func(body string) *internalhttp.Response {
		return &internalhttp.Response{StatusCode: http.StatusOK, Body: []byte(body)}
	}

	t.Run("without meta", func(t *testing.T) {
		t.Parallel()

		list, err := decodeList[lago.Plan](resp(`{"plans":[{"code":"a"}]}`), "plans")
		require.NoError(t, err)
		require.Len(t, list.Items, 1)
		assert.Equal(t, lago.Meta{}, list.Meta)
	})

	t.Run("wrong root", func(t *testing.T) {
		t.Parallel()

		_, err := decodeList[lago.Plan](resp(`{"coupons":[]}`), "plans")
		require.ErrorIs(t, err, ErrMissingEnvelopeKey)
		assert.True(t, lago.IsKind(err, lago.ErrorKindSerialization))
	})

	t.Run("malformed meta", func(t *testing.T) {
		t.Parallel()

		_, err := decodeList[lago.Plan](resp(`{"plans":[],"meta":"page one"}`), "plans")
		assert.True(t, lago.IsKind(err, lago.ErrorKindSerialization))
	})

	t.Run("not json", func(t *testing.T) {
		t.Parallel()

		_, err := decodeRoot[lago.Plan](resp(`<html>`), "plan")

		lagoErr, ok := lago.AsError(err)
		require.True(t, ok)
		assert.Equal(t, lago.ErrorKindSerialization, lagoErr.Kind)
		assert.Equal(t, http.StatusOK, lagoErr.StatusCode)
	})
}
