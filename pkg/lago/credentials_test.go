package lago_test

import (
	"testing"

	"github.com/fivetwenty-io/lago-client/pkg/lago"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		value, ok := env[name]

		return value, ok
	}
}

func TestStaticCredentials(t *testing.T) {
	t.Parallel()

	provider := lago.StaticCredentials("key-123")

	for range 3 {
		creds, err := provider.Provide()
		require.NoError(t, err)
		assert.Equal(t, "key-123", creds.APIKey)
	}
}

func TestEnvCredentials(t *testing.T) {
	t.Parallel()

	t.Run("reads the default variable", func(t *testing.T) {
		t.Parallel()

		provider := lago.EnvCredentials{Lookup: mapLookup(map[string]string{"LAGO_API_KEY": " key-abc \n"})}

		creds, err := provider.Provide()
		require.NoError(t, err)
		assert.Equal(t, "key-abc", creds.APIKey)
	})

	t.Run("custom variable name", func(t *testing.T) {
		t.Parallel()

		provider := lago.EnvCredentials{
			Name:   "BILLING_TOKEN",
			Lookup: mapLookup(map[string]string{"BILLING_TOKEN": "tok"}),
		}

		creds, err := provider.Provide()
		require.NoError(t, err)
		assert.Equal(t, "tok", creds.APIKey)
	})

	t.Run("missing variable is a configuration error", func(t *testing.T) {
		t.Parallel()

		for _, env := range []map[string]string{{}, {"LAGO_API_KEY": "   "}} {
			_, err := lago.EnvCredentials{Lookup: mapLookup(env)}.Provide()
			require.ErrorIs(t, err, lago.ErrMissingAPIKey)
			assert.True(t, lago.IsKind(err, lago.ErrorKindConfiguration))
			assert.Contains(t, err.Error(), "LAGO_API_KEY")
		}
	})

	t.Run("rotation is observed on the next call", func(t *testing.T) {
		t.Parallel()

		env := map[string]string{"LAGO_API_KEY": "first"}
		provider := lago.EnvCredentials{Lookup: mapLookup(env)}

		creds, err := provider.Provide()
		require.NoError(t, err)
		assert.Equal(t, "first", creds.APIKey)

		env["LAGO_API_KEY"] = "second"

		creds, err = provider.Provide()
		require.NoError(t, err)
		assert.Equal(t, "second", creds.APIKey)
	})
}

//nolint:paralleltest // mutates the process environment
func TestEnvCredentials_ProcessEnvironment(t *testing.T) {
	t.Setenv("LAGO_API_KEY", "from-env")

	creds, err := lago.EnvCredentials{}.Provide()
	require.NoError(t, err)
	assert.Equal(t, "from-env", creds.APIKey)

	t.Setenv("LAGO_API_KEY", "rotated")

	creds, err = lago.EnvCredentials{}.Provide()
	require.NoError(t, err)
	assert.Equal(t, "rotated", creds.APIKey)
}

func TestCredentials_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "***cdef", lago.Credentials{APIKey: "0123456789abcdef"}.String())
	assert.Equal(t, "***", lago.Credentials{APIKey: "abc"}.String())
	assert.NotContains(t, lago.Credentials{APIKey: "secret-value"}.String(), "secret")
}
