package lago

import (
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/lago-client/internal/constants"
)

// Credentials is the bearer token sent with every request.
type Credentials struct {
	APIKey string
}

// String masks all but the last few characters of the key.
func (c Credentials) String() string {
	if len(c.APIKey) <= constants.VisibleKeySuffix {
		return constants.MaskedSecret
	}

	return constants.MaskedSecret + c.APIKey[len(c.APIKey)-constants.VisibleKeySuffix:]
}

// CredentialsProvider supplies credentials for a request attempt.
// Implementations must be safe for concurrent use.
type CredentialsProvider interface {
	Provide() (Credentials, error)
}

// StaticCredentials returns a provider that always yields key.
func StaticCredentials(key string) CredentialsProvider {
	return staticCredentials{creds: Credentials{APIKey: key}}
}

type staticCredentials struct {
	creds Credentials
}

func (s staticCredentials) Provide() (Credentials, error) {
	return s.creds, nil
}

// EnvCredentials reads the API key from the environment on every call.
// Nothing is cached, so rotating the variable is picked up by the next attempt.
type EnvCredentials struct {
	// Name of the variable. Defaults to LAGO_API_KEY.
	Name string
	// Lookup defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Provide implements CredentialsProvider.
func (e EnvCredentials) Provide() (Credentials, error) {
	name := e.Name
	if name == "" {
		name = constants.EnvAPIKey
	}

	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	value, ok := lookup(name)
	if !ok || strings.TrimSpace(value) == "" {
		return Credentials{}, NewConfigurationError(fmt.Errorf("%w: %s", ErrMissingAPIKey, name))
	}

	return Credentials{APIKey: strings.TrimSpace(value)}, nil
}
