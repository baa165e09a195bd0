package lagoclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/lago-client/internal/client"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// New creates a new Lago API client from a validated config.
func New(config *lago.Config) (lago.Client, error) {
	if config == nil {
		return nil, lago.NewConfigurationError(lago.ErrConfigRequired)
	}

	c, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewFromEnv creates a client configured from LAGO_REGION, LAGO_API_URL and
// LAGO_API_KEY. The key is read again before every attempt. opts run after
// the environment has been applied and may override any field.
func NewFromEnv(opts ...func(*lago.Options)) (lago.Client, error) {
	options := lago.Options{
		Region:      lago.RegionFromEnv(nil),
		Credentials: lago.EnvCredentials{},
	}

	for _, opt := range opts {
		opt(&options)
	}

	return newFromOptions(options)
}

// NewWithAPIKey creates a client for region with a fixed API key.
func NewWithAPIKey(region lago.Region, apiKey string) (lago.Client, error) {
	return newFromOptions(lago.Options{
		Region:      region,
		Credentials: lago.StaticCredentials(apiKey),
	})
}

// NewWithEndpoint creates a client for a self-hosted deployment. A missing
// scheme defaults to https.
func NewWithEndpoint(endpoint, apiKey string) (lago.Client, error) {
	return newFromOptions(lago.Options{
		Region:      lago.CustomRegion(endpoint),
		Credentials: lago.StaticCredentials(apiKey),
	})
}

func newFromOptions(options lago.Options) (lago.Client, error) {
	options.Region = normalizeRegion(options.Region)

	config, err := lago.NewConfig(options)
	if err != nil {
		return nil, lago.NewConfigurationError(err)
	}

	return New(config)
}

func normalizeRegion(region lago.Region) lago.Region {
	if !region.IsCustom() {
		return region
	}

	endpoint := region.Endpoint()
	if endpoint != "" && !strings.Contains(endpoint, "://") {
		return lago.CustomRegion("https://" + endpoint)
	}

	return region
}
