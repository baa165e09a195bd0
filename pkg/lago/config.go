package lago

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fivetwenty-io/lago-client/internal/constants"
)

// Options is the complete input of NewConfig. Every field is optional.
//
// # Authentication
//
// Credentials defaults to EnvCredentials{}, which re-reads LAGO_API_KEY before
// every attempt. Use StaticCredentials for a fixed key.
//
// # Timeouts and retries
//
// Timeout bounds each HTTP attempt, not the whole call: with the default retry
// policy a call may take up to Retry.WorstCaseBackoff() plus four timeouts.
// Callers that need an overall deadline should put it on the context.
type Options struct {
	// Region defaults to RegionUS.
	Region Region
	// Credentials defaults to EnvCredentials{}.
	Credentials CredentialsProvider
	// Timeout per attempt. Defaults to 30s.
	Timeout time.Duration
	// Retry defaults to DefaultRetryConfig().
	Retry *RetryConfig
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Logger receives request, response and retry logs.
	Logger Logger
	// Debug enables request/response logging at debug level.
	Debug bool
	// Transport replaces the underlying round tripper.
	Transport http.RoundTripper
	// Interceptors run around every call, once per call rather than per attempt.
	Interceptors *InterceptorChain
}

// Config is the immutable client configuration built by NewConfig. It is
// safe to share across goroutines.
type Config struct {
	region      Region
	credentials CredentialsProvider
	timeout     time.Duration
	retry       RetryConfig
	userAgent   string
	logger      Logger
	debug       bool
	transport   http.RoundTripper

	interceptors *InterceptorChain
}

// DefaultUserAgent is sent when Options.UserAgent is empty.
func DefaultUserAgent() string {
	return constants.ClientName + "/" + constants.Version
}

// NewConfig validates opts and fills defaults.
func NewConfig(opts Options) (*Config, error) {
	retry := DefaultRetryConfig()
	if opts.Retry != nil {
		retry = *opts.Retry
	}

	err := retry.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating retry config: %w", err)
	}

	err = opts.Region.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating region: %w", err)
	}

	if opts.Timeout < 0 {
		return nil, fmt.Errorf("%w: negative timeout %s", ErrInvalidRetryConfig, opts.Timeout)
	}

	cfg := &Config{
		region:      opts.Region,
		credentials: opts.Credentials,
		timeout:     opts.Timeout,
		retry:       retry,
		userAgent:   opts.UserAgent,
		logger:      opts.Logger,
		debug:       opts.Debug,
		transport:   opts.Transport,

		interceptors: opts.Interceptors,
	}

	if cfg.credentials == nil {
		cfg.credentials = EnvCredentials{}
	}

	if cfg.timeout == 0 {
		cfg.timeout = constants.DefaultHTTPTimeout
	}

	if cfg.userAgent == "" {
		cfg.userAgent = DefaultUserAgent()
	}

	if cfg.logger == nil {
		cfg.logger = NopLogger{}
	}

	return cfg, nil
}

// Region returns the configured region.
func (c *Config) Region() Region { return c.region }

// Endpoint returns the region's base URL.
func (c *Config) Endpoint() string { return c.region.Endpoint() }

// Credentials returns the credentials provider.
func (c *Config) Credentials() CredentialsProvider { return c.credentials }

// Timeout returns the per-attempt timeout.
func (c *Config) Timeout() time.Duration { return c.timeout }

// Retry returns the retry policy.
func (c *Config) Retry() RetryConfig { return c.retry }

// UserAgent returns the User-Agent header value.
func (c *Config) UserAgent() string { return c.userAgent }

// Logger returns the configured logger.
func (c *Config) Logger() Logger { return c.logger }

// Debug reports whether request/response logging is enabled.
func (c *Config) Debug() bool { return c.debug }

// Transport returns the custom round tripper, or nil.
func (c *Config) Transport() http.RoundTripper { return c.transport }

// Interceptors returns the interceptor chain, or nil.
func (c *Config) Interceptors() *InterceptorChain { return c.interceptors }
