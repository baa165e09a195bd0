package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Lago endpoints.
const (
	// USEndpoint is the base URL of the US-hosted Lago API.
	USEndpoint = "https://api.getlago.com/api/v1"

	// EUEndpoint is the base URL of the EU-hosted Lago API.
	EUEndpoint = "https://api.eu.getlago.com/api/v1"

	// WebhookIssuer is the issuer claim of JWT-signed webhooks.
	WebhookIssuer = "https://api.getlago.com"
)

// Environment variables.
const (
	// EnvAPIKey holds the API key read by the environment credentials provider.
	EnvAPIKey = "LAGO_API_KEY"

	// EnvRegion selects "us", "eu" or a custom endpoint URL.
	EnvRegion = "LAGO_REGION"

	// EnvAPIURL is the custom endpoint used when LAGO_REGION is unset.
	EnvAPIURL = "LAGO_API_URL"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for a single HTTP attempt.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout bounds startup lookups, such as the webhook public key.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry defaults.
const (
	// DefaultRetryMax is the default number of retries after the first attempt.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the delay before the first retry.
	DefaultRetryWaitMin = 100 * time.Millisecond

	// DefaultRetryWaitMax caps the delay between retries.
	DefaultRetryWaitMax = 30 * time.Second

	// ExponentialBackoffBase is the base for exponential backoff.
	ExponentialBackoffBase = 2.0
)

// HTTP headers and values.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderUserAgent     = "User-Agent"
	HeaderRetryAfter    = "Retry-After"

	// MediaTypeJSON is the content type of every request and response body.
	MediaTypeJSON = "application/json"

	// BearerPrefix precedes the API key in the Authorization header.
	BearerPrefix = "Bearer "
)

// Webhook headers.
const (
	HeaderWebhookSignature = "X-Lago-Signature"
	HeaderWebhookAlgorithm = "X-Lago-Signature-Algorithm"
	HeaderWebhookUniqueKey = "X-Lago-Unique-Key"

	// WebhookAlgorithmJWT marks a JWT-signed webhook.
	WebhookAlgorithmJWT = "jwt"

	// WebhookAlgorithmHMAC marks an HMAC-signed webhook.
	WebhookAlgorithmHMAC = "hmac"
)

// Client identity.
const (
	// ClientName prefixes the User-Agent header.
	ClientName = "lago-go-client"

	// Version is the client library version.
	Version = "0.4.0"
)

// Pagination limits.
const (
	// DefaultPageSize matches the API's own per_page default.
	DefaultPageSize = 20

	// LargePageSize is the page size used when walking every page.
	LargePageSize = 100

	// MaxPages is used to prevent infinite loops in pagination.
	MaxPages = 50
)

// Relay defaults.
const (
	// DefaultRelaySubject is the NATS subject the relay listens on.
	DefaultRelaySubject = "lago.events"

	// DefaultRelayQueue is the NATS queue group shared by relay instances.
	DefaultRelayQueue = "lago-relay"

	// DefaultRelayRate is the default number of events forwarded per second.
	DefaultRelayRate = 50

	// DefaultRelayBurst is the limiter burst size.
	DefaultRelayBurst = 10
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// MinimumArgumentCount is the argument count of KEY VALUE commands.
	MinimumArgumentCount = 2

	// DisplayDateFormat is used for timestamps in tables.
	DisplayDateFormat = "2006-01-02 15:04:05"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// VisibleKeySuffix is the number of trailing key characters left unmasked.
	VisibleKeySuffix = 4
)

// Webhook receiver defaults.
const (
	// DefaultWebhookAddr is the listen address of `lago webhooks serve`.
	DefaultWebhookAddr = ":8080"

	// DefaultWebhookPath is the route webhooks are posted to.
	DefaultWebhookPath = "/webhooks/lago"

	// DefaultMetricsPath is the Prometheus scrape route.
	DefaultMetricsPath = "/metrics"

	// MaxWebhookBodySize caps webhook payloads (1MB).
	MaxWebhookBodySize = 1024 * 1024
)
