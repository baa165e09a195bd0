package lago

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an Error.
type ErrorKind int

const (
	// ErrorKindHTTP is a transport-level failure: connection reset, timeout, DNS.
	ErrorKindHTTP ErrorKind = iota + 1
	// ErrorKindSerialization is a response body that does not match the expected shape.
	ErrorKindSerialization
	// ErrorKindAPI is a non-2xx response other than 401 and 429.
	ErrorKindAPI
	// ErrorKindConfiguration is local misuse: bad URL, unsupported method, missing credential.
	ErrorKindConfiguration
	// ErrorKindUnauthorized is a 401 response.
	ErrorKindUnauthorized
	// ErrorKindRateLimit is a 429 response.
	ErrorKindRateLimit
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindHTTP:
		return "http"
	case ErrorKindSerialization:
		return "serialization"
	case ErrorKindAPI:
		return "api"
	case ErrorKindConfiguration:
		return "configuration"
	case ErrorKindUnauthorized:
		return "unauthorized"
	case ErrorKindRateLimit:
		return "rate_limit"
	default:
		return "unknown"
	}
}

// UnreadableBody replaces the message of an API error whose body could not be read.
const UnreadableBody = "<unreadable response body>"

// Error is the single error type returned across the client boundary.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	// Message is the raw response body for API errors.
	Message string
	// Code and Details come from Lago's JSON error envelope when present.
	Code    string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case ErrorKindAPI:
		return fmt.Sprintf("lago api error (status %d): %s", e.StatusCode, e.Message)
	case ErrorKindUnauthorized:
		return "lago: unauthorized"
	case ErrorKindRateLimit:
		return "lago: rate limited"
	case ErrorKindHTTP, ErrorKindSerialization, ErrorKindConfiguration:
		if e.Err != nil {
			return fmt.Sprintf("lago %s error: %v", e.Kind, e.Err)
		}

		return fmt.Sprintf("lago %s error: %s", e.Kind, e.Message)
	default:
		return "lago: unknown error"
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the kind is transient: transport failures,
// rate limiting and 5xx responses.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case ErrorKindHTTP, ErrorKindRateLimit:
		return true
	case ErrorKindAPI:
		return e.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}

// Static errors for err113 compliance.
var (
	ErrMissingAPIKey      = errors.New("API key is not set")
	ErrUnsupportedMethod  = errors.New("unsupported HTTP method")
	ErrInvalidRetryConfig = errors.New("invalid retry configuration")
	ErrConfigRequired     = errors.New("config is required")
	ErrInvalidPublicKey   = errors.New("invalid webhook public key")
	ErrEmptyEventCode     = errors.New("event code is required")
	ErrEmptyIdentifier    = errors.New("resource identifier is required")
	ErrInvalidEndpoint    = errors.New("invalid API endpoint")
)

// NewHTTPError wraps a transport failure.
func NewHTTPError(err error) *Error {
	return &Error{Kind: ErrorKindHTTP, Err: err}
}

// NewSerializationError wraps a body decode failure.
func NewSerializationError(statusCode int, err error) *Error {
	return &Error{Kind: ErrorKindSerialization, StatusCode: statusCode, Err: err}
}

// NewConfigurationError wraps a local misuse error.
func NewConfigurationError(err error) *Error {
	return &Error{Kind: ErrorKindConfiguration, Err: err}
}

// NewUnauthorizedError builds the error for a 401 response.
func NewUnauthorizedError(body string) *Error {
	return &Error{Kind: ErrorKindUnauthorized, StatusCode: http.StatusUnauthorized, Message: body}
}

// NewRateLimitError builds the error for a 429 response.
func NewRateLimitError(body string) *Error {
	return &Error{Kind: ErrorKindRateLimit, StatusCode: http.StatusTooManyRequests, Message: body}
}

// NewAPIError builds an API error from a non-2xx status and its raw body.
// Lago's error envelope is decoded best-effort into Code and Details.
func NewAPIError(statusCode int, body string) *Error {
	apiErr := &Error{Kind: ErrorKindAPI, StatusCode: statusCode, Message: body}

	envelope, err := ParseErrorEnvelope([]byte(body))
	if err == nil {
		apiErr.Code = envelope.Code
		apiErr.Details = envelope.ErrorDetails
	}

	return apiErr
}

// ErrorEnvelope is the JSON body Lago returns with non-2xx responses.
type ErrorEnvelope struct {
	Status       int            `json:"status"`
	Error        string         `json:"error"`
	Code         string         `json:"code,omitempty"`
	ErrorDetails map[string]any `json:"error_details,omitempty"`
}

// ParseErrorEnvelope parses an error response from JSON.
func ParseErrorEnvelope(data []byte) (*ErrorEnvelope, error) {
	var envelope ErrorEnvelope

	err := json.Unmarshal(data, &envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal error envelope: %w", err)
	}

	return &envelope, nil
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	lagoErr := &Error{}
	if errors.As(err, &lagoErr) {
		return lagoErr, true
	}

	return nil, false
}

// IsKind checks if err carries a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	lagoErr, ok := AsError(err)

	return ok && lagoErr.Kind == kind
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return IsKind(err, ErrorKindUnauthorized)
}

// IsRateLimit checks if the error is a rate limit error.
func IsRateLimit(err error) bool {
	return IsKind(err, ErrorKindRateLimit)
}

// IsNotFound checks if the error is a 404 API error.
func IsNotFound(err error) bool {
	lagoErr, ok := AsError(err)

	return ok && lagoErr.Kind == ErrorKindAPI && lagoErr.StatusCode == http.StatusNotFound
}

// IsServerError checks if the error is a 5xx API error.
func IsServerError(err error) bool {
	lagoErr, ok := AsError(err)

	return ok && lagoErr.Kind == ErrorKindAPI && lagoErr.StatusCode >= http.StatusInternalServerError
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	lagoErr, ok := AsError(err)
	if !ok {
		return 0
	}

	switch lagoErr.Kind {
	case ErrorKindUnauthorized:
		return http.StatusUnauthorized
	case ErrorKindRateLimit:
		return http.StatusTooManyRequests
	default:
		return lagoErr.StatusCode
	}
}
