package lago

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/lago-client/internal/constants"
)

// RetryMode selects the retry behaviour.
type RetryMode int

const (
	// RetryStandard retries transient failures with exponential backoff.
	RetryStandard RetryMode = iota
	// RetryOff disables retries.
	RetryOff
	// RetryAdaptive behaves like RetryStandard but also honours Retry-After.
	RetryAdaptive
)

func (m RetryMode) String() string {
	switch m {
	case RetryOff:
		return "off"
	case RetryAdaptive:
		return "adaptive"
	default:
		return "standard"
	}
}

// ParseRetryMode accepts "off", "standard" or "adaptive".
func ParseRetryMode(value string) (RetryMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "standard":
		return RetryStandard, nil
	case "off", "none":
		return RetryOff, nil
	case "adaptive":
		return RetryAdaptive, nil
	default:
		return RetryStandard, fmt.Errorf("%w: unknown mode %q", ErrInvalidRetryConfig, value)
	}
}

// RetryConfig is the retry policy for a single logical call. It holds no
// state; the attempt counter lives in the executor's loop.
type RetryConfig struct {
	Mode RetryMode
	// MaxAttempts is the number of retries after the first attempt.
	MaxAttempts       int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Mode:              RetryStandard,
		MaxAttempts:       constants.DefaultRetryMax,
		InitialDelay:      constants.DefaultRetryWaitMin,
		MaxDelay:          constants.DefaultRetryWaitMax,
		BackoffMultiplier: constants.ExponentialBackoffBase,
	}
}

// NoRetry returns a configuration with retries disabled.
func NoRetry() RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.Mode = RetryOff

	return cfg
}

// Validate checks the configuration bounds.
func (r RetryConfig) Validate() error {
	if r.Mode == RetryOff {
		return nil
	}

	switch {
	case r.MaxAttempts < 1:
		return fmt.Errorf("%w: max attempts must be at least 1, got %d", ErrInvalidRetryConfig, r.MaxAttempts)
	case r.InitialDelay < 0 || r.MaxDelay < 0:
		return fmt.Errorf("%w: delays must not be negative", ErrInvalidRetryConfig)
	case r.MaxDelay < r.InitialDelay:
		return fmt.Errorf("%w: max delay %s is below initial delay %s", ErrInvalidRetryConfig, r.MaxDelay, r.InitialDelay)
	case r.BackoffMultiplier < 1:
		return fmt.Errorf("%w: backoff multiplier must be at least 1, got %v", ErrInvalidRetryConfig, r.BackoffMultiplier)
	}

	return nil
}

// Retries returns the retry budget: MaxAttempts, or 0 when retries are off.
func (r RetryConfig) Retries() int {
	if r.Mode == RetryOff || r.MaxAttempts < 0 {
		return 0
	}

	return r.MaxAttempts
}

// DelayForAttempt returns InitialDelay * BackoffMultiplier^attempt clamped to
// MaxDelay, or zero when retries are off. No jitter is applied.
func (r RetryConfig) DelayForAttempt(attempt int) time.Duration {
	if r.Mode == RetryOff {
		return 0
	}

	if attempt < 0 {
		attempt = 0
	}

	delay := float64(r.InitialDelay) * math.Pow(r.BackoffMultiplier, float64(attempt))
	if math.IsInf(delay, 0) || math.IsNaN(delay) || delay > float64(r.MaxDelay) {
		return r.MaxDelay
	}

	return time.Duration(delay)
}

// DelayForResponse is DelayForAttempt, raised to the server's Retry-After in
// adaptive mode. The result never exceeds MaxDelay.
func (r RetryConfig) DelayForResponse(attempt int, retryAfter time.Duration) time.Duration {
	delay := r.DelayForAttempt(attempt)

	if r.Mode != RetryAdaptive || retryAfter <= delay {
		return delay
	}

	return min(retryAfter, r.MaxDelay)
}

// ShouldRetry reports whether err warrants another attempt after attempt
// retries have already been made.
func (r RetryConfig) ShouldRetry(err error, attempt int) bool {
	if r.Mode == RetryOff || attempt >= r.MaxAttempts {
		return false
	}

	lagoErr, ok := AsError(err)
	if !ok {
		return false
	}

	return lagoErr.Retryable()
}

// WorstCaseBackoff is the total sleep across the full retry budget. The
// per-attempt timeout does not bound it.
func (r RetryConfig) WorstCaseBackoff() time.Duration {
	var total time.Duration

	for attempt := range r.Retries() {
		total += r.DelayForAttempt(attempt)
	}

	return total
}

// ParseRetryAfter reads a Retry-After header given in seconds or as an HTTP date.
// Unparseable or past values yield zero.
func ParseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}

		return time.Duration(seconds) * time.Second
	}

	when, err := http.ParseTime(value)
	if err != nil {
		return 0
	}

	if wait := when.Sub(now); wait > 0 {
		return wait
	}

	return 0
}
