package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fivetwenty-io/lago-client/internal/constants"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
	"github.com/hashicorp/go-retryablehttp"
)

// retryLoop is the state of one logical call. retryablehttp drives the loop;
// retryLoop decides each transition from the attempt's outcome:
// success and terminal failures stop, retryable failures advance retries.
type retryLoop struct {
	policy lago.RetryConfig
	logger lago.Logger

	// attempts counts every attempt, retries counts those after the first.
	attempts int
	retries  int
	last     *lago.Error
}

func newRetryLoop(policy lago.RetryConfig, logger lago.Logger) *retryLoop {
	return &retryLoop{policy: policy, logger: logger}
}

// client builds a single-use retryablehttp client sharing the long-lived
// connection pool of httpClient.
func (l *retryLoop) client(httpClient *http.Client) *retryablehttp.Client {
	return &retryablehttp.Client{
		HTTPClient:   httpClient,
		RetryMax:     l.policy.Retries(),
		RetryWaitMin: l.policy.InitialDelay,
		RetryWaitMax: l.policy.MaxDelay,
		CheckRetry:   l.checkRetry,
		Backoff:      l.backoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
}

func (l *retryLoop) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	l.attempts++

	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	outcome := attemptOutcome(resp, err)
	if outcome == nil {
		return false, nil
	}

	if !l.policy.ShouldRetry(outcome, l.retries) {
		return false, nil
	}

	l.retries++
	l.last = outcome

	return true, nil
}

func (l *retryLoop) backoff(_, _ time.Duration, attemptNum int, resp *http.Response) time.Duration {
	var retryAfter time.Duration
	if resp != nil {
		retryAfter = lago.ParseRetryAfter(resp.Header.Get(constants.HeaderRetryAfter), time.Now())
	}

	delay := l.policy.DelayForResponse(attemptNum, retryAfter)

	fields := map[string]interface{}{
		"attempt": l.attempts,
		"delay":   delay.String(),
	}

	if l.last != nil {
		fields["kind"] = l.last.Kind.String()
		if l.last.StatusCode != 0 {
			fields["status"] = l.last.StatusCode
		}
	}

	l.logger.Warn("Retrying request", fields)

	return delay
}

// attemptOutcome classifies a single attempt without reading the body.
// A nil result means success.
func attemptOutcome(resp *http.Response, err error) *lago.Error {
	if err != nil {
		if lagoErr, ok := lago.AsError(err); ok {
			return lagoErr
		}

		return lago.NewHTTPError(err)
	}

	if isSuccess(resp.StatusCode) {
		return nil
	}

	return statusError(resp.StatusCode, "")
}
