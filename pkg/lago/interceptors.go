package lago

import (
	"context"
	"fmt"
	"net/http"
)

// InterceptedRequest is the view of an outgoing call given to request
// interceptors. Headers may be modified; Method and Path are informational.
type InterceptedRequest struct {
	Method  string
	Path    string
	Headers http.Header
}

// InterceptedResponse is the outcome of a call as seen by response
// interceptors. StatusCode is zero when no response was received.
type InterceptedResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Attempts   int
	Err        error
}

// RequestInterceptor is called once per call, before the first attempt.
type RequestInterceptor func(ctx context.Context, req *InterceptedRequest) error

// ResponseInterceptor is called once per call, after the final attempt.
type ResponseInterceptor func(ctx context.Context, req *InterceptedRequest, resp *InterceptedResponse) error

// InterceptorChain runs interceptors in the order they were added. Build it
// before handing it to Options; it is read-only afterwards.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates an empty chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{}
}

// AddRequestInterceptor appends a request interceptor.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) *InterceptorChain {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)

	return c
}

// AddResponseInterceptor appends a response interceptor.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) *InterceptorChain {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)

	return c
}

// ExecuteRequestInterceptors runs the request interceptors, stopping at the
// first failure.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *InterceptedRequest) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs the response interceptors, stopping at
// the first failure.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *InterceptedRequest, resp *InterceptedResponse) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// HeaderInterceptor sets fixed headers on every call.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(_ context.Context, req *InterceptedRequest) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

// LoggingInterceptor logs every call before dispatch.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(_ context.Context, req *InterceptedRequest) error {
		logger.Debug("API Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs the outcome of every call.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(_ context.Context, req *InterceptedRequest, resp *InterceptedResponse) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
			"attempts":    resp.Attempts,
		}

		if resp.Err != nil {
			fields["error"] = resp.Err
			logger.Error("API Response Error", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}
