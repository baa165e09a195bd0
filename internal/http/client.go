package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fivetwenty-io/lago-client/internal/auth"
	"github.com/fivetwenty-io/lago-client/internal/constants"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

// Client executes authenticated JSON requests against the Lago API with
// retries. It holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL     string
	credentials lago.CredentialsProvider
	httpClient  *http.Client
	transport   http.RoundTripper
	timeout     time.Duration
	retry       lago.RetryConfig
	userAgent   string
	logger      lago.Logger
	debug       bool

	interceptors *lago.InterceptorChain
	// endpointErr is reported by every call when baseURL is unusable.
	endpointErr error
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger lago.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetryConfig sets the retry policy.
func WithRetryConfig(retry lago.RetryConfig) Option {
	return func(c *Client) {
		c.retry = retry
	}
}

// WithTimeout bounds each attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithTransport replaces the round tripper under the authentication layer.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithInterceptors runs chain around every call.
func WithInterceptors(chain *lago.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a new HTTP client.
func NewClient(baseURL string, credentials lago.CredentialsProvider, opts ...Option) *Client {
	client := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		credentials: credentials,
		timeout:     constants.DefaultHTTPTimeout,
		retry:       lago.DefaultRetryConfig(),
		userAgent:   lago.DefaultUserAgent(),
		logger:      lago.NopLogger{},
	}

	for _, opt := range opts {
		opt(client)
	}

	client.endpointErr = lago.ValidateEndpoint(client.baseURL)

	base := client.transport
	if base == nil {
		base = cleanhttp.DefaultPooledTransport()
	}

	client.httpClient = &http.Client{
		Timeout: client.timeout,
		Transport: &auth.BearerTransport{
			Provider: credentials,
			Base:     base,
		},
	}

	return client
}

// BaseURL returns the endpoint requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request represents an HTTP request.
type Request struct {
	Method  string
	Path    string
	Query   lago.Params
	Body    interface{}
	Headers map[string]string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
	// Attempts is the number of attempts the call took, including the first.
	Attempts int
}

// Do performs an HTTP request. On an API error the response is returned
// alongside the error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	method, err := supportedMethod(req.Method)
	if err != nil {
		return nil, err
	}

	if c.endpointErr != nil {
		return nil, c.endpointErr
	}

	var rawBody interface{}

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, lago.NewConfigurationError(fmt.Errorf("encoding request body: %w", err))
		}

		rawBody = encoded
	}

	fullURL := c.baseURL + req.Path
	if query := req.Query.Encode(); query != "" {
		fullURL += "?" + query
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, fullURL, rawBody)
	if err != nil {
		return nil, lago.NewConfigurationError(fmt.Errorf("building request: %w", err))
	}

	httpReq.Header.Set(constants.HeaderAccept, constants.MediaTypeJSON)
	httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)

	if rawBody != nil {
		httpReq.Header.Set(constants.HeaderContentType, constants.MediaTypeJSON)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	intercepted := &lago.InterceptedRequest{
		Method:  method,
		Path:    req.Path,
		Headers: httpReq.Header,
	}

	err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, lago.NewConfigurationError(err)
	}

	httpReq.Header = intercepted.Headers

	response, err := c.dispatch(httpReq)

	return c.afterResponse(ctx, intercepted, response, err)
}

func (c *Client) dispatch(httpReq *retryablehttp.Request) (*Response, error) {
	loop := newRetryLoop(c.retry, c.logger)
	retryClient := loop.client(c.httpClient)

	if c.debug {
		retryClient.RequestLogHook = c.logRequest
		retryClient.ResponseLogHook = c.logResponse
	}

	resp, err := retryClient.Do(httpReq)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		return &Response{Attempts: loop.attempts}, transportError(err)
	}

	defer func() { _ = resp.Body.Close() }()

	return classify(resp, loop.attempts)
}

// afterResponse runs the response interceptors. A call that already failed
// keeps its own error.
func (c *Client) afterResponse(ctx context.Context, req *lago.InterceptedRequest, response *Response, callErr error) (*Response, error) {
	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, &lago.InterceptedResponse{
		StatusCode: response.StatusCode,
		Headers:    response.Headers,
		Body:       response.Body,
		Attempts:   response.Attempts,
		Err:        callErr,
	})

	if callErr != nil {
		// No response was received.
		if response.StatusCode == 0 {
			return nil, callErr
		}

		return response, callErr
	}

	if err != nil {
		return response, lago.NewConfigurationError(err)
	}

	return response, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query lago.Params) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}

// Send performs req and decodes a 2xx body into T. A body that is not valid
// JSON for T, including an empty one, is a Serialization error.
func Send[T any](ctx context.Context, c *Client, req *Request) (*T, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var out T

	err = json.Unmarshal(resp.Body, &out)
	if err != nil {
		return nil, lago.NewSerializationError(resp.StatusCode, fmt.Errorf("decoding response: %w", err))
	}

	return &out, nil
}

func supportedMethod(method string) (string, error) {
	switch upper := strings.ToUpper(method); upper {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return upper, nil
	default:
		return "", lago.NewConfigurationError(fmt.Errorf("%w: %q", lago.ErrUnsupportedMethod, method))
	}
}

// classify turns the final response into a Response and, for non-2xx
// statuses, the matching error.
func classify(resp *http.Response, attempts int) (*Response, error) {
	data, readErr := io.ReadAll(resp.Body)

	response := &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
		Headers:    resp.Header,
		Attempts:   attempts,
	}

	if isSuccess(resp.StatusCode) {
		if readErr != nil {
			return response, lago.NewHTTPError(fmt.Errorf("reading response body: %w", readErr))
		}

		return response, nil
	}

	message := string(data)
	if readErr != nil {
		message = lago.UnreadableBody
	}

	return response, statusError(resp.StatusCode, message)
}

func statusError(status int, body string) *lago.Error {
	switch status {
	case http.StatusUnauthorized:
		return lago.NewUnauthorizedError(body)
	case http.StatusTooManyRequests:
		return lago.NewRateLimitError(body)
	default:
		return lago.NewAPIError(status, body)
	}
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// transportError maps an error from the retry loop. Errors already
// classified, such as a credentials failure, pass through unchanged.
func transportError(err error) error {
	if lagoErr, ok := lago.AsError(err); ok {
		return lagoErr
	}

	return lago.NewHTTPError(err)
}

func (c *Client) logRequest(_ retryablehttp.Logger, req *http.Request, attempt int) {
	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method":  req.Method,
		"url":     req.URL.String(),
		"attempt": attempt + 1,
	})
}

func (c *Client) logResponse(_ retryablehttp.Logger, resp *http.Response) {
	fields := map[string]interface{}{
		"status": resp.StatusCode,
	}

	if resp.Request != nil {
		fields["url"] = resp.Request.URL.String()
	}

	c.logger.Debug("HTTP Response", fields)
}
