package webhook

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fivetwenty-io/lago-client/internal/constants"
)

// HeaderRequestID carries the receiver-side request id.
const HeaderRequestID = "X-Request-Id"

// HandlerFunc processes a verified event. A returned error makes the handler
// answer 500 so Lago redelivers.
type HandlerFunc func(ctx context.Context, event Event) error

type errorResponse struct {
	Error string `json:"error"`
}

// Handler returns a gin handler that verifies, decodes and dispatches Lago
// webhooks. It answers 401 on a bad signature, 400 on a bad payload, 500 when
// fn fails and 200 otherwise.
func Handler(v Verifier, fn HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := readBody(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error()})

			return
		}

		algorithm := c.GetHeader(constants.HeaderWebhookAlgorithm)
		if algorithm != "" && algorithm != v.Algorithm() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
				Error: fmt.Sprintf("%s: got %q, want %q", ErrAlgorithmMismatch, algorithm, v.Algorithm()),
			})

			return
		}

		err = v.Verify(body, c.GetHeader(constants.HeaderWebhookSignature))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})

			return
		}

		event, err := ParseEvent(body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error()})

			return
		}

		event.UniqueKey = c.GetHeader(constants.HeaderWebhookUniqueKey)

		err = fn(c.Request.Context(), event)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "handler failed"})

			return
		}

		c.Status(http.StatusOK)
	}
}

// RequestID tags every request with an X-Request-Id, reusing the caller's.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set("request_id", id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// NewRouter mounts Handler on POST path behind recovery, request ids and any
// extra middleware.
func NewRouter(path string, v Verifier, fn HandlerFunc, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID())
	router.Use(middleware...)
	router.POST(path, Handler(v, fn))

	return router
}

func readBody(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, constants.MaxWebhookBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	if len(data) > constants.MaxWebhookBodySize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedEvent, constants.MaxWebhookBodySize)
	}

	return data, nil
}
