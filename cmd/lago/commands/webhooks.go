package commands

import (
	"context"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lago-client/internal/constants"
	"github.com/fivetwenty-io/lago-client/internal/metrics"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
	"github.com/fivetwenty-io/lago-client/pkg/webhook"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// NewWebhooksCommand creates the webhooks command group.
func NewWebhooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "webhooks",
		Aliases: []string{"webhook"},
		Short:   "Inspect and receive webhooks",
		Long:    "Fetch the webhook signing key and run a local webhook receiver",
	}

	cmd.AddCommand(newWebhooksPublicKeyCommand())
	cmd.AddCommand(newWebhooksServeCommand())

	return cmd
}

func newWebhooksPublicKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "public-key",
		Short: "Print the webhook public key",
		Long:  "Print the RSA key Lago signs JWT webhooks with, PEM encoded",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			key, err := client.Webhooks().PublicKey(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get webhook public key: %w", err)
			}

			der, err := x509.MarshalPKIXPublicKey(key)
			if err != nil {
				return fmt.Errorf("failed to encode public key: %w", err)
			}

			return pem.Encode(cmd.OutOrStdout(), &pem.Block{Type: "PUBLIC KEY", Bytes: der})
		},
	}
}

func newWebhooksServeCommand() *cobra.Command {
	var (
		addr        string
		path        string
		hmacSecret  string
		metricsPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Receive webhooks locally",
		Long: `Run an HTTP receiver that verifies Lago webhooks and prints each event as a
JSON line. JWT signatures are verified with the organization's public key
unless --hmac-secret is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			collector := metrics.NewCollector()

			verifier, err := newVerifier(ctx, hmacSecret, withMetrics(collector))
			if err != nil {
				return err
			}

			logger, err := newLogger()
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)

			var mu sync.Mutex

			router := webhook.NewRouter(path, verifier, func(_ context.Context, event webhook.Event) error {
				logger.Info("Webhook received", map[string]interface{}{
					"webhook_type": event.WebhookType,
					"unique_key":   event.UniqueKey,
				})

				mu.Lock()
				defer mu.Unlock()

				return writeJSON(cmd, event)
			}, collector.Middleware())

			if metricsPath != "" {
				router.GET(metricsPath, gin.WrapH(collector.Handler()))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: readHeaderTimeout,
			}

			errCh := make(chan error, 1)

			go func() {
				errCh <- server.ListenAndServe()
			}()

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Listening on %s%s (%s signatures)\n", addr, path, verifier.Algorithm())

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}

				return fmt.Errorf("webhook server: %w", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			return server.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", constants.DefaultWebhookAddr, "listen address")
	cmd.Flags().StringVar(&path, "path", constants.DefaultWebhookPath, "webhook route")
	cmd.Flags().StringVar(&hmacSecret, "hmac-secret", "", "verify HMAC signatures with this secret instead of JWT")
	cmd.Flags().StringVar(&metricsPath, "metrics-path", constants.DefaultMetricsPath, "Prometheus metrics route, empty to disable")

	return cmd
}

func newVerifier(ctx context.Context, hmacSecret string, opts ...func(*lago.Options)) (webhook.Verifier, error) {
	if hmacSecret != "" {
		return webhook.HMACVerifier{Secret: hmacSecret}, nil
	}

	client, err := createClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrNoWebhookVerifier, err)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ShortHTTPTimeout)
	defer cancel()

	key, err := client.Webhooks().PublicKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrNoWebhookVerifier, err)
	}

	return webhook.NewJWTVerifier(key), nil
}
