package commands

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lago-client/internal/constants"
	"github.com/fivetwenty-io/lago-client/internal/metrics"
	"github.com/fivetwenty-io/lago-client/internal/relay"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// NewRelayCommand creates the relay command group.
func NewRelayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Forward usage events from a message broker",
		Long:  "Consume usage events from a message broker and send them to Lago",
	}

	cmd.AddCommand(newRelayNATSCommand())

	return cmd
}

func newRelayNATSCommand() *cobra.Command {
	var (
		url         string
		subject     string
		queue       string
		rate        float64
		burst       int
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "nats",
		Short: "Relay events published on NATS",
		Long: `Queue-subscribe to a NATS subject and create one Lago event per message.
Messages are event objects as accepted by POST /events; a missing
transaction_id is generated. Requests with a reply subject receive
{"ok":bool,"transaction_id":string,"error":string}.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			collector := metrics.NewCollector()

			client, err := createClient(withMetrics(collector))
			if err != nil {
				return err
			}

			logger, err := newLogger()
			if err != nil {
				return err
			}

			defer func() { _ = logger.Zap().Sync() }()

			nc, err := nats.Connect(url,
				nats.Name("lago-relay"),
				nats.MaxReconnects(-1),
				nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
					logger.Warn("NATS disconnected", map[string]interface{}{"error": err})
				}),
				nats.ReconnectHandler(func(nc *nats.Conn) {
					logger.Info("NATS reconnected", map[string]interface{}{"url": nc.ConnectedUrl()})
				}),
			)
			if err != nil {
				return fmt.Errorf("connecting to NATS at %s: %w", url, err)
			}
			defer nc.Close()

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Relaying %s (queue %s) to %s\n", subject, queue, resolveRegion().Endpoint())

			if metricsAddr != "" {
				server := serveMetrics(metricsAddr, collector, logger)
				defer func() { _ = server.Close() }()
			}

			r := relay.New(client.Events(), rate, burst, logger)
			r.Metrics = collector

			return r.Run(cmd.Context(), nc, subject, queue)
		},
	}

	cmd.Flags().StringVar(&url, "url", nats.DefaultURL, "NATS server URL")
	cmd.Flags().StringVar(&subject, "subject", constants.DefaultRelaySubject, "subject to consume")
	cmd.Flags().StringVar(&queue, "queue", constants.DefaultRelayQueue, "queue group")
	cmd.Flags().Float64Var(&rate, "rate", constants.DefaultRelayRate, "maximum events per second")
	cmd.Flags().IntVar(&burst, "burst", constants.DefaultRelayBurst, "rate limiter burst")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func serveMetrics(addr string, collector *metrics.Collector, logger lago.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(constants.DefaultMetricsPath, collector.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server stopped", map[string]interface{}{"error": err})
		}
	}()

	return server
}
