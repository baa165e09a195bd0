// Package lagoclient provides the primary entry point for constructing a
// Lago billing API client that implements the lago.Client interface.
//
// It layers the HTTP executor, retries and per-attempt authentication on top
// of the resource interfaces and types defined in the lago package. Most
// applications import lagoclient to build a client, then use the returned
// lago.Client to reach resource-specific clients such as Customers(),
// Invoices() or Events().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/lago-client/pkg/lago"
//	  "github.com/fivetwenty-io/lago-client/pkg/lagoclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Region, endpoint and key from LAGO_REGION, LAGO_API_URL, LAGO_API_KEY.
//	  cli, err := lagoclient.NewFromEnv()
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a fixed key against the EU region:
//	  cli, err = lagoclient.NewWithAPIKey(lago.RegionEU, "lago_key")
//
//	  // Or with full control over retries and timeouts:
//	  retry := lago.DefaultRetryConfig()
//	  retry.Mode = lago.RetryAdaptive
//	  cfg, err := lago.NewConfig(lago.Options{
//	    Region:      lago.CustomRegion("https://lago.internal/api/v1"),
//	    Credentials: lago.StaticCredentials("lago_key"),
//	    Retry:       &retry,
//	  })
//	  if err != nil { log.Fatal(err) }
//	  cli, err = lagoclient.New(cfg)
//
//	  _, err = cli.Events().Create(ctx, &lago.EventInput{
//	    ExternalSubscriptionID: "sub_1",
//	    Code:                   "api_calls",
//	  })
//	}
//
// # Credentials
//
// NewFromEnv installs lago.EnvCredentials, which reads LAGO_API_KEY before
// every attempt, so a rotated key is picked up by the next retry. The region
// is resolved once, when the client is built.
package lagoclient
