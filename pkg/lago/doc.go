// Package lago defines the public surface of the Lago billing API client:
// configuration, credentials, regions, the retry policy, the error taxonomy,
// query builders and resource models.
//
// Clients are created through pkg/lagoclient:
//
//	cfg, err := lago.NewConfig(lago.Options{
//	    Region:      lago.RegionEU,
//	    Credentials: lago.StaticCredentials(apiKey),
//	})
//	if err != nil {
//	    return err
//	}
//
//	cli, err := lagoclient.New(cfg)
//	if err != nil {
//	    return err
//	}
//
//	customers, err := cli.Customers().List(ctx, &lago.CustomerFilter{
//	    Pagination: lago.Pagination{PerPage: lago.Ptr(50)},
//	})
//
// # Errors
//
// Every failure is a *lago.Error wrapped with call-site context. Use
// errors.As or the helpers IsUnauthorized, IsRateLimit, IsNotFound and
// IsServerError:
//
//	var lagoErr *lago.Error
//	if errors.As(err, &lagoErr) && lagoErr.Kind == lago.ErrorKindAPI {
//	    log.Printf("status %d: %s", lagoErr.StatusCode, lagoErr.Message)
//	}
//
// # Retries
//
// Transport failures, 429 and 5xx responses are retried with deterministic
// exponential backoff (no jitter). 4xx responses, 401, decode failures and
// configuration errors are returned on first occurrence.
//
// # Pagination
//
// CollectAll follows meta.next_page:
//
//	all, err := lago.CollectAll(ctx, 0, func(ctx context.Context, page int) (*lago.ListResponse[lago.Plan], error) {
//	    return cli.Plans().List(ctx, &lago.ListOptions{Pagination: lago.Pagination{Page: &page}})
//	})
package lago
