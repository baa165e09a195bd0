package client

import (
	"github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// Client implements the lago.Client interface.
type Client struct {
	httpClient *http.Client
	config     *lago.Config

	// Resource clients
	customers       lago.CustomersClient
	subscriptions   lago.SubscriptionsClient
	plans           lago.PlansClient
	invoices        lago.InvoicesClient
	creditNotes     lago.CreditNotesClient
	fees            lago.FeesClient
	wallets         lago.WalletsClient
	billableMetrics lago.BillableMetricsClient
	coupons         lago.CouponsClient
	addOns          lago.AddOnsClient
	events          lago.EventsClient
	organization    lago.OrganizationClient
	webhooks        lago.WebhooksClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *lago.Config) []http.Option {
	return []http.Option{
		http.WithLogger(config.Logger()),
		http.WithDebug(config.Debug()),
		http.WithUserAgent(config.UserAgent()),
		http.WithRetryConfig(config.Retry()),
		http.WithTimeout(config.Timeout()),
		http.WithTransport(config.Transport()),
		http.WithInterceptors(config.Interceptors()),
	}
}

// New creates a new Lago API client. The endpoint is fixed by the config's
// region; the API key is resolved again for every attempt.
func New(config *lago.Config) (*Client, error) {
	if config == nil {
		return nil, lago.NewConfigurationError(lago.ErrConfigRequired)
	}

	httpClient := http.NewClient(config.Endpoint(), config.Credentials(), createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		config:     config,
	}

	client.initializeResourceClients()

	return client, nil
}

// Config returns the configuration the client was built from.
func (c *Client) Config() *lago.Config {
	return c.config
}

// Customers implements lago.Client.Customers.
func (c *Client) Customers() lago.CustomersClient {
	return c.customers
}

// Subscriptions implements lago.Client.Subscriptions.
func (c *Client) Subscriptions() lago.SubscriptionsClient {
	return c.subscriptions
}

// Plans implements lago.Client.Plans.
func (c *Client) Plans() lago.PlansClient {
	return c.plans
}

// Invoices implements lago.Client.Invoices.
func (c *Client) Invoices() lago.InvoicesClient {
	return c.invoices
}

// CreditNotes implements lago.Client.CreditNotes.
func (c *Client) CreditNotes() lago.CreditNotesClient {
	return c.creditNotes
}

// Fees implements lago.Client.Fees.
func (c *Client) Fees() lago.FeesClient {
	return c.fees
}

// Wallets implements lago.Client.Wallets.
func (c *Client) Wallets() lago.WalletsClient {
	return c.wallets
}

// BillableMetrics implements lago.Client.BillableMetrics.
func (c *Client) BillableMetrics() lago.BillableMetricsClient {
	return c.billableMetrics
}

// Coupons implements lago.Client.Coupons.
func (c *Client) Coupons() lago.CouponsClient {
	return c.coupons
}

// AddOns implements lago.Client.AddOns.
func (c *Client) AddOns() lago.AddOnsClient {
	return c.addOns
}

// Events implements lago.Client.Events.
func (c *Client) Events() lago.EventsClient {
	return c.events
}

// Organization implements lago.Client.Organization.
func (c *Client) Organization() lago.OrganizationClient {
	return c.organization
}

// Webhooks implements lago.Client.Webhooks.
func (c *Client) Webhooks() lago.WebhooksClient {
	return c.webhooks
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.customers = NewCustomersClient(c.httpClient)
	c.subscriptions = NewSubscriptionsClient(c.httpClient)
	c.plans = NewPlansClient(c.httpClient)
	c.invoices = NewInvoicesClient(c.httpClient)
	c.creditNotes = NewCreditNotesClient(c.httpClient)
	c.fees = NewFeesClient(c.httpClient)
	c.wallets = NewWalletsClient(c.httpClient)
	c.billableMetrics = NewBillableMetricsClient(c.httpClient)
	c.coupons = NewCouponsClient(c.httpClient)
	c.addOns = NewAddOnsClient(c.httpClient)
	c.events = NewEventsClient(c.httpClient)
	c.organization = NewOrganizationClient(c.httpClient)
	c.webhooks = NewWebhooksClient(c.httpClient)
}

var _ lago.Client = (*Client)(nil)
