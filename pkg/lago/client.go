package lago

import (
	"context"
	"crypto/rsa"
)

// CoreResourceClients provides access to customer-facing resources.
type CoreResourceClients interface {
	Customers() CustomersClient
	Subscriptions() SubscriptionsClient
	Plans() PlansClient
}

// BillingClients provides access to billing documents.
type BillingClients interface {
	Invoices() InvoicesClient
	CreditNotes() CreditNotesClient
	Fees() FeesClient
	Wallets() WalletsClient
}

// CatalogClients provides access to pricing building blocks.
type CatalogClients interface {
	BillableMetrics() BillableMetricsClient
	Coupons() CouponsClient
	AddOns() AddOnsClient
}

// UsageClients provides access to usage ingestion.
type UsageClients interface {
	Events() EventsClient
}

// AccountClients provides access to organization-level resources.
type AccountClients interface {
	Organization() OrganizationClient
	Webhooks() WebhooksClient
}

// Client is the Lago API client.
type Client interface {
	CoreResourceClients
	BillingClients
	CatalogClients
	UsageClients
	AccountClients
}

// CustomersClient manages customers.
type CustomersClient interface {
	Create(ctx context.Context, input *CustomerInput) (*Customer, error)
	Get(ctx context.Context, externalID string) (*Customer, error)
	List(ctx context.Context, filter *CustomerFilter) (*ListResponse[Customer], error)
	Delete(ctx context.Context, externalID string) (*Customer, error)
	CurrentUsage(ctx context.Context, externalCustomerID, externalSubscriptionID string) (*CustomerUsage, error)
	PortalURL(ctx context.Context, externalID string) (string, error)
}

// InvoicesClient manages invoices.
type InvoicesClient interface {
	Get(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, filter *InvoiceFilter) (*ListResponse[Invoice], error)
	Update(ctx context.Context, id string, input *InvoiceUpdateInput) (*Invoice, error)
	Finalize(ctx context.Context, id string) (*Invoice, error)
	Void(ctx context.Context, id string) (*Invoice, error)
	Refresh(ctx context.Context, id string) (*Invoice, error)
	Download(ctx context.Context, id string) (*Invoice, error)
	RetryPayment(ctx context.Context, id string) error
}

// PlansClient manages plans.
type PlansClient interface {
	Create(ctx context.Context, input *PlanInput) (*Plan, error)
	Get(ctx context.Context, code string) (*Plan, error)
	List(ctx context.Context, opts *ListOptions) (*ListResponse[Plan], error)
	Update(ctx context.Context, code string, input *PlanInput) (*Plan, error)
	Delete(ctx context.Context, code string) (*Plan, error)
}

// SubscriptionsClient manages subscriptions.
type SubscriptionsClient interface {
	Create(ctx context.Context, input *SubscriptionInput) (*Subscription, error)
	Get(ctx context.Context, externalID string) (*Subscription, error)
	List(ctx context.Context, filter *SubscriptionFilter) (*ListResponse[Subscription], error)
	Update(ctx context.Context, externalID string, input *SubscriptionInput) (*Subscription, error)
	Terminate(ctx context.Context, externalID string) (*Subscription, error)
}

// EventsClient ingests and reads usage events.
type EventsClient interface {
	Create(ctx context.Context, input *EventInput) (*Event, error)
	BatchCreate(ctx context.Context, inputs []EventInput) ([]Event, error)
	Get(ctx context.Context, transactionID string) (*Event, error)
	List(ctx context.Context, filter *EventFilter) (*ListResponse[Event], error)
}

// BillableMetricsClient manages billable metrics.
type BillableMetricsClient interface {
	Create(ctx context.Context, input *BillableMetricInput) (*BillableMetric, error)
	Get(ctx context.Context, code string) (*BillableMetric, error)
	List(ctx context.Context, opts *ListOptions) (*ListResponse[BillableMetric], error)
	Update(ctx context.Context, code string, input *BillableMetricInput) (*BillableMetric, error)
	Delete(ctx context.Context, code string) (*BillableMetric, error)
}

// CouponsClient manages coupons and their application to customers.
type CouponsClient interface {
	Create(ctx context.Context, input *CouponInput) (*Coupon, error)
	Get(ctx context.Context, code string) (*Coupon, error)
	List(ctx context.Context, opts *ListOptions) (*ListResponse[Coupon], error)
	Delete(ctx context.Context, code string) (*Coupon, error)
	Apply(ctx context.Context, input *AppliedCouponInput) (*AppliedCoupon, error)
}

// AddOnsClient manages add-ons.
type AddOnsClient interface {
	Create(ctx context.Context, input *AddOnInput) (*AddOn, error)
	Get(ctx context.Context, code string) (*AddOn, error)
	List(ctx context.Context, opts *ListOptions) (*ListResponse[AddOn], error)
	Delete(ctx context.Context, code string) (*AddOn, error)
}

// WalletsClient manages prepaid credit wallets.
type WalletsClient interface {
	Create(ctx context.Context, input *WalletInput) (*Wallet, error)
	Get(ctx context.Context, id string) (*Wallet, error)
	List(ctx context.Context, filter *WalletFilter) (*ListResponse[Wallet], error)
	Terminate(ctx context.Context, id string) (*Wallet, error)
	CreateTransaction(ctx context.Context, input *WalletTransactionInput) ([]WalletTransaction, error)
}

// CreditNotesClient manages credit notes.
type CreditNotesClient interface {
	Create(ctx context.Context, input *CreditNoteInput) (*CreditNote, error)
	Get(ctx context.Context, id string) (*CreditNote, error)
	List(ctx context.Context, filter *CreditNoteFilter) (*ListResponse[CreditNote], error)
	Void(ctx context.Context, id string) (*CreditNote, error)
}

// FeesClient reads fees.
type FeesClient interface {
	Get(ctx context.Context, id string) (*Fee, error)
	List(ctx context.Context, filter *FeeFilter) (*ListResponse[Fee], error)
}

// OrganizationClient updates the organization owning the API key.
type OrganizationClient interface {
	Update(ctx context.Context, input *OrganizationInput) (*Organization, error)
}

// WebhooksClient exposes webhook signing material.
type WebhooksClient interface {
	PublicKey(ctx context.Context) (*rsa.PublicKey, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}
