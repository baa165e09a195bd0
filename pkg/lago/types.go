package lago

import (
	"time"
)

// Meta is the pagination block of list responses.
type Meta struct {
	CurrentPage int  `json:"current_page"        yaml:"current_page"`
	NextPage    *int `json:"next_page,omitempty" yaml:"next_page,omitempty"`
	PrevPage    *int `json:"prev_page,omitempty" yaml:"prev_page,omitempty"`
	TotalPages  int  `json:"total_pages"         yaml:"total_pages"`
	TotalCount  int  `json:"total_count"         yaml:"total_count"`
}

// ListResponse is one page of a list endpoint.
type ListResponse[T any] struct {
	Items []T  `json:"items" yaml:"items"`
	Meta  Meta `json:"meta"  yaml:"meta"`
}

// Metadata is a key/value pair attached to customers and invoices.
type Metadata struct {
	LagoID           string `json:"lago_id,omitempty"  yaml:"lago_id,omitempty"`
	Key              string `json:"key"                yaml:"key"`
	Value            string `json:"value"              yaml:"value"`
	DisplayInInvoice bool   `json:"display_in_invoice" yaml:"display_in_invoice"`
}

// Customer represents a Lago customer.
type Customer struct {
	LagoID                  string     `json:"lago_id"                             yaml:"lago_id"`
	ExternalID              string     `json:"external_id"                         yaml:"external_id"`
	SequentialID            int        `json:"sequential_id,omitempty"             yaml:"sequential_id,omitempty"`
	Slug                    string     `json:"slug,omitempty"                      yaml:"slug,omitempty"`
	Name                    string     `json:"name,omitempty"                      yaml:"name,omitempty"`
	Email                   string     `json:"email,omitempty"                     yaml:"email,omitempty"`
	LegalName               string     `json:"legal_name,omitempty"                yaml:"legal_name,omitempty"`
	TaxIdentificationNumber string     `json:"tax_identification_number,omitempty" yaml:"tax_identification_number,omitempty"`
	Phone                   string     `json:"phone,omitempty"                     yaml:"phone,omitempty"`
	AddressLine1            string     `json:"address_line1,omitempty"             yaml:"address_line1,omitempty"`
	AddressLine2            string     `json:"address_line2,omitempty"             yaml:"address_line2,omitempty"`
	City                    string     `json:"city,omitempty"                      yaml:"city,omitempty"`
	State                   string     `json:"state,omitempty"                     yaml:"state,omitempty"`
	Zipcode                 string     `json:"zipcode,omitempty"                   yaml:"zipcode,omitempty"`
	Country                 string     `json:"country,omitempty"                   yaml:"country,omitempty"`
	Currency                string     `json:"currency,omitempty"                  yaml:"currency,omitempty"`
	Timezone                string     `json:"timezone,omitempty"                  yaml:"timezone,omitempty"`
	Metadata                []Metadata `json:"metadata,omitempty"                  yaml:"metadata,omitempty"`
	CreatedAt               time.Time  `json:"created_at"                          yaml:"created_at"`
}

// CustomerInput creates or updates a customer. Lago upserts on ExternalID.
type CustomerInput struct {
	ExternalID              string     `json:"external_id"`
	Name                    string     `json:"name,omitempty"`
	Email                   string     `json:"email,omitempty"`
	LegalName               string     `json:"legal_name,omitempty"`
	TaxIdentificationNumber string     `json:"tax_identification_number,omitempty"`
	Phone                   string     `json:"phone,omitempty"`
	AddressLine1            string     `json:"address_line1,omitempty"`
	AddressLine2            string     `json:"address_line2,omitempty"`
	City                    string     `json:"city,omitempty"`
	State                   string     `json:"state,omitempty"`
	Zipcode                 string     `json:"zipcode,omitempty"`
	Country                 string     `json:"country,omitempty"`
	Currency                string     `json:"currency,omitempty"`
	Timezone                string     `json:"timezone,omitempty"`
	Metadata                []Metadata `json:"metadata,omitempty"`
}

// BillableMetricRef is the metric summary embedded in usage and charges.
type BillableMetricRef struct {
	LagoID          string `json:"lago_id"          yaml:"lago_id"`
	Name            string `json:"name"             yaml:"name"`
	Code            string `json:"code"             yaml:"code"`
	AggregationType string `json:"aggregation_type" yaml:"aggregation_type"`
}

// ChargeUsage is the usage of one charge in the current period.
type ChargeUsage struct {
	Units          string            `json:"units"           yaml:"units"`
	EventsCount    int               `json:"events_count"    yaml:"events_count"`
	AmountCents    int64             `json:"amount_cents"    yaml:"amount_cents"`
	AmountCurrency string            `json:"amount_currency" yaml:"amount_currency"`
	BillableMetric BillableMetricRef `json:"billable_metric" yaml:"billable_metric"`
}

// CustomerUsage is the current-period usage of a subscription.
type CustomerUsage struct {
	FromDatetime     time.Time     `json:"from_datetime"      yaml:"from_datetime"`
	ToDatetime       time.Time     `json:"to_datetime"        yaml:"to_datetime"`
	IssuingDate      string        `json:"issuing_date"       yaml:"issuing_date"`
	Currency         string        `json:"currency"           yaml:"currency"`
	AmountCents      int64         `json:"amount_cents"       yaml:"amount_cents"`
	TaxesAmountCents int64         `json:"taxes_amount_cents" yaml:"taxes_amount_cents"`
	TotalAmountCents int64         `json:"total_amount_cents" yaml:"total_amount_cents"`
	ChargesUsage     []ChargeUsage `json:"charges_usage"      yaml:"charges_usage"`
}

// FeeItem identifies what a fee bills for.
type FeeItem struct {
	Type       string `json:"type"                   yaml:"type"`
	Code       string `json:"code"                   yaml:"code"`
	Name       string `json:"name"                   yaml:"name"`
	LagoItemID string `json:"lago_item_id,omitempty" yaml:"lago_item_id,omitempty"`
}

// Fee represents a Lago fee.
type Fee struct {
	LagoID                 string    `json:"lago_id"                            yaml:"lago_id"`
	LagoInvoiceID          string    `json:"lago_invoice_id,omitempty"          yaml:"lago_invoice_id,omitempty"`
	ExternalSubscriptionID string    `json:"external_subscription_id,omitempty" yaml:"external_subscription_id,omitempty"`
	AmountCents            int64     `json:"amount_cents"                       yaml:"amount_cents"`
	AmountCurrency         string    `json:"amount_currency"                    yaml:"amount_currency"`
	TaxesAmountCents       int64     `json:"taxes_amount_cents"                 yaml:"taxes_amount_cents"`
	TotalAmountCents       int64     `json:"total_amount_cents"                 yaml:"total_amount_cents"`
	Units                  string    `json:"units"                              yaml:"units"`
	EventsCount            int       `json:"events_count"                       yaml:"events_count"`
	PaymentStatus          string    `json:"payment_status"                     yaml:"payment_status"`
	Item                   FeeItem   `json:"item"                               yaml:"item"`
	CreatedAt              time.Time `json:"created_at"                         yaml:"created_at"`
}

// Invoice represents a Lago invoice.
type Invoice struct {
	LagoID           string     `json:"lago_id"            yaml:"lago_id"`
	SequentialID     int        `json:"sequential_id"      yaml:"sequential_id"`
	Number           string     `json:"number"             yaml:"number"`
	IssuingDate      string     `json:"issuing_date"       yaml:"issuing_date"`
	PaymentDueDate   string     `json:"payment_due_date"   yaml:"payment_due_date"`
	InvoiceType      string     `json:"invoice_type"       yaml:"invoice_type"`
	Status           string     `json:"status"             yaml:"status"`
	PaymentStatus    string     `json:"payment_status"     yaml:"payment_status"`
	PaymentOverdue   bool       `json:"payment_overdue"    yaml:"payment_overdue"`
	Currency         string     `json:"currency"           yaml:"currency"`
	FeesAmountCents  int64      `json:"fees_amount_cents"  yaml:"fees_amount_cents"`
	TaxesAmountCents int64      `json:"taxes_amount_cents" yaml:"taxes_amount_cents"`
	TotalAmountCents int64      `json:"total_amount_cents" yaml:"total_amount_cents"`
	FileURL          string     `json:"file_url,omitempty" yaml:"file_url,omitempty"`
	Customer         *Customer  `json:"customer,omitempty" yaml:"customer,omitempty"`
	Fees             []Fee      `json:"fees,omitempty"     yaml:"fees,omitempty"`
	Metadata         []Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	CreatedAt        time.Time  `json:"created_at"         yaml:"created_at"`
}

// InvoiceUpdateInput updates an invoice's payment status or metadata.
type InvoiceUpdateInput struct {
	PaymentStatus string     `json:"payment_status,omitempty"`
	Metadata      []Metadata `json:"metadata,omitempty"`
}

// Charge is a usage-based price component of a plan.
type Charge struct {
	LagoID               string         `json:"lago_id"                 yaml:"lago_id"`
	LagoBillableMetricID string         `json:"lago_billable_metric_id" yaml:"lago_billable_metric_id"`
	BillableMetricCode   string         `json:"billable_metric_code"    yaml:"billable_metric_code"`
	ChargeModel          string         `json:"charge_model"            yaml:"charge_model"`
	PayInAdvance         bool           `json:"pay_in_advance"          yaml:"pay_in_advance"`
	Invoiceable          bool           `json:"invoiceable"             yaml:"invoiceable"`
	Properties           map[string]any `json:"properties,omitempty"    yaml:"properties,omitempty"`
}

// ChargeInput declares a charge on a plan.
type ChargeInput struct {
	BillableMetricID string         `json:"billable_metric_id"`
	ChargeModel      string         `json:"charge_model"`
	PayInAdvance     bool           `json:"pay_in_advance,omitempty"`
	Invoiceable      *bool          `json:"invoiceable,omitempty"`
	Properties       map[string]any `json:"properties,omitempty"`
}

// Plan represents a Lago plan.
type Plan struct {
	LagoID         string    `json:"lago_id"                yaml:"lago_id"`
	Name           string    `json:"name"                   yaml:"name"`
	Code           string    `json:"code"                   yaml:"code"`
	Interval       string    `json:"interval"               yaml:"interval"`
	Description    string    `json:"description,omitempty"  yaml:"description,omitempty"`
	AmountCents    int64     `json:"amount_cents"           yaml:"amount_cents"`
	AmountCurrency string    `json:"amount_currency"        yaml:"amount_currency"`
	PayInAdvance   bool      `json:"pay_in_advance"         yaml:"pay_in_advance"`
	TrialPeriod    float64   `json:"trial_period,omitempty" yaml:"trial_period,omitempty"`
	Charges        []Charge  `json:"charges,omitempty"      yaml:"charges,omitempty"`
	CreatedAt      time.Time `json:"created_at"             yaml:"created_at"`
}

// PlanInput creates or updates a plan.
type PlanInput struct {
	Name           string        `json:"name,omitempty"`
	Code           string        `json:"code,omitempty"`
	Interval       string        `json:"interval,omitempty"`
	Description    string        `json:"description,omitempty"`
	AmountCents    int64         `json:"amount_cents"`
	AmountCurrency string        `json:"amount_currency,omitempty"`
	PayInAdvance   bool          `json:"pay_in_advance,omitempty"`
	TrialPeriod    *float64      `json:"trial_period,omitempty"`
	Charges        []ChargeInput `json:"charges,omitempty"`
}

// Subscription represents a customer's subscription to a plan.
type Subscription struct {
	LagoID             string     `json:"lago_id"                 yaml:"lago_id"`
	ExternalID         string     `json:"external_id"             yaml:"external_id"`
	ExternalCustomerID string     `json:"external_customer_id"    yaml:"external_customer_id"`
	PlanCode           string     `json:"plan_code"               yaml:"plan_code"`
	Name               string     `json:"name,omitempty"          yaml:"name,omitempty"`
	Status             string     `json:"status"                  yaml:"status"`
	BillingTime        string     `json:"billing_time"            yaml:"billing_time"`
	SubscriptionAt     *time.Time `json:"subscription_at"         yaml:"subscription_at"`
	StartedAt          *time.Time `json:"started_at"              yaml:"started_at"`
	EndingAt           *time.Time `json:"ending_at,omitempty"     yaml:"ending_at,omitempty"`
	TerminatedAt       *time.Time `json:"terminated_at,omitempty" yaml:"terminated_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"              yaml:"created_at"`
}

// SubscriptionInput creates or updates a subscription.
type SubscriptionInput struct {
	ExternalCustomerID string     `json:"external_customer_id,omitempty"`
	PlanCode           string     `json:"plan_code,omitempty"`
	ExternalID         string     `json:"external_id,omitempty"`
	Name               string     `json:"name,omitempty"`
	BillingTime        string     `json:"billing_time,omitempty"`
	SubscriptionAt     *time.Time `json:"subscription_at,omitempty"`
	EndingAt           *time.Time `json:"ending_at,omitempty"`
}

// Event is a usage event ingested by Lago.
type Event struct {
	LagoID                 string         `json:"lago_id"                  yaml:"lago_id"`
	TransactionID          string         `json:"transaction_id"           yaml:"transaction_id"`
	ExternalSubscriptionID string         `json:"external_subscription_id" yaml:"external_subscription_id"`
	Code                   string         `json:"code"                     yaml:"code"`
	Timestamp              time.Time      `json:"timestamp"                yaml:"timestamp"`
	Properties             map[string]any `json:"properties,omitempty"     yaml:"properties,omitempty"`
	CreatedAt              time.Time      `json:"created_at"               yaml:"created_at"`
}

// EventInput posts a usage event. Timestamp is Unix seconds; Lago uses the
// reception time when it is nil.
type EventInput struct {
	TransactionID           string         `json:"transaction_id"`
	ExternalSubscriptionID  string         `json:"external_subscription_id"`
	Code                    string         `json:"code"`
	Timestamp               *int64         `json:"timestamp,omitempty"`
	Properties              map[string]any `json:"properties,omitempty"`
	PreciseTotalAmountCents *string        `json:"precise_total_amount_cents,omitempty"`
}

// BillableMetric represents a Lago billable metric.
type BillableMetric struct {
	LagoID          string    `json:"lago_id"               yaml:"lago_id"`
	Name            string    `json:"name"                  yaml:"name"`
	Code            string    `json:"code"                  yaml:"code"`
	Description     string    `json:"description,omitempty" yaml:"description,omitempty"`
	AggregationType string    `json:"aggregation_type"      yaml:"aggregation_type"`
	FieldName       *string   `json:"field_name,omitempty"  yaml:"field_name,omitempty"`
	Recurring       bool      `json:"recurring"             yaml:"recurring"`
	CreatedAt       time.Time `json:"created_at"            yaml:"created_at"`
}

// BillableMetricInput creates or updates a billable metric.
type BillableMetricInput struct {
	Name            string  `json:"name,omitempty"`
	Code            string  `json:"code,omitempty"`
	Description     string  `json:"description,omitempty"`
	AggregationType string  `json:"aggregation_type,omitempty"`
	FieldName       *string `json:"field_name,omitempty"`
	Recurring       *bool   `json:"recurring,omitempty"`
}

// Coupon represents a Lago coupon.
type Coupon struct {
	LagoID         string    `json:"lago_id"                   yaml:"lago_id"`
	Name           string    `json:"name"                      yaml:"name"`
	Code           string    `json:"code"                      yaml:"code"`
	CouponType     string    `json:"coupon_type"               yaml:"coupon_type"`
	AmountCents    int64     `json:"amount_cents,omitempty"    yaml:"amount_cents,omitempty"`
	AmountCurrency string    `json:"amount_currency,omitempty" yaml:"amount_currency,omitempty"`
	PercentageRate string    `json:"percentage_rate,omitempty" yaml:"percentage_rate,omitempty"`
	Frequency      string    `json:"frequency"                 yaml:"frequency"`
	Expiration     string    `json:"expiration"                yaml:"expiration"`
	CreatedAt      time.Time `json:"created_at"                yaml:"created_at"`
}

// CouponInput creates a coupon.
type CouponInput struct {
	Name           string  `json:"name"`
	Code           string  `json:"code"`
	CouponType     string  `json:"coupon_type"`
	AmountCents    *int64  `json:"amount_cents,omitempty"`
	AmountCurrency string  `json:"amount_currency,omitempty"`
	PercentageRate *string `json:"percentage_rate,omitempty"`
	Frequency      string  `json:"frequency"`
	Expiration     string  `json:"expiration"`
}

// AppliedCoupon is a coupon attached to a customer.
type AppliedCoupon struct {
	LagoID             string    `json:"lago_id"              yaml:"lago_id"`
	LagoCouponID       string    `json:"lago_coupon_id"       yaml:"lago_coupon_id"`
	CouponCode         string    `json:"coupon_code"          yaml:"coupon_code"`
	ExternalCustomerID string    `json:"external_customer_id" yaml:"external_customer_id"`
	Status             string    `json:"status"               yaml:"status"`
	AmountCents        int64     `json:"amount_cents"         yaml:"amount_cents"`
	CreatedAt          time.Time `json:"created_at"           yaml:"created_at"`
}

// AppliedCouponInput applies a coupon to a customer.
type AppliedCouponInput struct {
	ExternalCustomerID string  `json:"external_customer_id"`
	CouponCode         string  `json:"coupon_code"`
	AmountCents        *int64  `json:"amount_cents,omitempty"`
	AmountCurrency     string  `json:"amount_currency,omitempty"`
	PercentageRate     *string `json:"percentage_rate,omitempty"`
}

// AddOn represents a one-off charge.
type AddOn struct {
	LagoID         string    `json:"lago_id"               yaml:"lago_id"`
	Name           string    `json:"name"                  yaml:"name"`
	Code           string    `json:"code"                  yaml:"code"`
	AmountCents    int64     `json:"amount_cents"          yaml:"amount_cents"`
	AmountCurrency string    `json:"amount_currency"       yaml:"amount_currency"`
	Description    string    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"            yaml:"created_at"`
}

// AddOnInput creates an add-on.
type AddOnInput struct {
	Name           string `json:"name"`
	Code           string `json:"code"`
	AmountCents    int64  `json:"amount_cents"`
	AmountCurrency string `json:"amount_currency"`
	Description    string `json:"description,omitempty"`
}

// Wallet holds prepaid credits of a customer.
type Wallet struct {
	LagoID             string     `json:"lago_id"                 yaml:"lago_id"`
	LagoCustomerID     string     `json:"lago_customer_id"        yaml:"lago_customer_id"`
	ExternalCustomerID string     `json:"external_customer_id"    yaml:"external_customer_id"`
	Status             string     `json:"status"                  yaml:"status"`
	Currency           string     `json:"currency"                yaml:"currency"`
	Name               string     `json:"name,omitempty"          yaml:"name,omitempty"`
	RateAmount         string     `json:"rate_amount"             yaml:"rate_amount"`
	CreditsBalance     string     `json:"credits_balance"         yaml:"credits_balance"`
	BalanceCents       int64      `json:"balance_cents"           yaml:"balance_cents"`
	ConsumedCredits    string     `json:"consumed_credits"        yaml:"consumed_credits"`
	ExpirationAt       *time.Time `json:"expiration_at,omitempty" yaml:"expiration_at,omitempty"`
	TerminatedAt       *time.Time `json:"terminated_at,omitempty" yaml:"terminated_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"              yaml:"created_at"`
}

// WalletInput creates a wallet.
type WalletInput struct {
	ExternalCustomerID string     `json:"external_customer_id"`
	Name               string     `json:"name,omitempty"`
	RateAmount         string     `json:"rate_amount"`
	Currency           string     `json:"currency"`
	PaidCredits        string     `json:"paid_credits,omitempty"`
	GrantedCredits     string     `json:"granted_credits,omitempty"`
	ExpirationAt       *time.Time `json:"expiration_at,omitempty"`
}

// WalletTransaction is a credit movement on a wallet.
type WalletTransaction struct {
	LagoID          string    `json:"lago_id"          yaml:"lago_id"`
	LagoWalletID    string    `json:"lago_wallet_id"   yaml:"lago_wallet_id"`
	Status          string    `json:"status"           yaml:"status"`
	TransactionType string    `json:"transaction_type" yaml:"transaction_type"`
	Amount          string    `json:"amount"           yaml:"amount"`
	CreditAmount    string    `json:"credit_amount"    yaml:"credit_amount"`
	CreatedAt       time.Time `json:"created_at"       yaml:"created_at"`
}

// WalletTransactionInput tops up or voids wallet credits.
type WalletTransactionInput struct {
	WalletID       string `json:"wallet_id"`
	PaidCredits    string `json:"paid_credits,omitempty"`
	GrantedCredits string `json:"granted_credits,omitempty"`
	VoidedCredits  string `json:"voided_credits,omitempty"`
}

// CreditNote represents a Lago credit note.
type CreditNote struct {
	LagoID            string    `json:"lago_id"             yaml:"lago_id"`
	SequentialID      int       `json:"sequential_id"       yaml:"sequential_id"`
	Number            string    `json:"number"              yaml:"number"`
	LagoInvoiceID     string    `json:"lago_invoice_id"     yaml:"lago_invoice_id"`
	InvoiceNumber     string    `json:"invoice_number"      yaml:"invoice_number"`
	IssuingDate       string    `json:"issuing_date"        yaml:"issuing_date"`
	CreditStatus      string    `json:"credit_status"       yaml:"credit_status"`
	RefundStatus      string    `json:"refund_status"       yaml:"refund_status"`
	Reason            string    `json:"reason"              yaml:"reason"`
	Currency          string    `json:"currency"            yaml:"currency"`
	TotalAmountCents  int64     `json:"total_amount_cents"  yaml:"total_amount_cents"`
	CreditAmountCents int64     `json:"credit_amount_cents" yaml:"credit_amount_cents"`
	RefundAmountCents int64     `json:"refund_amount_cents" yaml:"refund_amount_cents"`
	CreatedAt         time.Time `json:"created_at"          yaml:"created_at"`
}

// CreditNoteItemInput credits part of a fee.
type CreditNoteItemInput struct {
	FeeID       string `json:"fee_id"`
	AmountCents int64  `json:"amount_cents"`
}

// CreditNoteInput issues a credit note against an invoice.
type CreditNoteInput struct {
	InvoiceID         string                `json:"invoice_id"`
	Reason            string                `json:"reason,omitempty"`
	Description       string                `json:"description,omitempty"`
	CreditAmountCents int64                 `json:"credit_amount_cents,omitempty"`
	RefundAmountCents int64                 `json:"refund_amount_cents,omitempty"`
	Items             []CreditNoteItemInput `json:"items"`
}

// Organization is the account owning the API key.
type Organization struct {
	LagoID      string    `json:"lago_id"                yaml:"lago_id"`
	Name        string    `json:"name"                   yaml:"name"`
	Email       string    `json:"email,omitempty"        yaml:"email,omitempty"`
	Country     string    `json:"country,omitempty"      yaml:"country,omitempty"`
	Timezone    string    `json:"timezone,omitempty"     yaml:"timezone,omitempty"`
	WebhookURL  string    `json:"webhook_url,omitempty"  yaml:"webhook_url,omitempty"`
	WebhookURLs []string  `json:"webhook_urls,omitempty" yaml:"webhook_urls,omitempty"`
	CreatedAt   time.Time `json:"created_at"             yaml:"created_at"`
}

// OrganizationInput updates the organization.
type OrganizationInput struct {
	Email      string `json:"email,omitempty"`
	Country    string `json:"country,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
	WebhookURL string `json:"webhook_url,omitempty"`
	LegalName  string `json:"legal_name,omitempty"`
}
