package lago

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Param is a single query-string pair.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query-string pairs. Order is preserved when
// encoding, which url.Values does not guarantee.
type Params []Param

// Add appends key=value.
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// AddOpt appends key=*value when value is set.
func (p Params) AddOpt(key string, value *string) Params {
	if value == nil {
		return p
	}

	return p.Add(key, *value)
}

// AddInt appends key=*value when value is set.
func (p Params) AddInt(key string, value *int) Params {
	if value == nil {
		return p
	}

	return p.Add(key, strconv.Itoa(*value))
}

// AddBool appends key=*value when value is set.
func (p Params) AddBool(key string, value *bool) Params {
	if value == nil {
		return p
	}

	return p.Add(key, strconv.FormatBool(*value))
}

// AddTime appends key=*value in RFC 3339 when value is set.
func (p Params) AddTime(key string, value *time.Time) Params {
	if value == nil {
		return p
	}

	return p.Add(key, value.UTC().Format(time.RFC3339))
}

// AddAll appends one key[]=value pair per value, in insertion order.
func (p Params) AddAll(key string, values []string) Params {
	for _, value := range values {
		p = p.Add(key+"[]", value)
	}

	return p
}

// Encode renders the pairs as a URL-encoded query string.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}

	var builder strings.Builder

	for i, param := range p {
		if i > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(url.QueryEscape(param.Key))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(param.Value))
	}

	return builder.String()
}

// Values converts the pairs to url.Values.
func (p Params) Values() url.Values {
	values := url.Values{}
	for _, param := range p {
		values.Add(param.Key, param.Value)
	}

	return values
}

// QueryBuilder is implemented by every filter and pagination value.
type QueryBuilder interface {
	Params() Params
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Pagination selects a page of a list endpoint.
type Pagination struct {
	Page    *int
	PerPage *int
}

// Params implements QueryBuilder.
func (p Pagination) Params() Params {
	return Params{}.
		AddInt("page", p.Page).
		AddInt("per_page", p.PerPage)
}

// ListOptions is the filter of list endpoints that only paginate.
type ListOptions struct {
	Pagination
}

// CustomerFilter filters GET /customers.
type CustomerFilter struct {
	Pagination
	SearchTerm         *string
	Countries          []string
	Currencies         []string
	BillingEntityCodes []string
}

// Params implements QueryBuilder.
func (f CustomerFilter) Params() Params {
	return f.Pagination.Params().
		AddOpt("search_term", f.SearchTerm).
		AddAll("countries", f.Countries).
		AddAll("currencies", f.Currencies).
		AddAll("billing_entity_codes", f.BillingEntityCodes)
}

// InvoiceFilter filters GET /invoices.
type InvoiceFilter struct {
	Pagination
	ExternalCustomerID *string
	IssuingDateFrom    *string
	IssuingDateTo      *string
	Statuses           []string
	PaymentStatuses    []string
	Currency           *string
	PaymentOverdue     *bool
	SearchTerm         *string
}

// Params implements QueryBuilder.
func (f InvoiceFilter) Params() Params {
	return f.Pagination.Params().
		AddOpt("external_customer_id", f.ExternalCustomerID).
		AddOpt("issuing_date_from", f.IssuingDateFrom).
		AddOpt("issuing_date_to", f.IssuingDateTo).
		AddAll("status", f.Statuses).
		AddAll("payment_status", f.PaymentStatuses).
		AddOpt("currency", f.Currency).
		AddBool("payment_overdue", f.PaymentOverdue).
		AddOpt("search_term", f.SearchTerm)
}

// SubscriptionFilter filters GET /subscriptions.
type SubscriptionFilter struct {
	Pagination
	ExternalCustomerID *string
	PlanCode           *string
	Statuses           []string
}

// Params implements QueryBuilder.
func (f SubscriptionFilter) Params() Params {
	return f.Pagination.Params().
		AddOpt("external_customer_id", f.ExternalCustomerID).
		AddOpt("plan_code", f.PlanCode).
		AddAll("status", f.Statuses)
}

// EventFilter filters GET /events.
type EventFilter struct {
	Pagination
	ExternalSubscriptionID *string
	Code                   *string
	TimestampFrom          *time.Time
	TimestampTo            *time.Time
}

// Params implements QueryBuilder.
func (f EventFilter) Params() Params {
	return f.Pagination.Params().
		AddOpt("external_subscription_id", f.ExternalSubscriptionID).
		AddOpt("code", f.Code).
		AddTime("timestamp_from", f.TimestampFrom).
		AddTime("timestamp_to", f.TimestampTo)
}

// FeeFilter filters GET /fees.
type FeeFilter struct {
	Pagination
	ExternalCustomerID     *string
	ExternalSubscriptionID *string
	Currency               *string
	FeeType                *string
	PaymentStatus          *string
	CreatedAtFrom          *time.Time
	CreatedAtTo            *time.Time
}

// Params implements QueryBuilder.
func (f FeeFilter) Params() Params {
	return f.Pagination.Params().
		AddOpt("external_customer_id", f.ExternalCustomerID).
		AddOpt("external_subscription_id", f.ExternalSubscriptionID).
		AddOpt("currency", f.Currency).
		AddOpt("fee_type", f.FeeType).
		AddOpt("payment_status", f.PaymentStatus).
		AddTime("created_at_from", f.CreatedAtFrom).
		AddTime("created_at_to", f.CreatedAtTo)
}

// CreditNoteFilter filters GET /credit_notes.
type CreditNoteFilter struct {
	Pagination
	ExternalCustomerID *string
	IssuingDateFrom    *string
	IssuingDateTo      *string
	Reasons            []string
	CreditStatuses     []string
	RefundStatuses     []string
	InvoiceNumber      *string
}

// Params implements QueryBuilder.
func (f CreditNoteFilter) Params() Params {
	return f.Pagination.Params().
		AddOpt("external_customer_id", f.ExternalCustomerID).
		AddOpt("issuing_date_from", f.IssuingDateFrom).
		AddOpt("issuing_date_to", f.IssuingDateTo).
		AddAll("reason", f.Reasons).
		AddAll("credit_status", f.CreditStatuses).
		AddAll("refund_status", f.RefundStatuses).
		AddOpt("invoice_number", f.InvoiceNumber)
}

// WalletFilter filters GET /wallets.
type WalletFilter struct {
	Pagination
	ExternalCustomerID *string
}

// Params implements QueryBuilder.
func (f WalletFilter) Params() Params {
	return f.Pagination.Params().
		AddOpt("external_customer_id", f.ExternalCustomerID)
}
