package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// CouponsClient implements lago.CouponsClient.
type CouponsClient struct {
	httpClient *http.Client
}

// NewCouponsClient creates a new coupons client.
func NewCouponsClient(httpClient *http.Client) *CouponsClient {
	return &CouponsClient{
		httpClient: httpClient,
	}
}

// Create implements lago.CouponsClient.Create.
func (c *CouponsClient) Create(ctx context.Context, input *lago.CouponInput) (*lago.Coupon, error) {
	err := requireInput(input, "coupon")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/coupons", wrap("coupon", input))
	if err != nil {
		return nil, fmt.Errorf("creating coupon: %w", err)
	}

	coupon, err := decodeRoot[lago.Coupon](resp, "coupon")
	if err != nil {
		return nil, fmt.Errorf("parsing coupon response: %w", err)
	}

	return coupon, nil
}

// Get implements lago.CouponsClient.Get.
func (c *CouponsClient) Get(ctx context.Context, code string) (*lago.Coupon, error) {
	path, err := resourcePath("coupons", code)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting coupon: %w", err)
	}

	coupon, err := decodeRoot[lago.Coupon](resp, "coupon")
	if err != nil {
		return nil, fmt.Errorf("parsing coupon: %w", err)
	}

	return coupon, nil
}

// List implements lago.CouponsClient.List.
func (c *CouponsClient) List(ctx context.Context, opts *lago.ListOptions) (*lago.ListResponse[lago.Coupon], error) {
	resp, err := c.httpClient.Get(ctx, "/coupons", queryOf(opts))
	if err != nil {
		return nil, fmt.Errorf("listing coupons: %w", err)
	}

	list, err := decodeList[lago.Coupon](resp, "coupons")
	if err != nil {
		return nil, fmt.Errorf("parsing coupons list: %w", err)
	}

	return list, nil
}

// Delete implements lago.CouponsClient.Delete.
func (c *CouponsClient) Delete(ctx context.Context, code string) (*lago.Coupon, error) {
	path, err := resourcePath("coupons", code)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("deleting coupon: %w", err)
	}

	coupon, err := decodeRoot[lago.Coupon](resp, "coupon")
	if err != nil {
		return nil, fmt.Errorf("parsing deleted coupon: %w", err)
	}

	return coupon, nil
}

// Apply implements lago.CouponsClient.Apply.
func (c *CouponsClient) Apply(ctx context.Context, input *lago.AppliedCouponInput) (*lago.AppliedCoupon, error) {
	err := requireInput(input, "applied_coupon")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/applied_coupons", wrap("applied_coupon", input))
	if err != nil {
		return nil, fmt.Errorf("applying coupon: %w", err)
	}

	applied, err := decodeRoot[lago.AppliedCoupon](resp, "applied_coupon")
	if err != nil {
		return nil, fmt.Errorf("parsing applied coupon: %w", err)
	}

	return applied, nil
}
