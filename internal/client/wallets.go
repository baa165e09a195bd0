package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lago-client/internal/http"
	"github.com/fivetwenty-io/lago-client/pkg/lago"
)

// WalletsClient implements lago.WalletsClient.
type WalletsClient struct {
	httpClient *http.Client
}

// NewWalletsClient creates a new wallets client.
func NewWalletsClient(httpClient *http.Client) *WalletsClient {
	return &WalletsClient{
		httpClient: httpClient,
	}
}

// Create implements lago.WalletsClient.Create.
func (c *WalletsClient) Create(ctx context.Context, input *lago.WalletInput) (*lago.Wallet, error) {
	err := requireInput(input, "wallet")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/wallets", wrap("wallet", input))
	if err != nil {
		return nil, fmt.Errorf("creating wallet: %w", err)
	}

	wallet, err := decodeRoot[lago.Wallet](resp, "wallet")
	if err != nil {
		return nil, fmt.Errorf("parsing wallet response: %w", err)
	}

	return wallet, nil
}

// Get implements lago.WalletsClient.Get.
func (c *WalletsClient) Get(ctx context.Context, id string) (*lago.Wallet, error) {
	path, err := resourcePath("wallets", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting wallet: %w", err)
	}

	wallet, err := decodeRoot[lago.Wallet](resp, "wallet")
	if err != nil {
		return nil, fmt.Errorf("parsing wallet: %w", err)
	}

	return wallet, nil
}

// List implements lago.WalletsClient.List.
func (c *WalletsClient) List(ctx context.Context, filter *lago.WalletFilter) (*lago.ListResponse[lago.Wallet], error) {
	resp, err := c.httpClient.Get(ctx, "/wallets", queryOf(filter))
	if err != nil {
		return nil, fmt.Errorf("listing wallets: %w", err)
	}

	list, err := decodeList[lago.Wallet](resp, "wallets")
	if err != nil {
		return nil, fmt.Errorf("parsing wallets list: %w", err)
	}

	return list, nil
}

// Terminate implements lago.WalletsClient.Terminate.
func (c *WalletsClient) Terminate(ctx context.Context, id string) (*lago.Wallet, error) {
	path, err := resourcePath("wallets", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("terminating wallet: %w", err)
	}

	wallet, err := decodeRoot[lago.Wallet](resp, "wallet")
	if err != nil {
		return nil, fmt.Errorf("parsing terminated wallet: %w", err)
	}

	return wallet, nil
}

// CreateTransaction implements lago.WalletsClient.CreateTransaction. Lago
// answers with one transaction per credit kind in the request.
func (c *WalletsClient) CreateTransaction(ctx context.Context, input *lago.WalletTransactionInput) ([]lago.WalletTransaction, error) {
	err := requireInput(input, "wallet_transaction")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/wallet_transactions", wrap("wallet_transaction", input))
	if err != nil {
		return nil, fmt.Errorf("creating wallet transaction: %w", err)
	}

	transactions, err := decodeRoot[[]lago.WalletTransaction](resp, "wallet_transactions")
	if err != nil {
		return nil, fmt.Errorf("parsing wallet transactions: %w", err)
	}

	return *transactions, nil
}
