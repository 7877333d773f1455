package paystack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sotopay/walletd/internal/usecase"
)

const bankCacheTTL = 24 * time.Hour

// CachingClient wraps a gateway client and caches the bank directory,
// which changes rarely and is fetched on every withdrawal form load.
// All other calls pass through untouched.
type CachingClient struct {
	usecase.GatewayClient
	cache usecase.Cache
}

// NewCachingClient creates a CachingClient around inner.
func NewCachingClient(inner usecase.GatewayClient, cache usecase.Cache) *CachingClient {
	return &CachingClient{GatewayClient: inner, cache: cache}
}

// ListBanks serves the bank directory from cache when possible.
func (c *CachingClient) ListBanks(ctx context.Context, page, limit int) ([]usecase.Bank, error) {
	key := fmt.Sprintf("banks:%d:%d", page, limit)

	if cached, err := c.cache.Get(ctx, key); err == nil {
		var banks []usecase.Bank
		if json.Unmarshal(cached, &banks) == nil {
			return banks, nil
		}
	}

	banks, err := c.GatewayClient.ListBanks(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(banks); err == nil {
		// A failed cache write only costs the next caller a fetch.
		_ = c.cache.Set(ctx, key, encoded, bankCacheTTL)
	}

	return banks, nil
}
