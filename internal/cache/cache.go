package cache

import (
	"context"

	"coinpulse/internal/model"
)

// Store is a keyed summary cache with an expiry policy. Get returns nil
// without error on a miss; an expired entry is a miss.
type Store interface {
	Get(ctx context.Context, coin string) (*model.SentimentSummary, error)
	Set(ctx context.Context, coin string, summary model.SentimentSummary) error
}
