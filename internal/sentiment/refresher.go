package sentiment

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Refresher recomputes the summaries for a fixed coin list on a fixed
// period, overwriting cached entries. Coins are refreshed sequentially and a
// failing coin never stops the others.
type Refresher struct {
	aggregator *Aggregator
	coins      []string
	interval   time.Duration
}

func NewRefresher(aggregator *Aggregator, coins []string, interval time.Duration) *Refresher {
	return &Refresher{
		aggregator: aggregator,
		coins:      coins,
		interval:   interval,
	}
}

// Run blocks until ctx is cancelled, refreshing all coins on every tick.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

func (r *Refresher) refreshAll(ctx context.Context) {
	for _, coin := range r.coins {
		slog.Info("updating sentiment", "coin", coin)

		summary, err := r.aggregator.Refresh(ctx, coin)
		if err != nil {
			if errors.Is(err, ErrNoArticles) {
				slog.Warn("no news articles found", "coin", coin)
			} else {
				slog.Error("error refreshing sentiment", "coin", coin, "error", err)
			}
			continue
		}

		slog.Info("sentiment updated", "coin", coin, "sentiment", summary.Sentiment, "score", summary.Score)
	}
}
