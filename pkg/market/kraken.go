package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultKrakenBaseURL = "https://api.kraken.com"

// ErrNoData means Kraken has no OHLC rows for the requested pair.
var ErrNoData = errors.New("no ohlcv data for pair")

type KrakenClient struct {
	http *resty.Client
}

func NewKrakenClient(baseURL string) *KrakenClient {
	if baseURL == "" {
		baseURL = defaultKrakenBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)

	return &KrakenClient{http: client}
}

// OHLC returns the raw candle rows [time, open, high, low, close, vwap,
// volume, count] for a pair, passed through unmodified. Kraken keys the
// result by the pair name it was queried with, so a pair it does not know
// simply has no entry.
func (c *KrakenClient) OHLC(ctx context.Context, pair, interval string) (json.RawMessage, error) {
	var raw krakenOHLCResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"pair":     pair,
			"interval": interval,
		}).
		SetResult(&raw).
		Get("/0/public/OHLC")

	if err != nil {
		return nil, fmt.Errorf("kraken fetch: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("kraken status %d", resp.StatusCode())
	}

	rowsRaw, ok := raw.Result[pair]
	if !ok {
		return nil, ErrNoData
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(rowsRaw, &rows); err != nil {
		return nil, fmt.Errorf("kraken decode rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	return rowsRaw, nil
}

type krakenOHLCResponse struct {
	Error  []string                   `json:"error"`
	Result map[string]json.RawMessage `json:"result"`
}
