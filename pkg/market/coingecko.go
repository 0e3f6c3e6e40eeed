package market

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultCoinGeckoBaseURL = "https://api.coingecko.com/api/v3"

type PriceQuote struct {
	USD       float64 `json:"usd"`
	Change24h float64 `json:"usd_24h_change"`
}

type MarketChart struct {
	Prices       [][]float64 `json:"prices"`
	MarketCaps   [][]float64 `json:"market_caps"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

type CoinGeckoClient struct {
	http *resty.Client
}

func NewCoinGeckoClient(baseURL string) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = defaultCoinGeckoBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)

	return &CoinGeckoClient{http: client}
}

// CurrentPrices returns USD quotes with 24h change for the given coin ids.
func (c *CoinGeckoClient) CurrentPrices(ctx context.Context, coins []string) (map[string]PriceQuote, error) {
	var raw map[string]PriceQuote

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":                 strings.Join(coins, ","),
			"vs_currencies":       "usd",
			"include_24hr_change": "true",
		}).
		SetResult(&raw).
		Get("/simple/price")

	if err != nil {
		return nil, fmt.Errorf("coingecko fetch: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("coingecko status %d", resp.StatusCode())
	}

	return raw, nil
}

// MarketChart returns the USD price history for a coin over the last days.
func (c *CoinGeckoClient) MarketChart(ctx context.Context, coin string, days int) (*MarketChart, error) {
	var raw MarketChart

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"vs_currency": "usd",
			"days":        strconv.Itoa(days),
		}).
		SetResult(&raw).
		Get("/coins/" + coin + "/market_chart")

	if err != nil {
		return nil, fmt.Errorf("coingecko fetch: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("coingecko status %d", resp.StatusCode())
	}

	return &raw, nil
}
