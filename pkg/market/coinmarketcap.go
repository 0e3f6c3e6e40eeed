package market

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultCMCBaseURL = "https://pro-api.coinmarketcap.com/v1"

type CoinPrice struct {
	ID     int64
	Name   string
	Symbol string
	Price  float64
}

type CoinMarketCapClient struct {
	http *resty.Client
}

func NewCoinMarketCapClient(apiKey, baseURL string) *CoinMarketCapClient {
	if baseURL == "" {
		baseURL = defaultCMCBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("X-CMC_PRO_API_KEY", apiKey)

	return &CoinMarketCapClient{http: client}
}

// TopCoins returns the top 10 coins by market cap with USD prices.
func (c *CoinMarketCapClient) TopCoins(ctx context.Context) ([]CoinPrice, error) {
	var raw cmcListingsResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"start":   "1",
			"limit":   "10",
			"convert": "USD",
		}).
		SetResult(&raw).
		Get("/cryptocurrency/listings/latest")

	if err != nil {
		return nil, fmt.Errorf("coinmarketcap fetch: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("coinmarketcap status %d", resp.StatusCode())
	}

	coins := make([]CoinPrice, 0, len(raw.Data))
	for _, item := range raw.Data {
		coins = append(coins, CoinPrice{
			ID:     item.ID,
			Name:   item.Name,
			Symbol: item.Symbol,
			Price:  item.Quote.USD.Price,
		})
	}

	return coins, nil
}

type cmcListingsResponse struct {
	Data []cmcListing `json:"data"`
}

type cmcListing struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Symbol string   `json:"symbol"`
	Quote  cmcQuote `json:"quote"`
}

type cmcQuote struct {
	USD cmcUSDQuote `json:"USD"`
}

type cmcUSDQuote struct {
	Price            float64 `json:"price"`
	PercentChange24H float64 `json:"percent_change_24h"`
}
