package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"coinpulse/pkg/market"
)

type fakePriceSource struct {
	coins []market.CoinPrice
	err   error
}

func (f *fakePriceSource) TopCoins(ctx context.Context) ([]market.CoinPrice, error) {
	return f.coins, f.err
}

type fakeCandleSource struct {
	rows json.RawMessage
	err  error
}

func (f *fakeCandleSource) OHLC(ctx context.Context, pair, interval string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakeQuoteSource struct {
	quotes map[string]market.PriceQuote
	chart  *market.MarketChart
	err    error
}

func (f *fakeQuoteSource) CurrentPrices(ctx context.Context, coins []string) (map[string]market.PriceQuote, error) {
	return f.quotes, f.err
}

func (f *fakeQuoteSource) MarketChart(ctx context.Context, coin string, days int) (*market.MarketChart, error) {
	return f.chart, f.err
}

func newTestMarketRouter(prices PriceSource, candles CandleSource, quotes QuoteSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewMarketHandler(prices, candles, quotes)
	r.GET("/api/crypto-prices", h.GetPrices)
	r.GET("/api/kraken-ohlcv", h.GetOHLCV)
	r.GET("/api/current-prices", h.GetCurrentPrices)
	r.GET("/api/price-history", h.GetPriceHistory)
	return r
}

func TestGetPrices_OK(t *testing.T) {
	prices := &fakePriceSource{
		coins: []market.CoinPrice{
			{ID: 1, Name: "Bitcoin", Symbol: "BTC", Price: 43250.123},
			{ID: 1027, Name: "Ethereum", Symbol: "ETH", Price: 2280.5},
		},
	}

	r := newTestMarketRouter(prices, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/crypto-prices", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res []CoinPriceResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, 2, len(res))
	assert.Equal(t, "43250.12", res[0].Price)
	assert.Equal(t, "2280.50", res[1].Price)
	assert.Equal(t, "BTC", res[0].Symbol)
}

func TestGetPrices_UpstreamError(t *testing.T) {
	r := newTestMarketRouter(&fakePriceSource{err: errors.New("timeout")}, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/crypto-prices", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetOHLCV_Passthrough(t *testing.T) {
	rows := json.RawMessage(`[[1700000000,"2010.5","2015.0","2008.2","2012.3","2011.1","53.2",120]]`)

	r := newTestMarketRouter(nil, &fakeCandleSource{rows: rows}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/kraken-ohlcv?pair=ETHUSDC&interval=60", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(rows), w.Body.String())
}

func TestGetOHLCV_UnknownPair(t *testing.T) {
	r := newTestMarketRouter(nil, &fakeCandleSource{err: market.ErrNoData}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/kraken-ohlcv?pair=FOOUSD", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "No data found for pair: FOOUSD", res["error"])
}

func TestGetCurrentPrices_MissingCoins(t *testing.T) {
	r := newTestMarketRouter(nil, nil, &fakeQuoteSource{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/current-prices", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCurrentPrices_OK(t *testing.T) {
	quotes := &fakeQuoteSource{
		quotes: map[string]market.PriceQuote{
			"bitcoin": {USD: 43250.12, Change24h: 2.4},
		},
	}

	r := newTestMarketRouter(nil, nil, quotes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/current-prices?coins=bitcoin", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]market.PriceQuote
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 43250.12, res["bitcoin"].USD)
	assert.Equal(t, 2.4, res["bitcoin"].Change24h)
}

func TestGetPriceHistory_MissingCoin(t *testing.T) {
	r := newTestMarketRouter(nil, nil, &fakeQuoteSource{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/price-history", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPriceHistory_OK(t *testing.T) {
	quotes := &fakeQuoteSource{
		chart: &market.MarketChart{
			Prices: [][]float64{{1700000000000, 43250.12}, {1700086400000, 43900.01}},
		},
	}

	r := newTestMarketRouter(nil, nil, quotes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/price-history?coin=bitcoin&days=30", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res market.MarketChart
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res.Prices))
}
