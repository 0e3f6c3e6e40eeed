package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coinpulse/pkg/market"
)

type PriceSource interface {
	TopCoins(ctx context.Context) ([]market.CoinPrice, error)
}

type CandleSource interface {
	OHLC(ctx context.Context, pair, interval string) (json.RawMessage, error)
}

type QuoteSource interface {
	CurrentPrices(ctx context.Context, coins []string) (map[string]market.PriceQuote, error)
	MarketChart(ctx context.Context, coin string, days int) (*market.MarketChart, error)
}

type MarketHandler struct {
	prices  PriceSource
	candles CandleSource
	quotes  QuoteSource
}

func NewMarketHandler(prices PriceSource, candles CandleSource, quotes QuoteSource) *MarketHandler {
	return &MarketHandler{prices: prices, candles: candles, quotes: quotes}
}

func (h *MarketHandler) GetPrices(c *gin.Context) {
	coins, err := h.prices.TopCoins(c.Request.Context())
	if err != nil {
		slog.Error("error fetching crypto prices", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch data."})
		return
	}

	res := make([]CoinPriceResponse, len(coins))
	for i, coin := range coins {
		res[i] = CoinPriceResponse{
			ID:     coin.ID,
			Name:   coin.Name,
			Symbol: coin.Symbol,
			Price:  fmt.Sprintf("%.2f", coin.Price),
		}
	}

	c.JSON(http.StatusOK, res)
}

func (h *MarketHandler) GetOHLCV(c *gin.Context) {
	pair := c.DefaultQuery("pair", "ETHUSDC")
	interval := c.DefaultQuery("interval", "60")

	rows, err := h.candles.OHLC(c.Request.Context(), pair, interval)
	if err != nil {
		if errors.Is(err, market.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No data found for pair: %s", pair)})
			return
		}
		slog.Error("error fetching OHLCV data", "pair", pair, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch OHLCV data."})
		return
	}

	c.Data(http.StatusOK, "application/json", rows)
}

func (h *MarketHandler) GetCurrentPrices(c *gin.Context) {
	coinsParam := strings.TrimSpace(c.Query("coins"))
	if coinsParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coins parameter is required."})
		return
	}

	var coins []string
	for _, coin := range strings.Split(coinsParam, ",") {
		if coin = strings.TrimSpace(coin); coin != "" {
			coins = append(coins, strings.ToLower(coin))
		}
	}

	quotes, err := h.quotes.CurrentPrices(c.Request.Context(), coins)
	if err != nil {
		slog.Error("error fetching current prices", "coins", coins, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch current prices."})
		return
	}

	c.JSON(http.StatusOK, quotes)
}

func (h *MarketHandler) GetPriceHistory(c *gin.Context) {
	coin := strings.ToLower(strings.TrimSpace(c.Query("coin")))
	if coin == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coin parameter is required."})
		return
	}

	days := getQueryInt("days", 30, c)
	if days < 1 {
		days = 30
	}

	chart, err := h.quotes.MarketChart(c.Request.Context(), coin, days)
	if err != nil {
		slog.Error("error fetching price history", "coin", coin, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch price history."})
		return
	}

	c.JSON(http.StatusOK, chart)
}
