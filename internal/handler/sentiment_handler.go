package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"coinpulse/internal/model"
	"coinpulse/internal/sentiment"
)

type SummaryProvider interface {
	Summary(ctx context.Context, coin string) (*model.SentimentSummary, error)
}

type HistoryStore interface {
	GetHistory(coin string, limit int) ([]model.SentimentSummary, error)
}

type SentimentHandler struct {
	provider SummaryProvider
	history  HistoryStore
}

func NewSentimentHandler(provider SummaryProvider) *SentimentHandler {
	return &SentimentHandler{provider: provider}
}

// WithHistory enables the sentiment-history endpoint.
func (h *SentimentHandler) WithHistory(history HistoryStore) *SentimentHandler {
	h.history = history
	return h
}

func (h *SentimentHandler) GetSummary(c *gin.Context) {
	coin := strings.TrimSpace(c.Query("coin"))
	if coin == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coin parameter is required."})
		return
	}

	summary, err := h.provider.Summary(c.Request.Context(), coin)
	if err != nil {
		if errors.Is(err, sentiment.ErrNoArticles) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No news articles found for this coin."})
			return
		}
		slog.Error("error generating sentiment summary", "coin", coin, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to generate sentiment summary."})
		return
	}

	c.JSON(http.StatusOK, toSummaryResponse(*summary))
}

func (h *SentimentHandler) GetHistory(c *gin.Context) {
	coin := strings.ToLower(strings.TrimSpace(c.Query("coin")))
	if coin == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coin parameter is required."})
		return
	}

	limit := getQueryLimit(c)

	summaries, err := h.history.GetHistory(coin, limit)
	if err != nil {
		slog.Error("error fetching sentiment history", "coin", coin, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	entries := make([]SentimentHistoryEntry, 0, len(summaries))
	for _, s := range summaries {
		entries = append(entries, SentimentHistoryEntry{
			Name:           s.CoinName,
			Sentiment:      s.Sentiment,
			SentimentScore: formatScore(s.Score),
			KeyTopics:      s.KeyTopics,
			RecentNews:     s.RecentNewsTitle,
			ComputedAt:     s.ComputedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, SentimentHistoryResponse{
		Coin:    coin,
		Entries: entries,
	})
}

func toSummaryResponse(s model.SentimentSummary) SentimentSummaryResponse {
	return SentimentSummaryResponse{
		Name:           s.CoinName,
		Sentiment:      s.Sentiment,
		SentimentScore: formatScore(s.Score),
		KeyTopics:      s.KeyTopics,
		RecentNews:     s.RecentNewsTitle,
	}
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}
