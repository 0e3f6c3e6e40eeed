package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"coinpulse/pkg/news"
)

type NewsSource interface {
	Fetch(ctx context.Context, coin string) ([]news.Article, error)
}

type NewsHandler struct {
	source NewsSource
}

func NewNewsHandler(source NewsSource) *NewsHandler {
	return &NewsHandler{source: source}
}

func (h *NewsHandler) GetNews(c *gin.Context) {
	coin := strings.TrimSpace(c.Query("coin"))

	articles, err := h.source.Fetch(c.Request.Context(), coin)
	if err != nil {
		switch {
		case errors.Is(err, news.ErrNoArticles):
			c.JSON(http.StatusNotFound, gin.H{"error": "No news articles found."})
		case errors.Is(err, news.ErrNoneRelevant):
			c.JSON(http.StatusNotFound, gin.H{"error": "No relevant news articles found."})
		default:
			slog.Error("error fetching news", "coin", coin, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch news articles."})
		}
		return
	}

	res := make([]ArticleResponse, len(articles))
	for i, a := range articles {
		res[i] = ArticleResponse{
			Source:      SourceResponse{Name: a.SourceName},
			Author:      a.Author,
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			URLToImage:  a.ImageURL,
			PublishedAt: a.PublishedAt.Format(time.RFC3339),
			Content:     a.Content,
		}
	}

	c.JSON(http.StatusOK, res)
}
