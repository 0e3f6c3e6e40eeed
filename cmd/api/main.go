package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"coinpulse/db"
	"coinpulse/internal/cache"
	"coinpulse/internal/config"
	"coinpulse/internal/handler"
	"coinpulse/internal/repository"
	"coinpulse/internal/sentiment"
	"coinpulse/pkg/market"
	"coinpulse/pkg/news"
	"coinpulse/pkg/nlp"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	if cfg.NewsAPIKey == "" {
		log.Fatal("NEWS_API_KEY is not set")
	}

	newsClient := news.NewNewsAPIClient(cfg.NewsAPIKey)

	analyzer, closeAnalyzer, err := buildAnalyzer(cfg)
	if err != nil {
		log.Fatalf("error building NLP analyzer: %v", err)
	}
	defer closeAnalyzer()

	summaryCache, err := buildCache(cfg)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}

	aggregator := sentiment.NewAggregator(newsClient, analyzer, summaryCache)
	sentimentHandler := handler.NewSentimentHandler(aggregator)

	var historyEnabled bool
	if cfg.DatabaseURL != "" {
		sqlDB, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("error connecting to DB: %v", err)
		}
		defer sqlDB.Close()

		historyRepo := repository.NewHistoryRepository(sqlDB)
		aggregator.WithHistory(historyRepo)
		sentimentHandler.WithHistory(historyRepo)
		historyEnabled = true
	}

	newsHandler := handler.NewNewsHandler(newsClient)
	marketHandler := handler.NewMarketHandler(
		market.NewCoinMarketCapClient(cfg.CMCAPIKey, cfg.CMCBaseURL),
		market.NewKrakenClient(""),
		market.NewCoinGeckoClient(""),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refresher := sentiment.NewRefresher(aggregator, cfg.RefreshCoins, cfg.RefreshInterval)
	go refresher.Run(ctx)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/api/sentiment-summary", sentimentHandler.GetSummary)
	r.GET("/api/crypto-news", newsHandler.GetNews)
	r.GET("/api/crypto-prices", marketHandler.GetPrices)
	r.GET("/api/kraken-ohlcv", marketHandler.GetOHLCV)
	r.GET("/api/current-prices", marketHandler.GetCurrentPrices)
	r.GET("/api/price-history", marketHandler.GetPriceHistory)
	r.GET("/health", handler.Health)

	if historyEnabled {
		r.GET("/api/sentiment-history", sentimentHandler.GetHistory)
	}

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func buildAnalyzer(cfg config.Config) (nlp.Analyzer, func(), error) {
	switch {
	case cfg.GoogleCredentials != "":
		analyzer, err := nlp.NewGoogleAnalyzer(context.Background())
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using Google Cloud Natural Language analyzer")
		return analyzer, func() { analyzer.Close() }, nil
	case cfg.OpenAIKey != "":
		slog.Info("using OpenAI analyzer")
		return nlp.NewOpenAIAnalyzer(cfg.OpenAIKey), func() {}, nil
	case cfg.AnthropicKey != "":
		slog.Info("using Anthropic analyzer")
		return nlp.NewAnthropicAnalyzer(cfg.AnthropicKey), func() {}, nil
	}
	return nil, nil, fmt.Errorf("no NLP credentials configured (set GOOGLE_APPLICATION_CREDENTIALS, OPENAI_API_KEY or ANTHROPIC_API_KEY)")
}

func buildCache(cfg config.Config) (cache.Store, error) {
	if cfg.RedisURL != "" {
		client, err := db.ConnectRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		slog.Info("using Redis summary cache")
		return cache.NewRedisStore(client, cfg.CacheTTL), nil
	}
	return cache.NewMemoryStore(cfg.CacheTTL), nil
}
