package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"coinpulse/internal/model"
	"coinpulse/pkg/news"
	"coinpulse/pkg/nlp"
)

// ErrNoArticles means no news exists for the coin, so no summary can be built.
var ErrNoArticles = errors.New("no news articles found for this coin")

const fallbackTopic = "General Crypto"

type NewsSource interface {
	Fetch(ctx context.Context, coin string) ([]news.Article, error)
}

type SummaryCache interface {
	Get(ctx context.Context, coin string) (*model.SentimentSummary, error)
	Set(ctx context.Context, coin string, summary model.SentimentSummary) error
}

type HistoryStore interface {
	SaveSummary(summary *model.SentimentSummary) error
}

// Aggregator builds per-coin sentiment summaries: fetch news, score every
// article, average, classify, and pull key topics from the most recent
// article's entities.
type Aggregator struct {
	source   NewsSource
	analyzer nlp.Analyzer
	cache    SummaryCache
	history  HistoryStore
}

func NewAggregator(source NewsSource, analyzer nlp.Analyzer, cache SummaryCache) *Aggregator {
	return &Aggregator{source: source, analyzer: analyzer, cache: cache}
}

// WithHistory makes the aggregator record every computed summary.
func (a *Aggregator) WithHistory(history HistoryStore) *Aggregator {
	a.history = history
	return a
}

// Summary returns the cached summary for a coin, computing one first on a
// miss or an expired entry. A cached entry is served as-is with no upstream
// calls.
func (a *Aggregator) Summary(ctx context.Context, coin string) (*model.SentimentSummary, error) {
	key := normalizeCoin(coin)

	cached, err := a.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("cache read failed, recomputing", "coin", key, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	return a.compute(ctx, key)
}

// Refresh recomputes a coin's summary and overwrites any cached entry,
// regardless of freshness.
func (a *Aggregator) Refresh(ctx context.Context, coin string) (*model.SentimentSummary, error) {
	return a.compute(ctx, normalizeCoin(coin))
}

func (a *Aggregator) compute(ctx context.Context, coin string) (*model.SentimentSummary, error) {
	articles, err := a.source.Fetch(ctx, coin)
	if err != nil {
		if errors.Is(err, news.ErrNoArticles) || errors.Is(err, news.ErrNoneRelevant) {
			return nil, ErrNoArticles
		}
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	if len(articles) == 0 {
		return nil, ErrNoArticles
	}

	mean, err := a.averageScore(ctx, articles)
	if err != nil {
		return nil, err
	}

	recent := mostRecent(articles)

	entities, err := a.analyzer.Entities(ctx, articleText(recent))
	if err != nil {
		return nil, fmt.Errorf("extract entities: %w", err)
	}

	summary := model.SentimentSummary{
		CoinName:        displayName(coin),
		Sentiment:       classify(mean),
		Score:           math.Round(mean*100) / 100,
		KeyTopics:       keyTopics(entities),
		RecentNewsTitle: recent.Title,
		ComputedAt:      time.Now(),
	}

	if err := a.cache.Set(ctx, coin, summary); err != nil {
		slog.Warn("cache write failed", "coin", coin, "error", err)
	}

	if a.history != nil {
		if err := a.history.SaveSummary(&summary); err != nil {
			slog.Error("error saving sentiment history", "coin", coin, "error", err)
		}
	}

	return &summary, nil
}

// averageScore scores all articles concurrently and averages the calls that
// succeeded. Failed calls are skipped; the whole step fails only when no
// article could be scored.
func (a *Aggregator) averageScore(ctx context.Context, articles []news.Article) (float64, error) {
	scores := make([]float64, len(articles))
	scored := make([]bool, len(articles))
	errs := make([]error, len(articles))

	var wg sync.WaitGroup
	for i := range articles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			score, err := a.analyzer.Score(ctx, articleText(articles[i]))
			if err != nil {
				errs[i] = err
				return
			}
			scores[i] = score
			scored[i] = true
		}(i)
	}
	wg.Wait()

	var sum float64
	var count int
	for i := range articles {
		if !scored[i] {
			slog.Warn("article scoring failed, skipping", "title", articles[i].Title, "error", errs[i])
			continue
		}
		sum += scores[i]
		count++
	}

	if count == 0 {
		for _, err := range errs {
			if err != nil {
				return 0, fmt.Errorf("score articles: %w", err)
			}
		}
		return 0, fmt.Errorf("score articles: nothing scored")
	}

	return sum / float64(count), nil
}

func mostRecent(articles []news.Article) news.Article {
	recent := articles[0]
	for _, a := range articles[1:] {
		if a.PublishedAt.After(recent.PublishedAt) {
			recent = a
		}
	}
	return recent
}

func keyTopics(entities []nlp.Entity) []string {
	var topics []string
	for _, e := range entities {
		if e.Type == nlp.EntityOrganization || e.Type == nlp.EntityEvent {
			topics = append(topics, e.Name)
		}
	}
	if len(topics) == 0 {
		return []string{fallbackTopic}
	}
	return topics
}

func classify(score float64) string {
	switch {
	case score > 0:
		return model.SentimentPositive
	case score < 0:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

func normalizeCoin(coin string) string {
	return strings.ToLower(strings.TrimSpace(coin))
}

func displayName(coin string) string {
	if coin == "" {
		return coin
	}
	return strings.ToUpper(coin[:1]) + coin[1:]
}

func articleText(a news.Article) string {
	return a.Title + " " + a.Description
}
