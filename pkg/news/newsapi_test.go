package news

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func newFixtureServer(payload interface{}, captured *url.Values) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			*captured = r.URL.Query()
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
}

func newTestClient(srv *httptest.Server) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     "test-key",
		baseURL:    srv.URL,
		pageSize:   20,
		httpClient: srv.Client(),
	}
}

func articleFixture(title, description, content string) map[string]interface{} {
	return map[string]interface{}{
		"source":      map[string]interface{}{"id": nil, "name": "CoinDesk"},
		"author":      "Jane Smith",
		"title":       title,
		"description": description,
		"url":         "https://example.com/article",
		"urlToImage":  "https://example.com/image.jpg",
		"publishedAt": "2026-03-01T09:30:00Z",
		"content":     content,
	}
}

func TestFetchFiltersByCoin(t *testing.T) {
	payload := map[string]interface{}{
		"status": "ok",
		"articles": []map[string]interface{}{
			articleFixture("Solana Hits New High", "The token rallied.", "More details."),
			articleFixture("Fed Holds Rates", "Macro update.", "Nothing about crypto here."),
			articleFixture("Altcoin Roundup", "Several networks moved.", "Analysts say SOLANA leads the pack."),
		},
	}

	srv := newFixtureServer(payload, nil)
	defer srv.Close()

	client := newTestClient(srv)

	articles, err := client.Fetch(context.Background(), "solana")

	assert.Equal(t, nil, err)
	// Matches in title and (case-insensitively) in content survive the filter.
	assert.Equal(t, 2, len(articles))
	assert.Equal(t, "Solana Hits New High", articles[0].Title)
	assert.Equal(t, "Altcoin Roundup", articles[1].Title)
}

func TestFetchNoArticles(t *testing.T) {
	payload := map[string]interface{}{
		"status":   "ok",
		"articles": []map[string]interface{}{},
	}

	srv := newFixtureServer(payload, nil)
	defer srv.Close()

	client := newTestClient(srv)

	_, err := client.Fetch(context.Background(), "bitcoin")

	assert.Equal(t, true, errors.Is(err, ErrNoArticles))
}

func TestFetchNoneRelevant(t *testing.T) {
	payload := map[string]interface{}{
		"status": "ok",
		"articles": []map[string]interface{}{
			articleFixture("Bitcoin Steady", "BTC moved sideways.", "Bitcoin traded flat."),
		},
	}

	srv := newFixtureServer(payload, nil)
	defer srv.Close()

	client := newTestClient(srv)

	_, err := client.Fetch(context.Background(), "solana")

	assert.Equal(t, true, errors.Is(err, ErrNoneRelevant))
}

func TestFetchQueryWithCoin(t *testing.T) {
	payload := map[string]interface{}{
		"status": "ok",
		"articles": []map[string]interface{}{
			articleFixture("Bitcoin Steady", "BTC moved sideways.", ""),
		},
	}

	var captured url.Values
	srv := newFixtureServer(payload, &captured)
	defer srv.Close()

	client := newTestClient(srv)

	_, err := client.Fetch(context.Background(), "bitcoin")

	assert.Equal(t, nil, err)
	assert.Equal(t, `"bitcoin" cryptocurrency OR "bitcoin" crypto OR "bitcoin" blockchain`, captured.Get("q"))
	assert.Equal(t, "20", captured.Get("pageSize"))
	assert.Equal(t, "publishedAt", captured.Get("sortBy"))
	assert.Equal(t, "en", captured.Get("language"))
	assert.Equal(t, "test-key", captured.Get("apiKey"))
}

func TestFetchQueryWithoutCoin(t *testing.T) {
	payload := map[string]interface{}{
		"status": "ok",
		"articles": []map[string]interface{}{
			articleFixture("Fed Holds Rates", "Macro update.", ""),
		},
	}

	var captured url.Values
	srv := newFixtureServer(payload, &captured)
	defer srv.Close()

	client := newTestClient(srv)

	articles, err := client.Fetch(context.Background(), "")

	assert.Equal(t, nil, err)
	assert.Equal(t, "cryptocurrency", captured.Get("q"))
	// Without a coin no relevance filter is applied.
	assert.Equal(t, 1, len(articles))
}

func TestFetchParsesArticleFields(t *testing.T) {
	payload := map[string]interface{}{
		"status": "ok",
		"articles": []map[string]interface{}{
			articleFixture("Bitcoin Steady", "BTC moved sideways.", "Bitcoin traded flat."),
		},
	}

	srv := newFixtureServer(payload, nil)
	defer srv.Close()

	client := newTestClient(srv)

	articles, err := client.Fetch(context.Background(), "bitcoin")

	assert.Equal(t, nil, err)
	a := articles[0]
	assert.Equal(t, "CoinDesk", a.SourceName)
	assert.Equal(t, "Jane Smith", a.Author)
	assert.Equal(t, "https://example.com/article", a.URL)
	assert.Equal(t, "https://example.com/image.jpg", a.ImageURL)
	assert.NotEqual(t, time.Time{}, a.PublishedAt)
	assert.Equal(t, 2026, a.PublishedAt.Year())
	assert.Equal(t, time.March, a.PublishedAt.Month())
}

func TestFetchUpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestClient(srv)

	_, err := client.Fetch(context.Background(), "bitcoin")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, false, errors.Is(err, ErrNoArticles))
}
