package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	newsAPIBaseURL  = "https://newsapi.org/v2"
	defaultPageSize = 20
)

type NewsAPIClient struct {
	apiKey     string
	baseURL    string
	pageSize   int
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		baseURL:    newsAPIBaseURL,
		pageSize:   defaultPageSize,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch returns English crypto articles sorted by publication date. When coin
// is non-empty the query is scoped to it and results are filtered to articles
// that actually mention the coin in title, description, or content.
func (c *NewsAPIClient) Fetch(ctx context.Context, coin string) ([]Article, error) {
	coin = strings.TrimSpace(coin)

	query := "cryptocurrency"
	if coin != "" {
		query = fmt.Sprintf("%q cryptocurrency OR %q crypto OR %q blockchain", coin, coin, coin)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("pageSize", strconv.Itoa(c.pageSize))
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi status %d", resp.StatusCode)
	}

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	if len(raw.Articles) == 0 {
		return nil, ErrNoArticles
	}

	articles := make([]Article, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		if coin != "" && !mentionsCoin(item, coin) {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			SourceName:  item.Source.Name,
			Author:      item.Author,
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			ImageURL:    item.URLToImage,
			PublishedAt: publishedAt,
			Content:     item.Content,
		})
	}

	if len(articles) == 0 {
		return nil, ErrNoneRelevant
	}

	return articles, nil
}

func mentionsCoin(item newsAPIArticle, coin string) bool {
	needle := strings.ToLower(coin)
	return strings.Contains(strings.ToLower(item.Title), needle) ||
		strings.Contains(strings.ToLower(item.Description), needle) ||
		strings.Contains(strings.ToLower(item.Content), needle)
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source      newsAPISource `json:"source"`
	Author      string        `json:"author"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	URLToImage  string        `json:"urlToImage"`
	PublishedAt string        `json:"publishedAt"`
	Content     string        `json:"content"`
}

type newsAPISource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
