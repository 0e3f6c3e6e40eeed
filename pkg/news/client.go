package news

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoArticles means the upstream returned nothing for the query.
	ErrNoArticles = errors.New("no news articles found")
	// ErrNoneRelevant means the upstream returned articles but none mention the coin.
	ErrNoneRelevant = errors.New("no relevant news articles found")
)

type Article struct {
	SourceName  string
	Author      string
	Title       string
	Description string
	URL         string
	ImageURL    string
	PublishedAt time.Time
	Content     string
}

type Client interface {
	Fetch(ctx context.Context, coin string) ([]Article, error)
}
