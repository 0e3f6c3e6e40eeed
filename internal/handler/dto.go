package handler

type SentimentSummaryResponse struct {
	Name           string   `json:"name"`
	Sentiment      string   `json:"sentiment"`
	SentimentScore string   `json:"sentimentScore"`
	KeyTopics      []string `json:"keyTopics"`
	RecentNews     string   `json:"recentNews"`
}

type SentimentHistoryEntry struct {
	Name           string   `json:"name"`
	Sentiment      string   `json:"sentiment"`
	SentimentScore string   `json:"sentimentScore"`
	KeyTopics      []string `json:"keyTopics"`
	RecentNews     string   `json:"recentNews"`
	ComputedAt     string   `json:"computedAt"`
}

type SentimentHistoryResponse struct {
	Coin    string                  `json:"coin"`
	Entries []SentimentHistoryEntry `json:"entries"`
}

type ArticleResponse struct {
	Source      SourceResponse `json:"source"`
	Author      string         `json:"author"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	URL         string         `json:"url"`
	URLToImage  string         `json:"urlToImage"`
	PublishedAt string         `json:"publishedAt"`
	Content     string         `json:"content"`
}

type SourceResponse struct {
	Name string `json:"name"`
}

type CoinPriceResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}
