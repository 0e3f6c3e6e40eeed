package model

import "time"

const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

type SentimentSummary struct {
	CoinName        string
	Sentiment       string
	Score           float64
	KeyTopics       []string
	RecentNewsTitle string
	ComputedAt      time.Time
}
