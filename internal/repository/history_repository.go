package repository

import (
	"database/sql"
	"encoding/json"
	"strings"

	"coinpulse/internal/model"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) SaveSummary(summary *model.SentimentSummary) error {
	topics, err := json.Marshal(summary.KeyTopics)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		INSERT INTO sentiment_history(coin, name, sentiment, score, key_topics, recent_news, computed_at)
		VALUES($1, $2, $3, $4, $5, $6, $7)
	`, strings.ToLower(summary.CoinName), summary.CoinName, summary.Sentiment, summary.Score, topics, summary.RecentNewsTitle, summary.ComputedAt)
	return err
}

func (r *HistoryRepository) GetHistory(coin string, limit int) ([]model.SentimentSummary, error) {
	rows, err := r.db.Query(`
		SELECT name, sentiment, score, key_topics, recent_news, computed_at
		FROM sentiment_history
		WHERE coin = $1
		ORDER BY computed_at DESC
		LIMIT $2
	`, coin, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []model.SentimentSummary
	for rows.Next() {
		var s model.SentimentSummary
		var topicsJSON []byte
		err := rows.Scan(&s.CoinName, &s.Sentiment, &s.Score, &topicsJSON, &s.RecentNewsTitle, &s.ComputedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(topicsJSON, &s.KeyTopics); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
