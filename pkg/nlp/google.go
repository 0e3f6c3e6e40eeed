package nlp

import (
	"context"
	"fmt"

	language "cloud.google.com/go/language/apiv1"
	"cloud.google.com/go/language/apiv1/languagepb"
)

// GoogleAnalyzer scores sentiment and extracts entities with the Cloud
// Natural Language API. Credentials come from the environment
// (GOOGLE_APPLICATION_CREDENTIALS).
type GoogleAnalyzer struct {
	client *language.Client
}

func NewGoogleAnalyzer(ctx context.Context) (*GoogleAnalyzer, error) {
	client, err := language.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("language client: %w", err)
	}
	return &GoogleAnalyzer{client: client}, nil
}

func (a *GoogleAnalyzer) Close() error {
	return a.client.Close()
}

func (a *GoogleAnalyzer) Score(ctx context.Context, text string) (float64, error) {
	resp, err := a.client.AnalyzeSentiment(ctx, &languagepb.AnalyzeSentimentRequest{
		Document: plainTextDocument(text),
	})
	if err != nil {
		return 0, fmt.Errorf("analyze sentiment: %w", err)
	}
	return float64(resp.DocumentSentiment.Score), nil
}

func (a *GoogleAnalyzer) Entities(ctx context.Context, text string) ([]Entity, error) {
	resp, err := a.client.AnalyzeEntities(ctx, &languagepb.AnalyzeEntitiesRequest{
		Document: plainTextDocument(text),
	})
	if err != nil {
		return nil, fmt.Errorf("analyze entities: %w", err)
	}

	entities := make([]Entity, 0, len(resp.Entities))
	for _, e := range resp.Entities {
		entities = append(entities, Entity{
			Name: e.Name,
			Type: e.Type.String(),
		})
	}

	return entities, nil
}

func plainTextDocument(text string) *languagepb.Document {
	return &languagepb.Document{
		Source:   &languagepb.Document_Content{Content: text},
		Type:     languagepb.Document_PLAIN_TEXT,
		Language: "en",
	}
}
