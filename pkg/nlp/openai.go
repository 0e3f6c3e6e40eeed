package nlp

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const scoreSystemPrompt = `You are a sentiment analysis engine for financial news.
Rate the overall sentiment of the text on a scale from -1.0 (very negative) to 1.0 (very positive), where 0 is neutral.

Output as JSON only, no other text:
{
  "score": -1.0 to 1.0
}`

const entitiesSystemPrompt = `You are a named entity recognition engine for financial news.
Extract the named entities from the text. Allowed types: PERSON, ORGANIZATION, LOCATION, EVENT, WORK_OF_ART, CONSUMER_GOOD, OTHER.
List entities in order of salience, most prominent first.

Output as JSON only, no other text:
{
  "entities": [
    {"name": "entity name", "type": "ORGANIZATION"}
  ]
}`

type OpenAIAnalyzer struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewOpenAIAnalyzer(apiKey string) *OpenAIAnalyzer {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIAnalyzer{
		client: &client,
		model:  openai.ChatModelGPT4oMini,
	}
}

func (a *OpenAIAnalyzer) Score(ctx context.Context, text string) (float64, error) {
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: a.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(scoreSystemPrompt),
			openai.UserMessage(text),
		},
	})

	if err != nil {
		return 0, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("no response from openai")
	}

	return parseScoreResponse(resp.Choices[0].Message.Content)
}

func (a *OpenAIAnalyzer) Entities(ctx context.Context, text string) ([]Entity, error) {
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: a.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(entitiesSystemPrompt),
			openai.UserMessage(text),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	return parseEntitiesResponse(resp.Choices[0].Message.Content)
}
