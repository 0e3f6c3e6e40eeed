package nlp

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicAnalyzer struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicAnalyzer(apiKey string) *AnthropicAnalyzer {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicAnalyzer{
		client: &client,
		model:  anthropic.ModelClaudeHaiku4_5,
	}
}

func (a *AnthropicAnalyzer) Score(ctx context.Context, text string) (float64, error) {
	content, err := a.complete(ctx, scoreSystemPrompt, text)
	if err != nil {
		return 0, err
	}
	return parseScoreResponse(content)
}

func (a *AnthropicAnalyzer) Entities(ctx context.Context, text string) ([]Entity, error) {
	content, err := a.complete(ctx, entitiesSystemPrompt, text)
	if err != nil {
		return nil, err
	}
	return parseEntitiesResponse(content)
}

func (a *AnthropicAnalyzer) complete(ctx context.Context, system, text string) (string, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})

	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}

	return resp.Content[0].Text, nil
}
