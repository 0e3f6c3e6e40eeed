package nlp

import (
	"encoding/json"
	"fmt"
	"strings"
)

func parseScoreResponse(content string) (float64, error) {
	content = cleanJSONResponse(content)

	var parsed struct {
		Score float64 `json:"score"`
	}

	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return 0, fmt.Errorf("failed to parse score response: %w, content: %s", err, content)
	}

	if parsed.Score < -1 || parsed.Score > 1 {
		return 0, fmt.Errorf("score %v out of range", parsed.Score)
	}

	return parsed.Score, nil
}

func parseEntitiesResponse(content string) ([]Entity, error) {
	content = cleanJSONResponse(content)

	var parsed struct {
		Entities []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"entities"`
	}

	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse entities response: %w, content: %s", err, content)
	}

	entities := make([]Entity, 0, len(parsed.Entities))
	for _, e := range parsed.Entities {
		if e.Name == "" {
			continue
		}
		entities = append(entities, Entity{
			Name: e.Name,
			Type: strings.ToUpper(e.Type),
		})
	}

	return entities, nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
