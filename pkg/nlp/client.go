package nlp

import "context"

// Entity types the dashboard surfaces as key topics.
const (
	EntityOrganization = "ORGANIZATION"
	EntityEvent        = "EVENT"
)

type Entity struct {
	Name string
	Type string
}

type Analyzer interface {
	Score(ctx context.Context, text string) (float64, error)
	Entities(ctx context.Context, text string) ([]Entity, error)
}
