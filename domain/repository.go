package domain

import (
	"context"

	"talent-pipeline/pipeline"
)

// ListFilter narrows candidate listings. Zero values match everything.
type ListFilter struct {
	Stage *pipeline.Stage
	Query string
}

// Stats summarises the candidate table for the dashboard.
type Stats struct {
	Total      int64 `json:"total"`
	Qualified  int64 `json:"qualified"`
	InPipeline int64 `json:"inPipeline"`
	AvgScore   int   `json:"avgScore"`
}

// CandidateRepository persists candidates and their intake responses.
type CandidateRepository interface {
	Create(ctx context.Context, c *Candidate) error
	Get(ctx context.Context, id string) (*Candidate, error)
	// List returns candidates newest first.
	List(ctx context.Context, f ListFilter) ([]Candidate, error)
	Count(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (Stats, error)
	// Update loads the candidate, applies fn and writes back the named columns
	// together with updated_at as one statement.
	Update(ctx context.Context, id string, fn func(c *Candidate) error, columns ...string) (*Candidate, error)

	// AppendIntakeResponse calls next with the responses recorded so far and
	// stores the response it returns.
	AppendIntakeResponse(ctx context.Context, candidateID string, next func(c *Candidate, answered []IntakeResponse) (*IntakeResponse, error)) (*IntakeResponse, error)
	// ListIntakeResponses returns responses oldest first.
	ListIntakeResponses(ctx context.Context, candidateID string) ([]IntakeResponse, error)
}
