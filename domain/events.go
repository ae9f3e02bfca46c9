package domain

import (
	"context"
	"time"
)

// EventType names a pipeline event.
type EventType string

const (
	EventCandidateCreated    EventType = "candidate.created"
	EventCandidateRescreened EventType = "candidate.rescreened"
	EventStatusChanged       EventType = "candidate.status_changed"
	EventStageChanged        EventType = "candidate.stage_changed"
	EventIntakeRecorded      EventType = "intake.response_recorded"
	EventIntakeCompleted     EventType = "intake.completed"
)

// Event is published after a candidate mutation has been persisted.
type Event struct {
	Type        EventType `json:"type"`
	CandidateID string    `json:"candidateId"`
	From        string    `json:"from,omitempty"`
	To          string    `json:"to,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// EventPublisher delivers events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, e Event) error
}
