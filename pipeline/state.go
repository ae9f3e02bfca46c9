// Package pipeline defines candidate statuses and kanban stages and the
// rules for moving a candidate between them.
package pipeline

import (
	"fmt"
	"strings"
)

// Status is the recruiter-facing lifecycle state of a candidate.
type Status string

const (
	StatusNew       Status = "new"
	StatusReviewing Status = "reviewing"
	StatusQualified Status = "qualified"
	StatusContacted Status = "contacted"
	StatusRejected  Status = "rejected"
	StatusPlaced    Status = "placed"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusNew,
	StatusReviewing,
	StatusQualified,
	StatusContacted,
	StatusRejected,
	StatusPlaced,
}

// Stage is the kanban column a qualified candidate occupies.
type Stage string

const (
	StageNewSubmissions Stage = "new_submissions"
	StageUnderReview    Stage = "under_review"
	StageQualified      Stage = "qualified"
	StageOutreachSent   Stage = "outreach_sent"
	StageInConversation Stage = "in_conversation"
	StagePlaced         Stage = "placed"
)

// Stages lists every stage in board order.
var Stages = []Stage{
	StageNewSubmissions,
	StageUnderReview,
	StageQualified,
	StageOutreachSent,
	StageInConversation,
	StagePlaced,
}

var stageTitles = map[Stage]string{
	StageNewSubmissions: "New Submissions",
	StageUnderReview:    "Under Review",
	StageQualified:      "Qualified",
	StageOutreachSent:   "Outreach Sent",
	StageInConversation: "In Conversation",
	StagePlaced:         "Placed",
}

// ParseStatus validates s against the status enum.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q: must be one of %s", s, joinStatuses())
}

// ParseStage validates s against the stage enum.
func ParseStage(s string) (Stage, error) {
	for _, st := range Stages {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid pipeline stage %q: must be one of %s", s, joinStages())
}

// Qualifying reports whether the status belongs to a candidate inside the pipeline.
func (s Status) Qualifying() bool {
	return s == StatusQualified || s == StatusContacted || s == StatusPlaced
}

func (s Status) String() string { return string(s) }

// Title is the column heading shown on the board.
func (s Stage) Title() string { return stageTitles[s] }

func (s Stage) String() string { return string(s) }

func joinStatuses() string {
	parts := make([]string, len(Statuses))
	for i, s := range Statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func joinStages() string {
	parts := make([]string, len(Stages))
	for i, s := range Stages {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
