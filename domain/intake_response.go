package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IntakeResponse is one answer in a candidate's intake conversation.
// Position is the index of the question in the fixed set.
type IntakeResponse struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CandidateID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_intake_candidate_position" json:"candidateId"`
	Position     int       `gorm:"not null;uniqueIndex:idx_intake_candidate_position" json:"position"`
	QuestionKey  string    `gorm:"size:64;not null" json:"questionKey"`
	QuestionText string    `gorm:"type:text;not null" json:"questionText"`
	Response     string    `gorm:"type:text;not null" json:"response"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r *IntakeResponse) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
