package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"talent-pipeline/pipeline"
	"talent-pipeline/screening"
)

// Candidate is a person who submitted a resume through intake.
type Candidate struct {
	ID              string                                 `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email           string                                 `gorm:"size:255;not null;index" json:"email"`
	FirstName       *string                                `gorm:"size:255" json:"firstName"`
	LastName        *string                                `gorm:"size:255" json:"lastName"`
	ResumeText      string                                 `gorm:"type:text;not null" json:"resumeText"`
	ResumeFileName  *string                                `gorm:"size:255" json:"resumeFileName"`
	AIScore         int                                    `gorm:"column:ai_score;not null" json:"aiScore"`
	AIAnalysis      datatypes.JSONType[screening.Analysis] `gorm:"column:ai_analysis" json:"aiAnalysis"`
	Qualified       bool                                   `gorm:"not null" json:"qualified"`
	Status          pipeline.Status                        `gorm:"type:varchar(32);not null;index" json:"status"`
	PipelineStage   *pipeline.Stage                        `gorm:"type:varchar(32);index" json:"pipelineStage"`
	CreatedAt       time.Time                              `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time                              `json:"updatedAt"`
	IntakeResponses []IntakeResponse                       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Candidate) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// State returns the part of the record governed by the pipeline state machine.
func (c *Candidate) State() pipeline.State {
	return pipeline.State{Qualified: c.Qualified, Status: c.Status, Stage: c.PipelineStage}
}

// SetState copies a state machine result onto the record.
func (c *Candidate) SetState(s pipeline.State) {
	c.Qualified = s.Qualified
	c.Status = s.Status
	c.PipelineStage = s.Stage
}

// SetScreening replaces score, analysis and verdict with a fresh result.
func (c *Candidate) SetScreening(r screening.Result) {
	c.AIScore = r.Score
	c.AIAnalysis = datatypes.NewJSONType(r.Analysis)
	c.Qualified = r.Qualified
}

// Analysis returns the stored screening analysis.
func (c *Candidate) Analysis() screening.Analysis {
	return c.AIAnalysis.Data()
}

// First returns the first name or an empty string.
func (c *Candidate) First() string {
	if c.FirstName == nil {
		return ""
	}
	return *c.FirstName
}
