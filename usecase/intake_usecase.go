package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"talent-pipeline/domain"
	"talent-pipeline/intake"
)

// RecordIntakeInput is one answer in the intake conversation. QuestionText
// defaults to the canonical text for QuestionKey when empty.
type RecordIntakeInput struct {
	CandidateID  string `json:"candidateId" validate:"required,uuid"`
	QuestionKey  string `json:"questionKey" validate:"required"`
	QuestionText string `json:"questionText"`
	Response     string `json:"response" validate:"notblank,max=10000"`
}

// RecordIntakeResponse appends the next answer of a qualified candidate's
// intake conversation. Answers must follow the fixed question order.
func (u *CandidateUsecase) RecordIntakeResponse(ctx context.Context, in RecordIntakeInput) (*domain.IntakeResponse, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	resp, err := u.repo.AppendIntakeResponse(ctx, in.CandidateID, func(c *domain.Candidate, answered []domain.IntakeResponse) (*domain.IntakeResponse, error) {
		if !c.Qualified {
			return nil, domain.Invalid("candidateId", "candidate is not in the pipeline")
		}
		q, err := intake.Expect(len(answered), in.QuestionKey)
		if err != nil {
			return nil, intakeError(err)
		}
		text := in.QuestionText
		if text == "" {
			text = q.Text
		}
		return &domain.IntakeResponse{
			CandidateID:  c.ID,
			Position:     len(answered),
			QuestionKey:  q.Key,
			QuestionText: text,
			Response:     in.Response,
			CreatedAt:    u.now(),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Debug("intake response recorded",
		zap.String("candidate_id", resp.CandidateID),
		zap.String("question", resp.QuestionKey),
		zap.Int("position", resp.Position),
	)
	u.publish(ctx, domain.Event{Type: domain.EventIntakeRecorded, CandidateID: resp.CandidateID, To: resp.QuestionKey})

	if resp.Position == len(intake.Questions())-1 {
		u.log.Info("intake completed", zap.String("candidate_id", resp.CandidateID))
		u.publish(ctx, domain.Event{Type: domain.EventIntakeCompleted, CandidateID: resp.CandidateID})
	}
	return resp, nil
}

// ListIntakeResponses returns a candidate's answers oldest first.
func (u *CandidateUsecase) ListIntakeResponses(ctx context.Context, candidateID string) ([]domain.IntakeResponse, error) {
	if err := validateID("candidateId", candidateID); err != nil {
		return nil, err
	}
	return u.repo.ListIntakeResponses(ctx, candidateID)
}

// Conversation is the transcript plus where the candidate stands.
type Conversation struct {
	intake.Progress
	Responses []domain.IntakeResponse `json:"responses"`
}

// Conversation returns the transcript and progress for a candidate.
func (u *CandidateUsecase) Conversation(ctx context.Context, candidateID string) (*Conversation, error) {
	c, err := u.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	responses, err := u.repo.ListIntakeResponses(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(responses))
	for i, r := range responses {
		keys[i] = r.QuestionKey
	}
	return &Conversation{Progress: intake.ProgressFor(c.First(), keys), Responses: responses}, nil
}

func intakeError(err error) error {
	switch {
	case errors.Is(err, intake.ErrUnknownQuestion), errors.Is(err, intake.ErrOutOfOrder), errors.Is(err, intake.ErrComplete):
		return domain.Invalid("questionKey", err.Error())
	default:
		return err
	}
}
