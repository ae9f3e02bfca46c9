package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"talent-pipeline/domain"
	"talent-pipeline/pipeline"
	"talent-pipeline/screening"
)

// CandidateUsecase screens new candidates and applies recruiter actions.
type CandidateUsecase struct {
	repo   domain.CandidateRepository
	events domain.EventPublisher
	engine *screening.Engine
	log    *zap.Logger
	now    func() time.Time
}

type Option func(*CandidateUsecase)

// WithClock overrides the time source used for timestamps and events.
func WithClock(now func() time.Time) Option {
	return func(u *CandidateUsecase) { u.now = now }
}

// WithEngine overrides the screening engine.
func WithEngine(e *screening.Engine) Option {
	return func(u *CandidateUsecase) { u.engine = e }
}

func NewCandidateUsecase(repo domain.CandidateRepository, events domain.EventPublisher, log *zap.Logger, opts ...Option) *CandidateUsecase {
	u := &CandidateUsecase{
		repo:   repo,
		events: events,
		engine: screening.NewEngine(screening.DefaultRules()),
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.log == nil {
		u.log = zap.NewNop()
	}
	return u
}

// CreateCandidateInput is the intake submission.
type CreateCandidateInput struct {
	Email          string  `json:"email" validate:"required,email,max=255"`
	FirstName      *string `json:"firstName" validate:"omitempty,max=255"`
	LastName       *string `json:"lastName" validate:"omitempty,max=255"`
	ResumeText     string  `json:"resumeText" validate:"notblank"`
	ResumeFileName *string `json:"resumeFileName" validate:"omitempty,max=255"`
}

// ListCandidatesInput filters the candidate list.
type ListCandidatesInput struct {
	Stage string
	Query string
}

// BoardColumn is one kanban column with its candidates.
type BoardColumn struct {
	Stage      pipeline.Stage     `json:"stage"`
	Title      string             `json:"title"`
	Candidates []domain.Candidate `json:"candidates"`
}

// CreateCandidate screens the resume and stores the candidate with the
// initial status and stage derived from the verdict.
func (u *CandidateUsecase) CreateCandidate(ctx context.Context, in CreateCandidateInput) (*domain.Candidate, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = optional(in.FirstName)
	in.LastName = optional(in.LastName)
	in.ResumeFileName = optional(in.ResumeFileName)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	result := u.engine.Screen(in.ResumeText)
	now := u.now()

	c := &domain.Candidate{
		Email:          in.Email,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		ResumeText:     in.ResumeText,
		ResumeFileName: in.ResumeFileName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	c.SetScreening(result)
	c.SetState(pipeline.Initial(result.Qualified))

	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	u.log.Info("candidate screened",
		zap.String("candidate_id", c.ID),
		zap.Bool("qualified", c.Qualified),
		zap.Int("score", c.AIScore),
		zap.Strings("reasons", result.Analysis.Reasons),
	)
	u.publish(ctx, domain.Event{Type: domain.EventCandidateCreated, CandidateID: c.ID, To: string(c.Status)})
	return c, nil
}

// GetCandidate returns one candidate.
func (u *CandidateUsecase) GetCandidate(ctx context.Context, id string) (*domain.Candidate, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	return u.repo.Get(ctx, id)
}

// ListCandidates returns candidates newest first, optionally narrowed to a
// stage or a name/email search term.
func (u *CandidateUsecase) ListCandidates(ctx context.Context, in ListCandidatesInput) ([]domain.Candidate, error) {
	f := domain.ListFilter{Query: in.Query}
	if in.Stage != "" {
		stage, err := pipeline.ParseStage(in.Stage)
		if err != nil {
			return nil, domain.Invalid("stage", err.Error())
		}
		f.Stage = &stage
	}
	return u.repo.List(ctx, f)
}

// UpdateStatus moves a candidate to status.
func (u *CandidateUsecase) UpdateStatus(ctx context.Context, id, status string) (*domain.Candidate, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	to, err := pipeline.ParseStatus(status)
	if err != nil {
		return nil, domain.Invalid("status", err.Error())
	}

	var from pipeline.Status
	c, err := u.repo.Update(ctx, id, func(c *domain.Candidate) error {
		from = c.Status
		next, err := c.State().WithStatus(to)
		if err != nil {
			return transitionError(err)
		}
		c.SetState(next)
		return nil
	}, "status", "qualified", "pipeline_stage")
	if err != nil {
		return nil, err
	}

	u.log.Info("candidate status changed",
		zap.String("candidate_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	u.publish(ctx, domain.Event{Type: domain.EventStatusChanged, CandidateID: id, From: string(from), To: string(to)})
	return c, nil
}

// UpdateStage moves a qualified candidate to another pipeline stage.
func (u *CandidateUsecase) UpdateStage(ctx context.Context, id, stage string) (*domain.Candidate, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	to, err := pipeline.ParseStage(stage)
	if err != nil {
		return nil, domain.Invalid("pipelineStage", err.Error())
	}

	var from string
	c, err := u.repo.Update(ctx, id, func(c *domain.Candidate) error {
		if c.PipelineStage != nil {
			from = string(*c.PipelineStage)
		}
		next, err := c.State().WithStage(to)
		if err != nil {
			return transitionError(err)
		}
		c.SetState(next)
		return nil
	}, "pipeline_stage")
	if err != nil {
		return nil, err
	}

	u.log.Info("candidate stage changed",
		zap.String("candidate_id", id),
		zap.String("from", from),
		zap.String("to", string(to)),
	)
	u.publish(ctx, domain.Event{Type: domain.EventStageChanged, CandidateID: id, From: from, To: string(to)})
	return c, nil
}

// Rescreen recomputes the screening result from the stored resume. When the
// verdict no longer matches the candidate's pipeline membership, status and
// stage are reset to the initial state for the new verdict.
func (u *CandidateUsecase) Rescreen(ctx context.Context, id string) (*domain.Candidate, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}

	var before, after bool
	c, err := u.repo.Update(ctx, id, func(c *domain.Candidate) error {
		before = c.Qualified
		result := u.engine.Screen(c.ResumeText)
		after = result.Qualified
		c.SetScreening(result)
		if before != after {
			c.SetState(pipeline.Initial(after))
		}
		return nil
	}, "ai_score", "ai_analysis", "qualified", "status", "pipeline_stage")
	if err != nil {
		return nil, err
	}

	u.log.Info("candidate rescreened",
		zap.String("candidate_id", id),
		zap.Bool("was_qualified", before),
		zap.Bool("qualified", after),
		zap.Int("score", c.AIScore),
	)
	u.publish(ctx, domain.Event{Type: domain.EventCandidateRescreened, CandidateID: id, To: string(c.Status)})
	return c, nil
}

// Stats summarises all candidates.
func (u *CandidateUsecase) Stats(ctx context.Context) (domain.Stats, error) {
	return u.repo.Stats(ctx)
}

// Board groups qualified candidates into the pipeline columns, newest first.
func (u *CandidateUsecase) Board(ctx context.Context) ([]BoardColumn, error) {
	all, err := u.repo.List(ctx, domain.ListFilter{})
	if err != nil {
		return nil, err
	}

	cols := make([]BoardColumn, len(pipeline.Stages))
	index := make(map[pipeline.Stage]int, len(pipeline.Stages))
	for i, s := range pipeline.Stages {
		cols[i] = BoardColumn{Stage: s, Title: s.Title(), Candidates: []domain.Candidate{}}
		index[s] = i
	}
	for _, c := range all {
		if !c.Qualified || c.PipelineStage == nil {
			continue
		}
		i, ok := index[*c.PipelineStage]
		if !ok {
			continue
		}
		cols[i].Candidates = append(cols[i].Candidates, c)
	}
	return cols, nil
}

func (u *CandidateUsecase) publish(ctx context.Context, e domain.Event) {
	if u.events == nil {
		return
	}
	e.OccurredAt = u.now()
	if err := u.events.Publish(ctx, e); err != nil {
		u.log.Warn("publishing event failed",
			zap.String("type", string(e.Type)),
			zap.String("candidate_id", e.CandidateID),
			zap.Error(err),
		)
	}
}

func transitionError(err error) error {
	switch {
	case errors.Is(err, pipeline.ErrTerminalStatus):
		return domain.Invalid("status", err.Error())
	case errors.Is(err, pipeline.ErrNotInPipeline):
		return domain.Invalid("pipelineStage", err.Error())
	default:
		return err
	}
}

func validateID(field, id string) error {
	if err := validate.Var(id, "required,uuid"); err != nil {
		return domain.Invalid(field, "must be a valid UUID")
	}
	return nil
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
