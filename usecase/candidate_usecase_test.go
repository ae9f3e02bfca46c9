package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"talent-pipeline/config"
	"talent-pipeline/domain"
	"talent-pipeline/infrastructure"
	"talent-pipeline/intake"
	"talent-pipeline/pipeline"
)

const (
	qualifiedResume = "Operating Partner at a mid-market fund. 3 years of experience."
	rejectedResume  = "Software engineer building web services in Go and Python."
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fixture struct {
	uc     *CandidateUsecase
	events *recordingPublisher
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := infrastructure.NewDatabase(config.Database{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
	}, zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	f := &fixture{events: &recordingPublisher{}, now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	clock := func() time.Time {
		f.now = f.now.Add(time.Second)
		return f.now
	}
	f.uc = NewCandidateUsecase(infrastructure.NewCandidateRepository(db), f.events, zap.NewNop(), WithClock(clock))
	return f
}

func (f *fixture) create(t *testing.T, email, resume string) *domain.Candidate {
	t.Helper()
	c, err := f.uc.CreateCandidate(context.Background(), CreateCandidateInput{Email: email, ResumeText: resume})
	require.NoError(t, err)
	return c
}

func fieldErrors(t *testing.T, err error) domain.ValidationErrors {
	t.Helper()
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected validation error, got %v", err)
	return verrs
}

func TestCreateCandidateQualified(t *testing.T) {
	f := newFixture(t)
	first := "Ana"
	c, err := f.uc.CreateCandidate(context.Background(), CreateCandidateInput{
		Email:      " ana@example.com ",
		FirstName:  &first,
		LastName:   new(string),
		ResumeText: qualifiedResume,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "ana@example.com", c.Email)
	assert.Nil(t, c.LastName)
	assert.True(t, c.Qualified)
	assert.Equal(t, pipeline.StatusQualified, c.Status)
	require.NotNil(t, c.PipelineStage)
	assert.Equal(t, pipeline.StageNewSubmissions, *c.PipelineStage)
	assert.Equal(t, 60, c.AIScore)
	assert.Equal(t, 9, c.Analysis().PEExposure)

	stored, err := f.uc.GetCandidate(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.AIScore, stored.AIScore)
	assert.Equal(t, c.Analysis(), stored.Analysis())
	assert.Equal(t, []domain.EventType{domain.EventCandidateCreated}, f.events.types())
}

func TestCreateCandidateRejected(t *testing.T) {
	f := newFixture(t)
	c := f.create(t, "dev@example.com", rejectedResume)

	assert.False(t, c.Qualified)
	assert.Equal(t, pipeline.StatusRejected, c.Status)
	assert.Nil(t, c.PipelineStage)
	assert.LessOrEqual(t, c.AIScore, 45)
}

func TestCreateCandidateValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateCandidate(context.Background(), CreateCandidateInput{Email: "not-an-email", ResumeText: "  "})
	verrs := fieldErrors(t, err)

	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "is required", fields["resumeText"])

	n, err := f.uc.repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetCandidateErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.GetCandidate(context.Background(), "nope")
	assert.Equal(t, "id", fieldErrors(t, err)[0].Field)

	_, err = f.uc.GetCandidate(context.Background(), "6f1c1f8e-4d0a-4c55-9d43-0f3b7f0f2a11")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCandidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "alpha@example.com", qualifiedResume)
	b := f.create(t, "bravo@example.com", rejectedResume)
	c := f.create(t, "charlie@example.com", qualifiedResume)
	_, err := f.uc.UpdateStage(ctx, c.ID, "under_review")
	require.NoError(t, err)

	all, err := f.uc.ListCandidates(ctx, ListCandidatesInput{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{c.ID, b.ID, a.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	byStage, err := f.uc.ListCandidates(ctx, ListCandidatesInput{Stage: "new_submissions"})
	require.NoError(t, err)
	require.Len(t, byStage, 1)
	assert.Equal(t, a.ID, byStage[0].ID)

	found, err := f.uc.ListCandidates(ctx, ListCandidatesInput{Query: "BRAVO"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, b.ID, found[0].ID)

	_, err = f.uc.ListCandidates(ctx, ListCandidatesInput{Stage: "limbo"})
	assert.Equal(t, "stage", fieldErrors(t, err)[0].Field)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, "ana@example.com", qualifiedResume)

	updated, err := f.uc.UpdateStatus(ctx, c.ID, "contacted")
	require.NoError(t, err)
	assert.Equal(t, pipeline.StatusContacted, updated.Status)
	assert.True(t, updated.Qualified)
	require.NotNil(t, updated.PipelineStage)
	assert.Equal(t, pipeline.StageNewSubmissions, *updated.PipelineStage)

	updated, err = f.uc.UpdateStatus(ctx, c.ID, "rejected")
	require.NoError(t, err)
	assert.False(t, updated.Qualified)
	assert.Nil(t, updated.PipelineStage)

	stored, err := f.uc.GetCandidate(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, pipeline.StatusRejected, stored.Status)
	assert.Nil(t, stored.PipelineStage)
	assert.True(t, stored.State().Valid())

	last := f.events.events[len(f.events.events)-1]
	assert.Equal(t, domain.EventStatusChanged, last.Type)
	assert.Equal(t, "contacted", last.From)
	assert.Equal(t, "rejected", last.To)
}

func TestUpdateStatusErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, "ana@example.com", qualifiedResume)

	_, err := f.uc.UpdateStatus(ctx, c.ID, "hired")
	assert.Equal(t, "status", fieldErrors(t, err)[0].Field)

	_, err = f.uc.UpdateStatus(ctx, "6f1c1f8e-4d0a-4c55-9d43-0f3b7f0f2a11", "reviewing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.UpdateStatus(ctx, c.ID, "placed")
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, c.ID, "rejected")
	verrs := fieldErrors(t, err)
	assert.Equal(t, "status", verrs[0].Field)

	stored, err := f.uc.GetCandidate(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, pipeline.StatusPlaced, stored.Status)
}

func TestUpdateStage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, "ana@example.com", qualifiedResume)

	for _, s := range pipeline.Stages {
		t.Run(string(s), func(t *testing.T) {
			updated, err := f.uc.UpdateStage(ctx, c.ID, string(s))
			require.NoError(t, err)
			require.NotNil(t, updated.PipelineStage)
			assert.Equal(t, s, *updated.PipelineStage)
			assert.Equal(t, pipeline.StatusQualified, updated.Status)

			stored, err := f.uc.GetCandidate(ctx, c.ID)
			require.NoError(t, err)
			require.NotNil(t, stored.PipelineStage)
			assert.Equal(t, s, *stored.PipelineStage)
			assert.True(t, stored.Qualified)
		})
	}

	_, err := f.uc.UpdateStage(ctx, c.ID, "archived")
	assert.Equal(t, "pipelineStage", fieldErrors(t, err)[0].Field)
}

func TestUpdateStageRejectedCandidate(t *testing.T) {
	f := newFixture(t)
	c := f.create(t, "dev@example.com", rejectedResume)

	_, err := f.uc.UpdateStage(context.Background(), c.ID, "under_review")
	assert.Equal(t, "pipelineStage", fieldErrors(t, err)[0].Field)

	stored, err := f.uc.GetCandidate(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.PipelineStage)
}

func TestRescreen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, "ana@example.com", qualifiedResume)
	_, err := f.uc.UpdateStage(ctx, c.ID, "in_conversation")
	require.NoError(t, err)

	// Same verdict keeps the recruiter's placement.
	again, err := f.uc.Rescreen(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, pipeline.StatusQualified, again.Status)
	require.NotNil(t, again.PipelineStage)
	assert.Equal(t, pipeline.StageInConversation, *again.PipelineStage)

	// A recruiter rejection disagrees with the verdict, so rescreen resets it.
	_, err = f.uc.UpdateStatus(ctx, c.ID, "rejected")
	require.NoError(t, err)
	reset, err := f.uc.Rescreen(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, reset.Qualified)
	assert.Equal(t, pipeline.StatusQualified, reset.Status)
	require.NotNil(t, reset.PipelineStage)
	assert.Equal(t, pipeline.StageNewSubmissions, *reset.PipelineStage)
	assert.Contains(t, f.events.types(), domain.EventCandidateRescreened)
}

func TestStatsAndBoard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "alpha@example.com", qualifiedResume)
	f.create(t, "bravo@example.com", rejectedResume)
	c := f.create(t, "charlie@example.com", qualifiedResume)
	_, err := f.uc.UpdateStage(ctx, c.ID, "outreach_sent")
	require.NoError(t, err)

	stats, err := f.uc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 2, stats.Qualified)
	assert.EqualValues(t, 2, stats.InPipeline)
	assert.Equal(t, 40, stats.AvgScore)

	board, err := f.uc.Board(ctx)
	require.NoError(t, err)
	require.Len(t, board, len(pipeline.Stages))
	assert.Equal(t, pipeline.StageNewSubmissions, board[0].Stage)
	assert.Equal(t, "New Submissions", board[0].Title)
	require.Len(t, board[0].Candidates, 1)
	assert.Equal(t, a.ID, board[0].Candidates[0].ID)
	require.Len(t, board[3].Candidates, 1)
	assert.Equal(t, c.ID, board[3].Candidates[0].ID)
	assert.Empty(t, board[5].Candidates)
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("broker down")

	c, err := f.uc.CreateCandidate(context.Background(), CreateCandidateInput{Email: "ana@example.com", ResumeText: qualifiedResume})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
}

func TestSeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.uc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(samples), n)

	n, err = f.uc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := f.uc.ListCandidates(ctx, ListCandidatesInput{})
	require.NoError(t, err)
	require.Len(t, all, len(samples))
	for _, c := range all {
		assert.True(t, c.State().Valid(), c.Email)
	}

	found, err := f.uc.ListCandidates(ctx, ListCandidatesInput{Query: "sarah.chen"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	conv, err := f.uc.Conversation(ctx, found[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 5, conv.Answered)
	assert.Equal(t, intake.Questions()[5].Key, conv.Next.Key)
}
