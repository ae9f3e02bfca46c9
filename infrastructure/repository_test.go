package infrastructure

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"talent-pipeline/config"
	"talent-pipeline/domain"
	"talent-pipeline/pipeline"
	"talent-pipeline/screening"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDatabase(config.Database{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "repo.db"),
		MaxOpenConns: 1,
	}, zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func newCandidate(email string, qualified bool, score int, createdAt time.Time) *domain.Candidate {
	c := &domain.Candidate{Email: email, ResumeText: "resume", CreatedAt: createdAt, UpdatedAt: createdAt}
	c.SetScreening(screening.Result{Qualified: qualified, Score: score, Analysis: screening.Analysis{
		PEExposure: 5,
		Strengths:  []string{},
		Concerns:   []string{},
		Reasons:    []string{"reason"},
	}})
	c.SetState(pipeline.Initial(qualified))
	return c
}

func TestRepositoryCreateAndGet(t *testing.T) {
	repo := NewCandidateRepository(openTestDB(t))
	ctx := context.Background()

	c := newCandidate("ana@example.com", true, 72, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, c))
	require.Len(t, c.ID, 36)

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, 72, got.AIScore)
	assert.Equal(t, []string{"reason"}, got.Analysis().Reasons)
	assert.Equal(t, pipeline.StatusQualified, got.Status)
	require.NotNil(t, got.PipelineStage)
	assert.Equal(t, pipeline.StageNewSubmissions, *got.PipelineStage)

	_, err = repo.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepositoryListFilters(t *testing.T) {
	repo := NewCandidateRepository(openTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first := "Grace"
	a := newCandidate("grace@example.com", true, 60, base)
	a.FirstName = &first
	b := newCandidate("bob@example.com", false, 10, base.Add(time.Hour))
	c := newCandidate("carol@example.com", true, 80, base.Add(2*time.Hour))
	for _, x := range []*domain.Candidate{a, b, c} {
		require.NoError(t, repo.Create(ctx, x))
	}

	all, err := repo.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, c.ID, all[0].ID)
	assert.Equal(t, a.ID, all[2].ID)

	stage := pipeline.StageNewSubmissions
	staged, err := repo.List(ctx, domain.ListFilter{Stage: &stage})
	require.NoError(t, err)
	assert.Len(t, staged, 2)

	byName, err := repo.List(ctx, domain.ListFilter{Query: "grac"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, a.ID, byName[0].ID)

	none, err := repo.List(ctx, domain.ListFilter{Query: "zed"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRepositoryStats(t *testing.T) {
	repo := NewCandidateRepository(openTestDB(t))
	ctx := context.Background()

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{}, stats)

	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, newCandidate("a@example.com", true, 61, now)))
	require.NoError(t, repo.Create(ctx, newCandidate("b@example.com", false, 20, now)))

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Total: 2, Qualified: 1, InPipeline: 1, AvgScore: 41}, stats)
}

func TestRepositoryUpdateWritesOnlyNamedColumns(t *testing.T) {
	repo := NewCandidateRepository(openTestDB(t))
	ctx := context.Background()
	c := newCandidate("ana@example.com", true, 60, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, c))

	updated, err := repo.Update(ctx, c.ID, func(c *domain.Candidate) error {
		c.Status = pipeline.StatusRejected
		c.Qualified = false
		c.PipelineStage = nil
		c.Email = "ignored@example.com"
		return nil
	}, "status", "qualified", "pipeline_stage")
	require.NoError(t, err)
	assert.Nil(t, updated.PipelineStage)

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, pipeline.StatusRejected, got.Status)
	assert.False(t, got.Qualified)
	assert.Nil(t, got.PipelineStage)
	assert.Equal(t, "ana@example.com", got.Email)

	_, err = repo.Update(ctx, "00000000-0000-0000-0000-000000000000", func(*domain.Candidate) error { return nil }, "status")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepositoryUpdateRefreshesUpdatedAt(t *testing.T) {
	repo := NewCandidateRepository(openTestDB(t))
	ctx := context.Background()
	created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newCandidate("ana@example.com", true, 60, created)
	require.NoError(t, repo.Create(ctx, c))

	_, err := repo.Update(ctx, c.ID, func(c *domain.Candidate) error {
		stage := pipeline.StagePlaced
		c.PipelineStage = &stage
		return nil
	}, "pipeline_stage")
	require.NoError(t, err)

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.UpdatedAt.After(created), "updated_at %s not refreshed", got.UpdatedAt)
}

func TestRepositoryListEscapesWildcards(t *testing.T) {
	repo := NewCandidateRepository(openTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	under := newCandidate("a_b@example.com", true, 60, base)
	plain := newCandidate("axb@example.com", true, 60, base.Add(time.Hour))
	bang := newCandidate("hi!there@example.com", true, 60, base.Add(2*time.Hour))
	for _, x := range []*domain.Candidate{under, plain, bang} {
		require.NoError(t, repo.Create(ctx, x))
	}

	tests := []struct {
		query string
		want  []string
	}{
		{query: "%", want: []string{}},
		{query: "_", want: []string{under.ID}},
		{query: "a_b", want: []string{under.ID}},
		{query: "!", want: []string{bang.ID}},
		{query: "example", want: []string{bang.ID, plain.ID, under.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := repo.List(ctx, domain.ListFilter{Query: tt.query})
			require.NoError(t, err)
			ids := []string{}
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestRepositoryUpdateAbortsOnError(t *testing.T) {
	repo := NewCandidateRepository(openTestDB(t))
	ctx := context.Background()
	c := newCandidate("ana@example.com", true, 60, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, c))

	boom := domain.Invalid("status", "nope")
	_, err := repo.Update(ctx, c.ID, func(c *domain.Candidate) error {
		c.Status = pipeline.StatusPlaced
		return boom
	}, "status")
	assert.Equal(t, boom, err)

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, pipeline.StatusQualified, got.Status)
}

func TestRepositoryIntakeResponses(t *testing.T) {
	db := openTestDB(t)
	repo := NewCandidateRepository(db)
	ctx := context.Background()
	c := newCandidate("ana@example.com", true, 60, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, c))

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, key := range []string{"current_situation", "pe_exposure"} {
		resp, err := repo.AppendIntakeResponse(ctx, c.ID, func(got *domain.Candidate, answered []domain.IntakeResponse) (*domain.IntakeResponse, error) {
			assert.Equal(t, c.ID, got.ID)
			assert.Len(t, answered, i)
			return &domain.IntakeResponse{
				Position:     len(answered),
				QuestionKey:  key,
				QuestionText: "q",
				Response:     "a",
				CreatedAt:    base.Add(time.Duration(i) * time.Minute),
			}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, c.ID, resp.CandidateID)
		assert.Len(t, resp.ID, 36)
	}

	responses, err := repo.ListIntakeResponses(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, "current_situation", responses[0].QuestionKey)
	assert.Equal(t, "pe_exposure", responses[1].QuestionKey)

	// A second answer for an occupied position violates the unique index.
	_, err = repo.AppendIntakeResponse(ctx, c.ID, func(*domain.Candidate, []domain.IntakeResponse) (*domain.IntakeResponse, error) {
		return &domain.IntakeResponse{Position: 1, QuestionKey: "pe_exposure", QuestionText: "q", Response: "dup"}, nil
	})
	assert.Error(t, err)

	_, err = repo.ListIntakeResponses(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, db.Delete(&domain.Candidate{}, "id = ?", c.ID).Error)
	var left int64
	require.NoError(t, db.Model(&domain.IntakeResponse{}).Where("candidate_id = ?", c.ID).Count(&left).Error)
	assert.Zero(t, left)
}

func TestOpenDialector(t *testing.T) {
	_, err := openDialector("oracle", "")
	assert.Error(t, err)

	for _, driver := range []string{"mysql", "postgres", "sqlite", ""} {
		d, err := openDialector(driver, "")
		require.NoError(t, err, driver)
		assert.NotNil(t, d)
	}
}

func TestWithParam(t *testing.T) {
	assert.Equal(t, "app.db?_pragma=foreign_keys(1)", withParam("app.db", "_pragma=foreign_keys(1)"))
	assert.Equal(t, "u@/db?charset=utf8&parseTime=true", withParam("u@/db?charset=utf8", "parseTime=true"))
	assert.Equal(t, "u@/db?parseTime=false", withParam("u@/db?parseTime=false", "parseTime=true"))
}
