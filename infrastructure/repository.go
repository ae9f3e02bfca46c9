package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"talent-pipeline/domain"
	"talent-pipeline/pipeline"
)

type candidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository returns a gorm-backed candidate repository.
func NewCandidateRepository(db *gorm.DB) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("creating candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) Get(ctx context.Context, id string) (*domain.Candidate, error) {
	return getCandidate(r.db.WithContext(ctx), id)
}

func getCandidate(db *gorm.DB, id string) (*domain.Candidate, error) {
	var c domain.Candidate
	if err := db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("loading candidate %s: %w", id, err)
	}
	return &c, nil
}

func (r *candidateRepository) List(ctx context.Context, f domain.ListFilter) ([]domain.Candidate, error) {
	q := r.db.WithContext(ctx).Model(&domain.Candidate{})
	if f.Stage != nil {
		q = q.Where("pipeline_stage = ?", string(*f.Stage))
	}
	if term := strings.ToLower(strings.TrimSpace(f.Query)); term != "" {
		like := containsPattern(term)
		q = q.Where("LOWER(first_name) LIKE ? ESCAPE '!' OR LOWER(last_name) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!'", like, like, like)
	}

	candidates := []domain.Candidate{}
	if err := q.Order("created_at DESC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("listing candidates: %w", err)
	}
	return candidates, nil
}

// likeEscaper escapes LIKE wildcards with '!', which all three dialects read
// the same way in an ESCAPE clause.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func (r *candidateRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Candidate{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting candidates: %w", err)
	}
	return n, nil
}

func (r *candidateRepository) Stats(ctx context.Context) (domain.Stats, error) {
	var row struct {
		Total      int64
		Qualified  int64
		InPipeline int64
		ScoreSum   int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Candidate{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN qualified THEN 1 ELSE 0 END), 0) AS qualified,
			COALESCE(SUM(CASE WHEN status NOT IN (?, ?) THEN 1 ELSE 0 END), 0) AS in_pipeline,
			COALESCE(SUM(ai_score), 0) AS score_sum`,
			string(pipeline.StatusRejected), string(pipeline.StatusPlaced)).
		Scan(&row).Error
	if err != nil {
		return domain.Stats{}, fmt.Errorf("computing stats: %w", err)
	}

	stats := domain.Stats{Total: row.Total, Qualified: row.Qualified, InPipeline: row.InPipeline}
	if row.Total > 0 {
		stats.AvgScore = int(math.Round(float64(row.ScoreSum) / float64(row.Total)))
	}
	return stats, nil
}

func (r *candidateRepository) Update(ctx context.Context, id string, fn func(c *domain.Candidate) error, columns ...string) (*domain.Candidate, error) {
	var out *domain.Candidate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := getCandidate(tx, id)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}

		cols := append([]string{"updated_at"}, columns...)
		if err := tx.Model(c).Select(cols).Updates(c).Error; err != nil {
			return fmt.Errorf("updating candidate %s: %w", id, err)
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *candidateRepository) AppendIntakeResponse(ctx context.Context, candidateID string, next func(c *domain.Candidate, answered []domain.IntakeResponse) (*domain.IntakeResponse, error)) (*domain.IntakeResponse, error) {
	var out *domain.IntakeResponse
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := getCandidate(tx, candidateID)
		if err != nil {
			return err
		}
		answered, err := listIntakeResponses(tx, candidateID)
		if err != nil {
			return err
		}

		resp, err := next(c, answered)
		if err != nil {
			return err
		}
		resp.CandidateID = candidateID
		if err := tx.Create(resp).Error; err != nil {
			return fmt.Errorf("saving intake response: %w", err)
		}
		out = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *candidateRepository) ListIntakeResponses(ctx context.Context, candidateID string) ([]domain.IntakeResponse, error) {
	db := r.db.WithContext(ctx)
	if _, err := getCandidate(db, candidateID); err != nil {
		return nil, err
	}
	return listIntakeResponses(db, candidateID)
}

func listIntakeResponses(db *gorm.DB, candidateID string) ([]domain.IntakeResponse, error) {
	responses := []domain.IntakeResponse{}
	err := db.Where("candidate_id = ?", candidateID).
		Order("created_at ASC").
		Order("position ASC").
		Find(&responses).Error
	if err != nil {
		return nil, fmt.Errorf("listing intake responses: %w", err)
	}
	return responses, nil
}
