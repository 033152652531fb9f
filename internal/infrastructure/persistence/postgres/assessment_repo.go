package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/agricredit/internal/domain/model"
	"github.com/bibbank/agricredit/internal/domain/port"
	"github.com/bibbank/agricredit/internal/domain/valueobject"
	pgpkg "github.com/bibbank/agricredit/pkg/postgres"
)

var _ port.AssessmentRepository = (*AssessmentRepo)(nil)

// AssessmentRepo implements port.AssessmentRepository on PostgreSQL.
type AssessmentRepo struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepo creates a new PostgreSQL-backed assessment repository.
func NewAssessmentRepo(pool *pgxpool.Pool) *AssessmentRepo {
	return &AssessmentRepo{pool: pool}
}

const selectAssessment = `
	SELECT id, farmer_id, score, risk_level, eligible,
	       max_amount, interest_rate, emi, recommended_period,
	       explanation, recommendations, farmer_data,
	       version, created_at
	FROM assessments
`

// Save persists an assessment and its ranked factors in one transaction.
// Assessments are immutable; saving an existing ID is a no-op.
func (r *AssessmentRepo) Save(ctx context.Context, a model.Assessment) error {
	cs := a.CreditScore()

	explanation, err := json.Marshal(nonNil(cs.Explanation))
	if err != nil {
		return fmt.Errorf("marshal explanation: %w", err)
	}
	recommendations, err := json.Marshal(nonNil(cs.Recommendations))
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	farmerData, err := json.Marshal(a.FarmerData())
	if err != nil {
		return fmt.Errorf("marshal farmer data: %w", err)
	}

	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		le := cs.LoanEligibility
		tag, err := tx.Exec(ctx, `
			INSERT INTO assessments (
				id, farmer_id, farmer_name, score, risk_level, eligible,
				max_amount, interest_rate, emi, recommended_period,
				explanation, recommendations, farmer_data,
				version, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
			ON CONFLICT (id) DO NOTHING`,
			a.ID(), a.FarmerID(), a.FarmerName(), cs.Score, cs.RiskLevel.String(), le.Eligible,
			le.MaxAmount, le.InterestRate, le.EMI, le.RecommendedPeriod,
			explanation, recommendations, farmerData,
			a.Version(), a.CreatedAt(),
		)
		if err != nil {
			return fmt.Errorf("insert assessment: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		if len(cs.Factors) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for i, f := range cs.Factors {
			batch.Queue(`
				INSERT INTO assessment_factors (assessment_id, position, name, impact, value)
				VALUES ($1, $2, $3, $4, $5)`,
				a.ID(), i, f.Name, f.Impact, f.Value,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert factors: %w", err)
		}
		return nil
	})
}

// FindByID retrieves an assessment with its factors.
func (r *AssessmentRepo) FindByID(ctx context.Context, id string) (model.Assessment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.Assessment{}, port.ErrAssessmentNotFound
	}

	a, err := scanAssessment(r.pool.QueryRow(ctx, selectAssessment+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Assessment{}, port.ErrAssessmentNotFound
	}
	if err != nil {
		return model.Assessment{}, err
	}

	factors, err := r.loadFactors(ctx, r.pool, id)
	if err != nil {
		return model.Assessment{}, err
	}
	return withFactors(a, factors), nil
}

// FindByFarmerID lists a farmer's assessments newest first.
func (r *AssessmentRepo) FindByFarmerID(ctx context.Context, farmerID string, limit int) ([]model.Assessment, error) {
	query := selectAssessment + ` WHERE farmer_id = $1 ORDER BY created_at DESC`
	args := []any{farmerID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var found []model.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessments: %w", err)
	}

	out := make([]model.Assessment, 0, len(found))
	for _, a := range found {
		factors, err := r.loadFactors(ctx, r.pool, a.ID())
		if err != nil {
			return nil, err
		}
		out = append(out, withFactors(a, factors))
	}
	return out, nil
}

// Ping checks database connectivity.
func (r *AssessmentRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

func (r *AssessmentRepo) loadFactors(ctx context.Context, q pgpkg.Querier, assessmentID string) ([]model.ScoreFactor, error) {
	rows, err := q.Query(ctx, `
		SELECT name, impact, value
		FROM assessment_factors
		WHERE assessment_id = $1
		ORDER BY position`, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("query factors: %w", err)
	}
	defer rows.Close()

	factors := []model.ScoreFactor{}
	for rows.Next() {
		var f model.ScoreFactor
		if err := rows.Scan(&f.Name, &f.Impact, &f.Value); err != nil {
			return nil, fmt.Errorf("scan factor: %w", err)
		}
		factors = append(factors, f)
	}
	return factors, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanAssessment(s scannable) (model.Assessment, error) {
	var (
		id, farmerID, riskStr             string
		score, recommendedPeriod, version int
		eligible                          bool
		maxAmount, interestRate, emi      float64
		explanationRaw, recsRaw, dataRaw  []byte
		createdAt                         time.Time
	)

	err := s.Scan(
		&id, &farmerID, &score, &riskStr, &eligible,
		&maxAmount, &interestRate, &emi, &recommendedPeriod,
		&explanationRaw, &recsRaw, &dataRaw,
		&version, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Assessment{}, err
		}
		return model.Assessment{}, fmt.Errorf("scan assessment: %w", err)
	}

	risk, err := valueobject.NewRiskLevel(riskStr)
	if err != nil {
		return model.Assessment{}, fmt.Errorf("assessment %s: %w", id, err)
	}

	cs := model.CreditScore{
		Score:     score,
		RiskLevel: risk,
		LoanEligibility: model.LoanEligibility{
			Eligible:          eligible,
			MaxAmount:         maxAmount,
			InterestRate:      interestRate,
			EMI:               emi,
			RecommendedPeriod: recommendedPeriod,
		},
	}
	if err := json.Unmarshal(explanationRaw, &cs.Explanation); err != nil {
		return model.Assessment{}, fmt.Errorf("unmarshal explanation: %w", err)
	}
	if err := json.Unmarshal(recsRaw, &cs.Recommendations); err != nil {
		return model.Assessment{}, fmt.Errorf("unmarshal recommendations: %w", err)
	}

	var data model.FarmerData
	if err := json.Unmarshal(dataRaw, &data); err != nil {
		return model.Assessment{}, fmt.Errorf("unmarshal farmer data: %w", err)
	}

	return model.ReconstructAssessment(id, farmerID, data, cs, version, createdAt.UTC()), nil
}

func withFactors(a model.Assessment, factors []model.ScoreFactor) model.Assessment {
	cs := a.CreditScore()
	cs.Factors = factors
	return model.ReconstructAssessment(a.ID(), a.FarmerID(), a.FarmerData(), cs, a.Version(), a.CreatedAt())
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
