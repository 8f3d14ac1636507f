package postgres

import (
	"context"
	"time"

	"go-hiring-pipeline/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type candidateRepo struct {
	db *pgxpool.Pool
}

// NewCandidateRepository creates a new candidate repository
func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

// Upsert inserts the candidate if unknown. Gender is registration data and
// is never overwritten for an existing row.
func (r *candidateRepo) Upsert(ctx context.Context, candidate *domain.Candidate) (bool, error) {
	query := `
		INSERT INTO candidates (id, email, full_name, gender, registered_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`

	if candidate.RegisteredAt.IsZero() {
		candidate.RegisteredAt = time.Now()
	}

	result, err := r.db.Exec(ctx, query,
		candidate.ID,
		candidate.Email,
		candidate.FullName,
		candidate.Gender,
		candidate.RegisteredAt,
	)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

// GetByID retrieves a candidate by the identity provider's subject
func (r *candidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := `
		SELECT id, email, full_name, gender, registered_at
		FROM candidates
		WHERE id = $1`

	var candidate domain.Candidate
	err := r.db.QueryRow(ctx, query, id).Scan(
		&candidate.ID, &candidate.Email, &candidate.FullName,
		&candidate.Gender, &candidate.RegisteredAt,
	)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}
