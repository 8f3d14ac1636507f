package postgres

import (
	"context"
	"time"

	"go-hiring-pipeline/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type resumeRepo struct {
	db *pgxpool.Pool
}

// NewResumeRepository creates a new resume repository
func NewResumeRepository(db *pgxpool.Pool) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

// Create inserts a new resume
func (r *resumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	query := `
		INSERT INTO resumes (candidate_id, track, job_type, practice_type, education, phone_number, content, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	now := time.Now()
	resume.CreatedAt = now
	resume.UpdatedAt = now
	if resume.Status == "" {
		resume.Status = domain.ResumeStatusPending
	}

	return r.db.QueryRow(ctx, query,
		resume.CandidateID,
		resume.Track,
		resume.JobType,
		resume.PracticeType,
		resume.Education,
		resume.PhoneNumber,
		resume.Content,
		resume.Status,
		resume.CreatedAt,
		resume.UpdatedAt,
	).Scan(&resume.ID)
}

// GetByID retrieves a resume by ID
func (r *resumeRepo) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	query := `
		SELECT id, candidate_id, track, job_type, practice_type, education, phone_number, content, status, comment, created_at, updated_at
		FROM resumes
		WHERE id = $1`

	var resume domain.Resume
	err := r.db.QueryRow(ctx, query, id).Scan(
		&resume.ID, &resume.CandidateID, &resume.Track, &resume.JobType, &resume.PracticeType,
		&resume.Education, &resume.PhoneNumber, &resume.Content, &resume.Status, &resume.Comment,
		&resume.CreatedAt, &resume.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// Update overwrites the candidate-editable fields of a resume
func (r *resumeRepo) Update(ctx context.Context, resume *domain.Resume) error {
	query := `
		UPDATE resumes
		SET content = $2, job_type = $3, practice_type = $4, education = $5, phone_number = $6, updated_at = $7
		WHERE id = $1`

	resume.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		resume.ID,
		resume.Content,
		resume.JobType,
		resume.PracticeType,
		resume.Education,
		resume.PhoneNumber,
		resume.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a withdrawn resume
func (r *resumeRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus records the moderator verdict and sets updated_at
func (r *resumeRepo) UpdateStatus(ctx context.Context, id int64, status string, comment *string) error {
	query := `UPDATE resumes SET status = $2, comment = $3, updated_at = $4 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, comment, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCandidate retrieves all resumes of a candidate, newest first
func (r *resumeRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Resume, error) {
	query := `
		SELECT id, candidate_id, track, job_type, practice_type, education, phone_number, content, status, comment, created_at, updated_at
		FROM resumes
		WHERE candidate_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumes []domain.Resume
	for rows.Next() {
		var resume domain.Resume
		if err := rows.Scan(
			&resume.ID, &resume.CandidateID, &resume.Track, &resume.JobType, &resume.PracticeType,
			&resume.Education, &resume.PhoneNumber, &resume.Content, &resume.Status, &resume.Comment,
			&resume.CreatedAt, &resume.UpdatedAt,
		); err != nil {
			return nil, err
		}
		resumes = append(resumes, resume)
	}
	return resumes, rows.Err()
}

// ListAll retrieves resumes for moderator review with joined candidate data
func (r *resumeRepo) ListAll(ctx context.Context, filter domain.ResumeFilter) ([]domain.Resume, error) {
	query := `
		SELECT
			r.id, r.candidate_id, r.track, r.job_type, r.practice_type, r.education, r.phone_number,
			r.content, r.status, r.comment, r.created_at, r.updated_at,
			c.full_name as candidate_name,
			c.gender as candidate_gender
		FROM resumes r
		LEFT JOIN candidates c ON r.candidate_id = c.id
		WHERE ($1 = '' OR r.track = $1)
		  AND ($2 = '' OR r.status = $2)
		ORDER BY r.created_at DESC`

	rows, err := r.db.Query(ctx, query, filter.Track, filter.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumes []domain.Resume
	for rows.Next() {
		var resume domain.Resume
		if err := rows.Scan(
			&resume.ID, &resume.CandidateID, &resume.Track, &resume.JobType, &resume.PracticeType,
			&resume.Education, &resume.PhoneNumber, &resume.Content, &resume.Status, &resume.Comment,
			&resume.CreatedAt, &resume.UpdatedAt,
			&resume.CandidateName, &resume.CandidateGender,
		); err != nil {
			return nil, err
		}
		resumes = append(resumes, resume)
	}
	return resumes, rows.Err()
}
