package postgres

import (
	"context"
	"errors"
	"time"

	"go-hiring-pipeline/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type pipelineRepo struct {
	db *pgxpool.Pool
}

// NewPipelineRepository creates a new pipeline repository
func NewPipelineRepository(db *pgxpool.Pool) domain.PipelineRepository {
	return &pipelineRepo{db: db}
}

// Snapshot reads every record the aggregator consults inside one repeatable
// read transaction, so a concurrent stage transition can never produce a torn
// view.
func (r *pipelineRepo) Snapshot(ctx context.Context, candidateID, track string) (*domain.PipelineSnapshot, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	snapshot := &domain.PipelineSnapshot{Track: track}

	candidate, err := snapshotCandidate(ctx, tx, candidateID)
	if err != nil {
		return nil, err
	}
	snapshot.Candidate = candidate

	if snapshot.Resumes, err = snapshotResumes(ctx, tx, candidateID, track); err != nil {
		return nil, err
	}
	if snapshot.Interviews, err = snapshotInterviews(ctx, tx, candidateID, track); err != nil {
		return nil, err
	}
	if snapshot.Documents, err = snapshotDocuments(ctx, tx, candidateID); err != nil {
		return nil, err
	}
	if snapshot.Employee, err = snapshotEmployee(ctx, tx, candidateID); err != nil {
		return nil, err
	}
	if snapshot.FinalRejected, err = snapshotRejection(ctx, tx, candidateID, track); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// CreateEmployee inserts the terminal employee record. A second insert for
// the same candidate maps the unique violation to domain.ErrAlreadyHired.
func (r *pipelineRepo) CreateEmployee(ctx context.Context, employee *domain.Employee) error {
	query := `
		INSERT INTO employees (candidate_id, track, hire_date, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	employee.CreatedAt = time.Now()

	err := r.db.QueryRow(ctx, query,
		employee.CandidateID,
		employee.Track,
		employee.HireDate,
		employee.Message,
		employee.CreatedAt,
	).Scan(&employee.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.ErrAlreadyHired
		}
		return err
	}
	return nil
}

// GetEmployee retrieves the employee record for a candidate
func (r *pipelineRepo) GetEmployee(ctx context.Context, candidateID string) (*domain.Employee, error) {
	query := `
		SELECT id, candidate_id, track, hire_date, message, created_at
		FROM employees
		WHERE candidate_id = $1`

	var employee domain.Employee
	err := r.db.QueryRow(ctx, query, candidateID).Scan(
		&employee.ID, &employee.CandidateID, &employee.Track,
		&employee.HireDate, &employee.Message, &employee.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// SetTrackRejection marks the pipeline terminally rejected. The unique
// constraint makes repeats no-ops; the returned flag is true only for the
// first call.
func (r *pipelineRepo) SetTrackRejection(ctx context.Context, candidateID, track, moderatorID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM candidates WHERE id = $1)`, candidateID).Scan(&exists)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, domain.ErrNotFound
	}

	query := `
		INSERT INTO track_rejections (candidate_id, track, moderator_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (candidate_id, track) DO NOTHING`

	result, err := r.db.Exec(ctx, query, candidateID, track, moderatorID, time.Now())
	if err != nil {
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func snapshotCandidate(ctx context.Context, tx pgx.Tx, candidateID string) (*domain.Candidate, error) {
	var candidate domain.Candidate
	err := tx.QueryRow(ctx,
		`SELECT id, email, full_name, gender, registered_at FROM candidates WHERE id = $1`,
		candidateID,
	).Scan(&candidate.ID, &candidate.Email, &candidate.FullName, &candidate.Gender, &candidate.RegisteredAt)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

func snapshotResumes(ctx context.Context, tx pgx.Tx, candidateID, track string) ([]domain.Resume, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, candidate_id, track, job_type, practice_type, education, phone_number, content, status, comment, created_at, updated_at
		FROM resumes
		WHERE candidate_id = $1 AND track = $2
		ORDER BY created_at ASC`,
		candidateID, track)
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

func snapshotInterviews(ctx context.Context, tx pgx.Tx, candidateID, track string) ([]domain.Interview, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, candidate_id, track, interviewer_id, practice_type, scheduled_at, status, result, comment, created_at
		FROM interviews
		WHERE candidate_id = $1 AND track = $2
		ORDER BY scheduled_at ASC`,
		candidateID, track)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInterviews(rows, false)
}

func snapshotDocuments(ctx context.Context, tx pgx.Tx, candidateID string) ([]domain.Document, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, candidate_id, slot, file_ref, status, comment, uploaded_at, updated_at
		FROM documents
		WHERE candidate_id = $1
		ORDER BY uploaded_at ASC`,
		candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []domain.Document
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(
			&doc.ID, &doc.CandidateID, &doc.Slot, &doc.FileRef,
			&doc.Status, &doc.Comment, &doc.UploadedAt, &doc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}
	return documents, rows.Err()
}

func snapshotEmployee(ctx context.Context, tx pgx.Tx, candidateID string) (*domain.Employee, error) {
	var employee domain.Employee
	err := tx.QueryRow(ctx,
		`SELECT id, candidate_id, track, hire_date, message, created_at FROM employees WHERE candidate_id = $1`,
		candidateID,
	).Scan(&employee.ID, &employee.CandidateID, &employee.Track, &employee.HireDate, &employee.Message, &employee.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func snapshotRejection(ctx context.Context, tx pgx.Tx, candidateID, track string) (bool, error) {
	var rejected bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM track_rejections WHERE candidate_id = $1 AND track = $2)`,
		candidateID, track,
	).Scan(&rejected)
	return rejected, err
}
