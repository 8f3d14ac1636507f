package postgres

import (
	"context"
	"time"

	"go-hiring-pipeline/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

// NewInterviewRepository creates a new interview repository
func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

// Create inserts a new scheduled interview
func (r *interviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	query := `
		INSERT INTO interviews (candidate_id, track, interviewer_id, practice_type, scheduled_at, status, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	interview.CreatedAt = time.Now()

	return r.db.QueryRow(ctx, query,
		interview.CandidateID,
		interview.Track,
		interview.InterviewerID,
		interview.PracticeType,
		interview.ScheduledAt,
		interview.Status,
		interview.Result,
		interview.CreatedAt,
	).Scan(&interview.ID)
}

// GetByID retrieves an interview by ID
func (r *interviewRepo) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	query := `
		SELECT id, candidate_id, track, interviewer_id, practice_type, scheduled_at, status, result, comment, created_at
		FROM interviews
		WHERE id = $1`

	var interview domain.Interview
	err := r.db.QueryRow(ctx, query, id).Scan(
		&interview.ID, &interview.CandidateID, &interview.Track, &interview.InterviewerID,
		&interview.PracticeType, &interview.ScheduledAt, &interview.Status, &interview.Result,
		&interview.Comment, &interview.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// Resolve moves an interview out of SCHEDULED into a terminal state
func (r *interviewRepo) Resolve(ctx context.Context, id int64, status, result string, comment *string) error {
	query := `UPDATE interviews SET status = $2, result = $3, comment = $4 WHERE id = $1`
	res, err := r.db.Exec(ctx, query, id, status, result, comment)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCandidate retrieves all interviews of a candidate, soonest first
func (r *interviewRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Interview, error) {
	query := `
		SELECT id, candidate_id, track, interviewer_id, practice_type, scheduled_at, status, result, comment, created_at
		FROM interviews
		WHERE candidate_id = $1
		ORDER BY scheduled_at ASC`

	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInterviews(rows, false)
}

// ListAll retrieves interviews for moderator review with joined candidate data
func (r *interviewRepo) ListAll(ctx context.Context, filter domain.InterviewFilter) ([]domain.Interview, error) {
	query := `
		SELECT
			i.id, i.candidate_id, i.track, i.interviewer_id, i.practice_type, i.scheduled_at,
			i.status, i.result, i.comment, i.created_at,
			c.full_name as candidate_name
		FROM interviews i
		LEFT JOIN candidates c ON i.candidate_id = c.id
		WHERE ($1 = '' OR i.track = $1)
		  AND ($2 = '' OR i.result = $2)
		ORDER BY i.scheduled_at DESC`

	rows, err := r.db.Query(ctx, query, filter.Track, filter.Result)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInterviews(rows, true)
}

// HasScheduled reports whether the candidate already has a pending interview
// on the track
func (r *interviewRepo) HasScheduled(ctx context.Context, candidateID, track string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM interviews
			WHERE candidate_id = $1 AND track = $2 AND status = $3
		)`

	var exists bool
	err := r.db.QueryRow(ctx, query, candidateID, track, domain.InterviewStatusScheduled).Scan(&exists)
	return exists, err
}

// HasSuccessful reports whether the candidate passed an interview on the track
func (r *interviewRepo) HasSuccessful(ctx context.Context, candidateID, track string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM interviews
			WHERE candidate_id = $1 AND track = $2 AND status = $3 AND result = $4
		)`

	var exists bool
	err := r.db.QueryRow(ctx, query, candidateID, track,
		domain.InterviewStatusCompleted, domain.InterviewResultSuccess).Scan(&exists)
	return exists, err
}

func scanInterviews(rows pgx.Rows, joined bool) ([]domain.Interview, error) {
	var interviews []domain.Interview
	for rows.Next() {
		var interview domain.Interview
		dest := []any{
			&interview.ID, &interview.CandidateID, &interview.Track, &interview.InterviewerID,
			&interview.PracticeType, &interview.ScheduledAt, &interview.Status, &interview.Result,
			&interview.Comment, &interview.CreatedAt,
		}
		if joined {
			dest = append(dest, &interview.CandidateName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		interviews = append(interviews, interview)
	}
	return interviews, rows.Err()
}

type scheduleConflictChecker struct {
	db     *pgxpool.Pool
	window time.Duration
}

// NewScheduleConflictChecker reports conflicts against existing SCHEDULED
// interviews. Two interviews conflict when either the interviewer or the
// candidate is booked within the window around the requested time.
func NewScheduleConflictChecker(db *pgxpool.Pool) domain.ScheduleConflictChecker {
	return &scheduleConflictChecker{db: db, window: time.Hour}
}

func (c *scheduleConflictChecker) IsConflicting(ctx context.Context, interviewerID, candidateID string, when time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM interviews
			WHERE status = $1
			  AND (interviewer_id = $2 OR candidate_id = $3)
			  AND scheduled_at > $4 AND scheduled_at < $5
		)`

	var exists bool
	err := c.db.QueryRow(ctx, query,
		domain.InterviewStatusScheduled,
		interviewerID,
		candidateID,
		when.Add(-c.window),
		when.Add(c.window),
	).Scan(&exists)
	return exists, err
}
