package domain

import (
	"context"
	"time"
)

// Interview status constants. SCHEDULED is the only non-terminal state.
const (
	InterviewStatusScheduled = "SCHEDULED"
	InterviewStatusCompleted = "COMPLETED"
	InterviewStatusCancelled = "CANCELLED"
)

// Interview result constants. Result stays PENDING while the interview is
// SCHEDULED; COMPLETED must carry SUCCESS or FAILURE; CANCELLED forces the
// result back to PENDING.
const (
	InterviewResultPending = "PENDING"
	InterviewResultSuccess = "SUCCESS"
	InterviewResultFailure = "FAILURE"
)

// Interview belongs to a (candidate, track) pair with an assigned interviewer.
// Once status leaves SCHEDULED the record is terminal.
type Interview struct {
	ID            int64     `json:"id"`
	CandidateID   string    `json:"candidate_id"`
	Track         string    `json:"track"`
	InterviewerID string    `json:"interviewer_id"`
	PracticeType  *string   `json:"practice_type,omitempty"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Status        string    `json:"status"`
	Result        string    `json:"result"`
	Comment       *string   `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	// Joined data for moderator list responses
	CandidateName *string `json:"candidate_name,omitempty"`
}

// InterviewFilter narrows moderator listings
type InterviewFilter struct {
	Track  string
	Result string
}

// ScheduleConflictChecker is the external scheduling-conflict collaborator.
// A positive result means the interviewer or the candidate is already booked
// around the requested time.
type ScheduleConflictChecker interface {
	IsConflicting(ctx context.Context, interviewerID, candidateID string, when time.Time) (bool, error)
}

// InterviewRepository defines data access methods for interviews
type InterviewRepository interface {
	Create(ctx context.Context, interview *Interview) error
	GetByID(ctx context.Context, id int64) (*Interview, error)
	Resolve(ctx context.Context, id int64, status, result string, comment *string) error
	ListByCandidate(ctx context.Context, candidateID string) ([]Interview, error)
	ListAll(ctx context.Context, filter InterviewFilter) ([]Interview, error)
	HasScheduled(ctx context.Context, candidateID, track string) (bool, error)
	HasSuccessful(ctx context.Context, candidateID, track string) (bool, error)
}

// InterviewUsecase defines business logic for the interview stage
type InterviewUsecase interface {
	// Moderator operations
	Schedule(ctx context.Context, candidateID, track, interviewerID string, when time.Time, practiceType string) (*Interview, error)
	Resolve(ctx context.Context, interviewID int64, status, result, comment string) (*Interview, error)
	ListAll(ctx context.Context, filter InterviewFilter) ([]Interview, error)

	// Candidate operations
	ListMine(ctx context.Context, candidateID string) ([]Interview, error)
}
