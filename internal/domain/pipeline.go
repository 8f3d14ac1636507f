package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyHired is returned when an Employee record already exists for the
// candidate
var ErrAlreadyHired = errors.New("employee already exists for candidate")

// FinalStatus values derived by the pipeline aggregator. The value is never
// stored; it is recomputed from the stage records on every read.
const (
	FinalStatusHired                = "HIRED"
	FinalStatusAwaitingConfirmation = "AWAITING_CONFIRMATION"
	FinalStatusAwaitingDocuments    = "AWAITING_DOCUMENTS"
	FinalStatusAwaitingInterview    = "AWAITING_INTERVIEW"
	FinalStatusRejected             = "REJECTED"
	FinalStatusInProgress           = "IN_PROGRESS"
)

// Employee is created exactly once per candidate on hire confirmation. Its
// presence is terminal and dominates every other derived status.
type Employee struct {
	ID          int64     `json:"id"`
	CandidateID string    `json:"candidate_id"`
	Track       string    `json:"track"`
	HireDate    time.Time `json:"hire_date"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// PipelineSnapshot is a consistent view of every record the aggregator
// consults for one (candidate, track) pipeline. Resumes and interviews are
// scoped to the track; documents and the employee record are per candidate.
type PipelineSnapshot struct {
	Candidate     *Candidate  `json:"candidate"`
	Track         string      `json:"track"`
	Resumes       []Resume    `json:"resumes"`
	Interviews    []Interview `json:"interviews"`
	Documents     []Document  `json:"documents"`
	Employee      *Employee   `json:"employee,omitempty"`
	FinalRejected bool        `json:"final_rejected"`
}

// PipelineStatus is the aggregator's candidate-facing result
type PipelineStatus struct {
	Track    string            `json:"track"`
	Status   string            `json:"status"`
	Snapshot *PipelineSnapshot `json:"snapshot,omitempty"`
}

// PipelineRepository provides snapshot reads and the aggregator's writes
type PipelineRepository interface {
	// Snapshot reads all stage records in a single transaction so the
	// aggregator never observes a torn state.
	Snapshot(ctx context.Context, candidateID, track string) (*PipelineSnapshot, error)
	CreateEmployee(ctx context.Context, employee *Employee) error
	GetEmployee(ctx context.Context, candidateID string) (*Employee, error)
	// SetTrackRejection marks the (candidate, track) pipeline terminally
	// rejected. Idempotent; reports whether the flag was newly set.
	SetTrackRejection(ctx context.Context, candidateID, track, moderatorID string) (bool, error)
}

// PipelineUsecase is the aggregator over the resume, interview and document
// stages
type PipelineUsecase interface {
	DeriveFinalStatus(ctx context.Context, candidateID, track string) (*PipelineStatus, error)
	ConfirmHire(ctx context.Context, candidateID, track string, hireDate time.Time, message string) (*Employee, error)
	RejectFinal(ctx context.Context, moderatorID, candidateID, track string) error
}
