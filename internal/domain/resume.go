package domain

import (
	"context"
	"time"
)

// Track discriminates the two parallel pipelines a candidate can pursue.
const (
	TrackJob      = "JOB"
	TrackPractice = "PRACTICE"
)

// Job subtypes (required when track = JOB)
const (
	JobTypeProgrammer    = "PROGRAMMER"
	JobTypeMethodologist = "METHODOLOGIST"
	JobTypeSpecialist    = "SPECIALIST"
)

// Practice subtypes (required when track = PRACTICE)
const (
	PracticeTypePreDiploma  = "PRE_DIPLOMA"
	PracticeTypeProduction  = "PRODUCTION"
	PracticeTypeEducational = "EDUCATIONAL"
)

// Resume status constants
const (
	ResumeStatusPending  = "PENDING"
	ResumeStatusAccepted = "ACCEPTED"
	ResumeStatusRejected = "REJECTED"
)

// Resume belongs to a (candidate, track) pair. While PENDING the owning
// candidate may edit or withdraw it; once a moderator accepts it, it becomes
// immutable to the candidate and is never hard-deleted.
type Resume struct {
	ID           int64     `json:"id"`
	CandidateID  string    `json:"candidate_id"`
	Track        string    `json:"track"`
	JobType      *string   `json:"job_type,omitempty"`
	PracticeType *string   `json:"practice_type,omitempty"`
	Education    string    `json:"education,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Content      string    `json:"content"`
	Status       string    `json:"status"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Joined data for moderator list responses
	CandidateName   *string `json:"candidate_name,omitempty"`
	CandidateGender *string `json:"candidate_gender,omitempty"`
}

// ResumeAttrs carries the editable non-content fields of a resume
type ResumeAttrs struct {
	JobType      string `json:"job_type" validate:"omitempty,oneof=PROGRAMMER METHODOLOGIST SPECIALIST"`
	PracticeType string `json:"practice_type" validate:"omitempty,oneof=PRE_DIPLOMA PRODUCTION EDUCATIONAL"`
	Education    string `json:"education" validate:"omitempty,oneof=SECONDARY HIGHER POSTGRADUATE"`
	PhoneNumber  string `json:"phone_number" validate:"omitempty,valid_phone"`
}

// ResumeFilter narrows moderator listings
type ResumeFilter struct {
	Track  string
	Status string
}

// ResumeRepository defines data access methods for resumes
type ResumeRepository interface {
	Create(ctx context.Context, resume *Resume) error
	GetByID(ctx context.Context, id int64) (*Resume, error)
	Update(ctx context.Context, resume *Resume) error
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status string, comment *string) error
	ListByCandidate(ctx context.Context, candidateID string) ([]Resume, error)
	ListAll(ctx context.Context, filter ResumeFilter) ([]Resume, error)
}

// ResumeUsecase defines business logic for the resume stage
type ResumeUsecase interface {
	// Candidate operations
	Submit(ctx context.Context, candidate *Candidate, track, content string, attrs ResumeAttrs) (*Resume, error)
	Edit(ctx context.Context, candidateID string, resumeID int64, content string, attrs ResumeAttrs) (*Resume, error)
	Withdraw(ctx context.Context, candidateID string, resumeID int64) error
	ListMine(ctx context.Context, candidateID string) ([]Resume, error)

	// Moderator operations
	SetStatus(ctx context.Context, resumeID int64, status, comment string) (*Resume, error)
	ListAll(ctx context.Context, filter ResumeFilter) ([]Resume, error)
}
