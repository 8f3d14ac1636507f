package domain

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("resource not found")

// Gender values as supplied at registration. The document quota depends on it.
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

// Education levels a candidate can declare on a resume
const (
	EducationSecondary    = "SECONDARY"
	EducationHigher       = "HIGHER"
	EducationPostgraduate = "POSTGRADUATE"
)

// Candidate mirrors the identity provider's registration data. The ID is the
// auth subject; gender is immutable once registered.
type Candidate struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Gender       string    `json:"gender"`
	RegisteredAt time.Time `json:"registered_at"`
}

// CandidateRepository defines data access methods for candidates
type CandidateRepository interface {
	// Upsert inserts the candidate if unknown. Returns true when a new row
	// was created, false when the candidate already existed.
	Upsert(ctx context.Context, candidate *Candidate) (bool, error)
	GetByID(ctx context.Context, id string) (*Candidate, error)
}

// CandidateUsecase defines profile sync logic
type CandidateUsecase interface {
	// EnsureRegistered upserts the candidate from identity claims and emits
	// a one-time REGISTRATION notification on first sight.
	EnsureRegistered(ctx context.Context, candidate *Candidate) (*Candidate, error)
	GetProfile(ctx context.Context, id string) (*Candidate, error)
}
