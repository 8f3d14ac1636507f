package usecase

import (
	"context"

	"go-hiring-pipeline/internal/domain"
	"go-hiring-pipeline/pkg/apperror"
)

type candidateUsecase struct {
	candidateRepo domain.CandidateRepository
	notifier      domain.NotificationEmitter
}

// NewCandidateUsecase creates a new candidate usecase
func NewCandidateUsecase(
	candidateRepo domain.CandidateRepository,
	notifier domain.NotificationEmitter,
) domain.CandidateUsecase {
	return &candidateUsecase{
		candidateRepo: candidateRepo,
		notifier:      notifier,
	}
}

// EnsureRegistered syncs the candidate row from identity claims. Gender is
// registration data the engine trusts as immutable; the upsert never changes
// it for an existing candidate.
func (uc *candidateUsecase) EnsureRegistered(ctx context.Context, candidate *domain.Candidate) (*domain.Candidate, error) {
	if candidate.ID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if candidate.Gender != domain.GenderMale && candidate.Gender != domain.GenderFemale {
		return nil, apperror.Validation("Gender must be MALE or FEMALE")
	}

	created, err := uc.candidateRepo.Upsert(ctx, candidate)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if created {
		uc.notifier.Emit(ctx, candidate.ID, domain.NotificationRegistration,
			"Welcome! Your registration has been received. Submit a resume to start the hiring or practice pipeline.")
	}

	return candidate, nil
}

// GetProfile returns the stored candidate row
func (uc *candidateUsecase) GetProfile(ctx context.Context, id string) (*domain.Candidate, error) {
	candidate, err := uc.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Candidate not found")
	}
	return candidate, nil
}
