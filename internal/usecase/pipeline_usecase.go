package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-hiring-pipeline/internal/domain"
	"go-hiring-pipeline/pkg/apperror"
)

type pipelineUsecase struct {
	pipelineRepo domain.PipelineRepository
	notifier     domain.NotificationEmitter
}

// NewPipelineUsecase creates the aggregator over the three pipeline stages
func NewPipelineUsecase(
	pipelineRepo domain.PipelineRepository,
	notifier domain.NotificationEmitter,
) domain.PipelineUsecase {
	return &pipelineUsecase{
		pipelineRepo: pipelineRepo,
		notifier:     notifier,
	}
}

// Derive computes the final status from a snapshot. The rule order is the
// contract: the first matching rule wins.
//
//  1. Employee record exists            -> HIRED
//  2. Document quota satisfied          -> AWAITING_CONFIRMATION
//  3. Any interview succeeded           -> AWAITING_DOCUMENTS
//  4. Any resume accepted               -> AWAITING_INTERVIEW
//  5. Rejected resume, failed interview
//     or terminal track rejection       -> REJECTED
//  6. Otherwise                         -> IN_PROGRESS
func Derive(s *domain.PipelineSnapshot) string {
	if s.Employee != nil {
		return domain.FinalStatusHired
	}
	if s.Candidate != nil && domain.QuotaSatisfied(s.Candidate.Gender, s.Documents) {
		return domain.FinalStatusAwaitingConfirmation
	}
	for _, interview := range s.Interviews {
		if interview.Result == domain.InterviewResultSuccess {
			return domain.FinalStatusAwaitingDocuments
		}
	}
	for _, resume := range s.Resumes {
		if resume.Status == domain.ResumeStatusAccepted {
			return domain.FinalStatusAwaitingInterview
		}
	}
	if s.FinalRejected {
		return domain.FinalStatusRejected
	}
	for _, resume := range s.Resumes {
		if resume.Status == domain.ResumeStatusRejected {
			return domain.FinalStatusRejected
		}
	}
	for _, interview := range s.Interviews {
		if interview.Result == domain.InterviewResultFailure {
			return domain.FinalStatusRejected
		}
	}
	return domain.FinalStatusInProgress
}

// DeriveFinalStatus evaluates the pipeline for one (candidate, track) pair
// against a consistent snapshot
func (uc *pipelineUsecase) DeriveFinalStatus(ctx context.Context, candidateID, track string) (*domain.PipelineStatus, error) {
	if track != domain.TrackJob && track != domain.TrackPractice {
		return nil, apperror.Validation("Track must be JOB or PRACTICE")
	}

	snapshot, err := uc.pipelineRepo.Snapshot(ctx, candidateID, track)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}

	return &domain.PipelineStatus{
		Track:    track,
		Status:   Derive(snapshot),
		Snapshot: snapshot,
	}, nil
}

// ConfirmHire materializes the Employee record for a candidate whose track
// derives AWAITING_CONFIRMATION. From then on the candidate derives HIRED on
// every track, unconditionally.
func (uc *pipelineUsecase) ConfirmHire(ctx context.Context, candidateID, track string, hireDate time.Time, message string) (*domain.Employee, error) {
	if track != domain.TrackJob && track != domain.TrackPractice {
		return nil, apperror.Validation("Track must be JOB or PRACTICE")
	}
	if hireDate.IsZero() {
		return nil, apperror.ValidationFields("Invalid confirmation", map[string]string{
			"HireDate": "Hire date is required",
		})
	}

	snapshot, err := uc.pipelineRepo.Snapshot(ctx, candidateID, track)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}
	if status := Derive(snapshot); status != domain.FinalStatusAwaitingConfirmation {
		return nil, apperror.State("Candidate is not awaiting hire confirmation")
	}

	if strings.TrimSpace(message) == "" {
		message = "Congratulations! You have been hired. Your start date is {hireDate}."
	}
	message = strings.ReplaceAll(message, "{hireDate}", hireDate.Format("2006-01-02"))

	employee := &domain.Employee{
		CandidateID: candidateID,
		Track:       track,
		HireDate:    hireDate,
		Message:     message,
	}
	if err := uc.pipelineRepo.CreateEmployee(ctx, employee); err != nil {
		if errors.Is(err, domain.ErrAlreadyHired) {
			return nil, apperror.State("Candidate has already been hired")
		}
		return nil, apperror.Internal(err)
	}

	uc.notifier.Emit(ctx, candidateID, domain.NotificationHire, message)

	return employee, nil
}

// RejectFinal terminally rejects a (candidate, track) pipeline regardless of
// document completeness. Idempotent: only the first call emits the rejection
// notification.
func (uc *pipelineUsecase) RejectFinal(ctx context.Context, moderatorID, candidateID, track string) error {
	if track != domain.TrackJob && track != domain.TrackPractice {
		return apperror.Validation("Track must be JOB or PRACTICE")
	}

	newlySet, err := uc.pipelineRepo.SetTrackRejection(ctx, candidateID, track, moderatorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Candidate not found")
		}
		return apperror.Internal(err)
	}

	if newlySet {
		uc.notifier.Emit(ctx, candidateID, domain.NotificationHire,
			"Unfortunately, your application for this track has been rejected.")
	}
	return nil
}
