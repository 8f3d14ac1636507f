package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-hiring-pipeline/internal/domain"
	"go-hiring-pipeline/pkg/apperror"
)

type interviewUsecase struct {
	interviewRepo domain.InterviewRepository
	candidateRepo domain.CandidateRepository
	conflicts     domain.ScheduleConflictChecker
	notifier      domain.NotificationEmitter
}

// NewInterviewUsecase creates a new interview usecase
func NewInterviewUsecase(
	interviewRepo domain.InterviewRepository,
	candidateRepo domain.CandidateRepository,
	conflicts domain.ScheduleConflictChecker,
	notifier domain.NotificationEmitter,
) domain.InterviewUsecase {
	return &interviewUsecase{
		interviewRepo: interviewRepo,
		candidateRepo: candidateRepo,
		conflicts:     conflicts,
		notifier:      notifier,
	}
}

// Schedule books an interview for a (candidate, track) pipeline. Scheduling
// is independent of resume status; eligibility is limited to time validity
// and booking conflicts.
func (uc *interviewUsecase) Schedule(ctx context.Context, candidateID, track, interviewerID string, when time.Time, practiceType string) (*domain.Interview, error) {
	if track != domain.TrackJob && track != domain.TrackPractice {
		return nil, apperror.Validation("Track must be JOB or PRACTICE")
	}
	if !when.UTC().After(time.Now().UTC()) {
		return nil, apperror.ValidationFields("Invalid interview", map[string]string{
			"ScheduledAt": "Scheduled time must be in the future",
		})
	}
	if track == domain.TrackPractice {
		switch practiceType {
		case domain.PracticeTypePreDiploma, domain.PracticeTypeProduction, domain.PracticeTypeEducational:
		case "":
			return nil, apperror.ValidationFields("Invalid interview", map[string]string{
				"PracticeType": "Practice type is required for a PRACTICE interview",
			})
		default:
			return nil, apperror.ValidationFields("Invalid interview", map[string]string{
				"PracticeType": "Unknown practice type",
			})
		}
	}

	if _, err := uc.candidateRepo.GetByID(ctx, candidateID); err != nil {
		return nil, apperror.NotFound("Candidate not found")
	}

	// Eligibility checks surface as non-field validation errors
	alreadyScheduled, err := uc.interviewRepo.HasScheduled(ctx, candidateID, track)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if alreadyScheduled {
		return nil, apperror.ValidationFields("Scheduling conflict", map[string]string{
			"non_field_errors": "Candidate already has a scheduled interview for this track",
		})
	}

	conflicting, err := uc.conflicts.IsConflicting(ctx, interviewerID, candidateID, when)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if conflicting {
		return nil, apperror.ValidationFields("Scheduling conflict", map[string]string{
			"non_field_errors": "Interviewer or candidate is already booked at this time",
		})
	}

	interview := &domain.Interview{
		CandidateID:   candidateID,
		Track:         track,
		InterviewerID: interviewerID,
		ScheduledAt:   when.UTC(),
		Status:        domain.InterviewStatusScheduled,
		Result:        domain.InterviewResultPending,
	}
	if track == domain.TrackPractice {
		pt := practiceType
		interview.PracticeType = &pt
	}

	if err := uc.interviewRepo.Create(ctx, interview); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.notifier.Emit(ctx, candidateID, domain.NotificationInterview,
		fmt.Sprintf("An interview for your %s application has been scheduled for %s.",
			track, interview.ScheduledAt.Format("2006-01-02 15:04 MST")))

	return interview, nil
}

// Resolve moves a SCHEDULED interview into one of its absorbing states.
// COMPLETED must carry SUCCESS or FAILURE; CANCELLED always resets the
// result to PENDING, whatever the caller supplied.
func (uc *interviewUsecase) Resolve(ctx context.Context, interviewID int64, status, result, comment string) (*domain.Interview, error) {
	interview, err := uc.interviewRepo.GetByID(ctx, interviewID)
	if err != nil {
		return nil, apperror.NotFound("Interview not found")
	}
	if interview.Status != domain.InterviewStatusScheduled {
		return nil, apperror.State("Interview has already been resolved")
	}

	switch status {
	case domain.InterviewStatusCompleted:
		if result != domain.InterviewResultSuccess && result != domain.InterviewResultFailure {
			return nil, apperror.Validation("A completed interview requires a SUCCESS or FAILURE result")
		}
	case domain.InterviewStatusCancelled:
		result = domain.InterviewResultPending
	default:
		return nil, apperror.Validation("Status must be COMPLETED or CANCELLED")
	}

	var commentPtr *string
	if strings.TrimSpace(comment) != "" {
		trimmed := strings.TrimSpace(comment)
		commentPtr = &trimmed
	}

	if err := uc.interviewRepo.Resolve(ctx, interviewID, status, result, commentPtr); err != nil {
		return nil, apperror.Internal(err)
	}

	interview.Status = status
	interview.Result = result
	interview.Comment = commentPtr

	var message string
	switch {
	case status == domain.InterviewStatusCancelled:
		message = fmt.Sprintf("Your %s interview scheduled for %s has been cancelled.",
			interview.Track, interview.ScheduledAt.Format("2006-01-02 15:04 MST"))
	case result == domain.InterviewResultSuccess:
		message = fmt.Sprintf("You passed your %s interview. Please upload the required documents.", interview.Track)
	default:
		message = fmt.Sprintf("Unfortunately, your %s interview was not successful.", interview.Track)
	}
	uc.notifier.Emit(ctx, interview.CandidateID, domain.NotificationInterview, message)

	return interview, nil
}

// ListAll returns interviews for moderator review, optionally filtered
func (uc *interviewUsecase) ListAll(ctx context.Context, filter domain.InterviewFilter) ([]domain.Interview, error) {
	interviews, err := uc.interviewRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return interviews, nil
}

// ListMine returns all interviews of the current candidate
func (uc *interviewUsecase) ListMine(ctx context.Context, candidateID string) ([]domain.Interview, error) {
	interviews, err := uc.interviewRepo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return interviews, nil
}
