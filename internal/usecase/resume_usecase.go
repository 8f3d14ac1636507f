package usecase

import (
	"context"
	"fmt"
	"strings"

	"go-hiring-pipeline/internal/domain"
	"go-hiring-pipeline/pkg/apperror"
	"go-hiring-pipeline/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type resumeUsecase struct {
	resumeRepo    domain.ResumeRepository
	candidateRepo domain.CandidateRepository
	notifier      domain.NotificationEmitter
	validate      *validator.Validate
}

// NewResumeUsecase creates a new resume usecase
func NewResumeUsecase(
	resumeRepo domain.ResumeRepository,
	candidateRepo domain.CandidateRepository,
	notifier domain.NotificationEmitter,
	validate *validator.Validate,
) domain.ResumeUsecase {
	return &resumeUsecase{
		resumeRepo:    resumeRepo,
		candidateRepo: candidateRepo,
		notifier:      notifier,
		validate:      validate,
	}
}

// validateResumeInput enforces the track-specific required attributes shared
// by Submit and Edit
func (uc *resumeUsecase) validateResumeInput(track, content string, attrs domain.ResumeAttrs) error {
	if strings.TrimSpace(content) == "" {
		return apperror.ValidationFields("Invalid resume", map[string]string{
			"Content": "Resume content cannot be empty",
		})
	}
	if track != domain.TrackJob && track != domain.TrackPractice {
		return apperror.ValidationFields("Invalid resume", map[string]string{
			"Track": "Track must be JOB or PRACTICE",
		})
	}
	if track == domain.TrackJob && attrs.JobType == "" {
		return apperror.ValidationFields("Invalid resume", map[string]string{
			"JobType": "Job type is required for a JOB resume",
		})
	}
	if track == domain.TrackPractice && attrs.PracticeType == "" {
		return apperror.ValidationFields("Invalid resume", map[string]string{
			"PracticeType": "Practice type is required for a PRACTICE resume",
		})
	}
	if err := uc.validate.Struct(attrs); err != nil {
		return apperror.ValidationFields("Invalid resume", validation.FieldErrors(err))
	}
	return nil
}

// applyAttrs copies the track-relevant attributes onto the resume record
func applyAttrs(resume *domain.Resume, attrs domain.ResumeAttrs) {
	resume.Education = attrs.Education
	resume.PhoneNumber = attrs.PhoneNumber
	resume.JobType = nil
	resume.PracticeType = nil
	if resume.Track == domain.TrackJob {
		jobType := attrs.JobType
		resume.JobType = &jobType
	} else {
		practiceType := attrs.PracticeType
		resume.PracticeType = &practiceType
	}
}

// Submit creates a PENDING resume for the (candidate, track) pipeline. The
// candidate row is synced from identity claims on first use.
func (uc *resumeUsecase) Submit(ctx context.Context, candidate *domain.Candidate, track, content string, attrs domain.ResumeAttrs) (*domain.Resume, error) {
	if err := uc.validateResumeInput(track, content, attrs); err != nil {
		return nil, err
	}

	created, err := uc.candidateRepo.Upsert(ctx, candidate)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if created {
		uc.notifier.Emit(ctx, candidate.ID, domain.NotificationRegistration,
			"Welcome! Your registration has been received. Submit a resume to start the hiring or practice pipeline.")
	}

	resume := &domain.Resume{
		CandidateID: candidate.ID,
		Track:       track,
		Content:     strings.TrimSpace(content),
		Status:      domain.ResumeStatusPending,
	}
	applyAttrs(resume, attrs)

	if err := uc.resumeRepo.Create(ctx, resume); err != nil {
		return nil, apperror.Internal(err)
	}

	return resume, nil
}

// Edit overwrites content and attributes of a resume still under review
func (uc *resumeUsecase) Edit(ctx context.Context, candidateID string, resumeID int64, content string, attrs domain.ResumeAttrs) (*domain.Resume, error) {
	resume, err := uc.resumeRepo.GetByID(ctx, resumeID)
	if err != nil {
		return nil, apperror.NotFound("Resume not found")
	}
	if resume.CandidateID != candidateID {
		return nil, apperror.Forbidden("You can only edit your own resume")
	}
	if resume.Status != domain.ResumeStatusPending {
		return nil, apperror.State("Only a resume under review can be edited")
	}
	if err := uc.validateResumeInput(resume.Track, content, attrs); err != nil {
		return nil, err
	}

	resume.Content = strings.TrimSpace(content)
	applyAttrs(resume, attrs)

	if err := uc.resumeRepo.Update(ctx, resume); err != nil {
		return nil, apperror.Internal(err)
	}
	return resume, nil
}

// Withdraw deletes a resume still under review
func (uc *resumeUsecase) Withdraw(ctx context.Context, candidateID string, resumeID int64) error {
	resume, err := uc.resumeRepo.GetByID(ctx, resumeID)
	if err != nil {
		return apperror.NotFound("Resume not found")
	}
	if resume.CandidateID != candidateID {
		return apperror.Forbidden("You can only withdraw your own resume")
	}
	if resume.Status != domain.ResumeStatusPending {
		return apperror.State("Only a resume under review can be withdrawn")
	}

	if err := uc.resumeRepo.Delete(ctx, resumeID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// ListMine returns all resumes of the current candidate across both tracks
func (uc *resumeUsecase) ListMine(ctx context.Context, candidateID string) ([]domain.Resume, error) {
	resumes, err := uc.resumeRepo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return resumes, nil
}

// SetStatus records the moderator verdict. Repeating the verdict the resume
// already carries is rejected rather than silently ignored.
func (uc *resumeUsecase) SetStatus(ctx context.Context, resumeID int64, status, comment string) (*domain.Resume, error) {
	if status != domain.ResumeStatusAccepted && status != domain.ResumeStatusRejected {
		return nil, apperror.Validation("Status must be ACCEPTED or REJECTED")
	}

	resume, err := uc.resumeRepo.GetByID(ctx, resumeID)
	if err != nil {
		return nil, apperror.NotFound("Resume not found")
	}

	if status == domain.ResumeStatusRejected && strings.TrimSpace(comment) == "" {
		return nil, apperror.ValidationFields("Invalid review", map[string]string{
			"Comment": "A comment is required when rejecting a resume",
		})
	}
	if resume.Status == status {
		return nil, apperror.State(fmt.Sprintf("Resume is already %s", status))
	}

	var commentPtr *string
	if strings.TrimSpace(comment) != "" {
		trimmed := strings.TrimSpace(comment)
		commentPtr = &trimmed
	}

	if err := uc.resumeRepo.UpdateStatus(ctx, resumeID, status, commentPtr); err != nil {
		return nil, apperror.Internal(err)
	}

	resume.Status = status
	resume.Comment = commentPtr

	message := fmt.Sprintf("Your %s resume has been accepted. Wait for an interview to be scheduled.", resume.Track)
	if status == domain.ResumeStatusRejected {
		message = fmt.Sprintf("Your %s resume has been rejected. Reason: %s", resume.Track, comment)
	}
	uc.notifier.Emit(ctx, resume.CandidateID, domain.NotificationResumeStatus, message)

	return resume, nil
}

// ListAll returns resumes for moderator review, optionally filtered
func (uc *resumeUsecase) ListAll(ctx context.Context, filter domain.ResumeFilter) ([]domain.Resume, error) {
	resumes, err := uc.resumeRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return resumes, nil
}
