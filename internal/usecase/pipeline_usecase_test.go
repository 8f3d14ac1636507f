package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-hiring-pipeline/internal/domain"
	"go-hiring-pipeline/internal/usecase"
	"go-hiring-pipeline/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func acceptedDocs(gender string) []domain.Document {
	var docs []domain.Document
	for _, slot := range domain.RequiredSlots(gender) {
		docs = append(docs, domain.Document{Slot: slot.ID, Status: domain.DocumentStatusAccepted})
	}
	return docs
}

func baseSnapshot(gender string) *domain.PipelineSnapshot {
	return &domain.PipelineSnapshot{
		Candidate: &domain.Candidate{ID: "cand-1", Gender: gender},
		Track:     domain.TrackJob,
	}
}

func TestDerivePrecedence(t *testing.T) {
	t.Run("Should derive IN_PROGRESS for an empty pipeline", func(t *testing.T) {
		assert.Equal(t, domain.FinalStatusInProgress, usecase.Derive(baseSnapshot(domain.GenderMale)))
	})

	t.Run("Should derive AWAITING_INTERVIEW from an accepted resume", func(t *testing.T) {
		s := baseSnapshot(domain.GenderMale)
		s.Resumes = []domain.Resume{{Status: domain.ResumeStatusAccepted}}
		assert.Equal(t, domain.FinalStatusAwaitingInterview, usecase.Derive(s))
	})

	t.Run("Should derive AWAITING_DOCUMENTS from a passed interview", func(t *testing.T) {
		s := baseSnapshot(domain.GenderMale)
		s.Resumes = []domain.Resume{{Status: domain.ResumeStatusAccepted}}
		s.Interviews = []domain.Interview{{Status: domain.InterviewStatusCompleted, Result: domain.InterviewResultSuccess}}
		assert.Equal(t, domain.FinalStatusAwaitingDocuments, usecase.Derive(s))
	})

	t.Run("Should derive AWAITING_CONFIRMATION once the quota is met", func(t *testing.T) {
		s := baseSnapshot(domain.GenderMale)
		s.Interviews = []domain.Interview{{Status: domain.InterviewStatusCompleted, Result: domain.InterviewResultSuccess}}
		s.Documents = acceptedDocs(domain.GenderMale)
		assert.Equal(t, domain.FinalStatusAwaitingConfirmation, usecase.Derive(s))
	})

	t.Run("Should derive HIRED above everything else", func(t *testing.T) {
		s := baseSnapshot(domain.GenderMale)
		s.Employee = &domain.Employee{ID: 1, CandidateID: "cand-1"}
		s.FinalRejected = true
		s.Resumes = []domain.Resume{{Status: domain.ResumeStatusRejected}}
		assert.Equal(t, domain.FinalStatusHired, usecase.Derive(s))
	})

	t.Run("Should derive REJECTED from a rejected resume", func(t *testing.T) {
		s := baseSnapshot(domain.GenderMale)
		s.Resumes = []domain.Resume{{Status: domain.ResumeStatusRejected}}
		assert.Equal(t, domain.FinalStatusRejected, usecase.Derive(s))
	})

	t.Run("Should derive REJECTED from a failed interview", func(t *testing.T) {
		s := baseSnapshot(domain.GenderMale)
		s.Interviews = []domain.Interview{{Status: domain.InterviewStatusCompleted, Result: domain.InterviewResultFailure}}
		assert.Equal(t, domain.FinalStatusRejected, usecase.Derive(s))
	})

	t.Run("Should derive REJECTED from a terminal track rejection", func(t *testing.T) {
		s := baseSnapshot(domain.GenderMale)
		s.FinalRejected = true
		assert.Equal(t, domain.FinalStatusRejected, usecase.Derive(s))
	})

	t.Run("Should let a later accepted resume outrank an earlier rejection", func(t *testing.T) {
		s := baseSnapshot(domain.GenderMale)
		s.Resumes = []domain.Resume{
			{Status: domain.ResumeStatusRejected},
			{Status: domain.ResumeStatusAccepted},
		}
		assert.Equal(t, domain.FinalStatusAwaitingInterview, usecase.Derive(s))
	})

	t.Run("Should not count a cancelled interview either way", func(t *testing.T) {
		s := baseSnapshot(domain.GenderMale)
		s.Interviews = []domain.Interview{{Status: domain.InterviewStatusCancelled, Result: domain.InterviewResultPending}}
		assert.Equal(t, domain.FinalStatusInProgress, usecase.Derive(s))
	})
}

func TestDeriveQuotaByGender(t *testing.T) {
	t.Run("Should require all nine slots for a male candidate", func(t *testing.T) {
		s := baseSnapshot(domain.GenderMale)
		// The female set of eight misses the military ID
		s.Documents = acceptedDocs(domain.GenderFemale)
		s.Interviews = []domain.Interview{{Status: domain.InterviewStatusCompleted, Result: domain.InterviewResultSuccess}}
		assert.Equal(t, domain.FinalStatusAwaitingDocuments, usecase.Derive(s))
	})

	t.Run("Should satisfy a female candidate with eight slots", func(t *testing.T) {
		s := baseSnapshot(domain.GenderFemale)
		s.Documents = acceptedDocs(domain.GenderFemale)
		assert.Equal(t, domain.FinalStatusAwaitingConfirmation, usecase.Derive(s))
	})

	t.Run("Should not count pending or rejected documents toward the quota", func(t *testing.T) {
		s := baseSnapshot(domain.GenderFemale)
		s.Documents = acceptedDocs(domain.GenderFemale)
		s.Documents[0].Status = domain.DocumentStatusPending
		assert.Equal(t, domain.FinalStatusInProgress, usecase.Derive(s))
	})

	t.Run("Should ignore the optional recommendation letter", func(t *testing.T) {
		s := baseSnapshot(domain.GenderFemale)
		s.Documents = append(acceptedDocs(domain.GenderFemale)[1:],
			domain.Document{Slot: domain.SlotRecommendationLetter, Status: domain.DocumentStatusAccepted})
		// Passport missing; the letter cannot stand in for it
		assert.NotEqual(t, domain.FinalStatusAwaitingConfirmation, usecase.Derive(s))
	})
}

func TestConfirmHire(t *testing.T) {
	ctx := context.Background()
	hireDate := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Should refuse when the candidate is not awaiting confirmation", func(t *testing.T) {
		pipelineRepo := new(MockPipelineRepo)
		uc := usecase.NewPipelineUsecase(pipelineRepo, &RecordingEmitter{})

		pipelineRepo.On("Snapshot", ctx, "cand-1", domain.TrackJob).Return(baseSnapshot(domain.GenderMale), nil)

		_, err := uc.ConfirmHire(ctx, "cand-1", domain.TrackJob, hireDate, "")
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
		pipelineRepo.AssertNotCalled(t, "CreateEmployee", mock.Anything, mock.Anything)
	})

	t.Run("Should hire with the default message and formatted date", func(t *testing.T) {
		pipelineRepo := new(MockPipelineRepo)
		emitter := &RecordingEmitter{}
		uc := usecase.NewPipelineUsecase(pipelineRepo, emitter)

		s := baseSnapshot(domain.GenderFemale)
		s.Documents = acceptedDocs(domain.GenderFemale)
		pipelineRepo.On("Snapshot", ctx, "cand-1", domain.TrackJob).Return(s, nil)
		pipelineRepo.On("CreateEmployee", ctx, mock.AnythingOfType("*domain.Employee")).Return(nil)

		employee, err := uc.ConfirmHire(ctx, "cand-1", domain.TrackJob, hireDate, "")
		assert.NoError(t, err)
		assert.Equal(t, "cand-1", employee.CandidateID)
		assert.Contains(t, employee.Message, "2026-10-01")

		assert.Len(t, emitter.Events, 1)
		assert.Equal(t, domain.NotificationHire, emitter.Events[0].Type)
		assert.Equal(t, employee.Message, emitter.Events[0].Message)
	})

	t.Run("Should expand the hire date placeholder in a custom message", func(t *testing.T) {
		pipelineRepo := new(MockPipelineRepo)
		uc := usecase.NewPipelineUsecase(pipelineRepo, &RecordingEmitter{})

		s := baseSnapshot(domain.GenderFemale)
		s.Documents = acceptedDocs(domain.GenderFemale)
		pipelineRepo.On("Snapshot", ctx, "cand-1", domain.TrackJob).Return(s, nil)
		pipelineRepo.On("CreateEmployee", ctx, mock.AnythingOfType("*domain.Employee")).Return(nil)

		employee, err := uc.ConfirmHire(ctx, "cand-1", domain.TrackJob, hireDate, "See you on {hireDate}!")
		assert.NoError(t, err)
		assert.Equal(t, "See you on 2026-10-01!", employee.Message)
	})

	t.Run("Should map a duplicate hire to a conflict", func(t *testing.T) {
		pipelineRepo := new(MockPipelineRepo)
		uc := usecase.NewPipelineUsecase(pipelineRepo, &RecordingEmitter{})

		s := baseSnapshot(domain.GenderFemale)
		s.Documents = acceptedDocs(domain.GenderFemale)
		pipelineRepo.On("Snapshot", ctx, "cand-1", domain.TrackJob).Return(s, nil)
		pipelineRepo.On("CreateEmployee", ctx, mock.AnythingOfType("*domain.Employee")).Return(domain.ErrAlreadyHired)

		_, err := uc.ConfirmHire(ctx, "cand-1", domain.TrackJob, hireDate, "")
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})
}

func TestRejectFinal(t *testing.T) {
	ctx := context.Background()

	t.Run("Should notify on the first rejection only", func(t *testing.T) {
		pipelineRepo := new(MockPipelineRepo)
		emitter := &RecordingEmitter{}
		uc := usecase.NewPipelineUsecase(pipelineRepo, emitter)

		pipelineRepo.On("SetTrackRejection", ctx, "cand-1", domain.TrackJob, "mod-1").Return(true, nil).Once()
		pipelineRepo.On("SetTrackRejection", ctx, "cand-1", domain.TrackJob, "mod-1").Return(false, nil)

		assert.NoError(t, uc.RejectFinal(ctx, "mod-1", "cand-1", domain.TrackJob))
		assert.NoError(t, uc.RejectFinal(ctx, "mod-1", "cand-1", domain.TrackJob))

		assert.Len(t, emitter.Events, 1)
		assert.Equal(t, domain.NotificationHire, emitter.Events[0].Type)
	})

	t.Run("Should surface an unknown candidate", func(t *testing.T) {
		pipelineRepo := new(MockPipelineRepo)
		uc := usecase.NewPipelineUsecase(pipelineRepo, &RecordingEmitter{})

		pipelineRepo.On("SetTrackRejection", ctx, "ghost", domain.TrackJob, "mod-1").Return(false, domain.ErrNotFound)

		err := uc.RejectFinal(ctx, "mod-1", "ghost", domain.TrackJob)
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestDeriveFinalStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse an unknown track", func(t *testing.T) {
		uc := usecase.NewPipelineUsecase(new(MockPipelineRepo), &RecordingEmitter{})
		_, err := uc.DeriveFinalStatus(ctx, "cand-1", "INTERNSHIP")
		assert.Error(t, err)
	})

	t.Run("Should return the derived status with the snapshot", func(t *testing.T) {
		pipelineRepo := new(MockPipelineRepo)
		uc := usecase.NewPipelineUsecase(pipelineRepo, &RecordingEmitter{})

		s := baseSnapshot(domain.GenderMale)
		s.Resumes = []domain.Resume{{Status: domain.ResumeStatusAccepted}}
		pipelineRepo.On("Snapshot", ctx, "cand-1", domain.TrackJob).Return(s, nil)

		status, err := uc.DeriveFinalStatus(ctx, "cand-1", domain.TrackJob)
		assert.NoError(t, err)
		assert.Equal(t, domain.FinalStatusAwaitingInterview, status.Status)
		assert.Equal(t, domain.TrackJob, status.Track)
		assert.NotNil(t, status.Snapshot)
	})

	t.Run("Should map an unknown candidate to not found", func(t *testing.T) {
		pipelineRepo := new(MockPipelineRepo)
		uc := usecase.NewPipelineUsecase(pipelineRepo, &RecordingEmitter{})

		pipelineRepo.On("Snapshot", ctx, "ghost", domain.TrackJob).Return(nil, domain.ErrNotFound)

		_, err := uc.DeriveFinalStatus(ctx, "ghost", domain.TrackJob)
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}
