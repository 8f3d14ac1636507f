package usecase_test

import (
	"context"
	"strings"
	"testing"

	"go-hiring-pipeline/internal/domain"
	"go-hiring-pipeline/internal/usecase"
	"go-hiring-pipeline/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func upload() domain.DocumentUpload {
	return domain.DocumentUpload{
		FileName:    "passport.pdf",
		ContentType: "application/pdf",
		Body:        strings.NewReader("binary"),
	}
}

func TestDocumentUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse an unknown slot", func(t *testing.T) {
		uc := usecase.NewDocumentUsecase(new(MockDocumentRepo), new(MockInterviewRepo), new(MockCandidateRepo), &FakeStorage{}, &RecordingEmitter{})

		_, err := uc.Upload(ctx, "cand-1", domain.TrackJob, "DRIVING_LICENSE", upload())
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("Should keep documents locked before a passed interview", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		storage := &FakeStorage{}
		uc := usecase.NewDocumentUsecase(new(MockDocumentRepo), interviewRepo, new(MockCandidateRepo), storage, &RecordingEmitter{})

		interviewRepo.On("HasSuccessful", ctx, "cand-1", domain.TrackJob).Return(false, nil)

		_, err := uc.Upload(ctx, "cand-1", domain.TrackJob, domain.SlotPassport, upload())
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
		assert.Zero(t, storage.Refs)
	})

	t.Run("Should refuse uploading into an occupied pending slot", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		documentRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(documentRepo, interviewRepo, new(MockCandidateRepo), &FakeStorage{}, &RecordingEmitter{})

		interviewRepo.On("HasSuccessful", ctx, "cand-1", domain.TrackJob).Return(true, nil)
		documentRepo.On("GetByCandidateSlot", ctx, "cand-1", domain.SlotPassport).Return(&domain.Document{
			ID: 1, CandidateID: "cand-1", Slot: domain.SlotPassport, Status: domain.DocumentStatusPending,
		}, nil)

		_, err := uc.Upload(ctx, "cand-1", domain.TrackJob, domain.SlotPassport, upload())
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})

	t.Run("Should create a new document in an empty slot", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		documentRepo := new(MockDocumentRepo)
		storage := &FakeStorage{}
		uc := usecase.NewDocumentUsecase(documentRepo, interviewRepo, new(MockCandidateRepo), storage, &RecordingEmitter{})

		interviewRepo.On("HasSuccessful", ctx, "cand-1", domain.TrackJob).Return(true, nil)
		documentRepo.On("GetByCandidateSlot", ctx, "cand-1", domain.SlotPassport).Return(nil, domain.ErrNotFound)
		documentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Document"), mock.AnythingOfType("*domain.DocumentAudit")).
			Return(nil).Run(func(args mock.Arguments) {
			audit := args.Get(2).(*domain.DocumentAudit)
			assert.Equal(t, domain.AuditActionUploaded, audit.Action)
			assert.Equal(t, "cand-1", audit.ActorID)
		})

		doc, err := uc.Upload(ctx, "cand-1", domain.TrackJob, domain.SlotPassport, upload())
		assert.NoError(t, err)
		assert.Equal(t, domain.DocumentStatusPending, doc.Status)
		assert.Equal(t, "blob-ref", doc.FileRef)
		assert.Equal(t, "passport.pdf", storage.StoredName)
	})

	t.Run("Should replace the file of a rejected slot keeping its identity", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		documentRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(documentRepo, interviewRepo, new(MockCandidateRepo), &FakeStorage{}, &RecordingEmitter{})

		comment := "Blurry scan"
		interviewRepo.On("HasSuccessful", ctx, "cand-1", domain.TrackJob).Return(true, nil)
		documentRepo.On("GetByCandidateSlot", ctx, "cand-1", domain.SlotPassport).Return(&domain.Document{
			ID: 42, CandidateID: "cand-1", Slot: domain.SlotPassport,
			Status: domain.DocumentStatusRejected, Comment: &comment, FileRef: "old-ref",
		}, nil)
		documentRepo.On("ReplaceFile", ctx, mock.AnythingOfType("*domain.Document"), mock.AnythingOfType("*domain.DocumentAudit")).
			Return(nil).Run(func(args mock.Arguments) {
			audit := args.Get(2).(*domain.DocumentAudit)
			assert.Equal(t, domain.AuditActionReuploaded, audit.Action)
			assert.Equal(t, int64(42), audit.DocumentID)
		})

		doc, err := uc.Upload(ctx, "cand-1", domain.TrackJob, domain.SlotPassport, upload())
		assert.NoError(t, err)
		assert.Equal(t, int64(42), doc.ID)
		assert.Equal(t, domain.DocumentStatusPending, doc.Status)
		assert.Equal(t, "blob-ref", doc.FileRef)
		assert.Nil(t, doc.Comment)
		documentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDocumentReview(t *testing.T) {
	ctx := context.Background()

	pending := func() *domain.Document {
		return &domain.Document{
			ID: 5, CandidateID: "cand-1", Slot: domain.SlotPhoto, Status: domain.DocumentStatusPending,
		}
	}

	t.Run("Should require a comment when rejecting", func(t *testing.T) {
		documentRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(documentRepo, new(MockInterviewRepo), new(MockCandidateRepo), &FakeStorage{}, &RecordingEmitter{})

		documentRepo.On("GetByID", ctx, int64(5)).Return(pending(), nil)

		_, err := uc.Review(ctx, "mod-1", 5, domain.DocumentStatusRejected, " ")
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Fields, "Comment")
	})

	t.Run("Should refuse re-rejecting without a new upload", func(t *testing.T) {
		documentRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(documentRepo, new(MockInterviewRepo), new(MockCandidateRepo), &FakeStorage{}, &RecordingEmitter{})

		doc := pending()
		doc.Status = domain.DocumentStatusRejected
		documentRepo.On("GetByID", ctx, int64(5)).Return(doc, nil)

		_, err := uc.Review(ctx, "mod-1", 5, domain.DocumentStatusRejected, "Still blurry")
		assert.Error(t, err)
		documentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should accept and notify the candidate", func(t *testing.T) {
		documentRepo := new(MockDocumentRepo)
		emitter := &RecordingEmitter{}
		uc := usecase.NewDocumentUsecase(documentRepo, new(MockInterviewRepo), new(MockCandidateRepo), &FakeStorage{}, emitter)

		documentRepo.On("GetByID", ctx, int64(5)).Return(pending(), nil)
		documentRepo.On("UpdateStatus", ctx, int64(5), domain.DocumentStatusAccepted, (*string)(nil), mock.AnythingOfType("*domain.DocumentAudit")).Return(nil)

		doc, err := uc.Review(ctx, "mod-1", 5, domain.DocumentStatusAccepted, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.DocumentStatusAccepted, doc.Status)

		assert.Len(t, emitter.Events, 1)
		assert.Equal(t, domain.NotificationDocument, emitter.Events[0].Type)
		assert.Equal(t, "cand-1", emitter.Events[0].RecipientID)
		assert.Contains(t, emitter.Events[0].Message, "accepted")
	})

	t.Run("Should reject with reason in the notification", func(t *testing.T) {
		documentRepo := new(MockDocumentRepo)
		emitter := &RecordingEmitter{}
		uc := usecase.NewDocumentUsecase(documentRepo, new(MockInterviewRepo), new(MockCandidateRepo), &FakeStorage{}, emitter)

		documentRepo.On("GetByID", ctx, int64(5)).Return(pending(), nil)
		documentRepo.On("UpdateStatus", ctx, int64(5), domain.DocumentStatusRejected, mock.AnythingOfType("*string"), mock.AnythingOfType("*domain.DocumentAudit")).Return(nil)

		doc, err := uc.Review(ctx, "mod-1", 5, domain.DocumentStatusRejected, "Wrong format")
		assert.NoError(t, err)
		assert.Equal(t, domain.DocumentStatusRejected, doc.Status)
		assert.Contains(t, emitter.Last().Message, "Wrong format")
	})
}

func TestDocumentListMine(t *testing.T) {
	ctx := context.Background()

	t.Run("Should project documents onto the full catalog", func(t *testing.T) {
		documentRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(documentRepo, new(MockInterviewRepo), new(MockCandidateRepo), &FakeStorage{}, &RecordingEmitter{})

		documentRepo.On("ListByCandidate", ctx, "cand-1").Return([]domain.Document{
			{ID: 1, CandidateID: "cand-1", Slot: domain.SlotPassport, Status: domain.DocumentStatusAccepted},
		}, nil)

		views, err := uc.ListMine(ctx, &domain.Candidate{ID: "cand-1", Gender: domain.GenderFemale})
		assert.NoError(t, err)
		assert.Len(t, views, len(domain.SlotCatalog))

		byID := map[string]domain.SlotView{}
		for _, v := range views {
			byID[v.Slot.ID] = v
		}
		assert.NotNil(t, byID[domain.SlotPassport].Document)
		assert.True(t, byID[domain.SlotPassport].Required)
		assert.Nil(t, byID[domain.SlotPhoto].Document)
		// Female candidates do not owe a military ID; the letter is optional
		assert.False(t, byID[domain.SlotMilitaryID].Required)
		assert.False(t, byID[domain.SlotRecommendationLetter].Required)
	})
}

func TestDocumentResolveFile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse resolving another candidate's document", func(t *testing.T) {
		documentRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(documentRepo, new(MockInterviewRepo), new(MockCandidateRepo), &FakeStorage{}, &RecordingEmitter{})

		documentRepo.On("GetByID", ctx, int64(5)).Return(&domain.Document{
			ID: 5, CandidateID: "someone-else", FileRef: "ref",
		}, nil)

		_, err := uc.ResolveFile(ctx, "cand-1", 5)
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("Should bypass ownership for moderator access", func(t *testing.T) {
		documentRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(documentRepo, new(MockInterviewRepo), new(MockCandidateRepo), &FakeStorage{}, &RecordingEmitter{})

		documentRepo.On("GetByID", ctx, int64(5)).Return(&domain.Document{
			ID: 5, CandidateID: "someone-else", FileRef: "ref",
		}, nil)

		url, err := uc.ResolveFile(ctx, "", 5)
		assert.NoError(t, err)
		assert.Equal(t, "https://files.example.com/ref", url)
	})
}

func TestDocumentNotifyMissing(t *testing.T) {
	ctx := context.Background()

	t.Run("Should list missing required slots and notify", func(t *testing.T) {
		documentRepo := new(MockDocumentRepo)
		candidateRepo := new(MockCandidateRepo)
		emitter := &RecordingEmitter{}
		uc := usecase.NewDocumentUsecase(documentRepo, new(MockInterviewRepo), candidateRepo, &FakeStorage{}, emitter)

		candidateRepo.On("GetByID", ctx, "cand-1").Return(&domain.Candidate{ID: "cand-1", Gender: domain.GenderFemale}, nil)
		documentRepo.On("ListByCandidate", ctx, "cand-1").Return([]domain.Document{
			{Slot: domain.SlotPassport, Status: domain.DocumentStatusPending},
		}, nil)

		report, err := uc.NotifyMissing(ctx, "cand-1", domain.TrackJob)
		assert.NoError(t, err)
		assert.True(t, report.Notified)
		// 8 required for FEMALE, one present in any status
		assert.Len(t, report.Missing, 7)
		assert.Len(t, emitter.Events, 1)
		assert.Contains(t, emitter.Events[0].Message, "missing the following documents")
	})

	t.Run("Should be a silent no-op when nothing is missing", func(t *testing.T) {
		documentRepo := new(MockDocumentRepo)
		candidateRepo := new(MockCandidateRepo)
		emitter := &RecordingEmitter{}
		uc := usecase.NewDocumentUsecase(documentRepo, new(MockInterviewRepo), candidateRepo, &FakeStorage{}, emitter)

		var docs []domain.Document
		for _, slot := range domain.RequiredSlots(domain.GenderMale) {
			docs = append(docs, domain.Document{Slot: slot.ID, Status: domain.DocumentStatusPending})
		}
		candidateRepo.On("GetByID", ctx, "cand-1").Return(&domain.Candidate{ID: "cand-1", Gender: domain.GenderMale}, nil)
		documentRepo.On("ListByCandidate", ctx, "cand-1").Return(docs, nil)

		report, err := uc.NotifyMissing(ctx, "cand-1", domain.TrackJob)
		assert.NoError(t, err)
		assert.False(t, report.Notified)
		assert.Empty(t, report.Missing)
		assert.Empty(t, emitter.Events)
	})
}
