package usecase

import (
	"context"
	"fmt"
	"strings"

	"go-hiring-pipeline/internal/domain"
	"go-hiring-pipeline/pkg/apperror"
)

type documentUsecase struct {
	documentRepo  domain.DocumentRepository
	interviewRepo domain.InterviewRepository
	candidateRepo domain.CandidateRepository
	storage       domain.FileStorage
	notifier      domain.NotificationEmitter
}

// NewDocumentUsecase creates a new document usecase
func NewDocumentUsecase(
	documentRepo domain.DocumentRepository,
	interviewRepo domain.InterviewRepository,
	candidateRepo domain.CandidateRepository,
	storage domain.FileStorage,
	notifier domain.NotificationEmitter,
) domain.DocumentUsecase {
	return &documentUsecase{
		documentRepo:  documentRepo,
		interviewRepo: interviewRepo,
		candidateRepo: candidateRepo,
		storage:       storage,
		notifier:      notifier,
	}
}

// IsUnlocked reports whether the candidate passed an interview for the track
func (uc *documentUsecase) IsUnlocked(ctx context.Context, candidateID, track string) (bool, error) {
	unlocked, err := uc.interviewRepo.HasSuccessful(ctx, candidateID, track)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return unlocked, nil
}

// Upload stores the blob and binds it to the slot. An empty slot gets a new
// document; a REJECTED slot has its document reset to PENDING with the new
// file, keeping the same record identity; any other occupied slot is an
// error.
func (uc *documentUsecase) Upload(ctx context.Context, candidateID, track, slot string, upload domain.DocumentUpload) (*domain.Document, error) {
	if !domain.IsKnownSlot(slot) {
		return nil, apperror.Validation("Unknown document slot")
	}
	if track != domain.TrackJob && track != domain.TrackPractice {
		return nil, apperror.Validation("Track must be JOB or PRACTICE")
	}

	unlocked, err := uc.IsUnlocked(ctx, candidateID, track)
	if err != nil {
		return nil, err
	}
	if !unlocked {
		return nil, apperror.Forbidden("Documents are locked until you pass an interview for this track")
	}

	existing, err := uc.documentRepo.GetByCandidateSlot(ctx, candidateID, slot)
	if err != nil && err != domain.ErrNotFound {
		return nil, apperror.Internal(err)
	}
	if existing != nil && existing.Status != domain.DocumentStatusRejected {
		return nil, apperror.State("This slot already holds a document that is accepted or awaiting review")
	}

	fileRef, err := uc.storage.Store(ctx, upload.FileName, upload.ContentType, upload.Body)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if existing == nil {
		doc := &domain.Document{
			CandidateID: candidateID,
			Slot:        slot,
			FileRef:     fileRef,
			Status:      domain.DocumentStatusPending,
		}
		audit := &domain.DocumentAudit{Action: domain.AuditActionUploaded, ActorID: candidateID}
		if err := uc.documentRepo.Create(ctx, doc, audit); err != nil {
			return nil, apperror.Internal(err)
		}
		return doc, nil
	}

	existing.FileRef = fileRef
	existing.Status = domain.DocumentStatusPending
	existing.Comment = nil
	audit := &domain.DocumentAudit{
		DocumentID: existing.ID,
		Action:     domain.AuditActionReuploaded,
		ActorID:    candidateID,
	}
	if err := uc.documentRepo.ReplaceFile(ctx, existing, audit); err != nil {
		return nil, apperror.Internal(err)
	}
	return existing, nil
}

// buildSlotViews projects documents onto the full catalog so empty slots are
// visible too
func buildSlotViews(gender string, documents []domain.Document) []domain.SlotView {
	required := map[string]bool{}
	for _, slot := range domain.RequiredSlots(gender) {
		required[slot.ID] = true
	}

	bySlot := map[string]*domain.Document{}
	for i := range documents {
		bySlot[documents[i].Slot] = &documents[i]
	}

	views := make([]domain.SlotView, 0, len(domain.SlotCatalog))
	for _, slot := range domain.SlotCatalog {
		views = append(views, domain.SlotView{
			Slot:     slot,
			Required: required[slot.ID],
			Document: bySlot[slot.ID],
		})
	}
	return views
}

// ListMine returns the candidate's slot-by-slot document state
func (uc *documentUsecase) ListMine(ctx context.Context, candidate *domain.Candidate) ([]domain.SlotView, error) {
	documents, err := uc.documentRepo.ListByCandidate(ctx, candidate.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return buildSlotViews(candidate.Gender, documents), nil
}

// ResolveFile returns a download URL for a stored document. An empty
// requesterID skips the ownership check (moderator access, enforced by the
// handler's role check).
func (uc *documentUsecase) ResolveFile(ctx context.Context, requesterID string, documentID int64) (string, error) {
	doc, err := uc.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return "", apperror.NotFound("Document not found")
	}
	if requesterID != "" && doc.CandidateID != requesterID {
		return "", apperror.Forbidden("You can only download your own documents")
	}

	url, err := uc.storage.Resolve(ctx, doc.FileRef)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return url, nil
}

// Review records the moderator verdict on a document. Rejecting an already
// REJECTED document without an intervening re-upload is refused.
func (uc *documentUsecase) Review(ctx context.Context, moderatorID string, documentID int64, status, comment string) (*domain.Document, error) {
	if status != domain.DocumentStatusAccepted && status != domain.DocumentStatusRejected {
		return nil, apperror.Validation("Status must be ACCEPTED or REJECTED")
	}

	doc, err := uc.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, apperror.NotFound("Document not found")
	}

	if status == domain.DocumentStatusRejected {
		if strings.TrimSpace(comment) == "" {
			return nil, apperror.ValidationFields("Invalid review", map[string]string{
				"Comment": "A comment is required when rejecting a document",
			})
		}
		if doc.Status == domain.DocumentStatusRejected {
			return nil, apperror.Validation("Document is already rejected; wait for the candidate to upload a new file")
		}
	}

	var commentPtr *string
	if strings.TrimSpace(comment) != "" {
		trimmed := strings.TrimSpace(comment)
		commentPtr = &trimmed
	}

	audit := &domain.DocumentAudit{
		DocumentID: documentID,
		Action:     status,
		ActorID:    moderatorID,
		Comment:    commentPtr,
	}
	if err := uc.documentRepo.UpdateStatus(ctx, documentID, status, commentPtr, audit); err != nil {
		return nil, apperror.Internal(err)
	}

	doc.Status = status
	doc.Comment = commentPtr

	message := fmt.Sprintf("Your document %q has been accepted.", domain.SlotName(doc.Slot))
	if status == domain.DocumentStatusRejected {
		message = fmt.Sprintf("Your document %q has been rejected. Reason: %s. Please upload a corrected file.",
			domain.SlotName(doc.Slot), strings.TrimSpace(comment))
	}
	uc.notifier.Emit(ctx, doc.CandidateID, domain.NotificationDocument, message)

	return doc, nil
}

// ListForCandidate returns the slot-by-slot state for moderator review
func (uc *documentUsecase) ListForCandidate(ctx context.Context, candidateID string) ([]domain.SlotView, error) {
	candidate, err := uc.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, apperror.NotFound("Candidate not found")
	}
	documents, err := uc.documentRepo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return buildSlotViews(candidate.Gender, documents), nil
}

// ListAudit returns the append-only status history of a document
func (uc *documentUsecase) ListAudit(ctx context.Context, documentID int64) ([]domain.DocumentAudit, error) {
	if _, err := uc.documentRepo.GetByID(ctx, documentID); err != nil {
		return nil, apperror.NotFound("Document not found")
	}
	entries, err := uc.documentRepo.ListAudit(ctx, documentID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return entries, nil
}

// NotifyMissing reminds the candidate which required slots still have no
// upload at all. Informational no-op when nothing is missing.
func (uc *documentUsecase) NotifyMissing(ctx context.Context, candidateID, track string) (*domain.MissingReport, error) {
	candidate, err := uc.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, apperror.NotFound("Candidate not found")
	}

	documents, err := uc.documentRepo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	missing := domain.MissingSlots(candidate.Gender, documents)
	if len(missing) == 0 {
		return &domain.MissingReport{Notified: false}, nil
	}

	names := make([]string, 0, len(missing))
	for _, slot := range missing {
		names = append(names, slot.Name)
	}
	uc.notifier.Emit(ctx, candidateID, domain.NotificationDocument,
		fmt.Sprintf("Your %s application is missing the following documents: %s.",
			track, strings.Join(names, ", ")))

	return &domain.MissingReport{Missing: missing, Notified: true}, nil
}
