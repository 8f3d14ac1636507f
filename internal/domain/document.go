package domain

import (
	"context"
	"io"
	"time"
)

// Document status constants
const (
	DocumentStatusPending  = "PENDING"
	DocumentStatusAccepted = "ACCEPTED"
	DocumentStatusRejected = "REJECTED"
)

// Audit actions recorded per document status change
const (
	AuditActionUploaded   = "UPLOADED"
	AuditActionReuploaded = "REUPLOADED"
	AuditActionAccepted   = "ACCEPTED"
	AuditActionRejected   = "REJECTED"
)

// Document is the single record a (candidate, slot) pair may hold. A
// re-upload into a REJECTED slot mutates this record in place instead of
// creating a new one; the full history lives in the audit log.
type Document struct {
	ID          int64     `json:"id"`
	CandidateID string    `json:"candidate_id"`
	Slot        string    `json:"slot"`
	FileRef     string    `json:"file_ref"`
	Status      string    `json:"status"`
	Comment     *string   `json:"comment,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DocumentAudit is an append-only, moderator-visible record of every status
// change on a document
type DocumentAudit struct {
	ID         int64     `json:"id"`
	DocumentID int64     `json:"document_id"`
	Action     string    `json:"action"`
	ActorID    string    `json:"actor_id"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SlotView pairs a catalog slot with its current document (nil when empty)
// for candidate-facing listings
type SlotView struct {
	Slot     DocumentSlot `json:"slot"`
	Required bool         `json:"required"`
	Document *Document    `json:"document,omitempty"`
}

// MissingReport is the informational result of a notify-missing sweep
type MissingReport struct {
	Missing  []DocumentSlot `json:"missing"`
	Notified bool           `json:"notified"`
}

// FileStorage is the external blob storage collaborator. The engine persists
// only the returned reference.
type FileStorage interface {
	Store(ctx context.Context, name string, contentType string, body io.Reader) (fileRef string, err error)
	Resolve(ctx context.Context, fileRef string) (url string, err error)
}

// DocumentRepository defines data access methods for documents. Mutations
// that also append an audit entry are atomic.
type DocumentRepository interface {
	GetByID(ctx context.Context, id int64) (*Document, error)
	GetByCandidateSlot(ctx context.Context, candidateID, slot string) (*Document, error)
	Create(ctx context.Context, doc *Document, audit *DocumentAudit) error
	ReplaceFile(ctx context.Context, doc *Document, audit *DocumentAudit) error
	UpdateStatus(ctx context.Context, id int64, status string, comment *string, audit *DocumentAudit) error
	ListByCandidate(ctx context.Context, candidateID string) ([]Document, error)
	ListAudit(ctx context.Context, documentID int64) ([]DocumentAudit, error)
}

// DocumentUpload carries an incoming file for a slot
type DocumentUpload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// DocumentUsecase defines business logic for the document stage
type DocumentUsecase interface {
	// IsUnlocked reports whether the candidate passed an interview for the
	// track and may upload documents
	IsUnlocked(ctx context.Context, candidateID, track string) (bool, error)

	// Candidate operations
	Upload(ctx context.Context, candidateID, track, slot string, upload DocumentUpload) (*Document, error)
	ListMine(ctx context.Context, candidate *Candidate) ([]SlotView, error)
	ResolveFile(ctx context.Context, candidateID string, documentID int64) (string, error)

	// Moderator operations
	Review(ctx context.Context, moderatorID string, documentID int64, status, comment string) (*Document, error)
	ListForCandidate(ctx context.Context, candidateID string) ([]SlotView, error)
	ListAudit(ctx context.Context, documentID int64) ([]DocumentAudit, error)
	NotifyMissing(ctx context.Context, candidateID, track string) (*MissingReport, error)
}
