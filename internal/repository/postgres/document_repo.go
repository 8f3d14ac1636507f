package postgres

import (
	"context"
	"time"

	"go-hiring-pipeline/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type documentRepo struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) domain.DocumentRepository {
	return &documentRepo{db: db}
}

// GetByID retrieves a document by ID
func (r *documentRepo) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	query := `
		SELECT id, candidate_id, slot, file_ref, status, comment, uploaded_at, updated_at
		FROM documents
		WHERE id = $1`

	return scanDocument(r.db.QueryRow(ctx, query, id))
}

// GetByCandidateSlot retrieves the single document occupying a slot
func (r *documentRepo) GetByCandidateSlot(ctx context.Context, candidateID, slot string) (*domain.Document, error) {
	query := `
		SELECT id, candidate_id, slot, file_ref, status, comment, uploaded_at, updated_at
		FROM documents
		WHERE candidate_id = $1 AND slot = $2`

	return scanDocument(r.db.QueryRow(ctx, query, candidateID, slot))
}

// Create inserts a document into an empty slot and appends the audit entry
// atomically
func (r *documentRepo) Create(ctx context.Context, doc *domain.Document, audit *domain.DocumentAudit) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	doc.UploadedAt = now
	doc.UpdatedAt = now

	query := `
		INSERT INTO documents (candidate_id, slot, file_ref, status, uploaded_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err = tx.QueryRow(ctx, query,
		doc.CandidateID, doc.Slot, doc.FileRef, doc.Status, doc.UploadedAt, doc.UpdatedAt,
	).Scan(&doc.ID)
	if err != nil {
		return err
	}

	audit.DocumentID = doc.ID
	if err := insertAudit(ctx, tx, audit); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ReplaceFile overwrites the file of an existing document, keeping its
// identity, and appends the audit entry atomically
func (r *documentRepo) ReplaceFile(ctx context.Context, doc *domain.Document, audit *domain.DocumentAudit) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	doc.UpdatedAt = time.Now()

	query := `
		UPDATE documents
		SET file_ref = $2, status = $3, comment = NULL, updated_at = $4
		WHERE id = $1`

	res, err := tx.Exec(ctx, query, doc.ID, doc.FileRef, doc.Status, doc.UpdatedAt)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	doc.Comment = nil

	audit.DocumentID = doc.ID
	if err := insertAudit(ctx, tx, audit); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// UpdateStatus records the moderator verdict and appends the audit entry
// atomically
func (r *documentRepo) UpdateStatus(ctx context.Context, id int64, status string, comment *string, audit *domain.DocumentAudit) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE documents SET status = $2, comment = $3, updated_at = $4 WHERE id = $1`
	res, err := tx.Exec(ctx, query, id, status, comment, time.Now())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	audit.DocumentID = id
	if err := insertAudit(ctx, tx, audit); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListByCandidate retrieves all documents of a candidate
func (r *documentRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Document, error) {
	query := `
		SELECT id, candidate_id, slot, file_ref, status, comment, uploaded_at, updated_at
		FROM documents
		WHERE candidate_id = $1
		ORDER BY uploaded_at ASC`

	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []domain.Document
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(
			&doc.ID, &doc.CandidateID, &doc.Slot, &doc.FileRef,
			&doc.Status, &doc.Comment, &doc.UploadedAt, &doc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}
	return documents, rows.Err()
}

// ListAudit retrieves the full history of a document, oldest first
func (r *documentRepo) ListAudit(ctx context.Context, documentID int64) ([]domain.DocumentAudit, error) {
	query := `
		SELECT id, document_id, action, actor_id, comment, created_at
		FROM document_audit
		WHERE document_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.DocumentAudit
	for rows.Next() {
		var entry domain.DocumentAudit
		if err := rows.Scan(
			&entry.ID, &entry.DocumentID, &entry.Action,
			&entry.ActorID, &entry.Comment, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func insertAudit(ctx context.Context, tx pgx.Tx, audit *domain.DocumentAudit) error {
	audit.CreatedAt = time.Now()
	query := `
		INSERT INTO document_audit (document_id, action, actor_id, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return tx.QueryRow(ctx, query,
		audit.DocumentID, audit.Action, audit.ActorID, audit.Comment, audit.CreatedAt,
	).Scan(&audit.ID)
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var doc domain.Document
	err := row.Scan(
		&doc.ID, &doc.CandidateID, &doc.Slot, &doc.FileRef,
		&doc.Status, &doc.Comment, &doc.UploadedAt, &doc.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
