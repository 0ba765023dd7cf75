package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"sellerverify/internal/model"
	"sellerverify/internal/repository"
)

// SubmissionPostgres is a PostgreSQL implementation of repository.SubmissionRepository.
type SubmissionPostgres struct {
	db *sql.DB
}

// NewSubmissionPostgres creates a new SubmissionPostgres repository.
func NewSubmissionPostgres(db *sql.DB) *SubmissionPostgres {
	return &SubmissionPostgres{db: db}
}

var _ repository.SubmissionRepository = (*SubmissionPostgres)(nil)

// Create inserts the submission row followed by one row per document.
func (r *SubmissionPostgres) Create(ctx context.Context, s *model.Submission) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const qSubmission = `
		INSERT INTO submissions (id, session_id, seller_id, submitted_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.ExecContext(ctx, qSubmission, s.ID, s.SessionID, s.SellerID, s.SubmittedAt); err != nil {
		return err
	}

	const qDocument = `
		INSERT INTO submission_documents (submission_id, document_id, file_name)
		VALUES ($1, $2, $3)
	`
	for _, d := range s.Documents {
		if _, err := tx.ExecContext(ctx, qDocument, s.ID, d.DocumentID, d.FileName); err != nil {
			return err
		}
	}

	return tx.Commit()
}
