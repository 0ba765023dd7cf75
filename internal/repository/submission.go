package repository

import (
	"context"

	"sellerverify/internal/model"
)

// SubmissionRepository persists verification submissions handed to review.
// Strictly persistence; classification of failures happens in the intake layer.
type SubmissionRepository interface {
	// Create stores the submission and its document references in one transaction.
	Create(ctx context.Context, s *model.Submission) error
}
