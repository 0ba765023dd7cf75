package model

import "time"

// Submission is a verification request handed to the review intake.
// It carries document references and file names only; no file content and no score.
type Submission struct {
	ID          string              `json:"id"`
	SessionID   string              `json:"session_id"`
	SellerID    string              `json:"seller_id"`
	Documents   []SubmittedDocument `json:"documents"`
	SubmittedAt time.Time           `json:"submitted_at"`
}

// SubmittedDocument references one uploaded checklist entry.
type SubmittedDocument struct {
	DocumentID string `json:"document_id"`
	FileName   string `json:"file_name"`
}
