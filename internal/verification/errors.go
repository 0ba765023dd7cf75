package verification

import (
	"errors"
	"strings"
)

var (
	ErrFileRequired        = errors.New("file is required")
	ErrUnknownDocument     = errors.New("unknown document")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrMissingRequired     = errors.New("required documents missing")
	ErrSubmitDisabled      = errors.New("submission is disabled")
	ErrClosed              = errors.New("verification form is closed")
)

// MissingDocumentsError lists the required documents that were not uploaded at submit time.
type MissingDocumentsError struct {
	DocumentIDs []string
}

func (e *MissingDocumentsError) Error() string {
	return ErrMissingRequired.Error() + ": " + strings.Join(e.DocumentIDs, ", ")
}

func (e *MissingDocumentsError) Unwrap() error {
	return ErrMissingRequired
}
