// Package intake hands submitted verification requests to the review pipeline.
package intake

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"sellerverify/internal/model"
)

var (
	// ErrUnavailable marks transient failures (network, database down). The seller may resubmit.
	ErrUnavailable = errors.New("review intake unavailable")
	// ErrUnauthorized marks a refused submission. Resubmitting will not help.
	ErrUnauthorized = errors.New("review intake refused submission")
)

// IsRetryable reports whether a failed submission may succeed if sent again.
func IsRetryable(err error) bool {
	return err != nil && !errors.Is(err, ErrUnauthorized)
}

// ReviewIntake accepts a verification request for review.
type ReviewIntake interface {
	Submit(ctx context.Context, s *model.Submission) error
}

// Simulated accepts every submission without contacting a backend.
type Simulated struct {
	log *zap.Logger
}

// NewSimulated returns an intake that only logs submissions.
func NewSimulated(log *zap.Logger) *Simulated {
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulated{log: log}
}

var _ ReviewIntake = (*Simulated)(nil)

func (s *Simulated) Submit(ctx context.Context, sub *model.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info("verification submitted",
		zap.String("component", "intake"),
		zap.String("event", "submission_simulated"),
		zap.String("submission_id", sub.ID),
		zap.String("session_id", sub.SessionID),
		zap.Int("documents", len(sub.Documents)),
	)
	return nil
}
