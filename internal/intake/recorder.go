package intake

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"sellerverify/internal/model"
	"sellerverify/internal/repository"
)

// Recorder stores each submission through a SubmissionRepository so reviewers can pick it up.
type Recorder struct {
	repo repository.SubmissionRepository
	log  *zap.Logger
}

// NewRecorder returns a repository-backed intake.
func NewRecorder(repo repository.SubmissionRepository, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{repo: repo, log: log}
}

var _ ReviewIntake = (*Recorder)(nil)

func (r *Recorder) Submit(ctx context.Context, s *model.Submission) error {
	if err := r.repo.Create(ctx, s); err != nil {
		cerr := classify(err)
		r.log.Error("submission intake failed",
			zap.String("component", "intake"),
			zap.String("event", "submission_failed"),
			zap.String("submission_id", s.ID),
			zap.Bool("retryable", IsRetryable(cerr)),
			zap.Error(err),
		)
		return cerr
	}
	r.log.Info("submission recorded",
		zap.String("component", "intake"),
		zap.String("event", "submission_recorded"),
		zap.String("submission_id", s.ID),
		zap.String("session_id", s.SessionID),
		zap.Int("documents", len(s.Documents)),
	)
	return nil
}

// classify maps storage errors onto ErrUnauthorized or ErrUnavailable.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "42501" || strings.HasPrefix(pgErr.Code, "28"):
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "53"), strings.HasPrefix(pgErr.Code, "57"):
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("record submission: %w", err)
}
