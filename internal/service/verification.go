package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"sellerverify/internal/config"
	"sellerverify/internal/http/middleware"
	"sellerverify/internal/intake"
	"sellerverify/internal/model"
	"sellerverify/internal/notification"
	"sellerverify/internal/verification"
)

var (
	ErrIDRequired       = errors.New("id is required")
	ErrSellerIDRequired = errors.New("seller id is required")
	ErrSessionNotFound  = errors.New("verification session not found")
	ErrTooManySessions  = errors.New("too many open verification sessions")
)

var tracer = otel.Tracer("sellerverify/internal/service")

// Session is the service-level view of one seller's verification checklist.
type Session struct {
	ID        string    `json:"id"`
	SellerID  string    `json:"seller_id"`
	CreatedAt time.Time `json:"created_at"`
	verification.Snapshot
}

// Picker tells the client which files the picker accepts for a document and where to send the choice.
type Picker struct {
	DocumentID string   `json:"document_id"`
	Accept     []string `json:"accept"`
	UploadPath string   `json:"upload_path"`
}

// VerificationService defines the use cases of the seller verification checklist.
type VerificationService interface {
	// Start opens a new checklist session for the seller.
	Start(ctx context.Context, sellerID string) (*Session, error)

	// Get returns the current state of a session.
	Get(ctx context.Context, id string) (*Session, error)

	// SelectFile opens the file picker for one document of the session.
	SelectFile(ctx context.Context, id, documentID string) (*Picker, error)

	// Upload records the chosen file for a document. Only the file name is used.
	Upload(ctx context.Context, id, documentID, fileName string, size int64) (*verification.Upload, error)

	// Submit starts the review step of the session.
	Submit(ctx context.Context, id string) (*Session, error)

	// Notifications drains the notifications queued for the session.
	Notifications(ctx context.Context, id string) ([]model.Notification, error)

	// Close tears the session down, cancelling its timers.
	Close(ctx context.Context, id string) error

	// Sweep closes sessions idle for longer than the configured TTL and reports how many.
	Sweep(ctx context.Context) int

	// Shutdown closes every open session.
	Shutdown()
}

type session struct {
	id        string
	sellerID  string
	createdAt time.Time
	form      *verification.Form
	feed      *notification.Feed
	picker    *pickerBinding
	// lastSeen is the unix-nano time of the last request that addressed the session.
	lastSeen atomic.Int64
}

func (s *session) view() *Session {
	return &Session{ID: s.id, SellerID: s.sellerID, CreatedAt: s.createdAt, Snapshot: s.form.Snapshot()}
}

// pickerBinding is the file-chooser binding for one session. Opening a picker
// publishes its descriptor, keyed by document, for the HTTP client.
type pickerBinding struct {
	sessionID string

	mu     sync.Mutex
	opened map[string]*Picker
}

func (b *pickerBinding) Open(documentID string, accept []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.opened == nil {
		b.opened = make(map[string]*Picker)
	}
	b.opened[documentID] = &Picker{
		DocumentID: documentID,
		Accept:     append([]string(nil), accept...),
		UploadPath: "/verifications/" + b.sessionID + "/documents/" + documentID,
	}
}

// descriptor returns the descriptor of the last picker opened for documentID.
func (b *pickerBinding) descriptor(documentID string) *Picker {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opened[documentID]
}

// sessionReviewer sends a session's uploaded documents to the review intake.
type sessionReviewer struct {
	sess    *session
	intake  intake.ReviewIntake
	metrics *Metrics
	now     func() time.Time
}

func (r *sessionReviewer) Review(ctx context.Context, docs []model.Document) error {
	ctx, span := tracer.Start(ctx, "verification.review",
		trace.WithAttributes(attribute.String("session.id", r.sess.id), attribute.Int("documents", len(docs))))
	defer span.End()

	sub := &model.Submission{
		ID:          uuid.NewString(),
		SessionID:   r.sess.id,
		SellerID:    r.sess.sellerID,
		SubmittedAt: r.now().UTC(),
	}
	for _, d := range docs {
		sub.Documents = append(sub.Documents, model.SubmittedDocument{DocumentID: d.ID, FileName: d.FileName})
	}

	if err := r.intake.Submit(ctx, sub); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "intake failed")
		r.metrics.submission("review_failed")
		return err
	}
	r.metrics.submission("reviewed")
	return nil
}

// verificationService is a concrete implementation of VerificationService.
type verificationService struct {
	intake    intake.ReviewIntake
	cfg       config.VerificationConfig
	metrics   *Metrics
	log       *zap.Logger
	scheduler verification.Scheduler
	checklist func() []model.Document
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewVerificationService constructs a new VerificationService. metrics may be nil.
func NewVerificationService(in intake.ReviewIntake, cfg config.VerificationConfig, metrics *Metrics, log *zap.Logger) VerificationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &verificationService{
		intake:    in,
		cfg:       cfg,
		metrics:   metrics,
		log:       log,
		scheduler: verification.WallClock,
		checklist: verification.DefaultChecklist,
		now:       time.Now,
		sessions:  make(map[string]*session),
	}
}

func (s *verificationService) Start(ctx context.Context, sellerID string) (*Session, error) {
	_, span := tracer.Start(ctx, "verification.start")
	defer span.End()

	if sellerID == "" {
		return nil, ErrSellerIDRequired
	}

	sess := &session{
		id:        uuid.NewString(),
		sellerID:  sellerID,
		createdAt: s.now().UTC(),
	}
	sess.feed = notification.NewFeed(s.cfg.NotificationBuffer, s.log.With(zap.String("session_id", sess.id)))
	sess.picker = &pickerBinding{sessionID: sess.id}
	opts := verification.Options{
		ReviewDelay:   s.cfg.ReviewDelay,
		PopupDuration: s.cfg.PopupDuration,
		ToastDuration: s.cfg.ToastDuration,
		ReviewTimeout: s.cfg.ReviewTimeout,
		Scheduler:     s.scheduler,
		Chooser:       sess.picker,
		Notifier:      sess.feed,
	}
	if s.intake != nil {
		opts.Reviewer = &sessionReviewer{sess: sess, intake: s.intake, metrics: s.metrics, now: s.now}
	}
	sess.form = verification.NewForm(s.checklist(), opts)

	sess.lastSeen.Store(sess.createdAt.UnixNano())

	s.mu.Lock()
	if s.cfg.MaxSessions > 0 && len(s.sessions) >= s.cfg.MaxSessions {
		s.mu.Unlock()
		sess.form.Close()
		s.logger(ctx).Warn("verification session refused",
			zap.String("component", "verification"),
			zap.String("event", "session_limit_reached"),
			zap.Int("max_sessions", s.cfg.MaxSessions),
		)
		return nil, ErrTooManySessions
	}
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	s.metrics.sessionOpened()

	span.SetAttributes(attribute.String("session.id", sess.id))
	s.logger(ctx).Info("verification session started",
		zap.String("component", "verification"),
		zap.String("event", "session_started"),
		zap.String("session_id", sess.id),
		zap.String("seller_id", sellerID),
	)
	return sess.view(), nil
}

func (s *verificationService) lookup(id string) (*session, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen.Store(s.now().UnixNano())
	return sess, nil
}

// logger returns the service logger tagged with the request id carried by ctx, if any.
func (s *verificationService) logger(ctx context.Context) *zap.Logger {
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		return s.log.With(zap.String("request_id", id))
	}
	return s.log
}

func (s *verificationService) Get(ctx context.Context, id string) (*Session, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return sess.view(), nil
}

func (s *verificationService) SelectFile(ctx context.Context, id, documentID string) (*Picker, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if !sess.form.SelectFile(documentID) {
		if sess.form.Snapshot().Closed {
			return nil, verification.ErrClosed
		}
		return nil, verification.ErrUnknownDocument
	}
	if p := sess.picker.descriptor(documentID); p != nil {
		return p, nil
	}
	return nil, verification.ErrUnknownDocument
}

func (s *verificationService) Upload(ctx context.Context, id, documentID, fileName string, size int64) (*verification.Upload, error) {
	_, span := tracer.Start(ctx, "verification.upload",
		trace.WithAttributes(attribute.String("session.id", id), attribute.String("document.id", documentID)))
	defer span.End()

	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	up, err := sess.form.OnFileChosen(documentID, &verification.File{Name: fileName, Size: size})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.metrics.upload(up.FirstUpload)
	s.logger(ctx).Info("verification document uploaded",
		zap.String("component", "verification"),
		zap.String("event", "document_uploaded"),
		zap.String("session_id", id),
		zap.String("document_id", documentID),
		zap.Bool("first_upload", up.FirstUpload),
		zap.Int64("size", size),
		zap.Stringer("trust_score_gained", up.TrustScoreGained),
	)
	return &up, nil
}

func (s *verificationService) Submit(ctx context.Context, id string) (*Session, error) {
	_, span := tracer.Start(ctx, "verification.submit", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if err := sess.form.Submit(); err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, verification.ErrMissingRequired):
			s.metrics.submission("rejected")
		case errors.Is(err, verification.ErrSubmitDisabled):
			s.metrics.submission("disabled")
		}
		s.logger(ctx).Info("verification submit refused",
			zap.String("component", "verification"),
			zap.String("event", "submit_refused"),
			zap.String("session_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	s.metrics.submission("accepted")
	return sess.view(), nil
}

func (s *verificationService) Notifications(ctx context.Context, id string) ([]model.Notification, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return sess.feed.Drain(), nil
}

func (s *verificationService) Close(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.form.Close()
	s.metrics.sessionClosed()
	s.logger(ctx).Info("verification session closed",
		zap.String("component", "verification"),
		zap.String("event", "session_closed"),
		zap.String("session_id", id),
	)
	return nil
}

func (s *verificationService) Sweep(ctx context.Context) int {
	if s.cfg.SessionIdleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.cfg.SessionIdleTTL).UnixNano()

	var expired []*session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.lastSeen.Load() < cutoff {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.form.Close()
		s.metrics.sessionExpired()
		s.logger(ctx).Info("verification session expired",
			zap.String("component", "verification"),
			zap.String("event", "session_expired"),
			zap.String("session_id", sess.id),
		)
	}
	return len(expired)
}

func (s *verificationService) Shutdown() {
	s.mu.Lock()
	open := s.sessions
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range open {
		sess.form.Close()
		s.metrics.sessionClosed()
	}
	s.log.Info("verification sessions shut down",
		zap.String("component", "verification"),
		zap.String("event", "shutdown"),
		zap.Int("closed", len(open)),
	)
}
