package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"sellerverify/internal/config"
	"sellerverify/internal/http/middleware"
	"sellerverify/internal/intake"
	intakeMocks "sellerverify/internal/intake/mocks"
	"sellerverify/internal/model"
	"sellerverify/internal/verification"
)

var testCfg = config.VerificationConfig{
	ReviewDelay:        20 * time.Millisecond,
	PopupDuration:      30 * time.Millisecond,
	ToastDuration:      5 * time.Second,
	NotificationBuffer: 16,
}

func newTestService(t *testing.T, in intake.ReviewIntake) (VerificationService, *Metrics) {
	t.Helper()
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	svc := NewVerificationService(in, testCfg, m, nil)
	t.Cleanup(svc.Shutdown)
	return svc, m
}

func titles(ns []model.Notification) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Title)
	}
	return out
}

func uploadRequired(t *testing.T, svc VerificationService, id string) {
	t.Helper()
	ctx := context.Background()
	for _, docID := range []string{"business-registration", "tax-certificate", "identity-proof"} {
		_, err := svc.Upload(ctx, id, docID, docID+".pdf", 1024)
		require.NoError(t, err)
	}
}

func TestVerificationService_Start(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(t, nil)

	_, err := svc.Start(ctx, "")
	assert.ErrorIs(t, err, ErrSellerIDRequired)

	sess, err := svc.Start(ctx, "seller-42")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "seller-42", sess.SellerID)
	assert.Len(t, sess.Documents, 5)
	assert.False(t, sess.CanSubmit)
	assert.Equal(t, "0.0/5.0", sess.ScoreLabel)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.sessionsActive))
}

func TestVerificationService_Lookup(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	_, err := svc.Get(ctx, "")
	assert.ErrorIs(t, err, ErrIDRequired)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Upload(ctx, "missing", "tax-certificate", "tax.pdf", 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Notifications(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, svc.Close(ctx, ""), ErrIDRequired)
	assert.ErrorIs(t, svc.Close(ctx, "missing"), ErrSessionNotFound)
}

func TestVerificationService_SelectFile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	sess, err := svc.Start(ctx, "seller-1")
	require.NoError(t, err)

	p, err := svc.SelectFile(ctx, sess.ID, "address-proof")
	require.NoError(t, err)
	assert.Equal(t, "address-proof", p.DocumentID)
	assert.Equal(t, verification.AcceptedExtensions, p.Accept)
	assert.Equal(t, "/verifications/"+sess.ID+"/documents/address-proof", p.UploadPath)

	_, err = svc.SelectFile(ctx, sess.ID, "passport")
	assert.ErrorIs(t, err, verification.ErrUnknownDocument)

	got, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Documents, got.Documents, "selecting a file changes nothing")
}

func TestVerificationService_SubmitFlow(t *testing.T) {
	ctx := context.Background()
	mIntake := new(intakeMocks.MockReviewIntake)
	svc, m := newTestService(t, mIntake)

	sess, err := svc.Start(ctx, "seller-7")
	require.NoError(t, err)

	mIntake.On("Submit", mock.Anything, mock.MatchedBy(func(s *model.Submission) bool {
		return s.SessionID == sess.ID && s.SellerID == "seller-7" && len(s.Documents) == 3 && s.ID != ""
	})).Return(nil).Once()

	uploadRequired(t, svc, sess.ID)
	up, err := svc.Upload(ctx, sess.ID, "tax-certificate", "tax-v2.png", 2048)
	require.NoError(t, err)
	assert.False(t, up.FirstUpload)
	assert.Equal(t, model.Points(3.5), up.TrustScoreGained)

	submitted, err := svc.Submit(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, submitted.Verifying)

	var ns []model.Notification
	assert.Eventually(t, func() bool {
		batch, err := svc.Notifications(ctx, sess.ID)
		if err != nil {
			return false
		}
		ns = append(ns, batch...)
		return len(ns) > 0 && ns[len(ns)-1].Title == "Verification Submitted"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{
		"Document Uploaded", "Document Uploaded", "Document Uploaded", "Document Uploaded", "Verification Submitted",
	}, titles(ns))

	after, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, after.Verifying)

	mIntake.AssertExpectations(t)
	assert.Equal(t, float64(3), testutil.ToFloat64(m.uploads.WithLabelValues("first")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.uploads.WithLabelValues("replace")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.submissions.WithLabelValues("accepted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.submissions.WithLabelValues("reviewed")))
}

func TestVerificationService_SubmitRejected(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(t, nil)
	sess, err := svc.Start(ctx, "seller-1")
	require.NoError(t, err)

	_, err = svc.Submit(ctx, sess.ID)
	assert.ErrorIs(t, err, verification.ErrSubmitDisabled)

	_, err = svc.Upload(ctx, sess.ID, "business-registration", "reg.pdf", 10)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, sess.ID)
	var missing *verification.MissingDocumentsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"tax-certificate", "identity-proof"}, missing.DocumentIDs)

	ns, err := svc.Notifications(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Document Uploaded", "Missing Required Documents"}, titles(ns))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.submissions.WithLabelValues("rejected")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.submissions.WithLabelValues("disabled")))
}

func TestVerificationService_IntakeFailure(t *testing.T) {
	ctx := context.Background()
	mIntake := new(intakeMocks.MockReviewIntake)
	mIntake.On("Submit", mock.Anything, mock.Anything).Return(intake.ErrUnavailable).Once()
	svc, m := newTestService(t, mIntake)

	sess, err := svc.Start(ctx, "seller-1")
	require.NoError(t, err)
	uploadRequired(t, svc, sess.ID)

	_, err = svc.Submit(ctx, sess.ID)
	require.NoError(t, err)

	var got []model.Notification
	assert.Eventually(t, func() bool {
		ns, err := svc.Notifications(ctx, sess.ID)
		if err != nil {
			return false
		}
		got = append(got, ns...)
		return len(got) > 0 && got[len(got)-1].Title == "Verification Failed"
	}, time.Second, 5*time.Millisecond)

	s, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, s.CanSubmit)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.submissions.WithLabelValues("review_failed")))
	mIntake.AssertExpectations(t)
}

func TestVerificationService_CloseAndShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)
	svc := NewVerificationService(intake.NewSimulated(nil), testCfg, m, nil)

	first, err := svc.Start(ctx, "seller-1")
	require.NoError(t, err)
	second, err := svc.Start(ctx, "seller-2")
	require.NoError(t, err)
	uploadRequired(t, svc, first.ID)
	_, err = svc.Submit(ctx, first.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Close(ctx, first.ID))
	_, err = svc.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.sessionsActive))

	svc.Shutdown()
	_, err = svc.Get(ctx, second.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.sessionsActive))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newSweptService(t *testing.T, cfg config.VerificationConfig) (*verificationService, *Metrics, *testClock) {
	t.Helper()
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	clock := &testClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewVerificationService(nil, cfg, m, nil).(*verificationService)
	svc.now = clock.Now
	t.Cleanup(svc.Shutdown)
	return svc, m, clock
}

func TestVerificationService_SweepIdleSessions(t *testing.T) {
	ctx := context.Background()
	cfg := testCfg
	cfg.SessionIdleTTL = time.Minute
	svc, m, clock := newSweptService(t, cfg)

	active, err := svc.Start(ctx, "seller-1")
	require.NoError(t, err)
	idle, err := svc.Start(ctx, "seller-2")
	require.NoError(t, err)
	idleForm := svc.sessions[idle.ID].form

	clock.Advance(40 * time.Second)
	_, err = svc.Get(ctx, active.ID)
	require.NoError(t, err)

	clock.Advance(30 * time.Second)
	assert.Equal(t, 1, svc.Sweep(ctx))

	_, err = svc.Get(ctx, idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.True(t, idleForm.Snapshot().Closed, "expired form is torn down")
	_, err = svc.Get(ctx, active.ID)
	assert.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.sessionsActive))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.sessionsIdle))
}

func TestVerificationService_SweepReclaimsAbandonedSessions(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	cfg := testCfg
	cfg.SessionIdleTTL = time.Minute
	svc, m, clock := newSweptService(t, cfg)

	for i := 0; i < 500; i++ {
		_, err := svc.Start(ctx, "seller-1")
		require.NoError(t, err)
	}
	assert.Equal(t, 0, svc.Sweep(ctx), "nothing is idle yet")

	clock.Advance(time.Minute + time.Second)
	assert.Equal(t, 500, svc.Sweep(ctx))
	assert.Empty(t, svc.sessions)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.sessionsActive))
}

func TestVerificationService_SweepDisabled(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newSweptService(t, testCfg)

	_, err := svc.Start(ctx, "seller-1")
	require.NoError(t, err)
	clock.Advance(24 * time.Hour)

	assert.Equal(t, 0, svc.Sweep(ctx))
	assert.Len(t, svc.sessions, 1)
}

func TestVerificationService_MaxSessions(t *testing.T) {
	ctx := context.Background()
	cfg := testCfg
	cfg.MaxSessions = 2
	svc, m := func() (VerificationService, *Metrics) {
		m, err := NewMetrics(prometheus.NewRegistry())
		require.NoError(t, err)
		s := NewVerificationService(nil, cfg, m, nil)
		t.Cleanup(s.Shutdown)
		return s, m
	}()

	first, err := svc.Start(ctx, "seller-1")
	require.NoError(t, err)
	_, err = svc.Start(ctx, "seller-2")
	require.NoError(t, err)

	_, err = svc.Start(ctx, "seller-3")
	assert.ErrorIs(t, err, ErrTooManySessions)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.sessionsActive))

	require.NoError(t, svc.Close(ctx, first.ID))
	_, err = svc.Start(ctx, "seller-3")
	assert.NoError(t, err)
}

type countingSweeper struct {
	VerificationService
	calls atomic.Int32
}

func (c *countingSweeper) Sweep(context.Context) int {
	c.calls.Add(1)
	return 0
}

func TestRunSweeper(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	sweeper := &countingSweeper{}
	done := make(chan error, 1)
	go func() { done <- RunSweeper(ctx, sweeper, 5*time.Millisecond) }()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}

func TestRunSweeper_Disabled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	sweeper := &countingSweeper{}

	assert.NoError(t, RunSweeper(ctx, sweeper, 0))
	assert.Zero(t, sweeper.calls.Load())
}

func TestPickerBinding_KeyedByDocument(t *testing.T) {
	b := &pickerBinding{sessionID: "s-1"}
	b.Open("business-registration", verification.AcceptedExtensions)
	b.Open("tax-certificate", verification.AcceptedExtensions)

	p := b.descriptor("business-registration")
	require.NotNil(t, p)
	assert.Equal(t, "business-registration", p.DocumentID)
	assert.Equal(t, "/verifications/s-1/documents/business-registration", p.UploadPath)

	assert.Equal(t, "tax-certificate", b.descriptor("tax-certificate").DocumentID)
	assert.Nil(t, b.descriptor("address-proof"), "never opened")
}

func TestVerificationService_ConcurrentSelectFile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	sess, err := svc.Start(ctx, "seller-1")
	require.NoError(t, err)

	docs := []string{"business-registration", "tax-certificate", "identity-proof", "address-proof"}
	var wg sync.WaitGroup
	errs := make(chan error, len(docs)*50)
	for round := 0; round < 50; round++ {
		for _, docID := range docs {
			wg.Add(1)
			go func(docID string) {
				defer wg.Done()
				p, err := svc.SelectFile(ctx, sess.ID, docID)
				if err != nil {
					errs <- err
					return
				}
				if p.DocumentID != docID {
					errs <- fmt.Errorf("asked for %s, got %s", docID, p.DocumentID)
				}
			}(docID)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestVerificationService_LogsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewVerificationService(nil, testCfg, nil, zap.New(core))
	t.Cleanup(svc.Shutdown)

	ctx := middleware.ContextWithRequestID(context.Background(), "req-123")
	sess, err := svc.Start(ctx, "seller-1")
	require.NoError(t, err)
	_, err = svc.Upload(ctx, sess.ID, "business-registration", "registration.pdf", 10)
	require.NoError(t, err)

	for _, event := range []string{"session_started", "document_uploaded"} {
		entries := logs.FilterField(zap.String("event", event)).All()
		require.Len(t, entries, 1, event)
		assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"], event)
	}

	_, err = svc.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Close(context.Background(), sess.ID))
	closed := logs.FilterField(zap.String("event", "session_closed")).All()
	require.Len(t, closed, 1)
	assert.NotContains(t, closed[0].ContextMap(), "request_id")
}
