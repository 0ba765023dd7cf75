// Package verification implements the seller document-verification checklist:
// per-document upload state, the additive trust score, and the timed submission step.
package verification

import (
	"context"
	"sync"
	"time"

	"sellerverify/internal/intake"
	"sellerverify/internal/model"
)

const (
	DefaultReviewDelay   = 2 * time.Second
	DefaultPopupDuration = 3 * time.Second
	DefaultToastDuration = 5 * time.Second
	DefaultReviewTimeout = 10 * time.Second
)

// File is the chosen file. Only its name is inspected.
type File struct {
	Name string
	Size int64
}

// FileChooser is the platform binding that opens a file picker for one document.
type FileChooser interface {
	Open(documentID string, accept []string)
}

// Notifier receives user-visible notifications. It must not call back into the Form.
type Notifier interface {
	Notify(n model.Notification)
}

// Reviewer hands the uploaded documents to the review pipeline once the review delay elapses.
type Reviewer interface {
	Review(ctx context.Context, docs []model.Document) error
}

// Options configures a Form. Zero durations fall back to the defaults above.
type Options struct {
	ReviewDelay   time.Duration
	PopupDuration time.Duration
	ToastDuration time.Duration
	// ReviewTimeout bounds one Reviewer call; a timeout counts as a retryable failure.
	ReviewTimeout time.Duration

	Scheduler Scheduler
	Chooser   FileChooser
	Notifier  Notifier
	// Reviewer is optional; without one the review step only waits out ReviewDelay.
	Reviewer Reviewer
}

// Upload describes the outcome of OnFileChosen.
type Upload struct {
	Document         model.Document   `json:"document"`
	FirstUpload      bool             `json:"first_upload"`
	Delta            model.TrustScore `json:"delta"`
	TrustScoreGained model.TrustScore `json:"trust_score_gained"`
}

// Snapshot is a read-only view of the form for rendering.
type Snapshot struct {
	Documents         []model.Document `json:"documents"`
	Verifying         bool             `json:"verifying"`
	TrustScoreGained  model.TrustScore `json:"trust_score_gained"`
	ScoreLabel        string           `json:"score_label"`
	ScorePopupVisible bool             `json:"score_popup_visible"`
	CanSubmit         bool             `json:"can_submit"`
	Closed            bool             `json:"closed"`
}

// Form is one seller's verification checklist. It is safe for concurrent use;
// every handler runs to completion under the form's lock.
type Form struct {
	opts Options

	mu           sync.Mutex
	docs         []model.Document
	index        map[string]int
	verifying    bool
	gained       model.TrustScore
	popupVisible bool
	popupSeq     uint64
	popupTimer   Timer
	reviewTimer  Timer
	closed       bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewForm builds a form over a copy of docs.
func NewForm(docs []model.Document, opts Options) *Form {
	if opts.ReviewDelay <= 0 {
		opts.ReviewDelay = DefaultReviewDelay
	}
	if opts.PopupDuration <= 0 {
		opts.PopupDuration = DefaultPopupDuration
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = DefaultToastDuration
	}
	if opts.ReviewTimeout <= 0 {
		opts.ReviewTimeout = DefaultReviewTimeout
	}
	if opts.Scheduler == nil {
		opts.Scheduler = WallClock
	}

	f := &Form{
		opts:  opts,
		docs:  append([]model.Document(nil), docs...),
		index: make(map[string]int, len(docs)),
	}
	for i, d := range f.docs {
		f.index[d.ID] = i
	}
	f.ctx, f.cancel = context.WithCancel(context.Background())
	return f
}

// SelectFile opens the file picker for documentID. Unknown ids and closed forms are ignored.
func (f *Form) SelectFile(documentID string) bool {
	f.mu.Lock()
	_, ok := f.index[documentID]
	open := ok && !f.closed
	f.mu.Unlock()

	if !open {
		return false
	}
	if f.opts.Chooser != nil {
		f.opts.Chooser.Open(documentID, AcceptedExtensions)
	}
	return true
}

// OnFileChosen records an upload. The document's trust score value is added only
// on its first upload; later uploads replace the file name.
func (f *Form) OnFileChosen(documentID string, file *File) (Upload, error) {
	if file == nil || file.Name == "" {
		return Upload{}, ErrFileRequired
	}
	if !Accepts(file.Name) {
		return Upload{}, ErrUnsupportedFileType
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return Upload{}, ErrClosed
	}
	i, ok := f.index[documentID]
	if !ok {
		f.mu.Unlock()
		return Upload{}, ErrUnknownDocument
	}

	doc := &f.docs[i]
	res := Upload{FirstUpload: !doc.Uploaded}
	if res.FirstUpload {
		res.Delta = doc.TrustScoreValue
		f.gained += doc.TrustScoreValue
		f.showPopupLocked()
	}
	doc.Uploaded = true
	doc.FileName = file.Name
	res.Document = *doc
	res.TrustScoreGained = f.gained
	f.mu.Unlock()

	f.notify(uploadedMessage(file.Name, res.Delta, res.FirstUpload, f.opts.ToastDuration))
	return res, nil
}

// showPopupLocked shows the score popup and restarts its dismissal timer.
func (f *Form) showPopupLocked() {
	if f.popupTimer != nil {
		f.popupTimer.Stop()
	}
	f.popupSeq++
	seq := f.popupSeq
	f.popupVisible = true
	f.popupTimer = f.opts.Scheduler.AfterFunc(f.opts.PopupDuration, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.popupSeq == seq {
			f.popupVisible = false
			f.popupTimer = nil
		}
	})
}

// Submit starts the review step. It fails with ErrSubmitDisabled while a review is
// running or nothing is uploaded, and with a *MissingDocumentsError when a required
// document is missing. The form returns to idle after ReviewDelay.
func (f *Form) Submit() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	if !f.canSubmitLocked() {
		f.mu.Unlock()
		return ErrSubmitDisabled
	}
	if missing := f.missingLocked(); len(missing) > 0 {
		f.mu.Unlock()
		f.notify(missingMessage(f.opts.ToastDuration))
		return &MissingDocumentsError{DocumentIDs: missing}
	}

	f.verifying = true
	f.reviewTimer = f.opts.Scheduler.AfterFunc(f.opts.ReviewDelay, f.finishReview)
	f.mu.Unlock()
	return nil
}

func (f *Form) finishReview() {
	f.mu.Lock()
	if f.closed || !f.verifying {
		f.mu.Unlock()
		return
	}
	docs := f.uploadedLocked()
	f.mu.Unlock()

	var err error
	if f.opts.Reviewer != nil {
		ctx, cancel := context.WithTimeout(f.ctx, f.opts.ReviewTimeout)
		err = f.opts.Reviewer.Review(ctx, docs)
		cancel()
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.verifying = false
	f.reviewTimer = nil
	f.mu.Unlock()

	if err != nil {
		f.notify(reviewFailedMessage(intake.IsRetryable(err), f.opts.ToastDuration))
		return
	}
	f.notify(submittedMessage(f.opts.ToastDuration))
}

func (f *Form) canSubmitLocked() bool {
	if f.verifying {
		return false
	}
	for _, d := range f.docs {
		if d.Uploaded {
			return true
		}
	}
	return false
}

func (f *Form) missingLocked() []string {
	var missing []string
	for _, d := range f.docs {
		if d.Required && !d.Uploaded {
			missing = append(missing, d.ID)
		}
	}
	return missing
}

func (f *Form) uploadedLocked() []model.Document {
	var out []model.Document
	for _, d := range f.docs {
		if d.Uploaded {
			out = append(out, d)
		}
	}
	return out
}

// Snapshot returns the current state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		Documents:         append([]model.Document(nil), f.docs...),
		Verifying:         f.verifying,
		TrustScoreGained:  f.gained,
		ScoreLabel:        f.gained.String() + "/" + model.MaxTrustScore.String(),
		ScorePopupVisible: f.popupVisible,
		CanSubmit:         !f.closed && f.canSubmitLocked(),
		Closed:            f.closed,
	}
}

// Close stops all pending timers and cancels an in-flight review. It is idempotent.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	if f.popupTimer != nil {
		f.popupTimer.Stop()
		f.popupTimer = nil
	}
	if f.reviewTimer != nil {
		f.reviewTimer.Stop()
		f.reviewTimer = nil
	}
	f.popupVisible = false
	f.verifying = false
	f.cancel()
}

func (f *Form) notify(n model.Notification) {
	if f.opts.Notifier != nil {
		f.opts.Notifier.Notify(n)
	}
}
