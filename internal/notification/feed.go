// Package notification buffers user-visible notifications until the client collects them.
package notification

import (
	"sync"

	"go.uber.org/zap"

	"sellerverify/internal/model"
)

// Feed is a bounded per-session outbox. When full, the oldest notification is dropped.
type Feed struct {
	mu      sync.Mutex
	items   []model.Notification
	limit   int
	dropped int
	log     *zap.Logger
}

// NewFeed returns a feed holding at most limit notifications (minimum 1).
func NewFeed(limit int, log *zap.Logger) *Feed {
	if limit < 1 {
		limit = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{limit: limit, log: log}
}

// Notify appends n to the feed.
func (f *Feed) Notify(n model.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.items) == f.limit {
		dropped := f.items[0]
		f.items = f.items[1:]
		f.dropped++
		f.log.Warn("notification dropped", zap.String("title", dropped.Title), zap.Int("dropped_total", f.dropped))
	}
	f.items = append(f.items, n)
	f.log.Debug("notification queued",
		zap.String("title", n.Title),
		zap.String("variant", string(n.Variant)),
	)
}

// Drain returns the queued notifications in arrival order and empties the feed.
func (f *Feed) Drain() []model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.items
	f.items = nil
	if out == nil {
		out = []model.Notification{}
	}
	return out
}

// Dropped returns how many notifications were discarded because the feed was full.
func (f *Feed) Dropped() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}
