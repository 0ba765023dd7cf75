package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"sellerverify/internal/model"
)

func TestFeed_DrainInOrder(t *testing.T) {
	f := NewFeed(4, nil)
	f.Notify(model.Notification{Title: "Document Uploaded"})
	f.Notify(model.Notification{Title: "Verification Submitted"})

	got := f.Drain()
	assert.Equal(t, "Document Uploaded", got[0].Title)
	assert.Equal(t, "Verification Submitted", got[1].Title)

	assert.Empty(t, f.Drain())
	assert.NotNil(t, f.Drain())
}

func TestFeed_DropsOldestWhenFull(t *testing.T) {
	f := NewFeed(2, nil)
	for _, title := range []string{"a", "b", "c"} {
		f.Notify(model.Notification{Title: title})
	}

	got := f.Drain()
	assert.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Title)
	assert.Equal(t, "c", got[1].Title)
	assert.Equal(t, 1, f.Dropped())
}

func TestNewFeed_MinimumLimit(t *testing.T) {
	f := NewFeed(0, nil)
	f.Notify(model.Notification{Title: "a"})
	f.Notify(model.Notification{Title: "b"})
	assert.Equal(t, []model.Notification{{Title: "b"}}, f.Drain())
}

func TestFeed_DropLogsDiscardedTitle(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	f := NewFeed(1, zap.New(core))
	f.Notify(model.Notification{Title: "Document Uploaded"})
	f.Notify(model.Notification{Title: "Verification Submitted"})

	entries := logs.FilterMessage("notification dropped").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Document Uploaded", entries[0].ContextMap()["title"])
	assert.Equal(t, int64(1), entries[0].ContextMap()["dropped_total"])
}
