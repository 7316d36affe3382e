package notifications_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"GameHub/models"
	"GameHub/services/kvstore"
	"GameHub/services/notifications"
	"GameHub/services/store"
)

func TestShowRespectsConcurrencyCap(t *testing.T) {
	center := notifications.NewCenter(kvstore.NewMemoryStore())
	defer center.Close()

	// Persistent toasts so nothing auto-dismisses under us.
	for i := 0; i < 5; i++ {
		center.Show("u1", models.ToastInfo, fmt.Sprintf("toast %d", i), notifications.ShowOptions{Persistent: true})
	}

	assert.Len(t, center.Visible("u1"), notifications.MaxConcurrent)
	assert.Len(t, center.Pending("u1"), 5-notifications.MaxConcurrent)

	t.Run("queues are per user", func(t *testing.T) {
		center.Show("u2", models.ToastInfo, "other user", notifications.ShowOptions{Persistent: true})
		assert.Len(t, center.Visible("u2"), 1)
		assert.Empty(t, center.Pending("u2"))
	})
}

func TestDismissDrainsBacklogInOrder(t *testing.T) {
	center := notifications.NewCenter(kvstore.NewMemoryStore())
	defer center.Close()

	var toasts []notifications.Toast
	for i := 0; i < 5; i++ {
		toasts = append(toasts, center.Show("u1", models.ToastInfo, fmt.Sprintf("toast %d", i), notifications.ShowOptions{Persistent: true}))
	}

	assert.True(t, center.Dismiss("u1", toasts[0].ID))

	visible := center.Visible("u1")
	assert.Len(t, visible, notifications.MaxConcurrent)
	// The oldest queued toast took the freed slot.
	assert.Equal(t, toasts[3].ID, visible[len(visible)-1].ID)
	assert.Len(t, center.Pending("u1"), 1)

	t.Run("dismissing a queued toast removes it without touching the display", func(t *testing.T) {
		assert.True(t, center.Dismiss("u1", toasts[4].ID))
		assert.Len(t, center.Visible("u1"), notifications.MaxConcurrent)
		assert.Empty(t, center.Pending("u1"))
	})

	t.Run("unknown id reports false", func(t *testing.T) {
		assert.False(t, center.Dismiss("u1", "nope"))
	})
}

func TestAutoDismiss(t *testing.T) {
	center := notifications.NewCenter(kvstore.NewMemoryStore())
	defer center.Close()

	center.Show("u1", models.ToastInfo, "short lived", notifications.ShowOptions{Duration: 20 * time.Millisecond})
	center.Show("u1", models.ToastWarning, "sticky", notifications.ShowOptions{Persistent: true})

	assert.Eventually(t, func() bool {
		return len(center.Visible("u1")) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "sticky", center.Visible("u1")[0].Message)
}

func TestHistory(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	center := notifications.NewCenter(kv)
	defer center.Close()

	t.Run("every shown toast is recorded, newest first", func(t *testing.T) {
		center.Show("u1", models.ToastInfo, "first", notifications.ShowOptions{Persistent: true})
		center.Show("u1", models.ToastError, "second", notifications.ShowOptions{Persistent: true})

		history, err := center.History("u1")
		assert.NoError(t, err)
		assert.Len(t, history, 2)
		assert.Equal(t, "second", history[0].Message)
		assert.Equal(t, "first", history[1].Message)
	})

	t.Run("history is capped at the limit", func(t *testing.T) {
		for i := 0; i < notifications.HistoryLimit+10; i++ {
			center.Show("u2", models.ToastInfo, fmt.Sprintf("toast %d", i), notifications.ShowOptions{Persistent: true})
		}
		history, err := center.History("u2")
		assert.NoError(t, err)
		assert.Len(t, history, notifications.HistoryLimit)
		// The newest entry survived the cap.
		assert.Equal(t, fmt.Sprintf("toast %d", notifications.HistoryLimit+9), history[0].Message)
	})

	t.Run("entries older than the max age are purged on read", func(t *testing.T) {
		key := store.FormatNotificationHistoryKey("u3")
		stale := models.ToastRecord{
			ID:        "stale",
			Type:      models.ToastInfo,
			Message:   "ancient",
			CreatedAt: time.Now().Add(-notifications.HistoryMaxAge - time.Hour),
		}
		fresh := models.ToastRecord{
			ID:        "fresh",
			Type:      models.ToastInfo,
			Message:   "recent",
			CreatedAt: time.Now(),
		}
		assert.NoError(t, kv.Set(key, []models.ToastRecord{stale, fresh}))

		history, err := center.History("u3")
		assert.NoError(t, err)
		assert.Len(t, history, 1)
		assert.Equal(t, "fresh", history[0].ID)

		// The pruned list was written back, not just filtered on the way out.
		var persisted []models.ToastRecord
		found, err := kv.Get(key, &persisted)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Len(t, persisted, 1)
		assert.Equal(t, "fresh", persisted[0].ID)
	})

	t.Run("clear drops everything", func(t *testing.T) {
		assert.NoError(t, center.ClearHistory("u1"))
		history, err := center.History("u1")
		assert.NoError(t, err)
		assert.Empty(t, history)
	})
}
