package notifications

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"GameHub/models"
	"GameHub/services/kvstore"
	"GameHub/services/store"
)

const (
	// MaxConcurrent is the cap on simultaneously visible toasts per user;
	// further toasts queue behind them.
	MaxConcurrent = 3

	// DefaultDuration is how long a non-persistent toast stays visible.
	DefaultDuration = 4000 * time.Millisecond

	// HistoryLimit caps the rolling per-user history.
	HistoryLimit = 50

	// HistoryMaxAge is the age past which history entries are purged on read.
	HistoryMaxAge = 30 * 24 * time.Hour
)

// Toast is a transient message in the queued -> visible -> dismissed
// lifecycle.
type Toast struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	Type       models.ToastType `json:"type"`
	Message    string           `json:"message"`
	Persistent bool             `json:"persistent"`
	Duration   time.Duration    `json:"-"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ShowOptions tunes a single Show call. The zero value means a
// non-persistent toast with the default duration.
type ShowOptions struct {
	Persistent bool
	Duration   time.Duration
}

/*
 * 'Center' schedules transient notifications per user: at most MaxConcurrent
 * visible at once, the rest in a FIFO backlog that drains oldest-first as
 * visible toasts are dismissed. Non-persistent toasts auto-dismiss on a
 * timer; dismissing one early cancels its timer. Every shown toast is also
 * appended to a persisted rolling history, independent of the live display
 * state.
 */
type Center struct {
	kv kvstore.Store

	mu      sync.Mutex
	visible map[string][]Toast
	pending map[string][]Toast
	timers  map[string]*time.Timer
	closed  bool
}

// NewCenter returns a notification center persisting history through the
// given store.
func NewCenter(kv kvstore.Store) *Center {
	return &Center{
		kv:      kv,
		visible: make(map[string][]Toast),
		pending: make(map[string][]Toast),
		timers:  make(map[string]*time.Timer),
	}
}

// Show creates a toast for the user. It becomes visible immediately when a
// display slot is free, otherwise it queues. The toast is recorded in the
// user's history either way; a history write failure is logged, never fatal.
func (c *Center) Show(userID string, toastType models.ToastType, message string, opts ShowOptions) Toast {
	toast := Toast{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       toastType,
		Message:    message,
		Persistent: opts.Persistent,
		Duration:   opts.Duration,
		CreatedAt:  time.Now(),
	}
	if toast.Duration <= 0 {
		toast.Duration = DefaultDuration
	}

	c.appendHistory(userID, toast)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return toast
	}
	if len(c.visible[userID]) < MaxConcurrent {
		c.makeVisible(toast)
	} else {
		c.pending[userID] = append(c.pending[userID], toast)
	}
	return toast
}

// Dismiss removes the toast from the visible window or the backlog and
// cancels any pending auto-dismiss timer. A freed display slot is refilled
// from the backlog, oldest first. Returns false for an unknown toast id.
func (c *Center) Dismiss(userID, toastID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, toast := range c.visible[userID] {
		if toast.ID == toastID {
			c.visible[userID] = append(c.visible[userID][:i], c.visible[userID][i+1:]...)
			if timer, ok := c.timers[toastID]; ok {
				timer.Stop()
				delete(c.timers, toastID)
			}
			c.drain(userID)
			return true
		}
	}
	for i, toast := range c.pending[userID] {
		if toast.ID == toastID {
			c.pending[userID] = append(c.pending[userID][:i], c.pending[userID][i+1:]...)
			return true
		}
	}
	return false
}

// Visible returns the toasts currently in the user's display window.
func (c *Center) Visible(userID string) []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	toasts := make([]Toast, len(c.visible[userID]))
	copy(toasts, c.visible[userID])
	return toasts
}

// Pending returns the user's queued toasts in FIFO order.
func (c *Center) Pending(userID string) []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	toasts := make([]Toast, len(c.pending[userID]))
	copy(toasts, c.pending[userID])
	return toasts
}

// History returns the user's toast history, newest first. Entries older
// than HistoryMaxAge are purged as part of the read.
func (c *Center) History(userID string) ([]models.ToastRecord, error) {
	key := store.FormatNotificationHistoryKey(userID)

	c.mu.Lock()
	defer c.mu.Unlock()

	records := []models.ToastRecord{}
	if _, err := c.kv.Get(key, &records); err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-HistoryMaxAge)
	fresh := records[:0]
	for _, r := range records {
		if r.CreatedAt.After(cutoff) {
			fresh = append(fresh, r)
		}
	}
	if len(fresh) != len(records) {
		if err := c.kv.Set(key, fresh); err != nil {
			log.Printf("Error persisting purged history for %s: %v", userID, err)
		}
	}

	// Stored oldest first, returned newest first.
	out := make([]models.ToastRecord, len(fresh))
	for i, r := range fresh {
		out[len(fresh)-1-i] = r
	}
	return out, nil
}

// ClearHistory drops the user's toast history.
func (c *Center) ClearHistory(userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Delete(store.FormatNotificationHistoryKey(userID))
}

// Close cancels every pending auto-dismiss timer. Used on shutdown.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
}

// makeVisible must be called with c.mu held.
func (c *Center) makeVisible(toast Toast) {
	c.visible[toast.UserID] = append(c.visible[toast.UserID], toast)
	if toast.Persistent {
		return
	}
	c.timers[toast.ID] = time.AfterFunc(toast.Duration, func() {
		c.Dismiss(toast.UserID, toast.ID)
	})
}

// drain must be called with c.mu held.
func (c *Center) drain(userID string) {
	for len(c.visible[userID]) < MaxConcurrent && len(c.pending[userID]) > 0 {
		next := c.pending[userID][0]
		c.pending[userID] = c.pending[userID][1:]
		c.makeVisible(next)
	}
}

func (c *Center) appendHistory(userID string, toast Toast) {
	key := store.FormatNotificationHistoryKey(userID)

	c.mu.Lock()
	defer c.mu.Unlock()

	var records []models.ToastRecord
	if _, err := c.kv.Get(key, &records); err != nil {
		log.Printf("Error reading history for %s: %v", userID, err)
		return
	}
	records = append(records, models.ToastRecord{
		ID:        toast.ID,
		Type:      toast.Type,
		Message:   toast.Message,
		CreatedAt: toast.CreatedAt,
	})
	if len(records) > HistoryLimit {
		records = records[len(records)-HistoryLimit:]
	}
	if err := c.kv.Set(key, records); err != nil {
		log.Printf("Error persisting history for %s: %v", userID, err)
	}
}
