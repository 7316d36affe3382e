package dialogs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrDismissed is returned to a blocked caller whose dialog was closed
// without a button choice: replaced by a newer dialog or hidden wholesale.
var ErrDismissed = errors.New("dialogs: dialog dismissed")

// Kind distinguishes the two built dialog shapes.
type Kind string

const (
	KindConfirmation Kind = "confirmation"
	KindAlert        Kind = "alert"
)

// Dialog describes the dialog currently shown to a session.
type Dialog struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	ConfirmText string    `json:"confirm_text,omitempty"`
	CancelText  string    `json:"cancel_text,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Options configures a confirmation or alert dialog.
type Options struct {
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
}

type outcome struct {
	confirmed bool
	dismissed bool
}

type activeDialog struct {
	dialog Dialog
	done   chan outcome
}

/*
 * 'Coordinator' enforces the single-active-dialog invariant per session.
 * Confirm and Alert suspend the calling goroutine until exactly one
 * resolution arrives: a Resolve call carrying the user's button choice, a
 * replacement dialog, a HideAll, or context cancellation. There is no
 * timeout of its own.
 */
type Coordinator struct {
	mu     sync.Mutex
	active map[string]*activeDialog
}

// NewCoordinator returns an empty coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{active: make(map[string]*activeDialog)}
}

// Confirm shows a confirmation dialog and blocks until it is resolved.
// The boolean is true only for a confirm choice and false only for cancel;
// any other way of closing the dialog yields ErrDismissed.
func (c *Coordinator) Confirm(ctx context.Context, sessionID string, opts Options) (bool, error) {
	if opts.ConfirmText == "" {
		opts.ConfirmText = "Confirm"
	}
	if opts.CancelText == "" {
		opts.CancelText = "Cancel"
	}
	out, err := c.show(ctx, sessionID, KindConfirmation, opts)
	if err != nil {
		return false, err
	}
	return out.confirmed, nil
}

// Alert shows an alert dialog and blocks until it is acknowledged.
func (c *Coordinator) Alert(ctx context.Context, sessionID string, opts Options) error {
	if opts.ConfirmText == "" {
		opts.ConfirmText = "OK"
	}
	_, err := c.show(ctx, sessionID, KindAlert, opts)
	return err
}

// Resolve delivers the user's button choice for the session's active
// dialog. Returns false when the dialog id does not match the active one.
func (c *Coordinator) Resolve(sessionID, dialogID string, confirmed bool) bool {
	c.mu.Lock()
	current, ok := c.active[sessionID]
	if !ok || current.dialog.ID != dialogID {
		c.mu.Unlock()
		return false
	}
	delete(c.active, sessionID)
	c.mu.Unlock()

	current.done <- outcome{confirmed: confirmed}
	return true
}

// Active returns the session's currently shown dialog, if any.
func (c *Coordinator) Active(sessionID string) (Dialog, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	current, ok := c.active[sessionID]
	if !ok {
		return Dialog{}, false
	}
	return current.dialog, true
}

// HideAll dismisses the session's active dialog, unblocking its caller with
// ErrDismissed. Used on logout and navigation resets.
func (c *Coordinator) HideAll(sessionID string) {
	c.mu.Lock()
	current, ok := c.active[sessionID]
	if ok {
		delete(c.active, sessionID)
	}
	c.mu.Unlock()

	if ok {
		current.done <- outcome{dismissed: true}
	}
}

func (c *Coordinator) show(ctx context.Context, sessionID string, kind Kind, opts Options) (outcome, error) {
	entry := &activeDialog{
		dialog: Dialog{
			ID:          uuid.NewString(),
			SessionID:   sessionID,
			Kind:        kind,
			Title:       opts.Title,
			Message:     opts.Message,
			ConfirmText: opts.ConfirmText,
			CancelText:  opts.CancelText,
			CreatedAt:   time.Now(),
		},
		// Buffered so Resolve never blocks on a caller that is about to
		// observe context cancellation.
		done: make(chan outcome, 1),
	}

	c.mu.Lock()
	previous, replacing := c.active[sessionID]
	c.active[sessionID] = entry
	c.mu.Unlock()

	// At most one dialog per session: the replaced caller is unblocked.
	if replacing {
		previous.done <- outcome{dismissed: true}
	}

	select {
	case out := <-entry.done:
		if out.dismissed {
			return out, ErrDismissed
		}
		return out, nil
	case <-ctx.Done():
		c.mu.Lock()
		if current, ok := c.active[sessionID]; ok && current == entry {
			delete(c.active, sessionID)
		}
		c.mu.Unlock()
		return outcome{}, ctx.Err()
	}
}
