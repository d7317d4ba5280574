package shared

import (
	"context"
	"log/slog"
	"sync"
)

// NoticeKind classifies a user notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a one-time message for the user about the outcome of an action.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Entity  string     `json:"entity"`
	Message string     `json:"message"`
}

// Notifier receives notices emitted by controllers.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notice) { f(n) }

// Confirmer asks the user to approve a destructive or state-changing action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// NoticeQueue buffers notices until the presentation layer pops them.
type NoticeQueue struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify queues a notice.
func (q *NoticeQueue) Notify(n Notice) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.notices = append(q.notices, n)
}

// Pop retrieves and clears the oldest notice.
func (q *NoticeQueue) Pop() *Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.notices) == 0 {
		return nil
	}
	n := q.notices[0]
	q.notices = q.notices[1:]
	return &n
}

// Drain returns every queued notice and empties the queue.
func (q *NoticeQueue) Drain() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.notices
	q.notices = nil
	return out
}

// LogNotifier writes notices to a structured logger.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (l LogNotifier) Notify(n Notice) {
	if l.Logger == nil {
		return
	}
	level := slog.LevelInfo
	if n.Kind == NoticeError {
		level = slog.LevelWarn
	}
	l.Logger.Log(context.Background(), level, n.Message, slog.String("kind", string(n.Kind)), slog.String("entity", n.Entity))
}

// Fanout delivers each notice to every wrapped notifier.
type Fanout []Notifier

// Notify implements Notifier.
func (f Fanout) Notify(n Notice) {
	for _, target := range f {
		if target != nil {
			target.Notify(n)
		}
	}
}
