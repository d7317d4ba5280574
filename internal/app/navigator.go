package app

import (
	"log/slog"
	"sync"
)

// View names a screen of the console.
type View string

const (
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
)

// Navigator tracks the active view. The transport sends the user back to
// login through ToLogin when the backend rejects the session.
type Navigator struct {
	mu       sync.Mutex
	current  View
	history  []View
	logger   *slog.Logger
	onChange func(from, to View)
}

// NewNavigator starts on the login view.
func NewNavigator(logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Navigator{current: ViewLogin, logger: logger}
}

// OnChange registers fn to run after every view switch.
func (n *Navigator) OnChange(fn func(from, to View)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onChange = fn
}

// Go switches to v. Switching to the current view is a no-op.
func (n *Navigator) Go(v View) {
	n.mu.Lock()
	from := n.current
	if from == v {
		n.mu.Unlock()
		return
	}
	n.current = v
	n.history = append(n.history, from)
	fn := n.onChange
	n.mu.Unlock()

	n.logger.Debug("navigate", slog.String("from", string(from)), slog.String("to", string(v)))
	if fn != nil {
		fn(from, v)
	}
}

// ToLogin switches to the login view and forgets the navigation history.
func (n *Navigator) ToLogin() {
	n.Go(ViewLogin)
	n.mu.Lock()
	n.history = nil
	n.mu.Unlock()
}

// Back returns to the previous view, if any.
func (n *Navigator) Back() View {
	n.mu.Lock()
	if len(n.history) == 0 {
		v := n.current
		n.mu.Unlock()
		return v
	}
	prev := n.history[len(n.history)-1]
	n.history = n.history[:len(n.history)-1]
	from := n.current
	n.current = prev
	fn := n.onChange
	n.mu.Unlock()
	if fn != nil {
		fn(from, prev)
	}
	return prev
}

// Current returns the active view.
func (n *Navigator) Current() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
