package event

import "sync"

// Toggle is a feature switch built on listener registration: enabling
// subscribes the listener, disabling unsubscribes it. Both operations
// are idempotent.
type Toggle struct {
	reg      *Registry
	listener Listener

	mu      sync.Mutex
	sub     Subscription
	enabled bool
}

// NewToggle creates a toggle for the given listener, initially disabled.
func NewToggle(reg *Registry, l Listener) *Toggle {
	return &Toggle{reg: reg, listener: l}
}

// Enable registers the listener. Enabling an enabled toggle is a no-op.
func (t *Toggle) Enable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.enabled {
		return
	}
	t.sub = t.reg.Subscribe(t.listener)
	t.enabled = true
}

// Disable unregisters the listener. Disabling a disabled toggle is a
// no-op.
func (t *Toggle) Disable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return
	}
	t.reg.Unsubscribe(t.sub)
	t.sub = Subscription{}
	t.enabled = false
}

// Flip inverts the toggle and returns the new state.
func (t *Toggle) Flip() bool {
	t.mu.Lock()
	enabled := t.enabled
	t.mu.Unlock()
	if enabled {
		t.Disable()
	} else {
		t.Enable()
	}
	return !enabled
}

// Enabled returns the current state.
func (t *Toggle) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}
