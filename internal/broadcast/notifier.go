// Package broadcast implements synchronous fan-out of values to
// registered listener callbacks.
package broadcast

import "sync"

// Notifier delivers values to every registered listener, in
// registration order. Safe for concurrent use.
type Notifier[T any] struct {
	mu        sync.Mutex
	listeners []*listener[T]
}

type listener[T any] struct {
	fn func(T)
}

// New creates an empty notifier.
func New[T any]() *Notifier[T] {
	return &Notifier[T]{}
}

// Add registers fn and returns a disposer that removes exactly this
// registration. The disposer is idempotent: calling it twice, or after
// the notifier has already been emptied, is a no-op.
func (n *Notifier[T]) Add(fn func(T)) func() {
	l := &listener[T]{fn: fn}
	n.mu.Lock()
	n.listeners = append(n.listeners, l)
	n.mu.Unlock()

	return func() { n.remove(l) }
}

func (n *Notifier[T]) remove(l *listener[T]) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, cur := range n.listeners {
		if cur == l {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return
		}
	}
}

// Notify invokes every listener registered at call time with v. The
// listener list is snapshotted first, so a listener adding or disposing
// listeners during the broadcast affects only the next broadcast.
func (n *Notifier[T]) Notify(v T) {
	n.mu.Lock()
	snapshot := make([]*listener[T], len(n.listeners))
	copy(snapshot, n.listeners)
	n.mu.Unlock()

	for _, l := range snapshot {
		l.fn(v)
	}
}

// Reset removes every registered listener. Disposers handed out
// earlier become no-ops.
func (n *Notifier[T]) Reset() {
	n.mu.Lock()
	n.listeners = nil
	n.mu.Unlock()
}

// Len returns the number of registered listeners.
func (n *Notifier[T]) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}
