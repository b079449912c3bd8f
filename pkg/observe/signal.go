// Package observe provides the replay-latest signal primitive the form
// runtime is built on: a mutable holder of one value that notifies
// subscribers synchronously, in subscription order, and replays its current
// value to anyone who attaches late.
package observe

import "sync"

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Signal holds the latest value of one observable quantity. Set runs every
// subscriber callback before it returns; there is no queuing and no
// background delivery. The signal expects a single updating goroutine — the
// internal lock only keeps bookkeeping coherent for readers elsewhere.
type Signal[T any] struct {
	mu       sync.Mutex
	latest   T
	subs     []subscriber[T]
	nextID   int
	cleanup  []func()
	disposed bool
}

// NewSignal constructs a signal seeded with initial. The seed is what late
// subscribers receive until the first Set.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{latest: initial}
}

// Latest returns the current value without subscribing.
func (s *Signal[T]) Latest() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Set stores v and synchronously notifies every current subscriber, in
// subscription order. Calling Set after Dispose panics.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		panic("observe: set on disposed signal")
	}
	s.latest = v
	targets := make([]func(T), len(s.subs))
	for i, sub := range s.subs {
		targets[i] = sub.fn
	}
	s.mu.Unlock()

	for _, fn := range targets {
		fn(v)
	}
}

// Subscribe registers fn and immediately delivers the current value to it,
// before any subsequent Set is observed. The returned function detaches the
// subscriber; detaching has no effect on the signal or other subscribers.
// Calling Subscribe after Dispose panics.
func (s *Signal[T]) Subscribe(fn func(T)) (cancel func()) {
	if fn == nil {
		panic("observe: nil subscriber")
	}
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		panic("observe: subscribe on disposed signal")
	}
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	current := s.latest
	s.mu.Unlock()

	fn(current)
	return func() { s.unsubscribe(id) }
}

func (s *Signal[T]) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Dispose releases all subscribers and detaches derived signals from their
// sources. Set and Subscribe panic afterwards; Latest keeps returning the
// final value.
func (s *Signal[T]) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	cleanup := s.cleanup
	s.subs = nil
	s.cleanup = nil
	s.disposed = true
	s.mu.Unlock()

	for _, fn := range cleanup {
		fn()
	}
}

// onDispose registers a hook run once when the signal is disposed. Derived
// signals use it to cancel their source subscriptions.
func (s *Signal[T]) onDispose(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		panic("observe: onDispose on disposed signal")
	}
	s.cleanup = append(s.cleanup, fn)
}
