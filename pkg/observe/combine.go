package observe

// Combine derives a signal from two sources of possibly different types. The
// derived value is recomputed on every emission from either source; because
// every source replays its latest value, the derived signal starts with a
// value too and never withholds emission. Disposing the derived signal
// cancels its source subscriptions.
func Combine[A, B, T any](left *Signal[A], right *Signal[B], fn func(A, B) T) *Signal[T] {
	if left == nil || right == nil {
		panic("observe: combine requires both sources")
	}
	if fn == nil {
		panic("observe: combine requires a function")
	}

	derived := NewSignal(fn(left.Latest(), right.Latest()))
	cancelLeft := left.Subscribe(func(a A) {
		derived.Set(fn(a, right.Latest()))
	})
	cancelRight := right.Subscribe(func(b B) {
		derived.Set(fn(left.Latest(), b))
	})
	derived.onDispose(cancelLeft)
	derived.onDispose(cancelRight)
	return derived
}

// CombineAll derives a signal from any number of same-typed sources,
// recomputing fn over a snapshot of their latest values on every emission.
func CombineAll[T, R any](fn func([]T) R, sources ...*Signal[T]) *Signal[R] {
	if len(sources) == 0 {
		panic("observe: combine requires at least one source")
	}
	if fn == nil {
		panic("observe: combine requires a function")
	}

	latest := make([]T, len(sources))
	for i, src := range sources {
		latest[i] = src.Latest()
	}
	derived := NewSignal(fn(snapshot(latest)))

	for i, src := range sources {
		i := i
		cancel := src.Subscribe(func(v T) {
			latest[i] = v
			derived.Set(fn(snapshot(latest)))
		})
		derived.onDispose(cancel)
	}
	return derived
}

func snapshot[T any](values []T) []T {
	return append([]T(nil), values...)
}
