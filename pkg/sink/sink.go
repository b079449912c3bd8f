// Package sink defines where committed form values go: the terminal action of
// a flow. Implementations range from the in-memory recorder used by tests and
// demos to the bbolt-backed journal in the boltsink subpackage.
package sink

import (
	"context"
	"time"
)

// Receipt acknowledges a commit. Sequence numbers are per form and increase
// monotonically within a sink.
type Receipt struct {
	Seq       uint64
	Committed time.Time
}

// Sink receives the final values of a submitted form. Commit must not mutate
// the values map it is handed.
type Sink interface {
	Commit(ctx context.Context, form string, values map[string]string) (Receipt, error)
}
