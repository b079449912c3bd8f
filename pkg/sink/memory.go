package sink

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Record is one commit captured by the in-memory sink.
type Record struct {
	Form    string
	Values  map[string]string
	Receipt Receipt
}

// Memory keeps committed values in process memory. It is the default sink for
// flows and the workhorse of tests.
type Memory struct {
	mu      sync.Mutex
	records []Record
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

var _ Sink = (*Memory)(nil)

// Commit records a copy of values and returns a receipt with the next
// sequence number.
func (m *Memory) Commit(ctx context.Context, form string, values map[string]string) (Receipt, error) {
	if ctx == nil {
		return Receipt{}, errors.New("sink: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	copied := make(map[string]string, len(values))
	for key, value := range values {
		copied[key] = value
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	receipt := Receipt{
		Seq:       uint64(len(m.records) + 1),
		Committed: time.Now(),
	}
	m.records = append(m.records, Record{Form: form, Values: copied, Receipt: receipt})
	return receipt, nil
}

// Records returns a copy of everything committed so far, in commit order.
func (m *Memory) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.records...)
}
