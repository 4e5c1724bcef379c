package llm

import (
	"context"
	"sync"
)

// UsageLedger accumulates token usage per phase across one orchestration
// run. Safe for concurrent use; each run owns its own ledger.
type UsageLedger struct {
	mu      sync.Mutex
	byPhase map[string]Usage
	total   Usage
}

func NewUsageLedger() *UsageLedger {
	return &UsageLedger{byPhase: make(map[string]Usage)}
}

// Record adds a usage sample under the given phase.
func (l *UsageLedger) Record(phase string, u Usage) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cur := l.byPhase[phase]
	cur.Add(u)
	l.byPhase[phase] = cur
	l.total.Add(u)
}

// Total returns the accumulated usage across all phases.
func (l *UsageLedger) Total() Usage {
	if l == nil {
		return Usage{}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Phase returns the accumulated usage for one phase.
func (l *UsageLedger) Phase(phase string) Usage {
	if l == nil {
		return Usage{}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.byPhase[phase]
}

// WithUsageLedger returns a middleware that records every successful
// response's usage into the ledger under the context phase.
func WithUsageLedger(ledger *UsageLedger) Middleware {
	return func(next Client) Client {
		return &metered{next: next, ledger: ledger}
	}
}

type metered struct {
	next   Client
	ledger *UsageLedger
}

func (m *metered) Name() string { return m.next.Name() }
func (m *metered) Close() error { return m.next.Close() }
func (m *metered) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := m.next.Generate(ctx, req)
	if err == nil && resp != nil {
		m.ledger.Record(PhaseFrom(ctx), resp.Usage)
	}
	return resp, err
}
