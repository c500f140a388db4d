package engine

import (
	"context"
	"sync"

	"github.com/suykerbuyk/voice-vault/internal/summary"
)

// Mock is a scripted engine for tests. Each call consumes the next step;
// once steps run out the last one repeats.
type Mock struct {
	mu    sync.Mutex
	steps []MockStep
	calls []Request
}

// MockStep is one scripted response: either a result or an error.
type MockStep struct {
	Result *summary.Result
	Err    error
}

// NewMock creates a mock engine with the given script.
func NewMock(steps ...MockStep) *Mock {
	return &Mock{steps: steps}
}

func (m *Mock) Name() string {
	return "mock"
}

func (m *Mock) Complete(ctx context.Context, req Request) (*summary.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	if len(m.steps) == 0 {
		return &summary.Result{Summary: "mock summary", ContentType: summary.General}, nil
	}

	idx := len(m.calls) - 1
	if idx >= len(m.steps) {
		idx = len(m.steps) - 1
	}
	step := m.steps[idx]
	if step.Err != nil {
		return nil, step.Err
	}
	return step.Result, nil
}

// Calls returns the requests seen so far.
func (m *Mock) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times Complete ran.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
