package engine

import (
	"context"
	"fmt"

	"github.com/suykerbuyk/voice-vault/internal/summary"
)

// Unavailable is an engine that always fails with a fixed reason. It stands
// in for providers that are not configured or not yet supported, so callers
// get a clear error at processing time instead of a nil engine.
type Unavailable struct {
	Reason string
}

func (e *Unavailable) Name() string {
	return "unavailable"
}

func (e *Unavailable) Complete(ctx context.Context, req Request) (*summary.Result, error) {
	return nil, fmt.Errorf("%w: %s", ErrServiceUnavailable, e.Reason)
}
