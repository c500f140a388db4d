// Package engine provides pluggable summarization backends. An Engine turns
// chunk text into a structured summary with task and reminder extractions;
// the wire protocol behind it is the engine's own concern.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/suykerbuyk/voice-vault/internal/config"
	"github.com/suykerbuyk/voice-vault/internal/summary"
)

var (
	// ErrServiceUnavailable marks a backend that could not be reached, is
	// disabled, or returned a non-success status.
	ErrServiceUnavailable = errors.New("summarization service unavailable")

	// ErrProcessingFailed marks a chunk that produced no result after all
	// retries were exhausted.
	ErrProcessingFailed = errors.New("processing failed")
)

// Request carries one chunk of transcript text to an engine. Hint is the
// heuristic content classification, used to bias prompt framing.
type Request struct {
	Text string
	Hint summary.ContentType
}

// Engine is the summarization capability.
type Engine interface {
	// Name identifies the engine for cache keys and journal entries.
	Name() string

	// Complete produces a structured result for one chunk of text.
	Complete(ctx context.Context, req Request) (*summary.Result, error)
}

// New builds the engine selected by cfg. Unknown providers and missing
// credentials yield an Unavailable engine rather than an error, so the
// failure surfaces at call time with a useful reason.
func New(cfg config.EngineConfig) Engine {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKeyEnv == "" || os.Getenv(cfg.APIKeyEnv) == "" {
			return &Unavailable{Reason: fmt.Sprintf("API key not set (export %s)", cfg.APIKeyEnv)}
		}
		return NewOpenAI(cfg)
	case "ollama":
		return NewOllama(cfg)
	case "none", "":
		return &Unavailable{Reason: "no engine configured"}
	default:
		return &Unavailable{Reason: fmt.Sprintf("unknown provider %q", cfg.Provider)}
	}
}
