// Package pipeline orchestrates transcript processing: token estimation,
// chunking, per-chunk summarization with retry, and consolidation of the
// per-chunk results into one bounded result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/suykerbuyk/voice-vault/internal/cache"
	"github.com/suykerbuyk/voice-vault/internal/chunk"
	"github.com/suykerbuyk/voice-vault/internal/classify"
	"github.com/suykerbuyk/voice-vault/internal/engine"
	"github.com/suykerbuyk/voice-vault/internal/summary"
	"github.com/suykerbuyk/voice-vault/internal/token"
)

// ErrInvalidInput marks transcripts that cannot be processed at all: empty
// text, or text with no recognizable sentences.
var ErrInvalidInput = errors.New("invalid input")

// Options tune a Pipeline. Zero values take the defaults below.
type Options struct {
	// TokenBudget is the estimated-token threshold above which a transcript
	// is chunked. Default 3000.
	TokenBudget int

	// MaxChunkWords bounds chunk size when chunking. Default 2000.
	MaxChunkWords int

	// MaxRetries is the per-chunk retry count; each chunk gets MaxRetries+1
	// attempts. Zero means a single attempt.
	MaxRetries int

	// Cache, when set, short-circuits repeated processing of identical text
	// on the same engine.
	Cache *cache.Store

	// Sleep overrides the retry backoff sleeper. Tests use this to run
	// without real delays.
	Sleep func(ctx context.Context, d time.Duration) error
}

const defaultTokenBudget = 3000

// Pipeline processes one transcript at a time. Chunks are processed
// sequentially; a chunk failure aborts the whole transcript.
type Pipeline struct {
	engine     engine.Engine
	classifier *classify.Classifier
	estimator  *token.Estimator
	retrier    *engine.Retrier
	cache      *cache.Store

	tokenBudget   int
	maxChunkWords int
}

// New builds a Pipeline around the given engine.
func New(eng engine.Engine, opts Options) *Pipeline {
	if opts.TokenBudget <= 0 {
		opts.TokenBudget = defaultTokenBudget
	}
	if opts.MaxChunkWords <= 0 {
		opts.MaxChunkWords = chunk.DefaultMaxWords
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}

	return &Pipeline{
		engine:        eng,
		classifier:    classify.New(),
		estimator:     token.NewEstimator(),
		retrier:       &engine.Retrier{MaxRetries: opts.MaxRetries, Sleep: opts.Sleep},
		cache:         opts.Cache,
		tokenBudget:   opts.TokenBudget,
		maxChunkWords: opts.MaxChunkWords,
	}
}

// Process summarizes one transcript. Short transcripts go to the engine in a
// single call; long ones are chunked, processed in order, and consolidated.
// The final content type is the heuristic classification of the first chunk
// (or of the whole text on the single-call path), not whatever label the
// engine returned.
func (p *Pipeline) Process(ctx context.Context, text string) (*summary.Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty transcript", ErrInvalidInput)
	}

	cacheKey := cache.Key(p.engine.Name(), text)
	if p.cache != nil {
		if cached, ok := p.cache.Get(cacheKey); ok {
			return cached, nil
		}
	}

	var result *summary.Result
	var err error
	if p.estimator.NeedsChunking(text, p.tokenBudget) {
		result, err = p.processChunked(ctx, text)
	} else {
		result, err = p.processSingle(ctx, text)
	}
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		p.cache.Add(cacheKey, result)
	}
	return result, nil
}

func (p *Pipeline) processSingle(ctx context.Context, text string) (*summary.Result, error) {
	hint := p.classifier.Classify(text)

	result, err := p.retrier.Complete(ctx, p.engine, engine.Request{Text: text, Hint: hint})
	if err != nil {
		return nil, err
	}

	result.ContentType = hint
	result.Tasks = dedupeTasks(result.Tasks)
	result.Reminders = dedupeReminders(result.Reminders)
	return bound(result), nil
}

func (p *Pipeline) processChunked(ctx context.Context, text string) (*summary.Result, error) {
	chunks, err := chunk.Split(text, p.maxChunkWords)
	if err != nil {
		if errors.Is(err, chunk.ErrNoSentences) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}

	// First chunk's heuristic label wins for the whole transcript.
	hint := p.classifier.Classify(chunks[0].Text)

	results := make([]*summary.Result, 0, len(chunks))
	for _, c := range chunks {
		result, err := p.retrier.Complete(ctx, p.engine, engine.Request{Text: c.Text, Hint: hint})
		if err != nil {
			return nil, fmt.Errorf("chunk %d of %d: %w", c.Index+1, len(chunks), err)
		}
		results = append(results, result)
	}

	final := consolidate(results)
	final.ContentType = hint
	return final, nil
}
