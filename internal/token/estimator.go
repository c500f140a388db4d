package token

import (
	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Estimator approximates token counts for transcript text. It prefers exact
// BPE counts via tiktoken and falls back to a chars/4 heuristic when the
// encoding table cannot be loaded (offline environments without a BPE cache).
// Both paths are deterministic and monotonic in text length.
type Estimator struct {
	encoder  *tiktoken.Tiktoken
	fallback bool
}

// NewEstimator creates an estimator using the cl100k_base encoding.
func NewEstimator() *Estimator {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return &Estimator{fallback: true}
	}
	return &Estimator{encoder: enc}
}

// Estimate returns the approximate token count of text.
func (e *Estimator) Estimate(text string) int {
	if text == "" {
		return 0
	}
	if e.fallback || e.encoder == nil {
		return heuristicCount(text)
	}
	return len(e.encoder.Encode(text, nil, nil))
}

// NeedsChunking reports whether text exceeds the model's context budget.
func (e *Estimator) NeedsChunking(text string, budget int) bool {
	return e.Estimate(text) > budget
}

// IsPrecise reports whether exact BPE counting is available.
func (e *Estimator) IsPrecise() bool {
	return !e.fallback && e.encoder != nil
}

// heuristicCount approximates English text at ~4 characters per token,
// rounding up so non-empty text never estimates to zero.
func heuristicCount(text string) int {
	return (len(text) + 3) / 4
}
