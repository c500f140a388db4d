package transcript

import (
	"time"

	"github.com/suykerbuyk/voice-vault/internal/chunk"
)

// Typical conversational speaking rate, used to estimate recording length
// from the word count.
const wordsPerMinute = 150

// Stats holds aggregate measures of a transcript.
type Stats struct {
	Words       int
	Sentences   int
	Chars       int
	EstDuration time.Duration
}

func computeStats(text string) Stats {
	words := chunk.WordCount(text)

	minutes := float64(words) / wordsPerMinute
	return Stats{
		Words:       words,
		Sentences:   len(chunk.SplitSentences(text)),
		Chars:       len(text),
		EstDuration: time.Duration(minutes * float64(time.Minute)),
	}
}
