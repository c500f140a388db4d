package chunk

import (
	"errors"
	"strings"
)

// DefaultMaxWords bounds chunk size when the caller passes a non-positive limit.
const DefaultMaxWords = 2000

// ErrNoSentences is returned when text contains no usable sentences.
var ErrNoSentences = errors.New("no sentences in text")

// Chunk is a bounded, sentence-aligned slice of a transcript.
type Chunk struct {
	Index int
	Text  string
}

// Split breaks text into sentence-aligned chunks of at most maxWords words.
// Sentences are never split: a single sentence longer than the limit is
// emitted whole. Chunk order matches source order, and every sentence of the
// input appears in exactly one chunk.
func Split(text string, maxWords int) ([]Chunk, error) {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil, ErrNoSentences
	}

	var chunks []Chunk
	var current []string
	currentWords := 0

	for _, s := range sentences {
		words := len(strings.Fields(s))
		if currentWords > 0 && currentWords+words > maxWords {
			chunks = append(chunks, Chunk{Index: len(chunks), Text: Join(current)})
			current = nil
			currentWords = 0
		}
		current = append(current, s)
		currentWords += words
	}

	if len(current) > 0 {
		chunks = append(chunks, Chunk{Index: len(chunks), Text: Join(current)})
	}

	return chunks, nil
}

// SplitSentences splits text at terminal punctuation (. ! ?), trimming
// whitespace and discarding empty fragments.
func SplitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	flush := func() {
		s := strings.TrimSpace(b.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	for _, r := range text {
		switch r {
		case '.', '!', '?':
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()

	return sentences
}

// Join reassembles sentences into chunk text: ". "-separated with a trailing
// period.
func Join(sentences []string) string {
	if len(sentences) == 0 {
		return ""
	}
	return strings.Join(sentences, ". ") + "."
}

// WordCount returns the whitespace-token count of text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
