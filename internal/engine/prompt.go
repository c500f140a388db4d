package engine

import (
	"fmt"
	"strings"

	"github.com/suykerbuyk/voice-vault/internal/summary"
)

const systemPrompt = `You summarize voice-journal transcripts and produce structured JSON.

Respond with valid JSON only. No markdown, no explanation. Schema:
{
  "summary": "2-4 sentences. Past tense. What the entry covered.",
  "content_type": "one of: meeting, personal-journal, technical, general",
  "tasks": [
    {"text": "...", "priority": "high|medium|low",
     "category": "call|meeting|purchase|research|email|travel|health|general",
     "time_reference": "verbatim time phrase or empty",
     "confidence": 0.0-1.0}
  ],
  "reminders": [
    {"text": "...", "time_reference": "verbatim time phrase or empty",
     "urgency": "immediate|today|this-week|later",
     "confidence": 0.0-1.0}
  ]
}

Rules:
- summary: concise, outcome-focused, no filler.
- tasks: concrete action items the speaker committed to. Omit vague intentions.
- reminders: time-bound prompts ("call X tomorrow"). Keep the original time phrase.
- confidence: how certain you are the item is a real commitment.
- Empty arrays are fine. Never invent items.`

// buildUserPrompt frames the chunk text, biased by the heuristic content
// classification when one is available.
func buildUserPrompt(req Request) string {
	var b strings.Builder

	switch req.Hint {
	case summary.Meeting:
		b.WriteString("This transcript appears to be a meeting recording. Attribute action items to the speaker who committed to them.\n\n")
	case summary.PersonalJournal:
		b.WriteString("This transcript appears to be a personal journal entry. Keep the summary in the speaker's voice.\n\n")
	case summary.Technical:
		b.WriteString("This transcript appears to be technical notes. Preserve identifiers, versions, and URLs exactly.\n\n")
	}

	fmt.Fprintf(&b, "Transcript:\n%s", req.Text)
	return b.String()
}
