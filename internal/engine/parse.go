package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/suykerbuyk/voice-vault/internal/summary"
)

// resultJSON is the JSON structure engines are prompted to produce.
type resultJSON struct {
	Summary     string         `json:"summary"`
	ContentType string         `json:"content_type"`
	Tasks       []taskJSON     `json:"tasks"`
	Reminders   []reminderJSON `json:"reminders"`
}

type taskJSON struct {
	Text          string  `json:"text"`
	Priority      string  `json:"priority"`
	Category      string  `json:"category"`
	TimeReference string  `json:"time_reference"`
	Confidence    float64 `json:"confidence"`
}

type reminderJSON struct {
	Text          string  `json:"text"`
	TimeReference string  `json:"time_reference"`
	Urgency       string  `json:"urgency"`
	Confidence    float64 `json:"confidence"`
}

// parseResult decodes a model response into a validated summary.Result.
// Enum values are normalized with safe defaults, confidences clamped to
// [0,1], and items without text dropped.
func parseResult(content string) (*summary.Result, error) {
	content = stripFences(content)

	var rj resultJSON
	if err := json.Unmarshal([]byte(content), &rj); err != nil {
		return nil, fmt.Errorf("unmarshal result JSON: %w", err)
	}

	result := &summary.Result{
		Summary:     strings.TrimSpace(rj.Summary),
		ContentType: summary.ParseContentType(rj.ContentType),
	}

	for _, tj := range rj.Tasks {
		text := strings.TrimSpace(tj.Text)
		if text == "" {
			continue
		}
		result.Tasks = append(result.Tasks, summary.Task{
			Text:          text,
			Priority:      summary.ParsePriority(tj.Priority),
			Category:      summary.ParseCategory(tj.Category),
			TimeReference: strings.TrimSpace(tj.TimeReference),
			Confidence:    summary.ClampConfidence(tj.Confidence),
		})
	}

	for _, rjr := range rj.Reminders {
		text := strings.TrimSpace(rjr.Text)
		if text == "" {
			continue
		}
		result.Reminders = append(result.Reminders, summary.Reminder{
			Text:          text,
			TimeReference: strings.TrimSpace(rjr.TimeReference),
			Urgency:       summary.ParseUrgency(rjr.Urgency),
			Confidence:    summary.ClampConfidence(rjr.Confidence),
		})
	}

	return result, nil
}

// stripFences removes a markdown code fence wrapper some models emit despite
// the JSON-only instruction.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
