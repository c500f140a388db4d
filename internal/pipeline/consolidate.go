package pipeline

import (
	"sort"
	"strings"

	"github.com/suykerbuyk/voice-vault/internal/chunk"
	"github.com/suykerbuyk/voice-vault/internal/dedupe"
	"github.com/suykerbuyk/voice-vault/internal/summary"
)

// Output bounds for the consolidated result.
const (
	maxTasks            = 15
	maxReminders        = 15
	maxSummarySentences = 5
)

// consolidate merges per-chunk results into one bounded result. Summary
// sentences keep chunk order with near-duplicates (overlap across chunk
// boundaries) removed. Tasks and reminders are deduplicated, sorted, and
// truncated.
func consolidate(results []*summary.Result) *summary.Result {
	final := &summary.Result{}

	var sentences []string
	for _, r := range results {
		if r == nil {
			continue
		}
		sentences = append(sentences, chunk.SplitSentences(r.Summary)...)
		final.Tasks = append(final.Tasks, r.Tasks...)
		final.Reminders = append(final.Reminders, r.Reminders...)
	}

	sentences = dedupe.Strings(sentences, dedupe.DefaultThreshold)
	if len(sentences) > maxSummarySentences {
		sentences = sentences[:maxSummarySentences]
	}
	final.Summary = chunk.Join(sentences)

	final.Tasks = dedupeTasks(final.Tasks)
	final.Reminders = dedupeReminders(final.Reminders)

	return bound(final)
}

// dedupeTasks drops near-duplicate tasks, keeping the first occurrence, then
// orders by priority (high first) and confidence (high first) within a
// priority. The sort is stable so equal items keep chunk order.
func dedupeTasks(tasks []summary.Task) []summary.Task {
	tasks = dedupe.Filter(tasks, dedupe.DefaultThreshold, func(t summary.Task) string {
		return t.Text
	})
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority < tasks[j].Priority
		}
		return tasks[i].Confidence > tasks[j].Confidence
	})
	return tasks
}

// dedupeReminders mirrors dedupeTasks with urgency ordering.
func dedupeReminders(reminders []summary.Reminder) []summary.Reminder {
	reminders = dedupe.Filter(reminders, dedupe.DefaultThreshold, func(r summary.Reminder) string {
		return r.Text
	})
	sort.SliceStable(reminders, func(i, j int) bool {
		if reminders[i].Urgency != reminders[j].Urgency {
			return reminders[i].Urgency < reminders[j].Urgency
		}
		return reminders[i].Confidence > reminders[j].Confidence
	})
	return reminders
}

// bound truncates the task and reminder lists to their caps.
func bound(r *summary.Result) *summary.Result {
	if len(r.Tasks) > maxTasks {
		r.Tasks = r.Tasks[:maxTasks]
	}
	if len(r.Reminders) > maxReminders {
		r.Reminders = r.Reminders[:maxReminders]
	}
	r.Summary = strings.TrimSpace(r.Summary)
	return r
}
