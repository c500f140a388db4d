// Package render produces Obsidian-flavored markdown journal notes from
// processed transcript results.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/suykerbuyk/voice-vault/internal/summary"
)

// NoteData holds everything needed to render a journal note.
type NoteData struct {
	Date        string // YYYY-MM-DD
	Iteration   int    // per-day sequence, 1-based
	Title       string
	Summary     string
	ContentType summary.ContentType
	SourceFile  string // original transcript filename
	Words       int
	DurationMin int // estimated recording length
	Engine      string
	Redacted    bool
	Tasks       []summary.Task
	Reminders   []summary.Reminder
}

// JournalNote renders a full markdown note from NoteData.
func JournalNote(d NoteData) string {
	var b strings.Builder

	// Frontmatter
	b.WriteString("---\n")
	fmt.Fprintf(&b, "date: %s\n", d.Date)
	b.WriteString("type: voice-journal\n")
	fmt.Fprintf(&b, "content_type: %s\n", d.ContentType)
	fmt.Fprintf(&b, "iteration: %d\n", d.Iteration)
	if d.SourceFile != "" {
		fmt.Fprintf(&b, "source: \"%s\"\n", d.SourceFile)
	}
	fmt.Fprintf(&b, "words: %d\n", d.Words)
	if d.DurationMin > 0 {
		fmt.Fprintf(&b, "duration_minutes: %d\n", d.DurationMin)
	}
	if d.Redacted {
		b.WriteString("redacted: true\n")
	}
	fmt.Fprintf(&b, "tags: [voice-journal, %s]\n", d.ContentType)
	fmt.Fprintf(&b, "summary: \"%s\"\n", escapeYAML(d.Summary))
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "# %s\n\n", d.Title)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "%s\n\n", d.Summary)

	if len(d.Tasks) > 0 {
		b.WriteString("## Tasks\n\n")
		for _, t := range d.Tasks {
			fmt.Fprintf(&b, "- [ ] **%s** %s%s\n", t.Priority, t.Text, taskSuffix(t))
		}
		b.WriteString("\n")
	}

	if len(d.Reminders) > 0 {
		b.WriteString("## Reminders\n\n")
		for _, r := range d.Reminders {
			fmt.Fprintf(&b, "- [ ] %s (%s%s)\n", r.Text, r.Urgency, timeSuffix(r.TimeReference))
		}
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("---\n")
	if d.Engine != "" {
		fmt.Fprintf(&b, "*vj v0.1.0 | summarized by %s*\n", d.Engine)
	} else {
		b.WriteString("*vj v0.1.0*\n")
	}

	return b.String()
}

func taskSuffix(t summary.Task) string {
	var parts []string
	if t.Category != "" && t.Category != summary.CategoryGeneral {
		parts = append(parts, string(t.Category))
	}
	if t.TimeReference != "" {
		parts = append(parts, t.TimeReference)
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func timeSuffix(ref string) string {
	if ref == "" {
		return ""
	}
	return ", " + ref
}

// NoteFilename returns the filename for a journal note: YYYY-MM-DD-NN.md
func NoteFilename(date string, iteration int) string {
	return fmt.Sprintf("%s-%02d.md", date, iteration)
}

// NoteRelPath returns the note path relative to the notes directory, grouped
// by year.
func NoteRelPath(date string, iteration int) string {
	year := date
	if idx := strings.IndexByte(date, '-'); idx > 0 {
		year = date[:idx]
	}
	return filepath.Join(year, NoteFilename(date, iteration))
}

// TitleFromSummary derives a note title from the first sentence of the
// consolidated summary.
func TitleFromSummary(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "Journal Entry"
	}

	for _, sep := range []string{". ", "! ", "? ", "\n"} {
		if idx := strings.Index(text, sep); idx > 0 {
			text = text[:idx]
			break
		}
	}
	text = strings.TrimRight(text, ".!? ")

	if len(text) > 80 {
		text = text[:77] + "..."
	}
	if text == "" {
		return "Journal Entry"
	}
	return text
}

func escapeYAML(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
