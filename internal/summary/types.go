package summary

import "strings"

// ContentType is the coarse genre label attached to a processed transcript.
type ContentType string

const (
	Meeting         ContentType = "meeting"
	PersonalJournal ContentType = "personal-journal"
	Technical       ContentType = "technical"
	General         ContentType = "general"
)

// ParseContentType maps a raw label to a ContentType, defaulting to General.
func ParseContentType(s string) ContentType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "meeting":
		return Meeting
	case "personal-journal", "personal_journal", "personaljournal", "journal":
		return PersonalJournal
	case "technical":
		return Technical
	default:
		return General
	}
}

// Priority orders tasks. Lower values sort first.
type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityLow:
		return "low"
	default:
		return "medium"
	}
}

// ParsePriority maps a raw label to a Priority, defaulting to medium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Urgency orders reminders. Lower values sort first.
type Urgency int

const (
	UrgencyImmediate Urgency = iota
	UrgencyToday
	UrgencyThisWeek
	UrgencyLater
)

func (u Urgency) String() string {
	switch u {
	case UrgencyImmediate:
		return "immediate"
	case UrgencyToday:
		return "today"
	case UrgencyThisWeek:
		return "this-week"
	default:
		return "later"
	}
}

// ParseUrgency maps a raw label to an Urgency, defaulting to later.
func ParseUrgency(s string) Urgency {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "immediate", "now", "asap":
		return UrgencyImmediate
	case "today":
		return UrgencyToday
	case "this-week", "this_week", "thisweek", "week":
		return UrgencyThisWeek
	default:
		return UrgencyLater
	}
}

// Category is the coarse activity bucket a task belongs to.
type Category string

const (
	CategoryCall     Category = "call"
	CategoryMeeting  Category = "meeting"
	CategoryPurchase Category = "purchase"
	CategoryResearch Category = "research"
	CategoryEmail    Category = "email"
	CategoryTravel   Category = "travel"
	CategoryHealth   Category = "health"
	CategoryGeneral  Category = "general"
)

// ParseCategory maps a raw label to a Category, defaulting to general.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call":
		return CategoryCall
	case "meeting":
		return CategoryMeeting
	case "purchase", "shopping", "buy":
		return CategoryPurchase
	case "research":
		return CategoryResearch
	case "email":
		return CategoryEmail
	case "travel":
		return CategoryTravel
	case "health":
		return CategoryHealth
	default:
		return CategoryGeneral
	}
}

// Task is an actionable item extracted from a transcript.
// Immutable after creation; consumed read-only by dedup and consolidation.
type Task struct {
	Text          string
	Priority      Priority
	Category      Category
	TimeReference string
	Confidence    float64 // in [0,1]
}

// Reminder is a time-bound prompt extracted from a transcript.
type Reminder struct {
	Text          string
	TimeReference string
	Urgency       Urgency
	Confidence    float64 // in [0,1]
}

// Result is the structured output for one processed text: a chunk's, or the
// consolidated whole-transcript result.
type Result struct {
	Summary     string
	Tasks       []Task
	Reminders   []Reminder
	ContentType ContentType
}

// ClampConfidence forces a confidence value into [0,1].
func ClampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
