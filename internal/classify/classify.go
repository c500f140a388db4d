// Package classify assigns a coarse content-type label to transcript text
// using weighted keyword and pattern heuristics.
package classify

import (
	"regexp"
	"strings"

	"github.com/suykerbuyk/voice-vault/internal/summary"
)

// Empirically tuned normalization constants. They scale raw category scores
// into [0,1] and are exposed on the Classifier so callers can tune them.
const (
	defaultMeetingNorm   = 10.0
	defaultJournalNorm   = 15.0
	defaultTechnicalNorm = 10.0
	defaultGeneralFloor  = 0.3
)

// Classifier scores text against per-category keyword and pattern sets.
// The zero value is not usable; construct with New.
type Classifier struct {
	// GeneralFloor is the confidence below which classification falls back
	// to General.
	GeneralFloor float64

	// Per-category score normalizers.
	MeetingNorm   float64
	JournalNorm   float64
	TechnicalNorm float64
}

// New returns a classifier with the default thresholds.
func New() *Classifier {
	return &Classifier{
		GeneralFloor:  defaultGeneralFloor,
		MeetingNorm:   defaultMeetingNorm,
		JournalNorm:   defaultJournalNorm,
		TechnicalNorm: defaultTechnicalNorm,
	}
}

var (
	fillerPattern     = regexp.MustCompile(`\b(um+|uh+|like|you know)\b`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	// Conversational attribution: "speaker 2", "john said", "mary asked".
	speakerPattern = regexp.MustCompile(`\bspeaker \d+\b`)
	saidPattern    = regexp.MustCompile(`\b\w+ (said|says|asked|mentioned|suggested)\b`)

	// Code-like structure: method calls, URLs, version strings.
	methodCallPattern = regexp.MustCompile(`\b\w+(\.\w+)*\(\)?`)
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	versionPattern    = regexp.MustCompile(`\bv?\d+\.\d+(\.\d+)?\b`)

	firstPersonPattern = regexp.MustCompile(`\bi (feel|felt|am|was|need|want|hope|wish|think)\b`)
)

var meetingKeywords = []string{
	"meeting", "agenda", "schedule", "follow up", "action item", "attendees",
	"minutes", "presentation", "deadline", "discussed", "standup", "sync up",
	"quarterly", "stakeholder", "budget",
}

var journalKeywords = []string{
	"i feel", "i felt", "today i", "grateful", "anxious", "woke up",
	"my day", "journal", "diary", "reflecting", "i'm happy", "i'm tired",
	"my family", "my friend", "looking forward",
}

var technicalKeywords = []string{
	"code", "bug", "function", "deploy", "database", "server", "api",
	"compile", "algorithm", "repository", "refactor", "debug", "endpoint",
	"merge", "pull request",
}

// Classify returns the content type for text. Pure and deterministic:
// identical input always yields the identical label.
//
// Scores are computed for meeting, personal-journal, and technical in that
// fixed order; on exact ties the earlier category wins. A winning score at or
// below GeneralFloor falls back to General.
func (c *Classifier) Classify(text string) summary.ContentType {
	normalized := Normalize(text)
	if normalized == "" {
		return summary.General
	}

	scores := []struct {
		label summary.ContentType
		value float64
	}{
		{summary.Meeting, clamp01(c.meetingScore(normalized) / c.MeetingNorm)},
		{summary.PersonalJournal, clamp01(c.journalScore(normalized) / c.JournalNorm)},
		{summary.Technical, clamp01(c.technicalScore(normalized) / c.TechnicalNorm)},
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.value > best.value {
			best = s
		}
	}

	if best.value <= c.GeneralFloor {
		return summary.General
	}
	return best.label
}

// Normalize lowercases text, strips filler words, and collapses whitespace.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = fillerPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func (c *Classifier) meetingScore(text string) float64 {
	score := keywordHits(text, meetingKeywords)

	// Attribution patterns indicate multi-party conversation and weigh
	// heavier than plain keyword hits.
	score += 3 * float64(len(speakerPattern.FindAllString(text, -1)))
	score += 2 * float64(len(saidPattern.FindAllString(text, -1)))

	return score
}

func (c *Classifier) journalScore(text string) float64 {
	score := keywordHits(text, journalKeywords)
	score += 2 * float64(len(firstPersonPattern.FindAllString(text, -1)))
	return score
}

func (c *Classifier) technicalScore(text string) float64 {
	score := keywordHits(text, technicalKeywords)

	score += 2 * float64(len(urlPattern.FindAllString(text, -1)))
	score += 2 * float64(len(versionPattern.FindAllString(text, -1)))

	// Method-call syntax only counts when parentheses are present; the
	// pattern also matches bare words, so require the call shape.
	for _, m := range methodCallPattern.FindAllString(text, -1) {
		if strings.Contains(m, "(") {
			score += 2
		}
	}

	return score
}

func keywordHits(text string, keywords []string) float64 {
	var score float64
	for _, k := range keywords {
		if strings.Contains(text, k) {
			score++
		}
	}
	return score
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
