// Package sanitize redacts personally identifying details from transcript
// text before it is sent to a remote summarization engine.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`\b[\w.+-]+@[\w-]+\.[\w.-]+\b`)

	// North-American style numbers with optional country code and common
	// separators. Spoken transcripts usually arrive already digit-formatted.
	phonePattern = regexp.MustCompile(`(?:\+?1[-. ]?)?\(?\d{3}\)?[-. ]\d{3}[-. ]\d{4}\b`)

	// Long secret-looking tokens: API keys, bearer tokens pasted into notes.
	tokenPattern = regexp.MustCompile(`\b(?:sk|pk|ghp|gho|xox[bap])[-_][A-Za-z0-9_-]{16,}\b`)

	ssnPattern = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
)

// Redact masks emails, phone numbers, SSNs, and secret tokens in text.
// Local-only engines skip this step; it exists for remote providers.
func Redact(text string) string {
	text = emailPattern.ReplaceAllString(text, "[email]")
	text = phonePattern.ReplaceAllString(text, "[phone]")
	text = ssnPattern.ReplaceAllString(text, "[ssn]")
	text = tokenPattern.ReplaceAllString(text, "[token]")
	return text
}

// ContainsPII reports whether text holds anything Redact would mask.
func ContainsPII(text string) bool {
	return emailPattern.MatchString(text) ||
		phonePattern.MatchString(text) ||
		ssnPattern.MatchString(text) ||
		tokenPattern.MatchString(text)
}

// StripTags removes angle-bracket markup fragments a transcription tool may
// leave behind, such as "<inaudible>" or "<crosstalk>" markers.
func StripTags(text string) string {
	return strings.TrimSpace(markerPattern.ReplaceAllString(text, ""))
}

var markerPattern = regexp.MustCompile(`</?(?:inaudible|crosstalk|silence|music|noise|laughter)[^>]*>`)
