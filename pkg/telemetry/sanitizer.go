package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// PIILevel controls how much user text survives into logs, traces and history previews.
type PIILevel string

const (
	// PIILevelNone replaces user text entirely
	PIILevelNone PIILevel = "none"
	// PIILevelHashed keeps the text but swaps detected PII for salted hashes
	PIILevelHashed PIILevel = "hashed"
	// PIILevelFull keeps text untouched
	PIILevelFull PIILevel = "full"

	redacted = "[REDACTED]"
)

// ParsePIILevel maps a config value to a level, defaulting to hashed.
func ParsePIILevel(value string) PIILevel {
	switch PIILevel(strings.ToLower(strings.TrimSpace(value))) {
	case PIILevelNone:
		return PIILevelNone
	case PIILevelFull:
		return PIILevelFull
	default:
		return PIILevelHashed
	}
}

type rule struct {
	pattern *regexp.Regexp
	replace func(s *Sanitizer, match string) string
}

// Sanitizer scrubs PII from free text before it leaves the request path.
type Sanitizer struct {
	level PIILevel
	salt  string
	rules []rule
}

// NewSanitizer creates a sanitizer. salt keeps hashes stable per deployment.
func NewSanitizer(level PIILevel, salt string) *Sanitizer {
	tagged := func(tag string) func(*Sanitizer, string) string {
		return func(s *Sanitizer, match string) string {
			return fmt.Sprintf("[%s:%s]", tag, s.Fingerprint(match))
		}
	}
	fixed := func(text string) func(*Sanitizer, string) string {
		return func(*Sanitizer, string) string { return text }
	}

	// Order matters: card and SSN numbers must be replaced before the phone pattern sees them.
	return &Sanitizer{
		level: level,
		salt:  salt,
		rules: []rule{
			{regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), tagged("EMAIL")},
			{regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`), fixed("[CC:REDACTED]")},
			{regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), fixed("[SSN:REDACTED]")},
			{regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`), tagged("IP")},
			{regexp.MustCompile(`\b(?:[A-Fa-f0-9]{1,4}:){7}[A-Fa-f0-9]{1,4}\b`), tagged("IP")},
			{regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`), tagged("PHONE")},
		},
	}
}

// Level returns the configured level.
func (s *Sanitizer) Level() PIILevel {
	return s.level
}

// SanitizeText applies the configured level to a piece of user text.
func (s *Sanitizer) SanitizeText(input string) string {
	if input == "" {
		return ""
	}
	switch s.level {
	case PIILevelNone:
		return redacted
	case PIILevelFull:
		return input
	default:
		return s.scrub(input)
	}
}

// Fingerprint returns a short salted hash suitable for correlating values in logs.
func (s *Sanitizer) Fingerprint(value string) string {
	sum := sha256.Sum256([]byte(value + s.salt))
	return hex.EncodeToString(sum[:])[:8]
}

func (s *Sanitizer) scrub(input string) string {
	result := input
	for _, r := range s.rules {
		result = r.pattern.ReplaceAllStringFunc(result, func(match string) string {
			return r.replace(s, match)
		})
	}
	return result
}
