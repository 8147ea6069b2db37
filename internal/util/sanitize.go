package util

import (
	"regexp"
	"strings"
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x1F\x7F]+`)
	sqlComment   = regexp.MustCompile(`(?m)--.*$`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// SanitizeForLog removes control characters and newlines from content before logging.
func SanitizeForLog(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return controlChars.ReplaceAllString(s, " ")
}

// PreviewSQL returns a single-line head of a SQL script with line comments dropped,
// cut to at most max runes.
func PreviewSQL(sql string, max int) string {
	s := sqlComment.ReplaceAllString(sql, "")
	s = strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
