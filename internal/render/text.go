// Package render holds the presentational helpers shared by the web
// and terminal frontends: markdown stripping, truncation, tag parsing,
// date formatting, per-type styling and timeline grouping.
package render

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	markdownMarkers = regexp.MustCompile("[#*_~`]")
	markdownLinks   = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
)

// StripMarkdown removes markdown markers from text for plain-text
// previews. It is a fixed transform, not a parser: it drops the
// characters #*_~` and rewrites [text](url) to text. Nested structures
// and reference-style links are not handled.
func StripMarkdown(text string) string {
	text = markdownMarkers.ReplaceAllString(text, "")
	text = markdownLinks.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// Truncate caps text at limit runes, appending an ellipsis only when
// the cap was hit.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

// ParseTags splits a comma-separated tag string into trimmed,
// non-empty tags: "a, b ,, c" yields [a b c].
func ParseTags(input string) []string {
	parts := strings.Split(input, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// FormatDate renders a timestamp as "Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatRelativeTime renders how long ago t was, falling back to the
// full date past a week.
func FormatRelativeTime(t time.Time, now time.Time) string {
	seconds := int(now.Sub(t).Seconds())
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	case seconds < 604800:
		return fmt.Sprintf("%dd ago", seconds/86400)
	default:
		return FormatDate(t)
	}
}
