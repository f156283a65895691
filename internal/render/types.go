package render

import "brian/internal/api"

// Preview lengths for stripped item content.
const (
	CardPreviewLimit     = 200
	TimelinePreviewLimit = 100
)

// TypeIcon returns the emoji marker for an item type. Unknown types
// from the server render with a neutral pin.
func TypeIcon(t api.ItemType) string {
	switch t {
	case api.TypeLink:
		return "🔗"
	case api.TypeNote:
		return "📝"
	case api.TypeSnippet:
		return "💻"
	case api.TypePaper:
		return "📄"
	default:
		return "📌"
	}
}

// TypeColor returns the hex fill color for an item type, matching the
// graph palette. Unknown types render neutral gray.
func TypeColor(t api.ItemType) string {
	switch t {
	case api.TypeLink:
		return "#6366f1"
	case api.TypeNote:
		return "#10b981"
	case api.TypeSnippet:
		return "#f59e0b"
	case api.TypePaper:
		return "#8b5cf6"
	default:
		return "#6b7280"
	}
}

// TypeLabel returns the display name for an item type.
func TypeLabel(t api.ItemType) string {
	switch t {
	case api.TypeLink:
		return "Link"
	case api.TypeNote:
		return "Note"
	case api.TypeSnippet:
		return "Snippet"
	case api.TypePaper:
		return "Paper"
	default:
		return string(t)
	}
}

// CardPreview returns the stripped, truncated content preview for a
// feed card.
func CardPreview(content string) string {
	return Truncate(StripMarkdown(content), CardPreviewLimit)
}

// TimelinePreview returns the shorter preview used in day groups.
func TimelinePreview(content string) string {
	return Truncate(StripMarkdown(content), TimelinePreviewLimit)
}
