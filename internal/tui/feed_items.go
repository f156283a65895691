package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"brian/internal/api"
	"brian/internal/render"
)

// feedItem adapts a knowledge item to the bubbles list.
type feedItem struct {
	item api.KnowledgeItem
}

func (f feedItem) Title() string {
	var b strings.Builder
	b.WriteString(render.TypeIcon(f.item.ItemType))
	b.WriteString(" ")
	b.WriteString(f.item.Title)
	if f.item.Favorite {
		b.WriteString(" ★")
	}
	return b.String()
}

func (f feedItem) Description() string {
	preview := render.Truncate(render.StripMarkdown(f.item.Content), 80)
	parts := []string{fmt.Sprintf("▲%d", f.item.VoteCount)}
	if len(f.item.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(f.item.Tags, " #"))
	}
	parts = append(parts, preview)
	return strings.Join(parts, "  ")
}

func (f feedItem) FilterValue() string {
	return f.item.Title
}

func feedItems(items []api.KnowledgeItem) []list.Item {
	out := make([]list.Item, len(items))
	for i, item := range items {
		out[i] = feedItem{item: item}
	}
	return out
}

// selectedItem returns the item under the feed cursor.
func (m appModel) selectedItem() (api.KnowledgeItem, bool) {
	selected, ok := m.feed.SelectedItem().(feedItem)
	if !ok {
		return api.KnowledgeItem{}, false
	}
	return selected.item, true
}
