package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"brian/internal/api"
	"brian/internal/render"
)

func (m appModel) View() string {
	var b strings.Builder
	b.WriteString(m.headerView())

	switch m.view {
	case viewFeed:
		b.WriteString(m.feedView())
	case viewDetail:
		b.WriteString(m.detailView())
	case viewTimeline:
		b.WriteString(m.timelineView())
	case viewGraph:
		b.WriteString(m.graphView())
	case viewRegions:
		b.WriteString(m.regionsView())
	case viewRegionForm:
		b.WriteString(m.regionFormView())
	case viewForm:
		b.WriteString(m.formView())
	case viewConfirm:
		b.WriteString(m.confirmView())
	}

	b.WriteString(m.footerView())
	return b.String()
}

func (m appModel) headerView() string {
	tabs := []string{"1 feed", "2 timeline", "3 graph", "4 regions"}
	active := map[view]int{viewFeed: 0, viewTimeline: 1, viewGraph: 2, viewRegions: 3}
	if i, ok := active[m.view]; ok {
		tabs[i] = selectedStyle.Render(tabs[i])
	}

	stats := statsStyle.Render(fmt.Sprintf(
		"%d items · %d connections · %d tags",
		m.state.Stats.TotalItems, m.state.Stats.TotalConnections, m.state.Stats.TotalTags,
	))

	line := titleStyle.Render("🧠 brian") + "  " + strings.Join(tabs, "  ") + "  " + stats
	return headerStyle.Render(line) + "\n"
}

func (m appModel) feedView() string {
	var b strings.Builder
	b.WriteString(m.search.View())
	b.WriteString("\n")

	if f := m.filterLine(); f != "" {
		b.WriteString(dimStyle.Render(f))
		b.WriteString("\n")
	}

	if m.state.Loading && len(m.state.Items) == 0 {
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
		return b.String()
	}
	if len(m.state.Items) == 0 {
		b.WriteString(labelStyle.Render("No items yet. Press n to add your first one."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.feed.View())
	b.WriteString("\n")
	return b.String()
}

// filterLine summarizes the active filters, or is empty when none are
// set beyond the defaults.
func (m appModel) filterLine() string {
	var parts []string
	if t := m.state.Filters.ItemType; t != "" {
		parts = append(parts, "type: "+render.TypeLabel(t))
	}
	if m.state.Filters.FavoriteOnly {
		parts = append(parts, "favorites only")
	}
	if m.state.Filters.SortBy != "created_at" {
		parts = append(parts, "sort: "+m.state.Filters.SortBy)
	}
	if q := m.state.Filters.Query; q != "" {
		parts = append(parts, fmt.Sprintf("search: %q", q))
	}
	return strings.Join(parts, " · ")
}

func (m appModel) detailView() string {
	item := m.detail
	if item == nil {
		return labelStyle.Render("No item loaded.") + "\n"
	}

	var b strings.Builder
	title := render.TypeIcon(item.ItemType) + " " + item.Title
	if item.Favorite {
		title += " ★"
	}
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")

	meta := []string{
		render.TypeLabel(item.ItemType),
		render.FormatDate(item.CreatedAt),
		fmt.Sprintf("▲%d", item.VoteCount),
	}
	if item.URL != nil {
		meta = append(meta, *item.URL)
	}
	if item.Language != nil {
		meta = append(meta, *item.Language)
	}
	b.WriteString(labelStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")

	if len(item.Tags) > 0 {
		b.WriteString(tagStyle.Render("#" + strings.Join(item.Tags, " #")))
		b.WriteString("\n")
	}

	width := m.width - 4
	if width <= 0 {
		width = 80
	}
	b.WriteString(renderMarkdown(item.Content, width))
	b.WriteString("\n")

	if len(m.detailConns) > 0 {
		b.WriteString(sectionStyle.Render("Connections"))
		b.WriteString("\n")
		for _, conn := range m.detailConns {
			other := conn.TargetItemID
			if other == item.ID {
				other = conn.SourceItemID
			}
			b.WriteString(labelStyle.Render(fmt.Sprintf("  ↔ %s (strength %.1f)", other, conn.Strength)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m appModel) timelineView() string {
	var b strings.Builder
	cursor := m.state.Filters.TimelineMonth
	b.WriteString(sectionStyle.Render("📅 " + render.MonthLabel(cursor)))
	b.WriteString("\n\n")

	if m.timelineErr != "" {
		b.WriteString(errorStyle.Render(m.timelineErr))
		b.WriteString("\n")
		return b.String()
	}
	if len(m.timelineGroups) == 0 {
		b.WriteString(labelStyle.Render("No items in this month."))
		b.WriteString("\n")
		return b.String()
	}

	for _, group := range m.timelineGroups {
		b.WriteString(selectedStyle.Render(group.Label()))
		b.WriteString("\n")
		for _, item := range group.Items {
			preview := render.TimelinePreview(item.Content)
			b.WriteString(fmt.Sprintf("  %s %s\n", render.TypeIcon(item.ItemType), item.Title))
			if preview != "" {
				b.WriteString(dimStyle.Render("     " + preview))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m appModel) graphView() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🕸 Knowledge graph"))
	b.WriteString("\n\n")

	if m.graphErr != "" {
		b.WriteString(errorStyle.Render(m.graphErr))
		b.WriteString("\n")
		return b.String()
	}
	if m.graph == nil {
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
		return b.String()
	}
	if len(m.graph.Nodes) == 0 {
		b.WriteString(labelStyle.Render("Nothing to show yet. Connect some items first."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.asciiGraph())
	b.WriteString("\n")
	b.WriteString(statsStyle.Render(fmt.Sprintf(
		"%d nodes · %d edges", len(m.graph.Nodes), len(m.graph.Edges),
	)))
	b.WriteString("\n")
	return b.String()
}

// asciiGraph plots the laid-out nodes on a character grid with a
// numbered legend, the terminal stand-in for the SVG rendering.
func (m appModel) asciiGraph() string {
	cols := m.width - 4
	rows := m.height - 14
	if cols < 20 {
		cols = 60
	}
	if rows < 8 {
		rows = 16
	}

	g := *m.graph
	g.Layout(float64(cols), float64(rows))

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = make([]rune, cols)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	var legend strings.Builder
	for i, node := range g.Nodes {
		x := int(node.X)
		y := int(node.Y)
		if x < 0 {
			x = 0
		}
		if x >= cols {
			x = cols - 1
		}
		if y < 0 {
			y = 0
		}
		if y >= rows {
			y = rows - 1
		}
		marker := rune('A' + i%26)
		grid[y][x] = marker
		if i < 26 {
			legend.WriteString(fmt.Sprintf("  %c %s %s\n",
				marker, render.TypeIcon(node.Type), node.Label()))
		}
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	b.WriteString(legend.String())
	return b.String()
}

func (m appModel) regionsView() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Regions"))
	b.WriteString("\n\n")

	if m.state.RegionsLoading && len(m.state.Regions) == 0 {
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
		return b.String()
	}
	if len(m.state.Regions) == 0 {
		b.WriteString(labelStyle.Render("No regions yet. Press R to create one."))
		b.WriteString("\n")
		return b.String()
	}

	for i, region := range m.state.Regions {
		cursor := "  "
		if i == m.regionCursor {
			cursor = selectedStyle.Render("> ")
		}
		visibility := "shown"
		if !region.Visible {
			visibility = dimStyle.Render("hidden")
		}
		line := fmt.Sprintf("%s%s  (%d items, %s)", cursor, region.Name, len(region.ItemIDs), visibility)
		if m.state.SelectedRegion != nil && m.state.SelectedRegion.ID == region.ID {
			line += tagStyle.Render("  [selected]")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if sel := m.state.SelectedRegion; sel != nil && len(sel.ItemIDs) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%s contains %d items", sel.Name, len(sel.ItemIDs))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m appModel) regionFormView() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("New region"))
	b.WriteString("\n\n")
	b.WriteString(m.regionInput.View())
	b.WriteString("\n")
	return b.String()
}

func (m appModel) formView() string {
	f := m.form
	if f == nil {
		return ""
	}

	heading := "✨ Add new item"
	if f.editingID != "" {
		heading = "Edit item"
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render(heading))
	b.WriteString("\n\n")

	b.WriteString(m.formLabel("Type", fieldType))
	var types []string
	for _, t := range api.Types() {
		label := render.TypeIcon(t) + " " + render.TypeLabel(t)
		if t == f.itemType {
			label = selectedStyle.Render("[" + label + "]")
		} else {
			label = dimStyle.Render(" " + label + " ")
		}
		types = append(types, label)
	}
	b.WriteString("  " + strings.Join(types, " "))
	b.WriteString("\n\n")

	b.WriteString(m.formLabel("Title", fieldTitle))
	b.WriteString("  " + f.title.View() + "\n\n")

	if f.itemType.HasURL() {
		b.WriteString(m.formLabel("URL", fieldURL))
		b.WriteString("  " + f.url.View() + "\n\n")
	}
	if f.itemType.HasLanguage() {
		b.WriteString(m.formLabel("Language", fieldLanguage))
		b.WriteString("  " + f.language.View() + "\n\n")
	}

	b.WriteString(m.formLabel("Content", fieldContent))
	b.WriteString(f.content.View())
	b.WriteString("\n\n")

	b.WriteString(m.formLabel("Tags", fieldTags))
	b.WriteString("  " + f.tags.View() + "\n")

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(f.errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m appModel) formLabel(text string, field formField) string {
	if m.form != nil && m.form.focus == field {
		return selectedStyle.Render(text) + "\n"
	}
	return labelStyle.Render(text) + "\n"
}

func (m appModel) confirmView() string {
	body := fmt.Sprintf("Delete %q?\n\nThis cannot be undone.\n\n%s",
		m.confirm.title,
		labelStyle.Render("y delete · n cancel"))
	box := boxStyle.Render(body)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height-6, lipgloss.Center, lipgloss.Center, box)
	}
	return box + "\n"
}

func (m appModel) footerView() string {
	var lines []string
	if m.state.Err != "" {
		lines = append(lines, errorStyle.Render("⚠ "+m.state.Err))
	}
	if m.toast != "" {
		lines = append(lines, toastStyle.Render(m.toast))
	}
	lines = append(lines, helpStyle.Render(m.helpLine()))
	return "\n" + strings.Join(lines, "\n")
}

func (m appModel) helpLine() string {
	switch m.view {
	case viewFeed:
		return "enter open · n new · e edit · x delete · f fav · u/d vote · / search · t type · o favs · s sort · a region · q quit"
	case viewDetail:
		return "esc back"
	case viewTimeline:
		return "[ prev month · ] next month · esc back"
	case viewGraph:
		return "r reload · esc back"
	case viewRegions:
		return "j/k move · enter select · v show/hide · R new · D delete · x remove item · esc back"
	case viewRegionForm:
		return "enter create · esc cancel"
	case viewForm:
		return "tab next field · ctrl+s save · esc cancel"
	case viewConfirm:
		return "y confirm · n cancel"
	}
	return ""
}
