package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"brian/internal/api"
	"brian/internal/render"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.feed.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case stateMsg:
		return m.onState(msg)

	case detailMsg:
		if msg.err != nil {
			return m.showToast("Failed to load item: " + msg.err.Error())
		}
		m.detail = msg.item
		m.detailConns = msg.conns
		m.view = viewDetail
		return m, nil

	case timelineMsg:
		if msg.err != nil {
			m.timelineErr = "Error loading timeline: " + msg.err.Error()
		} else {
			m.timelineErr = ""
			m.timelineGroups = msg.groups
		}
		return m, nil

	case graphMsg:
		if msg.err != nil {
			m.graphErr = "Error loading graph: " + msg.err.Error()
		} else {
			m.graphErr = ""
			m.graph = msg.g
		}
		return m, nil

	case searchTickMsg:
		if msg.seq != m.searchSeq {
			return m, nil // superseded by a newer keystroke
		}
		m.store.SetQuery(msg.query)
		return m, m.searchItems(msg.query)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m.routeToFocused(msg)
}

func (m appModel) onState(msg stateMsg) (tea.Model, tea.Cmd) {
	m.state = msg.state
	m.feed.SetItems(feedItems(msg.state.Items))
	if m.regionCursor >= len(msg.state.Regions) {
		m.regionCursor = 0
	}

	if m.view == viewForm && m.form != nil && m.form.submitted {
		m.form.submitted = false
		if msg.state.Err == "" {
			m.form = nil
			m.view = viewFeed
			return m.showToast("Item saved successfully!")
		}
		m.form.errMsg = "Failed to save item: " + msg.state.Err
	}
	return m, nil
}

func (m appModel) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.search.Focused() {
		return m.onSearchKey(msg)
	}

	switch m.view {
	case viewFeed:
		return m.onFeedKey(msg)
	case viewDetail:
		switch msg.String() {
		case "esc", "backspace", "q":
			m.view = viewFeed
			m.detail = nil
		}
		return m, nil
	case viewTimeline:
		return m.onTimelineKey(msg)
	case viewGraph:
		switch msg.String() {
		case "esc", "1", "q":
			m.view = viewFeed
		case "r":
			return m, m.loadGraph()
		}
		return m, nil
	case viewRegions:
		return m.onRegionsKey(msg)
	case viewRegionForm:
		return m.onRegionFormKey(msg)
	case viewForm:
		return m.onFormKey(msg)
	case viewConfirm:
		switch msg.String() {
		case "y", "enter":
			id := m.confirm.itemID
			m.confirm = confirmState{}
			m.view = viewFeed
			return m, m.deleteItem(id)
		case "n", "esc":
			m.confirm = confirmState{}
			m.view = viewFeed
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) onSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Blur()
		m.search.SetValue("")
		m.searchSeq++
		m.store.SetQuery("")
		return m, m.refreshItems()
	case "enter":
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.searchSeq++
		return m, tea.Batch(cmd, m.debounceSearch(m.searchSeq, m.search.Value()))
	}
	return m, cmd
}

func (m appModel) onFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.search.Focus()
		return m, nil
	case "n":
		m.store.OpenModal("")
		m.form = newFormModel(nil)
		m.form.setFocus(fieldTitle)
		m.view = viewForm
		return m, nil
	case "e":
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		m.store.OpenModal(item.ID)
		m.form = newFormModel(&item)
		m.form.setFocus(fieldTitle)
		m.view = viewForm
		return m, nil
	case "enter":
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		return m, m.loadDetail(item.ID)
	case "x":
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		m.confirm = confirmState{itemID: item.ID, title: item.Title}
		m.view = viewConfirm
		return m, nil
	case "f":
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		return m, m.toggleFavorite(item.ID)
	case "u":
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		return m, m.vote(item.ID, api.VoteUp)
	case "d":
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		return m, m.vote(item.ID, api.VoteDown)
	case "t":
		m.store.SetTypeFilter(nextTypeFilter(m.state.Filters.ItemType))
		return m, m.refreshItems()
	case "o":
		m.store.SetFavoriteOnly(!m.state.Filters.FavoriteOnly)
		return m, m.refreshItems()
	case "s":
		by, order := nextSort(m.state.Filters.SortBy)
		m.store.SetSort(by, order)
		return m, m.refreshItems()
	case "a":
		return m.addSelectedToRegion()
	case "2":
		m.view = viewTimeline
		return m, m.loadTimeline(m.store.Filters().TimelineMonth)
	case "3":
		m.view = viewGraph
		return m, m.loadGraph()
	case "4":
		m.view = viewRegions
		return m, m.refreshRegions()
	}

	var cmd tea.Cmd
	m.feed, cmd = m.feed.Update(msg)
	return m, cmd
}

func (m appModel) onTimelineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "1", "q":
		m.view = viewFeed
		return m, nil
	case "[":
		cursor := render.PrevMonth(m.store.Filters().TimelineMonth)
		m.store.SetTimelineMonth(cursor)
		return m, m.loadTimeline(cursor)
	case "]":
		cursor := render.NextMonth(m.store.Filters().TimelineMonth)
		m.store.SetTimelineMonth(cursor)
		return m, m.loadTimeline(cursor)
	}
	return m, nil
}

func (m appModel) onRegionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	regions := m.state.Regions
	switch msg.String() {
	case "esc", "1", "q":
		m.view = viewFeed
		return m, nil
	case "up", "k":
		if m.regionCursor > 0 {
			m.regionCursor--
		}
		return m, nil
	case "down", "j":
		if m.regionCursor < len(regions)-1 {
			m.regionCursor++
		}
		return m, nil
	case "enter":
		if m.regionCursor < len(regions) {
			region := regions[m.regionCursor]
			m.store.SetSelectedRegion(&region)
			return m.showToast("Selected region " + region.Name)
		}
		return m, nil
	case "v":
		if m.regionCursor < len(regions) {
			return m, m.toggleRegionVisibility(regions[m.regionCursor].ID)
		}
		return m, nil
	case "R":
		m.regionInput.SetValue("")
		m.regionInput.Focus()
		m.view = viewRegionForm
		return m, nil
	case "D":
		if m.regionCursor < len(regions) {
			return m, m.deleteRegion(regions[m.regionCursor].ID)
		}
		return m, nil
	case "x":
		if m.regionCursor < len(regions) {
			if item, ok := m.selectedItem(); ok {
				return m, m.removeItemFromRegion(regions[m.regionCursor].ID, item.ID)
			}
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) onRegionFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.regionInput.Blur()
		m.view = viewRegions
		return m, nil
	case "enter":
		name := m.regionInput.Value()
		m.regionInput.Blur()
		m.view = viewRegions
		if name == "" {
			return m, nil
		}
		return m, m.createRegion(name)
	}
	var cmd tea.Cmd
	m.regionInput, cmd = m.regionInput.Update(msg)
	return m, cmd
}

func (m appModel) onFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.store.CloseModal()
		m.form = nil
		m.view = viewFeed
		return m, nil
	case "tab":
		m.form.focusNext(1)
		return m, nil
	case "shift+tab":
		m.form.focusNext(-1)
		return m, nil
	case "ctrl+s":
		if !m.form.validate() {
			return m, nil
		}
		m.form.submitted = true
		return m, m.submitItem(m.form)
	case "enter":
		// Enter inserts a newline only inside the content area.
		if m.form.focus != fieldContent {
			m.form.focusNext(1)
			return m, nil
		}
	}
	return m, m.form.update(msg)
}

// addSelectedToRegion adds the cursored feed item to the selected
// region, if both exist.
func (m appModel) addSelectedToRegion() (tea.Model, tea.Cmd) {
	if m.state.SelectedRegion == nil {
		return m.showToast("No region selected (choose one in the regions view)")
	}
	item, ok := m.selectedItem()
	if !ok {
		return m, nil
	}
	return m, m.addItemToRegion(m.state.SelectedRegion.ID, item.ID)
}

func (m appModel) showToast(text string) (tea.Model, tea.Cmd) {
	m.toast = text
	m.toastSeq++
	return m, m.expireToast(m.toastSeq)
}

// routeToFocused forwards non-key messages (blink ticks and the like)
// to the active input component.
func (m appModel) routeToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.search.Focused() {
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.view == viewForm && m.form != nil {
		cmds = append(cmds, m.form.update(msg))
	}
	if m.view == viewRegionForm {
		m.regionInput, cmd = m.regionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.feed, cmd = m.feed.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// nextTypeFilter cycles all → link → note → snippet → paper → all.
func nextTypeFilter(current api.ItemType) api.ItemType {
	switch current {
	case "":
		return api.TypeLink
	case api.TypeLink:
		return api.TypeNote
	case api.TypeNote:
		return api.TypeSnippet
	case api.TypeSnippet:
		return api.TypePaper
	default:
		return ""
	}
}

// nextSort cycles newest → most voted → title.
func nextSort(current string) (string, api.SortOrder) {
	switch current {
	case "created_at":
		return "vote_count", api.SortDesc
	case "vote_count":
		return "title", api.SortAsc
	default:
		return "created_at", api.SortDesc
	}
}
