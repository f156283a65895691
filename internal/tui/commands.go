package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"brian/internal/api"
	"brian/internal/graph"
	"brian/internal/render"
	"brian/internal/store"
)

// Messages. Store actions run inside tea.Cmd goroutines; each command
// finishes by snapshotting the store so the model re-renders from the
// refetched state.

type stateMsg struct {
	state store.State
}

type detailMsg struct {
	item  *api.KnowledgeItem
	conns []api.Connection
	err   error
}

type timelineMsg struct {
	groups []render.DayGroup
	err    error
}

type graphMsg struct {
	g   *graph.Graph
	err error
}

type searchTickMsg struct {
	seq   int
	query string
}

type toastExpiredMsg struct {
	seq int
}

func (m appModel) snapshot() tea.Msg {
	return stateMsg{state: m.store.State()}
}

func (m appModel) refreshItems() tea.Cmd {
	return func() tea.Msg {
		_ = m.store.FetchItems(context.Background())
		return m.snapshot()
	}
}

func (m appModel) refreshStats() tea.Cmd {
	return func() tea.Msg {
		m.store.FetchStats(context.Background())
		return m.snapshot()
	}
}

func (m appModel) refreshRegions() tea.Cmd {
	return func() tea.Msg {
		_ = m.store.FetchRegions(context.Background())
		return m.snapshot()
	}
}

func (m appModel) searchItems(query string) tea.Cmd {
	return func() tea.Msg {
		if len(query) >= 2 {
			_ = m.store.SearchItems(context.Background(), query)
		} else {
			_ = m.store.FetchItems(context.Background())
		}
		return m.snapshot()
	}
}

func (m appModel) debounceSearch(seq int, query string) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq, query: query}
	})
}

func (m appModel) loadDetail(id string) tea.Cmd {
	return func() tea.Msg {
		item, err := m.store.FetchItem(context.Background(), id)
		if err != nil {
			return detailMsg{err: err}
		}
		conns, err := m.store.Client().ItemConnections(context.Background(), id)
		if err != nil {
			// The detail view still works without connections.
			conns = nil
		}
		return detailMsg{item: item, conns: conns}
	}
}

func (m appModel) loadTimeline(cursor time.Time) tea.Cmd {
	return func() tea.Msg {
		start, end := render.MonthRange(cursor)
		items, err := m.store.Client().Timeline(context.Background(), start, end)
		if err != nil {
			return timelineMsg{err: err}
		}
		return timelineMsg{groups: render.GroupByDay(items)}
	}
}

func (m appModel) loadGraph() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		data, err := m.store.Client().Graph(ctx)
		if err != nil {
			return graphMsg{err: err}
		}
		items, err := m.store.Client().ListItems(ctx, api.ListOptions{Limit: 500})
		if err != nil {
			return graphMsg{err: err}
		}
		return graphMsg{g: graph.Build(items, data.Connections)}
	}
}

func (m appModel) toggleFavorite(id string) tea.Cmd {
	return func() tea.Msg {
		_ = m.store.ToggleFavorite(context.Background(), id)
		return m.snapshot()
	}
}

func (m appModel) vote(id string, direction api.VoteDirection) tea.Cmd {
	return func() tea.Msg {
		_ = m.store.VoteItem(context.Background(), id, direction)
		return m.snapshot()
	}
}

func (m appModel) deleteItem(id string) tea.Cmd {
	return func() tea.Msg {
		_ = m.store.DeleteItem(context.Background(), id)
		return m.snapshot()
	}
}

func (m appModel) submitItem(form *formModel) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if form.editingID != "" {
			_ = m.store.UpdateItem(ctx, form.editingID, form.payload())
		} else {
			_ = m.store.CreateItem(ctx, form.payload())
		}
		m.store.FetchStats(ctx)
		return m.snapshot()
	}
}

func (m appModel) createRegion(name string) tea.Cmd {
	return func() tea.Msg {
		_, _ = m.store.CreateRegion(context.Background(), api.RegionPayload{
			Name:  name,
			Color: render.TypeColor(api.TypeNote), // new regions start green
		})
		return m.snapshot()
	}
}

func (m appModel) toggleRegionVisibility(id string) tea.Cmd {
	return func() tea.Msg {
		_, _ = m.store.ToggleRegionVisibility(context.Background(), id)
		return m.snapshot()
	}
}

func (m appModel) deleteRegion(id string) tea.Cmd {
	return func() tea.Msg {
		_ = m.store.DeleteRegion(context.Background(), id)
		return m.snapshot()
	}
}

func (m appModel) addItemToRegion(regionID, itemID string) tea.Cmd {
	return func() tea.Msg {
		_, _ = m.store.AddItemsToRegion(context.Background(), regionID, []string{itemID})
		return m.snapshot()
	}
}

func (m appModel) removeItemFromRegion(regionID, itemID string) tea.Cmd {
	return func() tea.Msg {
		_ = m.store.RemoveItemFromRegion(context.Background(), regionID, itemID)
		return m.snapshot()
	}
}

func (m appModel) expireToast(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}
