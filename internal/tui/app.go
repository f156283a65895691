// Package tui is the terminal frontend: a bubbletea app over the same
// API client and state store as the web frontend, with feed, timeline,
// graph and region views, an edit form, and toast notifications.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"brian/internal/api"
	"brian/internal/config"
	"brian/internal/graph"
	"brian/internal/render"
	"brian/internal/store"
)

type view int

const (
	viewFeed view = iota
	viewDetail
	viewTimeline
	viewGraph
	viewRegions
	viewForm
	viewConfirm
	viewRegionForm
)

type appModel struct {
	cfg    *config.Config
	store  *store.Store
	logger *zap.Logger

	width  int
	height int
	view   view

	feed   list.Model
	search textinput.Model

	state     store.State
	searchSeq int

	detail      *api.KnowledgeItem
	detailConns []api.Connection

	timelineGroups []render.DayGroup
	timelineErr    string

	graph    *graph.Graph
	graphErr string

	regionCursor int
	regionInput  textinput.Model

	form    *formModel
	confirm confirmState

	toast    string
	toastSeq int
}

// confirmState is the pending delete confirmation.
type confirmState struct {
	itemID string
	title  string
}

func newAppModel(cfg *config.Config, st *store.Store, logger *zap.Logger) appModel {
	search := textinput.New()
	search.Placeholder = "Search your knowledge..."
	search.Prompt = "/ "
	search.CharLimit = 120

	regionInput := textinput.New()
	regionInput.Placeholder = "Region name"
	regionInput.CharLimit = 60

	delegate := list.NewDefaultDelegate()
	feed := list.New(nil, delegate, 0, 0)
	feed.Title = "🧠 brian"
	feed.SetShowStatusBar(false)
	feed.SetFilteringEnabled(false) // search goes through the API, not the local list
	feed.SetShowHelp(false)

	return appModel{
		cfg:         cfg,
		store:       st,
		logger:      logger,
		feed:        feed,
		search:      search,
		regionInput: regionInput,
		state:       st.State(),
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.refreshItems(), m.refreshStats(), m.refreshRegions())
}

// Run starts the terminal frontend and blocks until it exits.
func Run(cfg *config.Config, st *store.Store, logger *zap.Logger) error {
	program := tea.NewProgram(newAppModel(cfg, st, logger), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

const searchDebounce = 300 * time.Millisecond
const toastDuration = 3 * time.Second
