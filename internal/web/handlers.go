package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"brian/internal/api"
	"brian/internal/graph"
	"brian/internal/render"
	"brian/internal/store"
)

// feedData is the view model for the feed page and the items partial.
type feedData struct {
	PageData
	Items   []api.KnowledgeItem
	Filters store.Filters
	Types   []api.ItemType
}

// applyListParams copies the request's filter parameters into the
// store. Filters never refetch by themselves; the handler fetches
// after this.
func (s *Server) applyListParams(r *http.Request) {
	q := r.URL.Query()
	if q.Has("item_type") {
		s.store.SetTypeFilter(api.ItemType(q.Get("item_type")))
	}
	if q.Has("favorite_only") {
		s.store.SetFavoriteOnly(q.Get("favorite_only") == "true")
	}
	if q.Has("sort_by") {
		order := api.SortDesc
		if q.Get("sort_order") == string(api.SortAsc) {
			order = api.SortAsc
		}
		s.store.SetSort(q.Get("sort_by"), order)
	}
	if q.Has("q") {
		s.store.SetQuery(q.Get("q"))
	}
}

// loadItems runs the search when a query of at least two characters is
// active, otherwise the filtered list. Sub-2-character queries reset
// to the plain feed.
func (s *Server) loadItems(r *http.Request) {
	query := s.store.Filters().Query
	if len(query) >= 2 {
		_ = s.store.SearchItems(r.Context(), query)
		return
	}
	_ = s.store.FetchItems(r.Context())
}

func (s *Server) feedData(state store.State, active string) feedData {
	return feedData{
		PageData: PageData{Active: active, Stats: state.Stats, Err: state.Err},
		Items:    state.Items,
		Filters:  state.Filters,
		Types:    api.Types(),
	}
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	s.applyListParams(r)
	s.loadItems(r)
	s.store.FetchStats(r.Context())
	s.renderPage(w, "feed", s.feedData(s.store.State(), "feed"))
}

func (s *Server) handleItemsPartial(w http.ResponseWriter, r *http.Request) {
	s.applyListParams(r)
	s.loadItems(r)
	if err := s.templates.ItemsGrid(w, s.feedData(s.store.State(), "feed")); err != nil {
		s.logger.Error("render items partial", zap.Error(err))
	}
}

// timelineData is the view model for the timeline page.
type timelineData struct {
	PageData
	Groups     []render.DayGroup
	MonthLabel string
	PrevMonth  string
	NextMonth  string
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	cursor := s.store.Filters().TimelineMonth
	if m := r.URL.Query().Get("month"); m != "" {
		if parsed, err := time.ParseInLocation("2006-01", m, time.Local); err == nil {
			cursor = parsed
			s.store.SetTimelineMonth(cursor)
		}
	}

	start, end := render.MonthRange(cursor)
	state := s.store.State()
	data := timelineData{
		PageData:   PageData{Active: "timeline", Stats: state.Stats},
		MonthLabel: render.MonthLabel(cursor),
		PrevMonth:  render.PrevMonth(cursor).Format("2006-01"),
		NextMonth:  render.NextMonth(cursor).Format("2006-01"),
	}

	items, err := s.client.Timeline(r.Context(), start, end)
	if err != nil {
		data.Err = "Error loading timeline: " + err.Error()
	} else {
		data.Groups = render.GroupByDay(items)
	}
	s.renderPage(w, "timeline", data)
}

// graphViewData is the view model for the graph page.
type graphViewData struct {
	PageData
	SVG   template.HTML
	Nodes int
	Edges int
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	state := s.store.State()
	data := graphViewData{PageData: PageData{Active: "graph", Stats: state.Stats}}

	graphData, err := s.client.Graph(r.Context())
	if err != nil {
		data.Err = "Error loading graph: " + err.Error()
		s.renderPage(w, "graph", data)
		return
	}
	items, err := s.client.ListItems(r.Context(), api.ListOptions{Limit: 500})
	if err != nil {
		data.Err = "Error loading graph: " + err.Error()
		s.renderPage(w, "graph", data)
		return
	}

	g := graph.Build(items, graphData.Connections)
	width, height := s.cfg.Web.GraphWidth, s.cfg.Web.GraphHeight
	g.Layout(float64(width), float64(height))
	data.SVG = template.HTML(g.SVG(width, height))
	data.Nodes = len(g.Nodes)
	data.Edges = len(g.Edges)
	s.renderPage(w, "graph", data)
}

// formData is the view model for the create/edit form page.
type formData struct {
	PageData
	Form    ItemForm
	Editing bool
	Types   []api.ItemType
	FormErr string
}

func (s *Server) handleNewItem(w http.ResponseWriter, r *http.Request) {
	s.store.OpenModal("")
	state := s.store.State()
	s.renderPage(w, "form", formData{
		PageData: PageData{Active: "feed", Title: "Add Knowledge", Stats: state.Stats},
		Form:     ItemForm{ItemType: api.TypeLink},
		Types:    api.Types(),
	})
}

func (s *Server) handleEditItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	item, err := s.store.FetchItem(r.Context(), itemID)
	if err != nil {
		state := s.store.State()
		s.renderPage(w, "form", formData{
			PageData: PageData{Active: "feed", Title: "Edit Knowledge", Stats: state.Stats,
				Err: "Failed to load item for editing: " + err.Error()},
			Form:  ItemForm{ItemType: api.TypeLink},
			Types: api.Types(),
		})
		return
	}
	s.store.OpenModal(itemID)
	state := s.store.State()
	s.renderPage(w, "form", formData{
		PageData: PageData{Active: "feed", Title: "Edit Knowledge", Stats: state.Stats},
		Form:     formFromItem(item),
		Editing:  true,
		Types:    api.Types(),
	})
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	form := parseItemForm(r)
	if err := validate.Struct(form); err != nil {
		s.renderFormError(w, form, false, validationMessage(err), http.StatusBadRequest)
		return
	}
	if err := s.store.CreateItem(r.Context(), form.Payload()); err != nil {
		s.renderFormError(w, form, false, "Failed to save item: "+err.Error(), http.StatusBadGateway)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	form := parseItemForm(r)
	form.ID = itemID
	if err := validate.Struct(form); err != nil {
		s.renderFormError(w, form, true, validationMessage(err), http.StatusBadRequest)
		return
	}
	if err := s.store.UpdateItem(r.Context(), itemID, form.Payload()); err != nil {
		s.renderFormError(w, form, true, "Failed to save item: "+err.Error(), http.StatusBadGateway)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderFormError(w http.ResponseWriter, form ItemForm, editing bool, msg string, status int) {
	state := s.store.State()
	w.WriteHeader(status)
	s.renderPage(w, "form", formData{
		PageData: PageData{Active: "feed", Stats: state.Stats},
		Form:     form,
		Editing:  editing,
		Types:    api.Types(),
		FormErr:  msg,
	})
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	_ = s.store.ToggleFavorite(r.Context(), itemID)
	s.redirectBack(w, r)
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	direction := api.VoteDirection(r.URL.Query().Get("direction"))
	if direction != api.VoteUp && direction != api.VoteDown {
		http.Error(w, "direction must be up or down", http.StatusBadRequest)
		return
	}
	_ = s.store.VoteItem(r.Context(), itemID, direction)
	s.redirectBack(w, r)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	_ = s.store.DeleteItem(r.Context(), itemID)
	s.redirectBack(w, r)
}

// redirectBack returns to the page the action came from, defaulting to
// the feed. A failed action's error lands in the store and shows as
// the banner on the next render.
func (s *Server) redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) renderPage(w http.ResponseWriter, name string, data interface{}) {
	if err := s.templates.Page(w, name, data); err != nil {
		s.logger.Error("render page", zap.String("page", name), zap.Error(err))
	}
}
