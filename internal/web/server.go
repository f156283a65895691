// Package web is the server-rendered web frontend: chi router, page
// handlers and middleware over the shared API client and state store.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"brian/internal/api"
	"brian/internal/config"
	"brian/internal/store"
)

// Server holds the web frontend's dependencies.
type Server struct {
	cfg       *config.Config
	logger    *zap.Logger
	client    *api.Client
	store     *store.Store
	templates *Templates
	registry  *prometheus.Registry
	metrics   *Metrics
}

// NewServer wires a web frontend over the given client and store.
func NewServer(cfg *config.Config, logger *zap.Logger, client *api.Client, st *store.Store) (*Server, error) {
	templates, err := NewTemplates()
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:       cfg,
		logger:    logger,
		client:    client,
		store:     st,
		templates: templates,
		registry:  prometheus.NewRegistry(),
	}
	if cfg.Web.EnableMetrics {
		s.metrics = NewMetrics(s.registry)
	}
	return s, nil
}

// Router builds the chi routing tree with the middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logging(s.logger))
	r.Use(Recovery(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Web.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         86400,
	}))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Get("/healthz", s.handleHealth)

	r.Get("/", s.handleFeed)
	r.Get("/partials/items", s.handleItemsPartial)
	r.Get("/timeline", s.handleTimeline)
	r.Get("/graph", s.handleGraph)

	r.Get("/items/new", s.handleNewItem)
	r.Get("/items/{itemID}/edit", s.handleEditItem)
	r.Post("/items", s.handleCreateItem)
	r.Post("/items/{itemID}", s.handleUpdateItem)
	r.Post("/items/{itemID}/favorite", s.handleFavorite)
	r.Post("/items/{itemID}/vote", s.handleVote)
	r.Post("/items/{itemID}/delete", s.handleDelete)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
