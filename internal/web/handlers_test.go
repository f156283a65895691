package web_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"brian/internal/api"
	"brian/internal/config"
	"brian/internal/store"
	"brian/internal/web"
)

// fakeBackend emulates the REST API the frontend talks to.
type fakeBackend struct {
	mux     *http.ServeMux
	items   []api.KnowledgeItem
	created []api.ItemPayload
}

func newFakeBackend() *fakeBackend {
	f := &fakeBackend{mux: http.NewServeMux()}

	f.mux.HandleFunc("GET /api/v1/items", func(w http.ResponseWriter, r *http.Request) {
		items := f.items
		if t := r.URL.Query().Get("item_type"); t != "" {
			filtered := items[:0:0]
			for _, item := range items {
				if string(item.ItemType) == t {
					filtered = append(filtered, item)
				}
			}
			items = filtered
		}
		json.NewEncoder(w).Encode(items)
	})
	f.mux.HandleFunc("POST /api/v1/items", func(w http.ResponseWriter, r *http.Request) {
		var payload api.ItemPayload
		json.NewDecoder(r.Body).Decode(&payload)
		f.created = append(f.created, payload)
		item := api.KnowledgeItem{ID: "new", Title: payload.Title, Content: payload.Content, ItemType: payload.ItemType}
		f.items = append(f.items, item)
		json.NewEncoder(w).Encode(item)
	})
	f.mux.HandleFunc("GET /api/v1/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.Stats{TotalItems: len(f.items)})
	})
	f.mux.HandleFunc("GET /api/v1/search", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]api.KnowledgeItem{})
	})
	f.mux.HandleFunc("GET /api/v1/timeline", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.items)
	})
	f.mux.HandleFunc("GET /api/v1/graph", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.GraphData{})
	})
	f.mux.HandleFunc("POST /api/v1/items/{id}/vote", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	})

	return f
}

func newTestServer(t *testing.T) (*fakeBackend, http.Handler) {
	t.Helper()
	backend := newFakeBackend()
	backendSrv := httptest.NewServer(backend.mux)
	t.Cleanup(backendSrv.Close)

	cfg := config.Default()
	cfg.APIURL = backendSrv.URL

	logger := zap.NewNop()
	client := api.NewClient(cfg.APIURL, logger)
	st := store.New(client, logger)

	server, err := web.NewServer(cfg, logger, client, st)
	require.NoError(t, err)
	return backend, server.Router()
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestFeedPage(t *testing.T) {
	backend, handler := newTestServer(t)
	backend.items = []api.KnowledgeItem{
		{ID: "1", Title: "Reading list", Content: "# Books", ItemType: api.TypeNote},
	}

	rec := get(t, handler, "/")
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Reading list")
	// The card preview is markdown-stripped.
	assert.Contains(t, body, "Books")
}

func TestItemsPartialFiltersByType(t *testing.T) {
	backend, handler := newTestServer(t)
	backend.items = []api.KnowledgeItem{
		{ID: "1", Title: "a note", ItemType: api.TypeNote},
		{ID: "2", Title: "a link", ItemType: api.TypeLink},
	}

	rec := get(t, handler, "/partials/items?item_type=link")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "a link")
	assert.NotContains(t, body, "a note")
}

func TestCreateItemRedirectsToFeed(t *testing.T) {
	backend, handler := newTestServer(t)

	rec := postForm(t, handler, "/items", url.Values{
		"title":     {"My link"},
		"content":   {"worth keeping"},
		"item_type": {"link"},
		"url":       {"https://example.com"},
		"tags":      {"go, reading"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	require.Len(t, backend.created, 1)
	created := backend.created[0]
	assert.Equal(t, "My link", created.Title)
	require.NotNil(t, created.URL)
	assert.Equal(t, "https://example.com", *created.URL)
	assert.Nil(t, created.Language)
	assert.Equal(t, []string{"go", "reading"}, created.Tags)
}

func TestCreateItemValidation(t *testing.T) {
	backend, handler := newTestServer(t)

	rec := postForm(t, handler, "/items", url.Values{
		"content":   {"no title"},
		"item_type": {"note"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, backend.created)
	assert.Contains(t, rec.Body.String(), "title")
}

func TestCreateItemRejectsUnknownType(t *testing.T) {
	backend, handler := newTestServer(t)

	rec := postForm(t, handler, "/items", url.Values{
		"title":     {"x"},
		"content":   {"y"},
		"item_type": {"video"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, backend.created)
}

func TestVoteRejectsBadDirection(t *testing.T) {
	_, handler := newTestServer(t)

	rec := postForm(t, handler, "/items/1/vote?direction=sideways", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVoteRedirectsBack(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/items/1/vote?direction=up", nil)
	req.Header.Set("Referer", "/timeline")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/timeline", rec.Header().Get("Location"))
}

func TestTimelinePage(t *testing.T) {
	_, handler := newTestServer(t)

	rec := get(t, handler, "/timeline?month=2026-08")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "August 2026")
}

func TestGraphPage(t *testing.T) {
	backend, handler := newTestServer(t)
	backend.items = []api.KnowledgeItem{
		{ID: "1", Title: "solo node", ItemType: api.TypePaper},
	}

	rec := get(t, handler, "/graph")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, "solo node")
}

func TestHealthz(t *testing.T) {
	_, handler := newTestServer(t)

	rec := get(t, handler, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestMetricsEndpoint(t *testing.T) {
	_, handler := newTestServer(t)

	get(t, handler, "/healthz")
	rec := get(t, handler, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "brian_web_requests_total")
}
