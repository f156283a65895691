package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brian/internal/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(server.URL, nil)
}

func TestListItemsOmitsUnsetOptions(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/api/v1/items", r.URL.Path)
		w.Write([]byte(`[]`))
	})

	_, err := client.ListItems(context.Background(), api.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestListItemsEncodesSetOptions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "snippet", q.Get("item_type"))
		assert.Equal(t, "true", q.Get("favorite_only"))
		assert.Equal(t, "created_at", q.Get("sort_by"))
		assert.Equal(t, "DESC", q.Get("sort_order"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.False(t, q.Has("offset"))
		w.Write([]byte(`[]`))
	})

	_, err := client.ListItems(context.Background(), api.ListOptions{
		ItemType:     api.TypeSnippet,
		FavoriteOnly: true,
		Limit:        10,
		SortBy:       "created_at",
		SortOrder:    api.SortDesc,
	})
	require.NoError(t, err)
}

func TestCreateItemSendsNullOptionalFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "null", string(body["url"]))
		assert.Equal(t, "null", string(body["language"]))
		w.Write([]byte(`{"id":"1","title":"t","item_type":"note"}`))
	})

	_, err := client.CreateItem(context.Background(), api.ItemPayload{
		Title:    "t",
		Content:  "c",
		ItemType: api.TypeNote,
	})
	require.NoError(t, err)
}

func TestDeleteItemAccepts204(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/items/abc", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteItem(context.Background(), "abc"))
}

func TestErrorUsesDetailField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Item not found"}`))
	})

	_, err := client.GetItem(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Item not found", apiErr.Error())
	assert.True(t, api.IsNotFound(err))
}

func TestErrorWithoutBodyFallsBackToStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Stats(context.Background())
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "API request failed with status 502", apiErr.Error())
}

func TestVoteSendsDirection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/items/x/vote", r.URL.Path)
		assert.Equal(t, "down", r.URL.Query().Get("direction"))
		w.Write([]byte(`{}`))
	})

	require.NoError(t, client.Vote(context.Background(), "x", api.VoteDown))
}

func TestSearchDefaultsLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/search", r.URL.Path)
		assert.Equal(t, "zettel", r.URL.Query().Get("q"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		w.Write([]byte(`[]`))
	})

	_, err := client.Search(context.Background(), "zettel", 0)
	require.NoError(t, err)
}

func TestAddItemsToRegionBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/regions/r1/items", r.URL.Path)
		var body struct {
			ItemIDs []string `json:"item_ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"a", "b"}, body.ItemIDs)
		w.Write([]byte(`{"id":"r1","name":"inbox","visible":true,"item_ids":["a","b"]}`))
	})

	region, err := client.AddItemsToRegion(context.Background(), "r1", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, region.ItemIDs)
}

func TestToggleRegionVisibility(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/regions/r1/visibility", r.URL.Path)
		w.Write([]byte(`{"id":"r1","name":"inbox","visible":false}`))
	})

	region, err := client.ToggleRegionVisibility(context.Background(), "r1")
	require.NoError(t, err)
	assert.False(t, region.Visible)
}
