package store_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brian/internal/api"
	"brian/internal/store"
)

// regionAPI is an in-memory regions backend.
type regionAPI struct {
	mux     *http.ServeMux
	regions map[string]*api.Region
	nextID  int
}

func newRegionAPI() *regionAPI {
	f := &regionAPI{mux: http.NewServeMux(), regions: map[string]*api.Region{}, nextID: 1}

	list := func(w http.ResponseWriter, r *http.Request) {
		out := make([]api.Region, 0, len(f.regions))
		for _, region := range f.regions {
			out = append(out, *region)
		}
		json.NewEncoder(w).Encode(out)
	}
	f.mux.HandleFunc("GET /api/v1/regions", list)

	f.mux.HandleFunc("POST /api/v1/regions", func(w http.ResponseWriter, r *http.Request) {
		var payload api.RegionPayload
		json.NewDecoder(r.Body).Decode(&payload)
		id := "r" + string(rune('0'+f.nextID))
		f.nextID++
		region := &api.Region{ID: id, Name: payload.Name, Color: payload.Color, Visible: true}
		f.regions[id] = region
		json.NewEncoder(w).Encode(region)
	})
	f.mux.HandleFunc("DELETE /api/v1/regions/{id}", func(w http.ResponseWriter, r *http.Request) {
		delete(f.regions, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})
	f.mux.HandleFunc("POST /api/v1/regions/{id}/visibility", func(w http.ResponseWriter, r *http.Request) {
		region := f.regions[r.PathValue("id")]
		region.Visible = !region.Visible
		json.NewEncoder(w).Encode(region)
	})
	f.mux.HandleFunc("POST /api/v1/regions/{id}/items", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ItemIDs []string `json:"item_ids"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		region := f.regions[r.PathValue("id")]
		region.ItemIDs = append(region.ItemIDs, body.ItemIDs...)
		json.NewEncoder(w).Encode(region)
	})

	return f
}

func newRegionStore(t *testing.T) (*regionAPI, *store.Store) {
	t.Helper()
	f := newRegionAPI()
	server := httptest.NewServer(f.mux)
	t.Cleanup(server.Close)
	return f, store.New(api.NewClient(server.URL, nil), nil)
}

func TestCreateRegionRefetchesList(t *testing.T) {
	_, st := newRegionStore(t)

	region, err := st.CreateRegion(context.Background(), api.RegionPayload{Name: "inbox", Color: "#10b981"})
	require.NoError(t, err)
	assert.Equal(t, "inbox", region.Name)
	assert.True(t, region.Visible)

	state := st.State()
	require.Len(t, state.Regions, 1)
	assert.False(t, state.RegionsLoading)
}

func TestToggleVisibilitySyncsSelection(t *testing.T) {
	_, st := newRegionStore(t)
	region, err := st.CreateRegion(context.Background(), api.RegionPayload{Name: "inbox"})
	require.NoError(t, err)
	st.SetSelectedRegion(region)

	toggled, err := st.ToggleRegionVisibility(context.Background(), region.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Visible)

	state := st.State()
	require.NotNil(t, state.SelectedRegion)
	assert.False(t, state.SelectedRegion.Visible)
}

func TestDeleteRegionClearsSelection(t *testing.T) {
	_, st := newRegionStore(t)
	region, err := st.CreateRegion(context.Background(), api.RegionPayload{Name: "inbox"})
	require.NoError(t, err)
	st.SetSelectedRegion(region)

	require.NoError(t, st.DeleteRegion(context.Background(), region.ID))

	state := st.State()
	assert.Empty(t, state.Regions)
	assert.Nil(t, state.SelectedRegion)
}

func TestAddItemsToRegionUpdatesMembership(t *testing.T) {
	_, st := newRegionStore(t)
	region, err := st.CreateRegion(context.Background(), api.RegionPayload{Name: "inbox"})
	require.NoError(t, err)
	st.SetSelectedRegion(region)

	updated, err := st.AddItemsToRegion(context.Background(), region.ID, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, updated.ItemIDs)

	state := st.State()
	require.NotNil(t, state.SelectedRegion)
	assert.Equal(t, []string{"a", "b"}, state.SelectedRegion.ItemIDs)
}
