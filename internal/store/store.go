// Package store is the client-side state container shared by the
// frontends. It follows the original application's consistency model:
// every mutation is followed by an unconditional refetch of the
// affected collections rather than a local patch ("pessimistic
// resync"). State is guarded by a mutex so the web frontend can drive
// it from concurrent handlers.
package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"brian/internal/api"
)

// Filters are the client-local listing controls. They are never
// persisted and changing them does not refetch by itself; the frontend
// triggers the fetch after updating them.
type Filters struct {
	ItemType     api.ItemType
	FavoriteOnly bool
	SortBy       string
	SortOrder    api.SortOrder
	Query        string
	TimelineMonth time.Time
}

// DefaultFilters returns the filters a fresh session starts with.
func DefaultFilters() Filters {
	return Filters{
		SortBy:        "created_at",
		SortOrder:     api.SortDesc,
		TimelineMonth: time.Now(),
	}
}

// State is a point-in-time snapshot of the store, safe to render from
// without holding the store's lock.
type State struct {
	Items          []api.KnowledgeItem
	CurrentItem    *api.KnowledgeItem
	Loading        bool
	Err            string
	Filters        Filters
	Stats          api.Stats
	Tags           []api.Tag
	Regions        []api.Region
	SelectedRegion *api.Region
	RegionsLoading bool
	ModalOpen      bool
	EditingItemID  string
}

// Store holds the current item list, filters, stats, regions and modal
// state for one frontend process.
type Store struct {
	mu     sync.Mutex
	client *api.Client
	logger *zap.Logger

	state State

	// Request generations, one per refetched slice. A fetch stamps its
	// generation before the network call and applies its result only if
	// no newer fetch of the same slice started meanwhile. This closes
	// the last-response-wins race the original store had.
	itemsGen   uint64
	statsGen   uint64
	tagsGen    uint64
	regionsGen uint64
}

// New creates a store backed by the given API client.
func New(client *api.Client, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client: client,
		logger: logger,
		state:  State{Filters: DefaultFilters()},
	}
}

// Client returns the underlying API client, for view-layer fetches
// (timeline, item connections) that go around the store in the
// original architecture.
func (s *Store) Client() *api.Client {
	return s.client
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.state
	snap.Items = append([]api.KnowledgeItem(nil), s.state.Items...)
	snap.Tags = append([]api.Tag(nil), s.state.Tags...)
	snap.Regions = append([]api.Region(nil), s.state.Regions...)
	return snap
}

// ----------------------------------------------------------------------------
// Filters and UI state
// ----------------------------------------------------------------------------

// SetTypeFilter sets the item type filter; empty means all types.
func (s *Store) SetTypeFilter(t api.ItemType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters.ItemType = t
}

// SetFavoriteOnly sets the favorites-only filter.
func (s *Store) SetFavoriteOnly(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters.FavoriteOnly = on
}

// SetSort sets the sort column and order.
func (s *Store) SetSort(by string, order api.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters.SortBy = by
	s.state.Filters.SortOrder = order
}

// SetQuery records the current search query.
func (s *Store) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters.Query = q
}

// SetTimelineMonth moves the timeline month cursor.
func (s *Store) SetTimelineMonth(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters.TimelineMonth = t
}

// Filters returns the current filter set.
func (s *Store) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Filters
}

// OpenModal opens the edit modal. An empty itemID means a new item is
// being created.
func (s *Store) OpenModal(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ModalOpen = true
	s.state.EditingItemID = itemID
}

// CloseModal closes the edit modal and clears the editing item.
func (s *Store) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ModalOpen = false
	s.state.EditingItemID = ""
}

// ----------------------------------------------------------------------------
// Read actions
// ----------------------------------------------------------------------------

// FetchItems loads the item list for the current filters, replacing
// the items slice on success.
func (s *Store) FetchItems(ctx context.Context) error {
	s.mu.Lock()
	s.itemsGen++
	gen := s.itemsGen
	s.state.Loading = true
	s.state.Err = ""
	opts := api.ListOptions{
		ItemType:     s.state.Filters.ItemType,
		FavoriteOnly: s.state.Filters.FavoriteOnly,
		SortBy:       s.state.Filters.SortBy,
		SortOrder:    s.state.Filters.SortOrder,
	}
	s.mu.Unlock()

	items, err := s.client.ListItems(ctx, opts)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.itemsGen {
		return nil // a newer fetch superseded this one
	}
	s.state.Loading = false
	if err != nil {
		s.state.Err = err.Error()
		return err
	}
	s.state.Items = items
	return nil
}

// FetchItem loads a single item into CurrentItem.
func (s *Store) FetchItem(ctx context.Context, id string) (*api.KnowledgeItem, error) {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	item, err := s.client.GetItem(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		s.state.Err = err.Error()
		return nil, err
	}
	s.state.CurrentItem = item
	return item, nil
}

// SearchItems replaces the item list with full-text search results.
func (s *Store) SearchItems(ctx context.Context, query string) error {
	s.mu.Lock()
	s.itemsGen++
	gen := s.itemsGen
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	items, err := s.client.Search(ctx, query, 0)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.itemsGen {
		return nil
	}
	s.state.Loading = false
	if err != nil {
		s.state.Err = err.Error()
		return err
	}
	s.state.Items = items
	return nil
}

// FetchStats refreshes the aggregate counters. Failures are logged but
// do not disturb the error slice; stats are decoration, not data.
func (s *Store) FetchStats(ctx context.Context) {
	s.mu.Lock()
	s.statsGen++
	gen := s.statsGen
	s.mu.Unlock()

	stats, err := s.client.Stats(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.statsGen {
		return
	}
	if err != nil {
		s.logger.Warn("failed to fetch stats", zap.Error(err))
		return
	}
	s.state.Stats = *stats
}

// FetchTags refreshes the tag list.
func (s *Store) FetchTags(ctx context.Context) error {
	s.mu.Lock()
	s.tagsGen++
	gen := s.tagsGen
	s.mu.Unlock()

	tags, err := s.client.ListTags(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.tagsGen {
		return nil
	}
	if err != nil {
		s.state.Err = err.Error()
		return err
	}
	s.state.Tags = tags
	return nil
}

// ----------------------------------------------------------------------------
// Write actions
// ----------------------------------------------------------------------------

// CreateItem creates an item, then refetches items and stats and
// closes the modal.
func (s *Store) CreateItem(ctx context.Context, payload api.ItemPayload) error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	if _, err := s.client.CreateItem(ctx, payload); err != nil {
		s.fail(err)
		return err
	}
	if err := s.FetchItems(ctx); err != nil {
		return err
	}
	s.FetchStats(ctx)
	s.CloseModal()
	return nil
}

// UpdateItem updates an item, then refetches items and closes the
// modal.
func (s *Store) UpdateItem(ctx context.Context, id string, payload api.ItemPayload) error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	if _, err := s.client.UpdateItem(ctx, id, payload); err != nil {
		s.fail(err)
		return err
	}
	if err := s.FetchItems(ctx); err != nil {
		return err
	}
	s.CloseModal()
	return nil
}

// DeleteItem deletes an item, then refetches items and stats. On
// failure the previously loaded list is left untouched.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	if err := s.client.DeleteItem(ctx, id); err != nil {
		s.fail(err)
		return err
	}
	if err := s.FetchItems(ctx); err != nil {
		return err
	}
	s.FetchStats(ctx)
	return nil
}

// ToggleFavorite flips an item's favorite flag and refetches items.
func (s *Store) ToggleFavorite(ctx context.Context, id string) error {
	if err := s.client.ToggleFavorite(ctx, id); err != nil {
		s.setErr(err)
		return err
	}
	return s.FetchItems(ctx)
}

// VoteItem casts a vote and refetches items.
func (s *Store) VoteItem(ctx context.Context, id string, direction api.VoteDirection) error {
	if err := s.client.Vote(ctx, id, direction); err != nil {
		s.setErr(err)
		return err
	}
	return s.FetchItems(ctx)
}

// fail records an action error and clears the loading flag.
func (s *Store) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	s.state.Err = err.Error()
}

// setErr records an error without touching the loading flag.
func (s *Store) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = err.Error()
}
