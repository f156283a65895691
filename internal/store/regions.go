package store

import (
	"context"

	"go.uber.org/zap"

	"brian/internal/api"
)

// Region actions mirror the item actions: mutate through the client,
// then refetch the region list. The selected region is kept in sync
// when it is the one affected.

// SetSelectedRegion sets the selected region without a fetch.
func (s *Store) SetSelectedRegion(region *api.Region) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedRegion = region
}

// FetchRegions loads the region list.
func (s *Store) FetchRegions(ctx context.Context) error {
	s.mu.Lock()
	s.regionsGen++
	gen := s.regionsGen
	s.state.RegionsLoading = true
	s.mu.Unlock()

	regions, err := s.client.ListRegions(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.regionsGen {
		return nil
	}
	s.state.RegionsLoading = false
	if err != nil {
		s.logger.Warn("failed to fetch regions", zap.Error(err))
		return err
	}
	s.state.Regions = regions
	return nil
}

// FetchRegion loads one region and selects it.
func (s *Store) FetchRegion(ctx context.Context, id string) (*api.Region, error) {
	region, err := s.client.GetRegion(ctx, id)
	if err != nil {
		s.logger.Warn("failed to fetch region", zap.String("regionID", id), zap.Error(err))
		return nil, err
	}
	s.SetSelectedRegion(region)
	return region, nil
}

// CreateRegion creates a region and refetches the list.
func (s *Store) CreateRegion(ctx context.Context, payload api.RegionPayload) (*api.Region, error) {
	s.mu.Lock()
	s.state.RegionsLoading = true
	s.mu.Unlock()

	region, err := s.client.CreateRegion(ctx, payload)
	if err != nil {
		s.mu.Lock()
		s.state.RegionsLoading = false
		s.mu.Unlock()
		s.setErr(err)
		return nil, err
	}
	if err := s.FetchRegions(ctx); err != nil {
		return nil, err
	}
	return region, nil
}

// UpdateRegion updates a region and refetches the list, refreshing the
// selection when it is the updated region.
func (s *Store) UpdateRegion(ctx context.Context, id string, payload api.RegionPayload) (*api.Region, error) {
	region, err := s.client.UpdateRegion(ctx, id, payload)
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	if err := s.FetchRegions(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.state.SelectedRegion != nil && s.state.SelectedRegion.ID == id {
		s.state.SelectedRegion = region
	}
	s.mu.Unlock()
	return region, nil
}

// DeleteRegion deletes a region and refetches the list, clearing the
// selection when it was the deleted region.
func (s *Store) DeleteRegion(ctx context.Context, id string) error {
	if err := s.client.DeleteRegion(ctx, id); err != nil {
		s.setErr(err)
		return err
	}
	if err := s.FetchRegions(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	if s.state.SelectedRegion != nil && s.state.SelectedRegion.ID == id {
		s.state.SelectedRegion = nil
	}
	s.mu.Unlock()
	return nil
}

// AddItemsToRegion adds items to a region's membership.
func (s *Store) AddItemsToRegion(ctx context.Context, regionID string, itemIDs []string) (*api.Region, error) {
	region, err := s.client.AddItemsToRegion(ctx, regionID, itemIDs)
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	if err := s.FetchRegions(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.state.SelectedRegion != nil && s.state.SelectedRegion.ID == regionID {
		s.state.SelectedRegion = region
	}
	s.mu.Unlock()
	return region, nil
}

// RemoveItemFromRegion removes one item from a region's membership.
func (s *Store) RemoveItemFromRegion(ctx context.Context, regionID, itemID string) error {
	if err := s.client.RemoveItemFromRegion(ctx, regionID, itemID); err != nil {
		s.setErr(err)
		return err
	}
	if err := s.FetchRegions(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	selected := s.state.SelectedRegion != nil && s.state.SelectedRegion.ID == regionID
	s.mu.Unlock()
	if selected {
		if _, err := s.FetchRegion(ctx, regionID); err != nil {
			return err
		}
	}
	return nil
}

// ToggleRegionVisibility flips a region's visibility flag.
func (s *Store) ToggleRegionVisibility(ctx context.Context, id string) (*api.Region, error) {
	region, err := s.client.ToggleRegionVisibility(ctx, id)
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	if err := s.FetchRegions(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.state.SelectedRegion != nil && s.state.SelectedRegion.ID == id {
		s.state.SelectedRegion = region
	}
	s.mu.Unlock()
	return region, nil
}

// ItemRegions returns the regions an item belongs to. Pure
// passthrough; nothing is cached.
func (s *Store) ItemRegions(ctx context.Context, itemID string) ([]api.Region, error) {
	regions, err := s.client.ItemRegions(ctx, itemID)
	if err != nil {
		s.logger.Warn("failed to fetch item regions", zap.String("itemID", itemID), zap.Error(err))
		return nil, err
	}
	return regions, nil
}
