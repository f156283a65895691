// Package api is the client for the brian REST API. It is a thin
// wrapper: one method per endpoint, JSON in and out, and no retries,
// caching or backoff. Failures surface immediately as *Error (for
// non-2xx responses) or the transport error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const basePath = "/api/v1"

// Client talks to the brian API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the API at baseURL (scheme and host,
// without the /api/v1 prefix).
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// errorBody is the shape of a non-2xx response body.
type errorBody struct {
	Detail string `json:"detail"`
}

// do performs a request and decodes the response into out when out is
// non-nil. A 204 response leaves out untouched.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out interface{}) error {
	u := c.baseURL + basePath + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("API request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("API request",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			apiErr.Detail = eb.Detail
		}
		return apiErr
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ----------------------------------------------------------------------------
// Knowledge items
// ----------------------------------------------------------------------------

// ListItems returns items matching the given filters.
func (c *Client) ListItems(ctx context.Context, opts ListOptions) ([]KnowledgeItem, error) {
	var items []KnowledgeItem
	if err := c.do(ctx, http.MethodGet, "/items", opts.Query(), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem returns a single item by ID.
func (c *Client) GetItem(ctx context.Context, id string) (*KnowledgeItem, error) {
	var item KnowledgeItem
	if err := c.do(ctx, http.MethodGet, "/items/"+id, nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem creates an item and returns the stored representation.
func (c *Client) CreateItem(ctx context.Context, payload ItemPayload) (*KnowledgeItem, error) {
	var item KnowledgeItem
	if err := c.do(ctx, http.MethodPost, "/items", nil, payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem replaces an item's fields.
func (c *Client) UpdateItem(ctx context.Context, id string, payload ItemPayload) (*KnowledgeItem, error) {
	var item KnowledgeItem
	if err := c.do(ctx, http.MethodPut, "/items/"+id, nil, payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem deletes an item.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/items/"+id, nil, nil, nil)
}

// ToggleFavorite flips an item's favorite flag.
func (c *Client) ToggleFavorite(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/items/"+id+"/favorite", nil, nil, nil)
}

// Vote casts an up or down vote on an item.
func (c *Client) Vote(ctx context.Context, id string, direction VoteDirection) error {
	query := url.Values{"direction": {string(direction)}}
	return c.do(ctx, http.MethodPost, "/items/"+id+"/vote", query, nil, nil)
}

// ----------------------------------------------------------------------------
// Search and timeline
// ----------------------------------------------------------------------------

// Search returns items matching the full-text query.
func (c *Client) Search(ctx context.Context, q string, limit int) ([]KnowledgeItem, error) {
	if limit <= 0 {
		limit = 50
	}
	query := url.Values{
		"q":     {q},
		"limit": {strconv.Itoa(limit)},
	}
	var items []KnowledgeItem
	if err := c.do(ctx, http.MethodGet, "/search", query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Timeline returns items created within [start, end].
func (c *Client) Timeline(ctx context.Context, start, end time.Time) ([]KnowledgeItem, error) {
	query := url.Values{
		"start_date": {start.Format(time.RFC3339)},
		"end_date":   {end.Format(time.RFC3339)},
	}
	var items []KnowledgeItem
	if err := c.do(ctx, http.MethodGet, "/timeline", query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ----------------------------------------------------------------------------
// Tags
// ----------------------------------------------------------------------------

// ListTags returns every tag with its usage count.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := c.do(ctx, http.MethodGet, "/tags", nil, nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// PopularTags returns the most used tags.
func (c *Client) PopularTags(ctx context.Context, limit int) ([]Tag, error) {
	if limit <= 0 {
		limit = 20
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	var tags []Tag
	if err := c.do(ctx, http.MethodGet, "/tags/popular", query, nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// ----------------------------------------------------------------------------
// Connections and graph
// ----------------------------------------------------------------------------

// CreateConnection creates a weighted connection between two items.
func (c *Client) CreateConnection(ctx context.Context, payload ConnectionPayload) (*Connection, error) {
	var conn Connection
	if err := c.do(ctx, http.MethodPost, "/connections", nil, payload, &conn); err != nil {
		return nil, err
	}
	return &conn, nil
}

// ItemConnections returns the connections touching an item.
func (c *Client) ItemConnections(ctx context.Context, itemID string) ([]Connection, error) {
	var conns []Connection
	if err := c.do(ctx, http.MethodGet, "/connections/"+itemID, nil, nil, &conns); err != nil {
		return nil, err
	}
	return conns, nil
}

// DeleteConnection removes a connection by its ID.
func (c *Client) DeleteConnection(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/connections/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

// Graph returns all connections for the graph view.
func (c *Client) Graph(ctx context.Context) (*GraphData, error) {
	var data GraphData
	if err := c.do(ctx, http.MethodGet, "/graph", nil, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ----------------------------------------------------------------------------
// Stats
// ----------------------------------------------------------------------------

// Stats returns the aggregate counters.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ----------------------------------------------------------------------------
// Regions
// ----------------------------------------------------------------------------

// ListRegions returns all regions.
func (c *Client) ListRegions(ctx context.Context) ([]Region, error) {
	var regions []Region
	if err := c.do(ctx, http.MethodGet, "/regions", nil, nil, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

// GetRegion returns a region by ID.
func (c *Client) GetRegion(ctx context.Context, id string) (*Region, error) {
	var region Region
	if err := c.do(ctx, http.MethodGet, "/regions/"+id, nil, nil, &region); err != nil {
		return nil, err
	}
	return &region, nil
}

// CreateRegion creates a region.
func (c *Client) CreateRegion(ctx context.Context, payload RegionPayload) (*Region, error) {
	var region Region
	if err := c.do(ctx, http.MethodPost, "/regions", nil, payload, &region); err != nil {
		return nil, err
	}
	return &region, nil
}

// UpdateRegion replaces a region's name and color.
func (c *Client) UpdateRegion(ctx context.Context, id string, payload RegionPayload) (*Region, error) {
	var region Region
	if err := c.do(ctx, http.MethodPut, "/regions/"+id, nil, payload, &region); err != nil {
		return nil, err
	}
	return &region, nil
}

// DeleteRegion deletes a region. Its items are not deleted.
func (c *Client) DeleteRegion(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/regions/"+id, nil, nil, nil)
}

// AddItemsToRegion adds items to a region's membership and returns the
// updated region.
func (c *Client) AddItemsToRegion(ctx context.Context, regionID string, itemIDs []string) (*Region, error) {
	body := struct {
		ItemIDs []string `json:"item_ids"`
	}{ItemIDs: itemIDs}
	var region Region
	if err := c.do(ctx, http.MethodPost, "/regions/"+regionID+"/items", nil, body, &region); err != nil {
		return nil, err
	}
	return &region, nil
}

// RemoveItemFromRegion removes one item from a region's membership.
func (c *Client) RemoveItemFromRegion(ctx context.Context, regionID, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/regions/"+regionID+"/items/"+itemID, nil, nil, nil)
}

// ToggleRegionVisibility flips a region's visibility flag and returns
// the updated region.
func (c *Client) ToggleRegionVisibility(ctx context.Context, id string) (*Region, error) {
	var region Region
	if err := c.do(ctx, http.MethodPost, "/regions/"+id+"/visibility", nil, nil, &region); err != nil {
		return nil, err
	}
	return &region, nil
}

// ItemRegions returns the regions an item belongs to.
func (c *Client) ItemRegions(ctx context.Context, itemID string) ([]Region, error) {
	var regions []Region
	if err := c.do(ctx, http.MethodGet, "/items/"+itemID+"/regions", nil, nil, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}
