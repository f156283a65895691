package api

import (
	"net/url"
	"strconv"
)

// SortOrder is the direction of a sorted item listing.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ListOptions are the optional filters of GET /items. The zero value
// of a field means "not set": unset options are omitted from the query
// string entirely rather than sent as defaults.
type ListOptions struct {
	ItemType     ItemType
	FavoriteOnly bool
	Limit        int
	Offset       int
	SortBy       string
	SortOrder    SortOrder
}

// Query encodes the set options as URL query values.
func (o ListOptions) Query() url.Values {
	params := url.Values{}
	if o.ItemType != "" {
		params.Set("item_type", string(o.ItemType))
	}
	if o.FavoriteOnly {
		params.Set("favorite_only", "true")
	}
	if o.Limit > 0 {
		params.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		params.Set("offset", strconv.Itoa(o.Offset))
	}
	if o.SortBy != "" {
		params.Set("sort_by", o.SortBy)
	}
	if o.SortOrder != "" {
		params.Set("sort_order", string(o.SortOrder))
	}
	return params
}
