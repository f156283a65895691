package api

import "time"

// ItemType classifies a knowledge item. The four variants drive which
// optional fields are meaningful: url for links and papers, language
// for snippets.
type ItemType string

const (
	TypeLink    ItemType = "link"
	TypeNote    ItemType = "note"
	TypeSnippet ItemType = "snippet"
	TypePaper   ItemType = "paper"
)

// Types lists all known item types in display order.
func Types() []ItemType {
	return []ItemType{TypeLink, TypeNote, TypeSnippet, TypePaper}
}

// IsValid reports whether t is one of the four known item types. The
// server owns the data, so unknown strings can still arrive on the
// wire; callers that render by type fall back to a neutral style.
func (t ItemType) IsValid() bool {
	switch t {
	case TypeLink, TypeNote, TypeSnippet, TypePaper:
		return true
	}
	return false
}

// HasURL reports whether the url field is meaningful for this type.
func (t ItemType) HasURL() bool {
	return t == TypeLink || t == TypePaper
}

// HasLanguage reports whether the language field is meaningful for
// this type.
func (t ItemType) HasLanguage() bool {
	return t == TypeSnippet
}

// KnowledgeItem is the API representation of a single knowledge item.
type KnowledgeItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ItemType  ItemType  `json:"item_type"`
	URL       *string   `json:"url,omitempty"`
	Language  *string   `json:"language,omitempty"`
	Tags      []string  `json:"tags"`
	Favorite  bool      `json:"favorite"`
	VoteCount int       `json:"vote_count"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemPayload is the body for POST /items and PUT /items/{id}. URL and
// Language are pointers so that an empty form field is sent as null
// rather than an empty string.
type ItemPayload struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	ItemType ItemType `json:"item_type"`
	URL      *string  `json:"url"`
	Language *string  `json:"language"`
	Tags     []string `json:"tags"`
}

// Connection is a weighted association between two items. Direction is
// presentational; the graph treats edges as undirected.
type Connection struct {
	ID           int64   `json:"id"`
	SourceItemID string  `json:"source_item_id"`
	TargetItemID string  `json:"target_item_id"`
	Strength     float64 `json:"strength"`
}

// ConnectionPayload is the body for POST /connections.
type ConnectionPayload struct {
	SourceItemID string  `json:"source_item_id"`
	TargetItemID string  `json:"target_item_id"`
	Strength     float64 `json:"strength"`
}

// Tag is a tag name with its server-derived popularity count.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats holds the aggregate counters recomputed server-side. The
// client only displays them.
type Stats struct {
	TotalItems       int            `json:"total_items"`
	TotalTags        int            `json:"total_tags"`
	TotalConnections int            `json:"total_connections"`
	ByType           map[string]int `json:"by_type"`
	Favorites        int            `json:"favorites"`
}

// GraphData is the response of GET /graph: every connection in the
// knowledge base.
type GraphData struct {
	Connections []Connection `json:"connections"`
}

// Region is a named, colored grouping of items with a visibility flag.
type Region struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Color   string   `json:"color"`
	Visible bool     `json:"visible"`
	ItemIDs []string `json:"item_ids"`
}

// RegionPayload is the body for POST /regions and PUT /regions/{id}.
type RegionPayload struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// VoteDirection is the direction query parameter of the vote endpoint.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)
