// Package graph assembles the knowledge graph view: one node per
// loaded item, one edge per connection. Position computation is
// delegated to gonum's force-directed layout; this package only
// supplies the inputs and draws the result.
package graph

import (
	"math"

	"brian/internal/api"
	"brian/internal/render"
)

// Node is a positioned graph node for one knowledge item.
type Node struct {
	ID    string
	Title string
	Type  api.ItemType
	X     float64
	Y     float64
}

// Edge is a weighted, undirected link between two nodes. Strength
// only affects stroke width.
type Edge struct {
	Source   string
	Target   string
	Strength float64
}

// Graph is the assembled node/edge set.
type Graph struct {
	Nodes []Node
	Edges []Edge

	index map[string]int
}

// StrokeWidth is the rendered line width for an edge, the square root
// of its strength.
func (e Edge) StrokeWidth() float64 {
	if e.Strength <= 0 {
		return 1
	}
	return math.Sqrt(e.Strength)
}

// Label is the node's display label, the title capped at 20 runes.
func (n Node) Label() string {
	runes := []rune(n.Title)
	if len(runes) > 20 {
		return string(runes[:20])
	}
	return n.Title
}

// Color is the node's fill color by item type.
func (n Node) Color() string {
	return render.TypeColor(n.Type)
}

// Build assembles a graph from the loaded items and the API's
// connection list. Connections whose endpoints are not among the
// loaded items, and self connections, are dropped.
func Build(items []api.KnowledgeItem, connections []api.Connection) *Graph {
	g := &Graph{index: make(map[string]int, len(items))}
	for _, item := range items {
		g.index[item.ID] = len(g.Nodes)
		g.Nodes = append(g.Nodes, Node{
			ID:    item.ID,
			Title: item.Title,
			Type:  item.ItemType,
		})
	}
	for _, conn := range connections {
		if conn.SourceItemID == conn.TargetItemID {
			continue
		}
		if _, ok := g.index[conn.SourceItemID]; !ok {
			continue
		}
		if _, ok := g.index[conn.TargetItemID]; !ok {
			continue
		}
		g.Edges = append(g.Edges, Edge{
			Source:   conn.SourceItemID,
			Target:   conn.TargetItemID,
			Strength: conn.Strength,
		})
	}
	return g
}

// NodeByID returns the node for an item ID.
func (g *Graph) NodeByID(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// Neighbors returns the edges touching the given item.
func (g *Graph) Neighbors(id string) []Edge {
	var edges []Edge
	for _, e := range g.Edges {
		if e.Source == id || e.Target == id {
			edges = append(edges, e)
		}
	}
	return edges
}
