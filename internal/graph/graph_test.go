package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brian/internal/api"
	"brian/internal/graph"
)

func testItems() []api.KnowledgeItem {
	return []api.KnowledgeItem{
		{ID: "a", Title: "Go generics", ItemType: api.TypeLink},
		{ID: "b", Title: "Error handling notes", ItemType: api.TypeNote},
		{ID: "c", Title: "Raft paper", ItemType: api.TypePaper},
	}
}

func TestBuildDropsInvalidConnections(t *testing.T) {
	// One good edge plus a self connection and two dangling endpoints.
	conns := []api.Connection{
		{SourceItemID: "a", TargetItemID: "b", Strength: 2},
		{SourceItemID: "a", TargetItemID: "a", Strength: 1},
		{SourceItemID: "a", TargetItemID: "missing", Strength: 1},
		{SourceItemID: "missing", TargetItemID: "b", Strength: 1},
	}

	g := graph.Build(testItems(), conns)
	assert.Len(t, g.Nodes, 3)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "a", g.Edges[0].Source)
	assert.Equal(t, "b", g.Edges[0].Target)
}

func TestNodeLookup(t *testing.T) {
	g := graph.Build(testItems(), []api.Connection{
		{SourceItemID: "a", TargetItemID: "b", Strength: 1},
		{SourceItemID: "b", TargetItemID: "c", Strength: 1},
	})

	node, ok := g.NodeByID("b")
	require.True(t, ok)
	assert.Equal(t, "Error handling notes", node.Title)

	_, ok = g.NodeByID("nope")
	assert.False(t, ok)

	assert.Len(t, g.Neighbors("b"), 2)
	assert.Len(t, g.Neighbors("a"), 1)
}

func TestNodeLabelCapped(t *testing.T) {
	n := graph.Node{Title: strings.Repeat("x", 30)}
	assert.Len(t, n.Label(), 20)

	short := graph.Node{Title: "short"}
	assert.Equal(t, "short", short.Label())
}

func TestNodeColorPalette(t *testing.T) {
	assert.Equal(t, "#6366f1", graph.Node{Type: api.TypeLink}.Color())
	assert.Equal(t, "#10b981", graph.Node{Type: api.TypeNote}.Color())
	assert.Equal(t, "#f59e0b", graph.Node{Type: api.TypeSnippet}.Color())
	assert.Equal(t, "#8b5cf6", graph.Node{Type: api.TypePaper}.Color())
	assert.Equal(t, "#6b7280", graph.Node{Type: "mystery"}.Color())
}

func TestEdgeStrokeWidth(t *testing.T) {
	assert.InDelta(t, 2.0, graph.Edge{Strength: 4}.StrokeWidth(), 1e-9)
	assert.InDelta(t, 1.0, graph.Edge{Strength: 0}.StrokeWidth(), 1e-9)
}

func TestLayoutFitsViewport(t *testing.T) {
	g := graph.Build(testItems(), []api.Connection{
		{SourceItemID: "a", TargetItemID: "b", Strength: 1},
		{SourceItemID: "b", TargetItemID: "c", Strength: 3},
	})

	const width, height = 960.0, 700.0
	g.Layout(width, height)

	for _, n := range g.Nodes {
		assert.GreaterOrEqual(t, n.X, 0.0)
		assert.LessOrEqual(t, n.X, width)
		assert.GreaterOrEqual(t, n.Y, 0.0)
		assert.LessOrEqual(t, n.Y, height)
	}
}

func TestLayoutEmptyGraph(t *testing.T) {
	g := graph.Build(nil, nil)
	g.Layout(960, 700) // must not panic
	assert.Empty(t, g.Nodes)
}

func TestSVGEscapesTitles(t *testing.T) {
	g := graph.Build([]api.KnowledgeItem{
		{ID: "a", Title: `<script>alert("x")</script>`, ItemType: api.TypeNote},
	}, nil)
	g.Layout(400, 300)

	svg := g.SVG(400, 300)
	assert.Contains(t, svg, "<svg")
	assert.NotContains(t, svg, "<script>")
	assert.Contains(t, svg, "&lt;script&gt;")
	assert.Contains(t, svg, "#10b981")
}
