package graph

import (
	"math"

	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
)

// Layout computes node positions inside a width x height viewport. The
// force structure mirrors the original d3 simulation: attraction along
// edges, pairwise repulsion, and the result re-centered so the
// barycenter sits at the viewport center. The optimization itself is
// gonum's Eades force-directed layout.
func (g *Graph) Layout(width, height float64) {
	if len(g.Nodes) == 0 {
		return
	}

	wg := simple.NewWeightedUndirectedGraph(0, 0)
	for i := range g.Nodes {
		wg.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.Edges {
		f := simple.Node(int64(g.index[e.Source]))
		t := simple.Node(int64(g.index[e.Target]))
		w := e.Strength
		if w <= 0 {
			w = 1
		}
		wg.SetWeightedEdge(simple.WeightedEdge{F: f, T: t, W: w})
	}

	eades := layout.EadesR2{Repulsion: 1, Rate: 0.05, Updates: 100, Theta: 0.1}
	optimizer := layout.NewOptimizerR2(wg, eades.Update)
	for optimizer.Update() {
	}

	for i := range g.Nodes {
		coord := optimizer.Coord2(int64(i))
		g.Nodes[i].X = coord.X
		g.Nodes[i].Y = coord.Y
	}

	g.fit(width, height)
}

// fit scales and translates the raw layout coordinates into the
// viewport, leaving a margin and pinning the center of mass to the
// viewport center.
func (g *Graph) fit(width, height float64) {
	const margin = 40.0

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range g.Nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}

	spanX := maxX - minX
	spanY := maxY - minY
	scale := 1.0
	if spanX > 0 || spanY > 0 {
		sx, sy := math.Inf(1), math.Inf(1)
		if spanX > 0 {
			sx = (width - 2*margin) / spanX
		}
		if spanY > 0 {
			sy = (height - 2*margin) / spanY
		}
		scale = math.Min(sx, sy)
	}

	// Barycenter after scaling, then shift it onto the viewport center.
	var cx, cy float64
	for _, n := range g.Nodes {
		cx += (n.X - minX) * scale
		cy += (n.Y - minY) * scale
	}
	cx /= float64(len(g.Nodes))
	cy /= float64(len(g.Nodes))

	dx := width/2 - cx
	dy := height/2 - cy
	for i := range g.Nodes {
		g.Nodes[i].X = (g.Nodes[i].X-minX)*scale + dx
		g.Nodes[i].Y = (g.Nodes[i].Y-minY)*scale + dy
	}
}
