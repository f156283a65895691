package graph

import (
	"fmt"
	"html"
	"strings"
)

// SVG renders the positioned graph as an inline SVG document. Call
// Layout first; an unpositioned graph renders with every node at the
// origin.
func (g *Graph) SVG(width, height int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height)

	b.WriteString(`<g class="edges">`)
	for _, e := range g.Edges {
		src, ok := g.NodeByID(e.Source)
		if !ok {
			continue
		}
		dst, ok := g.NodeByID(e.Target)
		if !ok {
			continue
		}
		fmt.Fprintf(&b,
			`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#999" stroke-opacity="0.6" stroke-width="%.2f"/>`,
			src.X, src.Y, dst.X, dst.Y, e.StrokeWidth())
	}
	b.WriteString(`</g>`)

	b.WriteString(`<g class="nodes">`)
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="8" fill="%s"><title>%s</title></circle>`,
			n.X, n.Y, n.Color(), html.EscapeString(n.Title))
	}
	b.WriteString(`</g>`)

	b.WriteString(`<g class="labels">`)
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="10">%s</text>`,
			n.X+12, n.Y+4, html.EscapeString(n.Label()))
	}
	b.WriteString(`</g>`)

	b.WriteString(`</svg>`)
	return b.String()
}
