package tui

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// Glamour renderers are expensive to build, so they are created once
// per wrap width and cached.
var (
	renderersMu sync.Mutex
	renderers   = map[int]*glamour.TermRenderer{}
)

func markdownRenderer(width int) (*glamour.TermRenderer, error) {
	if width < 20 {
		width = 20
	}
	renderersMu.Lock()
	defer renderersMu.Unlock()
	if r, ok := renderers[width]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[width] = r
	return r, nil
}

// renderMarkdown renders item content for the detail view, falling
// back to the raw text if the renderer fails.
func renderMarkdown(content string, width int) string {
	r, err := markdownRenderer(width)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}
