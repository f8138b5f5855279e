package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/canopyui/canopy/pkg/api"
)

// PreviewDoc renders a document body as terminal markdown for the preview
// modal, wrapped to width. It falls back to the raw body when the renderer
// cannot be built, so a broken style never blanks the preview.
func PreviewDoc(d api.Doc, width int) string {
	if width < 20 {
		width = 20
	}
	md := fmt.Sprintf("# %s\n\n> **Path:** %s | **Tags:** %s\n\n---\n\n%s\n",
		d.Title, d.Path, strings.Join(d.Tags, ", "), strings.TrimSpace(d.Body))

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
