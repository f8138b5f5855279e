package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/canopyui/canopy/internal/db"
	"github.com/canopyui/canopy/internal/render"
	"github.com/canopyui/canopy/pkg/api"
)

// docsLoadedMsg conveys the outcome of (re)loading the document list.
type docsLoadedMsg struct {
	docs []api.Doc
	err  error
	dur  time.Duration
}

// previewReadyMsg carries a rendered document for the preview modal.
type previewReadyMsg struct {
	doc      api.Doc
	rendered string
	dur      time.Duration
}

// deleteResultMsg conveys the outcome of a delete back to Update.
type deleteResultMsg struct {
	id   string
	path string
	err  error
	dur  time.Duration
}

// filterAppliedMsg arrives from the debounced filter pipeline once a burst of
// keystrokes settles.
type filterAppliedMsg struct {
	query string
}

// loadDocsCmd fetches the full document list from the store.
func loadDocsCmd(ctx context.Context, store db.Store) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		docs, err := store.List(ctx)
		return docsLoadedMsg{docs: docs, err: err, dur: time.Since(start)}
	}
}

// previewCmd renders a document body for the preview modal. Rendering happens
// off the update loop because glamour is not cheap on large bodies.
func previewCmd(d api.Doc, width int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		out := render.PreviewDoc(d, width)
		return previewReadyMsg{doc: d, rendered: out, dur: time.Since(start)}
	}
}

// deleteDocCmd removes a document and returns a deleteResultMsg.
func deleteDocCmd(ctx context.Context, store db.Store, d api.Doc) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		err := store.Delete(ctx, d.ID)
		return deleteResultMsg{id: d.ID, path: d.Path, err: err, dur: time.Since(start)}
	}
}
