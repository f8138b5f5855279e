package db

import (
	"context"
	"time"

	"github.com/canopyui/canopy/pkg/api"
)

// Seed loads a small starter library into an empty store so the browser has
// something to show on first run. A store with any documents is left alone.
func Seed(ctx context.Context, s Store) error {
	docs, err := s.List(ctx)
	if err != nil {
		return err
	}
	if len(docs) > 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, d := range starterDocs {
		d.ID = api.NewID()
		d.CreatedAt = now
		d.UpdatedAt = now
		if err := s.Put(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

var starterDocs = []api.Doc{
	{
		Path:  "guides/getting-started",
		Title: "Getting Started",
		Tags:  []string{"guide"},
		Body: `# Getting Started

Use the arrow keys to move around the tree, *enter* to preview a document,
and **/** to filter. Filtering is debounced, so type freely.
`,
	},
	{
		Path:  "guides/keybindings",
		Title: "Keybindings",
		Tags:  []string{"guide", "reference"},
		Body: `# Keybindings

| Key | Action |
|-----|--------|
| / | filter |
| enter | preview / expand |
| d | delete |
| q | quit |
`,
	},
	{
		Path:  "notes/scratch",
		Title: "Scratch",
		Tags:  []string{"note"},
		Body:  "An empty scratch pad.\n",
	},
	{
		Path:  "reference/configuration",
		Title: "Configuration",
		Tags:  []string{"reference"},
		Body: `# Configuration

Settings live in config.yaml under your XDG config directory. The filter
debounce is tunable: ` + "`filter.wait_ms`" + ` and ` + "`filter.max_wait_ms`" + `.
`,
	},
}
