package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/canopyui/canopy/pkg/api"
)

func TestPreviewDocIncludesTitleAndBody(t *testing.T) {
	d := api.Doc{
		ID:        api.NewID(),
		Path:      "guides/example",
		Title:     "Example",
		Body:      "Some **bold** text.",
		Tags:      []string{"guide"},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	out := PreviewDoc(d, 80)
	assert.Contains(t, out, "Example")
	assert.Contains(t, out, "bold")
}

func TestPreviewDocNarrowWidthClamped(t *testing.T) {
	d := api.Doc{Title: "T", Path: "p", Body: "body"}
	out := PreviewDoc(d, 0)
	assert.NotEmpty(t, out)
}
