package api

import "time"

// Doc is one document in a browsable library. Path is slash-separated and
// doubles as the document's position in the tree widget.
type Doc struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
