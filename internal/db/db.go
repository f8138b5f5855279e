package db

import (
	"context"
	"errors"

	"github.com/canopyui/canopy/pkg/api"
)

// Store is the document library behind the browser.
type Store interface {
	// List returns all documents ordered by path.
	List(ctx context.Context) ([]api.Doc, error)
	// Get returns the document with the given ID.
	Get(ctx context.Context, id string) (api.Doc, error)
	// Put inserts or replaces a document by ID.
	Put(ctx context.Context, d api.Doc) error
	// Delete removes a document. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id string) error
	Close() error
}

var ErrNotFound = errors.New("db: not found")
