package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopyui/canopy/pkg/api"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{"sqlite": sq, "mem": NewMem()}
}

func sampleDoc(path string) api.Doc {
	now := time.Now().UTC().Truncate(time.Second)
	return api.Doc{
		ID:        api.NewID(),
		Path:      path,
		Title:     filepath.Base(path),
		Body:      "body of " + path,
		Tags:      []string{"t1", "t2"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStoreCRUD(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			d := sampleDoc("guides/a")
			require.NoError(t, store.Put(ctx, d))

			got, err := store.Get(ctx, d.ID)
			require.NoError(t, err)
			assert.Equal(t, d.Path, got.Path)
			assert.Equal(t, d.Body, got.Body)
			assert.Equal(t, d.Tags, got.Tags)

			// Upsert replaces in place.
			d.Body = "revised"
			require.NoError(t, store.Put(ctx, d))
			got, err = store.Get(ctx, d.ID)
			require.NoError(t, err)
			assert.Equal(t, "revised", got.Body)

			require.NoError(t, store.Delete(ctx, d.ID))
			_, err = store.Get(ctx, d.ID)
			assert.ErrorIs(t, err, ErrNotFound)

			// Deleting again is fine.
			require.NoError(t, store.Delete(ctx, d.ID))
		})
	}
}

func TestStoreListOrdering(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, p := range []string{"z/last", "a/first", "m/middle"} {
				require.NoError(t, store.Put(ctx, sampleDoc(p)))
			}
			docs, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, docs, 3)
			assert.Equal(t, "a/first", docs[0].Path)
			assert.Equal(t, "m/middle", docs[1].Path)
			assert.Equal(t, "z/last", docs[2].Path)
		})
	}
}

func TestSeedOnlyFillsEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := NewMem()

	require.NoError(t, Seed(ctx, store))
	docs, err := store.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, docs)
	first := len(docs)

	// Seeding again must not duplicate.
	require.NoError(t, Seed(ctx, store))
	docs, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, first)
}

func TestSqliteNilTagsRoundTrip(t *testing.T) {
	ctx := context.Background()
	sq, err := Open(ctx, filepath.Join(t.TempDir(), "tags.db"))
	require.NoError(t, err)
	defer sq.Close()

	d := sampleDoc("x/y")
	d.Tags = nil
	require.NoError(t, sq.Put(ctx, d))
	got, err := sq.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}
