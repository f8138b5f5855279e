package db

import (
	"context"
	"sort"
	"sync"

	"github.com/canopyui/canopy/pkg/api"
)

// NewMem returns a memory-backed Store for tests and ephemeral runs.
func NewMem() Store { return &memStore{byID: make(map[string]api.Doc)} }

type memStore struct {
	mu   sync.RWMutex
	byID map[string]api.Doc
}

func (m *memStore) List(ctx context.Context) ([]api.Doc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]api.Doc, 0, len(m.byID))
	for _, d := range m.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (m *memStore) Get(ctx context.Context, id string) (api.Doc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.byID[id]
	if !ok {
		return api.Doc{}, ErrNotFound
	}
	return d, nil
}

func (m *memStore) Put(ctx context.Context, d api.Doc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[d.ID] = d
	return nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func (m *memStore) Close() error { return nil }
