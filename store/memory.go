package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/reoring/bylawkit/bylaw"
)

// Memory is an in-process Store. Records are deep-copied on the way in and
// out so callers never share state with the map.
type Memory struct {
	mu   sync.RWMutex
	recs map[string]bylaw.Record
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{recs: map[string]bylaw.Record{}}
}

func (m *Memory) Get(ctx context.Context, id string) (bylaw.Record, error) {
	if err := ctx.Err(); err != nil {
		return bylaw.Record{}, err
	}
	m.mu.RLock()
	rec, ok := m.recs[id]
	m.mu.RUnlock()
	if !ok {
		return bylaw.Record{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return rec.Clone()
}

func (m *Memory) Create(ctx context.Context, rec bylaw.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp, err := rec.Clone()
	if err != nil {
		return fmt.Errorf("create %q: %w", rec.MunicipalityID, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[rec.MunicipalityID]; ok {
		return fmt.Errorf("create %q: %w", rec.MunicipalityID, ErrExists)
	}
	m.recs[rec.MunicipalityID] = cp
	return nil
}

func (m *Memory) Update(ctx context.Context, rec bylaw.Record, prev time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp, err := rec.Clone()
	if err != nil {
		return fmt.Errorf("update %q: %w", rec.MunicipalityID, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.recs[rec.MunicipalityID]
	if !ok {
		return fmt.Errorf("update %q: %w", rec.MunicipalityID, ErrNotFound)
	}
	if !cur.UpdatedAt.Equal(prev) {
		return fmt.Errorf("update %q: %w", rec.MunicipalityID, ErrConflict)
	}
	m.recs[rec.MunicipalityID] = cp
	return nil
}

func (m *Memory) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	ids := make([]string, 0, len(m.recs))
	for id := range m.recs {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	sort.Strings(ids)
	return ids, nil
}

func (m *Memory) Close() error { return nil }
