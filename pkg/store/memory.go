package store

import (
	"context"
	"encoding/json"
	"sync"
	"texasholdem-server/pkg/poker/texasholdem"
)

// MemoryStore keeps tables in memory as JSON
// Tables are encoded so that nothing handed out shares memory with what is stored
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string][]byte),
	}
}

// Load implements Store
func (m *MemoryStore) Load(ctx context.Context, id string) (*texasholdem.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	b, ok := m.tables[id]
	m.mu.Unlock()

	if !ok {
		return nil, ErrGameNotFound
	}

	var table texasholdem.Table
	if err := json.Unmarshal(b, &table); err != nil {
		return nil, err
	}

	return &table, nil
}

// Save implements Store
func (m *MemoryStore) Save(ctx context.Context, table *texasholdem.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current := int64(0)
	if b, ok := m.tables[table.ID]; ok {
		var stored struct {
			Version int64 `json:"version"`
		}

		if err := json.Unmarshal(b, &stored); err != nil {
			return err
		}

		current = stored.Version
	}

	if current != table.Version {
		return ErrStaleSnapshot
	}

	next := table.Clone()
	next.Version++
	b, err := json.Marshal(next)
	if err != nil {
		return err
	}

	m.tables[table.ID] = b
	table.Version = next.Version
	return nil
}
