package store

import (
	"context"
	"github.com/stretchr/testify/assert"
	"sync"
	"texasholdem-server/internal/rng"
	"texasholdem-server/pkg/poker/action"
	"texasholdem-server/pkg/poker/texasholdem"
	"testing"
)

var cbg = context.Background()

func newTable(t *testing.T, id string) *texasholdem.Table {
	t.Helper()

	table, _, err := texasholdem.NewTable(id, []texasholdem.Seat{
		{ID: 1, Chips: 1000},
		{ID: 2, Chips: 1000},
		{ID: 3, Chips: 1000},
	}, texasholdem.DefaultOptions(), rng.NewSeeded(1))
	if err != nil {
		t.Fatal(err)
	}

	table.Name = "Velvet Lounge"
	return table
}

// testStore runs the same behavior against every Store implementation
func testStore(t *testing.T, s Store, id string) {
	a := assert.New(t)

	table, err := s.Load(cbg, id)
	a.Equal(ErrGameNotFound, err)
	a.Nil(table)

	table = newTable(t, id)
	a.NoError(s.Save(cbg, table))
	a.Equal(int64(1), table.Version)

	loaded, err := s.Load(cbg, id)
	a.NoError(err)
	a.Equal(table, loaded)

	next, _, err := texasholdem.Apply(loaded, 3, action.Call, 0)
	a.NoError(err)
	a.NoError(s.Save(cbg, next))
	a.Equal(int64(2), next.Version)

	// the first snapshot is out of date now
	other, _, err := texasholdem.Apply(loaded, 3, action.Fold, 0)
	a.NoError(err)
	a.Equal(ErrStaleSnapshot, s.Save(cbg, other))
	a.Equal(int64(1), other.Version)

	loaded, err = s.Load(cbg, id)
	a.NoError(err)
	a.Equal(next, loaded)
	a.Equal(action.Call, loaded.LastAction.Action)

	// a new table cannot replace an existing one
	a.Equal(ErrStaleSnapshot, s.Save(cbg, newTable(t, id)))
}

// testStoreConcurrentSaves checks that only one of many writers with the same snapshot wins
func testStoreConcurrentSaves(t *testing.T, s Store, id string) {
	table := newTable(t, id)
	assert.NoError(t, s.Save(cbg, table))

	var wg sync.WaitGroup
	var mu sync.Mutex
	saved := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			next, _, err := texasholdem.Apply(table.Clone(), 3, action.Call, 0)
			if err != nil {
				t.Error(err)
				return
			}

			if err := s.Save(cbg, next); err == nil {
				mu.Lock()
				saved++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, saved)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore(), "memory-table")
}

func TestMemoryStore_concurrentSaves(t *testing.T) {
	testStoreConcurrentSaves(t, NewMemoryStore(), "memory-table")
}

func TestMemoryStore_sharesNoMemory(t *testing.T) {
	a := assert.New(t)

	s := NewMemoryStore()
	table := newTable(t, "memory-table")
	a.NoError(s.Save(cbg, table))

	table.Players[0].Chips = 1
	loaded, err := s.Load(cbg, "memory-table")
	a.NoError(err)
	a.Equal(975, loaded.Players[0].Chips)

	loaded.Players[0].Chips = 2
	again, _ := s.Load(cbg, "memory-table")
	a.Equal(975, again.Players[0].Chips)
}

func TestMemoryStore_canceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(cbg)
	cancel()

	s := NewMemoryStore()
	_, err := s.Load(ctx, "memory-table")
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, context.Canceled, s.Save(ctx, newTable(t, "memory-table")))
}
