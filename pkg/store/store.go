package store

import (
	"context"
	"errors"
	"texasholdem-server/pkg/poker/texasholdem"
)

// ErrGameNotFound is returned when no table is stored under the ID
var ErrGameNotFound = errors.New("game not found")

// ErrStaleSnapshot is returned when a table is saved from a snapshot that is no longer current
var ErrStaleSnapshot = errors.New("the table was changed by someone else")

// Store loads and saves table snapshots
type Store interface {
	// Load returns the current snapshot of the table
	Load(ctx context.Context, id string) (*texasholdem.Table, error)

	// Save stores the table if its Version still matches the stored version, 0 for a new table
	// On success, Version is incremented on the table passed in
	Save(ctx context.Context, table *texasholdem.Table) error
}
