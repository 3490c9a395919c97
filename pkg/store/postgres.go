package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"github.com/sirupsen/logrus"
	"texasholdem-server/pkg/db"
	"texasholdem-server/pkg/poker/texasholdem"
)

// PostgresStore keeps tables in the poker_tables table
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a store backed by the database handle
func NewPostgresStore(dbh *sql.DB) *PostgresStore {
	return &PostgresStore{db: dbh}
}

// Load implements Store
func (p *PostgresStore) Load(ctx context.Context, id string) (*texasholdem.Table, error) {
	const query = `
SELECT state, version
FROM poker_tables
WHERE id = $1`

	return tableByRow(p.db.QueryRowContext(ctx, query, id))
}

func tableByRow(row db.Scanner) (*texasholdem.Table, error) {
	var state []byte
	var version int64
	if err := row.Scan(&state, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}

		return nil, err
	}

	var table texasholdem.Table
	if err := json.Unmarshal(state, &table); err != nil {
		return nil, err
	}

	// the column is authoritative
	table.Version = version
	return &table, nil
}

// Save implements Store
func (p *PostgresStore) Save(ctx context.Context, table *texasholdem.Table) error {
	next := table.Clone()
	next.Version++
	state, err := json.Marshal(next)
	if err != nil {
		return err
	}

	var res sql.Result
	if table.Version == 0 {
		const query = `
INSERT INTO poker_tables (id, name, version, hand_number, game_in_progress, state)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO NOTHING`

		res, err = p.db.ExecContext(ctx, query, next.ID, next.Name, next.Version, next.HandNumber, next.GameInProgress, state)
	} else {
		const query = `
UPDATE poker_tables
SET version          = $3,
    hand_number      = $4,
    game_in_progress = $5,
    state            = $6,
    updated          = NOW()
WHERE id = $1
  AND version = $2`

		res, err = p.db.ExecContext(ctx, query, next.ID, table.Version, next.Version, next.HandNumber, next.GameInProgress, state)
	}

	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		logrus.WithField("tableID", table.ID).WithField("version", table.Version).Warn("stale table snapshot")
		return ErrStaleSnapshot
	}

	table.Version = next.Version
	return nil
}
