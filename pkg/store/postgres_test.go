package store

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"os"
	"texasholdem-server/pkg/db"
	"testing"
)

// postgresStore connects to the database named by PG_DSN, or skips the test
func postgresStore(t *testing.T) *PostgresStore {
	t.Helper()

	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN is not set")
	}

	dbh, err := db.Open(dsn)
	if err != nil {
		t.Fatal(err)
	}

	if err := db.Migrate(dbh, "../../sql"); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = dbh.Close()
	})

	return NewPostgresStore(dbh)
}

func TestPostgresStore(t *testing.T) {
	testStore(t, postgresStore(t), uuid.New().String())
}

func TestPostgresStore_concurrentSaves(t *testing.T) {
	testStoreConcurrentSaves(t, postgresStore(t), uuid.New().String())
}

func TestPostgresStore_row(t *testing.T) {
	s := postgresStore(t)
	table := newTable(t, uuid.New().String())
	if err := s.Save(cbg, table); err != nil {
		t.Fatal(err)
	}

	var name string
	var version int64
	var inProgress bool
	row := s.db.QueryRowContext(cbg, "SELECT name, version, game_in_progress FROM poker_tables WHERE id = $1", table.ID)
	if err := row.Scan(&name, &version, &inProgress); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "Velvet Lounge", name)
	assert.Equal(t, int64(1), version)
	assert.True(t, inProgress)
}
