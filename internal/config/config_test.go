package config

import (
	"github.com/stretchr/testify/assert"
	"os"
	"testing"
)

func TestInstance(t *testing.T) {
	t.Setenv("HOLDEM_CONFIG_FILE", "testdata/config.yaml")
	t.Setenv("HOLDEM_JWT_PRIVATE_KEY", "private2.key")
	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal("postgres://holdem@db:5432/holdem?sslmode=disable", cfg.PGDSN)
	a.Equal(StorePostgres, cfg.Store)
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal("debug", cfg.Log.Level)
	a.Equal(15, cfg.Table.TurnTimeout)

	// defaults survive when the file doesn't set them
	a.Equal(25, cfg.Table.SmallBlind)
	a.Equal(100, cfg.Table.BigBlind)
	a.Equal("./sql", cfg.MigrationsPath)

	// ensure that it's only loaded once
	_ = os.Setenv("HOLDEM_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestDefaults(t *testing.T) {
	t.Setenv("HOLDEM_CONFIG_FILE", "")
	_ = os.Unsetenv("HOLDEM_CONFIG_FILE")

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, DefaultConfig().Store, cfg.Store)
	assert.Equal(t, 30, cfg.Table.TurnTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_missingFile(t *testing.T) {
	t.Setenv("HOLDEM_CONFIG_FILE", "testdata/missing.yaml")
	assert.Error(t, Load())
}

func TestLoad_env(t *testing.T) {
	t.Setenv("HOLDEM_CONFIG_FILE", "testdata/config.yaml")
	t.Setenv("HOLDEM_TABLE_TURN_TIMEOUT", "5")
	t.Setenv("HOLDEM_STORE", StoreMemory)
	t.Setenv("HOLDEM_TABLE_ENFORCE_MIN_RAISE", "true")

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, 5, cfg.Table.TurnTimeout)
	assert.True(t, cfg.Table.EnforceMinRaise)
	assert.Equal(t, StoreMemory, cfg.Store)
}
