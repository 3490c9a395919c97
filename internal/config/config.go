package config

import (
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"os"
	"texasholdem-server/internal/util"
)

const (
	// StoreMemory keeps tables in process memory
	StoreMemory = "memory"
	// StorePostgres keeps tables in Postgres
	StorePostgres = "postgres"
)

// Config provides configuration for the Texas Hold'em server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Store          string `yaml:"store" envconfig:"store"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	} `yaml:"jwt"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Table struct {
		// TurnTimeout is how many seconds a player has to act, 0 disables the turn timer
		TurnTimeout int `yaml:"turnTimeout" envconfig:"turn_timeout"`
		SmallBlind  int `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind    int `yaml:"bigBlind" envconfig:"big_blind"`

		// EnforceMinRaise rejects raises below the current minimum unless the player is all-in
		EnforceMinRaise bool `yaml:"enforceMinRaise" envconfig:"enforce_min_raise"`
	} `yaml:"table"`
	CORSAllowedOrigins []string `yaml:"corsAllowedOrigins" envconfig:"cors_allowed_origins"`
}

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	var cfg Config
	cfg.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	cfg.MigrationsPath = "./sql"
	cfg.Store = StoreMemory
	cfg.JWT.PublicKey = ".jwt/public.pem"
	cfg.JWT.PrivateKey = ".jwt/private.key"
	cfg.Log.Level = "info"
	cfg.Table.TurnTimeout = 30
	cfg.Table.SmallBlind = 25
	cfg.Table.BigBlind = 50
	cfg.CORSAllowedOrigins = []string{"*"}

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The YAML file is optional unless HOLDEM_CONFIG_FILE names one explicitly
func Load() error {
	configFile, explicit := os.LookupEnv("HOLDEM_CONFIG_FILE")
	if !explicit {
		configFile = util.Getenv("HOLDEM_CONFIG_FILE", "config.yaml")
	}

	cfg := DefaultConfig()
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	} else if explicit || !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("holdem", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
