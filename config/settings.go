package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
)

// Supported database adapters.
const (
	AdapterPGXPool = "pgx.pool"
	AdapterSQLDB   = "sql.db"
	AdapterSQLX    = "sqlx.db"
	AdapterSQLite  = "sqlite"
)

// Environment variables read by FromEnv.
const (
	EnvDSN        = "BOOKSHELF_DSN"
	EnvReplicaDSN = "BOOKSHELF_REPLICA_DSN"
	EnvAdapter    = "BOOKSHELF_ADAPTER"
	EnvAddr       = "BOOKSHELF_ADDR"
)

const defaultAddr = ":8080"

// ErrUnsupportedAdapter is returned for adapter names other than the supported ones.
var ErrUnsupportedAdapter = errors.New("unsupported database adapter")

// Settings is the runtime configuration of the service.
type Settings struct {
	Adapter    string
	DSN        string
	ReplicaDSN string
	Addr       string
}

// FromEnv reads the settings from the environment and fills in defaults.
func FromEnv() (Settings, error) {
	s := Settings{
		Adapter:    os.Getenv(EnvAdapter),
		DSN:        os.Getenv(EnvDSN),
		ReplicaDSN: os.Getenv(EnvReplicaDSN),
		Addr:       os.Getenv(EnvAddr),
	}

	return s.WithDefaults()
}

// WithDefaults fills in the defaults of unset values and validates the adapter.
func (s Settings) WithDefaults() (Settings, error) {
	if s.Adapter == "" {
		s.Adapter = AdapterPGXPool
	}

	if !slices.Contains([]string{AdapterPGXPool, AdapterSQLDB, AdapterSQLX, AdapterSQLite}, s.Adapter) {
		return Settings{}, fmt.Errorf("%w: '%s'", ErrUnsupportedAdapter, s.Adapter)
	}

	if s.DSN == "" {
		s.DSN = PostgresDefaultDSN()
		if s.Adapter == AdapterSQLite {
			s.DSN = SQLiteDefaultDSN()
		}
	}

	if s.Addr == "" {
		s.Addr = defaultAddr
	}

	return s, nil
}
