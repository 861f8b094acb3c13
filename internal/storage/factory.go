package storage

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/steamgauges/extension/internal/config"
	"github.com/steamgauges/extension/internal/storage/memory"
	"github.com/steamgauges/extension/internal/storage/postgres"
	sqlitestorage "github.com/steamgauges/extension/internal/storage/sqlite"
)

// NewBackend creates a storage backend based on configuration. flush sets
// how often the database backends write their queues.
func NewBackend(cfg config.StorageConfig, log zerolog.Logger, flush time.Duration) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return postgres.New(cfg.DB, log, flush)
	case "sqlite":
		return sqlitestorage.New(cfg.SQLite, log, flush)
	case "memory":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
