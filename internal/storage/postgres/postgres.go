// Package postgres implements the storage.Backend interface using GORM/PostgreSQL
// with PostGIS ground-track columns.
package postgres

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/steamgauges/extension/internal/config"
	"github.com/steamgauges/extension/internal/database"
	gormstorage "github.com/steamgauges/extension/internal/storage/gorm"
)

// Backend wraps the GORM backend and prepares PostGIS before migrating.
type Backend struct {
	*gormstorage.Backend
}

// New connects to Postgres.
func New(cfg config.DBConfig, log zerolog.Logger, flushInterval time.Duration) (*Backend, error) {
	db, err := database.OpenPostgres(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	log.Info().Str("host", cfg.Host).Str("database", cfg.Database).Msg("Connected to database")
	return &Backend{Backend: gormstorage.New(db, log, flushInterval)}, nil
}

// Init installs PostGIS, then migrates and starts the writer.
func (b *Backend) Init() error {
	if err := b.DB().Exec(`CREATE EXTENSION IF NOT EXISTS postgis;`).Error; err != nil {
		return fmt.Errorf("failed to create PostGIS Extension: %w", err)
	}
	return b.Backend.Init()
}
