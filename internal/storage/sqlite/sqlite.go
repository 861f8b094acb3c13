// Package sqlitestorage implements the storage.Backend interface using an in-memory
// SQLite database with periodic disk dumps via VACUUM INTO.
// It wraps the GORM backend; the only SQLite-specific concerns are creating
// the in-memory DB and the periodic dump.
package sqlitestorage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/steamgauges/extension/internal/config"
	"github.com/steamgauges/extension/internal/database"
	gormstorage "github.com/steamgauges/extension/internal/storage/gorm"
)

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	cfg      config.SQLiteConfig
	log      zerolog.Logger
	stopChan chan struct{}
	doneChan chan struct{}
}

// New creates a new SQLite storage backend.
func New(cfg config.SQLiteConfig, log zerolog.Logger, flushInterval time.Duration) (*Backend, error) {
	db, err := database.OpenSQLite("")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite DB: %w", err)
	}

	return &Backend{
		Backend: gormstorage.New(db, log, flushInterval),
		cfg:     cfg,
		log:     log,
	}, nil
}

// Init initializes the embedded GORM backend and starts the dump goroutine.
func (b *Backend) Init() error {
	if err := b.Backend.Init(); err != nil {
		return err
	}

	if b.cfg.Path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(b.cfg.Path), 0755); err != nil {
		return fmt.Errorf("failed to create dump directory: %w", err)
	}
	if b.cfg.DumpInterval > 0 {
		b.stopChan = make(chan struct{})
		b.doneChan = make(chan struct{})
		go b.dumpLoop()
	}

	return nil
}

// Close stops the dump goroutine, closes the embedded GORM backend and
// writes a last dump.
func (b *Backend) Close() error {
	if b.stopChan != nil {
		close(b.stopChan)
		<-b.doneChan
		b.stopChan = nil
	}
	if err := b.Backend.Close(); err != nil {
		return err
	}
	if b.cfg.Path == "" {
		return nil
	}
	return b.Dump()
}

// EndFlight ends the flight and dumps so the file holds the finished flight.
func (b *Backend) EndFlight(end time.Time) error {
	if err := b.Backend.EndFlight(end); err != nil {
		return err
	}
	if b.cfg.Path == "" {
		return nil
	}
	return b.Dump()
}

// Dump writes the in-memory database to the configured path.
func (b *Backend) Dump() error {
	start := time.Now()
	if err := database.DumpToDisk(b.DB(), b.cfg.Path); err != nil {
		return err
	}
	b.log.Debug().Dur("duration", time.Since(start)).Str("path", b.cfg.Path).Msg("Dumped to disk")
	return nil
}

// ExportedFilePath is the dump file.
func (b *Backend) ExportedFilePath() string {
	return b.cfg.Path
}

// dumpLoop periodically dumps the in-memory SQLite database to disk via VACUUM INTO.
func (b *Backend) dumpLoop() {
	defer close(b.doneChan)
	ticker := time.NewTicker(b.cfg.DumpInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			if err := b.Dump(); err != nil {
				b.log.Error().Err(err).Msg("Error dumping to disk")
			}
		}
	}
}
