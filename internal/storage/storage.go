// Package storage defines the flight recorder backends.
package storage

import (
	"time"

	"github.com/steamgauges/extension/pkg/core"
)

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Flight management. StartFlight assigns f.ID.
	StartFlight(f *core.Flight) error
	EndFlight(end time.Time) error

	// Recording. Both return core.ErrNoFlight outside a flight.
	RecordFrame(f *core.Frame) error
	RecordEvent(e *core.Event) error
}

// Exporter is an optional interface for backends that write a file when a
// flight ends.
type Exporter interface {
	ExportedFilePath() string
}

// Flusher is an optional interface for backends that batch writes.
type Flusher interface {
	Flush() error
}
