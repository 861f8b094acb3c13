// Package memory keeps a flight in memory and writes it to a msgpack file,
// zstd compressed when configured, when the flight ends.
package memory

import (
	"sync"
	"time"

	"github.com/steamgauges/extension/internal/config"
	"github.com/steamgauges/extension/pkg/core"
)

// Recording is one flight with everything recorded during it.
type Recording struct {
	Flight core.Flight  `msgpack:"flight"`
	Frames []core.Frame `msgpack:"frames"`
	Events []core.Event `msgpack:"events"`
}

// Backend stores flight data in memory and exports it on EndFlight
type Backend struct {
	cfg config.MemoryConfig
	rec *Recording

	idCounter      uint
	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close exports a flight still in progress so nothing is lost on shutdown.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rec == nil {
		return nil
	}
	return b.finish(time.Now())
}

// StartFlight begins recording a new flight. A flight already in progress is
// exported first.
func (b *Backend) StartFlight(f *core.Flight) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.rec != nil {
		if err := b.finish(f.StartTime); err != nil {
			return err
		}
	}

	b.idCounter++
	f.ID = b.idCounter
	b.rec = &Recording{
		Flight: *f,
		Frames: make([]core.Frame, 0, 1024),
	}
	return nil
}

// EndFlight finalizes and exports the flight data
func (b *Backend) EndFlight(end time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.rec == nil {
		return core.ErrNoFlight
	}
	return b.finish(end)
}

func (b *Backend) finish(end time.Time) error {
	b.rec.Flight.EndTime = end
	path, err := b.export(b.rec)
	b.rec = nil
	if err != nil {
		return err
	}
	b.lastExportPath = path
	return nil
}

// RecordFrame appends a frame to the current flight
func (b *Backend) RecordFrame(f *core.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.rec == nil {
		return core.ErrNoFlight
	}
	f.FlightID = b.rec.Flight.ID
	b.rec.Frames = append(b.rec.Frames, *f)
	return nil
}

// RecordEvent appends an event to the current flight
func (b *Backend) RecordEvent(e *core.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.rec == nil {
		return core.ErrNoFlight
	}
	e.FlightID = b.rec.Flight.ID
	b.rec.Events = append(b.rec.Events, *e)
	return nil
}

// Current returns a copy of the flight in progress.
func (b *Backend) Current() (Recording, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.rec == nil {
		return Recording{}, false
	}
	return Recording{
		Flight: b.rec.Flight,
		Frames: append([]core.Frame(nil), b.rec.Frames...),
		Events: append([]core.Event(nil), b.rec.Events...),
	}, true
}

// ExportedFilePath is the file written by the last EndFlight.
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
