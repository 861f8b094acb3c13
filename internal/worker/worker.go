// Package worker moves recorded frames off the host call path. Frames are
// queued by the handlers and drained on a ticker into storage, telemetry and
// alert sinks.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/steamgauges/extension/internal/cache"
	"github.com/steamgauges/extension/internal/config"
	"github.com/steamgauges/extension/internal/queue"
	"github.com/steamgauges/extension/internal/storage"
	"github.com/steamgauges/extension/pkg/core"
)

// ErrQueueFull is returned by Submit when the queue is at capacity. The
// record is dropped.
var ErrQueueFull = errors.New("recorder queue full")

// Record is one evaluated frame and the events it raised.
type Record struct {
	Vessel string
	Frame  core.Frame
	Events []core.Event
}

// TelemetryWriter receives frames for time-series storage.
type TelemetryWriter interface {
	WriteFrame(vessel string, f core.Frame) error
	WriteEvent(vessel string, e core.Event) error
}

// AlertPublisher receives events for live notification.
type AlertPublisher interface {
	Publish(vessel string, e core.Event) error
}

// Dependencies holds all dependencies for the worker manager. Any sink may
// be nil.
type Dependencies struct {
	Backend   storage.Backend
	Telemetry TelemetryWriter
	Alerts    AlertPublisher
	Logger    *slog.Logger
}

// Manager drains the record queue.
type Manager struct {
	deps  Dependencies
	cfg   config.RecorderConfig
	queue *queue.Queue[Record]

	Processed cache.SafeCounter
	Dropped   cache.SafeCounter
}

// NewManager creates a new worker manager
func NewManager(deps Dependencies, cfg config.RecorderConfig) *Manager {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Manager{
		deps:  deps,
		cfg:   cfg,
		queue: queue.New[Record](cfg.QueueSize),
	}
}

// Submit queues a record.
func (m *Manager) Submit(r Record) error {
	if !m.queue.TryPush(r) {
		m.Dropped.Inc()
		return ErrQueueFull
	}
	return nil
}

// Pending is the number of queued records.
func (m *Manager) Pending() int {
	return m.queue.Len()
}

// Counts returns how many records were processed and dropped so far.
func (m *Manager) Counts() (processed, dropped int) {
	return m.Processed.Value(), m.Dropped.Value()
}

// Run drains the queue every FlushInterval until ctx is done, then drains
// once more.
func (m *Manager) Run(ctx context.Context) {
	interval := m.cfg.FlushInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Drain()
			return
		case <-ticker.C:
			m.Drain()
		}
	}
}

// Drain processes everything queued so far.
func (m *Manager) Drain() {
	for _, r := range m.queue.GetAndEmpty() {
		m.process(r)
	}
}

func (m *Manager) process(r Record) {
	log := m.deps.Logger

	if m.deps.Backend != nil {
		if err := m.deps.Backend.RecordFrame(&r.Frame); err != nil && !errors.Is(err, core.ErrNoFlight) {
			log.Error("Failed to record frame", "error", err, "ut", r.Frame.UT)
		}
	}
	if m.deps.Telemetry != nil {
		if err := m.deps.Telemetry.WriteFrame(r.Vessel, r.Frame); err != nil {
			log.Warn("Failed to write frame telemetry", "error", err)
		}
	}

	for i := range r.Events {
		e := &r.Events[i]
		if e.Time.IsZero() {
			e.Time = r.Frame.Time
		}
		if m.deps.Backend != nil {
			if err := m.deps.Backend.RecordEvent(e); err != nil && !errors.Is(err, core.ErrNoFlight) {
				log.Error("Failed to record event", "error", err, "kind", e.Kind)
			}
		}
		if m.deps.Telemetry != nil {
			if err := m.deps.Telemetry.WriteEvent(r.Vessel, *e); err != nil {
				log.Warn("Failed to write event telemetry", "error", err)
			}
		}
		if m.deps.Alerts != nil {
			if err := m.deps.Alerts.Publish(r.Vessel, *e); err != nil {
				log.Warn("Failed to publish alert", "error", err, "kind", e.Kind)
			}
		}
	}
	m.Processed.Inc()
}
