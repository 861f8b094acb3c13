// Package monitor keeps a status file next to the library so a player can
// see whether frames are being recorded without opening the logs.
package monitor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/steamgauges/extension/pkg/core"
)

// Recorder is the part of the worker manager the monitor reads.
type Recorder interface {
	Pending() int
	Counts() (processed, dropped int)
}

// FlightSource reports the active flight, if any.
type FlightSource interface {
	Flight() *core.Flight
	Vessel() string
}

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	Recorder Recorder
	Flights  FlightSource
	Logger   *slog.Logger
	Path     string        // status file, empty to skip writing
	Interval time.Duration // defaults to one second
}

// Status is one snapshot of the recorder.
type Status struct {
	Time      time.Time `json:"time"`
	Vessel    string    `json:"vessel,omitempty"`
	Flight    string    `json:"flight,omitempty"`
	Recording bool      `json:"recording"`
	Pending   int       `json:"pending"`
	Processed int       `json:"processed"`
	Dropped   int       `json:"dropped"`
}

// Service manages status monitoring
type Service struct {
	deps      Dependencies
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
	done      chan struct{}
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Interval <= 0 {
		deps.Interval = time.Second
	}
	return &Service{deps: deps}
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Status returns the current program status
func (s *Service) Status() Status {
	st := Status{Time: time.Now().UTC()}
	if s.deps.Recorder != nil {
		st.Pending = s.deps.Recorder.Pending()
		st.Processed, st.Dropped = s.deps.Recorder.Counts()
	}
	if s.deps.Flights != nil {
		st.Vessel = s.deps.Flights.Vessel()
		if f := s.deps.Flights.Flight(); f != nil {
			st.Recording = true
			st.Flight = f.Key
		}
	}
	return st
}

// WriteStatus replaces the status file with the current status.
func (s *Service) WriteStatus() error {
	bs, err := json.MarshalIndent(s.Status(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}
	if err := os.WriteFile(s.deps.Path, append(bs, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write status file: %w", err)
	}
	return nil
}

// Start starts the status monitor goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if s.deps.Path == "" {
		s.mu.Unlock()
		return fmt.Errorf("no status file path configured")
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stopChan, s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		logger := s.deps.Logger
		logger.Debug("Starting status monitor goroutine", "path", s.deps.Path)

		ticker := time.NewTicker(s.deps.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := s.WriteStatus(); err != nil {
					logger.Error("Error writing status file", "error", err)
				}
			}
		}
	}()

	return nil
}

// Stop stops the status monitor and waits for it to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	close(s.stopChan)
	done := s.done
	s.mu.Unlock()
	<-done
}
