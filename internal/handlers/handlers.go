// Package handlers implements the host commands: per-frame evaluation, the
// slower orbit/target/node/waypoint updates, settings and flight recording.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/steamgauges/extension/internal/api"
	"github.com/steamgauges/extension/internal/cache"
	"github.com/steamgauges/extension/internal/config"
	"github.com/steamgauges/extension/internal/dispatcher"
	"github.com/steamgauges/extension/internal/instruments"
	"github.com/steamgauges/extension/internal/logging"
	"github.com/steamgauges/extension/internal/parser"
	"github.com/steamgauges/extension/internal/storage"
	"github.com/steamgauges/extension/internal/util"
	"github.com/steamgauges/extension/internal/worker"
	"github.com/steamgauges/extension/pkg/core"
)

// ErrFlightArgs is returned when :FLIGHT:START: lacks its vessel and UT.
var ErrFlightArgs = errors.New("flight start needs vessel name, body and UT")

// HostState holds what the host sends less often than every frame. It is
// merged into each frame snapshot before evaluation.
type HostState struct {
	mu       sync.RWMutex
	orbit    core.Option[core.OrbitSnapshot]
	target   core.Option[core.Target]
	node     core.Option[core.ManeuverNode]
	waypoint core.Option[core.Waypoint]
	flight   *core.Flight
	vessel   string
}

// NewHostState returns an empty state.
func NewHostState() *HostState {
	return &HostState{}
}

// Apply copies the stored orbit, target, node and waypoint into v.
func (h *HostState) Apply(v *core.VesselSnapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if o, ok := h.orbit.Get(); ok {
		v.Orbit = o
	}
	v.Target = h.target
	v.Node = h.node
	v.Waypoint = h.waypoint
}

// Flight returns the flight being recorded, or nil.
func (h *HostState) Flight() *core.Flight {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.flight
}

// Vessel returns the name from the last frame.
func (h *HostState) Vessel() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.vessel
}

func (h *HostState) setVessel(name string) {
	h.mu.Lock()
	h.vessel = name
	h.mu.Unlock()
}

// Reset forgets everything except the flight.
func (h *HostState) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.orbit = core.None[core.OrbitSnapshot]()
	h.target = core.None[core.Target]()
	h.node = core.None[core.ManeuverNode]()
	h.waypoint = core.None[core.Waypoint]()
}

// LogAttrs stamps log records with the active flight.
func (h *HostState) LogAttrs() []slog.Attr {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.flight == nil {
		return nil
	}
	return []slog.Attr{
		slog.String("vessel", h.flight.VesselName),
		slog.String("flight", h.flight.Key),
	}
}

// FlightUploader sends an exported flight file somewhere once it is written.
type FlightUploader interface {
	Upload(path string, meta api.FlightMeta) error
}

// Dependencies holds all dependencies needed by handlers. Recorder, Backend,
// Uploader and Approaches may be nil.
type Dependencies struct {
	Parser           *parser.Parser
	Panel            *instruments.Panel
	Approaches       *cache.ApproachCache
	Recorder         *worker.Manager
	Backend          storage.Backend
	Uploader         FlightUploader
	LogManager       *logging.SlogManager
	ExtensionVersion string
}

// Service provides handler methods for host commands.
type Service struct {
	deps    Dependencies
	state   *HostState
	now     func() time.Time
	uploads sync.WaitGroup
}

// NewService creates a new handler service
func NewService(deps Dependencies, state *HostState) *Service {
	if state == nil {
		state = NewHostState()
	}
	return &Service{deps: deps, state: state, now: time.Now}
}

// State returns the host state.
func (s *Service) State() *HostState {
	return s.state
}

func (s *Service) logger() *slog.Logger {
	if s.deps.LogManager == nil {
		return slog.Default()
	}
	return s.deps.LogManager.Logger()
}

// RegisterHandlers registers every host command with the dispatcher. All
// handlers run synchronously because the host waits for the reading.
func (s *Service) RegisterHandlers(d *dispatcher.Dispatcher) {
	d.Register(":VERSION:", s.handleVersion)
	d.Register(":INIT:", s.handleInit, dispatcher.Logged())

	d.Register(":FRAME:", s.handleFrame)
	d.Register(":ORBIT:", s.handleOrbit)
	d.Register(":TARGET:", s.handleTarget, dispatcher.Logged())
	d.Register(":TARGET:CLEAR:", s.handleTargetClear, dispatcher.Logged())
	d.Register(":NODE:", s.handleNode)
	d.Register(":NODE:CLEAR:", s.handleNodeClear, dispatcher.Logged())
	d.Register(":WAYPOINT:", s.handleWaypoint, dispatcher.Logged())
	d.Register(":WAYPOINT:CLEAR:", s.handleWaypointClear, dispatcher.Logged())

	d.Register(":CONFIG:GET:", s.handleConfigGet, dispatcher.Logged())
	d.Register(":CONFIG:SET:", s.handleConfigSet, dispatcher.Logged())

	d.Register(":FLIGHT:START:", s.handleFlightStart, dispatcher.Logged())
	d.Register(":FLIGHT:END:", s.handleFlightEnd, dispatcher.Logged())
}

func (s *Service) handleVersion(dispatcher.Event) (any, error) {
	return s.deps.ExtensionVersion, nil
}

// handleInit clears per-vessel state, as on a scene change.
func (s *Service) handleInit(dispatcher.Event) (any, error) {
	s.state.Reset()
	s.deps.Panel.Reset()
	if s.deps.Approaches != nil {
		s.deps.Approaches.Reset()
	}
	return "ok", nil
}

// handleFrame evaluates the panel and returns the reading as JSON.
func (s *Service) handleFrame(e dispatcher.Event) (any, error) {
	v, err := s.deps.Parser.ParseFrame(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frame: %w", err)
	}
	s.state.Apply(&v)
	s.state.setVessel(v.Name)

	reading := s.deps.Panel.Evaluate(context.Background(), v)
	s.record(v, reading, e.Timestamp)

	out, err := json.Marshal(reading)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reading: %w", err)
	}
	return json.RawMessage(out), nil
}

// record queues the frame for the recorder. A full queue drops the frame.
func (s *Service) record(v core.VesselSnapshot, r instruments.PanelReading, at time.Time) {
	if s.deps.Recorder == nil {
		return
	}
	if at.IsZero() {
		at = s.now()
	}
	err := s.deps.Recorder.Submit(worker.Record{
		Vessel: v.Name,
		Frame:  FrameFromReading(v, r, at),
		Events: r.Events,
	})
	if err != nil {
		s.logger().Warn("Dropped frame", "error", err, "ut", v.UT)
	}
}

// FrameFromReading builds the recorded frame for a snapshot and its reading.
func FrameFromReading(v core.VesselSnapshot, r instruments.PanelReading, at time.Time) core.Frame {
	return core.Frame{
		Time:          at,
		UT:            v.UT,
		Body:          v.Body,
		Latitude:      v.Latitude,
		Longitude:     v.Longitude,
		Altitude:      v.Altitude,
		RadarAltitude: v.RadarAltitude,
		SurfaceSpeed:  v.SurfaceSpeed,
		VerticalSpeed: v.VerticalSpeed,
		Mach:          v.Mach,
		Warning:       r.Warning,
		Channels:      r.Channels(),
	}
}

func (s *Service) handleOrbit(e dispatcher.Event) (any, error) {
	o, err := s.deps.Parser.ParseOrbit(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse orbit: %w", err)
	}
	s.state.mu.Lock()
	s.state.orbit = core.Some(o)
	s.state.mu.Unlock()
	return nil, nil
}

func (s *Service) handleTarget(e dispatcher.Event) (any, error) {
	t, err := s.deps.Parser.ParseTarget(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse target: %w", err)
	}
	s.state.mu.Lock()
	changed := !s.state.target.Valid || s.state.target.Value.Name != t.Name
	s.state.target = core.Some(t)
	s.state.mu.Unlock()

	if changed && s.deps.Approaches != nil {
		s.deps.Approaches.Reset()
	}
	return nil, nil
}

func (s *Service) handleTargetClear(dispatcher.Event) (any, error) {
	s.state.mu.Lock()
	s.state.target = core.None[core.Target]()
	s.state.mu.Unlock()
	if s.deps.Approaches != nil {
		s.deps.Approaches.Reset()
	}
	return nil, nil
}

func (s *Service) handleNode(e dispatcher.Event) (any, error) {
	n, err := s.deps.Parser.ParseNode(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse node: %w", err)
	}
	s.state.mu.Lock()
	s.state.node = core.Some(n)
	s.state.mu.Unlock()
	return nil, nil
}

func (s *Service) handleNodeClear(dispatcher.Event) (any, error) {
	s.state.mu.Lock()
	s.state.node = core.None[core.ManeuverNode]()
	s.state.mu.Unlock()
	return nil, nil
}

func (s *Service) handleWaypoint(e dispatcher.Event) (any, error) {
	w, err := s.deps.Parser.ParseWaypoint(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse waypoint: %w", err)
	}
	s.state.mu.Lock()
	s.state.waypoint = core.Some(w)
	s.state.mu.Unlock()
	return nil, nil
}

func (s *Service) handleWaypointClear(dispatcher.Event) (any, error) {
	s.state.mu.Lock()
	s.state.waypoint = core.None[core.Waypoint]()
	s.state.mu.Unlock()
	return nil, nil
}

// handleConfigGet returns one setting, or all of them as a JSON object when
// called without a key.
func (s *Service) handleConfigGet(e dispatcher.Event) (any, error) {
	if len(e.Args) == 0 {
		all := make(map[string]any)
		for _, k := range config.SettingKeys() {
			v, err := config.GetSetting(k)
			if err != nil {
				return nil, err
			}
			all[k] = v
		}
		out, err := json.Marshal(all)
		if err != nil {
			return nil, err
		}
		return json.RawMessage(out), nil
	}
	return config.GetSetting(util.CleanArg(e.Args[0]))
}

// handleConfigSet stores a setting and pushes the validated settings to the
// panel, which re-arms the automation switches.
func (s *Service) handleConfigSet(e dispatcher.Event) (any, error) {
	if len(e.Args) < 2 {
		return nil, fmt.Errorf("%w: got %d, want 2", parser.ErrArgCount, len(e.Args))
	}
	key := util.CleanArg(e.Args[0])
	if err := config.SetSetting(key, util.CleanArg(e.Args[1])); err != nil {
		return nil, err
	}
	s.deps.Panel.SetSettings(config.Settings())
	s.logger().Info("Setting changed", "key", key)
	return config.GetSetting(key)
}

// handleFlightStart begins recording. Args: vessel name, body, UT. A flight
// still in progress is ended first.
func (s *Service) handleFlightStart(e dispatcher.Event) (any, error) {
	if len(e.Args) < 3 {
		return nil, fmt.Errorf("%w: got %d args", ErrFlightArgs, len(e.Args))
	}
	name := util.CleanArg(e.Args[0])
	body := util.CleanArg(e.Args[1])
	ut, err := strconv.ParseFloat(util.CleanArg(e.Args[2]), 64)
	if err != nil {
		return nil, fmt.Errorf("flight start UT: %w", err)
	}

	if s.state.Flight() != nil {
		if _, err := s.endFlight(); err != nil {
			s.logger().Error("Failed to end previous flight", "error", err)
		}
	}

	f := &core.Flight{
		Key:              core.FlightKey(name, ut),
		VesselName:       name,
		Body:             body,
		StartUT:          ut,
		StartTime:        s.now(),
		ExtensionVersion: s.deps.ExtensionVersion,
	}
	if s.deps.Backend != nil {
		if err := s.deps.Backend.StartFlight(f); err != nil {
			return nil, fmt.Errorf("failed to start flight: %w", err)
		}
	}

	s.state.mu.Lock()
	s.state.flight = f
	s.state.mu.Unlock()
	s.deps.Panel.Reset()

	s.logger().Info("Flight started", "vessel", name, "body", body, "ut", ut, "key", f.Key)
	return f.Key, nil
}

// handleFlightEnd stops recording and returns the exported file, if the
// backend writes one.
func (s *Service) handleFlightEnd(dispatcher.Event) (any, error) {
	return s.endFlight()
}

func (s *Service) endFlight() (any, error) {
	f := s.state.Flight()
	if f == nil {
		return nil, core.ErrNoFlight
	}
	if s.deps.Recorder != nil {
		s.deps.Recorder.Drain()
	}

	s.state.mu.Lock()
	s.state.flight = nil
	s.state.mu.Unlock()

	var result any = f.Key
	end := s.now()
	if s.deps.Backend != nil {
		if err := s.deps.Backend.EndFlight(end); err != nil {
			return nil, fmt.Errorf("failed to end flight: %w", err)
		}
		if exp, ok := s.deps.Backend.(storage.Exporter); ok && exp.ExportedFilePath() != "" {
			result = exp.ExportedFilePath()
			s.upload(exp.ExportedFilePath(), api.MetaFromFlight(*f, end))
		}
	}
	if s.deps.LogManager != nil {
		if err := s.deps.LogManager.Flush(context.Background()); err != nil {
			s.logger().Warn("Failed to flush OTel data", "error", err)
		}
	}

	s.logger().Info("Flight ended", "vessel", f.VesselName, "key", f.Key)
	return result, nil
}

// upload sends the file in the background so the host is not held up by
// the network.
func (s *Service) upload(path string, meta api.FlightMeta) {
	if s.deps.Uploader == nil {
		return
	}
	log := s.logger()
	s.uploads.Add(1)
	go func() {
		defer s.uploads.Done()
		start := time.Now()
		if err := s.deps.Uploader.Upload(path, meta); err != nil {
			log.Error("Failed to upload flight", "error", err, "path", path)
			return
		}
		log.Info("Uploaded flight", "path", path, "duration", time.Since(start))
	}()
}

// WaitUploads blocks until background uploads finish.
func (s *Service) WaitUploads() {
	s.uploads.Wait()
}
