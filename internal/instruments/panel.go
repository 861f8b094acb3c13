package instruments

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/steamgauges/extension/internal/gpws"
	"github.com/steamgauges/extension/pkg/core"
)

const instrumentationName = "github.com/steamgauges/extension/internal/instruments"

// PanelReading is everything the panel shows for one frame. Disabled gauges
// are nil and left out of the JSON.
type PanelReading struct {
	UT          float64             `json:"ut"`
	Air         *AirReading         `json:"air,omitempty"`
	Fuel        *FuelReading        `json:"fuel,omitempty"`
	Electrical  *ElectricalReading  `json:"electrical,omitempty"`
	Temperature *TemperatureReading `json:"temperature,omitempty"`
	Radar       *RadarReading       `json:"radar,omitempty"`
	Rendezvous  *RendezvousReading  `json:"rendezvous,omitempty"`
	Node        *NodeReading        `json:"node,omitempty"`
	Orbit       *OrbitReading       `json:"orbit,omitempty"`
	Nav         *NavReading         `json:"nav,omitempty"`
	Compass     *CompassReading     `json:"compass,omitempty"`
	HUD         *HUDReading         `json:"hud,omitempty"`

	Warning  core.WarningState `json:"warning"`
	Commands Commands          `json:"commands"`
	// Degraded maps a gauge that failed this frame to the reason.
	Degraded map[Kind]string `json:"degraded,omitempty"`
	Events   []core.Event    `json:"-"`
}

// Panel evaluates the enabled gauges frame by frame and keeps the state that
// spans frames: the GPWS altitude tracker and the automation switches.
type Panel struct {
	mu       sync.Mutex
	settings Settings
	env      Env
	logger   *slog.Logger

	gpws     *gpws.Evaluator
	radar    RadarAutomation
	node     NodeAutomation
	warning  core.WarningState
	airborne bool

	frames   metric.Int64Counter
	degraded metric.Int64Counter
	warnings metric.Int64Counter
}

// NewPanel builds a panel. Metrics go to the global OTel meter, which is a
// no-op until a provider is installed.
func NewPanel(s Settings, env Env, logger *slog.Logger) (*Panel, error) {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Panel{
		env:    env.withDefaults(),
		logger: logger,
		gpws:   gpws.New(s.HUD.UseGPWS),
	}
	p.applySettings(s)

	m := otel.Meter(instrumentationName)
	var err error
	p.frames, err = m.Int64Counter("panel.frames",
		metric.WithDescription("Frames evaluated"))
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}
	p.degraded, err = m.Int64Counter("panel.gauges.degraded",
		metric.WithDescription("Gauge evaluations that failed"))
	if err != nil {
		return nil, fmt.Errorf("creating degraded counter: %w", err)
	}
	p.warnings, err = m.Int64Counter("panel.gpws.warnings",
		metric.WithDescription("GPWS warnings raised"))
	if err != nil {
		return nil, fmt.Errorf("creating warnings counter: %w", err)
	}
	return p, nil
}

func (p *Panel) applySettings(s Settings) {
	p.settings = s
	p.gpws.Enabled = s.HUD.UseGPWS
	p.radar.AutoBurn = s.Radar.AutoBurn
	p.radar.ContactStop = s.Radar.ContactStop
	p.node.AutoBurn = s.Node.AutoBurn
	p.node.AutoStop = s.Node.AutoStop
}

// SetSettings replaces the configuration. An automation switch follows the
// new settings only when its own flag changed, so a fired switch stays
// disarmed across unrelated edits.
func (p *Panel) SetSettings(s Settings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	old := p.settings
	p.settings = s
	p.gpws.Enabled = s.HUD.UseGPWS
	if s.Radar.AutoBurn != old.Radar.AutoBurn {
		p.radar.AutoBurn = s.Radar.AutoBurn
	}
	if s.Radar.ContactStop != old.Radar.ContactStop {
		p.radar.ContactStop = s.Radar.ContactStop
	}
	if s.Node.AutoBurn != old.Node.AutoBurn {
		p.node.AutoBurn = s.Node.AutoBurn
	}
	if s.Node.AutoStop != old.Node.AutoStop {
		p.node.AutoStop = s.Node.AutoStop
	}
}

// Settings returns the current configuration.
func (p *Panel) Settings() Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// Reset clears the per-flight state, as on a vessel switch.
func (p *Panel) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gpws.Reset()
	p.radar.Burning = false
	p.warning = core.WarningNone
	p.airborne = false
	p.applySettings(p.settings)
}

// Automation reports the armed switches.
func (p *Panel) Automation() (RadarAutomation, NodeAutomation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.radar, p.node
}

// evaluate runs one gauge, turning a panic into a degraded entry so that
// one bad input only blanks its own gauge.
func (p *Panel) evaluate(ctx context.Context, out *PanelReading, k Kind, fn func()) {
	if !p.settings.IsEnabled(k) {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			if out.Degraded == nil {
				out.Degraded = make(map[Kind]string)
			}
			out.Degraded[k] = fmt.Sprint(rec)
			p.degraded.Add(ctx, 1, metric.WithAttributes(attribute.String("gauge", string(k))))
			p.logger.Error("gauge failed", "gauge", k, "error", rec)
		}
	}()
	fn()
}

// Evaluate computes every enabled gauge for v.
func (p *Panel) Evaluate(ctx context.Context, v core.VesselSnapshot) PanelReading {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := PanelReading{UT: v.UT}
	s := p.settings

	p.evaluate(ctx, &out, KindAir, func() { r := Air(v, s.Air); out.Air = &r })
	p.evaluate(ctx, &out, KindFuel, func() { r := Fuel(v, s.Fuel); out.Fuel = &r })
	p.evaluate(ctx, &out, KindElectrical, func() { r := Electrical(v, s.Fuel); out.Electrical = &r })
	p.evaluate(ctx, &out, KindTemperature, func() { r := Temperature(v); out.Temperature = &r })
	p.evaluate(ctx, &out, KindRadar, func() {
		r := Radar(v, s.Radar, p.env, &p.radar)
		out.Radar = &r
		p.automationEvent(&out, v, r.Commands, r.AutomationNote)
	})
	p.evaluate(ctx, &out, KindRendezvous, func() { r := Rendezvous(v, s.Rendezvous, p.env); out.Rendezvous = &r })
	p.evaluate(ctx, &out, KindNode, func() {
		r := Node(v, s.Node, &p.node)
		out.Node = &r
		p.automationEvent(&out, v, r.Commands, r.Note)
	})
	p.evaluate(ctx, &out, KindOrbit, func() { r := Orbit(v, s.Orbit, p.env); out.Orbit = &r })
	p.evaluate(ctx, &out, KindNav, func() { r := Nav(v, p.env); out.Nav = &r })
	p.evaluate(ctx, &out, KindCompass, func() { r := Compass(v); out.Compass = &r })
	p.evaluate(ctx, &out, KindHUD, func() {
		r := HUD(v, s.HUD, p.env, p.gpws)
		out.HUD = &r
		out.Warning = r.Warning
	})

	p.trackFlight(ctx, &out, v)
	p.frames.Add(ctx, 1)
	return out
}

// automationEvent folds a gauge's commands into the frame and records what
// fired.
func (p *Panel) automationEvent(out *PanelReading, v core.VesselSnapshot, cmd Commands, note string) {
	if cmd.Empty() {
		return
	}
	out.Commands.merge(cmd)

	kind := core.EventAutoStop
	if cmd.Throttle.Valid && cmd.Throttle.Value > 0 {
		kind = core.EventAutoBurn
	} else if !cmd.Throttle.Valid && cmd.WarpIndex.Valid {
		kind = core.EventWarpDown
		note = fmt.Sprintf("time warp down to %d", cmd.WarpIndex.Value)
	}
	out.Events = append(out.Events, core.Event{UT: v.UT, Kind: kind, Message: note})
	p.logger.Info("automation", "event", kind, "note", note, "ut", v.UT)
}

// trackFlight records warning onsets and touchdowns after flight.
func (p *Panel) trackFlight(ctx context.Context, out *PanelReading, v core.VesselSnapshot) {
	if out.Warning != p.warning {
		if out.Warning != core.WarningNone {
			out.Events = append(out.Events, core.Event{
				UT: v.UT, Kind: core.EventWarning, Warning: out.Warning, Message: out.Warning.String(),
			})
			p.warnings.Add(ctx, 1, metric.WithAttributes(attribute.String("warning", out.Warning.String())))
		}
		p.warning = out.Warning
	}

	landed := v.Flags.Landed || v.Flags.Splashed
	if landed && p.airborne {
		out.Events = append(out.Events, core.Event{
			UT: v.UT, Kind: core.EventTouchdown, Message: fmt.Sprintf("touchdown at %.1f m/s", -v.VerticalSpeed),
		})
	}
	p.airborne = !landed
}
