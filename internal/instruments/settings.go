package instruments

// AirSettings configure the airspeed gauge.
type AirSettings struct {
	CriticalAoA float64 // stall lamp threshold, degrees
	MinMach     float64 // Mach digits read 0 below this
	UseEAS      bool
}

// RadarSettings configure the radar altimeter.
type RadarSettings struct {
	RedLight        float64
	YellowLight     float64
	GreenLight      float64
	Calibration     float64 // subtracted from the radar altitude
	ContactAltitude float64 // contact stop cuts the throttle at or below this
	AutoBurn        bool    // arm the suicide burn at startup
	ContactStop     bool    // arm the contact stop at startup
}

// FuelSettings are the lamp cutoffs, as fractions of capacity.
type FuelSettings struct {
	Red, Yellow, Green             float64
	MonoRed, MonoYellow, MonoGreen float64
}

// OrbitSettings configure the orbit gauge.
type OrbitSettings struct {
	GreenAlt       float64 // green lamp up to this multiple of the orbit floor
	CircleThresh   float64 // Ap and Pe within this fraction of Ap read as circular
	BurnWindow     float64 // seconds either side of Ap/Pe
	ShowNegativePe bool
}

// RendezvousSettings are the distance lamp cutoffs, in metres.
type RendezvousSettings struct {
	Red, Yellow, Green float64
}

// NodeSettings configure the maneuver node gauge.
type NodeSettings struct {
	CalculatedBurn bool // estimate burn time from thrust and Isp instead of the host's figure
	AutoBurn       bool
	AutoStop       bool
}

// HUDSettings configure the head-up display.
type HUDSettings struct {
	UseGPWS     bool
	UseEAS      bool
	OrbitalMode bool // show headings relative to orbital velocity when in orbit
	MinMach     float64
	MinG        float64
}

// Settings gathers the configuration of every gauge.
type Settings struct {
	Air        AirSettings
	Radar      RadarSettings
	Fuel       FuelSettings
	Orbit      OrbitSettings
	Rendezvous RendezvousSettings
	Node       NodeSettings
	HUD        HUDSettings
	Enabled    map[Kind]bool
}

// DefaultSettings returns the stock configuration with every gauge enabled.
func DefaultSettings() Settings {
	enabled := make(map[Kind]bool, len(Kinds))
	for _, k := range Kinds {
		enabled[k] = true
	}
	return Settings{
		Air:        AirSettings{CriticalAoA: 25, MinMach: 0.4, UseEAS: true},
		Radar:      RadarSettings{RedLight: 10, YellowLight: 100, GreenLight: 1000, ContactAltitude: 1},
		Fuel:       FuelSettings{Red: 0.1, Yellow: 0.25, Green: 1, MonoRed: 0.1, MonoYellow: 0.25, MonoGreen: 1},
		Orbit:      OrbitSettings{GreenAlt: 1.2, CircleThresh: 0.1, BurnWindow: 30, ShowNegativePe: true},
		Rendezvous: RendezvousSettings{Red: 10, Yellow: 100, Green: 1000},
		Node:       NodeSettings{CalculatedBurn: true},
		HUD:        HUDSettings{UseGPWS: true, OrbitalMode: true, MinMach: 0.5, MinG: 2},
		Enabled:    enabled,
	}
}

// IsEnabled reports whether a gauge is switched on. Gauges missing from the
// map are on.
func (s Settings) IsEnabled(k Kind) bool {
	on, ok := s.Enabled[k]
	return !ok || on
}
