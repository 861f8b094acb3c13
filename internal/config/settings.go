package config

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/viper"

	"github.com/steamgauges/extension/internal/instruments"
	"github.com/steamgauges/extension/internal/vecmath"
)

// gaugeDefaults are the gauge settings the host may read and change at run
// time through :CONFIG:GET: and :CONFIG:SET:.
var gaugeDefaults = map[string]any{
	"air.aoa":     25.0,
	"air.minMach": 0.4,
	"air.useEAS":  true,

	"radar.redLight":    10.0,
	"radar.yellowLight": 100.0,
	"radar.greenLight":  1000.0,
	"radar.calibration": 0.0,
	"radar.contactAlt":  1.0,
	"radar.autoBurn":    false,
	"radar.contactStop": false,

	"fuel.red":        0.1,
	"fuel.yellow":     0.25,
	"fuel.green":      1.0,
	"fuel.monoRed":    0.1,
	"fuel.monoYellow": 0.25,
	"fuel.monoGreen":  1.0,

	"orbit.greenAlt":       1.2,
	"orbit.circleThresh":   0.1,
	"orbit.burnWindow":     30.0,
	"orbit.showNegativePe": true,

	"rendezvous.redDist":    10.0,
	"rendezvous.yellowDist": 100.0,
	"rendezvous.greenDist":  1000.0,

	"node.calculatedBurn": true,
	"node.autoBurn":       false,
	"node.autoStop":       false,

	"hud.useGPWS":     true,
	"hud.useEAS":      false,
	"hud.orbitalMode": true,
	"hud.minMach":     0.5,
	"hud.minG":        2.0,

	"gauges.scale": 1.0,
}

const (
	minGaugeScale = 0.12
	maxLightRange = 20000.0
)

func gaugeEnabledKey(k instruments.Kind) string {
	return "gauges." + string(k) + ".enabled"
}

func setGaugeDefaults() {
	for k, v := range gaugeDefaults {
		viper.SetDefault(k, v)
	}
	for _, k := range instruments.Kinds {
		viper.SetDefault(gaugeEnabledKey(k), true)
	}
}

// SettingKeys lists every run-time adjustable key in sorted order.
func SettingKeys() []string {
	keys := make([]string, 0, len(gaugeDefaults)+len(instruments.Kinds))
	for k := range gaugeDefaults {
		keys = append(keys, k)
	}
	for _, k := range instruments.Kinds {
		keys = append(keys, gaugeEnabledKey(k))
	}
	sort.Strings(keys)
	return keys
}

// GetSetting returns the current value of an adjustable key.
func GetSetting(key string) (any, error) {
	def, ok := settingDefault(key)
	if !ok {
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	if _, isBool := def.(bool); isBool {
		return viper.GetBool(key), nil
	}
	return viper.GetFloat64(key), nil
}

// SetSetting parses raw as the type of the key's default and stores it.
// Range checks happen when Settings is next called.
func SetSetting(key, raw string) error {
	def, ok := settingDefault(key)
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	if _, isBool := def.(bool); isBool {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		viper.Set(key, b)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	viper.Set(key, f)
	return nil
}

func settingDefault(key string) (any, bool) {
	if v, ok := gaugeDefaults[key]; ok {
		return v, true
	}
	for _, k := range instruments.Kinds {
		if key == gaugeEnabledKey(k) {
			return true, true
		}
	}
	return nil, false
}

// GaugeScale is the panel scale factor, clamped to [0.12, 1].
func GaugeScale() float64 {
	return vecmath.Clamp(viper.GetFloat64("gauges.scale"), minGaugeScale, 1)
}

// Settings builds the gauge settings from the current configuration and
// brings out-of-range values back into range.
func Settings() instruments.Settings {
	s := instruments.Settings{
		Air: instruments.AirSettings{
			CriticalAoA: viper.GetFloat64("air.aoa"),
			MinMach:     viper.GetFloat64("air.minMach"),
			UseEAS:      viper.GetBool("air.useEAS"),
		},
		Radar: instruments.RadarSettings{
			RedLight:        viper.GetFloat64("radar.redLight"),
			YellowLight:     viper.GetFloat64("radar.yellowLight"),
			GreenLight:      viper.GetFloat64("radar.greenLight"),
			Calibration:     viper.GetFloat64("radar.calibration"),
			ContactAltitude: viper.GetFloat64("radar.contactAlt"),
			AutoBurn:        viper.GetBool("radar.autoBurn"),
			ContactStop:     viper.GetBool("radar.contactStop"),
		},
		Fuel: instruments.FuelSettings{
			Red:        viper.GetFloat64("fuel.red"),
			Yellow:     viper.GetFloat64("fuel.yellow"),
			Green:      viper.GetFloat64("fuel.green"),
			MonoRed:    viper.GetFloat64("fuel.monoRed"),
			MonoYellow: viper.GetFloat64("fuel.monoYellow"),
			MonoGreen:  viper.GetFloat64("fuel.monoGreen"),
		},
		Orbit: instruments.OrbitSettings{
			GreenAlt:       viper.GetFloat64("orbit.greenAlt"),
			CircleThresh:   viper.GetFloat64("orbit.circleThresh"),
			BurnWindow:     viper.GetFloat64("orbit.burnWindow"),
			ShowNegativePe: viper.GetBool("orbit.showNegativePe"),
		},
		Rendezvous: instruments.RendezvousSettings{
			Red:    viper.GetFloat64("rendezvous.redDist"),
			Yellow: viper.GetFloat64("rendezvous.yellowDist"),
			Green:  viper.GetFloat64("rendezvous.greenDist"),
		},
		Node: instruments.NodeSettings{
			CalculatedBurn: viper.GetBool("node.calculatedBurn"),
			AutoBurn:       viper.GetBool("node.autoBurn"),
			AutoStop:       viper.GetBool("node.autoStop"),
		},
		HUD: instruments.HUDSettings{
			UseGPWS:     viper.GetBool("hud.useGPWS"),
			UseEAS:      viper.GetBool("hud.useEAS"),
			OrbitalMode: viper.GetBool("hud.orbitalMode"),
			MinMach:     viper.GetFloat64("hud.minMach"),
			MinG:        viper.GetFloat64("hud.minG"),
		},
		Enabled: make(map[instruments.Kind]bool, len(instruments.Kinds)),
	}
	for _, k := range instruments.Kinds {
		s.Enabled[k] = viper.GetBool(gaugeEnabledKey(k))
	}
	return Validate(s)
}

// Validate returns s with every range-checked field brought into range.
func Validate(s instruments.Settings) instruments.Settings {
	if s.Orbit.GreenAlt < 0.9 {
		s.Orbit.GreenAlt = 0.5
	}
	s.Orbit.GreenAlt = vecmath.Clamp(s.Orbit.GreenAlt, 0.5, 5)
	s.Orbit.CircleThresh = vecmath.Clamp(s.Orbit.CircleThresh, 0, 5)
	s.Orbit.BurnWindow = max(s.Orbit.BurnWindow, 0)

	s.Radar.RedLight = lightRange(s.Radar.RedLight)
	s.Radar.YellowLight = lightRange(s.Radar.YellowLight)
	s.Radar.GreenLight = lightRange(s.Radar.GreenLight)

	f := &s.Fuel
	for _, v := range []*float64{&f.Red, &f.Yellow, &f.Green, &f.MonoRed, &f.MonoYellow, &f.MonoGreen} {
		*v = vecmath.Clamp(*v, 0, 1)
	}
	return s
}

// lightRange zeroes radar light cutoffs outside [0, 20000].
func lightRange(v float64) float64 {
	if v < 0 || v > maxLightRange {
		return 0
	}
	return v
}
