package instruments

// Channels flattens the numeric part of a reading into "gauge.field" keys
// for the recorder and telemetry sinks. Gauges that were not evaluated are
// left out.
func (r PanelReading) Channels() map[string]float64 {
	c := make(map[string]float64, 32)
	if a := r.Air; a != nil {
		c["air.airspeed"] = a.Airspeed
		c["air.intake_ratio"] = a.IntakeRatio
		if a.TerminalShown {
			c["air.terminal"] = a.Terminal
		}
		if a.SoundShown {
			c["air.sound_speed"] = a.SoundSpeed
		}
	}
	if f := r.Fuel; f != nil {
		c["fuel.fuel"] = f.Fuel
		c["fuel.mono"] = f.Mono
	}
	if e := r.Electrical; e != nil {
		c["electrical.charge"] = e.Charge
		c["electrical.rate"] = e.Rate
	}
	if t := r.Temperature; t != nil {
		c["temperature.needle"] = t.Needle
		c["temperature.ablator"] = float64(t.Ablator)
	}
	if rd := r.Radar; rd != nil && rd.Visible {
		c["radar.altitude"] = rd.RadarAltitude
		if rd.SuicideAlt >= 0 {
			c["radar.suicide_altitude"] = rd.SuicideAlt
		}
	}
	if rv := r.Rendezvous; rv != nil && !rv.NoTarget {
		c["rendezvous.inclination"] = rv.Inclination
		c["rendezvous.drift_x"] = rv.DriftX
		c["rendezvous.drift_y"] = rv.DriftY
	}
	if n := r.Node; n != nil && !n.NoNode {
		c["node.remaining_dv"] = n.remainingDV
		c["node.time_to_burn"] = n.timeToBurn
		c["node.pitch"] = n.Pitch
		c["node.yaw"] = n.Yaw
	}
	if o := r.Orbit; o != nil {
		c["orbit.inclination"] = o.Inclination
	}
	if n := r.Nav; n != nil && !n.Off {
		c["nav.bearing"] = n.Bearing
		c["nav.cross_track"] = n.CrossTrack
		c["nav.along_track"] = n.AlongTrack
	}
	if cp := r.Compass; cp != nil {
		c["compass.heading"] = cp.Heading
	}
	if h := r.HUD; h != nil {
		c["hud.speed"] = h.Speed
		c["hud.heading"] = h.Heading
		c["hud.pitch"] = h.Pitch
		c["hud.roll"] = h.Roll
	}
	c["warning"] = float64(r.Warning)
	return c
}
