// Package gormstorage holds the GORM models and queued writer shared by the
// SQLite and Postgres backends.
package gormstorage

import (
	"encoding/json"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/steamgauges/extension/internal/geo"
	"github.com/steamgauges/extension/pkg/core"
)

// Models is every table the backends migrate.
var Models = []any{
	&Flight{},
	&Frame{},
	&Event{},
}

// TrackPoint is a ground-track position in EPSG:3857 with altitude as Z,
// stored as PostGIS geometry on Postgres and as WKB elsewhere.
type TrackPoint struct {
	geom.Point
}

// GormDBDataType picks the column type per dialect.
func (TrackPoint) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "geometry"
	}
	return "blob"
}

// Flight is one recorded session.
type Flight struct {
	ID               uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	Key              string    `json:"key" gorm:"size:32;index:idx_flight_key"`
	VesselName       string    `json:"vesselName" gorm:"size:128"`
	Body             string    `json:"body" gorm:"size:64"`
	StartUT          float64   `json:"startUt"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	ExtensionVersion string    `json:"extensionVersion" gorm:"size:32"`
}

// Frame is one evaluated panel frame.
type Frame struct {
	ID            uint           `json:"id" gorm:"primarykey;autoIncrement;"`
	FlightID      uint           `json:"flightId" gorm:"index:idx_frame_flight_id"`
	Flight        Flight         `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:FlightID;"`
	Time          time.Time      `json:"time"`
	UT            float64        `json:"ut" gorm:"index:idx_frame_ut"`
	Body          string         `json:"body" gorm:"size:64"`
	GroundTrack   TrackPoint     `json:"-"`
	Altitude      float64        `json:"altitude"`
	RadarAltitude float64        `json:"radarAltitude"`
	SurfaceSpeed  float64        `json:"surfaceSpeed"`
	VerticalSpeed float64        `json:"verticalSpeed"`
	Mach          float64        `json:"mach"`
	Warning       string         `json:"warning" gorm:"size:32"`
	Channels      datatypes.JSON `json:"channels"`
}

// Event is a discrete flight event.
type Event struct {
	ID       uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	FlightID uint      `json:"flightId" gorm:"index:idx_event_flight_id"`
	Flight   Flight    `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:FlightID;"`
	Time     time.Time `json:"time"`
	UT       float64   `json:"ut"`
	Kind     string    `json:"kind" gorm:"size:32;index:idx_event_kind"`
	Warning  string    `json:"warning" gorm:"size:32"`
	Message  string    `json:"message" gorm:"size:256"`
}

// FlightFromCore converts a core flight to its row.
func FlightFromCore(f core.Flight) Flight {
	return Flight{
		ID:               f.ID,
		Key:              f.Key,
		VesselName:       f.VesselName,
		Body:             f.Body,
		StartUT:          f.StartUT,
		StartTime:        f.StartTime,
		EndTime:          f.EndTime,
		ExtensionVersion: f.ExtensionVersion,
	}
}

// FrameFromCore converts a core frame to its row, projecting the ground
// track and encoding the channels.
func FrameFromCore(f core.Frame) (Frame, error) {
	channels, err := json.Marshal(f.Channels)
	if err != nil {
		return Frame{}, err
	}
	return Frame{
		FlightID:      f.FlightID,
		Time:          f.Time,
		UT:            f.UT,
		Body:          f.Body,
		GroundTrack:   TrackPoint{geo.GroundTrackPoint(f.Latitude, f.Longitude, f.Altitude)},
		Altitude:      f.Altitude,
		RadarAltitude: f.RadarAltitude,
		SurfaceSpeed:  f.SurfaceSpeed,
		VerticalSpeed: f.VerticalSpeed,
		Mach:          f.Mach,
		Warning:       f.Warning.String(),
		Channels:      datatypes.JSON(channels),
	}, nil
}

// EventFromCore converts a core event to its row.
func EventFromCore(e core.Event) Event {
	return Event{
		FlightID: e.FlightID,
		Time:     e.Time,
		UT:       e.UT,
		Kind:     string(e.Kind),
		Warning:  e.Warning.String(),
		Message:  e.Message,
	}
}
