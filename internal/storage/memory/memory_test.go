package memory

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamgauges/extension/internal/config"
	"github.com/steamgauges/extension/pkg/core"
)

var start = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newFlight(name string) *core.Flight {
	return &core.Flight{
		Key:        core.FlightKey(name, 100),
		VesselName: name,
		Body:       "Kerbin",
		StartUT:    100,
		StartTime:  start,
	}
}

func TestNew(t *testing.T) {
	cfg := config.MemoryConfig{
		OutputDir:      "/tmp/test",
		CompressOutput: true,
	}
	b := New(cfg)

	if b == nil {
		t.Fatal("New returned nil")
	}
	if b.cfg.OutputDir != "/tmp/test" {
		t.Errorf("expected OutputDir=/tmp/test, got %s", b.cfg.OutputDir)
	}
	if err := b.Init(); err != nil {
		t.Errorf("Init failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestRecordWithoutFlight(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: t.TempDir()})

	assert.ErrorIs(t, b.RecordFrame(&core.Frame{}), core.ErrNoFlight)
	assert.ErrorIs(t, b.RecordEvent(&core.Event{}), core.ErrNoFlight)
	assert.ErrorIs(t, b.EndFlight(time.Now()), core.ErrNoFlight)
	_, ok := b.Current()
	assert.False(t, ok)
}

func TestFlightLifecycle(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir, CompressOutput: true})

	f := newFlight("Kerbal X")
	require.NoError(t, b.StartFlight(f))
	assert.Equal(t, uint(1), f.ID)

	require.NoError(t, b.RecordFrame(&core.Frame{UT: 100, Altitude: 70, Channels: map[string]float64{"air.airspeed": 0}}))
	require.NoError(t, b.RecordFrame(&core.Frame{UT: 101, Altitude: 95, Warning: core.WarningSinkrate}))
	require.NoError(t, b.RecordEvent(&core.Event{UT: 101, Kind: core.EventWarning, Warning: core.WarningSinkrate}))

	cur, ok := b.Current()
	require.True(t, ok)
	assert.Len(t, cur.Frames, 2)
	assert.Equal(t, uint(1), cur.Frames[1].FlightID)

	require.NoError(t, b.EndFlight(start.Add(5*time.Minute)))
	path := b.ExportedFilePath()
	assert.Equal(t, filepath.Join(dir, "Kerbal_X_20260314_093000.msgpack.zst"), path)

	rec, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Kerbal X", rec.Flight.VesselName)
	assert.True(t, rec.Flight.EndTime.Equal(start.Add(5*time.Minute)))
	require.Len(t, rec.Frames, 2)
	assert.Equal(t, 95.0, rec.Frames[1].Altitude)
	assert.Equal(t, core.WarningSinkrate, rec.Frames[1].Warning)
	assert.Equal(t, map[string]float64{"air.airspeed": 0}, rec.Frames[0].Channels)
	require.Len(t, rec.Events, 1)
	assert.Equal(t, core.EventWarning, rec.Events[0].Kind)

	_, ok = b.Current()
	assert.False(t, ok, "ending a flight clears it")
}

func TestUncompressedExport(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir})

	require.NoError(t, b.StartFlight(newFlight("Probe")))
	require.NoError(t, b.RecordFrame(&core.Frame{UT: 1}))
	require.NoError(t, b.EndFlight(start))

	path := b.ExportedFilePath()
	assert.True(t, strings.HasSuffix(path, ".msgpack"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(raw, zstdMagic))

	rec, err := ReadRecording(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Len(t, rec.Frames, 1)
}

func TestStartFlight_ExportsPrevious(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir})

	require.NoError(t, b.StartFlight(newFlight("First")))
	second := newFlight("Second")
	second.StartTime = start.Add(time.Hour)
	require.NoError(t, b.StartFlight(second))
	assert.Equal(t, uint(2), second.ID)

	assert.Contains(t, b.ExportedFilePath(), "First_")

	require.NoError(t, b.Close())
	assert.Contains(t, b.ExportedFilePath(), "Second_")
}

func TestFileName(t *testing.T) {
	rec := &Recording{Flight: core.Flight{VesselName: `Jeb's "Best" 1/2`, StartTime: start}}
	assert.Equal(t, "Jeb's__Best__1_2_20260314_093000.msgpack", FileName(rec, false))

	rec.Flight.VesselName = ""
	assert.Equal(t, "flight_20260314_093000.msgpack.zst", FileName(rec, true))
}

func TestReadRecording_Garbage(t *testing.T) {
	_, err := ReadRecording(strings.NewReader("not a recording"))
	assert.Error(t, err)
}
