package influx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"

	"github.com/steamgauges/extension/internal/config"
	"github.com/steamgauges/extension/pkg/core"
)

// ErrDisabled is returned by Connect when influx.enabled is false.
var ErrDisabled = errors.New("influx disabled")

// Measurement names.
const (
	MeasurementPanel = "panel"
	MeasurementEvent = "flight_event"
)

// Manager handles InfluxDB connections and writes. When the server cannot
// be reached points go to a gzip'd line protocol file instead.
type Manager struct {
	cfg        config.InfluxConfig
	log        zerolog.Logger
	backupPath string

	mu           sync.Mutex
	client       influxdb2.Client
	writer       influxdb2_api.WriteAPI
	backupFile   *os.File
	backupWriter *gzip.Writer
	valid        bool
}

// NewManager creates a new InfluxDB manager.
func NewManager(cfg config.InfluxConfig, log zerolog.Logger, backupPath string) *Manager {
	return &Manager{
		cfg:        cfg,
		log:        log,
		backupPath: backupPath,
	}
}

// Connect establishes a connection to InfluxDB, falling back to the backup
// file if the ping fails.
func (m *Manager) Connect(ctx context.Context) error {
	if !m.cfg.Enabled {
		return ErrDisabled
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.client = influxdb2.NewClientWithOptions(
		m.cfg.URL(),
		m.cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(2500).
			SetFlushInterval(1000),
	)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	running, err := m.client.Ping(pingCtx)
	if err != nil || !running {
		m.valid = false
		m.log.Info().Str("backupPath", m.backupPath).
			Msg("Failed to initialize InfluxDB client, writing to backup file")
		return m.openBackup()
	}

	if err := m.setupOrganizationAndBucket(ctx); err != nil {
		return err
	}
	m.createWriter()
	m.valid = true
	m.log.Info().Str("url", m.cfg.URL()).Str("bucket", m.cfg.Bucket).Msg("InfluxDB client initialized")
	return nil
}

func (m *Manager) openBackup() error {
	if m.backupWriter != nil {
		return nil
	}
	file, err := os.OpenFile(m.backupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error creating backup file: %w", err)
	}
	m.backupFile = file
	m.backupWriter = gzip.NewWriter(file)
	return nil
}

func (m *Manager) setupOrganizationAndBucket(ctx context.Context) error {
	orgs := m.client.OrganizationsAPI()
	org, err := orgs.FindOrganizationByName(ctx, m.cfg.Org)
	if err != nil {
		m.log.Info().Str("org", m.cfg.Org).Msg("Organization not found, creating")
		org, err = orgs.CreateOrganizationWithName(ctx, m.cfg.Org)
		if err != nil {
			m.log.Error().Err(err).Str("org", m.cfg.Org).Msg("Error creating organization")
			return err
		}
	}

	if _, err = m.client.BucketsAPI().FindBucketByName(ctx, m.cfg.Bucket); err != nil {
		m.log.Info().Str("bucket", m.cfg.Bucket).Msg("Bucket not found, creating")

		rule := domain.RetentionRuleTypeExpire
		_, err = m.client.BucketsAPI().CreateBucketWithName(ctx, org, m.cfg.Bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: 60 * 60 * 24 * 30, // 30 days
		})
		if err != nil {
			m.log.Error().Err(err).Str("bucket", m.cfg.Bucket).Msg("Error creating bucket")
			return err
		}
	}
	return nil
}

func (m *Manager) createWriter() {
	m.writer = m.client.WriteAPI(m.cfg.Org, m.cfg.Bucket)
	go func(errorsCh <-chan error) {
		for writeErr := range errorsCh {
			m.log.Error().Err(writeErr).Str("bucket", m.cfg.Bucket).
				Msg("Error sending data to InfluxDB")
		}
	}(m.writer.Errors())
}

// Valid reports whether points go to the server rather than the backup.
func (m *Manager) Valid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.valid
}

// WritePoint writes a point to InfluxDB or the backup file.
func (m *Manager) WritePoint(point *influxdb2_write.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid {
		m.writer.WritePoint(point)
		return nil
	}
	if m.backupWriter == nil {
		return fmt.Errorf("influxDB client not initialized and backup writer not available")
	}

	lineProtocol := strings.TrimSuffix(influxdb2_write.PointToLineProtocol(point, time.Nanosecond), "\n")
	if _, err := m.backupWriter.Write([]byte(lineProtocol + "\n")); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// WriteFrame writes one panel frame.
func (m *Manager) WriteFrame(vessel string, f core.Frame) error {
	return m.WritePoint(FramePoint(vessel, f))
}

// WriteEvent writes one flight event.
func (m *Manager) WriteEvent(vessel string, e core.Event) error {
	return m.WritePoint(EventPoint(vessel, e))
}

// Close flushes pending writes and closes the client and backup file.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writer != nil {
		m.writer.Flush()
	}
	if m.client != nil {
		m.client.Close()
	}
	var err error
	if m.backupWriter != nil {
		err = errors.Join(m.backupWriter.Close(), m.backupFile.Close())
		m.backupWriter = nil
		m.backupFile = nil
	}
	m.valid = false
	return err
}

// FramePoint converts a recorded frame into a panel point. Every channel
// becomes a field; the warning is also kept as a tag for grouping.
func FramePoint(vessel string, f core.Frame) *influxdb2_write.Point {
	p := influxdb2_write.NewPointWithMeasurement(MeasurementPanel).
		AddTag("vessel", vessel).
		AddTag("body", f.Body).
		AddTag("warning", f.Warning.String()).
		AddField("ut", f.UT).
		AddField("altitude", f.Altitude).
		AddField("radar_altitude", f.RadarAltitude).
		AddField("surface_speed", f.SurfaceSpeed).
		AddField("vertical_speed", f.VerticalSpeed).
		AddField("mach", f.Mach).
		AddField("latitude", f.Latitude).
		AddField("longitude", f.Longitude).
		SetTime(f.Time)
	for k, v := range f.Channels {
		p.AddField(k, v)
	}
	return p
}

// EventPoint converts a flight event.
func EventPoint(vessel string, e core.Event) *influxdb2_write.Point {
	return influxdb2_write.NewPointWithMeasurement(MeasurementEvent).
		AddTag("vessel", vessel).
		AddTag("kind", string(e.Kind)).
		AddTag("warning", e.Warning.String()).
		AddField("ut", e.UT).
		AddField("message", e.Message).
		SetTime(e.Time)
}
