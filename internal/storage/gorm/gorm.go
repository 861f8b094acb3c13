package gormstorage

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/steamgauges/extension/internal/queue"
	"github.com/steamgauges/extension/pkg/core"
)

// DefaultFlushInterval is how often queued rows are written.
const DefaultFlushInterval = 2 * time.Second

// Backend writes flights through GORM. Flights are inserted at once so they
// get an ID; frames and events are queued and written in batches.
type Backend struct {
	db       *gorm.DB
	log      zerolog.Logger
	interval time.Duration

	frames *queue.Queue[Frame]
	events *queue.Queue[Event]

	flightID atomic.Uint64
	writeMu  sync.Mutex
	stop     chan struct{}
	done     chan struct{}
}

// New creates a GORM backend on an open connection. A non-positive interval
// uses DefaultFlushInterval.
func New(db *gorm.DB, log zerolog.Logger, interval time.Duration) *Backend {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	return &Backend{
		db:       db,
		log:      log,
		interval: interval,
		frames:   queue.New[Frame](0),
		events:   queue.New[Event](0),
	}
}

// DB exposes the connection for dialect-specific setup and dumps.
func (b *Backend) DB() *gorm.DB {
	return b.db
}

// Init migrates the schema and starts the writer goroutine.
func (b *Backend) Init() error {
	if err := b.db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	b.stop = make(chan struct{})
	b.done = make(chan struct{})
	go b.writeLoop()
	return nil
}

// Close stops the writer and writes whatever is still queued.
func (b *Backend) Close() error {
	if b.stop != nil {
		close(b.stop)
		<-b.done
		b.stop = nil
	}
	return b.Flush()
}

// StartFlight inserts the flight row and directs later frames to it.
func (b *Backend) StartFlight(f *core.Flight) error {
	row := FlightFromCore(*f)
	row.ID = 0
	if err := b.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert flight: %w", err)
	}
	f.ID = row.ID
	b.flightID.Store(uint64(row.ID))
	return nil
}

// EndFlight writes the queue and stamps the end time.
func (b *Backend) EndFlight(end time.Time) error {
	id := b.flightID.Load()
	if id == 0 {
		return core.ErrNoFlight
	}
	if err := b.Flush(); err != nil {
		return err
	}
	b.flightID.Store(0)
	if err := b.db.Model(&Flight{}).Where("id = ?", id).Update("end_time", end).Error; err != nil {
		return fmt.Errorf("failed to end flight %d: %w", id, err)
	}
	return nil
}

// RecordFrame converts and queues a frame.
func (b *Backend) RecordFrame(f *core.Frame) error {
	id := b.flightID.Load()
	if id == 0 {
		return core.ErrNoFlight
	}
	f.FlightID = uint(id)
	row, err := FrameFromCore(*f)
	if err != nil {
		return fmt.Errorf("failed to convert frame: %w", err)
	}
	b.frames.Push(row)
	return nil
}

// RecordEvent converts and queues an event.
func (b *Backend) RecordEvent(e *core.Event) error {
	id := b.flightID.Load()
	if id == 0 {
		return core.ErrNoFlight
	}
	e.FlightID = uint(id)
	b.events.Push(EventFromCore(*e))
	return nil
}

// Pending is the number of rows waiting for the writer.
func (b *Backend) Pending() int {
	return b.frames.Len() + b.events.Len()
}

// Flush writes both queues now.
func (b *Backend) Flush() error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	if err := writeQueue(b.db, b.frames); err != nil {
		return fmt.Errorf("error creating frames: %w", err)
	}
	if err := writeQueue(b.db, b.events); err != nil {
		return fmt.Errorf("error creating events: %w", err)
	}
	return nil
}

func (b *Backend) writeLoop() {
	defer close(b.done)
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			start := time.Now()
			n := b.Pending()
			if err := b.Flush(); err != nil {
				b.log.Error().Err(err).Msg("DB writer")
				continue
			}
			if n > 0 {
				b.log.Debug().Int("rows", n).Dur("duration", time.Since(start)).Msg("DB writer")
			}
		}
	}
}

// writeQueue writes all items from a queue in one transaction. On failure
// the items go back on the queue for the next cycle.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T]) error {
	if q.Len() == 0 {
		return nil
	}

	items := q.GetAndEmpty()
	tx := db.Begin()
	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		q.Push(items...)
		return err
	}
	return tx.Commit().Error
}
