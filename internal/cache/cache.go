package cache

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/steamgauges/extension/internal/orbit"
	"github.com/zeebo/xxh3"
)

// DefaultResolution is how long a closest approach result stays valid, in
// game seconds. The three-pass search is too slow to run every frame.
const DefaultResolution = 0.2

// DefaultMaxEntries bounds the memo; it is cleared when full.
const DefaultMaxEntries = 256

type entry struct {
	ut       float64
	approach orbit.Approach
}

// ApproachCache memoises closest approach searches keyed by both element sets
// and the UT rounded down to the resolution.
type ApproachCache struct {
	m          sync.Mutex
	entries    map[uint64]entry
	Resolution float64
	MaxEntries int

	Hits   SafeCounter
	Misses SafeCounter
}

func NewApproachCache() *ApproachCache {
	return &ApproachCache{
		entries:    make(map[uint64]entry),
		Resolution: DefaultResolution,
		MaxEntries: DefaultMaxEntries,
	}
}

func (c *ApproachCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.entries = make(map[uint64]entry)
}

// Len is the number of memoised results.
func (c *ApproachCache) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return len(c.entries)
}

// ClosestApproach returns the memoised result for a and b at ut, running the
// search on a miss. A hit has its time offset shifted by the time elapsed
// since it was computed.
func (c *ApproachCache) ClosestApproach(a, b orbit.Elements, ut float64) orbit.Approach {
	bucket := ut
	if c.Resolution > 0 {
		bucket = math.Floor(ut/c.Resolution) * c.Resolution
	}
	key := Key(a, b, bucket)

	c.m.Lock()
	if e, ok := c.entries[key]; ok {
		c.m.Unlock()
		c.Hits.Inc()
		res := e.approach
		res.TimeOffset = math.Max(0, res.TimeOffset-(ut-e.ut))
		return res
	}
	c.m.Unlock()

	c.Misses.Inc()
	res := orbit.ClosestApproach(a, b, ut)

	c.m.Lock()
	defer c.m.Unlock()
	if c.MaxEntries > 0 && len(c.entries) >= c.MaxEntries {
		c.entries = make(map[uint64]entry)
	}
	c.entries[key] = entry{ut: ut, approach: res}
	return res
}

// Key hashes two element sets and a UT bucket.
func Key(a, b orbit.Elements, bucket float64) uint64 {
	var buf [17 * 8]byte
	off := 0
	put := func(v float64) {
		binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(v))
		off += 8
	}
	for _, el := range [2]orbit.Elements{a, b} {
		put(el.Mu)
		put(el.SemiMajorAxis)
		put(el.Eccentricity)
		put(el.Inclination)
		put(el.LAN)
		put(el.ArgumentOfPeriapsis)
		put(el.MeanAnomalyAtEpoch)
		put(el.Epoch)
	}
	put(bucket)
	return xxh3.Hash(buf[:])
}

// SafeCounter is a thread-safe counter
type SafeCounter struct {
	mu sync.Mutex
	v  int
}

func (c *SafeCounter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *SafeCounter) Set(v int) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

func (c *SafeCounter) Inc() {
	c.mu.Lock()
	c.v++
	c.mu.Unlock()
}
