package hostbridge

import (
	"sync"

	"github.com/steamgauges/extension/internal/dispatcher"
)

// configStruct is the state shared by the exported entry points.
type configStruct struct {
	mu sync.RWMutex

	// version is returned when the host first loads the library
	version string

	// dispatcher handles command routing
	dispatcher *dispatcher.Dispatcher

	// setup runs once, before the first dispatched call
	setup     func()
	setupOnce sync.Once
}

var bridge = configStruct{version: "No version set"}

// SetVersion sets the string returned by SGExtensionVersion.
func SetVersion(version string) {
	bridge.mu.Lock()
	defer bridge.mu.Unlock()
	bridge.version = version
}

// Version returns the configured version string.
func Version() string {
	bridge.mu.RLock()
	defer bridge.mu.RUnlock()
	return bridge.version
}

// SetDispatcher sets the event dispatcher for handling commands
func SetDispatcher(d *dispatcher.Dispatcher) {
	bridge.mu.Lock()
	defer bridge.mu.Unlock()
	bridge.dispatcher = d
}

// GetDispatcher returns the configured dispatcher, or nil if not set
func GetDispatcher() *dispatcher.Dispatcher {
	bridge.mu.RLock()
	defer bridge.mu.RUnlock()
	return bridge.dispatcher
}

// OnFirstCall registers fn to run before the first command reaches the
// dispatcher. Loading the library for a version probe stays cheap.
func OnFirstCall(fn func()) {
	bridge.mu.Lock()
	defer bridge.mu.Unlock()
	bridge.setup = fn
}

func runSetup() {
	bridge.mu.RLock()
	fn := bridge.setup
	bridge.mu.RUnlock()
	if fn == nil {
		return
	}
	bridge.setupOnce.Do(fn)
}
