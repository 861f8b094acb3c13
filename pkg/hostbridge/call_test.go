package hostbridge

import (
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamgauges/extension/internal/dispatcher"
	"github.com/steamgauges/extension/internal/logging"
)

func resetBridge(t *testing.T) {
	t.Helper()
	reset := func() {
		bridge.mu.Lock()
		bridge.dispatcher = nil
		bridge.setup = nil
		bridge.setupOnce = sync.Once{}
		bridge.version = "No version set"
		bridge.mu.Unlock()
	}
	reset()
	t.Cleanup(reset)
}

func TestFormatDispatchResponse(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		result   any
		err      error
		expected string
	}{
		{
			name:     "success with simple string",
			command:  ":INIT:",
			result:   "ok",
			expected: `["ok",":INIT:","ok"]`,
		},
		{
			name:     "success with path string",
			command:  ":FLIGHT:END:",
			result:   `C:\Games\KSP\flights\x.msgpack`,
			expected: `["ok",":FLIGHT:END:","C:\\Games\\KSP\\flights\\x.msgpack"]`,
		},
		{
			name:     "success with raw JSON",
			command:  ":FRAME:",
			result:   json.RawMessage(`{"ut":12.5}`),
			expected: `["ok",":FRAME:",{"ut":12.5}]`,
		},
		{
			name:     "success with bool",
			command:  ":CONFIG:GET:",
			result:   true,
			expected: `["ok",":CONFIG:GET:",true]`,
		},
		{
			name:     "success with nil result",
			command:  ":TARGET:CLEAR:",
			expected: `["ok",":TARGET:CLEAR:"]`,
		},
		{
			name:     "error",
			command:  ":FRAME:",
			err:      errors.New(`field 0 "ut": bad "value"`),
			expected: `["error",":FRAME:","field 0 \"ut\": bad \"value\""]`,
		},
		{
			name:     "unmarshalable result",
			command:  ":X:",
			result:   func() {},
			expected: `["error",":X:","json: unsupported type: func()"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatDispatchResponse(tt.command, tt.result, tt.err)
			assert.Equal(t, tt.expected, got)
			assert.True(t, json.Valid([]byte(got)))
		})
	}
}

func newDispatcher(t *testing.T) *dispatcher.Dispatcher {
	t.Helper()
	d, err := dispatcher.New(logging.NewDispatcherLogger(zerolog.Nop()))
	require.NoError(t, err)
	return d
}

func TestCall(t *testing.T) {
	resetBridge(t)
	d := newDispatcher(t)
	d.Register(":ECHO:", func(e dispatcher.Event) (any, error) {
		return e.Args, nil
	})
	SetDispatcher(d)

	assert.Equal(t, `["ok",":ECHO:",["a","b"]]`, Call(":ECHO:", []string{"a", "b"}))
	assert.Equal(t, `["error",":NOPE:","no handler registered"]`, Call(":NOPE:", nil))
}

func TestCall_NoDispatcher(t *testing.T) {
	resetBridge(t)
	assert.Equal(t, `["error",":FRAME:","no handler registered"]`, Call(":FRAME:", nil))
}

func TestCallString(t *testing.T) {
	resetBridge(t)
	d := newDispatcher(t)
	d.Register(":ECHO:", func(e dispatcher.Event) (any, error) {
		return e.Args, nil
	})
	SetDispatcher(d)

	assert.Equal(t, `["ok",":ECHO:",["x","y"]]`, CallString(":ECHO:|x|y"))
	assert.Equal(t, `["ok",":ECHO:",[]]`, CallString(":ECHO:"))
}

func TestTimestamp(t *testing.T) {
	resetBridge(t)
	got := CallString(TimestampCommand)
	n, err := strconv.ParseInt(got, 10, 64)
	require.NoError(t, err)
	assert.Positive(t, n)
}

func TestOnFirstCall(t *testing.T) {
	resetBridge(t)
	calls := 0
	OnFirstCall(func() {
		calls++
		d := newDispatcher(t)
		d.Register(":VERSION:", func(dispatcher.Event) (any, error) { return "1.0.0", nil })
		SetDispatcher(d)
	})

	assert.Equal(t, `["ok",":VERSION:","1.0.0"]`, Call(":VERSION:", nil))
	assert.Equal(t, `["ok",":VERSION:","1.0.0"]`, Call(":VERSION:", nil))
	assert.Equal(t, 1, calls)
}

func TestVersion(t *testing.T) {
	resetBridge(t)
	assert.Equal(t, "No version set", Version())
	SetVersion("2.1.0")
	assert.Equal(t, "2.1.0", Version())
}
