// Package hostbridge is the C ABI surface the game host loads. Each call is
// routed through the dispatcher and answered with a JSON array the host
// script can parse.
package hostbridge

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/steamgauges/extension/internal/dispatcher"
)

// TimestampCommand answers with the current UTC time in nanoseconds without
// touching the dispatcher.
const TimestampCommand = ":TIMESTAMP:"

// Call routes a command with arguments to its handler and formats the reply.
func Call(command string, args []string) string {
	runSetup()
	if command == TimestampCommand {
		return getTimestamp()
	}

	d := GetDispatcher()
	if d == nil || !d.HasHandler(command) {
		return formatDispatchResponse(command, nil, errNoHandler)
	}

	result, err := d.Dispatch(dispatcher.Event{
		Command:   command,
		Args:      args,
		Timestamp: time.Now(),
	})
	return formatDispatchResponse(command, result, err)
}

// CallString handles the plain form where the command and its arguments
// arrive as one "|" separated string.
func CallString(input string) string {
	if input == TimestampCommand {
		return Call(input, nil)
	}
	parts := strings.Split(input, "|")
	return Call(parts[0], parts[1:])
}

type bridgeError string

func (e bridgeError) Error() string { return string(e) }

const errNoHandler = bridgeError("no handler registered")

// formatDispatchResponse renders ["ok", command, result] or
// ["error", command, message]. Results that are already JSON are embedded
// as is.
func formatDispatchResponse(command string, result any, err error) string {
	var reply []any
	switch {
	case err != nil:
		reply = []any{"error", command, err.Error()}
	case result == nil:
		reply = []any{"ok", command}
	default:
		reply = []any{"ok", command, result}
	}

	bs, mErr := json.Marshal(reply)
	if mErr != nil {
		bs, _ = json.Marshal([]any{"error", command, mErr.Error()})
	}
	return string(bs)
}

func getTimestamp() string {
	return strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
}
