// Package diag is the process-wide diagnostic log channel. Lines are handed
// to the registered sink immediately; nothing is buffered or levelled.
package diag

import (
	"fmt"
	"strings"
	"sync"
)

// Func receives one human readable line together with the user data that was
// registered alongside it.
type Func func(userData any, line string)

var (
	mu       sync.RWMutex
	sink     Func
	userData any
)

// SetSink replaces the current sink. A nil fn disables logging.
func SetSink(fn Func, data any) {
	mu.Lock()
	defer mu.Unlock()
	sink = fn
	userData = data
	if fn == nil {
		userData = nil
	}
}

// Reset restores the pre-initialisation baseline.
func Reset() {
	SetSink(nil, nil)
}

// Enabled reports whether a sink is registered.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return sink != nil
}

// Log forwards line to the sink, if any. Blank lines are dropped.
func Log(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	mu.RLock()
	fn, data := sink, userData
	mu.RUnlock()
	if fn != nil {
		fn(data, line)
	}
}

// Logf formats according to a format specifier and logs the resulting line.
func Logf(format string, args ...any) {
	if !Enabled() {
		return
	}
	Log(fmt.Sprintf(format, args...))
}

// Platform returns a logger that prefixes every line with a platform label,
// e.g. "Linux: ".
func Platform(label string) func(format string, args ...any) {
	return func(format string, args ...any) {
		if !Enabled() {
			return
		}
		Log(label + ": " + fmt.Sprintf(format, args...))
	}
}
