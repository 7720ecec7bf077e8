package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/wieslawsoltes/NativeMessageBox/internal/config"
)

// Logger writes timestamped lines to the CLI log file and echoes them.
type Logger struct {
	mu         sync.Mutex
	path       string
	echo       io.Writer
	now        func() time.Time
	observerMu sync.RWMutex
	observer   func(string)
}

// New creates a logger appending to path and echoing to stderr. An empty
// path disables the file.
func New(path string) *Logger {
	if path != "" {
		if err := config.EnsureDir(filepath.Dir(path)); err != nil {
			path = ""
		}
	}
	return &Logger{path: path, echo: os.Stderr, now: time.Now}
}

// SetEcho replaces the echo writer. Nil silences the echo.
func (l *Logger) SetEcho(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.echo = w
}

// Log writes a line to the log file and the echo writer.
func (l *Logger) Log(message string) {
	if l == nil || strings.TrimSpace(message) == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	line := fmt.Sprintf("[%s] %s", l.now().Format("2006-01-02 15:04:05"), message)
	if l.echo != nil {
		fmt.Fprintln(l.echo, line)
	}
	l.notify(line)
	if l.path == "" {
		return
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(line + "\n")
}

// Sink has the shape of the diagnostic log callback, so the logger can be
// installed with SetLogCallback.
func (l *Logger) Sink(_ any, line string) {
	l.Log(line)
}

// Path returns the log file path, or "" when file logging is off.
func (l *Logger) Path() string {
	return l.path
}

// SetObserver registers a callback that receives log lines as they are written.
func (l *Logger) SetObserver(fn func(string)) {
	if l == nil {
		return
	}
	l.observerMu.Lock()
	defer l.observerMu.Unlock()
	l.observer = fn
}

func (l *Logger) notify(line string) {
	l.observerMu.RLock()
	observer := l.observer
	l.observerMu.RUnlock()
	if observer != nil {
		observer(line)
	}
}
