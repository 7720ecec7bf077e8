package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogWritesFileEchoAndObserver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nmb.log")
	l := New(path)
	l.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }
	var echo bytes.Buffer
	l.SetEcho(&echo)
	var seen []string
	l.SetObserver(func(line string) { seen = append(seen, line) })

	l.Sink(nil, "Linux: icon hints not supported by zenity and will be ignored.")
	l.Log("   ")

	want := "[2024-05-01 09:30:00] Linux: icon hints not supported by zenity and will be ignored."
	if strings.TrimSpace(echo.String()) != want {
		t.Fatalf("echo = %q", echo.String())
	}
	if len(seen) != 1 || seen[0] != want {
		t.Fatalf("observer = %q", seen)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != want+"\n" {
		t.Fatalf("file = %q", data)
	}
}

func TestLogWithoutFile(t *testing.T) {
	l := New("")
	l.SetEcho(nil)
	l.Log("nothing to see")
	if l.Path() != "" {
		t.Fatalf("path = %q", l.Path())
	}
}
