package alloc

import (
	"errors"
	"testing"
	"unsafe"
)

func TestCopyStringNilSourceDoesNotAllocate(t *testing.T) {
	tracker := NewTracker(0)
	buf, err := CopyString(tracker.Allocator(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf != nil {
		t.Fatalf("expected nil buffer, got %v", buf)
	}
	if tracker.Allocations() != 0 || tracker.LastRequest() != 0 {
		t.Fatalf("nil source must not allocate")
	}
}

func TestCopyStringProducesTerminatedDistinctBuffer(t *testing.T) {
	tracker := NewTracker(0)
	src := "héllo"
	buf, err := CopyString(tracker.Allocator(), &src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buf) != len(src)+1 {
		t.Fatalf("expected %d bytes, got %d", len(src)+1, len(buf))
	}
	if buf[len(buf)-1] != 0 {
		t.Fatalf("buffer is not NUL terminated")
	}
	if got := String(buf); got != src {
		t.Fatalf("content mismatch: %q", got)
	}
	if tracker.Allocations() != 1 || tracker.Live() != 1 {
		t.Fatalf("expected one live allocation, got allocs=%d live=%d", tracker.Allocations(), tracker.Live())
	}
	Release(tracker.Allocator(), buf)
	if tracker.Live() != 0 || tracker.Frees() != 1 {
		t.Fatalf("release did not reach the caller allocator")
	}
}

func TestCopyStringEmptySourceIsJustTerminator(t *testing.T) {
	src := ""
	buf, err := CopyString(nil, &src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buf) != 1 || buf[0] != 0 {
		t.Fatalf("expected a single terminator, got %v", buf)
	}
}

func TestCopyStringStopsAtEmbeddedNUL(t *testing.T) {
	src := "abc\x00def"
	buf, err := CopyString(nil, &src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if String(buf) != "abc" || len(buf) != 4 {
		t.Fatalf("unexpected copy %q (%d bytes)", String(buf), len(buf))
	}
}

func TestCopyStringOutOfMemory(t *testing.T) {
	tracker := NewTracker(4)
	src := "too long for budget"
	buf, err := CopyString(tracker.Allocator(), &src)
	if !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("expected out of memory, got %v", err)
	}
	if buf != nil {
		t.Fatalf("buffer must be nil on failure")
	}
	if tracker.Live() != 0 {
		t.Fatalf("failed copy leaked %d buffers", tracker.Live())
	}
}

func TestAllocateRejectsShortBuffers(t *testing.T) {
	released := 0
	a := &Allocator{
		Allocate: func(any, uintptr, uintptr) []byte { return make([]byte, 2) },
		Deallocate: func(any, []byte) {
			released++
		},
	}
	src := "four"
	if _, err := CopyString(a, &src); !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("short buffer must surface as out of memory, got %v", err)
	}
	if released != 1 {
		t.Fatalf("short buffer should be handed back, released=%d", released)
	}
}

func TestDefaultAllocateHonoursAlignment(t *testing.T) {
	for _, align := range []uintptr{1, 2, 8, 16, 64} {
		buf := Allocate(nil, 24, align)
		if len(buf) != 24 {
			t.Fatalf("align %d: expected 24 bytes, got %d", align, len(buf))
		}
		if uintptr(unsafe.Pointer(&buf[0]))%align != 0 {
			t.Fatalf("align %d: buffer not aligned", align)
		}
	}
}
