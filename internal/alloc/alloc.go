package alloc

import (
	"errors"
	"strings"
	"unsafe"
)

// ErrOutOfMemory is returned when an allocator cannot satisfy a request.
var ErrOutOfMemory = errors.New("out of memory")

// AllocateFunc returns a buffer of at least size bytes aligned to alignment,
// or nil when the allocation cannot be satisfied.
type AllocateFunc func(userData any, size, alignment uintptr) []byte

// DeallocateFunc releases a buffer previously returned by the paired AllocateFunc.
type DeallocateFunc func(userData any, buf []byte)

// Allocator is a caller supplied allocate/deallocate pair plus an opaque
// context. A nil *Allocator, or one without an Allocate function, means the
// default Go heap.
type Allocator struct {
	Allocate   AllocateFunc
	Deallocate DeallocateFunc
	UserData   any
}

// Allocate obtains size bytes from a, or from the default heap when a is nil.
func Allocate(a *Allocator, size, alignment uintptr) []byte {
	if a != nil && a.Allocate != nil {
		buf := a.Allocate(a.UserData, size, alignment)
		if uintptr(len(buf)) < size {
			if buf != nil && a.Deallocate != nil {
				a.Deallocate(a.UserData, buf)
			}
			return nil
		}
		return buf[:size]
	}
	return defaultAllocate(size, alignment)
}

// Release returns buf to the allocator that produced it. Buffers from the
// default heap are left to the garbage collector.
func Release(a *Allocator, buf []byte) {
	if buf == nil {
		return
	}
	if a != nil && a.Deallocate != nil {
		a.Deallocate(a.UserData, buf)
	}
}

// CopyString duplicates src plus a NUL terminator into memory obtained from a.
// A nil src yields a nil buffer without allocating. Text after an embedded NUL
// is not copied. On failure the returned buffer is nil.
func CopyString(a *Allocator, src *string) ([]byte, error) {
	if src == nil {
		return nil, nil
	}
	text := *src
	if i := strings.IndexByte(text, 0); i >= 0 {
		text = text[:i]
	}
	n := uintptr(len(text)) + 1
	buf := Allocate(a, n, 1)
	if buf == nil {
		return nil, ErrOutOfMemory
	}
	copy(buf, text)
	buf[n-1] = 0
	return buf, nil
}

// String returns the text held in a NUL-terminated buffer.
func String(buf []byte) string {
	if i := indexNUL(buf); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}

func indexNUL(buf []byte) int {
	for i, b := range buf {
		if b == 0 {
			return i
		}
	}
	return -1
}

func defaultAllocate(size, alignment uintptr) []byte {
	if size == 0 {
		return nil
	}
	if alignment <= 1 {
		return make([]byte, size)
	}
	raw := make([]byte, size+alignment-1)
	offset := (alignment - uintptr(unsafe.Pointer(&raw[0]))%alignment) % alignment
	return raw[offset : offset+size : offset+size]
}
