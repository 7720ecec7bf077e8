package core

import (
	"errors"
	"fmt"

	"github.com/wieslawsoltes/NativeMessageBox/internal/alloc"
)

// Status is the overall outcome code of one call.
type Status uint32

const (
	StatusOK              Status = 0
	StatusInvalidArgument Status = 1
	StatusUninitialized   Status = 2
	StatusNotSupported    Status = 3
	StatusPlatformFailure Status = 4
	StatusCancelled       Status = 5
	StatusOutOfMemory     Status = 6
	StatusUnknown         Status = 0xFFFFFFFF
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUninitialized   = errors.New("uninitialized")
	ErrNotSupported    = errors.New("not supported")
	ErrPlatformFailure = errors.New("platform failure")
	ErrCancelled       = errors.New("cancelled")
	ErrOutOfMemory     = alloc.ErrOutOfMemory
	ErrUnknown         = errors.New("unknown failure")
)

var statusErrors = []struct {
	status Status
	err    error
}{
	{StatusInvalidArgument, ErrInvalidArgument},
	{StatusUninitialized, ErrUninitialized},
	{StatusNotSupported, ErrNotSupported},
	{StatusPlatformFailure, ErrPlatformFailure},
	{StatusCancelled, ErrCancelled},
	{StatusOutOfMemory, ErrOutOfMemory},
}

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidArgument:
		return "invalid-argument"
	case StatusUninitialized:
		return "uninitialized"
	case StatusNotSupported:
		return "not-supported"
	case StatusPlatformFailure:
		return "platform-failure"
	case StatusCancelled:
		return "cancelled"
	case StatusOutOfMemory:
		return "out-of-memory"
	default:
		return "unknown"
	}
}

// Err returns the sentinel error for s, or nil for StatusOK.
func (s Status) Err() error {
	if s == StatusOK {
		return nil
	}
	for _, se := range statusErrors {
		if se.status == s {
			return se.err
		}
	}
	return ErrUnknown
}

// StatusOf maps an error chain back onto the status taxonomy. Errors outside
// the taxonomy become StatusUnknown.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	for _, se := range statusErrors {
		if errors.Is(err, se.err) {
			return se.status
		}
	}
	return StatusUnknown
}

// Errorf wraps sentinel with a formatted reason.
func Errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
