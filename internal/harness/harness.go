// Package harness provides the scripted stand-in for a user. A Script attached
// as a request's UserContext replaces tier selection and the session entirely.
package harness

import (
	"unsafe"

	"github.com/wieslawsoltes/NativeMessageBox/internal/alloc"
	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
)

// Magic tags a valid Script ('NMBT').
const Magic uint32 = 0x4E4D4254

// ScriptSize is the only StructSize a Script is recognised with.
const ScriptSize = unsafe.Sizeof(Script{})

// Script is the scripted result of one call.
type Script struct {
	StructSize      uintptr
	Magic           uint32
	Button          core.ButtonID
	CheckboxChecked bool
	SimulateTimeout bool
	// Status is reported as is. Button is reported with it even when the
	// status is neither ok nor cancelled, so a script can describe a
	// backend that fails after the user already chose.
	Status core.Status
	// InputValue, when non-nil, is copied through the request's allocator.
	InputValue *string
}

// New returns a stamped script that answers with button and StatusOK.
func New(button core.ButtonID) *Script {
	return &Script{StructSize: ScriptSize, Magic: Magic, Button: button}
}

// WithInput sets the scripted input text.
func (s *Script) WithInput(text string) *Script {
	s.InputValue = &text
	return s
}

// Lookup returns the script attached to ctx, if ctx is one with the right tag
// and size.
func Lookup(ctx any) (*Script, bool) {
	var s *Script
	switch v := ctx.(type) {
	case *Script:
		s = v
	case Script:
		s = &v
	default:
		return nil, false
	}
	if s == nil || s.Magic != Magic || s.StructSize != ScriptSize {
		return nil, false
	}
	return s, true
}

// Apply writes the scripted values into res. Scripted button, checkbox,
// timeout and status are copied verbatim; the input text is copied through a
// only when the scripted status is ok, and an allocation failure turns the
// status into out-of-memory. It returns the resulting status.
func Apply(s *Script, a *alloc.Allocator, res *core.Result) core.Status {
	res.Button = s.Button
	res.CheckboxChecked = s.CheckboxChecked
	res.WasTimeout = s.SimulateTimeout
	res.Status = s.Status
	res.InputValue = nil
	if s.Status != core.StatusOK || s.InputValue == nil {
		return res.Status
	}
	buf, err := alloc.CopyString(a, s.InputValue)
	if err != nil {
		res.Status = core.StatusOf(err)
		return res.Status
	}
	res.InputValue = buf
	return res.Status
}
