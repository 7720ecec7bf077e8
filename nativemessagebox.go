// Package nativemessagebox shows a modal message box on the host platform
// and reports what the user did.
//
// A Request describes the dialog. Show negotiates which of the platform's
// tiers (a rich toolkit dialog, a native simple dialog or an external helper
// program) can render it, logs every field the chosen tier drops through the
// diagnostic callback, and blocks until the dialog resolves:
//
//	req := nativemessagebox.NewRequest("Save changes before closing?")
//	req.AddButton(nativemessagebox.ButtonYes, "Save")
//	req.AddButton(nativemessagebox.ButtonNo, "Discard")
//	req.AddButton(nativemessagebox.ButtonCancel, "").IsCancel = true
//	res := nativemessagebox.NewResult()
//	if err := nativemessagebox.Show(req, res); err != nil { ... }
//
// Desktop builds render the rich tier with fyne; pass the running fyne.App
// as InitializeOptions.Toolkit. Builds tagged nmb_tui render in the terminal.
package nativemessagebox

import (
	"sync"

	"github.com/wieslawsoltes/NativeMessageBox/internal/alloc"
	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/diag"
	"github.com/wieslawsoltes/NativeMessageBox/internal/platform"
	"github.com/wieslawsoltes/NativeMessageBox/internal/runtime"
)

var (
	stdOnce sync.Once
	std     *runtime.Runtime
)

func defaultRuntime() *runtime.Runtime {
	stdOnce.Do(func() { std = runtime.New(platform.Native()) })
	return std
}

// Initialize configures the process-wide runtime. It is optional: Show works
// without it, but tiers that need a host toolkit report ErrUninitialized
// until one is passed. Nil opts restore the defaults.
func Initialize(opts *InitializeOptions) error {
	return defaultRuntime().Initialize(opts)
}

// Show displays req and blocks until the user answers, the timeout fires or
// the platform fails. The returned error wraps one of the Err* values; res
// carries the matching Status. Input text in res is owned by the caller and
// is released with ReleaseInput.
func Show(req *Request, res *Result) error {
	return defaultRuntime().Show(req, res)
}

// Shutdown releases what Initialize configured and clears the log callback.
func Shutdown() {
	defaultRuntime().Shutdown()
}

// GetABIVersion returns the packed version the runtime implements.
func GetABIVersion() uint32 {
	return core.ABIVersion
}

// SetLogCallback installs the diagnostic sink. A nil fn disables logging.
func SetLogCallback(fn LogFunc, userData any) {
	diag.SetSink(fn, userData)
}

// CompleteHostDialog delivers a host runtime's answer (Android activity or
// browser page) for the dialog with the given handle.
func CompleteHostDialog(handle string, responseJSON []byte) error {
	return defaultRuntime().Complete(handle, responseJSON)
}

// ReleaseInput returns res.InputValue to the allocator it came from and
// clears it. a must be the allocator used for the call (nil for the default
// heap).
func ReleaseInput(a *Allocator, res *Result) {
	if res == nil || res.InputValue == nil {
		return
	}
	alloc.Release(a, res.InputValue)
	res.InputValue = nil
}
