// Package win32 renders the simple tier on Windows with MessageBoxW. Flag
// composition lives here so it can be exercised on any platform; only the
// system call is Windows-specific.
package win32

import (
	"errors"
	"fmt"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/dialog"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/session"
)

const (
	mbOK               = 0x00000000
	mbOKCancel         = 0x00000001
	mbAbortRetryIgnore = 0x00000002
	mbYesNoCancel      = 0x00000003
	mbYesNo            = 0x00000004
	mbRetryCancel      = 0x00000005

	mbIconError       = 0x00000010
	mbIconQuestion    = 0x00000020
	mbIconWarning     = 0x00000030
	mbIconInformation = 0x00000040

	mbDefButton2 = 0x00000100
	mbDefButton3 = 0x00000200

	mbApplModal   = 0x00000000
	mbSystemModal = 0x00001000
	mbTaskModal   = 0x00002000

	mbSetForeground = 0x00010000
)

// Native return codes of MessageBoxW.
const (
	idOK     = 1
	idCancel = 2
	idAbort  = 3
	idRetry  = 4
	idIgnore = 5
	idYes    = 6
	idNo     = 7
)

var comboFlags = map[string]uint32{
	negotiate.ComboOK.Name:               mbOK,
	negotiate.ComboOKCancel.Name:         mbOKCancel,
	negotiate.ComboYesNo.Name:            mbYesNo,
	negotiate.ComboRetryCancel.Name:      mbRetryCancel,
	negotiate.ComboYesNoCancel.Name:      mbYesNoCancel,
	negotiate.ComboAbortRetryIgnore.Name: mbAbortRetryIgnore,
}

var nativeIDs = map[core.ButtonID]int{
	core.ButtonOK:     idOK,
	core.ButtonCancel: idCancel,
	core.ButtonAbort:  idAbort,
	core.ButtonRetry:  idRetry,
	core.ButtonIgnore: idIgnore,
	core.ButtonYes:    idYes,
	core.ButtonNo:     idNo,
}

// ErrDismissed is returned by a ShowFunc when the box closed without a
// button (ERROR_CANCELLED).
var ErrDismissed = errors.New("message box dismissed")

// dismissCode is the session code used for ErrDismissed.
const dismissCode = 0

// ShowFunc displays a message box and returns the native button code.
type ShowFunc func(parent uintptr, text, title string, flags uint32) (int, error)

// Renderer is the MessageBoxW simple tier.
type Renderer struct {
	Show ShowFunc
}

// Flags composes the MessageBoxW style for d.
func Flags(d *dialog.Dialog) (uint32, error) {
	if d.Plan.Combo == nil {
		return 0, fmt.Errorf("%w: MessageBox needs a fixed button combination", core.ErrNotSupported)
	}
	flags, ok := comboFlags[d.Plan.Combo.Name]
	if !ok {
		return 0, fmt.Errorf("%w: no MessageBox style for %s", core.ErrNotSupported, d.Plan.Combo.Name)
	}

	switch d.Icon() {
	case core.IconInformation:
		flags |= mbIconInformation
	case core.IconWarning:
		flags |= mbIconWarning
	case core.IconError:
		flags |= mbIconError
	case core.IconQuestion:
		flags |= mbIconQuestion
	}

	switch d.Plan.DefaultIndex {
	case 1:
		flags |= mbDefButton2
	case 2:
		flags |= mbDefButton3
	}

	_, hasParent := ParentHandle(d.Request.ParentWindow)
	switch {
	case d.Request.Modality == core.ModalitySystem:
		flags |= mbSystemModal
	case hasParent:
		flags |= mbApplModal
	default:
		flags |= mbTaskModal | mbSetForeground
	}
	return flags, nil
}

// Bindings maps each rendered button to its native return code.
func Bindings(buttons []core.Button) ([]session.Binding, error) {
	out := make([]session.Binding, 0, len(buttons))
	for _, b := range buttons {
		code, ok := nativeIDs[b.ID]
		if !ok {
			return nil, fmt.Errorf("%w: button %s has no MessageBox id", core.ErrNotSupported, b.ID)
		}
		out = append(out, session.Binding{Code: code, ID: b.ID})
	}
	return out, nil
}

// ParentHandle extracts an HWND from the opaque parent handle.
func ParentHandle(v any) (uintptr, bool) {
	switch h := v.(type) {
	case uintptr:
		return h, h != 0
	case interface{ HWND() uintptr }:
		hwnd := h.HWND()
		return hwnd, hwnd != 0
	}
	return 0, false
}

// Present shows the box and blocks until it returns.
func (r *Renderer) Present(d *dialog.Dialog) (*session.Session, error) {
	flags, err := Flags(d)
	if err != nil {
		return nil, err
	}
	bindings, err := Bindings(d.Buttons())
	if err != nil {
		return nil, err
	}
	parent, _ := ParentHandle(d.Request.ParentWindow)
	s := d.NewSession(bindings, []int{dismissCode})
	err = s.Show(func() error {
		code, err := r.Show(parent, d.Message(), d.Title(), flags)
		if errors.Is(err, ErrDismissed) {
			s.Respond(dismissCode, session.Controls{})
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: MessageBoxW: %v", core.ErrPlatformFailure, err)
		}
		s.Respond(code, session.Controls{})
		return nil
	})
	if err != nil {
		d.Logf("MessageBox failed: %v", err)
	}
	return s, nil
}
