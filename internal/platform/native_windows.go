//go:build windows && !nmb_tui

package platform

import (
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/platform/helper"
	"github.com/wieslawsoltes/NativeMessageBox/internal/platform/win32"
)

// Native returns the Windows backend: fyne, MessageBoxW, then PowerShell.
func Native() *Backend {
	b := &Backend{Profile: negotiate.WindowsProfile()}
	richFyne(b, func() bool { return true })
	b.Simple = Tier{
		Renderer: win32.New(),
		Probe: func() negotiate.Availability {
			if win32.Available() {
				return negotiate.Ready
			}
			return negotiate.Absent
		},
	}
	b.External = Tier{Renderer: helper.New(helper.PowerShell), Probe: Ready}
	return b
}
