//go:build darwin && !ios && !nmb_tui

package platform

import (
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/platform/helper"
)

// Native returns the macOS backend: fyne, or osascript.
func Native() *Backend {
	b := &Backend{Profile: negotiate.DarwinProfile()}
	richFyne(b, func() bool { return true })
	b.External = Tier{Renderer: helper.New(helper.OSAScript), Probe: Ready}
	return b
}
