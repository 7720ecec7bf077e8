//go:build ((linux && !android) || freebsd || openbsd || netbsd || dragonfly) && !nmb_tui

package platform

import (
	"os"
	"os/exec"

	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/platform/helper"
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// Native returns the Linux/BSD backend: fyne, or zenity/kdialog when no
// rich tier can run.
func Native() *Backend {
	prog, found := helper.Detect(exec.LookPath, helper.Zenity, helper.KDialog)
	if !found {
		prog = helper.Zenity
	}
	b := &Backend{Profile: negotiate.LinuxProfile(prog.Name)}
	richFyne(b, hasDisplay)
	if found {
		b.External = Tier{
			Renderer: helper.New(prog),
			Probe: func() negotiate.Availability {
				if hasDisplay() {
					return negotiate.Ready
				}
				return negotiate.Absent
			},
		}
	}
	return b
}
