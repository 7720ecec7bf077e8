//go:build nmb_tui && !android && !(js && wasm)

package platform

import (
	"os"

	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/platform/tui"
)

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// Native returns the terminal backend.
func Native() *Backend {
	return &Backend{
		Profile: negotiate.TerminalProfile(),
		Rich: Tier{
			Renderer: tui.New(),
			Probe: func() negotiate.Availability {
				if isTerminal(os.Stdin) {
					return negotiate.Ready
				}
				return negotiate.Absent
			},
		},
	}
}
