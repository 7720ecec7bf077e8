//go:build js && wasm

package platform

import (
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/platform/bridge"
	"github.com/wieslawsoltes/NativeMessageBox/internal/platform/browser"
)

// Native returns the browser backend: the page's host object when it
// defines one, window.confirm otherwise.
func Native() *Backend {
	b := &Backend{Profile: negotiate.BrowserProfile()}
	var unexpose func()
	if host, ok := browser.LookupHost(); ok {
		b.Bridge = bridge.New(host)
		unexpose = browser.Expose(b.Bridge)
		b.Rich = Tier{Renderer: b.Bridge, Probe: Ready}
	}
	b.Simple = Tier{
		Renderer: &browser.Simple{Prompter: browser.Window{}},
		Probe: func() negotiate.Availability {
			if browser.WindowAvailable() {
				return negotiate.Ready
			}
			return negotiate.Absent
		},
	}
	b.Close = func() {
		if unexpose != nil {
			unexpose()
			unexpose = nil
		}
	}
	return b
}
