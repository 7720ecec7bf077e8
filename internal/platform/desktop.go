//go:build ((linux && !android) || freebsd || openbsd || netbsd || dragonfly || (darwin && !ios) || windows) && !nmb_tui

package platform

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/platform/fyneui"
)

// richFyne wires the fyne rich tier. The application comes from
// InitializeOptions.Toolkit; a build that could run fyne but was given no
// application reports the tier as uninitialized.
func richFyne(b *Backend, display func() bool) {
	var mu sync.Mutex
	r := fyneui.New(nil)
	b.Rich = Tier{
		Renderer: r,
		Probe: func() negotiate.Availability {
			mu.Lock()
			defer mu.Unlock()
			switch {
			case r.App != nil:
				return negotiate.Ready
			case cgoEnabled && display():
				return negotiate.Uninitialized
			}
			return negotiate.Absent
		},
	}
	b.Init = func(opts *core.InitializeOptions) error {
		if opts == nil || opts.Toolkit == nil {
			return nil
		}
		app, ok := opts.Toolkit.(fyne.App)
		if !ok {
			return fmt.Errorf("%w: toolkit %T is not a fyne.App", core.ErrInvalidArgument, opts.Toolkit)
		}
		mu.Lock()
		r.App = app
		mu.Unlock()
		return nil
	}
	b.Close = func() {
		mu.Lock()
		r.App = nil
		mu.Unlock()
	}
}
