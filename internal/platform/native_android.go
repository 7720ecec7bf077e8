//go:build android

package platform

import (
	"fmt"
	"sync"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/dialog"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/platform/bridge"
	"github.com/wieslawsoltes/NativeMessageBox/internal/session"
)

// Native returns the Android backend. The embedding app passes its activity
// bridge (a bridge.Host) as InitializeOptions.Toolkit.
func Native() *Backend {
	b := &Backend{Profile: negotiate.AndroidProfile()}
	var mu sync.Mutex
	b.Rich = Tier{
		Renderer: dialog.RendererFunc(func(d *dialog.Dialog) (*session.Session, error) {
			mu.Lock()
			br := b.Bridge
			mu.Unlock()
			if br == nil {
				return nil, fmt.Errorf("%w: no activity bridge", core.ErrUninitialized)
			}
			return br.Present(d)
		}),
		Probe: func() negotiate.Availability {
			mu.Lock()
			defer mu.Unlock()
			if b.Bridge == nil {
				return negotiate.Uninitialized
			}
			return negotiate.Ready
		},
	}
	b.Init = func(opts *core.InitializeOptions) error {
		if opts == nil || opts.Toolkit == nil {
			return nil
		}
		host, ok := opts.Toolkit.(bridge.Host)
		if !ok {
			return fmt.Errorf("%w: toolkit %T is not an activity bridge host", core.ErrInvalidArgument, opts.Toolkit)
		}
		br := bridge.New(host)
		br.RequireParent = true
		mu.Lock()
		b.Bridge = br
		mu.Unlock()
		return nil
	}
	b.Close = func() {
		mu.Lock()
		b.Bridge = nil
		mu.Unlock()
	}
	return b
}
