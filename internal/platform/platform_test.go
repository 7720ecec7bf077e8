package platform

import (
	"errors"
	"testing"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/dialog"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/session"
)

var nopRenderer = dialog.RendererFunc(func(*dialog.Dialog) (*session.Session, error) { return nil, nil })

func TestProbe(t *testing.T) {
	b := &Backend{
		Profile: negotiate.WindowsProfile(),
		Rich:    Tier{Renderer: nopRenderer, Probe: func() negotiate.Availability { return negotiate.Uninitialized }},
		Simple:  Tier{Renderer: nopRenderer, Probe: Ready},
		// A probe without a renderer is not a tier.
		External: Tier{Probe: Ready},
	}
	got := b.Probe()
	want := negotiate.Probe{Rich: negotiate.Uninitialized, Simple: negotiate.Ready, External: negotiate.Absent}
	if got != want {
		t.Fatalf("probe = %+v, want %+v", got, want)
	}
	if _, err := b.Renderer(negotiate.TierSimple); err != nil {
		t.Fatalf("simple renderer: %v", err)
	}
	if _, err := b.Renderer(negotiate.TierExternal); !errors.Is(err, core.ErrNotSupported) {
		t.Fatalf("external renderer err = %v", err)
	}
}

func TestCompleteWithoutBridge(t *testing.T) {
	b := &Backend{Profile: negotiate.TerminalProfile()}
	if err := b.Complete("h", []byte(`{}`)); !errors.Is(err, core.ErrNotSupported) {
		t.Fatalf("err = %v", err)
	}
	if err := b.Initialize(nil); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	b.Shutdown()
}

func TestNativeHasProfile(t *testing.T) {
	if Native().Profile.Platform == "" {
		t.Fatalf("native backend without a platform label")
	}
}
