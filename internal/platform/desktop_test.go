//go:build ((linux && !android) || freebsd || openbsd || netbsd || dragonfly || (darwin && !ios) || windows) && !nmb_tui

package platform

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
)

func TestRichFyneFollowsToolkit(t *testing.T) {
	display := false
	b := &Backend{Profile: negotiate.LinuxProfile("zenity")}
	richFyne(b, func() bool { return display })

	if got := b.Probe().Rich; got != negotiate.Absent {
		t.Fatalf("no display: rich = %v", got)
	}
	display = true
	want := negotiate.Absent
	if cgoEnabled {
		want = negotiate.Uninitialized
	}
	if got := b.Probe().Rich; got != want {
		t.Fatalf("display without app: rich = %v, want %v", got, want)
	}

	opts := core.NewInitializeOptions()
	opts.Toolkit = "not an app"
	if err := b.Initialize(opts); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("foreign toolkit err = %v", err)
	}
	opts.Toolkit = test.NewApp()
	if err := b.Initialize(opts); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if got := b.Probe().Rich; got != negotiate.Ready {
		t.Fatalf("with app: rich = %v", got)
	}
	b.Shutdown()
	if got := b.Probe().Rich; got != want {
		t.Fatalf("after shutdown: rich = %v", got)
	}
}
