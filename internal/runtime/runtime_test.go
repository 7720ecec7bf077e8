package runtime

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/wieslawsoltes/NativeMessageBox/internal/alloc"
	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/diag"
	"github.com/wieslawsoltes/NativeMessageBox/internal/dialog"
	"github.com/wieslawsoltes/NativeMessageBox/internal/harness"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/platform"
	"github.com/wieslawsoltes/NativeMessageBox/internal/session"
)

type fakeBackend struct {
	probes   int
	presents int
	avail    negotiate.Availability
	answer   func(d *dialog.Dialog, s *session.Session)
}

func (f *fakeBackend) backend(p negotiate.Profile) *platform.Backend {
	return &platform.Backend{
		Profile: p,
		Rich: platform.Tier{
			Renderer: dialog.RendererFunc(func(d *dialog.Dialog) (*session.Session, error) {
				f.presents++
				s := d.NewSession(dialog.IndexBindings(d.Buttons(), 0), nil)
				_ = s.Show(func() error {
					f.answer(d, s)
					return nil
				})
				return s, nil
			}),
			Probe: func() negotiate.Availability {
				f.probes++
				return f.avail
			},
		},
	}
}

func newRuntime(answer func(d *dialog.Dialog, s *session.Session)) (*Runtime, *fakeBackend) {
	f := &fakeBackend{avail: negotiate.Ready, answer: answer}
	return New(f.backend(negotiate.TerminalProfile())), f
}

type capture struct {
	mu    sync.Mutex
	lines []string
}

func (c *capture) install(t *testing.T) {
	t.Helper()
	diag.SetSink(func(_ any, line string) {
		c.mu.Lock()
		c.lines = append(c.lines, line)
		c.mu.Unlock()
	}, nil)
	t.Cleanup(diag.Reset)
}

func (c *capture) count(substr string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.lines {
		if strings.Contains(l, substr) {
			n++
		}
	}
	return n
}

func TestNilArgumentsDoNoWork(t *testing.T) {
	rt, f := newRuntime(nil)
	if err := rt.Show(nil, core.NewResult()); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("nil request: %v", err)
	}
	if err := rt.Show(core.NewRequest("x"), nil); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("nil result: %v", err)
	}
	if f.probes != 0 || f.presents != 0 {
		t.Fatalf("probes=%d presents=%d", f.probes, f.presents)
	}
}

func TestMalformedRequestLeavesResultUntouched(t *testing.T) {
	rt, f := newRuntime(nil)
	tests := []struct {
		name   string
		mutate func(*core.Request)
	}{
		{"small size", func(r *core.Request) { r.StructSize = core.RequestMinSize - 1 }},
		{"version", func(r *core.Request) { r.ABIVersion = core.MakeVersion(9, 0, 0) }},
		{"empty message", func(r *core.Request) { r.Message = "" }},
	}
	for _, tt := range tests {
		req := core.NewRequest("hello")
		tt.mutate(req)
		res := core.NewResult()
		res.Button = core.ButtonRetry
		if err := rt.Show(req, res); !errors.Is(err, core.ErrInvalidArgument) {
			t.Fatalf("%s: err = %v", tt.name, err)
		}
		if res.Button != core.ButtonRetry {
			t.Fatalf("%s: result mutated", tt.name)
		}
	}
	if f.probes != 0 || f.presents != 0 {
		t.Fatalf("tier touched: probes=%d presents=%d", f.probes, f.presents)
	}
}

func TestHarnessRoundTrip(t *testing.T) {
	rt, f := newRuntime(nil)
	for _, id := range core.WellKnownButtons {
		req := core.NewRequest("round trip")
		req.AddButton(id, "").IsDefault = true
		req.UserContext = harness.New(id)
		res := core.NewResult()
		if err := rt.Show(req, res); err != nil {
			t.Fatalf("%s: %v", id, err)
		}
		if res.Button != id || res.CheckboxChecked || res.WasTimeout || res.Status != core.StatusOK {
			t.Fatalf("%s: result = %+v", id, res)
		}
	}
	if f.probes != 0 {
		t.Fatalf("harness must short-circuit before probing, probes = %d", f.probes)
	}
}

func TestHarnessScriptedValues(t *testing.T) {
	rt, _ := newRuntime(nil)
	tracker := alloc.NewTracker(0)
	req := core.NewRequest("scripted")
	req.Allocator = tracker.Allocator()
	script := harness.New(core.ButtonCustomBase + 7).WithInput("typed")
	script.CheckboxChecked = true
	script.SimulateTimeout = true
	req.UserContext = script

	res := core.NewResult()
	if err := rt.Show(req, res); err != nil {
		t.Fatalf("show: %v", err)
	}
	if res.Button != core.ButtonCustomBase+7 || !res.CheckboxChecked || !res.WasTimeout || res.Input() != "typed" {
		t.Fatalf("result = %+v", res)
	}
	alloc.Release(req.Allocator, res.InputValue)
	if tracker.Live() != 0 {
		t.Fatalf("live allocations = %d", tracker.Live())
	}

	script.Status = core.StatusPlatformFailure
	res = core.NewResult()
	if err := rt.Show(req, res); !errors.Is(err, core.ErrPlatformFailure) || res.InputValue != nil {
		t.Fatalf("err = %v input = %v", err, res.InputValue)
	}
}

func TestShowResolvesThroughTier(t *testing.T) {
	rt, f := newRuntime(func(d *dialog.Dialog, s *session.Session) {
		v := "Ada"
		s.Respond(1, session.Controls{Checkbox: true, Input: &v})
	})
	tracker := alloc.NewTracker(0)
	opts := core.NewInitializeOptions()
	opts.Allocator = tracker.Allocator()
	if err := rt.Initialize(opts); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(rt.Shutdown)

	req := core.NewRequest("Name?")
	req.AddButton(core.ButtonCancel, "")
	req.AddButton(core.ButtonOK, "")
	req.Input = core.NewInput(core.InputText)
	res := core.NewResult()
	if err := rt.Show(req, res); err != nil {
		t.Fatalf("show: %v", err)
	}
	if res.Button != core.ButtonOK || !res.CheckboxChecked || res.Input() != "Ada" || f.presents != 1 {
		t.Fatalf("result = %+v", res)
	}
	if tracker.Allocations() != 1 {
		t.Fatalf("input not copied through the initialize allocator")
	}
}

func TestCancelledKeepsCancelButton(t *testing.T) {
	rt, _ := newRuntime(func(d *dialog.Dialog, s *session.Session) {
		s.Dismiss(session.DismissEscape, session.Controls{Checkbox: true})
	})
	req := core.NewRequest("Quit?")
	req.AddButton(core.ButtonYes, "")
	req.AddButton(core.ButtonNo, "").IsCancel = true
	res := core.NewResult()
	if err := rt.Show(req, res); !errors.Is(err, core.ErrCancelled) {
		t.Fatalf("err = %v", err)
	}
	if res.Status != core.StatusCancelled || res.Button != core.ButtonNo || res.InputValue != nil {
		t.Fatalf("result = %+v", res)
	}
}

func TestOutOfMemoryWhileMarshaling(t *testing.T) {
	rt, _ := newRuntime(func(d *dialog.Dialog, s *session.Session) {
		v := "a long answer"
		s.Respond(0, session.Controls{Input: &v})
	})
	req := core.NewRequest("Text")
	req.Input = core.NewInput(core.InputText)
	req.Allocator = alloc.NewTracker(1).Allocator()
	res := core.NewResult()
	if err := rt.Show(req, res); !errors.Is(err, core.ErrOutOfMemory) {
		t.Fatalf("err = %v", err)
	}
	if res.Status != core.StatusOutOfMemory || res.InputValue != nil || res.Button != core.ButtonNone {
		t.Fatalf("result = %+v", res)
	}
}

func TestRendererPanicIsPlatformFailure(t *testing.T) {
	rt, _ := newRuntime(func(d *dialog.Dialog, s *session.Session) { panic("toolkit crashed") })
	res := core.NewResult()
	if err := rt.Show(core.NewRequest("boom"), res); !errors.Is(err, core.ErrPlatformFailure) {
		t.Fatalf("err = %v", err)
	}
	if res.Status != core.StatusPlatformFailure || res.Button != core.ButtonNone {
		t.Fatalf("result = %+v", res)
	}
}

func TestAvailabilityErrors(t *testing.T) {
	tests := []struct {
		avail negotiate.Availability
		want  error
	}{
		{negotiate.Absent, core.ErrNotSupported},
		{negotiate.Uninitialized, core.ErrUninitialized},
	}
	for _, tt := range tests {
		rt, f := newRuntime(nil)
		f.avail = tt.avail
		res := core.NewResult()
		if err := rt.Show(core.NewRequest("x"), res); !errors.Is(err, tt.want) {
			t.Fatalf("%v: err = %v", tt.avail, err)
		}
		if res.Status != core.StatusOf(tt.want) {
			t.Fatalf("%v: status = %v", tt.avail, res.Status)
		}
	}
}

func TestDegradationsLoggedOnce(t *testing.T) {
	c := &capture{}
	c.install(t)
	f := &fakeBackend{avail: negotiate.Ready, answer: func(d *dialog.Dialog, s *session.Session) { s.Respond(0, session.Controls{}) }}
	rt := New(f.backend(negotiate.AndroidProfile()))
	req := core.NewRequest("Hello")
	req.ParentWindow = "activity"
	req.Icon = core.IconWarning
	req.Secondary = core.NewSecondary()
	req.Secondary.Footer = "footer"
	if err := rt.Show(req, core.NewResult()); err != nil {
		t.Fatalf("show: %v", err)
	}
	if n := c.count("Android: icon hints not supported"); n != 1 {
		t.Fatalf("icon degradation logged %d times: %q", n, c.lines)
	}
	if n := c.count("footer"); n != 1 {
		t.Fatalf("footer degradation logged %d times: %q", n, c.lines)
	}
}

func TestSafetyPolicyFromInitialize(t *testing.T) {
	f := &fakeBackend{avail: negotiate.Ready, answer: func(d *dialog.Dialog, s *session.Session) { s.Respond(0, session.Controls{}) }}
	rt := New(f.backend(negotiate.AndroidProfile()))
	opts := core.NewInitializeOptions()
	opts.RejectSafetyDegradation = true
	if err := rt.Initialize(opts); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(rt.Shutdown)

	req := core.NewRequest("Delete everything?")
	req.ParentWindow = "activity"
	req.VerificationText = "I understand"
	req.ShowSuppressCheckbox = true
	if err := rt.Show(req, core.NewResult()); !errors.Is(err, core.ErrNotSupported) {
		t.Fatalf("err = %v", err)
	}
	if f.presents != 0 {
		t.Fatalf("rejected request was presented")
	}
}

func TestInitializeAndShutdown(t *testing.T) {
	rt, _ := newRuntime(nil)
	opts := core.NewInitializeOptions()
	opts.ABIVersion = core.MakeVersion(0, 2, 0)
	if err := rt.Initialize(opts); !errors.Is(err, core.ErrInvalidArgument) || rt.Initialized() {
		t.Fatalf("mismatched version: err = %v", err)
	}

	var got []string
	opts = core.NewInitializeOptions()
	opts.RuntimeName = "tests"
	opts.LogCallback = func(_ any, line string) { got = append(got, line) }
	if err := rt.Initialize(opts); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if !rt.Initialized() || len(got) != 1 || got[0] != "Terminal: initialized for tests." {
		t.Fatalf("log = %q", got)
	}
	rt.Shutdown()
	if rt.Initialized() || diag.Enabled() {
		t.Fatalf("shutdown left state behind")
	}
}
