package fyneui

import (
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/dialog"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/session"
)

func present(t *testing.T, req *core.Request) (*session.Session, *view) {
	t.Helper()
	plan, err := negotiate.Negotiate(negotiate.LinuxProfile(""), negotiate.Probe{Rich: negotiate.Ready}, req, negotiate.Policy{})
	if err != nil {
		t.Fatalf("negotiate: %v", err)
	}
	var got *view
	r := New(test.NewApp())
	r.shown = func(v *view) { got = v }
	s, err := r.Present(dialog.New(plan, req))
	if err != nil {
		t.Fatalf("present: %v", err)
	}
	if got == nil {
		t.Fatalf("no view built")
	}
	return s, got
}

func TestTapResolves(t *testing.T) {
	req := core.NewRequest("Delete the branch?")
	req.AddButton(core.ButtonYes, "Delete").Kind = core.KindDestructive
	req.AddButton(core.ButtonNo, "Keep")
	req.VerificationText = "Don't ask again"
	req.ShowSuppressCheckbox = true

	s, v := present(t, req)
	if v.buttons[0].Text != "Delete" || v.buttons[0].Importance != widget.DangerImportance {
		t.Fatalf("button = %q importance %v", v.buttons[0].Text, v.buttons[0].Importance)
	}
	test.Tap(v.check)
	test.Tap(v.buttons[0])
	out := s.Wait()
	if out.Button != core.ButtonYes || !out.Checkbox || out.State != session.Resolved {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestTextAndComboInput(t *testing.T) {
	req := core.NewRequest("Your name")
	req.AddButton(core.ButtonOK, "")
	req.Input = core.NewInput(core.InputText)
	req.Input.Placeholder = "name"
	s, v := present(t, req)
	test.Type(v.entry, "Ada")
	test.Tap(v.buttons[0])
	if out := s.Wait(); out.Input == nil || *out.Input != "Ada" {
		t.Fatalf("outcome = %+v", out)
	}

	req = core.NewRequest("Region")
	req.Input = core.NewInput(core.InputCombo)
	req.Input.Items = []string{"eu", "us"}
	req.Input.DefaultValue = "us"
	s, v = present(t, req)
	v.typedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	if out := s.Wait(); out.Input == nil || *out.Input != "us" || out.Button != core.ButtonOK {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestPasswordEntry(t *testing.T) {
	req := core.NewRequest("Passphrase")
	req.Input = core.NewInput(core.InputPassword)
	_, v := present(t, req)
	if v.entry == nil || !v.entry.Password {
		t.Fatalf("password entry not built")
	}
	v.respond(0)
}

func TestEscapeFollowsPolicy(t *testing.T) {
	req := core.NewRequest("Continue?")
	req.AddButton(core.ButtonOK, "")
	req.AddButton(core.ButtonCancel, "")
	s, v := present(t, req)
	v.typedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	if out := s.Wait(); out.State != session.Cancelled || out.Button != core.ButtonCancel {
		t.Fatalf("outcome = %+v", out)
	}

	req.RequireExplicitAck = true
	s, v = present(t, req)
	v.typedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	v.dismiss(session.DismissClose)
	if s.State() != session.Shown {
		t.Fatalf("dismissed despite explicit ack: %v", s.State())
	}
	test.Tap(v.buttons[1])
	if out := s.Wait(); out.Button != core.ButtonCancel || out.State != session.Resolved {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestTimeoutClicksButton(t *testing.T) {
	req := core.NewRequest("Restarting")
	req.AddButton(core.ButtonOK, "")
	req.AddButton(core.ButtonCancel, "")
	req.Timeout = 10 * time.Millisecond
	req.TimeoutButton = core.ButtonOK
	s, _ := present(t, req)
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout did not fire")
	}
	if out := s.Wait(); !out.TimedOut || out.Button != core.ButtonOK {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestModalOverParentWindow(t *testing.T) {
	app := test.NewApp()
	parent := app.NewWindow("host")
	parent.SetContent(widget.NewLabel("host content"))
	var hostKeys int
	parent.Canvas().SetOnTypedKey(func(*fyne.KeyEvent) { hostKeys++ })

	req := core.NewRequest("Saved")
	req.ParentWindow = parent
	plan, err := negotiate.Negotiate(negotiate.LinuxProfile(""), negotiate.Probe{Rich: negotiate.Ready}, req, negotiate.Policy{})
	if err != nil {
		t.Fatalf("negotiate: %v", err)
	}
	var v *view
	r := New(app)
	r.shown = func(got *view) { v = got }
	s, _ := r.Present(dialog.New(plan, req))
	if len(parent.Canvas().Overlays().List()) != 1 {
		t.Fatalf("modal not shown over parent")
	}
	test.Tap(v.buttons[0])
	s.Wait()
	parent.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyEscape})
	if hostKeys != 1 {
		t.Fatalf("host key handler not restored")
	}
}

func TestNoApp(t *testing.T) {
	plan, _ := negotiate.Negotiate(negotiate.LinuxProfile(""), negotiate.Probe{Rich: negotiate.Ready}, core.NewRequest("x"), negotiate.Policy{})
	if _, err := New(nil).Present(dialog.New(plan, core.NewRequest("x"))); !errors.Is(err, core.ErrUninitialized) {
		t.Fatalf("err = %v", err)
	}
}
