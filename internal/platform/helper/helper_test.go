package helper

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/dialog"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/session"
)

type scripted struct {
	outputs []Output
	calls   [][]string
}

func (s *scripted) Run(_ context.Context, name string, args ...string) (Output, error) {
	s.calls = append(s.calls, append([]string{name}, args...))
	if len(s.outputs) == 0 {
		return Output{}, errors.New("no more scripted runs")
	}
	out := s.outputs[0]
	s.outputs = s.outputs[1:]
	return out, nil
}

func externalDialog(t *testing.T, p negotiate.Profile, req *core.Request) *dialog.Dialog {
	t.Helper()
	plan, err := negotiate.Negotiate(p, negotiate.Probe{External: negotiate.Ready}, req, negotiate.Policy{})
	if err != nil {
		t.Fatalf("negotiate: %v", err)
	}
	return dialog.New(plan, req)
}

func TestZenityArguments(t *testing.T) {
	req := core.NewRequest("Disk almost full")
	req.Title = "Storage"
	req.Icon = core.IconWarning
	req.AddButton(core.ButtonOK, "Understood")
	args := Zenity.Args(externalDialog(t, negotiate.LinuxProfile("zenity"), req))
	want := []string{"--warning", "--title=Storage", "--text=Disk almost full", "--no-markup", "--ok-label=Understood"}
	if strings.Join(args, "|") != strings.Join(want, "|") {
		t.Fatalf("args = %q", args)
	}
}

func TestOSAScriptEscaping(t *testing.T) {
	req := core.NewRequest(`Say "hi" \ bye`)
	req.Icon = core.IconError
	args := OSAScript.Args(externalDialog(t, negotiate.DarwinProfile(), req))
	if len(args) != 2 || args[0] != "-e" {
		t.Fatalf("args = %q", args)
	}
	if !strings.Contains(args[1], `display dialog "Say \"hi\" \\ bye"`) || !strings.HasSuffix(args[1], "with icon stop") {
		t.Fatalf("script = %s", args[1])
	}
}

func TestPowerShellQuoting(t *testing.T) {
	req := core.NewRequest("It's done")
	args := PowerShell.Args(externalDialog(t, negotiate.WindowsProfile(), req))
	script := args[len(args)-1]
	if !strings.Contains(script, "'It''s done'") {
		t.Fatalf("script = %s", script)
	}
	if quoteForPowerShell("") != "''" {
		t.Fatalf("empty string should quote to ''")
	}
}

func TestExitZeroSelectsButton(t *testing.T) {
	req := core.NewRequest("Saved")
	run := &scripted{outputs: []Output{{ExitCode: 0}}}
	r := &Renderer{Program: Zenity, Runner: run}
	s, err := r.Present(externalDialog(t, negotiate.LinuxProfile("zenity"), req))
	if err != nil {
		t.Fatalf("present: %v", err)
	}
	out := s.Wait()
	if out.State != session.Resolved || out.Button != core.ButtonOK {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestCancelExitDismisses(t *testing.T) {
	req := core.NewRequest("Saved")
	run := &scripted{outputs: []Output{{ExitCode: 1, Stderr: "execution error: User canceled. (-128)"}}}
	r := &Renderer{Program: OSAScript, Runner: run}
	s, _ := r.Present(externalDialog(t, negotiate.DarwinProfile(), req))
	out := s.Wait()
	if out.State != session.Cancelled || out.Button != core.ButtonCancel {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestSuppressedDismissRelaunches(t *testing.T) {
	req := core.NewRequest("Read the licence")
	req.RequireExplicitAck = true
	run := &scripted{outputs: []Output{{ExitCode: 1}, {ExitCode: 1}, {ExitCode: 0}}}
	r := &Renderer{Program: KDialog, Runner: run}
	s, _ := r.Present(externalDialog(t, negotiate.LinuxProfile("kdialog"), req))
	out := s.Wait()
	if out.State != session.Resolved || len(run.calls) != 3 {
		t.Fatalf("outcome = %+v after %d runs", out, len(run.calls))
	}
}

func TestUnusualExitCancels(t *testing.T) {
	cases := []struct {
		name    string
		program Program
		profile negotiate.Profile
		code    int
	}{
		{"zenity 255", Zenity, negotiate.LinuxProfile("zenity"), 255},
		{"kdialog 2", KDialog, negotiate.LinuxProfile("kdialog"), 2},
		{"powershell 3", PowerShell, negotiate.WindowsProfile(), 3},
	}
	for _, tc := range cases {
		req := core.NewRequest("Saved")
		run := &scripted{outputs: []Output{{ExitCode: tc.code, Stderr: "cannot open display"}}}
		r := &Renderer{Program: tc.program, Runner: run}
		s, _ := r.Present(externalDialog(t, tc.profile, req))
		out := s.Wait()
		if out.State != session.Cancelled || out.Button != core.ButtonCancel || out.Status() != core.StatusCancelled {
			t.Fatalf("%s: outcome = %+v", tc.name, out)
		}
	}
}

func TestRunFailureFails(t *testing.T) {
	req := core.NewRequest("Saved")
	r := &Renderer{Program: Zenity, Runner: RunnerFunc(func(context.Context, string, ...string) (Output, error) {
		return Output{}, errors.New("exec: not found")
	})}
	s, _ := r.Present(externalDialog(t, negotiate.LinuxProfile("zenity"), req))
	if st := s.Wait().Status(); st != core.StatusPlatformFailure {
		t.Fatalf("status = %v", st)
	}
}

func TestDetect(t *testing.T) {
	look := func(file string) (string, error) {
		if file == "kdialog" {
			return "/usr/bin/kdialog", nil
		}
		return "", errors.New("not found")
	}
	p, ok := Detect(look, Zenity, KDialog)
	if !ok || p.Name != "kdialog" {
		t.Fatalf("detected %q, %v", p.Name, ok)
	}
	if _, ok := Detect(look, Zenity); ok {
		t.Fatalf("zenity should not be detected")
	}
}
