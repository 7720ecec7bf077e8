// Package helper renders the external-process tier by running a dialog
// program (zenity, kdialog, osascript or PowerShell) and reading its exit
// status.
package helper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/dialog"
	"github.com/wieslawsoltes/NativeMessageBox/internal/session"
)

// Output is what a finished helper process reported.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner starts a helper and waits for it. The error is reserved for
// processes that could not be run or were killed by a signal; a non-zero
// exit is not an error.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, name string, args ...string) (Output, error)

func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) (Output, error) {
	return f(ctx, name, args...)
}

// ExecRunner runs helpers with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	hideWindow(cmd)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// Program describes one helper.
type Program struct {
	// Name is the executable, e.g. "zenity".
	Name string
	// Args builds the command line for a dialog.
	Args func(d *dialog.Dialog) []string
	// Dismissed reports whether a non-zero exit is the program's usual
	// cancel. Other non-zero exits also dismiss, with a log line.
	Dismissed func(out Output) bool
}

// Renderer presents dialogs through a helper program.
type Renderer struct {
	Program Program
	Runner  Runner
}

// New returns a renderer that runs p with os/exec.
func New(p Program) *Renderer {
	return &Renderer{Program: p, Runner: ExecRunner{}}
}

const acceptCode = 0

// Present runs the helper until the session is terminal. A dismissal the
// session refuses (explicit acknowledgment, escape disabled) launches the
// helper again.
func (r *Renderer) Present(d *dialog.Dialog) (*session.Session, error) {
	buttons := d.Buttons()
	if len(buttons) != 1 {
		return nil, fmt.Errorf("%w: %s renders exactly one button, got %d", core.ErrNotSupported, r.Program.Name, len(buttons))
	}
	s := d.NewSession([]session.Binding{{Code: acceptCode, ID: buttons[0].ID}}, nil)
	args := r.Program.Args(d)
	err := s.Show(func() error {
		for {
			out, err := r.Runner.Run(context.Background(), r.Program.Name, args...)
			if err != nil {
				return err
			}
			switch {
			case out.ExitCode == 0:
				s.Respond(acceptCode, session.Controls{})
				return nil
			default:
				// Any other normal exit closes the dialog without a choice.
				if !r.Program.Dismissed(out) {
					d.Logf("%s exited with status %d (%s); treating it as cancel.",
						r.Program.Name, out.ExitCode, strings.TrimSpace(out.Stderr))
				}
				if s.Dismiss(session.DismissProcessExit, session.Controls{}) {
					return nil
				}
				d.Logf("%s dismissed while acknowledgment is required; showing it again.", r.Program.Name)
			}
		}
	})
	if err != nil {
		d.Logf("%s failed: %v", r.Program.Name, err)
	}
	return s, nil
}

// LookPathFunc locates an executable.
type LookPathFunc func(file string) (string, error)

// Detect returns the first program whose executable is found.
func Detect(lookPath LookPathFunc, programs ...Program) (Program, bool) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, p := range programs {
		if _, err := lookPath(p.Name); err == nil {
			return p, true
		}
	}
	return Program{}, false
}

func exitCodeIs(codes ...int) func(Output) bool {
	return func(out Output) bool {
		for _, c := range codes {
			if out.ExitCode == c {
				return true
			}
		}
		return false
	}
}
