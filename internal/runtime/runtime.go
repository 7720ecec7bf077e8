// Package runtime runs one Show call end to end: validate, reset the result,
// apply a test harness, probe, negotiate, present, wait and marshal.
package runtime

import (
	"fmt"
	"sync"

	"github.com/wieslawsoltes/NativeMessageBox/internal/alloc"
	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/diag"
	"github.com/wieslawsoltes/NativeMessageBox/internal/dialog"
	"github.com/wieslawsoltes/NativeMessageBox/internal/harness"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/platform"
	"github.com/wieslawsoltes/NativeMessageBox/internal/session"
)

// Runtime holds the state that outlives a call: the backend and what
// Initialize configured.
type Runtime struct {
	backend *platform.Backend

	mu          sync.Mutex
	initialized bool
	allocator   *alloc.Allocator
	policy      negotiate.Policy
}

// New returns a runtime over backend.
func New(backend *platform.Backend) *Runtime {
	return &Runtime{backend: backend}
}

func (rt *Runtime) logf(format string, args ...any) {
	diag.Platform(rt.backend.Profile.Platform)(format, args...)
}

// Initialize validates opts, installs its log sink and hands it to the
// backend. Nil opts reset to defaults.
func (rt *Runtime) Initialize(opts *core.InitializeOptions) error {
	if err := core.ValidateInitialize(opts); err != nil {
		return err
	}
	if opts == nil {
		opts = core.NewInitializeOptions()
		diag.Reset()
	} else {
		n := opts.Normalized()
		opts = &n
		diag.SetSink(opts.LogCallback, opts.LogUserData)
	}
	if err := rt.backend.Initialize(opts); err != nil {
		rt.logf("initialization failed: %v", err)
		return err
	}

	rt.mu.Lock()
	rt.initialized = true
	rt.allocator = opts.Allocator
	rt.policy = negotiate.Policy{RejectSafetyDegradation: opts.RejectSafetyDegradation}
	rt.mu.Unlock()
	if opts.RuntimeName != "" {
		rt.logf("initialized for %s.", opts.RuntimeName)
	}
	return nil
}

// Shutdown tears down what Initialize set up and clears the log sink.
func (rt *Runtime) Shutdown() {
	rt.backend.Shutdown()
	rt.mu.Lock()
	rt.initialized = false
	rt.allocator = nil
	rt.policy = negotiate.Policy{}
	rt.mu.Unlock()
	diag.Reset()
}

// Initialized reports whether Initialize succeeded since the last Shutdown.
func (rt *Runtime) Initialized() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.initialized
}

// Complete forwards a host completion to the backend.
func (rt *Runtime) Complete(handle string, response []byte) error {
	return rt.backend.Complete(handle, response)
}

// Show displays req and blocks until it resolves. A nil or malformed
// argument returns before res is touched; after that res always holds a
// consistent result whose Status matches the returned error.
func (rt *Runtime) Show(req *core.Request, res *core.Result) error {
	if req == nil || res == nil {
		return core.Errorf(core.ErrInvalidArgument, "request and result are required")
	}
	if err := core.ValidateRequest(req); err != nil {
		rt.logf("%v", err)
		return err
	}
	if err := core.ValidateResult(res); err != nil {
		rt.logf("%v", err)
		return err
	}
	core.ResetResult(res)

	rt.mu.Lock()
	a := rt.allocator
	policy := rt.policy
	rt.mu.Unlock()
	if req.Allocator != nil {
		a = req.Allocator
	}

	if script, ok := harness.Lookup(req.UserContext); ok {
		return harness.Apply(script, a, res).Err()
	}

	err := rt.show(req, res, a, policy)
	if err != nil {
		res.Status = core.StatusOf(err)
		res.InputValue = nil
		if res.Status != core.StatusCancelled {
			res.Button = core.ButtonNone
		}
	}
	return err
}

func (rt *Runtime) show(req *core.Request, res *core.Result, a *alloc.Allocator, policy negotiate.Policy) error {
	plan, err := negotiate.Negotiate(rt.backend.Profile, rt.backend.Probe(), req, policy)
	if err != nil {
		diag.Log(err.Error())
		return err
	}
	for _, line := range plan.Degradations {
		diag.Log(line)
	}
	r, err := rt.backend.Renderer(plan.Tier)
	if err != nil {
		return err
	}

	s, err := present(r, dialog.New(plan, req))
	if err != nil {
		rt.logf("%s failed: %v", plan.Spec.Name, err)
		return err
	}
	out := s.Wait()
	return marshal(out, a, res)
}

// present calls the renderer and turns a panic into a platform failure.
func present(r dialog.Renderer, d *dialog.Dialog) (s *session.Session, err error) {
	defer func() {
		if p := recover(); p != nil {
			s = nil
			err = fmt.Errorf("%w: renderer panicked: %v", core.ErrPlatformFailure, p)
		}
	}()
	s, err = r.Present(d)
	if err == nil && s == nil {
		err = fmt.Errorf("%w: renderer returned no session", core.ErrPlatformFailure)
	}
	return s, err
}

// marshal writes a terminal outcome into res.
func marshal(out session.Outcome, a *alloc.Allocator, res *core.Result) error {
	st := out.Status()
	switch st {
	case core.StatusOK:
	case core.StatusCancelled:
		res.Button = out.Button
		res.CheckboxChecked = out.Checkbox
		res.Status = st
		return core.ErrCancelled
	default:
		if out.Err != nil {
			return out.Err
		}
		return st.Err()
	}

	res.Button = out.Button
	res.CheckboxChecked = out.Checkbox
	res.WasTimeout = out.TimedOut
	if out.Input != nil {
		buf, err := alloc.CopyString(a, out.Input)
		if err != nil {
			res.WasTimeout = false
			res.CheckboxChecked = false
			return err
		}
		res.InputValue = buf
	}
	res.Status = core.StatusOK
	return nil
}
