// Package session implements the life cycle of one shown dialog: it maps
// native response codes back to button ids, arms the auto-dismiss timer,
// applies the escape and explicit-acknowledgment policy, and hands exactly one
// outcome to the waiting caller.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
)

// State of a session.
type State int

const (
	Built State = iota
	Shown
	Resolved
	Cancelled
	TimedOut
	Failed
)

func (s State) String() string {
	switch s {
	case Built:
		return "built"
	case Shown:
		return "shown"
	case Resolved:
		return "resolved"
	case Cancelled:
		return "cancelled"
	case TimedOut:
		return "timed-out"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether s ends the session.
func (s State) Terminal() bool {
	return s >= Resolved
}

// ErrReentered is returned when Show is called on a session that already left
// the Built state.
var ErrReentered = errors.New("session already shown")

// Binding associates a native response code with a requested button id.
type Binding struct {
	Code int
	ID   core.ButtonID
}

// DismissSource names what tried to dismiss the dialog.
type DismissSource int

const (
	DismissEscape DismissSource = iota
	DismissClose
	DismissNative
	DismissProcessExit
)

func (d DismissSource) String() string {
	switch d {
	case DismissEscape:
		return "escape"
	case DismissClose:
		return "close"
	case DismissNative:
		return "native dismiss code"
	case DismissProcessExit:
		return "helper exit"
	}
	return "unknown"
}

// Controls is the state of the dialog's controls at resolution time.
type Controls struct {
	Checkbox bool
	Input    *string
}

// Options configure a session.
type Options struct {
	// Bindings is the lookup table built when the dialog was constructed.
	Bindings []Binding
	// DismissCodes are native codes that mean "closed without a choice".
	DismissCodes []int

	// CancelID is the id of the button marked cancel, if any.
	CancelID core.ButtonID
	// PlatformCancelID is the tier's own cancel id, used when no button is
	// marked cancel.
	PlatformCancelID core.ButtonID

	AllowEscape        bool
	RequireExplicitAck bool

	Timeout   time.Duration
	TimeoutID core.ButtonID
}

// Outcome is the single resolution of a session.
type Outcome struct {
	State    State
	Button   core.ButtonID
	Checkbox bool
	Input    *string
	TimedOut bool
	Err      error
}

// Status maps the outcome onto the status taxonomy.
func (o Outcome) Status() core.Status {
	switch o.State {
	case Resolved, TimedOut:
		return core.StatusOK
	case Cancelled:
		return core.StatusCancelled
	case Failed:
		return core.StatusOf(o.Err)
	}
	return core.StatusUnknown
}

// Session is one Built -> Shown -> terminal life cycle.
type Session struct {
	ID string

	opts    Options
	codes   map[int]core.ButtonID
	dismiss map[int]struct{}

	mu          sync.Mutex
	state       State
	timer       *time.Timer
	timeoutCode int
	timeoutArm  bool
	timingOut   bool
	activator   func(code int)
	outcome     Outcome
	done        chan struct{}

	holds sync.WaitGroup
}

// New builds a session from its lookup table and policy.
func New(opts Options) *Session {
	s := &Session{
		ID:      ulid.Make().String(),
		opts:    opts,
		codes:   make(map[int]core.ButtonID, len(opts.Bindings)),
		dismiss: make(map[int]struct{}, len(opts.DismissCodes)),
		done:    make(chan struct{}),
	}
	for _, b := range opts.Bindings {
		s.codes[b.Code] = b.ID
	}
	for _, c := range opts.DismissCodes {
		s.dismiss[c] = struct{}{}
	}
	if opts.Timeout > 0 && opts.TimeoutID != core.ButtonNone {
		for _, b := range opts.Bindings {
			if b.ID == opts.TimeoutID {
				s.timeoutCode = b.Code
				s.timeoutArm = true
				break
			}
		}
	}
	return s
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TimerArmed reports whether Show will arm (or has armed) the auto-dismiss
// timer. It is false when the timeout id is not bound to a rendered button.
func (s *Session) TimerArmed() bool {
	return s.timeoutArm
}

// TimeoutCode returns the native code the timer synthesizes.
func (s *Session) TimeoutCode() (int, bool) {
	return s.timeoutCode, s.timeoutArm
}

// SetActivator installs the function the timer uses to click the timeout
// button through the renderer. Without one the timer resolves the session
// directly.
func (s *Session) SetActivator(fn func(code int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activator = fn
}

// Hold marks renderer work that Wait must also wait for, such as tearing a
// window down. Each Hold needs a matching Release.
func (s *Session) Hold() { s.holds.Add(1) }

// Release ends a Hold.
func (s *Session) Release() { s.holds.Done() }

// Show moves the session to Shown, arms the timer and runs present. An error
// from present fails the session and is returned.
func (s *Session) Show(present func() error) error {
	s.mu.Lock()
	if s.state != Built {
		s.mu.Unlock()
		return ErrReentered
	}
	s.state = Shown
	if s.timeoutArm {
		s.timer = time.AfterFunc(s.opts.Timeout, s.fireTimeout)
	}
	s.mu.Unlock()

	if present == nil {
		return nil
	}
	if err := present(); err != nil {
		s.Fail(err)
		return err
	}
	return nil
}

func (s *Session) fireTimeout() {
	s.mu.Lock()
	if s.state != Shown {
		s.mu.Unlock()
		return
	}
	s.timingOut = true
	act := s.activator
	code := s.timeoutCode
	s.mu.Unlock()

	if act != nil {
		act(code)
		return
	}
	s.Respond(code, Controls{})
}

// Respond records a native response code. A bound code resolves to its
// button; an unbound dismiss code goes through Dismiss; any other code fails
// the session. It reports whether the session reached a terminal state.
func (s *Session) Respond(code int, c Controls) bool {
	s.mu.Lock()
	if s.state != Shown {
		s.mu.Unlock()
		return false
	}
	id, ok := s.codes[code]
	if !ok {
		_, dismiss := s.dismiss[code]
		s.mu.Unlock()
		if dismiss {
			return s.Dismiss(DismissNative, c)
		}
		return s.Fail(fmt.Errorf("%w: unmapped native response code %d", core.ErrPlatformFailure, code))
	}
	state := Resolved
	timedOut := s.timingOut && s.timeoutArm && code == s.timeoutCode
	if timedOut {
		state = TimedOut
	}
	s.finishLocked(Outcome{
		State:    state,
		Button:   id,
		Checkbox: c.Checkbox,
		Input:    c.Input,
		TimedOut: timedOut,
	})
	s.mu.Unlock()
	return true
}

// Dismissible reports whether a close or escape attempt would cancel.
func (s *Session) Dismissible() bool {
	return s.opts.AllowEscape && !s.opts.RequireExplicitAck
}

// Dismiss cancels the session when the policy allows it. Otherwise the
// attempt is ignored and the dialog stays shown.
func (s *Session) Dismiss(src DismissSource, c Controls) bool {
	if !s.Dismissible() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Shown {
		return false
	}
	s.finishLocked(Outcome{
		State:    Cancelled,
		Button:   s.CancelID(),
		Checkbox: c.Checkbox,
	})
	return true
}

// CancelID is the id a dismissal resolves to: the marked cancel button, the
// platform's cancel id, or the generic cancel id.
func (s *Session) CancelID() core.ButtonID {
	switch {
	case s.opts.CancelID != core.ButtonNone:
		return s.opts.CancelID
	case s.opts.PlatformCancelID != core.ButtonNone:
		return s.opts.PlatformCancelID
	}
	return core.ButtonCancel
}

// Fail ends the session with err. Errors outside the status taxonomy are
// reported as platform failures.
func (s *Session) Fail(err error) bool {
	if err == nil {
		err = core.ErrPlatformFailure
	}
	if core.StatusOf(err) == core.StatusUnknown {
		err = fmt.Errorf("%w: %v", core.ErrPlatformFailure, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Terminal() {
		return false
	}
	s.finishLocked(Outcome{State: Failed, Err: err})
	return true
}

func (s *Session) finishLocked(o Outcome) {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.state = o.State
	s.outcome = o
	close(s.done)
}

// Done is closed once the session reaches a terminal state.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session is terminal and every Hold was released.
func (s *Session) Wait() Outcome {
	<-s.done
	s.holds.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}
