// Package bridge relays dialogs to a host runtime (an Android activity or a
// browser page) that renders them asynchronously and reports back through
// Complete. Each shown dialog is identified by its session id.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/dialog"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/session"
)

// ErrUnknownHandle is returned by Complete for a handle that is not pending.
var ErrUnknownHandle = errors.New("unknown dialog handle")

// Host renders envelopes. ShowDialog must not block on the user; the host
// reports the answer later through Bridge.Complete.
type Host interface {
	ShowDialog(parent any, env *Envelope) error
	// CloseDialog removes a dialog the runtime resolved on its own, e.g. on
	// timeout.
	CloseDialog(handle string) error
}

// Button is one button of an envelope. Response is the code the host sends
// back when it is pressed.
type Button struct {
	Response    int    `json:"response"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind,omitempty"`
	IsDefault   bool   `json:"isDefault,omitempty"`
	IsCancel    bool   `json:"isCancel,omitempty"`
}

// Input is the input control of an envelope.
type Input struct {
	Mode        string   `json:"mode"`
	Prompt      string   `json:"prompt,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Value       string   `json:"value,omitempty"`
	Items       []string `json:"items,omitempty"`
}

// Secondary is the additive content of an envelope.
type Secondary struct {
	Informative string `json:"informative,omitempty"`
	Expanded    string `json:"expanded,omitempty"`
	Footer      string `json:"footer,omitempty"`
	HelpLink    string `json:"helpLink,omitempty"`
}

// Envelope is the request handed to the host.
type Envelope struct {
	Handle       string     `json:"handle"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	Buttons      []Button   `json:"buttons"`
	Icon         string     `json:"icon,omitempty"`
	Severity     string     `json:"severity,omitempty"`
	Verification string     `json:"verification,omitempty"`
	Input        *Input     `json:"input,omitempty"`
	Secondary    *Secondary `json:"secondary,omitempty"`
	CancelIndex  int        `json:"cancelIndex"`
	Cancellable  bool       `json:"cancellable"`
	TimeoutMs    int64      `json:"timeoutMs,omitempty"`
}

// Response is what the host reports for a handle.
type Response struct {
	Response        int         `json:"response"`
	Cancelled       bool        `json:"cancelled"`
	CheckboxChecked bool        `json:"checkboxChecked"`
	InputValue      *string     `json:"inputValue,omitempty"`
	ResultCode      core.Status `json:"resultCode"`
}

type pending struct {
	session *session.Session
	parent  any
	env     *Envelope
}

// Bridge turns the host's asynchronous completion into a session.
type Bridge struct {
	host Host
	// RequireParent rejects dialogs without a parent handle.
	RequireParent bool

	mu      sync.Mutex
	pending map[string]*pending
}

// New returns a bridge over host.
func New(host Host) *Bridge {
	return &Bridge{host: host, pending: make(map[string]*pending)}
}

// BuildEnvelope builds the host request for d with the given handle.
func BuildEnvelope(d *dialog.Dialog, handle string) *Envelope {
	env := &Envelope{
		Handle:      handle,
		Title:       d.Title(),
		Message:     d.Message(),
		CancelIndex: d.Plan.CancelIndex,
	}
	for i, b := range d.Buttons() {
		eb := Button{
			Response:    i + 1,
			Label:       d.Label(b),
			Description: d.Description(b),
			IsDefault:   i == d.Plan.DefaultIndex,
			IsCancel:    i == d.Plan.CancelIndex,
		}
		if k := d.Kind(b); k != core.KindDefault {
			eb.Kind = k.String()
		}
		env.Buttons = append(env.Buttons, eb)
	}
	if icon := d.Icon(); icon != core.IconNone {
		env.Icon = icon.String()
	}
	if d.Renders(negotiate.FeatureSeverity) {
		env.Severity = d.Request.Severity.String()
	}
	if text, ok := d.Verification(); ok {
		env.Verification = text
	}
	if in, ok := d.Input(); ok {
		env.Input = &Input{
			Mode:        in.Mode.String(),
			Prompt:      in.Prompt,
			Placeholder: in.Placeholder,
			Value:       in.DefaultValue,
		}
		if in.Mode == core.InputCombo {
			env.Input.Items = in.Items
		}
	}
	sec := Secondary{
		Informative: d.Secondary(negotiate.FeatureInformative),
		Expanded:    d.Secondary(negotiate.FeatureExpanded),
		Footer:      d.Secondary(negotiate.FeatureFooter),
		HelpLink:    d.Secondary(negotiate.FeatureHelpLink),
	}
	if sec != (Secondary{}) {
		env.Secondary = &sec
	}
	opts := d.SessionOptions(nil, nil)
	env.Cancellable = opts.AllowEscape && !opts.RequireExplicitAck
	if opts.Timeout > 0 {
		env.TimeoutMs = opts.Timeout.Milliseconds()
	}
	return env
}

// Present sends d to the host and returns the shown session.
func (b *Bridge) Present(d *dialog.Dialog) (*session.Session, error) {
	parent := d.Request.ParentWindow
	if b.RequireParent && parent == nil {
		return nil, core.Errorf(core.ErrInvalidArgument, "%s: parent window must provide the host activity", d.Plan.Platform)
	}
	s := d.NewSession(dialog.IndexBindings(d.Buttons(), 1), nil)
	env := BuildEnvelope(d, s.ID)
	p := &pending{session: s, parent: parent, env: env}

	b.mu.Lock()
	b.pending[s.ID] = p
	b.mu.Unlock()

	// A timeout closes the host dialog without reading it back, so the
	// checkbox and input the host showed are not reported.
	s.SetActivator(func(code int) {
		if err := b.host.CloseDialog(s.ID); err != nil {
			d.Logf("closing dialog %s failed: %v", s.ID, err)
		}
		s.Respond(code, session.Controls{})
		b.forget(s.ID)
	})
	err := s.Show(func() error {
		if err := b.host.ShowDialog(parent, env); err != nil {
			return fmt.Errorf("%w: host refused dialog: %v", core.ErrPlatformFailure, err)
		}
		return nil
	})
	if err != nil {
		b.forget(s.ID)
		d.Logf("%v", err)
	}
	return s, nil
}

// Complete delivers the host's answer for handle.
func (b *Bridge) Complete(handle string, r Response) error {
	b.mu.Lock()
	p, ok := b.pending[handle]
	b.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}
	s := p.session
	controls := session.Controls{Checkbox: r.CheckboxChecked, Input: r.InputValue}

	switch {
	case r.ResultCode != core.StatusOK:
		s.Fail(fmt.Errorf("%w: host reported %s", r.ResultCode.Err(), r.ResultCode))
	case r.Cancelled || r.Response == 0:
		if !s.Dismiss(session.DismissNative, controls) {
			// The host closed a dialog that must be acknowledged.
			err := b.host.ShowDialog(p.parent, p.env)
			if err == nil {
				return nil
			}
			s.Fail(fmt.Errorf("%w: host refused dialog: %v", core.ErrPlatformFailure, err))
		}
	default:
		s.Respond(r.Response, controls)
	}
	b.forget(handle)
	return nil
}

// CompleteJSON decodes a Response and delivers it.
func (b *Bridge) CompleteJSON(handle string, data []byte) error {
	var r Response
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("%w: decode host response: %v", core.ErrInvalidArgument, err)
	}
	return b.Complete(handle, r)
}

// Pending reports how many dialogs await completion.
func (b *Bridge) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

func (b *Bridge) forget(handle string) {
	b.mu.Lock()
	delete(b.pending, handle)
	b.mu.Unlock()
}
