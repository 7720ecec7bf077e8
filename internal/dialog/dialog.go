// Package dialog is the narrow interface between the runtime and the tier
// renderers. A Dialog exposes only what the negotiated tier renders.
package dialog

import (
	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/diag"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/session"
)

// Renderer shows a negotiated dialog. Present returns a session that has
// already been shown; blocking renderers return once it is terminal.
type Renderer interface {
	Present(d *Dialog) (*session.Session, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(d *Dialog) (*session.Session, error)

func (f RendererFunc) Present(d *Dialog) (*session.Session, error) { return f(d) }

// Dialog is one request after negotiation.
type Dialog struct {
	Plan    *negotiate.Plan
	Request *core.Request
}

// New pairs a plan with its request.
func New(plan *negotiate.Plan, req *core.Request) *Dialog {
	return &Dialog{Plan: plan, Request: req}
}

// Logf writes a platform-prefixed diagnostic line.
func (d *Dialog) Logf(format string, args ...any) {
	diag.Platform(d.Plan.Platform)(format, args...)
}

func (d *Dialog) Title() string {
	if d.Request.Title == "" {
		return core.AppName
	}
	return d.Request.Title
}

func (d *Dialog) Message() string { return d.Request.Message }

// Buttons returns the buttons to render, in order.
func (d *Dialog) Buttons() []core.Button { return d.Plan.Buttons }

// Renders reports whether the tier renders f for this request.
func (d *Dialog) Renders(f negotiate.Feature) bool { return d.Plan.Renders(f) }

// Icon returns the icon to show. Without an explicit icon the severity picks
// one when the tier renders severity.
func (d *Dialog) Icon() core.Icon {
	switch {
	case d.Renders(negotiate.FeatureShield):
		return core.IconShield
	case d.Renders(negotiate.FeatureIcon):
		return d.Request.Icon
	case d.Request.Icon == core.IconNone && d.Renders(negotiate.FeatureSeverity):
		switch d.Request.Severity {
		case core.SeverityWarning:
			return core.IconWarning
		case core.SeverityError, core.SeverityCritical:
			return core.IconError
		}
	}
	return core.IconNone
}

// Verification returns the checkbox label to render. A checkbox input is shown
// the same way when the tier renders it.
func (d *Dialog) Verification() (string, bool) {
	if d.Renders(negotiate.FeatureVerification) {
		return d.Request.VerificationText, true
	}
	if d.Renders(negotiate.FeatureCheckboxInput) {
		return d.Request.Input.Prompt, true
	}
	return "", false
}

// Input returns the text, password or combo input to render.
func (d *Dialog) Input() (*core.Input, bool) {
	for _, f := range []negotiate.Feature{negotiate.FeatureTextInput, negotiate.FeaturePasswordInput, negotiate.FeatureComboInput} {
		if d.Renders(f) {
			return d.Request.Input, true
		}
	}
	return nil, false
}

// Secondary returns the secondary text for one of the secondary features, or
// "" when it is absent or dropped.
func (d *Dialog) Secondary(f negotiate.Feature) string {
	if !d.Renders(f) {
		return ""
	}
	sec := d.Request.Secondary
	switch f {
	case negotiate.FeatureInformative:
		return sec.Informative
	case negotiate.FeatureExpanded:
		return sec.Expanded
	case negotiate.FeatureFooter:
		return sec.Footer
	case negotiate.FeatureHelpLink:
		return sec.HelpLink
	}
	return ""
}

// Description returns the description of b when the tier renders them.
func (d *Dialog) Description(b core.Button) string {
	if !d.Renders(negotiate.FeatureDescriptions) {
		return ""
	}
	return b.Description
}

// Kind returns the kind of b when the tier renders kinds.
func (d *Dialog) Kind(b core.Button) core.ButtonKind {
	if !d.Renders(negotiate.FeatureKinds) {
		return core.KindDefault
	}
	return b.Kind
}

// Label returns the label of b, or its canonical label when custom labels are
// dropped.
func (d *Dialog) Label(b core.Button) string {
	if d.Plan.Requested.Has(negotiate.FeatureCustomLabels) && !d.Renders(negotiate.FeatureCustomLabels) && b.ID.WellKnown() {
		return b.ID.DefaultLabel()
	}
	return b.Label
}

// IndexBindings binds button i to native code base+i.
func IndexBindings(buttons []core.Button, base int) []session.Binding {
	out := make([]session.Binding, len(buttons))
	for i, b := range buttons {
		out[i] = session.Binding{Code: base + i, ID: b.ID}
	}
	return out
}

// SessionOptions derives the session policy from the plan. Dropped policy
// features fall back to the permissive behaviour.
func (d *Dialog) SessionOptions(bindings []session.Binding, dismissCodes []int) session.Options {
	opts := session.Options{
		Bindings:           bindings,
		DismissCodes:       dismissCodes,
		CancelID:           d.Plan.MarkedCancel(),
		PlatformCancelID:   d.Plan.Spec.DefaultCancel,
		AllowEscape:        !d.Renders(negotiate.FeatureEscapeDisabled),
		RequireExplicitAck: d.Renders(negotiate.FeatureExplicitAck),
	}
	if d.Renders(negotiate.FeatureTimeout) {
		opts.Timeout = d.Request.Timeout
		opts.TimeoutID = d.Request.TimeoutButton
	}
	return opts
}

// NewSession builds a session for this dialog.
func (d *Dialog) NewSession(bindings []session.Binding, dismissCodes []int) *session.Session {
	return session.New(d.SessionOptions(bindings, dismissCodes))
}
