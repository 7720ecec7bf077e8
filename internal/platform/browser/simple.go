// Package browser connects the runtime to a web page when built for
// js/wasm: a JavaScript host object renders the rich tier through the bridge,
// and window.alert/window.confirm serve as the simple tier.
package browser

import (
	"fmt"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/dialog"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/session"
)

// Prompter is the blocking alert/confirm pair of a browser window.
type Prompter interface {
	Alert(text string)
	Confirm(text string) bool
}

// Simple renders the fixed OK and OK/Cancel combinations.
type Simple struct {
	Prompter Prompter
}

const (
	codeOK = iota
	codeCancel
)

// Text is what the prompt shows. The browser draws no title, so a custom
// one leads the message.
func Text(d *dialog.Dialog) string {
	if d.Request.Title == "" {
		return d.Message()
	}
	return d.Request.Title + "\n\n" + d.Message()
}

// Present blocks in the prompt and resolves the session.
func (r *Simple) Present(d *dialog.Dialog) (*session.Session, error) {
	if d.Plan.Combo == nil {
		return nil, fmt.Errorf("%w: window.confirm needs a fixed button combination", core.ErrNotSupported)
	}
	confirm := d.Plan.Combo.Name == negotiate.ComboOKCancel.Name
	bindings := []session.Binding{{Code: codeOK, ID: core.ButtonOK}}
	if confirm {
		bindings = append(bindings, session.Binding{Code: codeCancel, ID: core.ButtonCancel})
	}
	s := d.NewSession(bindings, nil)
	_ = s.Show(func() error {
		text := Text(d)
		if !confirm {
			r.Prompter.Alert(text)
			s.Respond(codeOK, session.Controls{})
			return nil
		}
		if r.Prompter.Confirm(text) {
			s.Respond(codeOK, session.Controls{})
		} else {
			s.Respond(codeCancel, session.Controls{})
		}
		return nil
	})
	return s, nil
}
