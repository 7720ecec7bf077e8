// Package fyneui renders the rich tier with fyne. Dialogs get their own
// window, or a modal pop-up when the parent handle is a fyne.Window.
package fyneui

import (
	"fmt"
	"net/url"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/dialog"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/session"
)

// Renderer shows dialogs on a running fyne application.
type Renderer struct {
	App fyne.App

	// shown is called with every built view; tests use it to drive widgets.
	shown func(v *view)
}

// New returns a renderer bound to app.
func New(app fyne.App) *Renderer {
	return &Renderer{App: app}
}

type view struct {
	d *dialog.Dialog
	s *session.Session

	content fyne.CanvasObject
	buttons []*widget.Button
	check   *widget.Check
	entry   *widget.Entry
	choice  *widget.Select

	closeOnce sync.Once
	close     func()
}

// Present builds the dialog and shows it without blocking; the session
// resolves from fyne callbacks.
func (r *Renderer) Present(d *dialog.Dialog) (*session.Session, error) {
	if r.App == nil {
		return nil, fmt.Errorf("%w: no fyne application", core.ErrUninitialized)
	}
	s := d.NewSession(dialog.IndexBindings(d.Buttons(), 0), nil)
	v := build(d, s)

	parent, _ := d.Request.ParentWindow.(fyne.Window)
	s.Hold()
	s.SetActivator(v.activate)
	err := s.Show(func() error {
		if parent != nil {
			v.showModal(parent)
		} else {
			v.showWindow(r.App)
		}
		return nil
	})
	if err != nil {
		v.teardown()
		d.Logf("%v", err)
	}
	if r.shown != nil {
		r.shown(v)
	}
	return s, nil
}

func build(d *dialog.Dialog, s *session.Session) *view {
	v := &view{d: d, s: s, close: func() {}}

	message := widget.NewLabelWithStyle(d.Message(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	message.Wrapping = fyne.TextWrapWord
	body := container.NewVBox(message)
	if text := d.Secondary(negotiate.FeatureInformative); text != "" {
		info := widget.NewLabel(text)
		info.Wrapping = fyne.TextWrapWord
		body.Add(info)
	}

	var top fyne.CanvasObject = body
	if res := iconResource(d.Icon()); res != nil {
		top = container.NewBorder(nil, nil, container.NewVBox(widget.NewIcon(res)), nil, body)
	}
	rows := container.NewVBox(top)

	if text := d.Secondary(negotiate.FeatureExpanded); text != "" {
		details := widget.NewLabel(text)
		details.Wrapping = fyne.TextWrapWord
		acc := widget.NewAccordion(widget.NewAccordionItem("More details", details))
		rows.Add(acc)
	}

	if in, ok := d.Input(); ok {
		if in.Prompt != "" {
			rows.Add(widget.NewLabel(in.Prompt))
		}
		switch in.Mode {
		case core.InputCombo:
			v.choice = widget.NewSelect(in.Items, nil)
			if in.DefaultValue != "" {
				v.choice.SetSelected(in.DefaultValue)
			}
			if in.Placeholder != "" {
				v.choice.PlaceHolder = in.Placeholder
			}
			rows.Add(v.choice)
		default:
			if in.Mode == core.InputPassword {
				v.entry = widget.NewPasswordEntry()
			} else {
				v.entry = widget.NewEntry()
			}
			v.entry.SetPlaceHolder(in.Placeholder)
			v.entry.SetText(in.DefaultValue)
			v.entry.OnSubmitted = func(string) { v.activateDefault() }
			rows.Add(v.entry)
		}
	}

	if text, ok := d.Verification(); ok {
		v.check = widget.NewCheck(text, nil)
		rows.Add(v.check)
	}

	for _, b := range d.Buttons() {
		if desc := d.Description(b); desc != "" {
			note := widget.NewLabelWithStyle(fmt.Sprintf("%s: %s", d.Label(b), desc), fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
			note.Wrapping = fyne.TextWrapWord
			rows.Add(note)
		}
	}

	if link := d.Secondary(negotiate.FeatureHelpLink); link != "" {
		if u, err := url.Parse(link); err == nil {
			rows.Add(widget.NewHyperlink("Open help", u))
		} else {
			d.Logf("help link %q is not a valid URL; hidden.", link)
		}
	}
	if text := d.Secondary(negotiate.FeatureFooter); text != "" {
		footer := widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
		footer.Wrapping = fyne.TextWrapWord
		rows.Add(widget.NewSeparator())
		rows.Add(footer)
	}

	bar := container.NewHBox(layout.NewSpacer())
	for i, b := range d.Buttons() {
		code := i
		btn := widget.NewButton(d.Label(b), func() { v.respond(code) })
		btn.Importance = importance(d.Kind(b), i == d.Plan.DefaultIndex)
		v.buttons = append(v.buttons, btn)
		bar.Add(btn)
	}
	rows.Add(bar)

	v.content = container.NewPadded(rows)
	return v
}

func iconResource(icon core.Icon) fyne.Resource {
	switch icon {
	case core.IconInformation:
		return theme.InfoIcon()
	case core.IconWarning, core.IconShield:
		return theme.WarningIcon()
	case core.IconError:
		return theme.ErrorIcon()
	case core.IconQuestion:
		return theme.QuestionIcon()
	}
	return nil
}

func importance(kind core.ButtonKind, isDefault bool) widget.ButtonImportance {
	switch kind {
	case core.KindPrimary:
		return widget.HighImportance
	case core.KindDestructive:
		return widget.DangerImportance
	case core.KindSecondary, core.KindHelp:
		return widget.LowImportance
	}
	if isDefault {
		return widget.HighImportance
	}
	return widget.MediumImportance
}

func (v *view) showWindow(app fyne.App) {
	w := app.NewWindow(v.d.Title())
	w.SetContent(v.content)
	w.SetFixedSize(true)
	w.Resize(fyne.NewSize(420, v.content.MinSize().Height))
	w.SetCloseIntercept(func() { v.dismiss(session.DismissClose) })
	w.Canvas().SetOnTypedKey(v.typedKey)
	v.close = w.Close
	w.CenterOnScreen()
	w.Show()
	if len(v.buttons) > 0 && v.d.Plan.DefaultIndex >= 0 {
		w.Canvas().Focus(v.buttons[v.d.Plan.DefaultIndex])
	}
}

func (v *view) showModal(parent fyne.Window) {
	c := parent.Canvas()
	previous := c.OnTypedKey()
	title := widget.NewLabelWithStyle(v.d.Title(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	pop := widget.NewModalPopUp(container.NewVBox(title, v.content), c)
	c.SetOnTypedKey(v.typedKey)
	v.close = func() {
		pop.Hide()
		c.SetOnTypedKey(previous)
	}
	pop.Show()
}

func (v *view) typedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyEscape:
		v.dismiss(session.DismissEscape)
	case fyne.KeyReturn, fyne.KeyEnter:
		v.activateDefault()
	}
}

func (v *view) controls() session.Controls {
	var c session.Controls
	if v.check != nil {
		c.Checkbox = v.check.Checked
	}
	switch {
	case v.entry != nil:
		text := v.entry.Text
		c.Input = &text
	case v.choice != nil:
		text := v.choice.Selected
		c.Input = &text
	}
	return c
}

func (v *view) respond(code int) {
	if v.s.Respond(code, v.controls()) {
		v.teardown()
	}
}

func (v *view) dismiss(src session.DismissSource) {
	if v.s.Dismiss(src, v.controls()) {
		v.teardown()
	}
}

func (v *view) activateDefault() {
	if i := v.d.Plan.DefaultIndex; i >= 0 && i < len(v.buttons) {
		v.activate(i)
	}
}

// activate clicks the button bound to code.
func (v *view) activate(code int) {
	if code < 0 || code >= len(v.buttons) {
		return
	}
	if btn := v.buttons[code]; btn.OnTapped != nil {
		btn.OnTapped()
	}
}

func (v *view) teardown() {
	v.closeOnce.Do(func() {
		v.close()
		v.s.Release()
	})
}
