package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/dialog"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/session"
)

func shown(t *testing.T, req *core.Request) (*model, *session.Session) {
	t.Helper()
	plan, err := negotiate.Negotiate(negotiate.TerminalProfile(), negotiate.Probe{Rich: negotiate.Ready}, req, negotiate.Policy{})
	if err != nil {
		t.Fatalf("negotiate: %v", err)
	}
	d := dialog.New(plan, req)
	s := d.NewSession(dialog.IndexBindings(d.Buttons(), 0), nil)
	if err := s.Show(nil); err != nil {
		t.Fatalf("show: %v", err)
	}
	return newModel(d, s), s
}

func press(m *model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestFocusAndActivate(t *testing.T) {
	req := core.NewRequest("Save changes?")
	req.AddButton(core.ButtonYes, "")
	req.AddButton(core.ButtonNo, "")
	req.AddButton(core.ButtonCancel, "").IsDefault = true
	m, s := shown(t, req)
	if m.focus != 2 {
		t.Fatalf("initial focus = %d", m.focus)
	}
	press(m, keyTab)
	if m.focus != 0 {
		t.Fatalf("focus after tab = %d", m.focus)
	}
	press(m, keyLeft)
	if m.focus != 2 {
		t.Fatalf("focus after left = %d", m.focus)
	}
	press(m, keyTab, keyTab)
	if cmd := press(m, keyEnter); !isQuit(cmd) {
		t.Fatalf("enter did not quit")
	}
	if out := s.Wait(); out.Button != core.ButtonNo {
		t.Fatalf("outcome = %+v", out)
	}
	if m.View() != "" {
		t.Fatalf("view after resolution should be empty")
	}
}

func TestVerificationAndDetails(t *testing.T) {
	req := core.NewRequest("Update available")
	req.VerificationText = "Don't show again"
	req.ShowSuppressCheckbox = true
	req.Secondary = core.NewSecondary()
	req.Secondary.Expanded = "Version 2.0 fixes everything."
	m, s := shown(t, req)
	if !strings.Contains(m.View(), "d: more details") {
		t.Fatalf("details hint missing:\n%s", m.View())
	}
	press(m, keySpace, runes("d"))
	view := m.View()
	if !strings.Contains(view, "[x] Don't show again") || !strings.Contains(view, "Version 2.0") {
		t.Fatalf("view:\n%s", view)
	}
	press(m, keyEnter)
	if out := s.Wait(); !out.Checkbox || out.Button != core.ButtonOK {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestTextInput(t *testing.T) {
	req := core.NewRequest("Passphrase")
	req.AddButton(core.ButtonOK, "").IsDefault = true
	req.AddButton(core.ButtonCancel, "")
	req.Input = core.NewInput(core.InputPassword)
	m, s := shown(t, req)
	if !m.inputFocused {
		t.Fatalf("input should start focused")
	}
	press(m, runes("s3cret"))
	if strings.Contains(m.View(), "s3cret") {
		t.Fatalf("password echoed:\n%s", m.View())
	}
	press(m, keyEnter)
	if out := s.Wait(); out.Input == nil || *out.Input != "s3cret" || out.Button != core.ButtonOK {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestComboInput(t *testing.T) {
	req := core.NewRequest("Region")
	req.Input = core.NewInput(core.InputCombo)
	req.Input.Items = []string{"eu", "us", "ap"}
	m, s := shown(t, req)
	press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyUp}, keyEnter)
	if out := s.Wait(); out.Input == nil || *out.Input != "us" {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestEscapePolicy(t *testing.T) {
	req := core.NewRequest("Continue?")
	req.AddButton(core.ButtonOK, "")
	req.AddButton(core.ButtonCancel, "")
	m, s := shown(t, req)
	if !isQuit(press(m, keyEsc)) {
		t.Fatalf("escape did not quit")
	}
	if out := s.Wait(); out.State != session.Cancelled || out.Button != core.ButtonCancel {
		t.Fatalf("outcome = %+v", out)
	}

	req.AllowEscapeCancel = false
	m, s = shown(t, req)
	if cmd := press(m, keyEsc); isQuit(cmd) || s.State() != session.Shown {
		t.Fatalf("escape should be ignored, state %v", s.State())
	}
}

func TestActivatorAndCountdown(t *testing.T) {
	req := core.NewRequest("Rebooting")
	req.AddButton(core.ButtonOK, "")
	req.AddButton(core.ButtonCancel, "")
	req.Timeout = time.Hour
	req.TimeoutButton = core.ButtonCancel
	m, s := shown(t, req)
	if !strings.Contains(m.View(), "Cancel in 1h0m0s") {
		t.Fatalf("countdown missing:\n%s", m.View())
	}
	_, cmd := m.Update(activateMsg(1))
	if !isQuit(cmd) {
		t.Fatalf("activation did not quit")
	}
	if out := s.Wait(); out.Button != core.ButtonCancel {
		t.Fatalf("outcome = %+v", out)
	}
}
