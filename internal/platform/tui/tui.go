// Package tui renders the rich tier in a terminal with bubbletea. It is the
// rich tier of builds tagged nmb_tui.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/dialog"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/session"
)

// Renderer runs one bubbletea program per dialog.
type Renderer struct {
	Input  io.Reader
	Output io.Writer
	// AltScreen draws the dialog on the alternate screen buffer.
	AltScreen bool
}

// New returns a renderer on the process terminal. The dialog is drawn on
// stderr so stdout stays free for results.
func New() *Renderer {
	return &Renderer{Input: os.Stdin, Output: os.Stderr}
}

// Present starts the program and returns; the session resolves from the
// program's update loop.
func (r *Renderer) Present(d *dialog.Dialog) (*session.Session, error) {
	s := d.NewSession(dialog.IndexBindings(d.Buttons(), 0), nil)
	m := newModel(d, s)

	opts := []tea.ProgramOption{tea.WithInput(r.Input), tea.WithOutput(r.Output)}
	if r.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, opts...)
	s.SetActivator(func(code int) { p.Send(activateMsg(code)) })

	s.Hold()
	err := s.Show(func() error {
		m.startCountdown()
		go func() {
			defer s.Release()
			_, err := p.Run()
			if err != nil {
				s.Fail(fmt.Errorf("%w: terminal: %v", core.ErrPlatformFailure, err))
				return
			}
			// Killed or interrupted without an answer.
			s.Fail(fmt.Errorf("%w: terminal dialog closed without an answer", core.ErrPlatformFailure))
		}()
		return nil
	})
	if err != nil {
		s.Release()
		d.Logf("%v", err)
	}
	return s, nil
}

type activateMsg int

type countdownMsg time.Time

type styles struct {
	frame    lipgloss.Style
	title    lipgloss.Style
	message  lipgloss.Style
	muted    lipgloss.Style
	icon     map[core.Icon]lipgloss.Style
	button   lipgloss.Style
	focused  lipgloss.Style
	danger   lipgloss.Style
	primary  lipgloss.Style
	selected lipgloss.Style
}

func newStyles() styles {
	blue := lipgloss.Color("#01cdfe")
	pink := lipgloss.Color("#ff71ce")
	amber := lipgloss.Color("#ffd166")
	muted := lipgloss.Color("#9ca3d8")
	return styles{
		frame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(0, 1),
		title:   lipgloss.NewStyle().Bold(true).Foreground(blue),
		message: lipgloss.NewStyle().Bold(true),
		muted:   lipgloss.NewStyle().Foreground(muted),
		icon: map[core.Icon]lipgloss.Style{
			core.IconInformation: lipgloss.NewStyle().Foreground(blue).Bold(true),
			core.IconQuestion:    lipgloss.NewStyle().Foreground(blue).Bold(true),
			core.IconWarning:     lipgloss.NewStyle().Foreground(amber).Bold(true),
			core.IconShield:      lipgloss.NewStyle().Foreground(amber).Bold(true),
			core.IconError:       lipgloss.NewStyle().Foreground(pink).Bold(true),
		},
		button:   lipgloss.NewStyle().Padding(0, 1),
		focused:  lipgloss.NewStyle().Padding(0, 1).Reverse(true),
		danger:   lipgloss.NewStyle().Padding(0, 1).Foreground(pink),
		primary:  lipgloss.NewStyle().Padding(0, 1).Bold(true),
		selected: lipgloss.NewStyle().Foreground(blue).Bold(true),
	}
}

var iconGlyphs = map[core.Icon]string{
	core.IconInformation: "(i)",
	core.IconWarning:     "/!\\",
	core.IconError:       "(x)",
	core.IconQuestion:    "(?)",
	core.IconShield:      "[#]",
}

type model struct {
	d      *dialog.Dialog
	s      *session.Session
	styles styles

	focus        int
	inputFocused bool

	input    *core.Input
	text     textinput.Model
	choice   int
	hasCheck bool
	checked  bool
	checkTxt string

	details     viewport.Model
	hasDetails  bool
	showDetails bool

	spin     spinner.Model
	deadline time.Time
	now      time.Time

	done bool
}

func newModel(d *dialog.Dialog, s *session.Session) *model {
	m := &model{d: d, s: s, styles: newStyles(), focus: d.Plan.DefaultIndex}
	if m.focus < 0 {
		m.focus = 0
	}
	if in, ok := d.Input(); ok {
		m.input = in
		switch in.Mode {
		case core.InputCombo:
			for i, item := range in.Items {
				if item == in.DefaultValue {
					m.choice = i
				}
			}
		default:
			m.text = textinput.New()
			m.text.Placeholder = in.Placeholder
			m.text.SetValue(in.DefaultValue)
			if in.Mode == core.InputPassword {
				m.text.EchoMode = textinput.EchoPassword
				m.text.EchoCharacter = '*'
			}
		}
		m.focusInput(true)
	}
	m.checkTxt, m.hasCheck = d.Verification()
	if text := d.Secondary(negotiate.FeatureExpanded); text != "" {
		m.hasDetails = true
		m.details = viewport.New(60, 6)
		m.details.SetContent(text)
	}
	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.startCountdown()
	return m
}

// startCountdown shows the countdown line once the session timer runs.
func (m *model) startCountdown() {
	if m.deadline.IsZero() && m.s.TimerArmed() {
		m.now = time.Now()
		m.deadline = m.now.Add(m.d.Request.Timeout)
	}
}

func (m *model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.inputFocused && m.input.Mode != core.InputCombo {
		cmds = append(cmds, textinput.Blink)
	}
	if !m.deadline.IsZero() {
		cmds = append(cmds, m.spin.Tick, countdown())
	}
	return tea.Batch(cmds...)
}

func countdown() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return countdownMsg(t) })
}

func (m *model) focusInput(on bool) {
	m.inputFocused = on && m.input != nil
	if m.input == nil || m.input.Mode == core.InputCombo {
		return
	}
	if m.inputFocused {
		m.text.Focus()
	} else {
		m.text.Blur()
	}
}

func (m *model) controls() session.Controls {
	c := session.Controls{Checkbox: m.checked}
	if m.input != nil {
		var v string
		if m.input.Mode == core.InputCombo {
			if len(m.input.Items) > 0 {
				v = m.input.Items[m.choice]
			}
		} else {
			v = m.text.Value()
		}
		c.Input = &v
	}
	return c
}

func (m *model) respond(code int) tea.Cmd {
	if m.s.Respond(code, m.controls()) {
		m.done = true
		return tea.Quit
	}
	return nil
}

func (m *model) dismiss() tea.Cmd {
	if m.s.Dismiss(session.DismissEscape, m.controls()) {
		m.done = true
		return tea.Quit
	}
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case activateMsg:
		m.focus = int(msg)
		m.focusInput(false)
		return m, m.respond(int(msg))
	case countdownMsg:
		if m.done {
			return m, nil
		}
		m.now = time.Time(msg)
		return m, countdown()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if m.hasDetails && msg.Width > 8 {
			m.details.Width = msg.Width - 6
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.key(msg)
	}
	return m, nil
}

func (m *model) key(msg tea.KeyMsg) tea.Cmd {
	n := len(m.d.Buttons())
	switch msg.String() {
	case "ctrl+c", "esc":
		return m.dismiss()
	case "tab", "right":
		if m.inputFocused {
			m.focusInput(false)
			return nil
		}
		if m.focus == n-1 && m.input != nil && msg.String() == "tab" {
			m.focusInput(true)
			return nil
		}
		m.focus = (m.focus + 1) % n
		return nil
	case "shift+tab", "left":
		if m.inputFocused {
			m.focusInput(false)
			m.focus = n - 1
			return nil
		}
		if m.focus == 0 && m.input != nil && msg.String() == "shift+tab" {
			m.focusInput(true)
			return nil
		}
		m.focus = (m.focus + n - 1) % n
		return nil
	case "enter":
		if m.inputFocused {
			if i := m.d.Plan.DefaultIndex; i >= 0 {
				return m.respond(i)
			}
			m.focusInput(false)
			return nil
		}
		return m.respond(m.focus)
	}

	if m.inputFocused {
		if m.input.Mode == core.InputCombo {
			switch msg.String() {
			case "up", "k":
				if m.choice > 0 {
					m.choice--
				}
			case "down", "j":
				if m.choice < len(m.input.Items)-1 {
					m.choice++
				}
			}
			return nil
		}
		var cmd tea.Cmd
		m.text, cmd = m.text.Update(msg)
		return cmd
	}

	switch msg.String() {
	case " ":
		if m.hasCheck {
			m.checked = !m.checked
		}
	case "d":
		if m.hasDetails {
			m.showDetails = !m.showDetails
		}
	case "up", "down", "pgup", "pgdown":
		if m.showDetails {
			var cmd tea.Cmd
			m.details, cmd = m.details.Update(msg)
			return cmd
		}
	}
	return nil
}

func (m *model) View() string {
	if m.done {
		return ""
	}
	st := m.styles
	var b strings.Builder
	b.WriteString(st.title.Render(m.d.Title()))
	b.WriteString("\n\n")

	msg := st.message.Render(m.d.Message())
	if icon := m.d.Icon(); icon != core.IconNone {
		msg = lipgloss.JoinHorizontal(lipgloss.Top, st.icon[icon].Render(iconGlyphs[icon])+" ", msg)
	}
	b.WriteString(msg)
	b.WriteString("\n")
	if text := m.d.Secondary(negotiate.FeatureInformative); text != "" {
		b.WriteString(st.muted.Render(text) + "\n")
	}
	if m.hasDetails {
		if m.showDetails {
			b.WriteString("\n" + m.details.View() + "\n")
		} else {
			b.WriteString(st.muted.Render("d: more details") + "\n")
		}
	}

	if m.input != nil {
		b.WriteString("\n")
		if m.input.Prompt != "" {
			b.WriteString(m.input.Prompt + "\n")
		}
		if m.input.Mode == core.InputCombo {
			for i, item := range m.input.Items {
				if i == m.choice {
					b.WriteString(st.selected.Render("> "+item) + "\n")
				} else {
					b.WriteString("  " + item + "\n")
				}
			}
		} else {
			b.WriteString(m.text.View() + "\n")
		}
	}
	if m.hasCheck {
		mark := "[ ]"
		if m.checked {
			mark = "[x]"
		}
		b.WriteString("\n" + mark + " " + m.checkTxt + "\n")
	}

	for _, btn := range m.d.Buttons() {
		if desc := m.d.Description(btn); desc != "" {
			b.WriteString(st.muted.Render(m.d.Label(btn)+": "+desc) + "\n")
		}
	}

	var row []string
	for i, btn := range m.d.Buttons() {
		label := m.d.Label(btn)
		style := st.button
		switch m.d.Kind(btn) {
		case core.KindDestructive:
			style = st.danger
		case core.KindPrimary:
			style = st.primary
		}
		if i == m.focus && !m.inputFocused {
			style = st.focused
		}
		row = append(row, style.Render("["+label+"]"))
	}
	b.WriteString("\n" + lipgloss.JoinHorizontal(lipgloss.Top, row...) + "\n")

	if link := m.d.Secondary(negotiate.FeatureHelpLink); link != "" {
		b.WriteString(st.muted.Render("Help: "+link) + "\n")
	}
	if text := m.d.Secondary(negotiate.FeatureFooter); text != "" {
		b.WriteString(st.muted.Render(text) + "\n")
	}
	if !m.deadline.IsZero() {
		left := m.deadline.Sub(m.now).Round(time.Second)
		if left < 0 {
			left = 0
		}
		code, _ := m.s.TimeoutCode()
		label := m.d.Label(m.d.Buttons()[code])
		b.WriteString(m.spin.View() + st.muted.Render(fmt.Sprintf(" %s in %s", label, left)) + "\n")
	}
	return st.frame.Render(strings.TrimRight(b.String(), "\n"))
}
