package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ButtonID identifies a button. Well-known ids are 1..11; callers assign
// their own ids from ButtonCustomBase upwards.
type ButtonID uint32

const (
	ButtonNone     ButtonID = 0
	ButtonOK       ButtonID = 1
	ButtonCancel   ButtonID = 2
	ButtonYes      ButtonID = 3
	ButtonNo       ButtonID = 4
	ButtonRetry    ButtonID = 5
	ButtonContinue ButtonID = 6
	ButtonIgnore   ButtonID = 7
	ButtonAbort    ButtonID = 8
	ButtonClose    ButtonID = 9
	ButtonHelp     ButtonID = 10
	ButtonTryAgain ButtonID = 11

	ButtonCustomBase ButtonID = 1000
)

var buttonNames = map[ButtonID]string{
	ButtonNone:     "none",
	ButtonOK:       "ok",
	ButtonCancel:   "cancel",
	ButtonYes:      "yes",
	ButtonNo:       "no",
	ButtonRetry:    "retry",
	ButtonContinue: "continue",
	ButtonIgnore:   "ignore",
	ButtonAbort:    "abort",
	ButtonClose:    "close",
	ButtonHelp:     "help",
	ButtonTryAgain: "try-again",
}

var buttonLabels = map[ButtonID]string{
	ButtonOK:       "OK",
	ButtonCancel:   "Cancel",
	ButtonYes:      "Yes",
	ButtonNo:       "No",
	ButtonRetry:    "Retry",
	ButtonContinue: "Continue",
	ButtonIgnore:   "Ignore",
	ButtonAbort:    "Abort",
	ButtonClose:    "Close",
	ButtonHelp:     "Help",
	ButtonTryAgain: "Try Again",
}

// WellKnownButtons lists every enumerated id in declaration order.
var WellKnownButtons = []ButtonID{
	ButtonOK, ButtonCancel, ButtonYes, ButtonNo, ButtonRetry, ButtonContinue,
	ButtonIgnore, ButtonAbort, ButtonClose, ButtonHelp, ButtonTryAgain,
}

// WellKnown reports whether id is one of the enumerated ids.
func (id ButtonID) WellKnown() bool {
	return id >= ButtonOK && id <= ButtonTryAgain
}

// Custom reports whether id is in the caller-assigned range.
func (id ButtonID) Custom() bool {
	return id >= ButtonCustomBase
}

// Valid reports whether id may be attached to a button.
func (id ButtonID) Valid() bool {
	return id.WellKnown() || id.Custom()
}

// DefaultLabel returns the canonical English label of a well-known id.
func (id ButtonID) DefaultLabel() string {
	return buttonLabels[id]
}

func (id ButtonID) String() string {
	if name, ok := buttonNames[id]; ok {
		return name
	}
	if id.Custom() {
		return strconv.FormatUint(uint64(id), 10)
	}
	return fmt.Sprintf("reserved(%d)", uint32(id))
}

// ParseButtonID accepts a well-known name ("ok", "try-again") or a number.
func ParseButtonID(s string) (ButtonID, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", "-")
	if key == "tryagain" {
		key = "try-again"
	}
	for id, name := range buttonNames {
		if name == key {
			return id, nil
		}
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil {
		return ButtonNone, fmt.Errorf("unknown button id %q", s)
	}
	return ButtonID(n), nil
}

// ButtonKind is a visual style hint.
type ButtonKind uint32

const (
	KindDefault ButtonKind = iota
	KindPrimary
	KindSecondary
	KindDestructive
	KindHelp
)

var kindNames = []string{"default", "primary", "secondary", "destructive", "help"}

func (k ButtonKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint32(k))
}

// Icon is the dialog icon hint.
type Icon uint32

const (
	IconNone Icon = iota
	IconInformation
	IconWarning
	IconError
	IconQuestion
	IconShield
)

var iconNames = []string{"none", "information", "warning", "error", "question", "shield"}

func (i Icon) String() string {
	if int(i) < len(iconNames) {
		return iconNames[i]
	}
	return fmt.Sprintf("icon(%d)", uint32(i))
}

// Severity maps the dialog to an accessibility urgency.
type Severity uint32

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

var severityNames = []string{"info", "warning", "error", "critical"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("severity(%d)", uint32(s))
}

// Modality controls what the dialog blocks.
type Modality uint32

const (
	ModalityApp Modality = iota
	ModalityWindow
	ModalitySystem
)

var modalityNames = []string{"app", "window", "system"}

func (m Modality) String() string {
	if int(m) < len(modalityNames) {
		return modalityNames[m]
	}
	return fmt.Sprintf("modality(%d)", uint32(m))
}

// InputMode selects the optional input control.
type InputMode uint32

const (
	InputNone InputMode = iota
	InputCheckbox
	InputText
	InputPassword
	InputCombo
)

var inputNames = []string{"none", "checkbox", "text", "password", "combo"}

func (m InputMode) String() string {
	if int(m) < len(inputNames) {
		return inputNames[m]
	}
	return fmt.Sprintf("input(%d)", uint32(m))
}

// ParseKind, ParseIcon, ParseSeverity, ParseModality and ParseInputMode
// accept the lower-case names used by String.
func ParseKind(s string) (ButtonKind, error) {
	i, err := parseName(kindNames, s, "button kind")
	return ButtonKind(i), err
}

func ParseIcon(s string) (Icon, error) {
	if strings.EqualFold(strings.TrimSpace(s), "info") {
		return IconInformation, nil
	}
	i, err := parseName(iconNames, s, "icon")
	return Icon(i), err
}

func ParseSeverity(s string) (Severity, error) {
	i, err := parseName(severityNames, s, "severity")
	return Severity(i), err
}

func ParseModality(s string) (Modality, error) {
	i, err := parseName(modalityNames, s, "modality")
	return Modality(i), err
}

func ParseInputMode(s string) (InputMode, error) {
	i, err := parseName(inputNames, s, "input mode")
	return InputMode(i), err
}

func parseName(names []string, s, what string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return 0, nil
	}
	for i, name := range names {
		if name == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, s)
}
