package core

import (
	"time"
	"unsafe"

	"github.com/wieslawsoltes/NativeMessageBox/internal/alloc"
	"github.com/wieslawsoltes/NativeMessageBox/internal/diag"
)

// Button describes one button of a request.
type Button struct {
	StructSize  uintptr
	ID          ButtonID
	Label       string
	Description string
	Kind        ButtonKind
	IsDefault   bool
	IsCancel    bool
}

// Input describes the optional input control.
type Input struct {
	StructSize   uintptr
	Mode         InputMode
	Prompt       string
	Placeholder  string
	DefaultValue string
	// Items is only read when Mode is InputCombo.
	Items []string
}

// Secondary carries additive content that never affects control flow.
type Secondary struct {
	StructSize  uintptr
	Informative string
	Expanded    string
	Footer      string
	HelpLink    string
}

// Request is the declarative description of one dialog. Empty strings are
// treated as absent.
type Request struct {
	StructSize uintptr
	ABIVersion uint32

	Title   string
	Message string

	Buttons   []Button
	Input     *Input
	Secondary *Secondary

	VerificationText string

	Icon     Icon
	Severity Severity
	Modality Modality

	// ParentWindow is an opaque platform handle; only the platform that
	// understands its concrete type reads it.
	ParentWindow any

	AllowEscapeCancel    bool
	ShowSuppressCheckbox bool
	RequireExplicitAck   bool

	Timeout       time.Duration
	TimeoutButton ButtonID

	Locale string

	Allocator   *alloc.Allocator
	UserContext any
}

// Result is written by Show.
type Result struct {
	StructSize      uintptr
	Button          ButtonID
	CheckboxChecked bool
	// InputValue is NUL-terminated and was obtained from the request's
	// allocator. The caller releases it.
	InputValue []byte
	WasTimeout bool
	Status     Status
}

// Input returns the text of InputValue.
func (r *Result) Input() string {
	if r == nil {
		return ""
	}
	return alloc.String(r.InputValue)
}

// InitializeOptions configures process-wide state.
type InitializeOptions struct {
	StructSize  uintptr
	ABIVersion  uint32
	RuntimeName string
	Allocator   *alloc.Allocator
	LogCallback diag.Func
	LogUserData any

	// Fields below were appended after the first contract revision. Callers
	// that declare a smaller size get them zeroed.

	// Toolkit is an opaque host toolkit handle, e.g. a fyne.App.
	Toolkit any
	// RejectSafetyDegradation makes tiers that would drop the verification
	// checkbox or explicit acknowledgment ineligible.
	RejectSafetyDegradation bool
}

const (
	ButtonSize    = unsafe.Sizeof(Button{})
	InputSize     = unsafe.Sizeof(Input{})
	SecondarySize = unsafe.Sizeof(Secondary{})
	RequestSize   = unsafe.Sizeof(Request{})
	ResultSize    = unsafe.Sizeof(Result{})
	InitSize      = unsafe.Sizeof(InitializeOptions{})

	RequestMinSize = unsafe.Offsetof(Request{}.UserContext) + unsafe.Sizeof(Request{}.UserContext)
	ResultMinSize  = unsafe.Offsetof(Result{}.Status) + unsafe.Sizeof(Result{}.Status)
	InitMinSize    = unsafe.Offsetof(InitializeOptions{}.LogUserData) + unsafe.Sizeof(InitializeOptions{}.LogUserData)

	initToolkitEnd = unsafe.Offsetof(InitializeOptions{}.Toolkit) + unsafe.Sizeof(InitializeOptions{}.Toolkit)
	initPolicyEnd  = unsafe.Offsetof(InitializeOptions{}.RejectSafetyDegradation) + unsafe.Sizeof(InitializeOptions{}.RejectSafetyDegradation)
)

// NewRequest returns a request stamped with the current size and version.
// Escape-to-cancel is allowed by default.
func NewRequest(message string) *Request {
	return &Request{
		StructSize:        RequestSize,
		ABIVersion:        ABIVersion,
		Message:           message,
		AllowEscapeCancel: true,
	}
}

// NewButton returns a sized button. An empty label takes the canonical label
// of a well-known id.
func NewButton(id ButtonID, label string) Button {
	if label == "" {
		label = id.DefaultLabel()
	}
	return Button{StructSize: ButtonSize, ID: id, Label: label}
}

// NewInput returns a sized input spec.
func NewInput(mode InputMode) *Input {
	return &Input{StructSize: InputSize, Mode: mode}
}

// NewSecondary returns a sized secondary-content block.
func NewSecondary() *Secondary {
	return &Secondary{StructSize: SecondarySize}
}

// NewResult returns a sized result slot.
func NewResult() *Result {
	return &Result{StructSize: ResultSize}
}

// NewInitializeOptions returns options stamped with the current size and
// version.
func NewInitializeOptions() *InitializeOptions {
	return &InitializeOptions{StructSize: InitSize, ABIVersion: ABIVersion}
}

// AddButton appends a sized button and returns a pointer to it for further
// tweaking.
func (r *Request) AddButton(id ButtonID, label string) *Button {
	r.Buttons = append(r.Buttons, NewButton(id, label))
	return &r.Buttons[len(r.Buttons)-1]
}

// EffectiveButtons returns the request's buttons, or a single default OK
// button when none were given.
func (r *Request) EffectiveButtons() []Button {
	if len(r.Buttons) > 0 {
		return r.Buttons
	}
	ok := NewButton(ButtonOK, "")
	ok.IsDefault = true
	return []Button{ok}
}

// InputMode returns the active input mode.
func (r *Request) InputMode() InputMode {
	if r.Input == nil {
		return InputNone
	}
	return r.Input.Mode
}

// VerificationRequested reports whether both halves of the verification
// checkbox were supplied.
func (r *Request) VerificationRequested() bool {
	return r.ShowSuppressCheckbox && r.VerificationText != ""
}

// Normalized returns a copy of o with fields beyond the caller's declared
// size reset to their zero values.
func (o *InitializeOptions) Normalized() InitializeOptions {
	n := *o
	if n.StructSize < initToolkitEnd {
		n.Toolkit = nil
	}
	if n.StructSize < initPolicyEnd {
		n.RejectSafetyDegradation = false
	}
	return n
}
