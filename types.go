package nativemessagebox

import (
	"github.com/wieslawsoltes/NativeMessageBox/internal/alloc"
	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/diag"
	"github.com/wieslawsoltes/NativeMessageBox/internal/harness"
)

type (
	Request           = core.Request
	Button            = core.Button
	Input             = core.Input
	Secondary         = core.Secondary
	Result            = core.Result
	InitializeOptions = core.InitializeOptions
	Allocator         = alloc.Allocator
	LogFunc           = diag.Func

	ButtonID   = core.ButtonID
	ButtonKind = core.ButtonKind
	Icon       = core.Icon
	Severity   = core.Severity
	Modality   = core.Modality
	InputMode  = core.InputMode
	Status     = core.Status

	// TestHarness is a scripted result. Attached as Request.UserContext it
	// replaces the dialog entirely.
	TestHarness = harness.Script
)

// ABIVersion is the packed version of this runtime.
const ABIVersion = core.ABIVersion

const (
	ButtonNone       = core.ButtonNone
	ButtonOK         = core.ButtonOK
	ButtonCancel     = core.ButtonCancel
	ButtonYes        = core.ButtonYes
	ButtonNo         = core.ButtonNo
	ButtonRetry      = core.ButtonRetry
	ButtonContinue   = core.ButtonContinue
	ButtonIgnore     = core.ButtonIgnore
	ButtonAbort      = core.ButtonAbort
	ButtonClose      = core.ButtonClose
	ButtonHelp       = core.ButtonHelp
	ButtonTryAgain   = core.ButtonTryAgain
	ButtonCustomBase = core.ButtonCustomBase
)

const (
	KindDefault     = core.KindDefault
	KindPrimary     = core.KindPrimary
	KindSecondary   = core.KindSecondary
	KindDestructive = core.KindDestructive
	KindHelp        = core.KindHelp
)

const (
	IconNone        = core.IconNone
	IconInformation = core.IconInformation
	IconWarning     = core.IconWarning
	IconError       = core.IconError
	IconQuestion    = core.IconQuestion
	IconShield      = core.IconShield
)

const (
	SeverityInfo     = core.SeverityInfo
	SeverityWarning  = core.SeverityWarning
	SeverityError    = core.SeverityError
	SeverityCritical = core.SeverityCritical
)

const (
	ModalityApp    = core.ModalityApp
	ModalityWindow = core.ModalityWindow
	ModalitySystem = core.ModalitySystem
)

const (
	InputNone     = core.InputNone
	InputCheckbox = core.InputCheckbox
	InputText     = core.InputText
	InputPassword = core.InputPassword
	InputCombo    = core.InputCombo
)

const (
	StatusOK              = core.StatusOK
	StatusInvalidArgument = core.StatusInvalidArgument
	StatusUninitialized   = core.StatusUninitialized
	StatusNotSupported    = core.StatusNotSupported
	StatusPlatformFailure = core.StatusPlatformFailure
	StatusCancelled       = core.StatusCancelled
	StatusOutOfMemory     = core.StatusOutOfMemory
	StatusUnknown         = core.StatusUnknown
)

var (
	ErrInvalidArgument = core.ErrInvalidArgument
	ErrUninitialized   = core.ErrUninitialized
	ErrNotSupported    = core.ErrNotSupported
	ErrPlatformFailure = core.ErrPlatformFailure
	ErrCancelled       = core.ErrCancelled
	ErrOutOfMemory     = core.ErrOutOfMemory
)

// NewRequest returns a stamped request with escape-cancel allowed.
func NewRequest(message string) *Request { return core.NewRequest(message) }

// NewResult returns a stamped result slot.
func NewResult() *Result { return core.NewResult() }

// NewInitializeOptions returns stamped initialization options.
func NewInitializeOptions() *InitializeOptions { return core.NewInitializeOptions() }

func NewInput(mode InputMode) *Input { return core.NewInput(mode) }

func NewSecondary() *Secondary { return core.NewSecondary() }

// NewTestHarness returns a valid script that answers with button.
func NewTestHarness(button ButtonID) *TestHarness { return harness.New(button) }

// MakeVersion packs a version the way ABIVersion is packed.
func MakeVersion(major, minor, patch uint8) uint32 { return core.MakeVersion(major, minor, patch) }

// StatusOf maps an error returned by Show onto its Status.
func StatusOf(err error) Status { return core.StatusOf(err) }
