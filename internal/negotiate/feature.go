package negotiate

import (
	"strings"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
)

// Feature is a bit set of request capabilities a tier may or may not render.
type Feature uint32

const (
	FeatureDescriptions Feature = 1 << iota
	FeatureKinds
	FeatureCustomLabels
	FeatureIcon
	FeatureShield
	FeatureSeverity
	FeatureModality
	FeatureParentWindow
	FeatureInformative
	FeatureExpanded
	FeatureFooter
	FeatureHelpLink
	FeatureVerification
	FeatureCheckboxInput
	FeatureTextInput
	FeaturePasswordInput
	FeatureComboInput
	FeatureTimeout
	FeatureEscapeDisabled
	FeatureExplicitAck
	FeatureLocale

	featureEnd
)

// AllFeatures has every defined bit set.
const AllFeatures = featureEnd - 1

const (
	// SafetyFeatures are the fields whose loss changes what the user agrees to.
	SafetyFeatures = FeatureVerification | FeatureExplicitAck

	InputFeatures     = FeatureCheckboxInput | FeatureTextInput | FeaturePasswordInput | FeatureComboInput
	SecondaryFeatures = FeatureInformative | FeatureExpanded | FeatureFooter | FeatureHelpLink
)

var featureNames = map[Feature]string{
	FeatureDescriptions:   "button descriptions",
	FeatureKinds:          "button kind hints",
	FeatureCustomLabels:   "custom button labels",
	FeatureIcon:           "icon hints",
	FeatureShield:         "shield icon",
	FeatureSeverity:       "severity hints",
	FeatureModality:       "modality hints",
	FeatureParentWindow:   "parent window handle",
	FeatureInformative:    "informative text",
	FeatureExpanded:       "expanded details",
	FeatureFooter:         "footer text",
	FeatureHelpLink:       "help link",
	FeatureVerification:   "verification checkbox",
	FeatureCheckboxInput:  "checkbox input",
	FeatureTextInput:      "text input",
	FeaturePasswordInput:  "password input",
	FeatureComboInput:     "combo input",
	FeatureTimeout:        "auto-dismiss timeout",
	FeatureEscapeDisabled: "escape-cancel suppression",
	FeatureExplicitAck:    "explicit acknowledgment",
	FeatureLocale:         "preferred locale",
}

// Has reports whether every bit of g is set in f.
func (f Feature) Has(g Feature) bool {
	return f&g == g && g != 0
}

// Each calls fn for every single feature in f, lowest bit first.
func (f Feature) Each(fn func(Feature)) {
	for bit := Feature(1); bit < featureEnd; bit <<= 1 {
		if f&bit != 0 {
			fn(bit)
		}
	}
}

func (f Feature) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	f.Each(func(bit Feature) {
		names = append(names, featureNames[bit])
	})
	return strings.Join(names, ", ")
}

// Extract lists the capabilities req asks for. Verification counts only when
// both the flag and the text are present.
func Extract(req *core.Request) Feature {
	var f Feature
	for _, b := range req.Buttons {
		if b.Description != "" {
			f |= FeatureDescriptions
		}
		if b.Kind != core.KindDefault {
			f |= FeatureKinds
		}
		if b.ID.Custom() || !strings.EqualFold(b.Label, b.ID.DefaultLabel()) {
			f |= FeatureCustomLabels
		}
	}
	switch req.Icon {
	case core.IconNone:
	case core.IconShield:
		f |= FeatureShield
	default:
		f |= FeatureIcon
	}
	if req.Severity != core.SeverityInfo {
		f |= FeatureSeverity
	}
	if req.Modality != core.ModalityApp {
		f |= FeatureModality
	}
	if req.ParentWindow != nil {
		f |= FeatureParentWindow
	}
	if sec := req.Secondary; sec != nil {
		if sec.Informative != "" {
			f |= FeatureInformative
		}
		if sec.Expanded != "" {
			f |= FeatureExpanded
		}
		if sec.Footer != "" {
			f |= FeatureFooter
		}
		if sec.HelpLink != "" {
			f |= FeatureHelpLink
		}
	}
	if req.VerificationRequested() {
		f |= FeatureVerification
	}
	switch req.InputMode() {
	case core.InputCheckbox:
		f |= FeatureCheckboxInput
	case core.InputText:
		f |= FeatureTextInput
	case core.InputPassword:
		f |= FeaturePasswordInput
	case core.InputCombo:
		f |= FeatureComboInput
	}
	if req.Timeout > 0 && req.TimeoutButton != core.ButtonNone {
		f |= FeatureTimeout
	}
	if !req.AllowEscapeCancel {
		f |= FeatureEscapeDisabled
	}
	if req.RequireExplicitAck {
		f |= FeatureExplicitAck
	}
	if req.Locale != "" {
		f |= FeatureLocale
	}
	return f
}
