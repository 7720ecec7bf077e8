package negotiate

import "github.com/wieslawsoltes/NativeMessageBox/internal/core"

// Tier is one of the mutually exclusive rendering strategies.
type Tier int

const (
	TierNone Tier = iota
	TierRich
	TierSimple
	TierExternal
)

func (t Tier) String() string {
	switch t {
	case TierRich:
		return "rich"
	case TierSimple:
		return "simple"
	case TierExternal:
		return "external"
	default:
		return "none"
	}
}

// Availability is what a platform probe reports for one tier.
type Availability int

const (
	Absent Availability = iota
	Uninitialized
	Ready
)

func (a Availability) String() string {
	switch a {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	default:
		return "absent"
	}
}

// Probe is the availability of each tier on the running host.
type Probe struct {
	Rich     Availability
	Simple   Availability
	External Availability
}

// TierSpec is the threshold table of one tier on one platform.
type TierSpec struct {
	// Name appears in log lines, e.g. "MessageBox".
	Name string
	// Honors lists features the tier renders.
	Honors Feature
	// Tolerates lists features the tier drops with a log line. A requested
	// feature in neither set makes the tier ineligible.
	Tolerates Feature
	// MaxButtons limits the button count; zero means unlimited.
	MaxButtons int
	// TruncateButtons renders the first MaxButtons buttons instead of
	// rejecting larger sets.
	TruncateButtons bool
	// Combos, when non-nil, restricts the button set to an exact match of one
	// fixed combination.
	Combos []Combo
	// DefaultCancel is the id a dismissal resolves to when no button is
	// marked cancel.
	DefaultCancel core.ButtonID
}

// Profile describes one platform's tiers. A nil tier does not exist there.
type Profile struct {
	Platform string
	Rich     *TierSpec
	Simple   *TierSpec
	External *TierSpec
}

// Spec returns the TierSpec for t.
func (p Profile) Spec(t Tier) *TierSpec {
	switch t {
	case TierRich:
		return p.Rich
	case TierSimple:
		return p.Simple
	case TierExternal:
		return p.External
	}
	return nil
}

// Policy holds caller decisions that change tier eligibility.
type Policy struct {
	// RejectSafetyDegradation makes a tier ineligible when it would drop the
	// verification checkbox or explicit acknowledgment.
	RejectSafetyDegradation bool
}

const passiveFeatures = FeatureModality | FeatureParentWindow | FeatureLocale

func fyneRich() *TierSpec {
	return &TierSpec{
		Name:          "fyne dialog",
		Honors:        AllFeatures &^ (FeatureShield | FeatureModality | FeatureLocale),
		Tolerates:     FeatureShield | FeatureModality | FeatureLocale,
		DefaultCancel: core.ButtonCancel,
	}
}

func helperTier(name string, honors Feature) *TierSpec {
	return &TierSpec{
		Name:   name,
		Honors: honors,
		Tolerates: (FeatureDescriptions | FeatureKinds | FeatureCustomLabels | FeatureShield |
			FeatureSeverity | FeatureTimeout | FeatureVerification | SecondaryFeatures | passiveFeatures) &^ honors,
		MaxButtons:    1,
		DefaultCancel: core.ButtonCancel,
	}
}

// LinuxProfile covers Linux and the BSDs: fyne when a display and a GL
// driver exist, zenity or kdialog otherwise.
func LinuxProfile(helper string) Profile {
	return Profile{
		Platform: "Linux",
		Rich:     fyneRich(),
		External: helperTier(helper, FeatureIcon|FeatureSeverity|FeatureCustomLabels|FeatureEscapeDisabled|FeatureExplicitAck),
	}
}

// DarwinProfile is fyne with an osascript fallback.
func DarwinProfile() Profile {
	return Profile{
		Platform: "macOS",
		Rich:     fyneRich(),
		External: helperTier("osascript", FeatureIcon|FeatureSeverity|FeatureCustomLabels|FeatureEscapeDisabled|FeatureExplicitAck),
	}
}

// WindowsProfile is fyne, then MessageBoxW, then a PowerShell helper.
func WindowsProfile() Profile {
	return Profile{
		Platform: "Windows",
		Rich:     fyneRich(),
		Simple: &TierSpec{
			Name:          "MessageBox",
			Honors:        FeatureIcon | FeatureSeverity | FeatureModality | FeatureParentWindow,
			Tolerates:     FeatureCheckboxInput | FeatureLocale,
			MaxButtons:    3,
			Combos:        StandardCombos,
			DefaultCancel: core.ButtonCancel,
		},
		External: helperTier("powershell", FeatureIcon|FeatureSeverity|FeatureEscapeDisabled|FeatureExplicitAck),
	}
}

// AndroidProfile is the activity bridge: positive, negative and neutral
// buttons only.
func AndroidProfile() Profile {
	honors := FeatureCustomLabels | FeatureParentWindow | FeatureTimeout | FeatureEscapeDisabled | FeatureExplicitAck
	return Profile{
		Platform: "Android",
		Rich: &TierSpec{
			Name:            "activity bridge",
			Honors:          honors,
			Tolerates:       AllFeatures &^ honors,
			MaxButtons:      3,
			TruncateButtons: true,
			DefaultCancel:   core.ButtonCancel,
		},
	}
}

// BrowserProfile is the JS host bridge with alert/confirm as the simple tier.
func BrowserProfile() Profile {
	return Profile{
		Platform: "Web",
		Rich: &TierSpec{
			Name:          "host dialog",
			Honors:        AllFeatures &^ passiveFeatures,
			Tolerates:     passiveFeatures,
			DefaultCancel: core.ButtonCancel,
		},
		Simple: &TierSpec{
			Name:          "window.confirm",
			Tolerates:     FeatureIcon | FeatureSeverity | passiveFeatures,
			Combos:        []Combo{ComboOK, ComboOKCancel},
			DefaultCancel: core.ButtonCancel,
		},
	}
}

// TerminalProfile renders in the controlling terminal.
func TerminalProfile() Profile {
	return Profile{
		Platform: "Terminal",
		Rich: &TierSpec{
			Name:          "terminal dialog",
			Honors:        AllFeatures &^ passiveFeatures,
			Tolerates:     passiveFeatures,
			DefaultCancel: core.ButtonCancel,
		},
	}
}
