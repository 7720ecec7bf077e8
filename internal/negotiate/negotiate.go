// Package negotiate decides which tier renders a request and records every
// field the chosen tier drops.
package negotiate

import (
	"fmt"
	"strings"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
)

// Plan is the outcome of a successful negotiation.
type Plan struct {
	Platform string
	Tier     Tier
	Spec     *TierSpec

	// Combo is set when the tier uses fixed combinations.
	Combo *Combo

	// Buttons are the buttons to render, in render order.
	Buttons []core.Button
	// DefaultIndex and CancelIndex point into Buttons, or are -1.
	DefaultIndex int
	CancelIndex  int

	Requested Feature
	Dropped   Feature

	// Degradations holds one log line per dropped field, platform-prefixed
	// and without duplicates.
	Degradations []string
}

// Renders reports whether f was requested and is honored by the chosen tier.
func (p *Plan) Renders(f Feature) bool {
	return p.Requested.Has(f) && p.Spec.Honors.Has(f) && !p.Dropped.Has(f)
}

type lines struct {
	prefix string
	seen   map[string]struct{}
	out    []string
}

func (l *lines) add(format string, args ...any) {
	line := l.prefix + ": " + fmt.Sprintf(format, args...)
	if _, dup := l.seen[line]; dup {
		return
	}
	if l.seen == nil {
		l.seen = make(map[string]struct{})
	}
	l.seen[line] = struct{}{}
	l.out = append(l.out, line)
}

// Negotiate evaluates the rich, simple and external tiers in that order and
// returns the first one that is ready and can render req. The external tier
// is considered only when the rich tier is absent. If no tier is ready the
// error wraps core.ErrUninitialized when an eligible tier merely lacked
// setup, and core.ErrNotSupported otherwise.
func Negotiate(p Profile, probe Probe, req *core.Request, policy Policy) (*Plan, error) {
	requested := Extract(req)
	buttons := req.EffectiveButtons()

	notes := &lines{prefix: p.Platform}
	if req.VerificationText != "" && !req.ShowSuppressCheckbox {
		notes.add("verification text provided but the suppress checkbox is off; checkbox hidden.")
	}
	if req.ShowSuppressCheckbox && req.VerificationText == "" {
		notes.add("suppress checkbox requested without verification text; checkbox hidden.")
	}
	defaultIdx, cancelIdx := markedIndexes(buttons, notes)

	type candidate struct {
		tier  Tier
		avail Availability
	}
	candidates := []candidate{
		{TierRich, probe.Rich},
		{TierSimple, probe.Simple},
		{TierExternal, probe.External},
	}

	var skipped, reasons []string
	sawUninitialized := false
	for _, c := range candidates {
		spec := p.Spec(c.tier)
		if spec == nil {
			continue
		}
		if c.tier == TierExternal && probe.Rich != Absent {
			continue
		}
		if c.avail == Absent {
			skipped = append(skipped, fmt.Sprintf("%s unavailable", spec.Name))
			continue
		}
		plan, reason := fit(p, c.tier, spec, requested, buttons, policy)
		if plan == nil {
			reasons = append(reasons, spec.Name+": "+reason)
			skipped = append(skipped, fmt.Sprintf("%s cannot render this request (%s)", spec.Name, reason))
			continue
		}
		if c.avail == Uninitialized {
			sawUninitialized = true
			skipped = append(skipped, fmt.Sprintf("%s not initialized", spec.Name))
			continue
		}

		out := &lines{prefix: p.Platform}
		for _, s := range skipped {
			out.add("%s, using %s.", s, spec.Name)
		}
		for _, line := range notes.out {
			out.add("%s", strings.TrimPrefix(line, p.Platform+": "))
		}
		plan.resolveMarks(buttons, defaultIdx, cancelIdx, out)
		for _, line := range plan.Degradations {
			out.add("%s", strings.TrimPrefix(line, p.Platform+": "))
		}
		plan.Degradations = out.out
		return plan, nil
	}

	if sawUninitialized {
		return nil, core.Errorf(core.ErrUninitialized, "%s: dialog backend requires initialization", p.Platform)
	}
	if len(reasons) == 0 {
		return nil, core.Errorf(core.ErrNotSupported, "%s: no dialog backend available", p.Platform)
	}
	return nil, core.Errorf(core.ErrNotSupported, "%s: no dialog backend can render this request: %s",
		p.Platform, strings.Join(reasons, "; "))
}

func fit(p Profile, tier Tier, spec *TierSpec, requested Feature, buttons []core.Button, policy Policy) (*Plan, string) {
	unsupported := requested &^ spec.Honors
	if hard := unsupported &^ spec.Tolerates; hard != 0 {
		return nil, "requires " + hard.String()
	}
	if policy.RejectSafetyDegradation {
		if lost := unsupported & SafetyFeatures; lost != 0 {
			return nil, "would drop " + lost.String()
		}
	}

	plan := &Plan{
		Platform:  p.Platform,
		Tier:      tier,
		Spec:      spec,
		Requested: requested,
		Dropped:   unsupported,
	}
	deg := &lines{prefix: p.Platform}

	switch {
	case spec.Combos != nil:
		combo, ordered, ok := MatchCombo(spec.Combos, buttons)
		if !ok {
			return nil, "button set matches no native combination"
		}
		plan.Combo = &combo
		plan.Buttons = ordered
	case spec.MaxButtons > 0 && len(buttons) > spec.MaxButtons:
		if !spec.TruncateButtons {
			return nil, fmt.Sprintf("supports at most %d button(s)", spec.MaxButtons)
		}
		plan.Buttons = append([]core.Button(nil), buttons[:spec.MaxButtons]...)
		deg.add("only the first %d buttons are supported by %s; ignoring %d.",
			spec.MaxButtons, spec.Name, len(buttons)-spec.MaxButtons)
	default:
		plan.Buttons = append([]core.Button(nil), buttons...)
	}

	unsupported.Each(func(f Feature) {
		deg.add("%s not supported by %s and will be ignored.", featureNames[f], spec.Name)
	})
	// One checkbox per dialog: the verification checkbox wins.
	both := FeatureVerification | FeatureCheckboxInput
	if requested&both == both && spec.Honors&both == both {
		plan.Dropped |= FeatureCheckboxInput
		deg.add("%s is not shown alongside the verification checkbox and will be ignored.", featureNames[FeatureCheckboxInput])
	}
	plan.Degradations = deg.out
	return plan, ""
}

// markedIndexes applies the lowest-index-wins rule to default and cancel
// marks and logs the marks it ignores.
func markedIndexes(buttons []core.Button, notes *lines) (defaultIdx, cancelIdx int) {
	defaultIdx, cancelIdx = -1, -1
	for i, b := range buttons {
		if b.IsDefault {
			if defaultIdx < 0 {
				defaultIdx = i
			} else {
				notes.add("button %q is also marked default; using %q.", b.Label, buttons[defaultIdx].Label)
			}
		}
		if b.IsCancel {
			if cancelIdx < 0 {
				cancelIdx = i
			} else {
				notes.add("button %q is also marked cancel; using %q.", b.Label, buttons[cancelIdx].Label)
			}
		}
	}
	return defaultIdx, cancelIdx
}

func (p *Plan) resolveMarks(requested []core.Button, defaultIdx, cancelIdx int, out *lines) {
	p.DefaultIndex, p.CancelIndex = -1, -1
	if defaultIdx >= 0 {
		p.DefaultIndex = indexOf(p.Buttons, requested[defaultIdx].ID)
		if p.DefaultIndex < 0 {
			out.add("default button %q is not rendered by %s.", requested[defaultIdx].Label, p.Spec.Name)
		}
	}
	if cancelIdx >= 0 {
		p.CancelIndex = indexOf(p.Buttons, requested[cancelIdx].ID)
		if p.CancelIndex < 0 {
			out.add("cancel button %q is not rendered by %s.", requested[cancelIdx].Label, p.Spec.Name)
		}
	}
}

// MarkedCancel returns the id of the rendered button marked cancel, or
// core.ButtonNone.
func (p *Plan) MarkedCancel() core.ButtonID {
	if p.CancelIndex < 0 {
		return core.ButtonNone
	}
	return p.Buttons[p.CancelIndex].ID
}

func indexOf(buttons []core.Button, id core.ButtonID) int {
	for i, b := range buttons {
		if b.ID == id {
			return i
		}
	}
	return -1
}
