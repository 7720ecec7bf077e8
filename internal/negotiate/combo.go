package negotiate

import (
	"strings"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
)

// Combo is a fixed button combination offered by a simple native dialog.
type Combo struct {
	Name    string
	Buttons []core.ButtonID
}

var (
	ComboOK               = Combo{"OK", []core.ButtonID{core.ButtonOK}}
	ComboOKCancel         = Combo{"OK/Cancel", []core.ButtonID{core.ButtonOK, core.ButtonCancel}}
	ComboYesNo            = Combo{"Yes/No", []core.ButtonID{core.ButtonYes, core.ButtonNo}}
	ComboRetryCancel      = Combo{"Retry/Cancel", []core.ButtonID{core.ButtonRetry, core.ButtonCancel}}
	ComboYesNoCancel      = Combo{"Yes/No/Cancel", []core.ButtonID{core.ButtonYes, core.ButtonNo, core.ButtonCancel}}
	ComboAbortRetryIgnore = Combo{"Abort/Retry/Ignore", []core.ButtonID{core.ButtonAbort, core.ButtonRetry, core.ButtonIgnore}}
)

// StandardCombos is the declared matching order.
var StandardCombos = []Combo{
	ComboOK,
	ComboOKCancel,
	ComboYesNo,
	ComboRetryCancel,
	ComboYesNoCancel,
	ComboAbortRetryIgnore,
}

// MatchCombo tests combos in order and returns the first one whose ids are
// exactly the ids of buttons, with every label equal to the canonical label
// (ignoring case) and no per-button styling. The returned buttons are
// reordered to the combination's native order.
func MatchCombo(combos []Combo, buttons []core.Button) (Combo, []core.Button, bool) {
	byID := make(map[core.ButtonID]core.Button, len(buttons))
	for _, b := range buttons {
		if b.Description != "" || b.Kind != core.KindDefault {
			return Combo{}, nil, false
		}
		if !strings.EqualFold(b.Label, b.ID.DefaultLabel()) {
			return Combo{}, nil, false
		}
		byID[b.ID] = b
	}
	for _, c := range combos {
		if len(c.Buttons) != len(buttons) {
			continue
		}
		ordered := make([]core.Button, 0, len(c.Buttons))
		for _, id := range c.Buttons {
			b, ok := byID[id]
			if !ok {
				break
			}
			ordered = append(ordered, b)
		}
		if len(ordered) == len(c.Buttons) {
			return c, ordered, true
		}
	}
	return Combo{}, nil, false
}
