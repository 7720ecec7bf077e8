// Package platform selects, at build time, the dialog machinery of the
// target: its negotiation profile and one renderer per available tier.
package platform

import (
	"fmt"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/dialog"
	"github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"
	"github.com/wieslawsoltes/NativeMessageBox/internal/platform/bridge"
)

// Tier is one rendering tier of a backend.
type Tier struct {
	Renderer dialog.Renderer
	// Probe reports the tier's availability. A nil Probe means Absent.
	Probe func() negotiate.Availability
}

func (t Tier) availability() negotiate.Availability {
	if t.Probe == nil || t.Renderer == nil {
		return negotiate.Absent
	}
	return t.Probe()
}

// Backend is the build target's dialog machinery.
type Backend struct {
	Profile  negotiate.Profile
	Rich     Tier
	Simple   Tier
	External Tier

	// Bridge receives host completions on targets that render through a
	// host runtime.
	Bridge *bridge.Bridge

	// Init and Close run on Initialize and Shutdown.
	Init  func(opts *core.InitializeOptions) error
	Close func()
}

// Initialize hands the initialize options to the backend.
func (b *Backend) Initialize(opts *core.InitializeOptions) error {
	if b.Init == nil {
		return nil
	}
	return b.Init(opts)
}

// Shutdown releases what Initialize set up.
func (b *Backend) Shutdown() {
	if b.Close != nil {
		b.Close()
	}
}

// Probe reports the availability of every tier.
func (b *Backend) Probe() negotiate.Probe {
	return negotiate.Probe{
		Rich:     b.Rich.availability(),
		Simple:   b.Simple.availability(),
		External: b.External.availability(),
	}
}

// Renderer returns the renderer of tier t.
func (b *Backend) Renderer(t negotiate.Tier) (dialog.Renderer, error) {
	var r dialog.Renderer
	switch t {
	case negotiate.TierRich:
		r = b.Rich.Renderer
	case negotiate.TierSimple:
		r = b.Simple.Renderer
	case negotiate.TierExternal:
		r = b.External.Renderer
	}
	if r == nil {
		return nil, fmt.Errorf("%w: %s: no renderer for the %s tier", core.ErrNotSupported, b.Profile.Platform, t)
	}
	return r, nil
}

// Complete delivers a host completion to the backend's bridge.
func (b *Backend) Complete(handle string, response []byte) error {
	if b.Bridge == nil {
		return fmt.Errorf("%w: %s has no host dialog bridge", core.ErrNotSupported, b.Profile.Platform)
	}
	return b.Bridge.CompleteJSON(handle, response)
}

// Ready is a Probe for a tier that is always available.
func Ready() negotiate.Availability { return negotiate.Ready }
