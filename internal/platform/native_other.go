//go:build !linux && !android && !freebsd && !openbsd && !netbsd && !dragonfly && !(darwin && !ios) && !windows && !(js && wasm) && !nmb_tui

package platform

import "github.com/wieslawsoltes/NativeMessageBox/internal/negotiate"

// Native returns a backend with no tiers; every Show reports not-supported.
func Native() *Backend {
	return &Backend{Profile: negotiate.Profile{Platform: "Unsupported"}}
}
