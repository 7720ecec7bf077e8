//go:build cgo

package platform

// cgoEnabled reports whether fyne's GL driver can be linked into this build.
const cgoEnabled = true
