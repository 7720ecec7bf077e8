//go:build !cgo

package platform

const cgoEnabled = false
