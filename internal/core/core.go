// Package core holds the versioned request/result contract shared by every
// backend: enumerations, struct shapes, size and version checks, and the
// status taxonomy.
package core

import "fmt"

const (
	AppName        = "NativeMessageBox"
	ConfigFileName = "config.yaml"
	AppLogName     = "nmb.log"
	SuppressName   = "suppressed.json"
	VersionMajor   = 0
	VersionMinor   = 1
	VersionPatch   = 0
)

// ABIVersion is the contract version this runtime implements.
const ABIVersion = uint32(VersionMajor&0xFF)<<16 | uint32(VersionMinor&0xFF)<<8 | uint32(VersionPatch&0xFF)

// MakeVersion packs major, minor and patch into a 24-bit version stamp.
func MakeVersion(major, minor, patch uint8) uint32 {
	return uint32(major)<<16 | uint32(minor)<<8 | uint32(patch)
}

// SplitVersion unpacks a version stamp produced by MakeVersion.
func SplitVersion(v uint32) (major, minor, patch uint8) {
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// VersionString renders a version stamp as "major.minor.patch".
func VersionString(v uint32) string {
	major, minor, patch := SplitVersion(v)
	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}
