// Package build holds build-time information, overwritten by linker flags
// at release time the way the original bakes a commit hash and build date
// into the binary alongside its fixed major/minor/patch version.
package build

// VersionMajor, VersionMinor and VersionPatch mirror the original's fixed
// DELTAMAKE_VERSION_MAJOR/MINOR/PATCH constants.
const (
	VersionMajor = 3
	VersionMinor = 0
	VersionPatch = 0
)

// Version is the application version string.
var Version = "3.0.0"

// Commit is the VCS commit hash, set by linker flags at release time.
var Commit = "unknown"

// Date is the build date, set by linker flags at release time.
var Date = "unknown"
