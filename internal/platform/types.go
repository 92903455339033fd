// Package platform detects the host operating system and CPU architecture
// and maps them to the ordered list of release-artifact targets that can run
// there.
//
// Detection uses runtime.GOOS/GOARCH for the basics and gopsutil for Linux
// distribution details. Distribution detection degrades gracefully: when it
// fails, target selection still works from OS and architecture alone. The
// distribution family matters on Linux because musl-linked builds are the
// only ones that run on Alpine, while glibc distributions can fall back to
// gnu builds.
package platform

import "context"

// Linux distribution family constants. Canonical names for grouping related
// distributions as reported by gopsutil.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyGentoo  = "gentoo"  // Gentoo
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// Info contains platform detection information.
type Info struct {
	OS       string // "linux", "darwin", "windows"
	Arch     string // "amd64", "arm64" (normalized)
	ArchRaw  string // original GOARCH value
	Platform string // distro ID (Linux only, e.g. "ubuntu", "alpine")
	Family   string // canonical family (e.g. "debian", "alpine")
	Version  string // distro version (Linux only, e.g. "22.04")
}

// IsLinux reports whether the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsWindows reports whether the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// Detector detects host platform information.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
