package platform

import (
	"errors"
	"fmt"
)

// ErrUnsupported indicates that no release artifact exists for the host
// OS/architecture combination.
var ErrUnsupported = errors.New("unsupported platform")

// TargetPolicy controls the ordering of candidate targets where upstream
// publishes more than one build variant for a platform.
type TargetPolicy struct {
	// PreferStatic puts statically linked (musl) Linux builds before the
	// glibc ones. The static build is the more portable choice, but the
	// ordering stays configurable because upstream artifact availability
	// shifts between releases.
	PreferStatic bool
}

// targetTable maps OS then architecture to the candidate artifact targets in
// default preference order (static build first where both variants exist).
// Nested lookup, deliberately not a concatenated string key.
var targetTable = map[string]map[string][]string{
	"darwin": {
		"arm64": {"aarch64-apple-darwin"},
		"amd64": {"x86_64-apple-darwin"},
	},
	"linux": {
		"amd64": {"x86_64-unknown-linux-musl", "x86_64-unknown-linux-gnu"},
		"arm64": {"aarch64-unknown-linux-musl", "aarch64-unknown-linux-gnu"},
	},
	"windows": {
		"arm64": {"aarch64-pc-windows-msvc"},
		"amd64": {"x86_64-pc-windows-msvc"},
	},
}

// Targets returns the ordered, non-empty list of candidate artifact targets
// for the detected platform. An unknown OS/architecture pair is an error,
// never an empty result.
//
// On Alpine the policy is overridden: only the musl build can run there, so
// musl always comes first regardless of PreferStatic.
func Targets(info *Info, policy TargetPolicy) ([]string, error) {
	if info == nil {
		return nil, fmt.Errorf("platform info is required")
	}

	byArch, ok := targetTable[info.OS]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnsupported, info.OS, info.Arch)
	}
	targets, ok := byArch[info.Arch]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnsupported, info.OS, info.Arch)
	}

	// Copy before reordering; the table is shared package state.
	ordered := make([]string, len(targets))
	copy(ordered, targets)

	if info.IsLinux() && !policy.PreferStatic && info.Family != FamilyAlpine {
		reverse(ordered)
	}

	return ordered, nil
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
