// Package version resolves a user-supplied version request against the set
// of release tags published upstream.
//
// A request is either the literal "latest" (accept any published version,
// pick the highest) or a semantic-version range expression such as "^0.12.0"
// or ">=0.11, <0.13". Tags that do not parse as semantic versions (e.g.
// "nightly") are skipped; they never fail resolution on their own.
package version

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Latest is the request string meaning "highest published version".
const Latest = "latest"

var (
	// ErrNoMatch indicates that no published release satisfies the request.
	ErrNoMatch = errors.New("no release satisfies the requested version")
	// ErrBadConstraint indicates the request is neither "latest" nor a
	// parseable semantic-version range.
	ErrBadConstraint = errors.New("invalid version constraint")
)

// Resolve returns the highest semantic version among tags that satisfies the
// request, rendered without a leading "v". Tag ordering is irrelevant; only
// semantic-version precedence decides the winner.
func Resolve(tags []string, request string) (string, error) {
	valid := parseTags(tags)
	if len(valid) == 0 {
		return "", fmt.Errorf("%w: no valid semantic versions among %d release tags", ErrNoMatch, len(tags))
	}

	matches := valid
	if !IsLatest(request) {
		constraint, err := semver.NewConstraint(request)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrBadConstraint, request, err)
		}

		matches = make([]*semver.Version, 0, len(valid))
		for _, v := range valid {
			if constraint.Check(v) {
				matches = append(matches, v)
			}
		}
		if len(matches) == 0 {
			return "", fmt.Errorf("%w: %q (checked %d versions)", ErrNoMatch, request, len(valid))
		}
	}

	sort.Sort(semver.Collection(matches))
	return matches[len(matches)-1].String(), nil
}

// IsLatest reports whether the request asks for the highest published
// version rather than a constrained range.
func IsLatest(request string) bool {
	return strings.EqualFold(strings.TrimSpace(request), Latest)
}

// parseTags converts release tags to semantic versions, dropping anything
// that does not parse. semver.NewVersion already tolerates a leading "v".
func parseTags(tags []string) []*semver.Version {
	versions := make([]*semver.Version, 0, len(tags))
	for _, tag := range tags {
		v, err := semver.NewVersion(strings.TrimSpace(tag))
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	return versions
}
