package app

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SpecKind represents the kind of a dependency version specifier
type SpecKind string

const (
	SpecRange    SpecKind = "range"
	SpecProtocol SpecKind = "protocol"
	SpecPath     SpecKind = "path"
	SpecTag      SpecKind = "tag"
	SpecUnknown  SpecKind = "unknown"
)

// protocolPrefixes are specifiers resolved by the package manager
// rather than by version matching
var protocolPrefixes = []string{
	"git+", "git:", "github:", "gitlab:", "bitbucket:", "gist:",
	"http://", "https://", "file:", "link:", "npm:", "workspace:", "portal:", "patch:",
}

var tagPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._-]*$`)

// githubShorthand matches "owner/repo" with an optional "#ref"
var githubShorthand = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*/[A-Za-z0-9_.-]+(#.+)?$`)

// DetectSpecKind classifies a dependency specifier.
// Checks run from most to least specific.
func DetectSpecKind(spec string) SpecKind {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return SpecUnknown
	}

	lower := strings.ToLower(spec)
	for _, prefix := range protocolPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return SpecProtocol
		}
	}

	if strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") ||
		strings.HasPrefix(spec, "/") || strings.HasPrefix(spec, "~/") {
		return SpecPath
	}

	if _, err := semver.NewConstraint(spec); err == nil {
		return SpecRange
	}

	if tagPattern.MatchString(spec) {
		return SpecTag
	}

	if githubShorthand.MatchString(spec) {
		return SpecProtocol
	}

	return SpecUnknown
}

// ValidateSpec returns an error when spec is neither a semver range nor
// one of the non-range specifier forms
func ValidateSpec(spec string) error {
	if DetectSpecKind(spec) != SpecUnknown {
		return nil
	}
	if _, err := semver.NewConstraint(strings.TrimSpace(spec)); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidSpec, spec, err)
	}
	return fmt.Errorf("%w %q", ErrInvalidSpec, spec)
}

// Section names a dependency group of a package manifest
type Section string

const (
	SectionDependencies         Section = "dependencies"
	SectionDevDependencies      Section = "devDependencies"
	SectionPeerDependencies     Section = "peerDependencies"
	SectionOptionalDependencies Section = "optionalDependencies"
)

// AllSections returns every dependency section in conventional order
func AllSections() []Section {
	return []Section{
		SectionDependencies,
		SectionDevDependencies,
		SectionPeerDependencies,
		SectionOptionalDependencies,
	}
}

// IsValidSection checks whether s names a known dependency section
func IsValidSection(s Section) bool {
	for _, known := range AllSections() {
		if s == known {
			return true
		}
	}
	return false
}
