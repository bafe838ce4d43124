// Package semver provides an immutable semantic version type used to
// validate project versions and compare tags.
package semver

import (
	"errors"
	"regexp"
	"strconv"
)

var versionRegex = regexp.MustCompile(
	`^(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:-([^+]*))?(?:\+(.*))?$`,
)

// SemanticVersion represents a semantic version.
// This type is immutable; all methods return new values.
type SemanticVersion struct {
	Major      int64
	Minor      int64
	Patch      int64
	PreRelease string
}

// TryParse attempts to parse a version string with an optional tag prefix
// regex. Returns the parsed version and true if successful.
func TryParse(s, tagPrefix string) (SemanticVersion, bool) {
	v, err := Parse(s, tagPrefix)
	if err != nil {
		return SemanticVersion{}, false
	}
	return v, true
}

// Parse parses a version string with an optional tag prefix regex.
// If tagPrefix is non-empty, the string must start with a match for the
// prefix. Missing minor and patch components default to zero.
func Parse(s, tagPrefix string) (SemanticVersion, error) {
	remaining := s

	if tagPrefix != "" {
		prefixRegex, err := regexp.Compile("^(?:" + tagPrefix + ")")
		if err != nil {
			return SemanticVersion{}, errors.New("invalid tag prefix regex: " + err.Error())
		}
		loc := prefixRegex.FindStringIndex(remaining)
		if loc == nil {
			return SemanticVersion{}, errors.New("version string does not match tag prefix: " + s)
		}
		remaining = remaining[loc[1]:]
	}

	matches := versionRegex.FindStringSubmatch(remaining)
	if matches == nil {
		return SemanticVersion{}, errors.New("invalid version format: " + s)
	}

	var v SemanticVersion

	major, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return SemanticVersion{}, errors.New("invalid major version: " + matches[1])
	}
	v.Major = major

	if matches[2] != "" {
		minor, err := strconv.ParseInt(matches[2], 10, 64)
		if err != nil {
			return SemanticVersion{}, errors.New("invalid minor version: " + matches[2])
		}
		v.Minor = minor
	}

	if matches[3] != "" {
		patch, err := strconv.ParseInt(matches[3], 10, 64)
		if err != nil {
			return SemanticVersion{}, errors.New("invalid patch version: " + matches[3])
		}
		v.Patch = patch
	}

	v.PreRelease = matches[4]

	return v, nil
}

// CompareTo compares two SemanticVersions.
// Returns a negative value, zero, or a positive value. A pre-release
// sorts before the release with the same core, per SemVer 2.0.
func (v SemanticVersion) CompareTo(other SemanticVersion) int {
	if v.Major != other.Major {
		return sign(v.Major - other.Major)
	}
	if v.Minor != other.Minor {
		return sign(v.Minor - other.Minor)
	}
	if v.Patch != other.Patch {
		return sign(v.Patch - other.Patch)
	}

	switch {
	case v.PreRelease == other.PreRelease:
		return 0
	case v.PreRelease == "":
		return 1
	case other.PreRelease == "":
		return -1
	case v.PreRelease < other.PreRelease:
		return -1
	default:
		return 1
	}
}

// String returns the SemVer 2.0 format (e.g., "1.2.3" or "1.2.3-rc.1").
func (v SemanticVersion) String() string {
	base := strconv.FormatInt(v.Major, 10) + "." +
		strconv.FormatInt(v.Minor, 10) + "." +
		strconv.FormatInt(v.Patch, 10)
	if v.PreRelease != "" {
		return base + "-" + v.PreRelease
	}
	return base
}

func sign(d int64) int {
	if d > 0 {
		return 1
	}
	return -1
}
