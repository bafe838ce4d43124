// Package commit classifies commit messages into semantic-versioning
// impact levels and assembles changelog content from a commit range.
package commit

import "regexp"

// Level ranks the magnitude of change a batch of commits implies. The
// ordering is load-bearing: the release bump maps LevelBreaking-minus-
// level onto a version component index, so exactly the three non-benign
// levels correspond to major, minor, and patch.
type Level int

const (
	LevelBenign Level = iota
	LevelPatch
	LevelFeature
	LevelBreaking
)

func (l Level) String() string {
	switch l {
	case LevelBenign:
		return "benign"
	case LevelPatch:
		return "patch"
	case LevelFeature:
		return "feature"
	case LevelBreaking:
		return "breaking"
	default:
		return "unknown"
	}
}

// ParseLevel resolves a user-supplied level name, for the --level
// override flag.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "patch", "fix":
		return LevelPatch, true
	case "feature", "feat", "minor":
		return LevelFeature, true
	case "breaking", "major":
		return LevelBreaking, true
	case "benign", "none":
		return LevelBenign, true
	}
	return LevelBenign, false
}

// Conventional Commits patterns.
var (
	ccTypeRe         = regexp.MustCompile(`^(\w+)(?:\((.+?)\))?(!)?:\s(.*)`)
	breakingFooterRe = regexp.MustCompile(`(?m)^BREAKING[ -]CHANGE:\s`)
)

// Classify determines the level a single commit message implies under the
// Conventional Commits convention: a breaking marker or footer means
// breaking, feat means feature, fix means patch, anything else is benign.
func Classify(message string) Level {
	if breakingFooterRe.MatchString(message) {
		return LevelBreaking
	}
	m := ccTypeRe.FindStringSubmatch(message)
	if m == nil {
		return LevelBenign
	}
	if m[3] == "!" {
		return LevelBreaking
	}
	switch m[1] {
	case "feat":
		return LevelFeature
	case "fix":
		return LevelPatch
	}
	return LevelBenign
}
