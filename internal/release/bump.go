package release

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/projflow/projflow/internal/commit"
)

// Bump computes the next version string for a commit level.
//
// The version splits on the first '-' into a core and an optional
// stability suffix; the suffix is carried over verbatim. The core is
// normalized to exactly three integer components (zero-padded or
// truncated). A non-benign level increments the component indexed by
// LevelBreaking minus the level (breaking bumps major, feature bumps
// minor, patch bumps patch) and zeroes everything to its right. A
// benign level leaves the components untouched.
//
// The index arithmetic assumes exactly three ranked non-benign levels
// mapping onto the three components; commit.Level pins that ordering.
func Bump(version string, level commit.Level) (string, error) {
	core, stability, found := strings.Cut(version, "-")
	if found {
		stability = "-" + stability
	}

	var parts [3]int
	for i, s := range strings.SplitN(core, ".", 4) {
		if i >= 3 {
			break
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return "", fmt.Errorf("invalid version component %q in %q", s, version)
		}
		parts[i] = n
	}

	if level > commit.LevelBenign {
		idx := int(commit.LevelBreaking - level)
		parts[idx]++
		for i := idx + 1; i < len(parts); i++ {
			parts[i] = 0
		}
	}

	return fmt.Sprintf("%d.%d.%d%s", parts[0], parts[1], parts[2], stability), nil
}
