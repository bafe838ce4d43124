package commit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChangelogWriter_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	w := NewChangelogWriter(path)

	require.NoError(t, w.Update("## 1.0.0 (2026-01-01)\n\n- first release\n"))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(body), "# Changelog\n\n## 1.0.0"))
}

func TestChangelogWriter_PrependsNewRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	w := NewChangelogWriter(path)

	require.NoError(t, w.Update("## 1.0.0 (2026-01-01)\n"))
	require.NoError(t, w.Update("## 1.1.0 (2026-02-01)\n"))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(body)
	require.Less(t, strings.Index(text, "## 1.1.0"), strings.Index(text, "## 1.0.0"))
	require.Equal(t, 1, strings.Count(text, "# Changelog\n"))
}

func TestNewChangelogWriter_DefaultFilename(t *testing.T) {
	require.Equal(t, "CHANGELOG.md", NewChangelogWriter("").Filename)
}
