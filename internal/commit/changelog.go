package commit

import (
	"fmt"
	"os"
	"strings"
)

const changelogHeader = "# Changelog"

// ChangelogWriter maintains the project changelog file, newest release
// first under a fixed top-level header.
type ChangelogWriter struct {
	Filename string
}

// NewChangelogWriter creates a writer for the given file, defaulting to
// CHANGELOG.md.
func NewChangelogWriter(filename string) *ChangelogWriter {
	if filename == "" {
		filename = "CHANGELOG.md"
	}
	return &ChangelogWriter{Filename: filename}
}

// Update prepends the new release section, preserving previous sections.
// A missing changelog file is created.
func (w *ChangelogWriter) Update(body string) error {
	var previous string
	raw, err := os.ReadFile(w.Filename)
	switch {
	case err == nil:
		previous = strings.TrimPrefix(string(raw), changelogHeader+"\n")
		previous = strings.TrimLeft(previous, "\n")
	case os.IsNotExist(err):
		previous = ""
	default:
		return fmt.Errorf("reading %s: %w", w.Filename, err)
	}

	var b strings.Builder
	b.WriteString(changelogHeader + "\n\n")
	b.WriteString(strings.TrimRight(body, "\n") + "\n")
	if previous != "" {
		b.WriteString("\n" + previous)
	}

	if err := os.WriteFile(w.Filename, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", w.Filename, err)
	}
	return nil
}
