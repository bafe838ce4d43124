package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.yml"), []byte(content), 0o644))
}

func TestYAMLSuite_Detect(t *testing.T) {
	dir := t.TempDir()
	suite := YAMLSuite{}
	require.False(t, suite.Detect(dir))

	writeManifest(t, dir, "name: demo\nversion: 1.0.0\n")
	require.True(t, suite.Detect(dir))
}

func TestYAMLSuite_Load(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "name: demo\nversion: 1.2.3\ndescription: a demo\n")

	p, err := YAMLSuite{}.Load(dir)
	require.NoError(t, err)
	require.Equal(t, Project{Name: "demo", Version: "1.2.3"}, p)
}

func TestYAMLSuite_LoadRejectsBadVersion(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "name: demo\nversion: not-a-version\n")

	_, err := YAMLSuite{}.Load(dir)
	require.ErrorContains(t, err, "not-a-version")
}

func TestYAMLSuite_SetVersion(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "name: demo\nversion: 1.2.3\ndescription: keep me\n")

	suite := YAMLSuite{}
	require.NoError(t, suite.SetVersion(dir, "1.3.0"))

	p, err := suite.Load(dir)
	require.NoError(t, err)
	require.Equal(t, "1.3.0", p.Version)

	// Other manifest fields survive the rewrite.
	raw, err := os.ReadFile(filepath.Join(dir, "project.yml"))
	require.NoError(t, err)
	require.Contains(t, string(raw), "keep me")
	require.Contains(t, string(raw), "name: demo")
}

func TestRegistry_Find(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "name: demo\nversion: 0.1.0\n")

	reg := NewRegistry(YAMLSuite{})
	suite, p, err := reg.Find(dir)
	require.NoError(t, err)
	require.Equal(t, "yaml", suite.Name())
	require.Equal(t, "0.1.0", p.Version)
}

func TestRegistry_FindNoMatch(t *testing.T) {
	reg := NewRegistry(YAMLSuite{})
	_, _, err := reg.Find(t.TempDir())
	require.ErrorIs(t, err, ErrNoProject)
}
