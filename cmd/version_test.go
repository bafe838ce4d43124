package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionCmd_PrintsBuildVersion(t *testing.T) {
	Version = "1.2.3-test"
	defer func() { Version = "dev" }()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	require.Equal(t, "1.2.3-test\n", buf.String())
}
