// Package cmd wires the projflow command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/projflow/projflow/internal/runtime"
)

// Global flags shared across commands.
var (
	flagDryRun  bool
	flagSilent  bool
	flagVerbose bool
	flagColor   string
	flagConfig  string
)

// rootCmd is the top-level command for projflow.
var rootCmd = &cobra.Command{
	Use:   "projflow",
	Short: "Project scaffolding and release orchestration",
	Long:  "projflow instantiates parameterized project templates and drives semantic-version releases from git history.",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagDryRun, "dry-run", "n", false, "print what would happen without touching disk or the VCS")
	rootCmd.PersistentFlags().BoolVarP(&flagSilent, "silent", "s", false, "suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "color output: auto, always, or never")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: auto-detect)")
}

// newRuntime builds the Runtime from the resolved global flags.
func newRuntime() *runtime.Runtime {
	rt := runtime.New()
	rt.DryRun = flagDryRun
	rt.Silent = flagSilent
	rt.Verbose = flagVerbose
	rt.UseColor = runtime.ResolveColor(runtime.ColorMode(flagColor))
	runtime.SetupLogger(rt)
	return rt
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
