package cmd

import (
	"os"
	goruntime "runtime"

	"github.com/spf13/cobra"

	"github.com/projflow/projflow/internal/config"
	"github.com/projflow/projflow/internal/steps"
)

var flagBuildDir string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the post-build steps for this project",
	Long:  "Runs the registered post-build steps (signing among them) in constraint order, skipping steps that do not apply on this host.",
	RunE:  runRunE,
}

func init() {
	runCmd.Flags().StringVar(&flagBuildDir, "build-dir", "build", "build tree root scanned by the steps")
	rootCmd.AddCommand(runCmd)
}

func runRunE(*cobra.Command, []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(flagConfig, workDir)
	if err != nil {
		return err
	}
	rt := newRuntime()

	registry := steps.NewRegistry(&steps.SignStep{
		Signer: steps.DetectSigner(),
		Config: steps.SignConfig{
			BuildDir:    flagBuildDir,
			Directories: cfg.Binaries.Directories,
			Exclude:     cfg.Binaries.Exclude,
			OS:          goruntime.GOOS,
		},
	})
	return registry.Run(rt)
}
