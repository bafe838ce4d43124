package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/projflow/projflow/internal/runtime"
)

var bootstrapCmd = &cobra.Command{
	Use:    "bootstrap",
	Short:  "Finish CI bootstrapping",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		// Later workflow steps inherit the PATH this process resolved.
		return runtime.AppendCIEnv("GITHUB_ENV", "PATH", os.Getenv("PATH"))
	},
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
}
