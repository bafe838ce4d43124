package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/projflow/projflow/internal/config"
	"github.com/projflow/projflow/internal/layer"
	"github.com/projflow/projflow/internal/settings"
)

var (
	flagYes     bool
	flagProject string
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Instantiate the project template into a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  initRunE,
}

func init() {
	initCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "accept every default answer")
	initCmd.Flags().StringVar(&flagProject, "project", "", "restrict settings to one project flavor")
	rootCmd.AddCommand(initCmd)
}

func initRunE(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving target directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating target directory: %w", err)
	}

	cfg, err := config.Load(flagConfig, dir)
	if err != nil {
		return err
	}
	templates, err := filepath.Abs(cfg.Templates)
	if err != nil {
		return fmt.Errorf("resolving template package: %w", err)
	}

	rt := newRuntime()

	var prompter settings.Prompter = settings.NonInteractive{}
	if !flagYes {
		prompter = &linePrompter{in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
	}

	ctx, err := settings.Resolve(settings.BuiltinPools(dir), flagProject, cfg.Defaults, prompter)
	if err != nil {
		return err
	}

	// Destinations are relative to the project root.
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("entering target directory: %w", err)
	}

	layers, err := layer.Gather(templates, ctx)
	if err != nil {
		return err
	}
	for _, li := range layers {
		if err := li.Run(rt, ctx); err != nil {
			return err
		}
	}

	return layer.CopyLicense(filepath.Join(templates, "licenses"), rt, ctx)
}
