package layer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/projflow/projflow/internal/runtime"
	"github.com/projflow/projflow/internal/settings"
)

// Gather walks a template package's layers directory and returns the
// non-empty layers to materialize, in discovery order. A subdirectory is
// a layer iff a sibling JSON descriptor with the same name exists; a
// layer's internal tree is never descended into looking for more layers.
func Gather(packageRoot string, ctx settings.Context) ([]*LayerInfo, error) {
	layersDir := filepath.Join(packageRoot, "layers")
	entries, err := os.ReadDir(layersDir)
	if err != nil {
		return nil, fmt.Errorf("reading layers directory: %w", err)
	}

	var layers []*LayerInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		layerDir := filepath.Join(layersDir, entry.Name())
		if _, err := os.Stat(layerDir + ".json"); err != nil {
			continue
		}
		li, err := FromDir(layerDir, ctx)
		if err != nil {
			return nil, err
		}
		if len(li.Files) > 0 {
			layers = append(layers, li)
		}
	}
	return layers, nil
}

// CopyLicense materializes the license template named by the COPY.LICENSE
// setting as a degenerate one-file layer, written to LICENSE in the
// project root. An unset or unknown license is a no-op.
func CopyLicense(licensesDir string, rt *runtime.Runtime, ctx settings.Context) error {
	license := ctx.GetString("COPY.LICENSE")
	if license == "" {
		return nil
	}
	if _, err := os.Stat(filepath.Join(licensesDir, license+TemplateExt)); err != nil {
		return fmt.Errorf("unknown license %s: %w", license, err)
	}

	info := FileInfo{Src: license + TemplateExt, Dst: "LICENSE", IsMustache: true}
	return info.Run(licensesDir, rt, ctx)
}
