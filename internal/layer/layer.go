package layer

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/projflow/projflow/internal/render"
	"github.com/projflow/projflow/internal/runtime"
	"github.com/projflow/projflow/internal/settings"
)

// Descriptor is the JSON file adjacent to a layer directory: an optional
// layer-wide condition plus per-file overrides keyed by slash-separated
// relative path.
type Descriptor struct {
	When     string               `json:"when"`
	FileList map[string]FileEntry `json:"filelist"`
}

// LayerInfo is one template layer: its root directory, the surviving
// files sorted by destination, and the layer-wide condition.
type LayerInfo struct {
	Root  string
	Files []FileInfo
	When  string
}

// cacheDirs and compiledExts name scan artifacts never treated as
// template content.
var (
	cacheDirs    = map[string]bool{"__pycache__": true}
	compiledExts = map[string]bool{".pyc": true, ".pyo": true, ".pyd": true}
)

// FromDir loads a layer from disk: parse the adjacent descriptor,
// enumerate the layer's files, resolve destinations, sort by destination
// path, and filter out every file whose own condition or layer condition
// evaluates false under the context.
//
// The filter works by rendering the layer's composed conditional template
// and keeping the files whose destination lines survived. One renderer
// thereby resolves the nested file-inside-layer AND without a bespoke
// boolean evaluator.
func FromDir(layerDir string, ctx settings.Context) (*LayerInfo, error) {
	raw, err := os.ReadFile(layerDir + ".json")
	if err != nil {
		return nil, fmt.Errorf("reading layer descriptor: %w", err)
	}
	var desc Descriptor
	if err := json.Unmarshal(raw, &desc); err != nil {
		return nil, fmt.Errorf("parsing layer descriptor %s.json: %w", filepath.Base(layerDir), err)
	}

	sources, err := scanSources(layerDir)
	if err != nil {
		return nil, err
	}

	files := make([]FileInfo, 0, len(sources))
	for _, src := range sources {
		info, err := NewFileInfo(src, desc.FileList, ctx)
		if err != nil {
			return nil, err
		}
		files = append(files, info)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Dst < files[j].Dst })

	li := &LayerInfo{Root: layerDir, Files: files, When: desc.When}

	rendered, err := render.Render(li.Template(), ctx.Nest())
	if err != nil {
		return nil, fmt.Errorf("filtering layer %s: %w", li.Name(), err)
	}
	allowed := map[string]bool{}
	for _, line := range strings.Split(rendered, "\n") {
		if line != "" {
			allowed[line] = true
		}
	}

	surviving := files[:0]
	for _, f := range files {
		if allowed[f.Dst] {
			surviving = append(surviving, f)
		}
	}
	li.Files = surviving

	return li, nil
}

// scanSources enumerates every regular file under the layer directory as
// a path relative to it, skipping cache artifacts.
func scanSources(layerDir string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(layerDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if cacheDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if compiledExts[filepath.Ext(d.Name())] {
			return nil
		}
		rel, err := filepath.Rel(layerDir, path)
		if err != nil {
			return err
		}
		sources = append(sources, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning layer %s: %w", filepath.Base(layerDir), err)
	}
	return sources, nil
}

// Name is the layer directory's base name.
func (li *LayerInfo) Name() string {
	return filepath.Base(li.Root)
}

// Pkg is the template package the layer belongs to.
func (li *LayerInfo) Pkg() string {
	return filepath.Base(filepath.Dir(filepath.Dir(li.Root)))
}

// Template composes the layer's conditional template: each file's own
// wrapper, wrapped once more in the layer condition when present.
func (li *LayerInfo) Template() string {
	var b strings.Builder
	if li.When != "" {
		b.WriteString("{{#" + li.When + "}}\n")
	}
	for _, f := range li.Files {
		b.WriteString(f.Template())
	}
	if li.When != "" {
		b.WriteString("{{/" + li.When + "}}\n")
	}
	return b.String()
}

// Run materializes every surviving file in destination order, preceded by
// a layer banner.
func (li *LayerInfo) Run(rt *runtime.Runtime, ctx settings.Context) error {
	rt.Progress("[%s:%s]", li.Pkg(), li.Name())
	for _, f := range li.Files {
		if err := f.Run(li.Root, rt, ctx); err != nil {
			return err
		}
	}
	rt.Message()
	return nil
}
