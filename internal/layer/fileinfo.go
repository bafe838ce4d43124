// Package layer implements the template-layering engine: deciding which
// files of a template layer apply to the resolved settings context,
// computing their destination paths, and materializing them on disk in a
// deterministic order.
package layer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/projflow/projflow/internal/render"
	"github.com/projflow/projflow/internal/runtime"
	"github.com/projflow/projflow/internal/settings"
)

// TemplateExt marks a source file as a mustache template. It is stripped
// from the destination unless the filelist supplies an explicit path.
const TemplateExt = ".mustache"

// FileEntry is one filelist record in a layer descriptor. Path, when
// present, is itself a template for the destination; When names a boolean
// settings key gating the file.
type FileEntry struct {
	Path string `json:"path"`
	When string `json:"when"`
}

// FileInfo is the per-file work item of a layer: where it comes from,
// where it lands, whether it needs rendering, and its enabling condition.
// It is built once per layer load and consumed exactly once.
type FileInfo struct {
	Src        string
	Dst        string
	IsMustache bool
	When       string
}

// NewFileInfo resolves a file's destination from its relative source
// path, the layer's filelist, and the settings context:
//
//  1. an explicit filelist path override is rendered as a template and
//     wins regardless of the template marker;
//  2. otherwise a mustache source lands at its own path with the marker
//     extension stripped;
//  3. otherwise the destination equals the source.
//
// Filelist keys always use forward slashes.
func NewFileInfo(src string, filelist map[string]FileEntry, ctx settings.Context) (FileInfo, error) {
	ext := filepath.Ext(src)
	isMustache := ext == TemplateExt
	entry := filelist[filepath.ToSlash(src)]

	var dst string
	switch {
	case entry.Path != "":
		rendered, err := render.Render(entry.Path, ctx.Nest())
		if err != nil {
			return FileInfo{}, fmt.Errorf("resolving destination for %s: %w", src, err)
		}
		dst = filepath.FromSlash(rendered)
	case isMustache:
		dst = strings.TrimSuffix(src, ext)
	default:
		dst = src
	}

	return FileInfo{Src: src, Dst: dst, IsMustache: isMustache, When: entry.When}, nil
}

// Template emits the file's conditional wrapper: its destination line,
// wrapped in a mustache section when the file carries a condition. The
// layer filter renders the concatenation of these and reads back which
// lines survived.
func (f FileInfo) Template() string {
	if f.When != "" {
		return "{{#" + f.When + "}}\n" + f.Dst + "\n{{/" + f.When + "}}\n"
	}
	return f.Dst + "\n"
}

// Run materializes the file from the layer root into the working
// directory: render-and-write for templates, byte-copy otherwise, both
// preserving the source's mode and timestamps. A non-template symlink is
// recreated, not followed; a template symlink is read through the link
// and rendered like any other template. Dry-run stops after the progress
// line.
func (f FileInfo) Run(root string, rt *runtime.Runtime, ctx settings.Context) error {
	rt.Message(rt.Dim("+"), f.Dst)
	if rt.DryRun {
		return nil
	}

	src := filepath.Join(root, f.Src)
	dst, err := filepath.Abs(f.Dst)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", f.Dst, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", f.Dst, err)
	}

	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", f.Src, err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		if !f.IsMustache {
			return copySymlink(src, dst)
		}
		// Templates render through the link; mode and times come from
		// the target, not the link itself.
		info, err = os.Stat(src)
		if err != nil {
			return fmt.Errorf("inspecting %s: %w", f.Src, err)
		}
	}

	if f.IsMustache {
		raw, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", f.Src, err)
		}
		content, err := render.Render(string(raw), ctx.Nest())
		if err != nil {
			return fmt.Errorf("rendering %s: %w", f.Src, err)
		}
		if err := os.WriteFile(dst, []byte(content), info.Mode().Perm()); err != nil {
			return fmt.Errorf("writing %s: %w", f.Dst, err)
		}
	} else {
		if err := copyFile(src, dst, info.Mode().Perm()); err != nil {
			return err
		}
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("copying mode onto %s: %w", f.Dst, err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("copying times onto %s: %w", f.Dst, err)
	}
	return nil
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s: %w", dst, err)
	}
	return out.Close()
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fmt.Errorf("reading link %s: %w", src, err)
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("replacing %s: %w", dst, err)
	}
	if err := os.Symlink(target, dst); err != nil {
		return fmt.Errorf("linking %s: %w", dst, err)
	}
	return nil
}
