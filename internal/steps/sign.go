package steps

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/projflow/projflow/internal/runtime"
)

// SignConfig selects which build outputs are candidates for signing.
type SignConfig struct {
	// BuildDir is the root of the build tree.
	BuildDir string

	// Directories are the BuildDir subtrees scanned for binaries.
	Directories []string

	// Exclude holds glob patterns for files never signed.
	Exclude []string

	// OS is the configured target platform; on windows the pattern
	// match runs against the filename with its extension stripped.
	OS string
}

// DefaultSignConfig returns the stock candidate selection.
func DefaultSignConfig(buildDir, targetOS string) SignConfig {
	return SignConfig{
		BuildDir:    buildDir,
		Directories: []string{"bin", "lib", "libexec", "share"},
		Exclude:     []string{"*-test"},
		OS:          targetOS,
	}
}

// Compile-time check that SignStep implements Step.
var _ Step = (*SignStep)(nil)

// SignStep signs the built binaries between the build and packaging
// steps. It is inactive when the host has no signing facility.
type SignStep struct {
	Signer Signer
	Config SignConfig
}

func (s *SignStep) Name() string {
	return "Sign"
}

func (s *SignStep) RunsAfter() []string {
	return []string{"Build"}
}

func (s *SignStep) RunsBefore() []string {
	return []string{"Pack"}
}

func (s *SignStep) IsActive(*runtime.Runtime) bool {
	return s.Signer.IsActive()
}

func (s *SignStep) Run(rt *runtime.Runtime) error {
	files, err := s.gatherFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	names := make([]any, 0, len(files)+1)
	names = append(names, "signtool")
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	rt.Message(names...)

	if rt.DryRun {
		return nil
	}
	return s.Signer.Sign(files)
}

// gatherFiles walks the configured build subtrees and keeps signable
// binaries that no exclude pattern matches.
func (s *SignStep) gatherFiles() ([]string, error) {
	var result []string
	for _, root := range s.Config.Directories {
		dir := filepath.Join(s.Config.BuildDir, root)
		err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if d == nil {
					return nil // subtree absent
				}
				return err
			}
			if d.IsDir() {
				return nil
			}
			if ShouldExclude(d.Name(), s.Config.Exclude, s.Config.OS) {
				return nil
			}
			if !s.Signer.IsSignable(p) {
				return nil
			}
			result = append(result, filepath.ToSlash(p))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ShouldExclude reports whether a filename matches any exclude pattern.
// On windows the comparison ignores the file extension, so "*-test"
// catches both unit-test and unit-test.exe.
func ShouldExclude(filename string, exclude []string, targetOS string) bool {
	basename := filename
	if targetOS == "windows" {
		basename = strings.TrimSuffix(filename, filepath.Ext(filename))
	}
	for _, pattern := range exclude {
		if ok, _ := path.Match(pattern, basename); ok {
			return true
		}
	}
	return false
}
