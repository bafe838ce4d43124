package steps

import (
	"fmt"
	"os"
	"os/exec"
)

// Signer is the binary-signing capability. The signing mechanism itself
// stays behind this interface; an implementation is selected once at
// startup by probing the host.
type Signer interface {
	// IsActive reports whether signing is available at all.
	IsActive() bool

	// IsSignable reports whether a file is the kind of binary the
	// signer handles.
	IsSignable(path string) bool

	// Sign signs the given files in place.
	Sign(paths []string) error
}

// DetectSigner probes the host for a signing tool and returns the real
// signer when one is present, the no-op stand-in otherwise.
func DetectSigner() Signer {
	if tool, err := exec.LookPath("signtool"); err == nil {
		return &toolSigner{tool: tool}
	}
	return noopSigner{}
}

// noopSigner is the stand-in used when no signing facility exists.
type noopSigner struct{}

func (noopSigner) IsActive() bool         { return false }
func (noopSigner) IsSignable(string) bool { return false }
func (noopSigner) Sign([]string) error    { return nil }

// toolSigner signs portable-executable binaries through an external
// signing tool.
type toolSigner struct {
	tool string
}

func (s *toolSigner) IsActive() bool {
	return true
}

// peMagic is the DOS header signature every PE binary starts with.
var peMagic = []byte{'M', 'Z'}

func (s *toolSigner) IsSignable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	var head [2]byte
	if _, err := f.Read(head[:]); err != nil {
		return false
	}
	return head[0] == peMagic[0] && head[1] == peMagic[1]
}

func (s *toolSigner) Sign(paths []string) error {
	args := append([]string{"sign"}, paths...)
	cmd := exec.Command(s.tool, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", s.tool, err)
	}
	return nil
}
