// Package runtime carries the per-invocation flags and output channels
// shared by every command: dry-run and silent modes, color capability,
// structured logging, and the fatal-message channel used by domain
// invariant violations.
package runtime

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Runtime holds the flags resolved once at startup. It is read-only after
// construction.
type Runtime struct {
	DryRun   bool
	Silent   bool
	Verbose  bool
	UseColor bool

	// Out receives progress output. Defaults to os.Stdout.
	Out io.Writer

	// exit is swapped out in tests.
	exit func(code int)
}

// New creates a Runtime with output bound to stdout.
func New() *Runtime {
	return &Runtime{Out: os.Stdout, exit: os.Exit}
}

// ColorMode names a --color flag value.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ResolveColor turns a --color flag value into a concrete capability.
// In auto mode color is enabled only when stdout is a terminal.
func ResolveColor(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}

var dimStyle = lipgloss.NewStyle().Faint(true)

// Progress prints a per-item progress line unless silenced. With color
// enabled the line is rendered faint, matching scaffold output that is
// informative but not the payload.
func (rt *Runtime) Progress(format string, args ...any) {
	if rt.Silent {
		return
	}
	line := fmt.Sprintf(format, args...)
	if rt.UseColor {
		line = dimStyle.Render(line)
	}
	fmt.Fprintln(rt.out(), line)
}

// Dim renders a fragment faint when color is enabled, otherwise returns
// it unchanged.
func (rt *Runtime) Dim(s string) string {
	if rt.UseColor {
		return dimStyle.Render(s)
	}
	return s
}

// Message prints a line unless silenced. Unlike Progress it is never dimmed.
func (rt *Runtime) Message(args ...any) {
	if rt.Silent {
		return
	}
	fmt.Fprintln(rt.out(), args...)
}

// Fatal reports a domain invariant violation: one diagnostic line on
// stderr and a non-zero exit. It does not return.
func (rt *Runtime) Fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	if rt.exit != nil {
		rt.exit(1)
	} else {
		os.Exit(1)
	}
}

func (rt *Runtime) out() io.Writer {
	if rt.Out != nil {
		return rt.Out
	}
	return os.Stdout
}
