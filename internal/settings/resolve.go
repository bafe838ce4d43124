package settings

import (
	"fmt"

	"github.com/projflow/projflow/internal/render"
)

// Prompter is the oracle that turns a setting plus its computed default
// into a resolved value. The terminal implementation lives with the CLI;
// NonInteractive answers every question with the default.
type Prompter interface {
	Ask(s Setting, def Value, counter, size int) (any, error)
}

// NonInteractive resolves every setting to its default answer.
type NonInteractive struct{}

func (NonInteractive) Ask(_ Setting, def Value, _, _ int) (any, error) {
	return def.Collapse(), nil
}

// extScratchKey is a resolution-time scratch slot; it never survives into
// the final context.
const extScratchKey = "EXT"

// Resolve produces the settings context for one invocation: the asked
// pools (defaults, then switches) in declaration order, each resolved
// through the prompter with overrides applied, followed by the fixup pass
// over hidden and default settings.
//
// Overrides replace same-shaped defaults; a string override against a
// list default selects that choice. Every key a later default calculator
// consumes is guaranteed present because resolution order is fixed.
func Resolve(pools Pools, project string, overrides map[string]any, prompter Prompter) (Context, error) {
	wanted := wantedFor(project)
	ctx := Context{}

	defaults := filtered(pools.Defaults, wanted)
	switches := filtered(pools.Switches, wanted)
	size := len(defaults) + len(switches)
	counter := 1

	for _, pool := range [][]Setting{defaults, switches} {
		for _, s := range pool {
			def := s.Default(ctx)
			def = applyOverride(def, overrides[s.JSONKey])

			value, err := prompter.Ask(s, def, counter, size)
			if err != nil {
				return nil, fmt.Errorf("resolving %s: %w", s.JSONKey, err)
			}
			ctx[s.JSONKey] = value
			counter++
		}
	}

	if err := fixupContext(ctx, pools, wanted); err != nil {
		return nil, err
	}

	delete(ctx, extScratchKey)
	return ctx, nil
}

// applyOverride merges a configured override into a computed default.
func applyOverride(def Value, override any) Value {
	switch o := override.(type) {
	case nil:
		return def
	case bool:
		if def.Kind() == KindBool {
			return Bool(o)
		}
	case string:
		switch def.Kind() {
		case KindString:
			return String(o)
		case KindList:
			return def.MoveToFront(o)
		}
	}
	return def
}

// fixupContext fills hidden settings from their defaults, then runs the
// fixup templates of the default and hidden pools. A fixup only replaces
// an empty value unless the setting forces it.
func fixupContext(ctx Context, pools Pools, wanted func(Setting) bool) error {
	defaults := filtered(pools.Defaults, wanted)
	hidden := filtered(pools.Hidden, wanted)

	for _, s := range hidden {
		value := s.Default(ctx).Collapse()
		if b, isBool := value.(bool); isBool {
			ctx[s.JSONKey] = b
			continue
		}
		if str, _ := value.(string); str != "" {
			ctx[s.JSONKey] = str
		}
	}

	for _, pool := range [][]Setting{defaults, hidden} {
		for _, s := range pool {
			if err := fixup(ctx, s); err != nil {
				return err
			}
		}
	}
	return nil
}

func fixup(ctx Context, s Setting) error {
	if s.Fix == "" {
		return nil
	}
	if !s.ForceFix {
		// Booleans are never "empty"; only an empty string invites the fix.
		if _, isBool := ctx[s.JSONKey].(bool); isBool {
			return nil
		}
		if ctx.GetString(s.JSONKey) != "" {
			return nil
		}
	}
	value, err := render.Render(s.Fix, ctx.Nest())
	if err != nil {
		return fmt.Errorf("fixing up %s: %w", s.JSONKey, err)
	}
	ctx[s.JSONKey] = value
	return nil
}
