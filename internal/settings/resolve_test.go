package settings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testPools() Pools {
	return Pools{
		Defaults: []Setting{
			{
				JSONKey: "PROJECT.NAME",
				Default: func(Context) Value { return String("demo") },
			},
			{
				// Depends on a previously resolved setting.
				JSONKey: "PROJECT.TITLE",
				Default: func(ctx Context) Value { return String(ctx.GetString("PROJECT.NAME")) },
			},
			{
				JSONKey: "COPY.LICENSE",
				Default: func(Context) Value { return List("MIT", "Apache-2.0") },
			},
		},
		Switches: []Setting{
			{
				JSONKey: "WITH.CI",
				Default: func(Context) Value { return Bool(true) },
			},
			{
				JSONKey: "WITH.DOCS",
				Project: "library",
				Default: func(Context) Value { return Bool(false) },
			},
		},
		Hidden: []Setting{
			{
				JSONKey: "COPY.HOLDER",
				Default: func(Context) Value { return String("") },
				Fix:     "{{PROJECT.NAME}} authors",
			},
		},
	}
}

func TestResolve_Defaults(t *testing.T) {
	ctx, err := Resolve(testPools(), "", nil, NonInteractive{})
	require.NoError(t, err)

	require.Equal(t, "demo", ctx["PROJECT.NAME"])
	require.Equal(t, "demo", ctx["PROJECT.TITLE"])
	require.Equal(t, "MIT", ctx["COPY.LICENSE"])
	require.Equal(t, true, ctx["WITH.CI"])
	require.Equal(t, "demo authors", ctx["COPY.HOLDER"])
}

func TestResolve_ProjectScopeFilter(t *testing.T) {
	ctx, err := Resolve(testPools(), "", nil, NonInteractive{})
	require.NoError(t, err)
	require.NotContains(t, ctx, "WITH.DOCS")

	ctx, err = Resolve(testPools(), "library", nil, NonInteractive{})
	require.NoError(t, err)
	require.Equal(t, false, ctx["WITH.DOCS"])
}

func TestResolve_Overrides(t *testing.T) {
	overrides := map[string]any{
		"PROJECT.NAME": "widget",
		"COPY.LICENSE": "Apache-2.0",
		"WITH.CI":      false,
	}

	ctx, err := Resolve(testPools(), "", overrides, NonInteractive{})
	require.NoError(t, err)

	require.Equal(t, "widget", ctx["PROJECT.NAME"])
	require.Equal(t, "widget", ctx["PROJECT.TITLE"])
	require.Equal(t, "Apache-2.0", ctx["COPY.LICENSE"])
	require.Equal(t, false, ctx["WITH.CI"])
}

func TestResolve_ForceFix(t *testing.T) {
	pools := Pools{
		Defaults: []Setting{
			{
				JSONKey:  "PROJECT.NAME",
				Default:  func(Context) Value { return String("demo") },
				Fix:      "{{PROJECT.NAME}}-suffixed",
				ForceFix: true,
			},
		},
	}

	ctx, err := Resolve(pools, "", nil, NonInteractive{})
	require.NoError(t, err)
	require.Equal(t, "demo-suffixed", ctx["PROJECT.NAME"])
}

func TestResolve_FixupOnlyReplacesEmpty(t *testing.T) {
	pools := Pools{
		Defaults: []Setting{
			{
				JSONKey: "AUTHOR.NAME",
				Default: func(Context) Value { return String("given") },
				Fix:     "fallback",
			},
		},
	}

	ctx, err := Resolve(pools, "", nil, NonInteractive{})
	require.NoError(t, err)
	require.Equal(t, "given", ctx["AUTHOR.NAME"])
}

func TestResolve_FixupLeavesBooleansAlone(t *testing.T) {
	pools := Pools{
		Defaults: []Setting{
			{
				JSONKey: "WITH.FLAG",
				Default: func(Context) Value { return Bool(false) },
				Fix:     "fallback",
			},
		},
	}

	ctx, err := Resolve(pools, "", nil, NonInteractive{})
	require.NoError(t, err)
	require.Equal(t, false, ctx["WITH.FLAG"])
}

func TestResolve_ForceFixOverridesBoolean(t *testing.T) {
	pools := Pools{
		Defaults: []Setting{
			{
				JSONKey:  "WITH.FLAG",
				Default:  func(Context) Value { return Bool(true) },
				Fix:      "forced",
				ForceFix: true,
			},
		},
	}

	ctx, err := Resolve(pools, "", nil, NonInteractive{})
	require.NoError(t, err)
	require.Equal(t, "forced", ctx["WITH.FLAG"])
}

func TestResolve_ExtScratchKeyIsDropped(t *testing.T) {
	pools := Pools{
		Defaults: []Setting{
			{JSONKey: "EXT", Default: func(Context) Value { return String("scratch") }},
			{JSONKey: "NAME", Default: func(ctx Context) Value { return String(ctx.GetString("EXT") + "!") }},
		},
	}

	ctx, err := Resolve(pools, "", nil, NonInteractive{})
	require.NoError(t, err)
	require.NotContains(t, ctx, "EXT")
	require.Equal(t, "scratch!", ctx["NAME"])
}

func TestContext_Nest(t *testing.T) {
	ctx := Context{
		"PROJECT.NAME": "demo",
		"COPY.LICENSE": "MIT",
		"COPY.YEAR":    "2026",
		"WITH.CI":      true,
		"TOP":          "flat",
	}

	nested := ctx.Nest()
	require.Equal(t, "flat", nested["TOP"])
	require.Equal(t, "demo", nested["PROJECT"].(map[string]any)["NAME"])

	cp := nested["COPY"].(map[string]any)
	require.Equal(t, "MIT", cp["LICENSE"])
	require.Equal(t, "2026", cp["YEAR"])
	require.Equal(t, true, nested["WITH"].(map[string]any)["CI"])
}

func TestValue_MoveToFront(t *testing.T) {
	v := List("MIT", "Apache-2.0", "MPL-2.0")
	moved := v.MoveToFront("MPL-2.0")
	require.Equal(t, []string{"MPL-2.0", "MIT", "Apache-2.0"}, moved.Choices())

	// Non-list values pass through untouched.
	require.Equal(t, String("x"), String("x").MoveToFront("y"))
}
