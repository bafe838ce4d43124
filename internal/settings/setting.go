package settings

// Setting describes one named, possibly hierarchical configuration item.
type Setting struct {
	// JSONKey is the dot-path identity of the setting, e.g. "COPY.LICENSE".
	JSONKey string

	// Prompt is the human-facing question text. Empty prompts fall back
	// to the quoted key.
	Prompt string

	// Project scopes the setting to one project flavor. Empty means the
	// setting applies to every project.
	Project string

	// Default computes the setting's default from previously resolved
	// settings. It must be a pure function of the partial context.
	Default func(Context) Value

	// Fix is an optional template rendered against the context after
	// resolution; its output replaces empty values (or any value when
	// ForceFix is set).
	Fix string

	// ForceFix applies Fix even when the setting already has a value.
	ForceFix bool
}

// Pools groups settings into the three disjoint resolution pools.
// Defaults and Switches are asked (or defaulted); Hidden settings are
// never asked and always run through the fixup pass.
type Pools struct {
	Defaults []Setting
	Switches []Setting
	Hidden   []Setting
}

// wantedFor builds the project scope filter: a setting survives when it
// is unscoped or scoped to the selected project.
func wantedFor(project string) func(Setting) bool {
	return func(s Setting) bool {
		return s.Project == "" || s.Project == project
	}
}

func filtered(pool []Setting, wanted func(Setting) bool) []Setting {
	var out []Setting
	for _, s := range pool {
		if wanted(s) {
			out = append(out, s)
		}
	}
	return out
}
