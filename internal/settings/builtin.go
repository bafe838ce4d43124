package settings

import (
	"path/filepath"
	"strconv"
	"time"
)

// KnownLicenses lists the license ids with a template in the licenses
// directory. The empty first choice means "no license file".
var KnownLicenses = []string{"", "MIT", "Apache-2.0", "BSD-3-Clause", "MPL-2.0", "Unlicense"}

// BuiltinPools returns the stock settings asked when scaffolding a
// project under baseDir. The directory name seeds the project name.
func BuiltinPools(baseDir string) Pools {
	return Pools{
		Defaults: []Setting{
			{
				JSONKey: "PROJECT.NAME",
				Prompt:  "Project name",
				Default: func(Context) Value { return String(filepath.Base(baseDir)) },
			},
			{
				JSONKey: "PROJECT.DESCRIPTION",
				Prompt:  "Project description",
				Default: func(Context) Value { return String("") },
			},
			{
				JSONKey: "AUTHOR.NAME",
				Prompt:  "Author",
				Default: func(Context) Value { return String("") },
			},
			{
				JSONKey: "COPY.LICENSE",
				Prompt:  "License",
				Default: func(Context) Value { return List(KnownLicenses...) },
			},
		},
		Switches: []Setting{
			{
				JSONKey: "WITH.GIT",
				Prompt:  "Initialize a git repository",
				Default: func(Context) Value { return Bool(true) },
			},
			{
				JSONKey: "WITH.CI",
				Prompt:  "Add CI workflow",
				Default: func(Context) Value { return Bool(true) },
			},
		},
		Hidden: []Setting{
			{
				JSONKey: "COPY.YEAR",
				Default: func(Context) Value {
					return String(strconv.Itoa(time.Now().Year()))
				},
			},
			{
				JSONKey:  "COPY.HOLDER",
				Default:  func(Context) Value { return String("") },
				Fix:      "{{AUTHOR.NAME}}",
				ForceFix: false,
			},
		},
	}
}
