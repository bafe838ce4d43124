package layer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/projflow/projflow/internal/settings"
)

func TestNewFileInfo_DestinationResolution(t *testing.T) {
	ctx := settings.Context{
		"PROJECT.NAME": "widget",
		"WITH.DOCS":    true,
	}

	tests := []struct {
		name           string
		src            string
		filelist       map[string]FileEntry
		wantDst        string
		wantIsMustache bool
		wantWhen       string
	}{
		{
			name:    "plain file keeps its path",
			src:     filepath.Join("src", "main.txt"),
			wantDst: filepath.Join("src", "main.txt"),
		},
		{
			name:           "mustache marker is stripped",
			src:            "README.md.mustache",
			wantDst:        "README.md",
			wantIsMustache: true,
		},
		{
			name: "path override wins over marker stripping",
			src:  "config.yml.mustache",
			filelist: map[string]FileEntry{
				"config.yml.mustache": {Path: ".github/{{PROJECT.NAME}}.yml"},
			},
			wantDst:        filepath.FromSlash(".github/widget.yml"),
			wantIsMustache: true,
		},
		{
			name: "path override applies to plain files too",
			src:  "ignore.txt",
			filelist: map[string]FileEntry{
				"ignore.txt": {Path: ".gitignore"},
			},
			wantDst: ".gitignore",
		},
		{
			name: "filelist keys use forward slashes",
			src:  filepath.Join("docs", "guide.md"),
			filelist: map[string]FileEntry{
				"docs/guide.md": {When: "WITH.DOCS"},
			},
			wantDst:  filepath.Join("docs", "guide.md"),
			wantWhen: "WITH.DOCS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := NewFileInfo(tt.src, tt.filelist, ctx)
			require.NoError(t, err)
			require.Equal(t, tt.wantDst, info.Dst)
			require.Equal(t, tt.wantIsMustache, info.IsMustache)
			require.Equal(t, tt.wantWhen, info.When)

			// Destination resolution is a pure function of its inputs.
			again, err := NewFileInfo(tt.src, tt.filelist, ctx)
			require.NoError(t, err)
			require.Equal(t, info, again)
		})
	}
}

func TestFileInfo_Template(t *testing.T) {
	plain := FileInfo{Dst: "README.md"}
	require.Equal(t, "README.md\n", plain.Template())

	gated := FileInfo{Dst: "ci.yml", When: "WITH.CI"}
	require.Equal(t, "{{#WITH.CI}}\nci.yml\n{{/WITH.CI}}\n", gated.Template())
}
