package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/sassdocgen/internal/config"
	"github.com/conneroisu/sassdocgen/internal/sassdoc"
	"github.com/conneroisu/sassdocgen/internal/types"
	"github.com/conneroisu/sassdocgen/internal/version"
)

func TestPrintCreated(t *testing.T) {
	var buf bytes.Buffer
	printCreated(&buf, []string{
		"src/components/packages/Button/sassdoc.json",
		"src/constants/sassdocVariables.json",
	})

	assert.Equal(t, "Created the following sassdoc files:\n"+
		"- src/components/packages/Button/sassdoc.json\n"+
		"- src/constants/sassdocVariables.json\n", buf.String())
}

func TestApplyGenerateFlags(t *testing.T) {
	tests := []struct {
		name     string
		flags    StandardFlags
		clean    bool
		strict   bool
		keepCode bool
	}{
		{"defaults", StandardFlags{}, false, true, false},
		{"clean", StandardFlags{Clean: true}, true, true, false},
		{"allow missing links", StandardFlags{AllowMissingLinks: true}, false, false, false},
		{"keep uncompilable", StandardFlags{KeepUncompilable: true}, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Sassdoc: config.SassdocConfig{StrictLinks: true}}
			applyGenerateFlags(cfg, &tt.flags)
			assert.Equal(t, tt.clean, cfg.Workspace.Clean)
			assert.Equal(t, tt.strict, cfg.Sassdoc.StrictLinks)
			assert.Equal(t, tt.keepCode, cfg.Sassdoc.KeepUncompilable)
		})
	}
}

func TestValidateFormatWithSuggestion(t *testing.T) {
	tests := []struct {
		format      string
		expectError bool
		contains    string
	}{
		{"table", false, ""},
		{"JSON", false, ""},
		{"yml", true, ""},
		{"jso", true, `did you mean "json"`},
		{"csv", true, "supported: table, json, yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormatWithSuggestion(tt.format, outputFormats)
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestAddFlagValidation(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	flags := AddStandardFlags(cmd, "output")
	AddFlagValidation(cmd, "format", func(format string) error {
		return ValidateFormatWithSuggestion(format, outputFormats)
	})

	assert.NoError(t, cmd.Flags().Set("format", "yaml"))
	assert.Equal(t, "yaml", flags.OutputFormat)
	assert.Error(t, cmd.Flags().Set("format", "xml"))
	assert.Equal(t, "yaml", flags.OutputFormat)
}

func TestListEntries(t *testing.T) {
	items := []*sassdoc.Item{
		{
			Context: sassdoc.Context{Name: "rmd-button", Kind: types.KindMixin},
			Access:  sassdoc.AccessPublic,
			Group:   []string{"button"},
			File:    sassdoc.File{Path: "button/src/_mixins.scss"},
			Require: []sassdoc.Require{{Name: "rmd-button-height", Kind: types.KindVariable}},
		},
		{
			Context: sassdoc.Context{Name: "rmd-button-height", Kind: types.KindVariable},
			Access:  sassdoc.AccessPublic,
			Group:   []string{"button"},
			UsedBy:  []sassdoc.See{{Context: sassdoc.SymbolRef{Name: "rmd-button", Kind: types.KindMixin}}},
		},
		{
			Context: sassdoc.Context{Name: "_rmd-hidden", Kind: types.KindVariable},
			Access:  sassdoc.AccessPrivate,
		},
	}

	public := listEntries(items, false, false)
	require.Len(t, public, 2)
	assert.Nil(t, public[0].Requires)

	all := listEntries(items, true, true)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"rmd-button-height"}, all[0].Requires)
	assert.Equal(t, []string{"rmd-button"}, all[1].UsedBy)
	assert.Equal(t, sassdoc.DefaultGroup, all[2].Group)
}

func TestRunList(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "packages", "button", "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "_variables.scss"),
		[]byte("/// The height.\n/// @group button\n$rmd-button-height: 36px !default;\n"), 0o644))

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("workspace.packages_dir", filepath.Join(dir, "packages"))
	viper.Set("workspace.scratch_dir", filepath.Join(dir, "scratch"))
	viper.Set("sassdoc.rc_dir", dir)

	listFlags.OutputFormat = "json"
	t.Cleanup(func() { listFlags.OutputFormat = "table" })

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	require.NoError(t, runList(cmd, nil))

	var entries []listEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, listEntry{
		Name:   "rmd-button-height",
		Kind:   "variable",
		Group:  "button",
		Access: "public",
		File:   "button/src/_variables.scss",
	}, entries[0])
}

func TestWriteVersion(t *testing.T) {
	info := version.BuildInfo{
		Version:   "v1.0.0",
		GitCommit: "0123456789",
		BuildTime: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		GoVersion: "go1.24.4",
		Platform:  "linux/amd64",
		Release:   true,
	}
	t.Cleanup(func() {
		versionFormat = "text"
		versionShort = false
	})

	var buf bytes.Buffer
	versionFormat = "text"
	require.NoError(t, writeVersion(&buf, info))
	assert.Equal(t, "sassdocgen v1.0.0 (0123456)\nBuilt: 2024-01-02 03:04:05 UTC\nGo: go1.24.4\nPlatform: linux/amd64\n", buf.String())

	buf.Reset()
	versionShort = true
	require.NoError(t, writeVersion(&buf, info))
	assert.Equal(t, "v1.0.0 (0123456)\n", buf.String())

	buf.Reset()
	versionFormat = "json"
	require.NoError(t, writeVersion(&buf, info))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "v1.0.0", decoded["version"])
	assert.Equal(t, true, decoded["is_release"])

	versionFormat = "xml"
	assert.Error(t, writeVersion(&buf, info))
}
