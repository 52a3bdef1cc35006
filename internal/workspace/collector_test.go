package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/sassdocgen/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func setupPackages(t *testing.T) (Config, string) {
	t.Helper()
	dir := t.TempDir()
	packages := filepath.Join(dir, "packages")

	writeFile(t, filepath.Join(packages, "button", "src", "_button.scss"), "$rmd-button-color: red !default;\n")
	writeFile(t, filepath.Join(packages, "button", "src", "mixins", "_mixins.scss"), "@mixin rmd-button {}\n")
	writeFile(t, filepath.Join(packages, "button", "src", "index.ts"), "export {};\n")
	writeFile(t, filepath.Join(packages, "button", "README.md"), "# button\n")
	writeFile(t, filepath.Join(packages, "theme", "src", "_theme.scss"), "$rmd-theme-primary: #000 !default;\n")
	writeFile(t, filepath.Join(packages, "documentation", "src", "_docs.scss"), "$docs: 1;\n")
	writeFile(t, filepath.Join(packages, "utils", "package.json"), "{}\n")

	return Config{
		PackagesDir: packages,
		ScratchDir:  filepath.Join(dir, ".sassdoc-tmp"),
		Namespace:   "@react-md",
		Exclude:     []string{"documentation"},
		Concurrency: 2,
	}, dir
}

func TestCollector_Collect(t *testing.T) {
	config, _ := setupPackages(t)
	collector := NewCollector(config, nil)

	copied, err := collector.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, copied)

	data, err := os.ReadFile(filepath.Join(config.ScratchDir, "button", "src", "mixins", "_mixins.scss"))
	require.NoError(t, err)
	assert.Equal(t, "@mixin rmd-button {}\n", string(data))

	assert.NoFileExists(t, filepath.Join(config.ScratchDir, "button", "src", "index.ts"))
	assert.NoDirExists(t, filepath.Join(config.ScratchDir, "documentation"))
	assert.NoDirExists(t, filepath.Join(config.ScratchDir, "utils"))

	packages, err := collector.Packages()
	require.NoError(t, err)
	assert.Equal(t, []string{"button", "theme"}, packages)
}

func TestCollector_CollectIsIdempotent(t *testing.T) {
	config, _ := setupPackages(t)
	collector := NewCollector(config, nil)

	_, err := collector.Collect(context.Background())
	require.NoError(t, err)
	writeFile(t, filepath.Join(config.ScratchDir, "stale", "src", "_stale.scss"), "")

	copied, err := collector.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, copied)
	assert.NoDirExists(t, filepath.Join(config.ScratchDir, "stale"))
}

func TestCollector_MissingPackagesDir(t *testing.T) {
	dir := t.TempDir()
	collector := NewCollector(Config{
		PackagesDir: filepath.Join(dir, "missing"),
		ScratchDir:  filepath.Join(dir, "scratch"),
		Namespace:   "@react-md",
	}, nil)

	_, err := collector.Collect(context.Background())
	require.Error(t, err)

	var docErr *errors.DocError
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, errors.ErrorTypeIO, docErr.Type)
	assert.Equal(t, errors.ErrCodeWorkspace, docErr.Code)
}

func TestCollector_Cancelled(t *testing.T) {
	config, _ := setupPackages(t)
	collector := NewCollector(config, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := collector.Collect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollector_PrepareForCompile(t *testing.T) {
	config, _ := setupPackages(t)
	collector := NewCollector(config, nil)

	_, err := collector.Collect(context.Background())
	require.NoError(t, err)
	require.NoError(t, collector.PrepareForCompile())

	assert.FileExists(t, filepath.Join(config.ScratchDir, "@react-md", "button", "dist", "_button.scss"))
	assert.FileExists(t, filepath.Join(config.ScratchDir, "@react-md", "theme", "dist", "_theme.scss"))
	assert.NoDirExists(t, filepath.Join(config.ScratchDir, "button"))

	packages, err := collector.Packages()
	require.NoError(t, err)
	assert.Equal(t, []string{"button", "theme"}, packages)

	require.NoError(t, collector.PrepareForCompile(), "second call is a no-op")
}

func TestCollector_Clean(t *testing.T) {
	config, _ := setupPackages(t)
	collector := NewCollector(config, nil)

	_, err := collector.Collect(context.Background())
	require.NoError(t, err)
	require.NoError(t, collector.Clean())
	assert.NoDirExists(t, config.ScratchDir)

	require.NoError(t, collector.Clean(), "cleaning twice is fine")
}
