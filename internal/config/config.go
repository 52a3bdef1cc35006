// Package config provides configuration management for sassdocgen using
// Viper for loading from files, environment variables and command-line flags.
//
// The configuration system supports a .sassdocgen.yml file, environment
// variable overrides with the SASSDOC_ prefix and validation. It describes
// where the Sass packages live, where the scratch workspace is created, where
// documentation bundles are written and how the Sass compiler is invoked.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sass compiler backends.
const (
	BackendEmbedded = "embedded"
	BackendCommand  = "command"
)

type Config struct {
	Workspace WorkspaceConfig `mapstructure:"workspace" yaml:"workspace"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	Sass      SassConfig      `mapstructure:"sass" yaml:"sass"`
	Sassdoc   SassdocConfig   `mapstructure:"sassdoc" yaml:"sassdoc"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

type WorkspaceConfig struct {
	PackagesDir     string   `mapstructure:"packages_dir" yaml:"packages_dir"`
	ScratchDir      string   `mapstructure:"scratch_dir" yaml:"scratch_dir"`
	Namespace       string   `mapstructure:"namespace" yaml:"namespace"`
	ExcludePackages []string `mapstructure:"exclude_packages" yaml:"exclude_packages"`
	CopyConcurrency int      `mapstructure:"copy_concurrency" yaml:"copy_concurrency"`
	Clean           bool     `mapstructure:"clean" yaml:"clean"`
}

type OutputConfig struct {
	Root             string `mapstructure:"root" yaml:"root"`
	DocumentationDir string `mapstructure:"documentation_dir" yaml:"documentation_dir"`
	ComponentsDir    string `mapstructure:"components_dir" yaml:"components_dir"`
	LookupFile       string `mapstructure:"lookup_file" yaml:"lookup_file"`
}

type SassConfig struct {
	Backend string        `mapstructure:"backend" yaml:"backend"`
	Binary  string        `mapstructure:"binary" yaml:"binary"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type SassdocConfig struct {
	SymbolPrefix string `mapstructure:"symbol_prefix" yaml:"symbol_prefix"`
	StrictLinks  bool   `mapstructure:"strict_links" yaml:"strict_links"`
	Concurrency  int    `mapstructure:"concurrency" yaml:"concurrency"`

	// KeepUncompilable shows guarded example code with only the markers removed.
	KeepUncompilable bool `mapstructure:"keep_uncompilable" yaml:"keep_uncompilable"`
	// RCDir is where .sassdocrc is looked up.
	RCDir string `mapstructure:"rc_dir" yaml:"rc_dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// LookupPath returns the absolute-or-relative path of the variable lookup file.
func (c *Config) LookupPath() string {
	return filepath.Join(c.Output.DocumentationDir, c.Output.LookupFile)
}

// PackagesOutputDir returns the directory holding one sub directory per group.
func (c *Config) PackagesOutputDir() string {
	return filepath.Join(c.Output.ComponentsDir, "packages")
}

// defaults are registered with viper so that every key is known to
// Unmarshal and AutomaticEnv can override it.
var defaults = map[string]any{
	"workspace.packages_dir":     "../packages",
	"workspace.scratch_dir":      ".sassdoc-tmp",
	"workspace.namespace":        "@react-md",
	"workspace.exclude_packages": []string{"documentation"},
	"workspace.copy_concurrency": 8,
	"workspace.clean":            false,

	"output.root":              "src",
	"output.documentation_dir": "src",
	"output.components_dir":    filepath.Join("src", "components"),
	"output.lookup_file":       filepath.Join("constants", "sassdocVariables.json"),

	"sass.backend": BackendEmbedded,
	"sass.binary":  "sass",
	"sass.timeout": 30 * time.Second,

	"sassdoc.symbol_prefix":     "rmd",
	"sassdoc.strict_links":      true,
	"sassdoc.concurrency":       4,
	"sassdoc.keep_uncompilable": false,
	"sassdoc.rc_dir":            ".",

	"log.level":  "",
	"log.format": "text",
}

// SetDefaults registers the default value of every configuration key.
func SetDefaults() {
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
}

func Load() (*Config, error) {
	SetDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Log settings fall back to the root --log-level flag
	if config.Log.Level == "" {
		config.Log.Level = viper.GetString("log-level")
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}

	// Validate configuration values
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates configuration values for safety and correctness
func validateConfig(config *Config) error {
	if err := validateWorkspaceConfig(&config.Workspace); err != nil {
		return fmt.Errorf("workspace config: %w", err)
	}

	if err := validateOutputConfig(&config.Output); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := validateSassConfig(&config.Sass); err != nil {
		return fmt.Errorf("sass config: %w", err)
	}

	if config.Sassdoc.Concurrency < 0 {
		return fmt.Errorf("sassdoc config: concurrency must not be negative")
	}

	return nil
}

// validateWorkspaceConfig validates workspace configuration values
func validateWorkspaceConfig(config *WorkspaceConfig) error {
	if err := validatePath(config.PackagesDir); err != nil {
		return fmt.Errorf("invalid packages_dir '%s': %w", config.PackagesDir, err)
	}

	// The scratch dir is removed recursively on every run
	if err := validatePath(config.ScratchDir); err != nil {
		return fmt.Errorf("invalid scratch_dir '%s': %w", config.ScratchDir, err)
	}
	cleanScratch := filepath.Clean(config.ScratchDir)
	if cleanScratch == "." || cleanScratch == string(filepath.Separator) {
		return fmt.Errorf("scratch_dir must be a dedicated directory: %s", config.ScratchDir)
	}
	if strings.Contains(cleanScratch, "..") {
		return fmt.Errorf("scratch_dir contains path traversal: %s", config.ScratchDir)
	}

	if strings.ContainsAny(config.Namespace, `/\`) && !strings.HasPrefix(config.Namespace, "@") {
		return fmt.Errorf("namespace must be a single directory name or an @scope: %s", config.Namespace)
	}

	if config.CopyConcurrency < 0 {
		return fmt.Errorf("copy_concurrency must not be negative")
	}

	return nil
}

// validateOutputConfig validates output configuration values
func validateOutputConfig(config *OutputConfig) error {
	for name, path := range map[string]string{
		"root":              config.Root,
		"documentation_dir": config.DocumentationDir,
		"components_dir":    config.ComponentsDir,
		"lookup_file":       config.LookupFile,
	} {
		if err := validatePath(path); err != nil {
			return fmt.Errorf("invalid %s '%s': %w", name, path, err)
		}
	}

	if filepath.IsAbs(config.LookupFile) {
		return fmt.Errorf("lookup_file should be relative to documentation_dir: %s", config.LookupFile)
	}

	return nil
}

// validateSassConfig validates the compiler settings
func validateSassConfig(config *SassConfig) error {
	switch config.Backend {
	case BackendEmbedded, BackendCommand:
	default:
		return fmt.Errorf("unknown backend %q (supported: %s, %s)", config.Backend, BackendEmbedded, BackendCommand)
	}

	if config.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	return nil
}

// validatePath validates a file path for safety
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	// Reject dangerous characters
	dangerousChars := []string{";", "&", "|", "$", "`", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(path, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
