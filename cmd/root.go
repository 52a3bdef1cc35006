// Package cmd provides the sassdocgen command-line interface.
//
// Configuration is read from, in order of precedence:
//
//  1. Command-line flags
//  2. SASSDOC_<SECTION>_<OPTION> environment variables (for example
//     SASSDOC_WORKSPACE_PACKAGES_DIR), including those from .env files
//  3. The file named by --config or SASSDOC_CONFIG_FILE
//  4. .sassdocgen.yml in the current directory
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/sassdocgen/internal/config"
	"github.com/conneroisu/sassdocgen/internal/logging"
)

// envPrefix prefixes every environment override.
const envPrefix = "SASSDOC"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sassdocgen",
	Short: "Generate style documentation from SassDoc comments",
	Long: `sassdocgen extracts the SassDoc comments of a multi-package Sass library
and writes the documentation bundles used by the documentation site:

  <documentation>/constants/sassdocVariables.json   global variable lookup
  <components>/packages/<Group>/sassdoc.json        one bundle per group

Variable values are resolved and examples are compiled with Dart Sass.

Quick Start:
  sassdocgen generate             Build every bundle
  sassdocgen generate --clean     Build and remove the scratch dir
  sassdocgen list                 List the documented symbols`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .sassdocgen.yml, can also use SASSDOC_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	loadEnvFiles()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv(envPrefix + "_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sassdocgen")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing or unreadable config file falls back to the defaults
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadEnvFiles loads .env and .env.local without overriding variables that
// are already set.
func loadEnvFiles() {
	for _, path := range []string{".env", ".env.local"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load %s: %v\n", path, err)
		}
	}
}

// loadConfig loads the configuration and the logger configured by it.
func loadConfig() (*config.Config, logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	return cfg, logger, nil
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
