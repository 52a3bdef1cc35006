package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conneroisu/sassdocgen/internal/build"
	"github.com/conneroisu/sassdocgen/internal/config"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"g"},
	Short:   "Generate the sassdoc bundles",
	Long: `Copy the Sass sources of every package into the scratch dir, parse their
SassDoc comments, compile the examples, resolve variable values and write the
documentation bundles.

Unresolved @see, @require and @usedBy references fail the run unless
--allow-missing-links is given.

Examples:
  sassdocgen generate                        # Build every bundle
  sassdocgen generate --clean                # Remove the scratch dir afterwards
  sassdocgen generate --allow-missing-links  # Only warn about broken links`,
	RunE: runGenerate,
}

var generateFlags *StandardFlags

func init() {
	rootCmd.AddCommand(generateCmd)

	generateFlags = AddStandardFlags(generateCmd, "generate")
	generateCmd.Flags().BoolVarP(&generateFlags.Quiet, "quiet", "q", false, "Do not list the created files")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	applyGenerateFlags(cfg, generateFlags)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := build.NewPipeline(cfg, logger).Run(ctx)
	if err != nil {
		return err
	}

	if !generateFlags.Quiet {
		printCreated(cmd.OutOrStdout(), result.Files)
	}
	return nil
}

// applyGenerateFlags lets flags override the loaded configuration.
func applyGenerateFlags(cfg *config.Config, flags *StandardFlags) {
	if flags.Clean {
		cfg.Workspace.Clean = true
	}
	if flags.AllowMissingLinks {
		cfg.Sassdoc.StrictLinks = false
	}
	if flags.KeepUncompilable {
		cfg.Sassdoc.KeepUncompilable = true
	}
}

func printCreated(w io.Writer, files []string) {
	fmt.Fprintln(w, "Created the following sassdoc files:")
	for _, file := range files {
		fmt.Fprintf(w, "- %s\n", file)
	}
}
