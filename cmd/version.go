package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/conneroisu/sassdocgen/internal/version"
)

var (
	versionFormat   string
	versionShort    bool
	versionDetailed bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for sassdocgen including the version, git
commit, build time, Go version and target platform.

Examples:
  sassdocgen version              # Show version
  sassdocgen version --short      # Show the version string only
  sassdocgen version --detailed   # Show every build field
  sassdocgen version -f json      # Output as JSON`,
	RunE: runVersionCommand,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "Output format (text, json)")
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show short version only")
	versionCmd.Flags().BoolVar(&versionDetailed, "detailed", false, "Show detailed version information")
}

func runVersionCommand(cmd *cobra.Command, args []string) error {
	return writeVersion(cmd.OutOrStdout(), version.Get())
}

func writeVersion(w io.Writer, info version.BuildInfo) error {
	switch versionFormat {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	case "text":
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", versionFormat)
	}

	switch {
	case versionShort:
		fmt.Fprintln(w, info.Short())
	case versionDetailed:
		fmt.Fprintln(w, info.Detailed())
	default:
		fmt.Fprintf(w, "sassdocgen %s\n", info.Short())
		if !info.BuildTime.IsZero() {
			fmt.Fprintf(w, "Built: %s\n", info.BuildTime.UTC().Format("2006-01-02 15:04:05 UTC"))
		}
		fmt.Fprintf(w, "Go: %s\n", info.GoVersion)
		fmt.Fprintf(w, "Platform: %s\n", info.Platform)
	}
	return nil
}
