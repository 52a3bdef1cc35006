package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/sassdocgen/internal/build"
	"github.com/conneroisu/sassdocgen/internal/sassdoc"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List the documented symbols",
	Long: `Parse the SassDoc comments of every package and list the documented
variables, functions and mixins. Nothing is compiled or written besides the
scratch dir.

Examples:
  sassdocgen list                 # Public symbols as a table
  sassdocgen list -f json         # Output as JSON
  sassdocgen list --private       # Include private symbols
  sassdocgen list -d -f yaml      # Include requires and usedBy, as YAML`,
	RunE: runList,
}

var (
	listFlags    *StandardFlags
	listPrivate  bool
	listWithDeps bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listFlags = AddStandardFlags(listCmd, "output")

	listCmd.Flags().BoolVar(&listPrivate, "private", false, "Include private symbols")
	listCmd.Flags().BoolVarP(&listWithDeps, "with-deps", "d", false, "Include requires and usedBy")

	AddFlagValidation(listCmd, "format", func(format string) error {
		return ValidateFormatWithSuggestion(format, outputFormats)
	})
}

// listEntry is one row of the list output.
type listEntry struct {
	Name     string   `json:"name" yaml:"name"`
	Kind     string   `json:"kind" yaml:"kind"`
	Group    string   `json:"group" yaml:"group"`
	Access   string   `json:"access" yaml:"access"`
	File     string   `json:"file" yaml:"file"`
	Requires []string `json:"requires,omitempty" yaml:"requires,omitempty"`
	UsedBy   []string `json:"usedBy,omitempty" yaml:"usedBy,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	if err := listFlags.ValidateFlags(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	scan, err := build.NewPipeline(cfg, logger).Scan(commandContext(cmd))
	if err != nil {
		return err
	}

	entries := listEntries(scan.Items, listPrivate, listWithDeps)
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		if !listFlags.Quiet {
			fmt.Fprintln(out, "No documented symbols found.")
		}
		return nil
	}

	switch strings.ToLower(listFlags.OutputFormat) {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		return encoder.Encode(entries)
	default:
		return outputTable(out, entries)
	}
}

func listEntries(items []*sassdoc.Item, private, withDeps bool) []listEntry {
	entries := make([]listEntry, 0, len(items))
	for _, item := range items {
		if item.IsPrivate() && !private {
			continue
		}
		entry := listEntry{
			Name:   item.Context.Name,
			Kind:   string(item.Context.Kind),
			Group:  item.PrimaryGroup(),
			Access: item.Access,
			File:   item.File.Path,
		}
		if withDeps {
			for _, req := range item.Require {
				entry.Requires = append(entry.Requires, req.Name)
			}
			for _, used := range item.UsedBy {
				entry.UsedBy = append(entry.UsedBy, used.Context.Name)
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func outputTable(out io.Writer, entries []listEntry) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := "NAME\tKIND\tGROUP\tACCESS\tFILE"
	separator := "----\t----\t-----\t------\t----"
	if listWithDeps {
		header += "\tREQUIRES\tUSED BY"
		separator += "\t--------\t-------"
	}
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, separator)

	for _, entry := range entries {
		row := fmt.Sprintf("%s\t%s\t%s\t%s\t%s", entry.Name, entry.Kind, entry.Group, entry.Access, entry.File)
		if listWithDeps {
			row += "\t" + strings.Join(entry.Requires, ", ") + "\t" + strings.Join(entry.UsedBy, ", ")
		}
		fmt.Fprintln(w, row)
	}

	fmt.Fprintf(w, "\nTotal: %d symbols\n", len(entries))
	return w.Flush()
}
