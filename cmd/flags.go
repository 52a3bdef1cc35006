package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// StandardFlags provides consistent flag definitions across commands
type StandardFlags struct {
	// Generate flags
	Clean             bool `flag:"clean" desc:"Remove the scratch dir after a successful run" default:"false"`
	AllowMissingLinks bool `flag:"allow-missing-links" desc:"Report unresolved references as warnings" default:"false"`
	KeepUncompilable  bool `flag:"keep-uncompilable" desc:"Show example code guarded by NO_COMPILE markers" default:"false"`

	// Output flags
	OutputFormat string `flag:"format,f" desc:"Output format (table|json|yaml)" default:"table"`
	Quiet        bool   `flag:"quiet,q" desc:"Suppress output" default:"false"`
}

// AddStandardFlags adds standard flags to a command
func AddStandardFlags(cmd *cobra.Command, flagTypes ...string) *StandardFlags {
	flags := &StandardFlags{}

	for _, flagType := range flagTypes {
		switch flagType {
		case "generate":
			addGenerateFlags(cmd, flags)
		case "output":
			addOutputFlags(cmd, flags)
		}
	}

	return flags
}

func addGenerateFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().BoolVar(&flags.Clean, "clean", false, "Remove the scratch dir after a successful run")
	cmd.Flags().BoolVar(&flags.AllowMissingLinks, "allow-missing-links", false, "Report unresolved references as warnings instead of failing")
	cmd.Flags().BoolVar(&flags.KeepUncompilable, "keep-uncompilable", false, "Show example code guarded by NO_COMPILE markers")
}

func addOutputFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().StringVarP(&flags.OutputFormat, "format", "f", "table", "Output format (table|json|yaml)")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress output")
}

var outputFormats = []string{"table", "json", "yaml"}

// ValidateFlags validates flag combinations and values
func (f *StandardFlags) ValidateFlags() error {
	if f.OutputFormat != "" {
		if err := ValidateFormatWithSuggestion(f.OutputFormat, outputFormats); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFormatWithSuggestion rejects unknown formats, suggesting the
// closest supported one.
func ValidateFormatWithSuggestion(format string, valid []string) error {
	format = strings.ToLower(format)
	if slices.Contains(valid, format) {
		return nil
	}
	for _, candidate := range valid {
		if strings.HasPrefix(candidate, format) || strings.HasPrefix(format, candidate) {
			return fmt.Errorf("invalid format %q, did you mean %q? (supported: %s)",
				format, candidate, strings.Join(valid, ", "))
		}
	}
	return fmt.Errorf("invalid format %q (supported: %s)", format, strings.Join(valid, ", "))
}

// AddFlagValidation adds validation for a specific flag
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:     flag.Value,
		validator: validator,
	}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.Value.Set(val)
}
