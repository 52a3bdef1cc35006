// Package validation provides checks that keep external compiler invocations
// and workspace paths free of command injection and path traversal.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateArgument validates a command line argument to prevent injection attacks
func ValidateArgument(arg string) error {
	// Check for shell metacharacters that could be used for command injection
	dangerous := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\\", "\"", "'"}
	for _, char := range dangerous {
		if strings.Contains(arg, char) {
			return fmt.Errorf("contains dangerous character: %s", char)
		}
	}

	// Check for path traversal attempts
	if strings.Contains(arg, "..") {
		return fmt.Errorf("contains path traversal: %s", arg)
	}

	// Check for absolute paths (prefer relative paths for security)
	if filepath.IsAbs(arg) && !strings.HasPrefix(arg, "/usr/bin/") && !strings.HasPrefix(arg, "/bin/") &&
		!strings.HasPrefix(arg, "/usr/local/bin/") {
		return fmt.Errorf("absolute path not allowed: %s", arg)
	}

	return nil
}

// ValidateCommand validates a command against an allowlist of binary names.
// Allowed binaries may be given by bare name or by a system bin path.
func ValidateCommand(command string, allowedCommands map[string]bool) error {
	if command == "" {
		return fmt.Errorf("command cannot be empty")
	}

	if !allowedCommands[filepath.Base(command)] {
		return fmt.Errorf("command '%s' is not allowed", command)
	}

	if err := ValidateArgument(command); err != nil {
		return fmt.Errorf("invalid command '%s': %w", command, err)
	}

	return nil
}

// ValidatePackageName checks that a package directory name is a single,
// plain path element.
func ValidatePackageName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("invalid package name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("package name %q must not contain path separators", name)
	}
	if err := ValidateArgument(name); err != nil {
		return fmt.Errorf("package name %q: %w", name, err)
	}
	return nil
}
