package sass

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/conneroisu/sassdocgen/internal/validation"
)

// CommandCompiler shells out to the Dart Sass CLI once per compile.
type CommandCompiler struct {
	command string
	args    []string
	timeout time.Duration
}

// NewCommandCompiler creates a compiler that runs `sass --stdin`.
func NewCommandCompiler(opts Options) (*CommandCompiler, error) {
	args := []string{"--stdin", "--no-source-map", "--style=expanded"}
	for _, dir := range opts.IncludePaths {
		args = append(args, "--load-path="+dir)
	}
	cc := &CommandCompiler{command: opts.Binary, args: args, timeout: opts.Timeout}
	if err := cc.validateCommand(); err != nil {
		return nil, fmt.Errorf("command validation failed: %w", err)
	}
	return cc, nil
}

// Compile implements Compiler.
func (cc *CommandCompiler) Compile(ctx context.Context, source string) (string, error) {
	if cc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cc.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, cc.command, cc.args...)
	cmd.Stdin = strings.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("sass timed out: %w", ctx.Err())
		}
		if _, ok := err.(*exec.ExitError); ok {
			return "", &CompileError{Message: cliMessage(stderr.String()), Cause: err}
		}
		return "", fmt.Errorf("sass failed: %w\nOutput: %s", err, stderr.String())
	}
	return stdout.String(), nil
}

// Close implements Compiler.
func (cc *CommandCompiler) Close() error {
	return nil
}

// cliMessage extracts the message from CLI output such as
// "Error: $x: 1px\n  ╷\n...".
func cliMessage(stderr string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(stderr), "\n")
	return strings.TrimPrefix(strings.TrimSpace(line), "Error: ")
}

// validateCommand validates the command and arguments to prevent command injection
func (cc *CommandCompiler) validateCommand() error {
	allowedCommands := map[string]bool{
		"sass":      true,
		"dart-sass": true,
	}

	if err := validation.ValidateCommand(cc.command, allowedCommands); err != nil {
		return err
	}

	for _, arg := range cc.args {
		if err := validation.ValidateArgument(arg); err != nil {
			return fmt.Errorf("invalid argument '%s': %w", arg, err)
		}
	}

	return nil
}
