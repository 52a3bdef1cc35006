package sass

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Evaluator computes the value of a Sass expression in the context of every
// documented package.
type Evaluator interface {
	// Evaluate returns the computed value of expression. evaluated is false
	// when the compiler accepted the expression without computing anything,
	// in which case value is the expression itself.
	Evaluate(ctx context.Context, name, expression string) (value string, evaluated bool, err error)
}

// ErrorEvaluator evaluates expressions by compiling an @error rule that
// interpolates them and reading the value back out of the diagnostic.
type ErrorEvaluator struct {
	compiler Compiler
	preamble string
}

// NewErrorEvaluator creates an evaluator compiling after preamble.
func NewErrorEvaluator(compiler Compiler, preamble string) *ErrorEvaluator {
	return &ErrorEvaluator{compiler: compiler, preamble: preamble}
}

// Evaluate implements Evaluator. Values that cannot be interpolated, such
// as maps, are retried through inspect().
func (e *ErrorEvaluator) Evaluate(ctx context.Context, name, expression string) (string, bool, error) {
	prefix := "$" + name + ": "

	value, raised, err := e.raise(ctx, prefix, expression)
	var compileErr *CompileError
	if err != nil && errors.As(err, &compileErr) {
		value, raised, err = e.raise(ctx, prefix, "inspect("+expression+")")
	}
	if err != nil {
		return "", false, fmt.Errorf("evaluating $%s: %w", name, err)
	}
	if !raised {
		return expression, false, nil
	}
	return value, true, nil
}

// raise compiles an @error rule interpolating expression. raised is false
// when the compiler did not stop at the rule.
func (e *ErrorEvaluator) raise(ctx context.Context, prefix, expression string) (string, bool, error) {
	source := Source(e.preamble, fmt.Sprintf("@error '%s#{%s}';", prefix, expression))

	_, err := e.compiler.Compile(ctx, source)
	if err == nil {
		return "", false, nil
	}
	if value, ok := scrape(err, prefix); ok {
		return value, true, nil
	}
	return "", false, err
}

// scrape reads the interpolated value following prefix from a compiler
// diagnostic. Only the first line of the message is used.
func scrape(err error, prefix string) (string, bool) {
	message := err.Error()
	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		message = compileErr.Message
	}
	i := strings.Index(message, prefix)
	if i < 0 {
		return "", false
	}
	value, _, _ := strings.Cut(message[i+len(prefix):], "\n")
	return strings.TrimSpace(value), true
}
