package sass

import (
	"context"
	"errors"
	"fmt"

	"github.com/bep/godartsass/v2"

	"github.com/conneroisu/sassdocgen/internal/logging"
)

// Transpiler compiles through the Dart Sass embedded protocol. It keeps one
// compiler process for the whole run and is safe for concurrent use.
type Transpiler struct {
	transpiler   *godartsass.Transpiler
	includePaths []string
	logger       logging.Logger
}

// NewTranspiler starts the embedded compiler.
func NewTranspiler(opts Options) (*Transpiler, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.WithComponent("sass")

	t, err := godartsass.Start(godartsass.Options{
		DartSassEmbeddedFilename: opts.Binary,
		Timeout:                  opts.Timeout,
		LogEventHandler: func(event godartsass.LogEvent) {
			switch event.Type {
			case godartsass.LogEventTypeDebug:
				logger.Debug(context.Background(), event.Message)
			default:
				logger.Warn(context.Background(), nil, event.Message)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("starting dart sass %q: %w", opts.Binary, err)
	}
	return &Transpiler{transpiler: t, includePaths: opts.IncludePaths, logger: logger}, nil
}

// Compile implements Compiler.
func (t *Transpiler) Compile(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	result, err := t.transpiler.Execute(godartsass.Args{
		Source:       source,
		IncludePaths: t.includePaths,
		OutputStyle:  godartsass.OutputStyleExpanded,
		SourceSyntax: godartsass.SourceSyntaxSCSS,
	})
	if err != nil {
		return "", diagnostic(err)
	}
	return result.CSS, nil
}

// Close stops the compiler process.
func (t *Transpiler) Close() error {
	return t.transpiler.Close()
}

// diagnostic turns a godartsass failure into a CompileError. Protocol and
// process failures are returned unchanged.
func diagnostic(err error) error {
	var sassErr godartsass.SassError
	if errors.As(err, &sassErr) {
		return &CompileError{Message: sassErr.Message, Cause: err}
	}
	var sassErrPtr *godartsass.SassError
	if errors.As(err, &sassErrPtr) {
		return &CompileError{Message: sassErrPtr.Message, Cause: err}
	}
	return err
}
