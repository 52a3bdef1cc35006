// Package sass wraps the Sass compiler behind narrow interfaces: compiling
// documentation examples and evaluating Sass expressions.
package sass

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/conneroisu/sassdocgen/internal/logging"
)

// Compiler compiles an SCSS source to expanded CSS.
type Compiler interface {
	Compile(ctx context.Context, source string) (string, error)
	Close() error
}

// CompileError is a diagnostic reported by the compiler for a source.
type CompileError struct {
	Message string
	Cause   error
}

func (e *CompileError) Error() string {
	return "sass: " + e.Message
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}

// Options configure a compiler backend.
type Options struct {
	// Binary is the Dart Sass executable. The embedded backend starts it
	// with --embedded.
	Binary       string
	IncludePaths []string
	Timeout      time.Duration
	Logger       logging.Logger
}

// Backend names accepted by New.
const (
	BackendEmbedded = "embedded"
	BackendCommand  = "command"
)

// New creates the compiler for a backend.
func New(backend string, opts Options) (Compiler, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Binary == "" {
		opts.Binary = "sass"
	}
	switch backend {
	case BackendEmbedded, "":
		return NewTranspiler(opts)
	case BackendCommand:
		return NewCommandCompiler(opts)
	default:
		return nil, fmt.Errorf("unknown sass backend %q", backend)
	}
}

// Preamble imports the compiled stylesheet of every package so examples can
// use any documented symbol.
func Preamble(namespace string, packages []string) string {
	imports := make([]string, len(packages))
	for i, name := range packages {
		imports[i] = fmt.Sprintf("@import '%s/%s/dist/%s';", namespace, name, name)
	}
	return strings.Join(imports, "\n")
}

// Source joins the preamble and a snippet, dropping uncompilable regions.
func Source(preamble, code string) string {
	return preamble + "\n\n" + StripNoCompile(code) + "\n"
}
