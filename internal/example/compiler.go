package example

import (
	"context"

	"github.com/conneroisu/sassdocgen/internal/errors"
	"github.com/conneroisu/sassdocgen/internal/logging"
	"github.com/conneroisu/sassdocgen/internal/sass"
	"github.com/conneroisu/sassdocgen/internal/types"
)

// Compiler turns declared examples into display records, compiling the
// scss ones against every package.
type Compiler struct {
	compiler         sass.Compiler
	preamble         string
	keepUncompilable bool
	logger           logging.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithUncompilableCode keeps guarded code in the displayed example and only
// removes the marker comments.
func WithUncompilableCode(keep bool) Option {
	return func(c *Compiler) {
		c.keepUncompilable = keep
	}
}

// NewCompiler creates an example compiler.
func NewCompiler(compiler sass.Compiler, preamble string, logger logging.Logger, opts ...Option) *Compiler {
	if logger == nil {
		logger = logging.Discard()
	}
	c := &Compiler{
		compiler: compiler,
		preamble: preamble,
		logger:   logger.WithComponent("example"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CompileAll compiles the examples of symbol. The first failure is logged
// with the example's position and source and returned.
func (c *Compiler) CompileAll(ctx context.Context, symbol string, examples []types.Example) ([]types.CompiledExample, error) {
	pairs := Pairs(examples)
	records := make([]types.CompiledExample, 0, len(pairs))
	for _, pair := range pairs {
		ex := pair.Example
		record := types.CompiledExample{
			Type:        ex.Type,
			Code:        c.display(ex.Code),
			Description: ex.Description,
		}
		if ex.Type == "scss" {
			css, err := c.compiler.Compile(ctx, sass.Source(c.preamble, ex.Code))
			if err != nil {
				c.logger.Error(ctx, err, "Unable to compile example",
					"symbol", symbol,
					"example", pair.Index,
					"source", ex.Code)
				return nil, errors.WrapCompile(err, errors.ErrCodeExampleCompile,
					"unable to compile example", symbol).
					WithContext("example", pair.Index)
			}
			record.CompiledCode = &css
		}
		if pair.HTML != nil {
			record.HTMLExample = pair.HTML.Code
		}
		records = append(records, record)
	}
	return records, nil
}

func (c *Compiler) display(code string) string {
	if c.keepUncompilable {
		return sass.StripNoCompileComments(code)
	}
	return sass.StripNoCompile(code)
}
