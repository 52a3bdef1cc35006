package resolve

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/conneroisu/sassdocgen/internal/errors"
	"github.com/conneroisu/sassdocgen/internal/logging"
	"github.com/conneroisu/sassdocgen/internal/sass"
)

// Resolver evaluates unresolved lookup entries.
type Resolver struct {
	evaluator   sass.Evaluator
	concurrency int
	logger      logging.Logger
	inflight    singleflight.Group
}

// NewResolver creates a resolver running at most concurrency evaluations
// at once.
func NewResolver(evaluator sass.Evaluator, concurrency int, logger logging.Logger) *Resolver {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Resolver{
		evaluator:   evaluator,
		concurrency: concurrency,
		logger:      logger.WithComponent("resolve"),
	}
}

type evaluation struct {
	value     string
	evaluated bool
}

// Resolve evaluates every entry of lookup whose resolved value is empty.
// After a successful call every entry has a non-empty resolved value.
func (r *Resolver) Resolve(ctx context.Context, lookup *Lookup) error {
	pending := lookup.Unresolved()
	perf := logging.StartOperation(r.logger, "resolve")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, entry := range pending {
		entry := entry
		g.Go(func() error {
			result, err, shared := r.inflight.Do(entry.Value, func() (interface{}, error) {
				value, evaluated, err := r.evaluator.Evaluate(gctx, entry.Name, entry.Value)
				return evaluation{value: value, evaluated: evaluated}, err
			})
			if err != nil {
				return errors.Wrap(err, errors.ErrorTypeEvaluation, errors.ErrCodeEvaluation,
					"unable to resolve variable").
					WithComponent("$" + entry.Name).
					WithContext("expression", entry.Value)
			}

			e := result.(evaluation)
			value := e.value
			switch {
			case value == "":
				r.logger.Warn(gctx, nil, "Evaluation produced an empty value, using the declared value",
					"variable", entry.Name, "expression", entry.Value)
				value = entry.Value
			case !e.evaluated:
				r.logger.Debug(gctx, "Expression is already a literal",
					"variable", entry.Name, "expression", entry.Value)
			default:
				r.logger.Debug(gctx, "Resolved variable",
					"variable", entry.Name, "value", value, "shared", shared)
			}
			lookup.SetResolved(entry.Name, value)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		perf.EndWithError(ctx, err)
		return err
	}
	perf.End(ctx, "variables", len(pending))
	return nil
}
