// Package build runs the documentation pipeline: collect the package
// sources, parse their doc comments, format every public item by group,
// resolve variable values through the Sass compiler and write the bundles.
package build

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/conneroisu/sassdocgen/internal/config"
	"github.com/conneroisu/sassdocgen/internal/emit"
	"github.com/conneroisu/sassdocgen/internal/errors"
	"github.com/conneroisu/sassdocgen/internal/example"
	"github.com/conneroisu/sassdocgen/internal/format"
	"github.com/conneroisu/sassdocgen/internal/logging"
	"github.com/conneroisu/sassdocgen/internal/registry"
	"github.com/conneroisu/sassdocgen/internal/resolve"
	"github.com/conneroisu/sassdocgen/internal/sass"
	"github.com/conneroisu/sassdocgen/internal/sassdoc"
	"github.com/conneroisu/sassdocgen/internal/types"
	"github.com/conneroisu/sassdocgen/internal/workspace"
)

// Pipeline runs one documentation build.
type Pipeline struct {
	config    *config.Config
	logger    logging.Logger
	compiler  sass.Compiler
	collector *workspace.Collector
	metrics   *Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCompiler uses compiler instead of starting the configured backend.
// The pipeline does not close it.
func WithCompiler(compiler sass.Compiler) Option {
	return func(p *Pipeline) {
		p.compiler = compiler
	}
}

// Result describes a successful run.
type Result struct {
	// Files are the written paths, sorted.
	Files       []string
	Items       int
	Groups      int
	Variables   int
	Diagnostics []errors.Diagnostic
	Stages      []StageTiming
	Duration    time.Duration
}

// Scan is the parsed state of the workspace before anything is compiled.
type Scan struct {
	Items    []*sassdoc.Item
	Index    *registry.Index
	Packages []string
}

// NewPipeline creates a pipeline for cfg.
func NewPipeline(cfg *config.Config, logger logging.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.Discard()
	}
	p := &Pipeline{
		config:  cfg,
		logger:  logger,
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.collector = workspace.NewCollector(workspace.Config{
		PackagesDir: cfg.Workspace.PackagesDir,
		ScratchDir:  cfg.Workspace.ScratchDir,
		Namespace:   cfg.Workspace.Namespace,
		Exclude:     cfg.Workspace.ExcludePackages,
		Concurrency: cfg.Workspace.CopyConcurrency,
	}, logger)
	return p
}

// Metrics returns the stage timings of the last run.
func (p *Pipeline) Metrics() *Metrics {
	return p.metrics
}

// Scan collects the sources into the scratch dir, parses them and builds the
// reference index.
func (p *Pipeline) Scan(ctx context.Context) (*Scan, error) {
	done := p.metrics.Track("collect")
	if _, err := p.collector.Collect(ctx); err != nil {
		return nil, err
	}
	done()

	done = p.metrics.Track("parse")
	scratch := p.collector.ScratchDir()
	rc, err := sassdoc.LoadRC(p.config.Sassdoc.RCDir)
	if err != nil {
		return nil, errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "loading "+sassdoc.RCFileName)
	}
	items, err := sassdoc.NewParser(rc, p.logger).ParseDir(ctx, scratch)
	if err != nil {
		return nil, err
	}
	done()

	packages, err := p.collector.Packages()
	if err != nil {
		return nil, err
	}

	index := registry.Build(items)
	for _, cycle := range index.DetectCycles() {
		p.logger.Warn(ctx, nil, "Require cycle", "cycle", cycleString(cycle))
	}

	return &Scan{Items: items, Index: index, Packages: packages}, nil
}

// Run executes the whole pipeline. Every error is fatal.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	p.metrics.Reset()
	perf := logging.StartOperation(p.logger, "generate")

	result, err := p.run(ctx)
	if err != nil {
		perf.EndWithError(ctx, err)
		return nil, err
	}

	result.Stages = p.metrics.Stages()
	result.Duration = p.metrics.Total()
	perf.End(ctx, "files", len(result.Files), "items", result.Items)
	return result, nil
}

func (p *Pipeline) run(ctx context.Context) (*Result, error) {
	scan, err := p.Scan(ctx)
	if err != nil {
		return nil, err
	}

	if err := p.collector.PrepareForCompile(); err != nil {
		return nil, err
	}

	compiler := p.compiler
	if compiler == nil {
		started, err := sass.New(p.config.Sass.Backend, sass.Options{
			Binary:       p.config.Sass.Binary,
			IncludePaths: []string{p.collector.ScratchDir()},
			Timeout:      p.config.Sass.Timeout,
			Logger:       p.logger,
		})
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeCompile, errors.ErrCodeCompilerStart, "starting sass compiler")
		}
		defer started.Close()
		compiler = started
	}
	preamble := sass.Preamble(p.config.Workspace.Namespace, scan.Packages)

	diagnostics := errors.NewErrorCollector()
	formatter := format.NewFormatter(
		scan.Index,
		example.NewCompiler(compiler, preamble, p.logger,
			example.WithUncompilableCode(p.config.Sassdoc.KeepUncompilable)),
		diagnostics,
		format.Config{
			SymbolPrefix: p.config.Sassdoc.SymbolPrefix,
			Strict:       p.config.Sassdoc.StrictLinks,
		},
		p.logger,
	)

	done := p.metrics.Track("format")
	docs, lookup, err := p.format(ctx, formatter, scan.Items)
	if err != nil {
		return nil, err
	}
	done()

	if err := diagnostics.Err(); err != nil {
		return nil, err
	}
	for _, warning := range diagnostics.Warnings() {
		p.logger.Warn(ctx, nil, warning.Message,
			"symbol", warning.Symbol, "kind", warning.Kind, "target", warning.Target, "file", warning.File)
	}

	done = p.metrics.Track("resolve")
	resolver := resolve.NewResolver(sass.NewErrorEvaluator(compiler, preamble), p.config.Sassdoc.Concurrency, p.logger)
	if err := resolver.Resolve(ctx, lookup); err != nil {
		return nil, err
	}
	resolve.Materialize(docs, lookup)
	done()

	if p.config.Workspace.Clean {
		if err := p.collector.Clean(); err != nil {
			return nil, err
		}
	}

	done = p.metrics.Track("emit")
	files, err := emit.New(emit.Config{
		Root:        p.config.Output.Root,
		LookupPath:  p.config.LookupPath(),
		PackagesDir: p.config.PackagesOutputDir(),
	}, p.logger).Emit(docs, lookup.Map())
	if err != nil {
		return nil, err
	}
	done()

	return &Result{
		Files:       files,
		Items:       len(scan.Items),
		Groups:      docs.Len(),
		Variables:   lookup.Len(),
		Diagnostics: diagnostics.Diagnostics(),
	}, nil
}

type groupSlot struct {
	docs   *types.GroupDocs
	lookup *resolve.Lookup
}

// format formats every group concurrently. Each group fills its own slot and
// the slots are merged in first-seen group order.
func (p *Pipeline) format(ctx context.Context, formatter *format.Formatter, items []*sassdoc.Item) (*types.GroupedDocs, *resolve.Lookup, error) {
	names, byGroup := partition(items)
	slots := make([]groupSlot, len(names))

	g, gctx := errgroup.WithContext(ctx)
	if p.config.Sassdoc.Concurrency > 0 {
		g.SetLimit(p.config.Sassdoc.Concurrency)
	}
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			docs, lookup, err := formatter.Group(gctx, byGroup[name])
			if err != nil {
				return err
			}
			slots[i] = groupSlot{docs: docs, lookup: lookup}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	grouped := types.NewGroupedDocs()
	lookup := resolve.NewLookup()
	for i, name := range names {
		*grouped.Group(name) = *slots[i].docs
		lookup.Merge(slots[i].lookup)
	}
	return grouped, lookup, nil
}

// partition splits the public items by primary group, keeping the order in
// which groups are first seen.
func partition(items []*sassdoc.Item) ([]string, map[string][]*sassdoc.Item) {
	var names []string
	byGroup := make(map[string][]*sassdoc.Item)
	for _, item := range items {
		if item.IsPrivate() {
			continue
		}
		group := item.PrimaryGroup()
		if _, ok := byGroup[group]; !ok {
			names = append(names, group)
		}
		byGroup[group] = append(byGroup[group], item)
	}
	return names, byGroup
}

func cycleString(cycle []types.SymbolKey) string {
	parts := make([]string, len(cycle))
	for i, key := range cycle {
		parts[i] = key.String()
	}
	return strings.Join(parts, " -> ")
}
