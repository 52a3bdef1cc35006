// Package format turns raw documented items into the records emitted for
// the documentation site.
package format

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/conneroisu/sassdocgen/internal/errors"
	"github.com/conneroisu/sassdocgen/internal/example"
	"github.com/conneroisu/sassdocgen/internal/logging"
	"github.com/conneroisu/sassdocgen/internal/registry"
	"github.com/conneroisu/sassdocgen/internal/resolve"
	"github.com/conneroisu/sassdocgen/internal/sassdoc"
	"github.com/conneroisu/sassdocgen/internal/types"
)

// Formatter formats items against a reference index. Unresolved references
// are reported to the diagnostics collector instead of failing.
type Formatter struct {
	index        *registry.Index
	examples     *example.Compiler
	diagnostics  *errors.ErrorCollector
	symbolPrefix string
	unresolved   *regexp.Regexp
	strict       bool
	logger       logging.Logger
}

// Config configures a Formatter.
type Config struct {
	// SymbolPrefix is the naming prefix of the project's own symbols.
	SymbolPrefix string
	// Strict reports unresolved references as errors rather than warnings.
	Strict bool
}

// NewFormatter creates a formatter.
func NewFormatter(index *registry.Index, examples *example.Compiler, diagnostics *errors.ErrorCollector, cfg Config, logger logging.Logger) *Formatter {
	if logger == nil {
		logger = logging.Discard()
	}
	if diagnostics == nil {
		diagnostics = errors.NewErrorCollector()
	}
	prefix := regexp.QuoteMeta(cfg.SymbolPrefix)
	return &Formatter{
		index:        index,
		examples:     examples,
		diagnostics:  diagnostics,
		symbolPrefix: cfg.SymbolPrefix,
		unresolved:   regexp.MustCompile(`\$|(^|[^\w-])(` + prefix + `-|if\()`),
		strict:       cfg.Strict,
		logger:       logger.WithComponent("format"),
	}
}

// IsUnresolved reports whether a declared value needs the compiler to
// compute it: it references a variable, one of the project's own symbols or
// an if() conditional.
func (f *Formatter) IsUnresolved(value string) bool {
	return f.unresolved.MatchString(value)
}

// Group formats the public items of one group. Variables are registered in
// the returned lookup in declaration order.
func (f *Formatter) Group(ctx context.Context, items []*sassdoc.Item) (*types.GroupDocs, *resolve.Lookup, error) {
	docs := types.NewGroupDocs()
	lookup := resolve.NewLookup()
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if item.IsPrivate() {
			continue
		}
		switch item.Context.Kind {
		case types.KindVariable:
			docs.Variables = append(docs.Variables, f.Variable(item, lookup))
		case types.KindFunction:
			fn, err := f.Function(ctx, item)
			if err != nil {
				return nil, nil, err
			}
			docs.Functions = append(docs.Functions, fn)
		case types.KindMixin:
			mixin, err := f.Mixin(ctx, item)
			if err != nil {
				return nil, nil, err
			}
			docs.Mixins = append(docs.Mixins, mixin)
		default:
			f.logger.Error(ctx, nil, "Invalid item type",
				"type", item.Context.Kind, "item", item.Context.Name, "file", item.File.Path)
		}
	}
	return docs, lookup, nil
}

// Base formats the fields shared by every record.
func (f *Formatter) Base(item *sassdoc.Item) types.Base {
	typ := item.Type
	if typ == "" {
		typ = string(item.Context.Kind)
	}
	links := item.Links
	if links == nil {
		links = []types.Link{}
	}

	see := make([]*types.LinkTo, 0, len(item.See))
	for _, s := range item.See {
		see = append(see, f.link(item, s.Context.Name, s.Context.Kind, s.Description))
	}
	usedBy := make([]*types.LinkTo, 0, len(item.UsedBy))
	for _, u := range item.UsedBy {
		usedBy = append(usedBy, f.link(item, u.Context.Name, u.Context.Kind, u.Description))
	}
	requires := make([]*types.LinkTo, 0, len(item.Require))
	for _, r := range item.Require {
		requires = append(requires, f.link(item, r.Name, r.Kind, r.Description))
	}

	return types.Base{
		Name:        item.Context.Name,
		Type:        typ,
		Description: item.Description,
		File:        item.File.Path,
		Group:       item.PrimaryGroup(),
		Links:       links,
		See:         registry.Unique(see),
		UsedBy:      registry.Unique(usedBy),
		Requires:    registry.Unique(requires),
	}
}

// link resolves one cross reference, recording a diagnostic when the target
// does not exist.
func (f *Formatter) link(item *sassdoc.Item, name string, kind types.Kind, description string) *types.LinkTo {
	link, err := f.index.LinkTo(name, kind, description)
	if err == nil {
		return link
	}
	severity := errors.ErrorSeverityWarning
	if f.strict {
		severity = errors.ErrorSeverityError
	}
	f.diagnostics.Add(errors.Diagnostic{
		Symbol:   item.Context.Name,
		Kind:     string(item.Context.Kind),
		Group:    item.PrimaryGroup(),
		File:     item.File.Path,
		Target:   name,
		Message:  err.Error(),
		Severity: severity,
	})
	return nil
}

// Variable formats a variable and registers it in lookup. The resolved
// value stays empty when the compiler has to compute it.
func (f *Formatter) Variable(item *sassdoc.Item, lookup *resolve.Lookup) types.VariableDoc {
	base := f.Base(item)
	value := item.Context.Value
	isDefault := item.Context.Scope == sassdoc.ScopeDefault
	resolvedValue := value
	if f.IsUnresolved(value) {
		resolvedValue = ""
	}

	lookup.Set(types.VariableLookup{
		Name:          base.Name,
		Type:          base.Type,
		Value:         value,
		ResolvedValue: resolvedValue,
		IsDefault:     isDefault,
	})

	return types.VariableDoc{
		Base:          base,
		Code:          resolve.SourceCode(base.Name, value, isDefault),
		Value:         value,
		ResolvedValue: resolvedValue,
	}
}

// Function formats a function.
func (f *Formatter) Function(ctx context.Context, item *sassdoc.Item) (types.FunctionDoc, error) {
	callable, err := f.callable(ctx, item)
	if err != nil {
		return types.FunctionDoc{}, err
	}
	return types.FunctionDoc{CallableDoc: callable, Returns: item.Return}, nil
}

// Mixin formats a mixin.
func (f *Formatter) Mixin(ctx context.Context, item *sassdoc.Item) (types.CallableDoc, error) {
	return f.callable(ctx, item)
}

func (f *Formatter) callable(ctx context.Context, item *sassdoc.Item) (types.CallableDoc, error) {
	examples := []types.CompiledExample{}
	if f.examples != nil && len(item.Examples) > 0 {
		var err error
		examples, err = f.examples.CompileAll(ctx, item.Context.Name, item.Examples)
		if err != nil {
			return types.CallableDoc{}, err
		}
	}
	throws := item.Throw
	if throws == nil {
		throws = []string{}
	}
	parameters := item.Parameters
	if parameters == nil {
		parameters = []types.Parameter{}
	}

	return types.CallableDoc{
		Base:       f.Base(item),
		Code:       CallableCode(item.Context.Kind, item.Context.Name, parameters, item.Context.Code, f.symbolPrefix),
		Throws:     throws,
		Examples:   examples,
		Parameters: parameters,
	}, nil
}

// ParamCode renders a parameter as `$name` or `$name: default`. A default
// naming one of the project's variables without its `$` gets it back.
func ParamCode(p types.Parameter, symbolPrefix string) string {
	if p.Default == "" {
		return "$" + p.Name
	}
	def := p.Default
	if symbolPrefix != "" && strings.HasPrefix(def, symbolPrefix) {
		def = "$" + def
	}
	return fmt.Sprintf("$%s: %s", p.Name, def)
}

// CallableCode rebuilds the declaration of a function or mixin from its
// documented parameters and body.
func CallableCode(kind types.Kind, name string, params []types.Parameter, body, symbolPrefix string) string {
	var signature string
	if len(params) > 0 {
		rendered := make([]string, len(params))
		for i, p := range params {
			rendered[i] = ParamCode(p, symbolPrefix)
		}
		signature = "(" + strings.Join(rendered, ", ") + ")"
	}
	return fmt.Sprintf("@%s %s%s {%s}", kind, name, signature, body)
}
