package sassdoc

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/conneroisu/sassdocgen/internal/errors"
	"github.com/conneroisu/sassdocgen/internal/logging"
	"github.com/conneroisu/sassdocgen/internal/types"
)

// Parser turns SCSS sources into raw documented items.
type Parser struct {
	rc     *RC
	logger logging.Logger
}

// NewParser creates a parser. A nil rc means SassDoc defaults.
func NewParser(rc *RC, logger logging.Logger) *Parser {
	if rc == nil {
		rc = DefaultRC()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Parser{rc: rc, logger: logger.WithComponent("sassdoc")}
}

// ParseDir parses every .scss file below dir in lexical order and links the
// resulting items together.
func (p *Parser) ParseDir(ctx context.Context, dir string) ([]*Item, error) {
	var items []*Item
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || filepath.Ext(path) != ".scss" {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if p.rc.Excluded(rel) {
			p.logger.Debug(ctx, "Skipping excluded file", "file", rel)
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return errors.WrapIO(err, errors.ErrCodeWorkspace, "reading "+rel)
		}
		fileItems, err := p.parseSource(ctx, rel, string(content))
		if err != nil {
			return err
		}
		items = append(items, fileItems...)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeParse, errors.ErrCodeParse, "parsing "+dir)
	}
	p.Link(items)
	p.logger.Debug(ctx, "Parsed documentation", "dir", dir, "items", len(items))
	return items, nil
}

// ParseFile parses a single source. The items are not linked; call Link
// once every file of a run has been parsed.
func (p *Parser) ParseFile(rel, content string) ([]*Item, error) {
	return p.parseSource(context.Background(), rel, content)
}

// poster holds file-wide defaults from a `////` comment.
type poster struct {
	access string
	group  []string
}

func (p *Parser) parseSource(ctx context.Context, rel, content string) ([]*Item, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	offsets := make([]int, len(lines))
	for i, off := 0, 0; i < len(lines); i++ {
		offsets[i] = off
		off += len(lines[i]) + 1
	}

	file := File{Path: rel, Name: filepath.Base(rel)}
	var defaults poster
	var items []*Item

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(trimmed, "////"):
			var block []string
			if rest := strings.TrimSpace(strings.TrimLeft(trimmed, "/")); rest != "" {
				block = append(block, rest)
			} else {
				for i+1 < len(lines) {
					next := strings.TrimSpace(lines[i+1])
					if !strings.HasPrefix(next, "///") {
						break
					}
					i++
					if strings.HasPrefix(next, "////") {
						break
					}
					block = append(block, commentText(next))
				}
			}
			p.applyPoster(ctx, rel, &defaults, block)

		case strings.HasPrefix(trimmed, "///"):
			start := i
			var block []string
			for i < len(lines) {
				t := strings.TrimSpace(lines[i])
				if !strings.HasPrefix(t, "///") || strings.HasPrefix(t, "////") {
					break
				}
				block = append(block, commentText(t))
				i++
			}
			for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
				i++
			}
			if i >= len(lines) {
				p.logger.Debug(ctx, "Doc comment at end of file ignored", "file", rel, "line", start+1)
				break
			}
			off := offsets[i] + len(lines[i]) - len(strings.TrimLeft(lines[i], " \t"))
			item, end, err := p.parseDeclaration(content, off)
			if err != nil {
				return nil, errors.WrapParse(err, "invalid declaration", rel, i+1)
			}
			if item == nil {
				p.logger.Debug(ctx, "Doc comment without a supported declaration", "file", rel, "line", start+1)
				i--
				break
			}
			item.File = file
			p.applyBlock(ctx, item, block)
			p.applyDefaults(item, defaults)
			items = append(items, item)
			// Resume after the declaration so its body is not rescanned.
			for i+1 < len(lines) && offsets[i+1] <= end {
				i++
			}
		}
	}
	return items, nil
}

// commentText strips the `///` marker and one following space.
func commentText(line string) string {
	text := strings.TrimPrefix(line, "///")
	return strings.TrimPrefix(text, " ")
}

var (
	variableDecl = regexp.MustCompile(`^\$([\w-]+)\s*:`)
	callableDecl = regexp.MustCompile(`^@(function|mixin)\s+([\w-]+)`)
	trailingFlag = regexp.MustCompile(`\s*!(default|global)\s*$`)
)

// parseDeclaration reads the declaration at off. It returns a nil item for
// declarations SassDoc documents but this pipeline does not (placeholders,
// rules), and the offset where the declaration ends.
func (p *Parser) parseDeclaration(src string, off int) (*Item, int, error) {
	rest := src[off:]
	if m := variableDecl.FindStringSubmatch(rest); m != nil {
		valueStart := off + len(m[0])
		end := statementEnd(src, valueStart)
		value := strings.TrimSpace(stripComments(src[valueStart:end]))
		scope := ScopePrivate
		for {
			f := trailingFlag.FindStringSubmatch(value)
			if f == nil {
				break
			}
			if f[1] == "default" {
				scope = ScopeDefault
			} else if scope != ScopeDefault {
				scope = ScopeGlobal
			}
			value = strings.TrimSpace(value[:len(value)-len(f[0])])
		}
		if value == "" {
			return nil, 0, fmt.Errorf("variable $%s has no value", m[1])
		}
		return &Item{Context: Context{
			Kind:  types.KindVariable,
			Name:  m[1],
			Value: value,
			Scope: scope,
			Line:  Lines{Start: lineAt(src, off), End: lineAt(src, end)},
		}}, end, nil
	}

	m := callableDecl.FindStringSubmatch(rest)
	if m == nil {
		return nil, off, nil
	}
	kind := types.KindMixin
	if m[1] == "function" {
		kind = types.KindFunction
	}
	pos := off + len(m[0])
	for pos < len(src) && (src[pos] == ' ' || src[pos] == '\t' || src[pos] == '\n') {
		pos++
	}
	if pos < len(src) && src[pos] == '(' {
		closeParen, err := matching(src, pos)
		if err != nil {
			return nil, 0, fmt.Errorf("%s %s: %w", kind, m[2], err)
		}
		pos = closeParen + 1
	} else if kind == types.KindFunction {
		return nil, 0, fmt.Errorf("function %s has no parameter list", m[2])
	}
	brace := indexTopLevel(src[pos:], '{')
	if brace < 0 {
		return nil, 0, fmt.Errorf("%s %s has no body", kind, m[2])
	}
	open := pos + brace
	closeBrace, err := matching(src, open)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", kind, m[2], err)
	}
	return &Item{Context: Context{
		Kind: kind,
		Name: m[2],
		Code: src[open+1 : closeBrace],
		Line: Lines{Start: lineAt(src, off), End: lineAt(src, closeBrace)},
	}}, closeBrace, nil
}

func (p *Parser) applyBlock(ctx context.Context, item *Item, block []string) {
	description, annotations, unknown := splitBlock(block)
	item.Description = strings.TrimSpace(strings.Join(description, "\n"))
	for _, a := range annotations {
		a.apply(item)
	}
	for _, tag := range unknown {
		p.logger.Debug(ctx, "Unknown annotation ignored",
			"annotation", tag, "item", item.Context.Name, "file", item.File.Path)
	}
}

func (p *Parser) applyPoster(ctx context.Context, rel string, defaults *poster, block []string) {
	var holder Item
	p.applyBlock(ctx, &holder, block)
	if holder.Access != "" {
		defaults.access = holder.Access
	}
	if len(holder.Group) > 0 {
		defaults.group = holder.Group
	}
	p.logger.Debug(ctx, "Applied poster comment", "file", rel, "group", defaults.group, "access", defaults.access)
}

func (p *Parser) applyDefaults(item *Item, defaults poster) {
	if len(item.Group) == 0 {
		if len(defaults.group) > 0 {
			item.Group = append([]string(nil), defaults.group...)
		} else {
			item.Group = []string{DefaultGroup}
		}
	}
	if item.Access == "" {
		switch {
		case p.rc.IsPrivateName(item.Context.Name):
			item.Access = AccessPrivate
		case defaults.access != "":
			item.Access = defaults.access
		default:
			item.Access = AccessPublic
		}
	}
	if len(p.rc.Groups) > 0 {
		item.GroupName = make(map[string]string, len(item.Group))
		for _, g := range item.Group {
			if name, ok := p.rc.Groups[g]; ok {
				item.GroupName[g] = name
			} else {
				item.GroupName[g] = g
			}
		}
	}
}
