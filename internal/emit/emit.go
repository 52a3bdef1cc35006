// Package emit writes the documentation bundles: one sassdoc.json per group
// and the global variable lookup table.
package emit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/sassdocgen/internal/errors"
	"github.com/conneroisu/sassdocgen/internal/logging"
	"github.com/conneroisu/sassdocgen/internal/types"
)

// BundleFileName is the name of every per-group bundle.
const BundleFileName = "sassdoc.json"

// Config locates the emitted files.
type Config struct {
	// Root is the directory reported paths are relative to.
	Root string
	// LookupPath is the variable lookup table file.
	LookupPath string
	// PackagesDir holds one directory per group.
	PackagesDir string
}

// Emitter serializes documentation to disk.
type Emitter struct {
	config Config
	logger logging.Logger
}

// New creates an emitter.
func New(config Config, logger logging.Logger) *Emitter {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Emitter{config: config, logger: logger.WithComponent("emit")}
}

type output struct {
	path string
	data []byte
}

// Emit writes every group bundle and the lookup table. Everything is
// serialized before the first write. It returns the written paths relative
// to the configured root, sorted.
func (e *Emitter) Emit(docs *types.GroupedDocs, lookup map[string]types.VariableLookup) ([]string, error) {
	outputs := make([]output, 0, docs.Len()+1)

	data, err := marshal(lookup)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, errors.ErrCodeEmit, "encoding variable lookup")
	}
	outputs = append(outputs, output{path: e.config.LookupPath, data: data})

	dirs := make(map[string]string, docs.Len())
	for _, group := range docs.Names() {
		dir := PascalCase(group)
		if previous, ok := dirs[dir]; ok {
			return nil, errors.NewInternalError(errors.ErrCodeEmit,
				fmt.Sprintf("groups %q and %q both map to %s", previous, group, dir), nil)
		}
		dirs[dir] = group

		groupDocs, _ := docs.Get(group)
		data, err := marshal(groupDocs)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, errors.ErrCodeEmit, "encoding group "+group)
		}
		outputs = append(outputs, output{
			path: filepath.Join(e.config.PackagesDir, dir, BundleFileName),
			data: data,
		})
	}

	files := make([]string, 0, len(outputs))
	for _, out := range outputs {
		if err := writeFile(out.path, out.data); err != nil {
			return nil, errors.WrapIO(err, errors.ErrCodeEmit, "writing "+out.path).WithLocation(out.path, 0)
		}
		e.logger.Debug(context.Background(), "Wrote file", "path", out.path, "bytes", len(out.data))
		files = append(files, e.relative(out.path))
	}
	sort.Strings(files)
	return files, nil
}

// relative reports path relative to the root, keeping the root's own name
// as the first element (src/constants/...).
func (e *Emitter) relative(path string) string {
	root := filepath.Clean(e.config.Root)
	base := filepath.Dir(root)
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// marshal encodes v as two-space indented JSON with a trailing newline.
// HTML characters are kept verbatim since examples contain markup.
func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFile replaces path through a temporary file in the same directory.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

var title = cases.Title(language.English)

// PascalCase converts a group name such as "app-bar" to "AppBar".
func PascalCase(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
	var b strings.Builder
	for _, word := range words {
		b.WriteString(title.String(word))
	}
	return b.String()
}
