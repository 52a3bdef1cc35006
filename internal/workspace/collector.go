// Package workspace builds the scratch copy of the Sass packages that the
// documentation pipeline parses and compiles against.
//
// The scratch dir starts out as <scratch>/<pkg>/src/**/*.scss. Once parsing is
// done, PrepareForCompile turns it into <scratch>/<namespace>/<pkg>/dist so
// that the published import paths resolve with the scratch dir as the only
// include path.
package workspace

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/conneroisu/sassdocgen/internal/errors"
	"github.com/conneroisu/sassdocgen/internal/logging"
	"github.com/conneroisu/sassdocgen/internal/validation"
)

const (
	sourceDir = "src"
	distDir   = "dist"
	scssExt   = ".scss"
)

// Config describes where packages are read from and copied to.
type Config struct {
	PackagesDir string
	ScratchDir  string
	Namespace   string
	Exclude     []string
	Concurrency int
}

// bufferPool hands out copy buffers to the copy workers.
type bufferPool struct {
	pool sync.Pool
}

func newBufferPool() *bufferPool {
	return &bufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]byte, 32*1024)
				return &buf
			},
		},
	}
}

func (bp *bufferPool) get() *[]byte  { return bp.pool.Get().(*[]byte) }
func (bp *bufferPool) put(b *[]byte) { bp.pool.Put(b) }

// Collector owns the scratch dir for one run.
type Collector struct {
	config   Config
	logger   logging.Logger
	buffers  *bufferPool
	prepared bool
}

// NewCollector creates a collector.
func NewCollector(config Config, logger logging.Logger) *Collector {
	if config.Concurrency <= 0 {
		config.Concurrency = 8
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Collector{
		config:  config,
		logger:  logger.WithComponent("workspace"),
		buffers: newBufferPool(),
	}
}

// ScratchDir returns the scratch dir, which is also the compile include path.
func (c *Collector) ScratchDir() string {
	return c.config.ScratchDir
}

type copyJob struct {
	src string
	dst string
}

// Collect recreates the scratch dir and copies the .scss sources of every
// package that is not excluded. It returns the number of files copied.
func (c *Collector) Collect(ctx context.Context) (int, error) {
	perf := logging.StartOperation(c.logger, "collect")

	if err := os.RemoveAll(c.config.ScratchDir); err != nil {
		return 0, errors.WrapIO(err, errors.ErrCodeWorkspace, "removing scratch dir").
			WithLocation(c.config.ScratchDir, 0)
	}
	if err := os.MkdirAll(c.config.ScratchDir, 0o755); err != nil {
		return 0, errors.WrapIO(err, errors.ErrCodeWorkspace, "creating scratch dir").
			WithLocation(c.config.ScratchDir, 0)
	}
	c.prepared = false

	jobs, err := c.plan(ctx)
	if err != nil {
		perf.EndWithError(ctx, err)
		return 0, err
	}

	var copied atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.Concurrency)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := c.copyFile(job.src, job.dst); err != nil {
				return errors.WrapIO(err, errors.ErrCodeWorkspace, "copying source").
					WithLocation(job.src, 0)
			}
			copied.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		perf.EndWithError(ctx, err)
		return 0, err
	}

	perf.End(ctx, "files", copied.Load())
	return int(copied.Load()), nil
}

// plan lists the files to copy in lexical order.
func (c *Collector) plan(ctx context.Context) ([]copyJob, error) {
	entries, err := os.ReadDir(c.config.PackagesDir)
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeWorkspace, "reading packages dir").
			WithLocation(c.config.PackagesDir, 0)
	}

	var jobs []copyJob
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := entry.Name()
		if !entry.IsDir() || slices.Contains(c.config.Exclude, name) {
			continue
		}
		if err := validation.ValidatePackageName(name); err != nil {
			c.logger.Warn(ctx, err, "Skipping package", "package", name)
			continue
		}

		src := filepath.Join(c.config.PackagesDir, name, sourceDir)
		info, err := os.Stat(src)
		if os.IsNotExist(err) {
			c.logger.Debug(ctx, "Package has no sources", "package", name)
			continue
		}
		if err != nil {
			return nil, errors.WrapIO(err, errors.ErrCodeWorkspace, "reading package").WithLocation(src, 0)
		}
		if !info.IsDir() {
			continue
		}

		err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, scssExt) {
				return nil
			}
			rel, err := filepath.Rel(src, path)
			if err != nil {
				return err
			}
			jobs = append(jobs, copyJob{
				src: path,
				dst: filepath.Join(c.config.ScratchDir, name, sourceDir, rel),
			})
			return nil
		})
		if err != nil {
			return nil, errors.WrapIO(err, errors.ErrCodeWorkspace, "walking package sources").
				WithLocation(src, 0)
		}
	}
	return jobs, nil
}

func (c *Collector) copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	buf := c.buffers.get()
	defer c.buffers.put(buf)

	if _, err := io.CopyBuffer(out, in, *buf); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// root is the directory that currently holds the package dirs.
func (c *Collector) root() string {
	if c.prepared {
		return filepath.Join(c.config.ScratchDir, c.config.Namespace)
	}
	return c.config.ScratchDir
}

// Packages returns the sorted names of the packages in the scratch dir.
func (c *Collector) Packages() ([]string, error) {
	entries, err := os.ReadDir(c.root())
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeWorkspace, "reading scratch dir").WithLocation(c.root(), 0)
	}

	packages := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			packages = append(packages, entry.Name())
		}
	}
	slices.Sort(packages)
	return packages, nil
}

// PrepareForCompile renames every src dir to dist and moves the packages
// under the namespace dir. It is a no-op when already prepared.
func (c *Collector) PrepareForCompile() error {
	if c.prepared {
		return nil
	}

	packages, err := c.Packages()
	if err != nil {
		return err
	}

	namespaced := filepath.Join(c.config.ScratchDir, c.config.Namespace)
	for _, pkg := range packages {
		if pkg == c.config.Namespace {
			return errors.NewConfigError(errors.ErrCodeWorkspace, "package "+pkg+" collides with the namespace dir")
		}
	}
	if err := os.MkdirAll(namespaced, 0o755); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWorkspace, "creating namespace dir").WithLocation(namespaced, 0)
	}

	for _, pkg := range packages {
		dir := filepath.Join(c.config.ScratchDir, pkg)
		src := filepath.Join(dir, sourceDir)
		dist := filepath.Join(dir, distDir)
		if err := os.Rename(src, dist); err != nil {
			return errors.WrapIO(err, errors.ErrCodeWorkspace, "renaming sources").WithLocation(src, 0)
		}

		target := filepath.Join(namespaced, pkg)
		if err := os.Rename(dir, target); err != nil {
			return errors.WrapIO(err, errors.ErrCodeWorkspace, "moving package").WithLocation(dir, 0)
		}
	}

	c.prepared = true
	c.logger.Debug(context.Background(), "Prepared scratch dir", "packages", len(packages), "namespace", c.config.Namespace)
	return nil
}

// Clean removes the scratch dir.
func (c *Collector) Clean() error {
	if err := os.RemoveAll(c.config.ScratchDir); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWorkspace, "removing scratch dir").
			WithLocation(c.config.ScratchDir, 0)
	}
	c.prepared = false
	return nil
}
