// Package convert discovers vimdoc files and converts them in parallel.
// Documents are independent, so each worker owns its own parser and
// renderer; the only shared state is the work list.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ConvertFunc converts one document's source to rendered output.
type ConvertFunc func(ctx context.Context, name string, src []byte) (string, error)

// Runner batch-converts files.
type Runner struct {
	// Convert produces the rendered output for one file.
	Convert ConvertFunc

	// Extensions filters directory entries (without the dot); explicitly
	// listed files are always converted.
	Extensions []string

	// Recursive descends into subdirectories during discovery.
	Recursive bool

	// OutExt is the extension of output files, ".html" by default.
	OutExt string

	// Jobs bounds the number of concurrent conversions; 0 means one per
	// available CPU.
	Jobs int

	Logger *zap.Logger
}

// Run discovers the files reachable from paths and converts each one,
// writing the result next to the input with the output extension. It
// returns the first conversion error, after in-flight work finishes.
func (r *Runner) Run(ctx context.Context, paths []string) error {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	files, err := r.Discover(paths)
	if err != nil {
		return err
	}
	logger.Debug("discovered inputs", zap.Int("count", len(files)))

	g, ctx := errgroup.WithContext(ctx)
	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	g.SetLimit(jobs)
	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := r.ConvertFile(ctx, file)
			if err != nil {
				return err
			}
			logger.Info("converted", zap.String("in", file), zap.String("out", out))
			return nil
		})
	}
	return g.Wait()
}

// ConvertFile converts a single file and returns the output path.
func (r *Runner) ConvertFile(ctx context.Context, path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	out, err := r.Convert(ctx, path, src)
	if err != nil {
		return "", fmt.Errorf("convert %s: %w", path, err)
	}
	outPath := r.OutPath(path)
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}
	return outPath, nil
}

// OutPath maps an input path to its output path, replacing the extension.
func (r *Runner) OutPath(path string) string {
	ext := r.OutExt
	if ext == "" {
		ext = ".html"
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// Discover expands the given paths into the list of files to convert.
// Files are taken as-is; directories contribute entries matching the
// extension filter, descending when Recursive is set.
func (r *Runner) Discover(paths []string) ([]string, error) {
	queue := append([]string(nil), paths...)
	var files []string

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", path, err)
		}
		for _, e := range entries {
			child := filepath.Join(path, e.Name())
			if e.IsDir() {
				if r.Recursive {
					queue = append(queue, child)
				}
				continue
			}
			if r.matchExt(e.Name()) {
				files = append(files, child)
			}
		}
	}
	return files, nil
}

func (r *Runner) matchExt(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	for _, want := range r.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}
