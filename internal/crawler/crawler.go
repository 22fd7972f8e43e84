package crawler

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"guidelint/internal/syntax"
)

// Crawler finds and parses C# source files.
type Crawler struct {
	ignored []string
	exclude []string
	logger  *slog.Logger
}

// NewCrawler creates a new crawler instance. Exclude patterns are matched
// with filepath.Match against base names and root-relative paths.
func NewCrawler(logger *slog.Logger, exclude ...string) *Crawler {
	return &Crawler{
		ignored: []string{".git", ".vs", "bin", "obj", "node_modules", "packages"},
		exclude: exclude,
		logger:  logger,
	}
}

// Find walks each root and returns the sorted, de-duplicated .cs files.
// A root may name a single file.
func (c *Crawler) Find(roots ...string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if isSource(root) {
				add(filepath.Clean(root))
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				c.logger.Warn("skipping unreadable path", "path", path, "error", err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Skip ignored directories
			if d.IsDir() {
				if path != root && (c.isIgnored(d.Name()) || c.isExcluded(root, path)) {
					return filepath.SkipDir
				}
				return nil
			}

			if !isSource(d.Name()) || c.isExcluded(root, path) {
				return nil
			}
			add(path)

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(out)

	return out, nil
}

// Parse parses paths with up to workers goroutines. Files that cannot be
// read or parsed are logged and left out; the result keeps path order.
func (c *Crawler) Parse(ctx context.Context, paths []string, workers int) ([]*syntax.Tree, error) {
	trees := make([]*syntax.Tree, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			tree, err := syntax.ParseFile(ctx, path)
			if err != nil {
				c.logger.Warn("skipping file", "path", path, "error", err)
				return nil
			}
			if errs := tree.Errors(); len(errs) > 0 {
				c.logger.Debug("file has syntax errors", "path", path, "count", len(errs))
			}
			trees[i] = tree

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := trees[:0]
	for _, tree := range trees {
		if tree != nil {
			out = append(out, tree)
		}
	}

	return out, nil
}

func (c *Crawler) isIgnored(name string) bool {
	for _, ign := range c.ignored {
		if name == ign {
			return true
		}
	}

	return false
}

func (c *Crawler) isExcluded(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range c.exclude {
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}

func isSource(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".cs")
}
