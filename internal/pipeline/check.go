package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"guidelint/internal/analysis"
	"guidelint/internal/config"
	"guidelint/internal/crawler"
	"guidelint/internal/diagnostic"
	"guidelint/internal/git"
	"guidelint/internal/rules"
	"guidelint/internal/semantic"
	"guidelint/internal/storage"
	"guidelint/internal/syntax"
)

// Check runs the guideline rules over a set of roots.
type Check struct {
	Config *config.Config
	Rules  []analysis.Rule
	Logger *slog.Logger

	// Since, when set, limits diagnostics to lines changed relative to
	// this git revision.
	Since string

	// Store, when set, receives the finished run.
	Store storage.RunStore
}

// Result is the outcome of one check.
type Result struct {
	RunID       int64
	Files       int
	Diagnostics []diagnostic.Diagnostic
}

// NewCheck creates a check over the full rule catalog.
func NewCheck(cfg *config.Config, logger *slog.Logger) *Check {
	return &Check{
		Config: cfg,
		Rules:  rules.All(),
		Logger: logger,
	}
}

func (c *Check) Run(ctx context.Context, roots ...string) (*Result, error) {
	started := time.Now()

	trees, err := c.parseStage(ctx, roots)
	if err != nil {
		return nil, err
	}

	comp := semantic.NewCompilation(trees...)

	diags, err := c.analyzeStage(ctx, comp)
	if err != nil {
		return nil, err
	}

	if c.Since != "" {
		if diags, err = c.changedStage(ctx, roots, diags); err != nil {
			return nil, err
		}
	}

	result := &Result{Files: len(trees), Diagnostics: diags}
	if c.Store != nil {
		run := storage.Run{StartedAt: started, Roots: roots, Files: len(trees)}
		if result.RunID, err = c.Store.SaveRun(ctx, run, diags); err != nil {
			return nil, fmt.Errorf("failed to save run: %w", err)
		}
		c.Logger.Debug("run saved", "id", result.RunID)
	}

	return result, nil
}

func (c *Check) parseStage(ctx context.Context, roots []string) ([]*syntax.Tree, error) {
	cr := crawler.NewCrawler(c.Logger, c.Config.Exclude...)

	paths, err := cr.Find(roots...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	c.Logger.Debug("files found", "count", len(paths))

	return cr.Parse(ctx, paths, c.Config.Workers)
}

func (c *Check) analyzeStage(ctx context.Context, comp *semantic.Compilation) ([]diagnostic.Diagnostic, error) {
	opts := []analysis.Option{
		analysis.WithWorkers(c.Config.Workers),
		analysis.WithDisabled(c.Config.Disabled...),
		analysis.WithGenerated(c.Config.IncludeGenerated),
		analysis.WithLogger(c.Logger),
	}
	for id, s := range c.Config.Severities {
		sev, err := diagnostic.ParseSeverity(s)
		if err != nil {
			return nil, fmt.Errorf("severity for %s: %w", id, err)
		}
		opts = append(opts, analysis.WithSeverity(id, sev))
	}

	return analysis.NewAnalyzer(c.Rules, opts...).Run(ctx, comp)
}

func (c *Check) changedStage(ctx context.Context, roots []string, diags []diagnostic.Diagnostic) ([]diagnostic.Diagnostic, error) {
	var changes []git.ChangedFile
	seen := make(map[string]bool)
	for _, root := range roots {
		dir := root
		if info, err := os.Stat(root); err == nil && !info.IsDir() {
			dir = filepath.Dir(root)
		}
		if seen[dir] {
			continue
		}
		seen[dir] = true

		files, err := git.GetChangedFiles(ctx, dir, c.Since)
		if err != nil {
			return nil, err
		}
		changes = append(changes, files...)
	}

	kept := analysis.Affected(diags, changes)
	c.Logger.Debug("filtered to changed lines", "since", c.Since, "kept", len(kept), "total", len(diags))

	return kept, nil
}
