// Package analysis runs rules over a compilation and collects their
// diagnostics.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"guidelint/internal/diagnostic"
	"guidelint/internal/logging"
	"guidelint/internal/semantic"
	"guidelint/internal/syntax"
)

// Analyzer drives a set of rules over the files of a compilation. Files are
// analyzed in parallel; rules must not keep state between invocations.
type Analyzer struct {
	rules            []Rule
	workers          int
	severities       map[string]diagnostic.Severity
	includeGenerated bool
	logger           *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithWorkers bounds the number of files analyzed concurrently. Values below
// one select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(a *Analyzer) { a.workers = n }
}

// WithDisabled removes the rules with the given ids.
func WithDisabled(ids ...string) Option {
	return func(a *Analyzer) {
		disabled := make(map[string]bool, len(ids))
		for _, id := range ids {
			disabled[id] = true
		}

		kept := a.rules[:0:0]
		for _, rule := range a.rules {
			if !disabled[rule.Descriptor().ID] {
				kept = append(kept, rule)
			}
		}
		a.rules = kept
	}
}

// WithSeverity overrides the severity of a rule's diagnostics.
func WithSeverity(id string, sev diagnostic.Severity) Option {
	return func(a *Analyzer) { a.severities[id] = sev }
}

// WithGenerated enables analysis of generated files.
func WithGenerated(include bool) Option {
	return func(a *Analyzer) { a.includeGenerated = include }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// NewAnalyzer creates an analyzer for rules.
func NewAnalyzer(rules []Rule, opts ...Option) *Analyzer {
	a := &Analyzer{
		rules:      append([]Rule(nil), rules...),
		severities: make(map[string]diagnostic.Severity),
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.workers < 1 {
		a.workers = runtime.GOMAXPROCS(0)
	}

	return a
}

// Rules returns the enabled rules.
func (a *Analyzer) Rules() []Rule {
	return a.rules
}

// Run analyzes every file of comp. A rule that panics aborts the run with an
// error naming the rule and file; the panic value is wrapped when it is an
// error. Diagnostics are sorted by file, offset and rule id.
func (a *Analyzer) Run(ctx context.Context, comp *semantic.Compilation) ([]diagnostic.Diagnostic, error) {
	start := time.Now()

	reg := newRegistry()
	for _, rule := range a.rules {
		reg.current = rule.Descriptor().ID
		rule.Initialize(reg)
	}

	trees := comp.Trees()
	if len(trees) == 0 {
		return nil, nil
	}

	// each goroutine writes only its own slot
	results := make([][]diagnostic.Diagnostic, len(trees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(a.workers, len(trees)))

	for i, tree := range trees {
		g.Go(func() error {
			diags, err := a.analyzeTree(gctx, comp, reg, tree)
			if err != nil {
				return err
			}
			results[i] = diags
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []diagnostic.Diagnostic
	for _, diags := range results {
		out = append(out, diags...)
	}
	sortDiagnostics(out)

	a.logger.Info("analysis finished",
		"files", len(trees),
		"rules", len(a.rules),
		"diagnostics", len(out),
		"elapsed", time.Since(start))

	return out, nil
}

func (a *Analyzer) analyzeTree(ctx context.Context, comp *semantic.Compilation, reg *registry, tree *syntax.Tree) ([]diagnostic.Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !a.includeGenerated && tree.Generated() {
		a.logger.Debug("skipping generated file", "file", tree.Path)
		return nil, nil
	}

	a.logger.Debug("analyzing file", "file", tree.Path, "syntax_errors", len(tree.Errors()))

	var diags []diagnostic.Diagnostic
	report := func(d diagnostic.Diagnostic) {
		if sev, ok := a.severities[d.Rule]; ok {
			d.Severity = sev
		}
		diags = append(diags, d)
	}

	for _, typ := range comp.TypesIn(tree) {
		for _, entry := range reg.symbols[typ.TypeKind()] {
			sc := &SymbolContext{Context: ctx, Compilation: comp, Symbol: typ, report: report}
			if err := invoke(entry.rule, tree, func() { entry.action(sc) }); err != nil {
				return nil, err
			}
		}
	}

	for _, root := range comp.Operations(tree) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var failure error
		semantic.Inspect(root, func(op semantic.Operation) bool {
			// Inspect only prunes the current subtree, so later siblings
			// still arrive after a failure.
			if failure != nil {
				return false
			}
			for _, entry := range reg.operations[op.Kind()] {
				oc := &OperationContext{Context: ctx, Compilation: comp, Operation: op, report: report}
				if err := invoke(entry.rule, tree, func() { entry.action(oc) }); err != nil {
					failure = err
					return false
				}
			}
			return true
		})
		if failure != nil {
			return nil, failure
		}
	}

	return diags, nil
}

// invoke runs fn, turning a panic into an error.
func invoke(rule string, tree *syntax.Tree, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("rule %s failed on %s: %w", rule, tree.Path, e)
				return
			}
			err = fmt.Errorf("rule %s failed on %s: %v", rule, tree.Path, r)
		}
	}()

	fn()

	return nil
}

func sortDiagnostics(diags []diagnostic.Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i].Location, diags[j].Location
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.StartByte != b.StartByte {
			return a.StartByte < b.StartByte
		}
		return diags[i].Rule < diags[j].Rule
	})
}
