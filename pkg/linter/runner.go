package linter

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/pslint/pkg/observability"
	"github.com/platinummonkey/pslint/pkg/script"
)

// FileResult pairs a lint result with the file it came from. Err is set
// when the file could not be read or parsed at all; rule-level failures
// stay inside Result.Faults.
type FileResult struct {
	Path   string  `json:"path"`
	Result *Result `json:"result,omitempty"`
	Err    error   `json:"-"`
}

// Runner lints many files concurrently against one engine. Parsed trees
// are cached in an expirable LRU keyed by path, modification time and
// size, so re-lints of unchanged files (watch mode, repeated API calls)
// skip the parse.
type Runner struct {
	engine      *Engine
	config      *Config
	parallelism int
	cache       *expirable.LRU[string, *script.ScriptBlockNode]
	metrics     *observability.Metrics
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithParallelism bounds the number of files linted at once.
func WithParallelism(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.parallelism = n
		}
	}
}

// WithTreeCache sizes the parsed-tree cache. size 0 disables caching.
func WithTreeCache(size int, ttl time.Duration) RunnerOption {
	return func(r *Runner) {
		if size > 0 {
			r.cache = expirable.NewLRU[string, *script.ScriptBlockNode](size, nil, ttl)
		} else {
			r.cache = nil
		}
	}
}

// WithRunnerMetrics enables cache and per-file outcome counters.
func WithRunnerMetrics(m *observability.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner creates a runner. By default parallelism matches GOMAXPROCS
// and the tree cache holds 256 entries for 5 minutes.
func NewRunner(engine *Engine, cfg *Config, opts ...RunnerOption) *Runner {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r := &Runner{
		engine:      engine,
		config:      cfg,
		parallelism: runtime.GOMAXPROCS(0),
		cache:       expirable.NewLRU[string, *script.ScriptBlockNode](256, nil, 5*time.Minute),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LintFiles lints the given paths, skipping any that match the config's
// ignore patterns. Results come back sorted by path regardless of
// completion order. The returned error is context cancellation only;
// per-file failures are reported in their FileResult.
func (r *Runner) LintFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	var selected []string
	for _, p := range paths {
		if !r.config.Ignored(p) {
			selected = append(selected, p)
		}
	}

	results := make([]FileResult, len(selected))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)

	for i, path := range selected {
		i, path := i, path
		g.Go(func() error {
			res, err := r.lintFile(gctx, path)
			if err != nil && gctx.Err() != nil {
				return err
			}
			if r.metrics != nil {
				r.metrics.RecordFileLinted(err == nil)
			}
			results[i] = FileResult{Path: path, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(a, b int) bool { return results[a].Path < results[b].Path })
	return results, nil
}

// LintSource lints in-memory source, bypassing the filesystem and the
// tree cache. path is used for diagnostic spans only.
func (r *Runner) LintSource(ctx context.Context, path, src string) (*Result, error) {
	root := script.Parse(src, path)
	return r.engine.RunWithIndex(ctx, root, path, NewTextIndexFromSource(path, src))
}

func (r *Runner) lintFile(ctx context.Context, path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	key := fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size())

	if r.cache != nil {
		root, ok := r.cache.Get(key)
		if r.metrics != nil {
			r.metrics.RecordCacheLookup(ok)
		}
		if ok {
			return r.engine.Run(ctx, root, path)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	src := string(data)

	root := script.Parse(src, path)
	if r.cache != nil {
		r.cache.Add(key, root)
	}
	return r.engine.RunWithIndex(ctx, root, path, NewTextIndexFromSource(path, src))
}

// Summary aggregates lint results across files.
type Summary struct {
	Files       int `json:"files"`
	Failed      int `json:"failed"`
	Diagnostics int `json:"diagnostics"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
	Infos       int `json:"infos"`
	Faults      int `json:"faults"`
}

// Summarize tallies diagnostics by severity across file results.
func Summarize(results []FileResult) Summary {
	var s Summary
	s.Files = len(results)
	for _, fr := range results {
		if fr.Err != nil {
			s.Failed++
			continue
		}
		if fr.Result == nil {
			continue
		}
		s.Diagnostics += len(fr.Result.Diagnostics)
		s.Faults += len(fr.Result.Faults)
		for _, d := range fr.Result.Diagnostics {
			switch d.Severity {
			case SeverityError:
				s.Errors++
			case SeverityWarning:
				s.Warnings++
			case SeverityInfo:
				s.Infos++
			}
		}
	}
	return s
}
