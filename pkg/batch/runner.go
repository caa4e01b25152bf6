package batch

import (
	"context"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/fieldshape/mlca/pkg/cache"
	"github.com/fieldshape/mlca/pkg/complexity"
	"github.com/fieldshape/mlca/pkg/observability"
	"github.com/fieldshape/mlca/pkg/report"
	"github.com/fieldshape/mlca/pkg/rtplan"
)

// scoreRevision versions the scoring algorithm in cache keys. Bump it when
// a change to the score invalidates previously cached results.
const scoreRevision = "1"

// Runner analyzes plan files with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store analysis results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Options control one batch run.
type Options struct {
	// Scoring holds the complexity parameters applied to every file.
	Scoring complexity.Options

	// Workers bounds concurrent file analysis. Zero means GOMAXPROCS.
	Workers int

	// Refresh bypasses cached results and recomputes everything.
	Refresh bool

	// Progress, when set, is called once per completed file from worker
	// goroutines. It must be safe for concurrent use.
	Progress func(FileResult)
}

// FileResult is the outcome of analyzing one file.
type FileResult struct {
	Path     string
	Class    rtplan.Class
	Plan     *report.PlanReport // set only for usable files
	Cached   bool
	Err      error // set for skipped and failed files
	Duration time.Duration
}

// Result aggregates a whole run.
type Result struct {
	Report   *report.Report
	Files    []FileResult
	Analyzed int
	Skipped  int
	Failed   int
	Duration time.Duration
}

// Run analyzes every file concurrently and assembles the run report in the
// input order. File-level problems are recorded in the report, not returned;
// the only error out of Run is context cancellation.
func (r *Runner) Run(ctx context.Context, files []string, opts Options) (*Result, error) {
	if err := opts.Scoring.Validate(); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	observability.Batch().OnRunStart(ctx, len(files), workers)
	r.Logger.Info("starting batch run", "files", len(files), "workers", workers)

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fr := r.AnalyzeFile(gctx, path, opts)
			results[i] = fr
			if opts.Progress != nil {
				opts.Progress(fr)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Report:   report.New(opts.Scoring),
		Files:    results,
		Duration: time.Since(start),
	}
	for _, fr := range results {
		switch {
		case fr.Class == rtplan.ClassUsable && fr.Plan != nil:
			res.Analyzed++
			res.Report.Append(*fr.Plan)
		case fr.Class == rtplan.ClassUsable:
			res.Failed++
			res.Report.AddSkipped(fr.Path, fr.Class, fr.Err)
		default:
			res.Skipped++
			res.Report.AddSkipped(fr.Path, fr.Class, fr.Err)
		}
	}

	observability.Batch().OnRunComplete(ctx, res.Analyzed, res.Skipped, res.Failed, res.Duration)
	r.Logger.Info("batch run complete",
		"analyzed", res.Analyzed,
		"skipped", res.Skipped,
		"failed", res.Failed,
		"duration", res.Duration)
	return res, nil
}

// AnalyzeFile classifies, scores, and caches one file. Skips and failures
// are reported inside the FileResult so callers can keep going.
func (r *Runner) AnalyzeFile(ctx context.Context, path string, opts Options) FileResult {
	start := time.Now()
	observability.Batch().OnFileStart(ctx, path)
	fr := r.analyzeFile(ctx, path, opts)
	fr.Duration = time.Since(start)
	observability.Batch().OnFileComplete(ctx, path, string(fr.Class), fr.Duration, fr.Err)
	return fr
}

func (r *Runner) analyzeFile(ctx context.Context, path string, opts Options) FileResult {
	fr := FileResult{Path: path}

	contentHash, err := cache.HashFile(path)
	if err != nil {
		fr.Class = rtplan.ClassUnreadable
		fr.Err = err
		r.Logger.Warn("unreadable file", "file", path, "err", err)
		return fr
	}
	cacheKey := r.Keyer.PlanKey(contentHash, planKeyOpts(opts.Scoring))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var pr report.PlanReport
			if err := json.Unmarshal(data, &pr); err == nil {
				observability.Cache().OnCacheHit(ctx, "plan")
				pr.File = path
				fr.Class = rtplan.ClassUsable
				fr.Plan = &pr
				fr.Cached = true
				r.Logger.Debug("cache hit", "file", path)
				return fr
			}
		}
		observability.Cache().OnCacheMiss(ctx, "plan")
	}

	plan, class, err := rtplan.Classify(path)
	fr.Class = class
	if err != nil {
		fr.Err = err
		r.Logger.Warn("skipping file", "file", path, "class", class, "err", err)
		return fr
	}

	result, err := complexity.EvaluatePlan(plan, opts.Scoring)
	if err != nil {
		fr.Err = err
		return fr
	}
	pr := report.BuildPlanReport(plan, result)
	fr.Plan = &pr
	r.Logger.Debug("analyzed plan", "file", path, "score", result.Score)

	if data, err := json.Marshal(pr); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLResult); err == nil {
			observability.Cache().OnCacheSet(ctx, "plan", len(data))
		}
	}
	return fr
}

// planKeyOpts maps scoring options into the cache key structure.
func planKeyOpts(o complexity.Options) cache.PlanKeyOpts {
	return cache.PlanKeyOpts{
		XWeight:       o.XWeight,
		YWeight:       o.YWeight,
		MaxFieldSizeX: o.MaxFieldSizeX,
		MaxFieldSizeY: o.MaxFieldSizeY,
		Version:       scoreRevision,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
