// Package pkg provides the core libraries for mlca aperture complexity
// analysis.
//
// # Overview
//
// mlca scores how complex the multi-leaf collimator (MLC) apertures of a
// radiotherapy plan are, from individual control points up to the whole plan.
// The pkg directory is organized by stage of the analysis:
//
//  1. [rtplan] - Plan model and ingestion (parse, validate, classify)
//  2. [geometry] - Rectilinear aperture geometry (clipping, band union)
//  3. [complexity] - Scoring (aperture construction, per-level evaluation)
//  4. [report] - Run reports (CSV, JSON, MongoDB persistence)
//  5. [batch] - Concurrent multi-file analysis with result caching
//
// # Architecture
//
// The typical data flow through mlca:
//
//	Plan export (JSON)
//	         ↓
//	    [rtplan] package (parse + classify)
//	         ↓
//	    [complexity] package (apertures via [geometry], scores)
//	         ↓
//	    [report] package (rows per fraction group)
//	         ↓
//	    CSV/JSON output, optional MongoDB store
//
// # Quick Start
//
// Score a single plan:
//
//	plan, _, err := rtplan.Classify("plan.json")
//	if err != nil {
//	    return err
//	}
//	result, err := complexity.EvaluatePlan(plan, complexity.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("plan score: %0.3f\n", result.Score)
//
// Analyze a directory with caching:
//
//	files, _ := batch.Discover([]string{"./plans"})
//	runner := batch.NewRunner(fileCache, nil, logger)
//	res, err := runner.Run(ctx, files, batch.Options{
//	    Scoring: complexity.DefaultOptions(),
//	})
//
// # Supporting Packages
//
// [cache] - Result caching keyed by file content and scoring options, with
// file, redis, and null backends.
//
// [errors] - Structured errors with machine-readable codes. Per-beam failures
// carry MALFORMED_GEOMETRY or INVALID_SEQUENCING codes and never abort the
// surrounding plan.
//
// [observability] - Optional hooks for batch, cache, and API events without
// binding the libraries to a metrics backend.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/complexity/...    # Specific package
//
// [rtplan]: https://pkg.go.dev/github.com/fieldshape/mlca/pkg/rtplan
// [geometry]: https://pkg.go.dev/github.com/fieldshape/mlca/pkg/geometry
// [complexity]: https://pkg.go.dev/github.com/fieldshape/mlca/pkg/complexity
// [report]: https://pkg.go.dev/github.com/fieldshape/mlca/pkg/report
// [batch]: https://pkg.go.dev/github.com/fieldshape/mlca/pkg/batch
// [cache]: https://pkg.go.dev/github.com/fieldshape/mlca/pkg/cache
// [errors]: https://pkg.go.dev/github.com/fieldshape/mlca/pkg/errors
// [observability]: https://pkg.go.dev/github.com/fieldshape/mlca/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/fieldshape/mlca/pkg/buildinfo
package pkg
