package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldshape/mlca/pkg/batch"
	"github.com/fieldshape/mlca/pkg/buildinfo"
	"github.com/fieldshape/mlca/pkg/complexity"
	apperrors "github.com/fieldshape/mlca/pkg/errors"
	"github.com/fieldshape/mlca/pkg/report"
)

// Output formats for the analyze command.
const (
	formatCSV  = "csv"
	formatJSON = "json"
)

// analyzeOpts holds the command-line flags for the analyze command.
// Scoring flags default to the user config and override it per run.
type analyzeOpts struct {
	xWeight     float64 // complexity weight for the x axis
	yWeight     float64 // complexity weight for the y axis
	maxFieldX   float64 // maximum field size along x (mm)
	maxFieldY   float64 // maximum field size along y (mm)
	workers     int     // concurrent analysis workers
	refresh     bool    // bypass cached results
	noCache     bool    // disable the result cache entirely
	interactive bool    // show the live progress view
	output      string  // output path, "-" for stdout
	format      string  // csv or json
}

// scoringOptions folds the flag values into complexity options.
func (o *analyzeOpts) scoringOptions() complexity.Options {
	return complexity.Options{
		XWeight:       o.xWeight,
		YWeight:       o.yWeight,
		MaxFieldSizeX: o.maxFieldX,
		MaxFieldSizeY: o.maxFieldY,
	}
}

// analyzeCommand creates the analyze command: score every plan under the
// given paths and write a run report.
func (c *CLI) analyzeCommand() *cobra.Command {
	scoring := c.Config.Scoring
	opts := analyzeOpts{
		xWeight:   scoring.XWeight,
		yWeight:   scoring.YWeight,
		maxFieldX: scoring.MaxFieldSizeX,
		maxFieldY: scoring.MaxFieldSizeY,
		workers:   c.Config.Workers,
		format:    formatCSV,
	}

	cmd := &cobra.Command{
		Use:   "analyze <path>...",
		Short: "Score aperture complexity of plan files",
		Long: `Analyze scores the MLC aperture complexity of every plan export found
under the given files or directories.

Each usable plan contributes one report row per fraction group; files that
are not RT Plans or cannot be read are listed as skipped. Results are cached
by file content and scoring options, so re-running over unchanged inputs is
fast.

Examples:
  mlca analyze ./plans                      # CSV report to a timestamped file
  mlca analyze plan.json -o -               # single file, CSV to stdout
  mlca analyze ./plans --format json -o out.json
  mlca analyze ./plans --xw 2 --yw 0.5      # custom axis weights`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().Float64Var(&opts.xWeight, "xw", opts.xWeight, "complexity weight, x axis")
	cmd.Flags().Float64Var(&opts.yWeight, "yw", opts.yWeight, "complexity weight, y axis")
	cmd.Flags().Float64Var(&opts.maxFieldX, "xs", opts.maxFieldX, "maximum field size in mm, x axis")
	cmd.Flags().Float64Var(&opts.maxFieldY, "ys", opts.maxFieldY, "maximum field size in mm, y axis")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", opts.workers, "concurrent workers (0 = one per CPU)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "show live progress")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: timestamped file, - for stdout)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: csv or json")

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, paths []string, opts *analyzeOpts) error {
	if opts.format != formatCSV && opts.format != formatJSON {
		return apperrors.New(apperrors.ErrCodeInvalidOptions, "unknown format %q", opts.format)
	}

	spin := newSpinnerWithContext(ctx, "Discovering plan files...")
	spin.Start()
	files, err := batch.Discover(paths)
	spin.Stop()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		printWarning("No plan files found under %d path(s)", len(paths))
		return nil
	}
	printInfo("Found %d candidate file(s)", len(files))

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	batchOpts := batch.Options{
		Scoring: opts.scoringOptions(),
		Workers: opts.workers,
		Refresh: opts.refresh,
	}

	var res *batch.Result
	if opts.interactive {
		res, err = runWithProgress(ctx, runner, files, batchOpts)
	} else {
		prog := newProgress(c.Logger)
		res, err = runner.Run(ctx, files, batchOpts)
		if err == nil {
			prog.done(fmt.Sprintf("Analyzed %d plan(s)", res.Analyzed))
		}
	}
	if err != nil {
		return err
	}

	printRunSummary(res)
	if err := c.writeReport(res.Report, opts); err != nil {
		return err
	}
	return c.storeReport(ctx, res.Report)
}

// writeReport renders the run report in the requested format.
func (c *CLI) writeReport(r *report.Report, opts *analyzeOpts) error {
	path := opts.output
	if path == "" {
		path = defaultOutputName(opts.format)
	}
	if path == "-" {
		return renderReport(os.Stdout, r, opts.format)
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()
	if err := renderReport(f, r, opts.format); err != nil {
		return err
	}
	printFile(path)
	return nil
}

func renderReport(w io.Writer, r *report.Report, format string) error {
	if format == formatJSON {
		return report.WriteJSON(w, r)
	}
	return report.WriteCSV(w, r)
}

// storeReport persists the report when a Mongo store is configured.
func (c *CLI) storeReport(ctx context.Context, r *report.Report) error {
	cfg := c.Config.Store
	if cfg.MongoURI == "" {
		return nil
	}
	store, err := report.NewMongoStore(ctx, cfg.MongoURI, cfg.Database, cfg.Collection)
	if err != nil {
		return err
	}
	defer store.Close(ctx)
	if err := store.Save(ctx, r); err != nil {
		return err
	}
	printDetail("Stored run %s in %s/%s", r.RunID, cfg.Database, cfg.Collection)
	return nil
}

// printRunSummary reports the run outcome on the terminal.
func printRunSummary(res *batch.Result) {
	printSuccess("Analyzed %d plan(s) in %s", res.Analyzed, res.Duration.Round(time.Millisecond))
	printStats(res.Analyzed, res.Skipped, res.Failed, cachedCount(res))
	for _, fr := range res.Files {
		if fr.Err != nil {
			printDetail("%s: %s", fr.Path, apperrors.UserMessage(fr.Err))
		}
	}
}

func cachedCount(res *batch.Result) int {
	n := 0
	for _, fr := range res.Files {
		if fr.Cached {
			n++
		}
	}
	return n
}

// defaultOutputName mirrors the mlca_<version>_results_<timestamp> naming of
// earlier releases so downstream scripts keep working.
func defaultOutputName(format string) string {
	return fmt.Sprintf("mlca_%s_results_%s.%s",
		buildinfo.Version, time.Now().Format("2006-01-02_15-04-05"), format)
}
