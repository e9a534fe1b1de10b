package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	salesrace "github.com/alnah/go-salesrace"
	"github.com/alnah/go-salesrace/internal/config"
	"github.com/alnah/go-salesrace/internal/fileutil"
	"github.com/alnah/go-salesrace/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input CSV specified")
	ErrInvalidExtension   = errors.New("input must have .csv extension")
	ErrReadInput          = errors.New("failed to read sales CSV")
	ErrWriteCleaned       = errors.New("failed to write cleaned CSV")
	ErrWriteGIF           = errors.New("failed to write GIF file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidHold        = errors.New("invalid hold duration")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// maxWorkers bounds the render pool; there are only a handful of variants
// and each render holds full-resolution frames in memory.
const maxWorkers = 16

// RenderJob is one GIF variant to produce.
type RenderJob struct {
	Platform   string
	Layout     salesrace.Layout
	OutputPath string
}

// RenderResult holds the outcome of a single variant render.
type RenderResult struct {
	Platform   string
	OutputPath string
	Bytes      int
	Err        error
	Duration   time.Duration
}

// Renderer is the interface for the rendering service.
type Renderer interface {
	Render(ctx context.Context, input salesrace.Input) ([]byte, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*salesrace.Service)(nil)

// runRace orchestrates the whole pipeline: config layering, dataset load,
// cleaned-CSV export, and one GIF render per platform.
func runRace(ctx context.Context, positionalArgs []string, flags *raceFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg, err := loadEnvConfig(env)
	if err != nil {
		return err
	}
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Environ(), env.Stderr)
	}

	// Load configuration: flag beats env for the config location.
	cfg := config.DefaultConfig()
	configPath := flags.common.config
	if configPath == "" {
		configPath = envCfg.ConfigPath
	}
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Layer overrides: env first, then CLI flags win.
	mergeEnv(envCfg, cfg)
	mergeFlags(flags, cfg)

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	if err := validateCSVExtension(inputPath); err != nil {
		return err
	}

	table, err := loadTable(inputPath)
	if err != nil {
		return err
	}

	if err := writeCleanedCSV(table, cleanedCSVPath(cfg, inputPath)); err != nil {
		return err
	}

	anim, err := buildAnimation(cfg)
	if err != nil {
		return err
	}

	hold, err := resolveHold(flags, envCfg, cfg)
	if err != nil {
		return err
	}

	var opts []salesrace.Option
	if cfg.Chart.Title != "" {
		opts = append(opts, salesrace.WithTitle(cfg.Chart.Title))
	}
	opts = append(opts, salesrace.WithHold(hold))
	service := salesrace.New(opts...)

	jobs, err := buildJobs(cfg)
	if err != nil {
		return err
	}

	if cfg.Output.Dir != "" {
		if err := os.MkdirAll(cfg.Output.Dir, dirPermissions); err != nil {
			return fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
		}
	}

	workers := resolveWorkers(resolveWorkerCount(flags, envCfg), len(jobs))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Rendering %d variant(s) with %d worker(s)\n", len(jobs), workers)
	}

	results := renderBatch(ctx, service, table, anim, jobs, workers)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d render(s) failed", failedCount)
	}
	return nil
}

// mergeEnv merges environment overrides into config.
func mergeEnv(envCfg *envConfig, cfg *config.Config) {
	if envCfg.Input != "" {
		cfg.Input.Path = envCfg.Input
	}
	if envCfg.OutputDir != "" {
		cfg.Output.Dir = envCfg.OutputDir
	}
	if envCfg.Title != "" {
		cfg.Chart.Title = envCfg.Title
	}
}

// mergeFlags merges CLI flags into config. CLI values override everything.
func mergeFlags(flags *raceFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.cleanedCSV != "" {
		cfg.Output.CleanedCSV = flags.cleanedCSV
	}
	if flags.title != "" {
		cfg.Chart.Title = flags.title
	}
	if flags.steps > 0 {
		cfg.Animation.StepsPerPeriod = flags.steps
	}
	if flags.periodLength != periodSentinel {
		cfg.Animation.PeriodLengthMS = int(flags.periodLength / time.Millisecond)
	}
	if flags.maxBars > 0 {
		cfg.Animation.MaxBars = flags.maxBars
	}
	if len(flags.platforms) > 0 {
		cfg.Platforms = flags.platforms
	}
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.Path != "" {
		return cfg.Input.Path, nil
	}
	return "", ErrNoInput
}

// validateCSVExtension checks that the input file has a .csv extension.
func validateCSVExtension(path string) error {
	if ext := filepath.Ext(path); !strings.EqualFold(ext, ".csv") {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// loadTable reads and aggregates the sales CSV.
func loadTable(inputPath string) (*salesrace.Table, error) {
	f, err := os.Open(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	defer f.Close()

	records, err := salesrace.ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inputPath, err)
	}
	return salesrace.Aggregate(records)
}

// cleanedCSVPath determines where the cleaned pivot table is written.
// Defaults to "<input>_cleaned.csv" next to the input file.
func cleanedCSVPath(cfg *config.Config, inputPath string) string {
	if cfg.Output.CleanedCSV != "" {
		return cfg.Output.CleanedCSV
	}
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "_cleaned" + ext
}

// writeCleanedCSV writes the pivot table atomically.
func writeCleanedCSV(table *salesrace.Table, path string) error {
	var buf bytes.Buffer
	if err := table.WriteCSV(&buf); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteCleaned, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteCleaned, err)
		}
	}
	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteCleaned, err)
	}
	return nil
}

// buildAnimation applies config overrides on top of library defaults.
func buildAnimation(cfg *config.Config) (salesrace.Animation, error) {
	anim := salesrace.DefaultAnimation()
	if cfg.Animation.StepsPerPeriod > 0 {
		anim.StepsPerPeriod = cfg.Animation.StepsPerPeriod
	}
	if cfg.Animation.PeriodLengthMS > 0 {
		anim.PeriodLength = time.Duration(cfg.Animation.PeriodLengthMS) * time.Millisecond
	}
	if cfg.Animation.BarSize > 0 {
		anim.BarSize = cfg.Animation.BarSize
	}
	if cfg.Animation.BarAlpha > 0 {
		anim.BarAlpha = cfg.Animation.BarAlpha
	}
	if cfg.Animation.MaxBars > 0 {
		anim.MaxBars = cfg.Animation.MaxBars
	}
	if err := anim.Validate(); err != nil {
		return salesrace.Animation{}, err
	}
	return anim, nil
}

// resolveHold layers the last-frame hold: config, then env, then flag.
// The flag sentinel distinguishes --hold=0 (explicitly none) from unset.
func resolveHold(flags *raceFlags, envCfg *envConfig, cfg *config.Config) (time.Duration, error) {
	hold := salesrace.DefaultHold
	if cfg.Animation.HoldMS > 0 {
		hold = time.Duration(cfg.Animation.HoldMS) * time.Millisecond
	}
	if envCfg.hasHold {
		hold = envCfg.Hold
	}
	if flags.hold != holdSentinel {
		hold = flags.hold
	}
	if hold < 0 || hold > salesrace.MaxHold {
		return 0, fmt.Errorf("%w: %s (must be between 0 and %s)", ErrInvalidHold, hold, salesrace.MaxHold)
	}
	return hold, nil
}

// resolveWorkerCount prefers the flag over the env setting.
func resolveWorkerCount(flags *raceFlags, envCfg *envConfig) int {
	if flags.workers > 0 {
		return flags.workers
	}
	return envCfg.Workers
}

// buildJobs expands the platform list into render jobs with output paths.
func buildJobs(cfg *config.Config) ([]RenderJob, error) {
	platforms := cfg.Platforms
	if len(platforms) == 0 {
		platforms = salesrace.PlatformNames()
	}

	jobs := make([]RenderJob, 0, len(platforms))
	for _, p := range platforms {
		layout, err := salesrace.PresetByName(p)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, RenderJob{
			Platform:   p,
			Layout:     layout,
			OutputPath: filepath.Join(cfg.Output.Dir, gifFileName(p)),
		})
	}
	return jobs, nil
}

// gifFileName maps a platform name to its output file, matching the
// original export names (bar_chart_race_instagram_feed.gif etc).
func gifFileName(platform string) string {
	return "bar_chart_race_" + strings.ReplaceAll(platform, "-", "_") + ".gif"
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// resolveWorkers turns the requested count into an effective pool size.
func resolveWorkers(requested, jobCount int) int {
	n := requested
	if n == 0 {
		n = runtime.NumCPU()
	}
	if n > jobCount {
		n = jobCount
	}
	if n < 1 {
		n = 1
	}
	return n
}

// renderBatch renders variants concurrently with a bounded worker pool.
func renderBatch(ctx context.Context, service Renderer, table *salesrace.Table, anim salesrace.Animation, jobs []RenderJob, workers int) []RenderResult {
	if len(jobs) == 0 {
		return nil
	}

	results := make([]RenderResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = RenderResult{
						Platform: jobs[idx].Platform,
						Err:      ctx.Err(),
					}
					continue
				}
				results[idx] = renderOne(ctx, service, table, anim, jobs[idx])
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// renderOne renders and writes a single variant.
func renderOne(ctx context.Context, service Renderer, table *salesrace.Table, anim salesrace.Animation, job RenderJob) RenderResult {
	start := time.Now()
	result := RenderResult{
		Platform:   job.Platform,
		OutputPath: job.OutputPath,
	}

	data, err := service.Render(ctx, salesrace.Input{
		Table:     table,
		Layout:    job.Layout,
		Animation: anim,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if err := fileutil.WriteFileAtomic(job.OutputPath, data, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteGIF, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Bytes = len(data)
	result.Duration = time.Since(start)
	return result
}

// printResults outputs render results and returns the failure count.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Platform, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d bytes, %v)\n", r.Platform, r.OutputPath, r.Bytes, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
