package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	salesrace "github.com/alnah/go-salesrace"
	"github.com/alnah/go-salesrace/internal/config"
)

const sampleSalesCSV = `Row ID,Order Date,Sub-Category,Sales
1,11/8/2016,Chairs,100.50
2,6/12/2016,Phones,250.00
3,10/11/2017,Chairs,75.25
4,5/2/2017,Phones,300.00
`

// defaultTestFlags returns flags as parseRaceFlags would with no arguments.
func defaultTestFlags() *raceFlags {
	return &raceFlags{
		hold:         holdSentinel,
		periodLength: periodSentinel,
	}
}

func writeSampleCSV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "sales.csv")
	if err := os.WriteFile(path, []byte(sampleSalesCSV), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestRunRace(t *testing.T) {
	t.Run("renders GIF and cleaned CSV", func(t *testing.T) {
		dir := t.TempDir()
		inputPath := writeSampleCSV(t, dir)
		outDir := filepath.Join(dir, "out")

		flags := defaultTestFlags()
		flags.output = outDir
		flags.platforms = []string{"linkedin"}
		flags.steps = 2
		flags.periodLength = 100 * time.Millisecond
		flags.hold = 500 * time.Millisecond
		flags.common.quiet = true

		env := testEnv(nil)
		if err := runRace(context.Background(), []string{inputPath}, flags, env); err != nil {
			t.Fatalf("runRace() error = %v", err)
		}

		gifPath := filepath.Join(outDir, "bar_chart_race_linkedin.gif")
		data, err := os.ReadFile(gifPath)
		if err != nil {
			t.Fatalf("reading GIF: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("GIF8")) {
			t.Errorf("output is not a GIF, starts with %q", data[:4])
		}

		cleaned, err := os.ReadFile(filepath.Join(dir, "sales_cleaned.csv"))
		if err != nil {
			t.Fatalf("reading cleaned CSV: %v", err)
		}
		want := "Year,Chairs,Phones\n2016,100.5,250\n2017,75.25,300\n"
		if string(cleaned) != want {
			t.Errorf("cleaned CSV = %q, want %q", cleaned, want)
		}
	})

	t.Run("no input returns ErrNoInput", func(t *testing.T) {
		err := runRace(context.Background(), nil, defaultTestFlags(), testEnv(nil))
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("error = %v, want ErrNoInput", err)
		}
	})

	t.Run("non-CSV input returns ErrInvalidExtension", func(t *testing.T) {
		err := runRace(context.Background(), []string{"sales.txt"}, defaultTestFlags(), testEnv(nil))
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("unknown platform returns ErrUnknownPlatform", func(t *testing.T) {
		dir := t.TempDir()
		inputPath := writeSampleCSV(t, dir)

		flags := defaultTestFlags()
		flags.platforms = []string{"tiktok"}
		flags.common.quiet = true

		err := runRace(context.Background(), []string{inputPath}, flags, testEnv(nil))
		if !errors.Is(err, salesrace.ErrUnknownPlatform) {
			t.Errorf("error = %v, want ErrUnknownPlatform", err)
		}
	})

	t.Run("negative workers returns ErrInvalidWorkerCount", func(t *testing.T) {
		flags := defaultTestFlags()
		flags.workers = -1
		err := runRace(context.Background(), nil, flags, testEnv(nil))
		if !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("error = %v, want ErrInvalidWorkerCount", err)
		}
	})

	t.Run("missing input file returns ErrReadInput", func(t *testing.T) {
		flags := defaultTestFlags()
		flags.common.quiet = true
		err := runRace(context.Background(), []string{filepath.Join(t.TempDir(), "nope.csv")}, flags, testEnv(nil))
		if !errors.Is(err, ErrReadInput) {
			t.Errorf("error = %v, want ErrReadInput", err)
		}
	})

	t.Run("env input and warning for typos", func(t *testing.T) {
		dir := t.TempDir()
		inputPath := writeSampleCSV(t, dir)

		env := testEnv(map[string]string{
			"SALESRACE_INPUT":     inputPath,
			"SALESRACE_OUPUT_DIR": dir, // typo on purpose
		})

		flags := defaultTestFlags()
		flags.output = filepath.Join(dir, "out")
		flags.platforms = []string{"linkedin"}
		flags.steps = 1
		flags.hold = 0

		if err := runRace(context.Background(), nil, flags, env); err != nil {
			t.Fatalf("runRace() error = %v", err)
		}

		stderr := env.Stderr.(*bytes.Buffer).String()
		if !strings.Contains(stderr, "SALESRACE_OUPUT_DIR") {
			t.Errorf("stderr %q does not warn about typo", stderr)
		}
		stdout := env.Stdout.(*bytes.Buffer).String()
		if !strings.Contains(stdout, "Created ") {
			t.Errorf("stdout %q missing Created line", stdout)
		}
	})
}

func TestCleanedCSVPath(t *testing.T) {
	tests := []struct {
		name      string
		cfgPath   string
		inputPath string
		want      string
	}{
		{"default next to input", "", "data/sales.csv", "data/sales_cleaned.csv"},
		{"config override wins", "pivot.csv", "data/sales.csv", "pivot.csv"},
		{"no directory", "", "sales.csv", "sales_cleaned.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Output.CleanedCSV = tt.cfgPath
			got := cleanedCSVPath(cfg, tt.inputPath)
			if got != tt.want {
				t.Errorf("cleanedCSVPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGIFFileName(t *testing.T) {
	tests := []struct {
		platform string
		want     string
	}{
		{"linkedin", "bar_chart_race_linkedin.gif"},
		{"instagram-feed", "bar_chart_race_instagram_feed.gif"},
		{"instagram-story", "bar_chart_race_instagram_story.gif"},
	}

	for _, tt := range tests {
		if got := gifFileName(tt.platform); got != tt.want {
			t.Errorf("gifFileName(%q) = %q, want %q", tt.platform, got, tt.want)
		}
	}
}

func TestValidateWorkers(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"zero is auto", 0, false},
		{"one", 1, false},
		{"at cap", maxWorkers, false},
		{"negative", -1, true},
		{"above cap", maxWorkers + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWorkers(tt.n)
			if tt.wantErr && !errors.Is(err, ErrInvalidWorkerCount) {
				t.Errorf("error = %v, want ErrInvalidWorkerCount", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestResolveWorkers(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		jobs      int
		want      int
	}{
		{"explicit under job count", 2, 3, 2},
		{"capped at job count", 8, 3, 3},
		{"at least one", 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveWorkers(tt.requested, tt.jobs); got != tt.want {
				t.Errorf("resolveWorkers(%d, %d) = %d, want %d", tt.requested, tt.jobs, got, tt.want)
			}
		})
	}
}

func TestResolveHold(t *testing.T) {
	t.Run("library default when nothing set", func(t *testing.T) {
		hold, err := resolveHold(defaultTestFlags(), &envConfig{}, config.DefaultConfig())
		if err != nil {
			t.Fatalf("resolveHold() error = %v", err)
		}
		if hold != salesrace.DefaultHold {
			t.Errorf("hold = %v, want %v", hold, salesrace.DefaultHold)
		}
	})

	t.Run("config overrides default", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Animation.HoldMS = 1500
		hold, err := resolveHold(defaultTestFlags(), &envConfig{}, cfg)
		if err != nil {
			t.Fatalf("resolveHold() error = %v", err)
		}
		if hold != 1500*time.Millisecond {
			t.Errorf("hold = %v, want 1.5s", hold)
		}
	})

	t.Run("env overrides config", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Animation.HoldMS = 1500
		hold, err := resolveHold(defaultTestFlags(), &envConfig{Hold: 4 * time.Second, hasHold: true}, cfg)
		if err != nil {
			t.Fatalf("resolveHold() error = %v", err)
		}
		if hold != 4*time.Second {
			t.Errorf("hold = %v, want 4s", hold)
		}
	})

	t.Run("flag overrides env", func(t *testing.T) {
		flags := defaultTestFlags()
		flags.hold = 0
		hold, err := resolveHold(flags, &envConfig{Hold: 4 * time.Second, hasHold: true}, config.DefaultConfig())
		if err != nil {
			t.Fatalf("resolveHold() error = %v", err)
		}
		if hold != 0 {
			t.Errorf("hold = %v, want 0", hold)
		}
	})

	t.Run("out of range returns ErrInvalidHold", func(t *testing.T) {
		flags := defaultTestFlags()
		flags.hold = salesrace.MaxHold + time.Second
		_, err := resolveHold(flags, &envConfig{}, config.DefaultConfig())
		if !errors.Is(err, ErrInvalidHold) {
			t.Errorf("error = %v, want ErrInvalidHold", err)
		}
	})
}

func TestMergeFlags(t *testing.T) {
	flags := defaultTestFlags()
	flags.output = "out"
	flags.title = "Sales"
	flags.steps = 30
	flags.periodLength = 500 * time.Millisecond
	flags.maxBars = 10
	flags.platforms = []string{"linkedin"}

	cfg := config.DefaultConfig()
	cfg.Output.Dir = "config-out"
	cfg.Platforms = []string{"instagram-feed", "instagram-story"}

	mergeFlags(flags, cfg)

	if cfg.Output.Dir != "out" {
		t.Errorf("Output.Dir = %q, want flag value", cfg.Output.Dir)
	}
	if cfg.Chart.Title != "Sales" {
		t.Errorf("Chart.Title = %q", cfg.Chart.Title)
	}
	if cfg.Animation.StepsPerPeriod != 30 {
		t.Errorf("StepsPerPeriod = %d", cfg.Animation.StepsPerPeriod)
	}
	if cfg.Animation.PeriodLengthMS != 500 {
		t.Errorf("PeriodLengthMS = %d", cfg.Animation.PeriodLengthMS)
	}
	if cfg.Animation.MaxBars != 10 {
		t.Errorf("MaxBars = %d", cfg.Animation.MaxBars)
	}
	if len(cfg.Platforms) != 1 || cfg.Platforms[0] != "linkedin" {
		t.Errorf("Platforms = %v, want flag value", cfg.Platforms)
	}
}

func TestBuildAnimation(t *testing.T) {
	t.Run("defaults when config is zero", func(t *testing.T) {
		anim, err := buildAnimation(config.DefaultConfig())
		if err != nil {
			t.Fatalf("buildAnimation() error = %v", err)
		}
		want := salesrace.DefaultAnimation()
		if anim != want {
			t.Errorf("anim = %+v, want defaults %+v", anim, want)
		}
	})

	t.Run("config overrides applied", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Animation.StepsPerPeriod = 10
		cfg.Animation.PeriodLengthMS = 400
		cfg.Animation.BarSize = 0.5
		cfg.Animation.MaxBars = 8

		anim, err := buildAnimation(cfg)
		if err != nil {
			t.Fatalf("buildAnimation() error = %v", err)
		}
		if anim.StepsPerPeriod != 10 {
			t.Errorf("StepsPerPeriod = %d", anim.StepsPerPeriod)
		}
		if anim.PeriodLength != 400*time.Millisecond {
			t.Errorf("PeriodLength = %v", anim.PeriodLength)
		}
		if anim.BarSize != 0.5 {
			t.Errorf("BarSize = %v", anim.BarSize)
		}
		if anim.MaxBars != 8 {
			t.Errorf("MaxBars = %d", anim.MaxBars)
		}
	})
}

// stubRenderer returns canned bytes or an error, for exercising the batch
// plumbing without real rendering.
type stubRenderer struct {
	data []byte
	err  error
}

func (s *stubRenderer) Render(_ context.Context, _ salesrace.Input) ([]byte, error) {
	return s.data, s.err
}

func TestRenderBatch(t *testing.T) {
	table := &salesrace.Table{
		Years:      []int{2016, 2017},
		Categories: []string{"Chairs"},
		Values:     [][]float64{{1}, {2}},
	}
	anim := salesrace.DefaultAnimation()

	t.Run("writes one file per job", func(t *testing.T) {
		dir := t.TempDir()
		jobs := []RenderJob{
			{Platform: "linkedin", OutputPath: filepath.Join(dir, "a.gif")},
			{Platform: "instagram-feed", OutputPath: filepath.Join(dir, "b.gif")},
		}

		results := renderBatch(context.Background(), &stubRenderer{data: []byte("GIF89a")}, table, anim, jobs, 2)
		if len(results) != 2 {
			t.Fatalf("got %d results, want 2", len(results))
		}
		for _, r := range results {
			if r.Err != nil {
				t.Errorf("%s: unexpected error %v", r.Platform, r.Err)
			}
			if r.Bytes != 6 {
				t.Errorf("%s: Bytes = %d, want 6", r.Platform, r.Bytes)
			}
			if _, err := os.Stat(r.OutputPath); err != nil {
				t.Errorf("%s: output missing: %v", r.Platform, err)
			}
		}
	})

	t.Run("render failure is captured per job", func(t *testing.T) {
		boom := errors.New("boom")
		jobs := []RenderJob{{Platform: "linkedin", OutputPath: filepath.Join(t.TempDir(), "a.gif")}}

		results := renderBatch(context.Background(), &stubRenderer{err: boom}, table, anim, jobs, 1)
		if !errors.Is(results[0].Err, boom) {
			t.Errorf("Err = %v, want boom", results[0].Err)
		}
	})

	t.Run("cancelled context aborts jobs", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		jobs := []RenderJob{{Platform: "linkedin", OutputPath: filepath.Join(t.TempDir(), "a.gif")}}
		results := renderBatch(ctx, &stubRenderer{data: []byte("GIF89a")}, table, anim, jobs, 1)
		if !errors.Is(results[0].Err, context.Canceled) {
			t.Errorf("Err = %v, want context.Canceled", results[0].Err)
		}
	})

	t.Run("no jobs returns nil", func(t *testing.T) {
		if results := renderBatch(context.Background(), &stubRenderer{}, table, anim, nil, 1); results != nil {
			t.Errorf("results = %v, want nil", results)
		}
	})
}

func TestPrintResults(t *testing.T) {
	results := []RenderResult{
		{Platform: "linkedin", OutputPath: "a.gif", Bytes: 10, Duration: time.Second},
		{Platform: "instagram-feed", Err: errors.New("boom")},
	}

	t.Run("reports successes and failures", func(t *testing.T) {
		env := testEnv(nil)
		failed := printResults(results, false, false, env)
		if failed != 1 {
			t.Errorf("failed = %d, want 1", failed)
		}
		stdout := env.Stdout.(*bytes.Buffer).String()
		if !strings.Contains(stdout, "Created a.gif") {
			t.Errorf("stdout %q missing Created line", stdout)
		}
		if !strings.Contains(stdout, "1 succeeded, 1 failed") {
			t.Errorf("stdout %q missing summary", stdout)
		}
		stderr := env.Stderr.(*bytes.Buffer).String()
		if !strings.Contains(stderr, "FAILED instagram-feed") {
			t.Errorf("stderr %q missing failure line", stderr)
		}
	})

	t.Run("quiet suppresses success output", func(t *testing.T) {
		env := testEnv(nil)
		printResults(results, true, false, env)
		if out := env.Stdout.(*bytes.Buffer).String(); out != "" {
			t.Errorf("stdout = %q, want empty", out)
		}
	})
}
