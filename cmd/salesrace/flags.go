package main

import (
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"
)

// Sentinels detect whether a flag was explicitly set, since zero values
// are meaningful (--hold=0 disables the hold).
const (
	holdSentinel   = -1 * time.Second
	periodSentinel = -1 * time.Second
)

// commonFlags holds flags shared across runs.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// raceFlags holds all flags for the salesrace CLI.
type raceFlags struct {
	common commonFlags

	output     string
	cleanedCSV string
	platforms  []string
	workers    int

	title        string
	steps        int
	periodLength time.Duration
	hold         time.Duration
	maxBars      int

	showVersion bool
}

// parseRaceFlags parses CLI flags and returns positional args.
func parseRaceFlags(args []string) (*raceFlags, []string, error) {
	fs := flag.NewFlagSet("salesrace", flag.ContinueOnError)
	f := &raceFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory for GIF files")
	fs.StringVar(&f.cleanedCSV, "cleaned-csv", "", "path for the cleaned pivot CSV")
	fs.StringSliceVar(&f.platforms, "platforms", nil, "platforms to render (linkedin, instagram-feed, instagram-story)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renders (0 = auto)")

	// Chart and animation flags
	fs.StringVar(&f.title, "title", "", "chart title")
	fs.IntVar(&f.steps, "steps-per-period", 0, "frames per year transition (0 = default)")
	fs.DurationVar(&f.periodLength, "period-length", periodSentinel, "display time per year (e.g., 600ms)")
	fs.DurationVar(&f.hold, "hold", holdSentinel, "final frame hold duration (0 = none)")
	fs.IntVar(&f.maxBars, "max-bars", 0, "bars shown per frame (0 = all)")

	fs.BoolVar(&f.showVersion, "version", false, "print version and exit")

	fs.StringVarP(&f.common.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.common.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.common.verbose, "verbose", "v", false, "show detailed timing")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// printUsage writes CLI usage to w.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `usage: salesrace [flags] <sales.csv>

Renders animated bar chart race GIFs of yearly sales by sub-category, one
per target platform, plus the cleaned pivot CSV.

Flags:
  -o, --output DIR          output directory for GIF files
      --cleaned-csv PATH    path for the cleaned pivot CSV
      --platforms LIST      comma-separated platforms (default: all)
  -w, --workers N           parallel renders (0 = auto)
      --title TEXT          chart title
      --steps-per-period N  frames per year transition
      --period-length DUR   display time per year (e.g., 600ms)
      --hold DUR            final frame hold (e.g., 2s; 0 = none)
      --max-bars N          bars shown per frame (0 = all)
  -c, --config NAME|PATH    config file name or path
  -q, --quiet               only show errors
  -v, --verbose             show detailed timing
      --version             print version and exit
`)
}
