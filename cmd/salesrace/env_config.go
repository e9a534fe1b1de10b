package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// envConfig holds configuration from environment variables. Provides
// CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // SALESRACE_CONFIG: config file name or path
	Input      string        // SALESRACE_INPUT: sales CSV path
	OutputDir  string        // SALESRACE_OUTPUT_DIR: GIF output directory
	Title      string        // SALESRACE_TITLE: chart title
	Workers    int           // SALESRACE_WORKERS: parallel renders
	Hold       time.Duration // SALESRACE_HOLD: final frame hold
	hasHold    bool
}

// knownEnvVars lists valid SALESRACE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SALESRACE_CONFIG":     true,
	"SALESRACE_INPUT":      true,
	"SALESRACE_OUTPUT_DIR": true,
	"SALESRACE_TITLE":      true,
	"SALESRACE_WORKERS":    true,
	"SALESRACE_HOLD":       true,
}

// envPrefix namespaces all CLI environment variables.
const envPrefix = "SALESRACE_"

// loadEnvConfig reads SALESRACE_* variables via the environment's lookup
// function. Malformed numeric or duration values are errors, not silent
// defaults.
func loadEnvConfig(env *Environment) (*envConfig, error) {
	cfg := &envConfig{}

	cfg.ConfigPath, _ = env.LookupEnv("SALESRACE_CONFIG")
	cfg.Input, _ = env.LookupEnv("SALESRACE_INPUT")
	cfg.OutputDir, _ = env.LookupEnv("SALESRACE_OUTPUT_DIR")
	cfg.Title, _ = env.LookupEnv("SALESRACE_TITLE")

	if v, ok := env.LookupEnv("SALESRACE_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SALESRACE_WORKERS: invalid value %q", v)
		}
		cfg.Workers = n
	}

	if v, ok := env.LookupEnv("SALESRACE_HOLD"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SALESRACE_HOLD: invalid duration %q", v)
		}
		cfg.Hold = d
		cfg.hasHold = true
	}

	return cfg, nil
}

// warnUnknownEnvVars writes a warning for each SALESRACE_* variable that
// is not recognized, to catch typos like SALESRACE_OUPUT_DIR.
func warnUnknownEnvVars(environ []string, w io.Writer) {
	for _, kv := range environ {
		name, _, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, envPrefix) {
			continue
		}
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s\n", name)
		}
	}
}
