// Package config loads and validates the YAML configuration for the
// salesrace CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-salesrace/internal/fileutil"
	"github.com/alnah/go-salesrace/internal/hints"
	"github.com/alnah/go-salesrace/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldOutOfRange = errors.New("field out of range")
)

// Field bounds.
const (
	MaxTitleLength    = 200   // chart title
	MaxPathLength     = 4096  // file paths
	MaxSteps          = 300   // frames per period
	MaxPeriodLengthMS = 10000 // 10s per period
	MaxHoldMS         = 30000 // 30s last-frame hold
)

// Config holds all configuration for GIF generation.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Chart     ChartConfig     `yaml:"chart"`
	Animation AnimationConfig `yaml:"animation"`
	Platforms []string        `yaml:"platforms"`
}

// InputConfig defines the source dataset.
type InputConfig struct {
	Path string `yaml:"path"` // Sales CSV path (empty = must specify on CLI)
}

// OutputConfig defines output destinations.
type OutputConfig struct {
	Dir        string `yaml:"dir"`        // GIF output directory (empty = current dir)
	CleanedCSV string `yaml:"cleanedCSV"` // Cleaned pivot CSV path (empty = next to input)
}

// ChartConfig defines chart appearance.
type ChartConfig struct {
	Title string `yaml:"title"` // Empty = library default
}

// AnimationConfig defines animation timing and bar appearance.
// Zero values mean "use library defaults".
type AnimationConfig struct {
	StepsPerPeriod int     `yaml:"stepsPerPeriod"` // frames per year transition
	PeriodLengthMS int     `yaml:"periodLengthMs"` // display time per year
	HoldMS         int     `yaml:"holdMs"`         // last-frame hold
	BarSize        float64 `yaml:"barSize"`        // bar thickness fraction (0-1]
	BarAlpha       float64 `yaml:"barAlpha"`       // bar opacity (0-1]
	MaxBars        int     `yaml:"maxBars"`        // bars shown (0 = all)
}

// Validate checks field bounds. Called automatically by LoadConfig, but
// available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if len(c.Chart.Title) > MaxTitleLength {
		return fmt.Errorf("%w: chart.title (%d chars, max %d)", ErrFieldOutOfRange, len(c.Chart.Title), MaxTitleLength)
	}
	for _, f := range []struct{ name, value string }{
		{"input.path", c.Input.Path},
		{"output.dir", c.Output.Dir},
		{"output.cleanedCSV", c.Output.CleanedCSV},
	} {
		if len(f.value) > MaxPathLength {
			return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldOutOfRange, f.name, len(f.value), MaxPathLength)
		}
	}

	a := c.Animation
	if a.StepsPerPeriod < 0 || a.StepsPerPeriod > MaxSteps {
		return fmt.Errorf("%w: animation.stepsPerPeriod %d (max %d)", ErrFieldOutOfRange, a.StepsPerPeriod, MaxSteps)
	}
	if a.PeriodLengthMS < 0 || a.PeriodLengthMS > MaxPeriodLengthMS {
		return fmt.Errorf("%w: animation.periodLengthMs %d (max %d)", ErrFieldOutOfRange, a.PeriodLengthMS, MaxPeriodLengthMS)
	}
	if a.HoldMS < 0 || a.HoldMS > MaxHoldMS {
		return fmt.Errorf("%w: animation.holdMs %d (max %d)", ErrFieldOutOfRange, a.HoldMS, MaxHoldMS)
	}
	if a.BarSize < 0 || a.BarSize > 1 {
		return fmt.Errorf("%w: animation.barSize %.2f (must be in [0, 1])", ErrFieldOutOfRange, a.BarSize)
	}
	if a.BarAlpha < 0 || a.BarAlpha > 1 {
		return fmt.Errorf("%w: animation.barAlpha %.2f (must be in [0, 1])", ErrFieldOutOfRange, a.BarAlpha)
	}
	if a.MaxBars < 0 {
		return fmt.Errorf("%w: animation.maxBars %d (must be >= 0)", ErrFieldOutOfRange, a.MaxBars)
	}

	return nil
}

// DefaultConfig returns a neutral configuration: no input path, outputs in
// the current directory, library defaults for chart and animation, all
// platforms enabled (nil means all).
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s%s", ErrConfigNotFound, configPath, hints.ForConfigNotFound(nil))
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard
// locations. Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-salesrace/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-salesrace", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s%s", ErrConfigNotFound, strings.Join(triedPaths, ", "), hints.ForConfigNotFound(triedPaths))
}
