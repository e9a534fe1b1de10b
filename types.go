package salesrace

import (
	"fmt"
	"time"
)

// Platform names for the built-in layout presets.
const (
	PlatformLinkedIn       = "linkedin"
	PlatformInstagramFeed  = "instagram-feed"
	PlatformInstagramStory = "instagram-story"
)

// Canvas size bounds in pixels.
const (
	MinCanvasSize = 64
	MaxCanvasSize = 8192
)

// Layout describes the pixel geometry of one output variant. Margins are
// fractions of the canvas giving the position of the plot-area edges, so
// MarginLeft=0.25 and MarginRight=0.75 put the plot in the middle half of
// the canvas. PeriodLabelX/Y anchor the period label inside the plot area
// (0,0 is bottom-left, 1,1 is top-right).
type Layout struct {
	Width  int
	Height int

	MarginLeft   float64
	MarginRight  float64
	MarginBottom float64
	MarginTop    float64

	PeriodLabelX float64
	PeriodLabelY float64
}

// Validate checks that the layout geometry is usable.
func (l Layout) Validate() error {
	if l.Width < MinCanvasSize || l.Width > MaxCanvasSize {
		return fmt.Errorf("%w: width %d (must be between %d and %d)", ErrInvalidCanvasSize, l.Width, MinCanvasSize, MaxCanvasSize)
	}
	if l.Height < MinCanvasSize || l.Height > MaxCanvasSize {
		return fmt.Errorf("%w: height %d (must be between %d and %d)", ErrInvalidCanvasSize, l.Height, MinCanvasSize, MaxCanvasSize)
	}
	if l.MarginLeft < 0 || l.MarginRight > 1 || l.MarginLeft >= l.MarginRight {
		return fmt.Errorf("%w: left %.2f, right %.2f", ErrInvalidMargins, l.MarginLeft, l.MarginRight)
	}
	if l.MarginBottom < 0 || l.MarginTop > 1 || l.MarginBottom >= l.MarginTop {
		return fmt.Errorf("%w: bottom %.2f, top %.2f", ErrInvalidMargins, l.MarginBottom, l.MarginTop)
	}
	if l.PeriodLabelX < 0 || l.PeriodLabelX > 1 || l.PeriodLabelY < 0 || l.PeriodLabelY > 1 {
		return fmt.Errorf("%w: (%.2f, %.2f)", ErrInvalidLabelPos, l.PeriodLabelX, l.PeriodLabelY)
	}
	return nil
}

// PresetLinkedIn returns the landscape layout used for LinkedIn posts.
func PresetLinkedIn() Layout {
	return Layout{
		Width:        2400,
		Height:       1440,
		MarginLeft:   0.25,
		MarginRight:  0.75,
		MarginBottom: 0.05,
		MarginTop:    0.9,
		PeriodLabelX: 0.98,
		PeriodLabelY: 0.02,
	}
}

// PresetInstagramFeed returns the square layout used for Instagram feed
// posts. The right margin is slightly wider so value labels stay visible.
func PresetInstagramFeed() Layout {
	l := PresetLinkedIn()
	l.Width = 1920
	l.Height = 1920
	l.MarginRight = 0.78
	return l
}

// PresetInstagramStory returns the portrait layout used for Instagram
// stories.
func PresetInstagramStory() Layout {
	l := PresetInstagramFeed()
	l.Height = 2400
	return l
}

// PresetByName returns the layout preset for a platform name.
func PresetByName(name string) (Layout, error) {
	switch name {
	case PlatformLinkedIn:
		return PresetLinkedIn(), nil
	case PlatformInstagramFeed:
		return PresetInstagramFeed(), nil
	case PlatformInstagramStory:
		return PresetInstagramStory(), nil
	}
	return Layout{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, name)
}

// PlatformNames returns the supported platform names in render order.
func PlatformNames() []string {
	return []string{PlatformLinkedIn, PlatformInstagramFeed, PlatformInstagramStory}
}

// Animation bounds.
const (
	MaxStepsPerPeriod = 300
	MinPeriodLength   = 20 * time.Millisecond
	MaxPeriodLength   = 10 * time.Second
)

// Animation holds the frame-planning parameters.
type Animation struct {
	StepsPerPeriod int           // frames per year transition
	PeriodLength   time.Duration // display time per year
	BarSize        float64       // bar thickness as fraction of its slot (0-1]
	BarAlpha       float64       // bar fill opacity (0-1]
	FixedMax       bool          // keep the value scale at the global max
	MaxBars        int           // bars shown per frame (0 = all)
}

// DefaultAnimation returns the animation parameters used by the original
// social exports: 60 steps per period, 600ms periods, 0.9 bar size, 0.8
// alpha, fixed scale.
func DefaultAnimation() Animation {
	return Animation{
		StepsPerPeriod: 60,
		PeriodLength:   600 * time.Millisecond,
		BarSize:        0.9,
		BarAlpha:       0.8,
		FixedMax:       true,
	}
}

// Validate checks that animation parameters are within bounds.
func (a Animation) Validate() error {
	if a.StepsPerPeriod < 1 || a.StepsPerPeriod > MaxStepsPerPeriod {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidSteps, a.StepsPerPeriod, MaxStepsPerPeriod)
	}
	if a.PeriodLength < MinPeriodLength || a.PeriodLength > MaxPeriodLength {
		return fmt.Errorf("%w: %s (must be between %s and %s)", ErrInvalidPeriodLength, a.PeriodLength, MinPeriodLength, MaxPeriodLength)
	}
	if a.BarSize <= 0 || a.BarSize > 1 {
		return fmt.Errorf("%w: %.2f (must be in (0, 1])", ErrInvalidBarSize, a.BarSize)
	}
	if a.BarAlpha <= 0 || a.BarAlpha > 1 {
		return fmt.Errorf("%w: %.2f (must be in (0, 1])", ErrInvalidBarAlpha, a.BarAlpha)
	}
	if a.MaxBars < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means all)", ErrInvalidMaxBars, a.MaxBars)
	}
	return nil
}

// Input contains rendering parameters for one output variant.
type Input struct {
	Table     *Table
	Layout    Layout
	Animation Animation
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	title string
	hold  time.Duration
}

// Defaults applied by New.
const (
	DefaultTitle = "Yearly Sales by Sub-Categories"
	DefaultHold  = 2 * time.Second
	MaxHold      = 30 * time.Second
)

// WithTitle sets the chart title drawn above the plot area.
func WithTitle(title string) Option {
	return func(s *Service) {
		s.cfg.title = title
	}
}

// WithHold sets how long the final frame stays on screen. Zero disables
// the hold. Panics if d is negative or above MaxHold (programmer error,
// similar to time.NewTicker).
func WithHold(d time.Duration) Option {
	if d < 0 || d > MaxHold {
		panic("salesrace: WithHold duration out of range")
	}
	return func(s *Service) {
		s.cfg.hold = d
	}
}
