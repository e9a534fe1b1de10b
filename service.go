package salesrace

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/alnah/go-salesrace/internal/gifutil"
	"github.com/alnah/go-salesrace/internal/render"
)

// Font sizes in points and the export resolution. The original renders at
// 240 DPI for social media, so point sizes scale by dpi/72.
const (
	renderDPI = 240

	titlePt    = 16
	barLabelPt = 11
	tickPt     = 10
	periodPt   = 20
)

// periodLabelFormat renders the year marker, e.g. "Year: 2016".
const periodLabelFormat = "Year: %d"

// Service orchestrates the bar chart race pipeline: frame planning,
// drawing, GIF encoding, and the final-frame hold.
type Service struct {
	cfg serviceConfig
}

// New creates a Service with default configuration. Use options to
// customize behavior (e.g., WithTitle, WithHold).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			title: DefaultTitle,
			hold:  DefaultHold,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render runs the full pipeline for one output variant and returns the
// encoded GIF. The context cancels rendering between frames.
func (s *Service) Render(ctx context.Context, input Input) ([]byte, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	series := toRenderInput(input.Table)
	frames := render.Plan(series, toRenderAnimation(input.Animation))

	drawer, err := render.NewDrawer(
		toRenderLayout(input.Layout),
		s.drawStyle(input.Animation),
		len(input.Table.Categories),
	)
	if err != nil {
		return nil, fmt.Errorf("preparing drawer: %w", err)
	}

	var scaleMax float64
	if input.Animation.FixedMax {
		scaleMax = series.MaxValue()
	}

	images := make([]image.Image, len(frames))
	for i, frame := range frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := drawer.Draw(frame, scaleMax)
		if err != nil {
			return nil, fmt.Errorf("drawing frame %d: %w", i, err)
		}
		images[i] = img
	}

	delay := input.Animation.PeriodLength / time.Duration(input.Animation.StepsPerPeriod)
	data, err := gifutil.Encode(images, delay, gifutil.LoopForever)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGIFEncode, err)
	}

	if s.cfg.hold > 0 {
		data, err = gifutil.ExtendLastFrame(data, s.cfg.hold)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGIFEncode, err)
		}
	}

	return data, nil
}

// validateInput checks that required fields are present and valid.
func (s *Service) validateInput(input Input) error {
	if input.Table.isEmpty() {
		return ErrEmptyTable
	}
	if err := input.Layout.Validate(); err != nil {
		return err
	}
	return input.Animation.Validate()
}

// drawStyle scales the point sizes to the export resolution.
func (s *Service) drawStyle(anim Animation) render.Style {
	const ptToPx = float64(renderDPI) / 72
	return render.Style{
		Title:      s.cfg.title,
		TitlePx:    titlePt * ptToPx,
		BarLabelPx: barLabelPt * ptToPx,
		TickPx:     tickPt * ptToPx,
		PeriodPx:   periodPt * ptToPx,
		BarSize:    anim.BarSize,
		BarAlpha:   anim.BarAlpha,
		MaxBars:    anim.MaxBars,
	}
}

// toRenderInput converts the public Table to the renderer's series form.
func toRenderInput(t *Table) render.Input {
	labels := make([]string, len(t.Years))
	for i, y := range t.Years {
		labels[i] = fmt.Sprintf(periodLabelFormat, y)
	}
	return render.Input{
		PeriodLabels: labels,
		Categories:   t.Categories,
		Values:       t.Values,
	}
}

// toRenderAnimation converts the public Animation to the renderer's form.
func toRenderAnimation(a Animation) render.Animation {
	return render.Animation{
		StepsPerPeriod: a.StepsPerPeriod,
		BarSize:        a.BarSize,
		BarAlpha:       a.BarAlpha,
		FixedMax:       a.FixedMax,
		MaxBars:        a.MaxBars,
	}
}

// toRenderLayout converts the public Layout to the renderer's form.
func toRenderLayout(l Layout) render.Layout {
	return render.Layout{
		Width:        l.Width,
		Height:       l.Height,
		MarginLeft:   l.MarginLeft,
		MarginRight:  l.MarginRight,
		MarginBottom: l.MarginBottom,
		MarginTop:    l.MarginTop,
		PeriodLabelX: l.PeriodLabelX,
		PeriodLabelY: l.PeriodLabelY,
	}
}
