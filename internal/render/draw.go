package render

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Layout mirrors the public layout geometry in pixel/fraction form.
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

// Style holds drawing parameters shared by every frame of one variant.
type Style struct {
	Title string

	TitlePx    float64
	BarLabelPx float64
	TickPx     float64
	PeriodPx   float64

	BarSize  float64
	BarAlpha float64
	MaxBars  int // 0 = all
}

// textGray is the label color used throughout (the original's #333).
const textGray = 0.2

// Drawer renders frames for one output variant. It pre-builds the font
// faces and category colors once; Draw is then called per frame. A Drawer
// is not safe for concurrent use.
type Drawer struct {
	layout Layout
	style  Style
	colors []colorful.Color

	titleFace  font.Face
	labelFace  font.Face
	tickFace   font.Face
	periodFace font.Face

	printer *message.Printer
}

// NewDrawer builds a Drawer for the given geometry, style, and category
// count.
func NewDrawer(layout Layout, style Style, categories int) (*Drawer, error) {
	colors, err := Colors(categories)
	if err != nil {
		return nil, err
	}

	d := &Drawer{
		layout:  layout,
		style:   style,
		colors:  colors,
		printer: message.NewPrinter(language.English),
	}

	if d.titleFace, err = boldFace(style.TitlePx); err != nil {
		return nil, err
	}
	if d.labelFace, err = regularFace(style.BarLabelPx); err != nil {
		return nil, err
	}
	if d.tickFace, err = regularFace(style.TickPx); err != nil {
		return nil, err
	}
	if d.periodFace, err = boldFace(style.PeriodPx); err != nil {
		return nil, err
	}

	return d, nil
}

// Draw renders one frame. scaleMax fixes the value axis; pass 0 to scale
// each frame to its own maximum.
func (d *Drawer) Draw(f Frame, scaleMax float64) (image.Image, error) {
	if len(f.Bars) == 0 {
		return nil, fmt.Errorf("frame has no bars")
	}

	if scaleMax <= 0 {
		for _, b := range f.Bars {
			if b.Value > scaleMax {
				scaleMax = b.Value
			}
		}
	}

	w := float64(d.layout.Width)
	h := float64(d.layout.Height)

	// Plot-area edges in pixels. Margins follow the original's
	// subplots_adjust semantics: fractions measured from the bottom-left.
	x0 := d.layout.MarginLeft * w
	x1 := d.layout.MarginRight * w
	yTop := (1 - d.layout.MarginTop) * h
	yBottom := (1 - d.layout.MarginBottom) * h
	plotW := x1 - x0
	plotH := yBottom - yTop

	dc := gg.NewContext(d.layout.Width, d.layout.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Title, centered over the plot area.
	dc.SetFontFace(d.titleFace)
	dc.SetRGB(textGray, textGray, textGray)
	dc.DrawStringAnchored(d.style.Title, (x0+x1)/2, yTop/2, 0.5, 0.5)

	slots := len(f.Bars)
	if d.style.MaxBars > 0 && d.style.MaxBars < slots {
		slots = d.style.MaxBars
	}
	slotH := plotH / float64(slots)
	barH := slotH * d.style.BarSize

	tickPad := d.style.TickPx * 0.6
	labelPad := d.style.BarLabelPx * 0.5

	for _, bar := range f.Bars {
		// Bars slide out below the last visible slot during transitions.
		if bar.Rank >= float64(slots) {
			continue
		}

		y := yTop + bar.Rank*slotH + (slotH-barH)/2
		yMid := y + barH/2

		if scaleMax > 0 && bar.Value > 0 {
			barW := bar.Value / scaleMax * plotW
			c := d.colors[bar.ColorIndex]
			dc.SetRGBA(c.R, c.G, c.B, d.style.BarAlpha)
			dc.DrawRectangle(x0, y, barW, barH)
			dc.Fill()

			// Value label just past the end of the bar.
			dc.SetFontFace(d.labelFace)
			dc.SetRGB(textGray, textGray, textGray)
			dc.DrawStringAnchored(d.printer.Sprintf("%.0f", bar.Value), x0+barW+labelPad, yMid, 0, 0.35)
		}

		// Category label left of the axis.
		dc.SetFontFace(d.tickFace)
		dc.SetRGB(textGray, textGray, textGray)
		dc.DrawStringAnchored(bar.Category, x0-tickPad, yMid, 1, 0.35)
	}

	// Period label anchored inside the plot area, right-aligned with the
	// text sitting above the anchor point.
	dc.SetFontFace(d.periodFace)
	dc.SetRGB(textGray, textGray, textGray)
	px := x0 + d.layout.PeriodLabelX*plotW
	py := yBottom - d.layout.PeriodLabelY*plotH
	dc.DrawStringAnchored(f.Label, px, py, 1, 0)

	return dc.Image(), nil
}
