// Package render plans and draws the frames of a bar chart race.
//
// The package works on plain slices so it stays decoupled from the public
// API types: the caller supplies period labels, category names, and a
// values matrix, and gets back drawable frames. Frames are drawn onto RGBA
// canvases with github.com/fogleman/gg.
package render

// Input is the data series to animate: Values[i][j] is the value of
// Categories[j] during the period described by PeriodLabels[i].
type Input struct {
	PeriodLabels []string
	Categories   []string
	Values       [][]float64
}

// Animation controls frame planning.
type Animation struct {
	StepsPerPeriod int
	BarSize        float64
	BarAlpha       float64
	FixedMax       bool
	MaxBars        int // 0 = all categories
}
