package render

import "sort"

// Bar is the interpolated state of one category within a frame.
type Bar struct {
	Category   string
	ColorIndex int
	Value      float64
	Rank       float64 // 0 is the top slot; fractional during transitions
}

// Frame is one drawable animation step.
type Frame struct {
	Label string
	Bars  []Bar
}

// Plan builds the frame sequence. The first period gets a single static
// frame; every following period gets StepsPerPeriod frames that linearly
// interpolate both bar values and bar ranks from the previous period, so
// reordering animates as a smooth slide. The label always shows the
// target period of a transition.
func Plan(in Input, anim Animation) []Frame {
	n := len(in.PeriodLabels)
	if n == 0 || len(in.Categories) == 0 {
		return nil
	}

	ranks := make([][]float64, n)
	for i := range in.Values {
		ranks[i] = rankValues(in.Values[i], in.Categories)
	}

	steps := anim.StepsPerPeriod
	if steps < 1 {
		steps = 1
	}

	frames := make([]Frame, 0, 1+(n-1)*steps)
	frames = append(frames, makeFrame(in, in.Values[0], ranks[0], in.PeriodLabels[0]))

	for p := 1; p < n; p++ {
		for s := 1; s <= steps; s++ {
			t := float64(s) / float64(steps)
			values := lerpSlice(in.Values[p-1], in.Values[p], t)
			rank := lerpSlice(ranks[p-1], ranks[p], t)
			frames = append(frames, makeFrame(in, values, rank, in.PeriodLabels[p]))
		}
	}

	return frames
}

// makeFrame builds a frame from interpolated values and ranks.
func makeFrame(in Input, values, ranks []float64, label string) Frame {
	bars := make([]Bar, len(in.Categories))
	for j, cat := range in.Categories {
		bars[j] = Bar{
			Category:   cat,
			ColorIndex: j,
			Value:      values[j],
			Rank:       ranks[j],
		}
	}
	return Frame{Label: label, Bars: bars}
}

// rankValues assigns each category its descending-value rank for one
// period. Ties break by category name so ranks are deterministic.
func rankValues(values []float64, categories []string) []float64 {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if values[ia] != values[ib] {
			return values[ia] > values[ib]
		}
		return categories[ia] < categories[ib]
	})

	ranks := make([]float64, len(values))
	for pos, idx := range order {
		ranks[idx] = float64(pos)
	}
	return ranks
}

// lerpSlice interpolates element-wise between a and b at t in [0, 1].
func lerpSlice(a, b []float64, t float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

// MaxValue returns the largest value across all periods.
func (in Input) MaxValue() float64 {
	var max float64
	for _, row := range in.Values {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return max
}
