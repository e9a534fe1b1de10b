package render

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// defaultHex is a 12-color palette of saturated dark hues, picked so
// adjacent sub-categories stay distinguishable. Categories keep the same
// color across every frame; palettes cycle when there are more than
// twelve categories.
var defaultHex = []string{
	"#1f77b4",
	"#d62728",
	"#2ca02c",
	"#9467bd",
	"#8c564b",
	"#e377c2",
	"#bcbd22",
	"#17becf",
	"#ff7f0e",
	"#393b79",
	"#637939",
	"#7f7f7f",
}

// Colors returns n category colors cycling through the default palette.
func Colors(n int) ([]colorful.Color, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative color count %d", n)
	}
	out := make([]colorful.Color, n)
	for i := 0; i < n; i++ {
		c, err := colorful.Hex(defaultHex[i%len(defaultHex)])
		if err != nil {
			return nil, fmt.Errorf("parsing palette color %q: %w", defaultHex[i%len(defaultHex)], err)
		}
		out[i] = c
	}
	return out, nil
}
