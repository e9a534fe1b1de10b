// Package gifutil encodes RGBA frame sequences as animated GIFs and
// post-processes encoded GIFs.
package gifutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"time"

	"github.com/soniakeys/quant/median"
)

// Sentinel errors for GIF operations.
var (
	ErrNoFrames     = errors.New("no frames to encode")
	ErrInvalidDelay = errors.New("invalid frame delay")
	ErrDecode       = errors.New("failed to decode GIF")
	ErrEmptyGIF     = errors.New("GIF has no frames")
)

// maxColors is the GIF per-frame palette limit.
const maxColors = 256

// LoopForever makes the animation repeat indefinitely.
const LoopForever = 0

// hundredths converts a duration to GIF delay units (1/100 s), flooring
// at one unit so frames are never instantaneous.
func hundredths(d time.Duration) int {
	n := int(d / (10 * time.Millisecond))
	if n < 1 {
		n = 1
	}
	return n
}

// Encode palettizes each frame with median-cut quantization and encodes an
// animated GIF. Every frame gets the same delay; loopCount follows
// image/gif semantics (0 loops forever).
func Encode(frames []image.Image, delay time.Duration, loopCount int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if delay <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDelay, delay)
	}

	q := median.Quantizer(maxColors)

	out := &gif.GIF{
		Image:     make([]*image.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		LoopCount: loopCount,
	}
	for i, frame := range frames {
		out.Image[i] = q.Paletted(frame)
		out.Delay[i] = hundredths(delay)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		return nil, fmt.Errorf("encoding GIF: %w", err)
	}
	return buf.Bytes(), nil
}

// ExtendLastFrame re-encodes an animated GIF with the final frame's delay
// replaced by hold, so viewers can read the final state, and sets the
// animation to loop forever.
func ExtendLastFrame(data []byte, hold time.Duration) ([]byte, error) {
	if hold <= 0 {
		return nil, fmt.Errorf("%w: hold %s", ErrInvalidDelay, hold)
	}

	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(g.Image) == 0 {
		return nil, ErrEmptyGIF
	}

	g.Delay[len(g.Delay)-1] = hundredths(hold)
	g.LoopCount = LoopForever

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return nil, fmt.Errorf("re-encoding GIF: %w", err)
	}
	return buf.Bytes(), nil
}
