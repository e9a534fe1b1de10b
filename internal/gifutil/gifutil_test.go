package gifutil

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"testing"
	"time"
)

// solidFrame returns a small RGBA frame filled with c.
func solidFrame(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 32; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func testFrames() []image.Image {
	return []image.Image{
		solidFrame(color.RGBA{R: 255, A: 255}),
		solidFrame(color.RGBA{G: 255, A: 255}),
		solidFrame(color.RGBA{B: 255, A: 255}),
	}
}

func TestEncode(t *testing.T) {
	t.Run("encodes all frames with uniform delay", func(t *testing.T) {
		data, err := Encode(testFrames(), 50*time.Millisecond, LoopForever)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}

		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decoding: %v", err)
		}
		if len(g.Image) != 3 {
			t.Errorf("frames = %d, want 3", len(g.Image))
		}
		for i, d := range g.Delay {
			if d != 5 {
				t.Errorf("Delay[%d] = %d, want 5", i, d)
			}
		}
		if g.LoopCount != 0 {
			t.Errorf("LoopCount = %d, want 0", g.LoopCount)
		}
	})

	t.Run("sub-hundredth delays floor to one unit", func(t *testing.T) {
		data, err := Encode(testFrames()[:1], 2*time.Millisecond, LoopForever)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decoding: %v", err)
		}
		if g.Delay[0] != 1 {
			t.Errorf("Delay[0] = %d, want 1", g.Delay[0])
		}
	})

	t.Run("no frames returns ErrNoFrames", func(t *testing.T) {
		if _, err := Encode(nil, time.Second, LoopForever); !errors.Is(err, ErrNoFrames) {
			t.Errorf("error = %v, want ErrNoFrames", err)
		}
	})

	t.Run("non-positive delay returns ErrInvalidDelay", func(t *testing.T) {
		if _, err := Encode(testFrames(), 0, LoopForever); !errors.Is(err, ErrInvalidDelay) {
			t.Errorf("error = %v, want ErrInvalidDelay", err)
		}
	})
}

func TestExtendLastFrame(t *testing.T) {
	t.Run("replaces final delay and loops forever", func(t *testing.T) {
		data, err := Encode(testFrames(), 50*time.Millisecond, 3)
		if err != nil {
			t.Fatalf("setup: %v", err)
		}

		extended, err := ExtendLastFrame(data, 2*time.Second)
		if err != nil {
			t.Fatalf("ExtendLastFrame() error = %v", err)
		}

		g, err := gif.DecodeAll(bytes.NewReader(extended))
		if err != nil {
			t.Fatalf("decoding: %v", err)
		}
		if len(g.Image) != 3 {
			t.Errorf("frames = %d, want 3", len(g.Image))
		}
		if g.Delay[0] != 5 || g.Delay[1] != 5 {
			t.Errorf("leading delays = %v, want 5s of a hundredth", g.Delay[:2])
		}
		if g.Delay[2] != 200 {
			t.Errorf("last delay = %d, want 200", g.Delay[2])
		}
		if g.LoopCount != 0 {
			t.Errorf("LoopCount = %d, want 0", g.LoopCount)
		}
	})

	t.Run("garbage input returns ErrDecode", func(t *testing.T) {
		if _, err := ExtendLastFrame([]byte("not a gif"), time.Second); !errors.Is(err, ErrDecode) {
			t.Errorf("error = %v, want ErrDecode", err)
		}
	})

	t.Run("non-positive hold returns ErrInvalidDelay", func(t *testing.T) {
		if _, err := ExtendLastFrame([]byte{}, 0); !errors.Is(err, ErrInvalidDelay) {
			t.Errorf("error = %v, want ErrInvalidDelay", err)
		}
	})
}

func TestHundredths(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want int
	}{
		{10 * time.Millisecond, 1},
		{600 * time.Millisecond, 60},
		{2 * time.Second, 200},
		{time.Millisecond, 1}, // floors at one unit
	}
	for _, tt := range tests {
		if got := hundredths(tt.in); got != tt.want {
			t.Errorf("hundredths(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
