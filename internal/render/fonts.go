package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts come from the embedded Go font family, so rendering needs no font
// files on disk. Parsed fonts are cached; faces are built per size.
var (
	regularOnce sync.Once
	regularFont *opentype.Font
	regularErr  error

	boldOnce sync.Once
	boldFont *opentype.Font
	boldErr  error
)

// regularFace returns a Go Regular face at the given pixel size.
func regularFace(px float64) (font.Face, error) {
	regularOnce.Do(func() {
		regularFont, regularErr = opentype.Parse(goregular.TTF)
	})
	if regularErr != nil {
		return nil, fmt.Errorf("parsing regular font: %w", regularErr)
	}
	return newFace(regularFont, px)
}

// boldFace returns a Go Bold face at the given pixel size.
func boldFace(px float64) (font.Face, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = opentype.Parse(gobold.TTF)
	})
	if boldErr != nil {
		return nil, fmt.Errorf("parsing bold font: %w", boldErr)
	}
	return newFace(boldFont, px)
}

// newFace builds a face at px pixels. Size is in points at 72 DPI, which
// makes points equal pixels.
func newFace(f *opentype.Font, px float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("building font face: %w", err)
	}
	return face, nil
}
