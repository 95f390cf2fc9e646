package ui

import (
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// loadOverlay decodes the shell-skin PNG at path and scales it to exactly
// w x h using golang.org/x/image/draw's bilinear kernel, returning nil if
// the file is missing or unreadable (the overlay is optional decoration).
func loadOverlay(path string, w, h int) *image.RGBA {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	src, err := png.Decode(f)
	if err != nil {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
