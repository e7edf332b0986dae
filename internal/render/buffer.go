package render

import (
	"image"

	"whitted-renderer/internal/geom"
)

// FrameBuffer holds the rendering target as a flat slice for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGB interleaved, len = W*H*3
}

// NewFrameBuffer allocates a zeroed (black) buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*3),
	}
}

// Set writes one pixel. Coordinates are not bounds-checked beyond the slice.
func (fb *FrameBuffer) Set(x, y int, c geom.Color) {
	i := (y*fb.Width + x) * 3
	fb.Pix[i] = c[0]
	fb.Pix[i+1] = c[1]
	fb.Pix[i+2] = c[2]
}

// At reads one pixel.
func (fb *FrameBuffer) At(x, y int) geom.Color {
	i := (y*fb.Width + x) * 3
	return geom.Color{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]}
}

// Image converts the buffer to an opaque NRGBA image for the encoders.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, j := 0, 0; i < len(fb.Pix); i, j = i+3, j+4 {
		img.Pix[j] = fb.Pix[i]
		img.Pix[j+1] = fb.Pix[i+1]
		img.Pix[j+2] = fb.Pix[i+2]
		img.Pix[j+3] = 255
	}
	return img
}
