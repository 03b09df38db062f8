/*
Package display models the panel the receiver paints onto.

The receiver only ever issues rectangular paint calls with native pixel
words; it never reads the panel back. Framebuffer is an in-memory
implementation of that contract, useful for tests and for hosts without
a physical panel, with PNG snapshots for inspection.
*/
package display

import (
	"image"
	"image/png"
	"io"
	"sync"

	"github.com/framecast/framecast/rgb565"
)

// Surface is the collaborator contract a paint target implements.
type Surface interface {
	Paint(x, y, w, h int, pix []uint16)
}

// Framebuffer is a fixed-size in-memory surface of native pixel words.
type Framebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	pix    []uint16
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]uint16, width*height),
	}
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

// Paint writes the w x h rectangle at (x, y) from pix, row-major. The
// rectangle is clipped to the framebuffer bounds; the whole call is
// atomic with respect to Image and At.
func (f *Framebuffer) Paint(x, y, w, h int, pix []uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for row := 0; row < h; row++ {
		dy := y + row
		if dy < 0 || dy >= f.height {
			continue
		}
		for col := 0; col < w; col++ {
			dx := x + col
			if dx < 0 || dx >= f.width {
				continue
			}
			f.pix[dy*f.width+dx] = pix[row*w+col]
		}
	}
}

// At returns the pixel word at (x, y).
func (f *Framebuffer) At(x, y int) uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pix[y*f.width+x]
}

// Image expands the framebuffer contents to an 8-bit image.
func (f *Framebuffer) Image() *image.NRGBA {
	f.mu.Lock()
	defer f.mu.Unlock()

	m := image.NewNRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			m.SetNRGBA(x, y, rgb565.ToColor(f.pix[y*f.width+x]))
		}
	}
	return m
}

// WritePNG writes a snapshot of the framebuffer to w.
func (f *Framebuffer) WritePNG(w io.Writer) error {
	return png.Encode(w, f.Image())
}
