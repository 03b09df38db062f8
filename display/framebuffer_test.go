package display

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaintRectangle(t *testing.T) {
	fb := NewFramebuffer(4, 4)

	fb.Paint(1, 2, 2, 1, []uint16{0xf800, 0x07e0})

	assert.Equal(t, uint16(0xf800), fb.At(1, 2))
	assert.Equal(t, uint16(0x07e0), fb.At(2, 2))
	assert.Equal(t, uint16(0), fb.At(0, 2))
	assert.Equal(t, uint16(0), fb.At(3, 2))
	assert.Equal(t, uint16(0), fb.At(1, 1))
}

func TestPaintBandRows(t *testing.T) {
	fb := NewFramebuffer(3, 4)

	// Two-row band at y=1, row-major words.
	fb.Paint(0, 1, 3, 2, []uint16{1, 2, 3, 4, 5, 6})

	assert.Equal(t, uint16(1), fb.At(0, 1))
	assert.Equal(t, uint16(3), fb.At(2, 1))
	assert.Equal(t, uint16(4), fb.At(0, 2))
	assert.Equal(t, uint16(6), fb.At(2, 2))
}

func TestPaintClipsToBounds(t *testing.T) {
	fb := NewFramebuffer(2, 2)

	assert.NotPanics(t, func() {
		fb.Paint(1, 1, 2, 2, []uint16{1, 2, 3, 4})
	})
	assert.Equal(t, uint16(1), fb.At(1, 1))
}

func TestImageExpansion(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Paint(0, 0, 2, 1, []uint16{0xf800, 0xffff})

	m := fb.Image()
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, m.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, m.NRGBAAt(1, 0))
}

func TestWritePNG(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Paint(0, 0, 8, 8, make([]uint16, 64))

	var buf bytes.Buffer
	require.NoError(t, fb.WritePNG(&buf))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Bounds().Dx())
	assert.Equal(t, 8, decoded.Bounds().Dy())
}
