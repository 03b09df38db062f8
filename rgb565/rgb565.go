/*
Package rgb565 implements the wire pixel format used for frame uploads.

Each pixel is one 16-bit word packing 5 bits of red, 6 bits of green and
5 bits of blue, most significant field first: (r<<11)|(g<<5)|b. On the
wire a word is two bytes in little-endian order and a frame is emitted
row-major, top to bottom, left to right, with no header or padding, so a
WxH frame is exactly W*H*2 bytes.
*/
package rgb565

import "image/color"

// Pack builds a pixel word from its 5/6/5-bit fields. Arguments are
// masked to their field widths.
func Pack(r, g, b uint8) uint16 {
	return uint16(r&0x1f)<<11 | uint16(g&0x3f)<<5 | uint16(b&0x1f)
}

// R returns the 5-bit red field of w.
func R(w uint16) uint8 { return uint8(w >> 11) }

// G returns the 6-bit green field of w.
func G(w uint16) uint8 { return uint8(w >> 5 & 0x3f) }

// B returns the 5-bit blue field of w.
func B(w uint16) uint8 { return uint8(w & 0x1f) }

// FromColor quantizes a color to a pixel word by field truncation.
func FromColor(c color.Color) uint16 {
	r, g, b, _ := c.RGBA()
	return uint16(r>>11)<<11 | uint16(g>>10)<<5 | uint16(b>>11)
}

// ToColor expands a pixel word back to 8-bit channels, replicating the
// high bits into the low ones so full intensity maps to 255.
func ToColor(w uint16) color.NRGBA {
	r, g, b := R(w), G(w), B(w)
	return color.NRGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xff,
	}
}

// Word decodes one little-endian wire word. The byte math is fixed by
// the wire format and does not depend on host endianness.
func Word(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

// PutWord encodes one little-endian wire word into b.
func PutWord(b []byte, w uint16) {
	b[0] = byte(w)
	b[1] = byte(w >> 8)
}

// Words decodes len(dst) pixel words from src, which must hold exactly
// len(dst)*2 bytes. It allocates nothing; callers reuse dst across
// chunks.
func Words(dst []uint16, src []byte) {
	if len(dst) == 0 {
		return
	}
	_ = src[len(dst)*2-1]
	for i := range dst {
		dst[i] = uint16(src[i*2]) | uint16(src[i*2+1])<<8
	}
}
