package rgb565

import (
	"encoding/binary"
	"errors"
	"image"
	"io"
)

var (
	errNotEnough = errors.New("rgb565: not enough image data")
	errTooMuch   = errors.New("rgb565: too much image data")
)

// Encode writes m to w in the wire format, row-major over m's bounds.
// The byte order is selectable for senders targeting big-endian
// receivers; the frame upload protocol uses binary.LittleEndian.
func Encode(w io.Writer, m image.Image, order binary.ByteOrder) error {
	b := m.Bounds()
	row := make([]byte, b.Dx()*2)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := 0
		for x := b.Min.X; x < b.Max.X; x++ {
			order.PutUint16(row[i:], FromColor(m.At(x, y)))
			i += 2
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Decode reads exactly width*height little-endian pixel words from r
// and returns the expanded image. A short stream or trailing data is an
// error.
func Decode(r io.Reader, width, height int) (image.Image, error) {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	row := make([]byte, width*2)

	for y := 0; y < height; y++ {
		if err := readFull(r, row); err != nil {
			if err == io.ErrUnexpectedEOF {
				return nil, errNotEnough
			}
			return nil, err
		}
		for x := 0; x < width; x++ {
			m.SetNRGBA(x, y, ToColor(Word(row[x*2:])))
		}
	}

	if n, err := r.Read(row[:1]); n != 0 || (err != io.EOF && err != io.ErrUnexpectedEOF) {
		if err != nil && err != io.EOF {
			return nil, err
		}
		return nil, errTooMuch
	}

	return m, nil
}
