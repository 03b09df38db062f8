package server

import (
	"errors"
	"fmt"
	"net"

	"github.com/framecast/framecast/rgb565"
)

// Display is the surface the received frame is painted onto. Paint
// writes the given rectangle from pix atomically; the driver never
// reads display state back.
type Display interface {
	Paint(x, y, w, h int, pix []uint16)
}

// painter runs the banded receive/decode/paint loop for one exchange.
// Both buffers are allocated once here and reused for every band, so
// peak memory stays at O(RowsPerChunk x Width) no matter how tall the
// frame is.
type painter struct {
	cfg     *Config
	display Display
	byteBuf []byte   // raw wire bytes for one band
	wordBuf []uint16 // decoded native pixel words for one band
}

func newPainter(cfg *Config, display Display) *painter {
	pixels := cfg.Width * cfg.RowsPerChunk
	return &painter{
		cfg:     cfg,
		display: display,
		byteBuf: make([]byte, pixels*2),
		wordBuf: make([]uint16, pixels),
	}
}

// run validates the declared length and then walks the frame top to
// bottom in bands of RowsPerChunk rows (the last band may be shorter).
// Bands are strictly ordered: band N is fully received and painted
// before band N+1 is read. Any band timeout is terminal; rows already
// painted stay on the display.
func (p *painter) run(conn net.Conn, declared int) *Outcome {
	cfg := p.cfg

	if declared != cfg.TotalBytes() {
		return WrongLength(cfg.TotalBytes(), declared)
	}

	for y := 0; y < cfg.Height; y += cfg.RowsPerChunk {
		rows := min(cfg.RowsPerChunk, cfg.Height-y)
		band := p.byteBuf[:cfg.BandBytes(rows)]

		if err := readFully(conn, band, cfg.BandTimeout); err != nil {
			if errors.Is(err, errReceiveTimeout) {
				return ReceiveTimeout(y)
			}
			return InternalError(fmt.Sprintf("receive failed at row %d: %v", y, err))
		}

		words := p.wordBuf[:cfg.Width*rows]
		rgb565.Words(words, band)

		p.display.Paint(0, y, cfg.Width, rows, words)
	}

	return Success()
}
