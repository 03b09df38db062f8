// Package sender converts an arbitrary source image into the wire pixel
// format and forwards it to a receiver as a single frame upload.
package sender

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/framecast/framecast/rgb565"
)

// Options controls the conversion. Zero values mean: black background,
// little-endian wire order.
type Options struct {
	Width      int
	Height     int
	Background color.Color
	ByteOrder  binary.ByteOrder
}

func (o *Options) background() color.Color {
	if o.Background == nil {
		return color.Black
	}
	return o.Background
}

func (o *Options) byteOrder() binary.ByteOrder {
	if o.ByteOrder == nil {
		return binary.LittleEndian
	}
	return o.ByteOrder
}

// Load decodes a source image from a local file.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}

// Fetch decodes a source image from a URL. Load takes precedence over
// Fetch when the caller has both a file and a URL.
func Fetch(url string) (image.Image, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching image: %s", resp.Status)
	}

	m, _, err := image.Decode(resp.Body)
	return m, err
}

// Fit flattens and resizes m to exactly width x height: the background
// fills the canvas, alpha is composited over it, and the image is
// scaled preserving aspect ratio and centered.
func Fit(m image.Image, width, height int, bg color.Color) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	sb := m.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return dst
	}

	// Largest rectangle with the source aspect ratio that fits the
	// canvas, centered.
	w, h := width, sb.Dy()*width/sb.Dx()
	if h > height {
		w, h = sb.Dx()*height/sb.Dy(), height
	}
	x := (width - w) / 2
	y := (height - h) / 2

	xdraw.CatmullRom.Scale(dst, image.Rect(x, y, x+w, y+h), m, sb, xdraw.Over, nil)
	return dst
}

// Convert runs the full conversion: fit to the target geometry, then
// encode to wire bytes in the selected byte order.
func Convert(m image.Image, opts Options) ([]byte, error) {
	fitted := Fit(m, opts.Width, opts.Height, opts.background())

	var buf bytes.Buffer
	buf.Grow(opts.Width * opts.Height * 2)
	if err := rgb565.Encode(&buf, fitted, opts.byteOrder()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Response is the receiver's reply to a frame upload.
type Response struct {
	StatusCode int
	Status     string
	Body       string
}

// Ok reports whether the receiver accepted the full frame.
func (r *Response) Ok() bool {
	return r.StatusCode == http.StatusOK
}

// Send posts body to the receiver at addr under path and parses the
// single plain-text reply. The request is framed by hand: the receiver
// speaks a minimal HTTP/1.1 subset and expects an exact Content-Length.
func Send(addr, path string, body []byte, timeout time.Duration) (*Response, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(timeout))

	var head bytes.Buffer
	head.WriteString("POST " + path + " HTTP/1.1\r\n")
	head.WriteString("Host: " + addr + "\r\n")
	head.WriteString("Content-Type: application/octet-stream\r\n")
	head.WriteString("Content-Length: " + strconv.Itoa(len(body)) + "\r\n")
	head.WriteString("Connection: close\r\n\r\n")

	if _, err := conn.Write(head.Bytes()); err != nil {
		return nil, err
	}
	if _, err := conn.Write(body); err != nil {
		return nil, err
	}

	return readResponse(bufio.NewReader(conn))
}

func readResponse(r *bufio.Reader) (*Response, error) {
	statusLine, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	statusLine = strings.TrimRight(statusLine, "\r\n")

	fields := strings.SplitN(statusLine, " ", 3)
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "HTTP/") {
		return nil, errors.New("malformed status line")
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, errors.New("malformed status code")
	}

	resp := &Response{StatusCode: code, Status: statusLine}

	length := -1
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				length = n
			}
		}
	}

	if length >= 0 {
		body := make([]byte, length)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, err
		}
		resp.Body = string(body)
	}
	return resp, nil
}
