package server

import (
	"errors"
	"net"
	"time"
)

var errLineTooLong = errors.New("header line too long")

// line is the result of one readLine call. clean reports that a full
// LF-terminated line arrived; when false, text holds whatever partial
// data had accumulated before the timeout or socket error.
type line struct {
	text  string
	clean bool
}

// readLine reads a single header line from conn, one byte at a time so
// that nothing past the line is consumed. The trailing CR/LF is stripped.
// The timeout covers the whole call, not each byte.
func readLine(conn net.Conn, timeout time.Duration, maxLen int) (line, error) {
	buf := make([]byte, 0, 64)
	var b [1]byte

	conn.SetReadDeadline(time.Now().Add(timeout))
	defer conn.SetReadDeadline(time.Time{})

	for {
		n, err := conn.Read(b[:])
		if n > 0 {
			if b[0] == '\n' {
				return line{text: trimCR(buf), clean: true}, nil
			}
			buf = append(buf, b[0])
			if len(buf) > maxLen {
				return line{text: trimCR(buf)}, errLineTooLong
			}
		}
		if err != nil {
			return line{text: trimCR(buf)}, nil
		}
	}
}

func trimCR(buf []byte) string {
	if len(buf) > 0 && buf[len(buf)-1] == '\r' {
		buf = buf[:len(buf)-1]
	}
	return string(buf)
}
