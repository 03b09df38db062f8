package server

import (
	"errors"
	"net"
	"os"
	"time"
)

var errReceiveTimeout = errors.New("timeout receiving body")

// readFully fills buf from conn or fails. The timeout is a ceiling on
// the whole call measured from entry, not an inactivity timer, matching
// the fixed per-band deadline of the wire protocol. On failure the bytes
// already read are discarded by the caller.
//
// No allocation happens here; buf is caller-owned and fixed-size.
func readFully(conn net.Conn, buf []byte, timeout time.Duration) error {
	conn.SetReadDeadline(time.Now().Add(timeout))
	defer conn.SetReadDeadline(time.Time{})

	got := 0
	for got < len(buf) {
		n, err := conn.Read(buf[got:])
		got += n
		if err != nil {
			if isTimeout(err) {
				return errReceiveTimeout
			}
			return err
		}
	}
	return nil
}

func isTimeout(err error) bool {
	return errors.Is(err, os.ErrDeadlineExceeded) || isNetTimeout(err)
}

func isNetTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
