package server

import (
	"net"
	"strconv"
	"strings"
)

// Request describes one parsed frame-upload request. It is immutable
// once readRequest returns.
type Request struct {
	Method        string
	Path          string
	ContentLength int
}

// readRequest consumes the request line and all header lines up to the
// blank separator. Only Content-Length is extracted; every other header
// is ignored. A missing Content-Length parses as zero, which the length
// gate rejects later.
//
// The bool result reports whether a request was identified at all. A
// silent or empty request line means the peer is gone or never spoke;
// the caller drops the connection without a response.
func readRequest(conn net.Conn, cfg *Config) (*Request, bool, *Outcome) {
	first, err := readLine(conn, cfg.HeaderTimeout, cfg.MaxLineBytes)
	if err != nil {
		return nil, true, BadRequest(err.Error())
	}
	if first.text == "" {
		return nil, false, nil
	}
	if !first.clean {
		return nil, true, BadRequest("incomplete request line")
	}

	fields := strings.Fields(first.text)
	if len(fields) < 2 {
		return nil, true, BadRequest("malformed request line")
	}

	req := &Request{Method: fields[0], Path: fields[1]}

	for {
		h, err := readLine(conn, cfg.HeaderTimeout, cfg.MaxLineBytes)
		if err != nil {
			return nil, true, BadRequest(err.Error())
		}
		if h.text == "" {
			// Clean blank line ends the headers; a timed-out empty
			// read means the peer stalled mid-headers.
			if !h.clean {
				return nil, true, BadRequest("timeout reading headers")
			}
			break
		}
		if !h.clean {
			return nil, true, BadRequest("incomplete header line")
		}

		name, value, ok := strings.Cut(h.text, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err == nil && n >= 0 {
				req.ContentLength = n
			}
		}
	}

	return req, true, nil
}
