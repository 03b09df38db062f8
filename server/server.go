package server

import (
	"errors"
	"fmt"
	"net"
)

// Server receives frame uploads and paints them onto its display.
// Connections are processed strictly one at a time, each for exactly
// one request/response exchange; there is never more than one frame in
// flight, so the display needs no locking here.
type Server struct {
	cfg     *Config
	display Display
}

func New(cfg *Config, display Display) *Server {
	return &Server{cfg: cfg, display: display}
}

// ListenAndServe listens on cfg.Addr and serves until the listener
// fails.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	return s.Serve(ln)
}

// Serve accepts connections sequentially. Each connection is handled to
// completion before the next Accept, which is what bounds memory to a
// single exchange's buffers.
func (s *Server) Serve(ln net.Listener) error {
	logStartup(s.cfg)
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.HandleConn(conn)
	}
}

// HandleConn runs one complete exchange and closes the connection on
// every exit path. A response is always attempted once a method and
// path were identified; the one degenerate case, a silent or empty
// request line, drops the connection without answering.
func (s *Server) HandleConn(conn net.Conn) (out *Outcome) {
	defer conn.Close()

	method, path := "-", "-"
	defer func() {
		if r := recover(); r != nil {
			out = InternalError(fmt.Sprintf("internal error: %v", r))
			writeResponse(conn, out)
		}
		if out != nil {
			logExchange(method, path, out)
		}
	}()

	req, identified, oc := readRequest(conn, s.cfg)
	if !identified {
		return nil
	}
	if oc != nil {
		writeResponse(conn, oc)
		return oc
	}
	method, path = req.Method, req.Path

	if req.Method != "POST" || req.Path != s.cfg.Path {
		oc = NotFound()
		writeResponse(conn, oc)
		return oc
	}

	oc = newPainter(s.cfg, s.display).run(conn, req.ContentLength)
	writeResponse(conn, oc)
	return oc
}
