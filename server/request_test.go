package server

import (
	"io"
	"net"
	"testing"
	"time"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.HeaderTimeout = 250 * time.Millisecond
	cfg.BandTimeout = 250 * time.Millisecond
	return cfg
}

func TestReadRequestValid(t *testing.T) {
	client, srv := pipe(t)

	go client.Write([]byte(
		"POST /update-image HTTP/1.1\r\n" +
			"Host: device\r\n" +
			"content-length: 64800\r\n" +
			"X-Junk: ignored\r\n" +
			"\r\n"))

	req, identified, oc := readRequest(srv, testConfig())
	if !identified || oc != nil {
		t.Fatalf("identified=%v outcome=%+v", identified, oc)
	}
	if req.Method != "POST" || req.Path != "/update-image" {
		t.Errorf("wrong request line: %+v", req)
	}
	if req.ContentLength != 64800 {
		t.Errorf("wrong content length: %d", req.ContentLength)
	}
}

// Header parsing must stop at the blank line and leave every body byte
// on the socket.
func TestReadRequestLeavesBodyUnread(t *testing.T) {
	client, srv := pipe(t)

	body := []byte{1, 2, 3, 4, 5, 6}
	go client.Write(append([]byte(
		"POST /update-image HTTP/1.1\r\nContent-Length: 6\r\n\r\n"), body...))

	req, _, oc := readRequest(srv, testConfig())
	if oc != nil {
		t.Fatalf("unexpected outcome: %+v", oc)
	}
	if req.ContentLength != 6 {
		t.Fatalf("wrong content length: %d", req.ContentLength)
	}

	rest := make([]byte, 6)
	if _, err := io.ReadFull(srv, rest); err != nil {
		t.Fatalf("reading body: %v", err)
	}
	for i := range body {
		if rest[i] != body[i] {
			t.Fatalf("body byte %d consumed during header parse: %v", i, rest)
		}
	}
}

func TestReadRequestMissingContentLength(t *testing.T) {
	client, srv := pipe(t)

	go client.Write([]byte("POST /update-image HTTP/1.1\r\nHost: x\r\n\r\n"))

	req, _, oc := readRequest(srv, testConfig())
	if oc != nil {
		t.Fatalf("unexpected outcome: %+v", oc)
	}
	if req.ContentLength != 0 {
		t.Errorf("absent Content-Length should parse as 0, got %d", req.ContentLength)
	}
}

func TestReadRequestGarbageContentLength(t *testing.T) {
	client, srv := pipe(t)

	go client.Write([]byte("POST /update-image HTTP/1.1\r\nContent-Length: nope\r\n\r\n"))

	req, _, oc := readRequest(srv, testConfig())
	if oc != nil {
		t.Fatalf("unexpected outcome: %+v", oc)
	}
	if req.ContentLength != 0 {
		t.Errorf("unparseable Content-Length should parse as 0, got %d", req.ContentLength)
	}
}

func TestReadRequestMalformedRequestLine(t *testing.T) {
	client, srv := pipe(t)

	go client.Write([]byte("garbage\r\n\r\n"))

	_, identified, oc := readRequest(srv, testConfig())
	if !identified {
		t.Fatal("a malformed request line still deserves a response")
	}
	if oc == nil || oc.Kind != KindBadRequest {
		t.Errorf("expected BadRequest, got %+v", oc)
	}
}

func TestReadRequestSilentClient(t *testing.T) {
	client, srv := pipe(t)
	_ = client // connected but never speaks

	_, identified, oc := readRequest(srv, testConfig())
	if identified {
		t.Errorf("silent client should be dropped without a response, got %+v", oc)
	}
}

func TestReadRequestStallMidHeaders(t *testing.T) {
	client, srv := pipe(t)

	go client.Write([]byte("POST /update-image HTTP/1.1\r\nHost: x\r\n"))

	_, identified, oc := readRequest(srv, testConfig())
	if !identified {
		t.Fatal("request line was readable, expected an outcome")
	}
	if oc == nil || oc.Kind != KindBadRequest {
		t.Errorf("expected BadRequest on header stall, got %+v", oc)
	}
}

var _ net.Conn = (*countingConn)(nil)

// countingConn counts Read calls on the underlying connection.
type countingConn struct {
	net.Conn
	reads int
}

func (c *countingConn) Read(p []byte) (int, error) {
	c.reads++
	return c.Conn.Read(p)
}
