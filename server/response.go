package server

import (
	"bytes"
	"io"
	"strconv"
)

var statusText = map[int]string{
	200: "OK",
	400: "Bad Request",
	404: "Not Found",
	408: "Request Timeout",
	500: "Internal Server Error",
}

// writeResponse emits the single response for an exchange: status line,
// Content-Type, exact Content-Length and the plain-text diagnostic.
func writeResponse(conn io.Writer, o *Outcome) error {
	buf := responseBufferPool.Get().(*bytes.Buffer)
	buf.Reset()

	defer func() {
		if buf.Cap() <= maxPoolBufferSize {
			responseBufferPool.Put(buf)
		}
	}()

	status := o.Status()
	buf.WriteString("HTTP/1.1 ")
	buf.WriteString(strconv.Itoa(status))
	buf.WriteString(" ")
	buf.WriteString(statusText[status])
	buf.WriteString("\r\nContent-Type: text/plain")
	buf.WriteString("\r\nConnection: close")
	buf.WriteString("\r\nContent-Length: ")
	buf.WriteString(strconv.Itoa(len(o.Body)))
	buf.WriteString("\r\n\r\n")
	buf.WriteString(o.Body)

	_, err := conn.Write(buf.Bytes())
	return err
}
