package server

import "time"

// Config holds the process-wide settings for one receiver instance.
// It is fixed at startup and never changes per request.
type Config struct {
	Width         int           // frame width in pixels
	Height        int           // frame height in pixels
	RowsPerChunk  int           // rows received and painted per band
	Path          string        // request path that accepts frames
	Addr          string        // listen address
	HeaderTimeout time.Duration // per header line read
	BandTimeout   time.Duration // ceiling on receiving one band
	MaxLineBytes  int           // header line cap, guards against hostile clients
}

func DefaultConfig() *Config {
	return &Config{
		Width:         240,
		Height:        135,
		RowsPerChunk:  4,
		Path:          "/update-image",
		Addr:          ":8080",
		HeaderTimeout: 2 * time.Second,
		BandTimeout:   10 * time.Second,
		MaxLineBytes:  8192,
	}
}

// TotalBytes is the exact body size a frame upload must declare and carry.
func (c *Config) TotalBytes() int {
	return c.Width * c.Height * 2
}

// BandBytes is the wire size of a band of n rows.
func (c *Config) BandBytes(n int) int {
	return c.Width * n * 2
}
