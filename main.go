package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/framecast/framecast/display"
	"github.com/framecast/framecast/sender"
	"github.com/framecast/framecast/server"
)

func main() {
	app := cli.NewApp()

	app.Name = "framecast"
	app.Usage = "stream fixed-size RGB565 frames to a display over HTTP"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:  "width",
			Value: 240,
			Usage: "frame width in pixels",
		},
		&cli.IntFlag{
			Name:  "height",
			Value: 135,
			Usage: "frame height in pixels",
		},
		&cli.StringFlag{
			Name:  "path",
			Value: "/update-image",
			Usage: "request path frames are posted to",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:  "serve",
			Usage: "Receive frames and paint them onto a framebuffer",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "listen",
					Value: ":8080",
					Usage: "listen address",
				},
				&cli.IntFlag{
					Name:  "rows",
					Value: 4,
					Usage: "rows received and painted per band",
				},
				&cli.DurationFlag{
					Name:  "band-timeout",
					Value: 10 * time.Second,
					Usage: "ceiling on receiving one band",
				},
				&cli.DurationFlag{
					Name:  "header-timeout",
					Value: 2 * time.Second,
					Usage: "per header line read timeout",
				},
				&cli.StringFlag{
					Name:  "snapshot",
					Usage: "write a PNG here after each complete frame",
				},
			},
			Action: func(c *cli.Context) error {
				cfg := server.DefaultConfig()
				cfg.Width = c.Int("width")
				cfg.Height = c.Int("height")
				cfg.Path = c.String("path")
				cfg.Addr = c.String("listen")
				cfg.RowsPerChunk = c.Int("rows")
				cfg.BandTimeout = c.Duration("band-timeout")
				cfg.HeaderTimeout = c.Duration("header-timeout")

				fb := display.NewFramebuffer(cfg.Width, cfg.Height)

				var surface server.Display = fb
				if path := c.String("snapshot"); path != "" {
					surface = &snapshotSurface{fb: fb, path: path}
				}

				if err := server.New(cfg, surface).ListenAndServe(); err != nil {
					return cli.NewExitError(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "send",
			Usage:     "Convert an image and forward it to a receiver",
			ArgsUsage: "[FILE]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "url",
					Usage: "fetch the source image from a URL (a FILE argument wins)",
				},
				&cli.StringFlag{
					Name:  "to",
					Value: "127.0.0.1:8080",
					Usage: "receiver address",
				},
				&cli.StringFlag{
					Name:  "background",
					Value: "#000000",
					Usage: "fill color for alpha flattening and letterboxing",
				},
				&cli.BoolFlag{
					Name:  "big-endian",
					Usage: "emit big-endian pixel words",
				},
				&cli.DurationFlag{
					Name:  "timeout",
					Value: 30 * time.Second,
					Usage: "overall send timeout",
				},
			},
			Action: func(c *cli.Context) error {
				m, err := loadSource(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				bg, err := parseHexColor(c.String("background"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				opts := sender.Options{
					Width:      c.Int("width"),
					Height:     c.Int("height"),
					Background: bg,
				}
				if c.Bool("big-endian") {
					opts.ByteOrder = binary.BigEndian
				}

				body, err := sender.Convert(m, opts)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				resp, err := sender.Send(c.String("to"), c.String("path"), body, c.Duration("timeout"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if !resp.Ok() {
					return cli.NewExitError(fmt.Errorf("receiver refused frame: %s: %s", resp.Status, resp.Body), 1)
				}

				log.Printf("frame accepted: %s", resp.Body)
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadSource picks the source image: a FILE argument takes precedence,
// otherwise --url is fetched.
func loadSource(c *cli.Context) (image.Image, error) {
	if c.NArg() > 0 {
		return sender.Load(c.Args().First())
	}
	if u := c.String("url"); u != "" {
		return sender.Fetch(u)
	}
	return nil, errors.New("need a FILE argument or --url")
}

func parseHexColor(s string) (color.Color, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return nil, fmt.Errorf("bad color %q: want #RRGGBB", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// snapshotSurface wraps a framebuffer and writes a PNG whenever a full
// frame worth of rows has been painted. Bands arrive strictly in row
// order, so counting rows is enough to detect frame completion.
type snapshotSurface struct {
	fb   *display.Framebuffer
	path string
	rows int
}

func (s *snapshotSurface) Paint(x, y, w, h int, pix []uint16) {
	s.fb.Paint(x, y, w, h, pix)
	if y == 0 {
		// New frame; forget rows from an aborted previous upload.
		s.rows = 0
	}
	s.rows += h
	if s.rows < s.fb.Height() {
		return
	}
	s.rows = 0

	f, err := os.Create(s.path)
	if err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	defer f.Close()
	if err := s.fb.WritePNG(f); err != nil {
		log.Printf("snapshot: %v", err)
	}
}
