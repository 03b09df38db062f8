package server

import (
	"log"
	"strconv"

	"github.com/fatih/color"
)

func logStartup(cfg *Config) {
	log.Printf("listening on %s, expecting %dx%d frames (%d bytes) at %s",
		cfg.Addr, cfg.Width, cfg.Height, cfg.TotalBytes(), cfg.Path)
}

// logExchange logs one finished exchange with a color-coded status.
func logExchange(method, path string, o *Outcome) {
	status := strconv.Itoa(o.Status())
	switch o.Kind {
	case KindSuccess:
		log.Print(color.GreenString("%s %s %s", method, path, status))
	case KindReceiveTimeout:
		log.Print(color.YellowString("%s %s %s (%s)", method, path, status, o.Body))
	case KindBadRequest, KindNotFound, KindWrongLength:
		log.Print(color.RedString("%s %s %s (%s)", method, path, status, o.Body))
	default:
		log.Printf("%s %s %s (%s)", method, path, status, o.Body)
	}
}
