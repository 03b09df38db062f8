package server

import "fmt"

// Kind classifies how an exchange ended.
type Kind int

const (
	KindSuccess Kind = iota
	KindBadRequest
	KindNotFound
	KindWrongLength
	KindReceiveTimeout
	KindInternal
)

// Outcome is the single terminal result of one exchange. Exactly one
// Outcome is produced per connection that got far enough to deserve a
// response, and it drives exactly one writeResponse call.
type Outcome struct {
	Kind Kind
	Body string // plain-text diagnostic sent to the peer
	Row  int    // starting row of the failing band, timeouts only
}

func Success() *Outcome {
	return &Outcome{Kind: KindSuccess, Body: "OK"}
}

func BadRequest(reason string) *Outcome {
	return &Outcome{Kind: KindBadRequest, Body: reason}
}

func NotFound() *Outcome {
	return &Outcome{Kind: KindNotFound, Body: "Not found"}
}

func WrongLength(expected, actual int) *Outcome {
	return &Outcome{
		Kind: KindWrongLength,
		Body: fmt.Sprintf("Expected %d bytes, got %d", expected, actual),
	}
}

func ReceiveTimeout(row int) *Outcome {
	return &Outcome{
		Kind: KindReceiveTimeout,
		Body: fmt.Sprintf("Timeout receiving body at row %d", row),
		Row:  row,
	}
}

func InternalError(reason string) *Outcome {
	return &Outcome{Kind: KindInternal, Body: reason}
}

// Status maps the outcome onto its HTTP status code.
func (o *Outcome) Status() int {
	switch o.Kind {
	case KindSuccess:
		return 200
	case KindBadRequest, KindWrongLength:
		return 400
	case KindNotFound:
		return 404
	case KindReceiveTimeout:
		return 408
	default:
		return 500
	}
}
