package resp

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/waypoint/logger"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w         http.ResponseWriter
	r         *http.Request
	closeBody bool
	code      int
	data      any
	user      logger.LogUser
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		if c < http.StatusContinue || c > 599 {
			return fmt.Errorf("%w: status code %d", ErrInvalid, c)
		}

		r.code = c
		return nil
	}
}

// Data stores the value to write to the client.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err logs the error causing the response.
// A *Fault is logged at Warn; any other error at Error.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e == nil {
			return nil
		}

		lc := newLogContext(r.r, e, nil, r.user)
		if _, ok := e.(*Fault); ok {
			d.logger.Warn(e.Error(), lc)
			return nil
		}

		d.logger.Error(e.Error(), lc)
		return nil
	}
}

// WithFault stores f as the data to write to the client.
func WithFault(f *Fault) Fn {
	return Data(f)
}

// User stores the user the response is for, used when logging.
func User(u logger.LogUser) Fn {
	return func(_ Responder, r *Response) error {
		r.user = u
		return nil
	}
}
