package resp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/xy-planning-network/waypoint/logger"
)

const responderFrames = 1

// Responder maintains reusable pieces for responding to HTTP requests with JSON.
//
// Setting up a single instance of a Responder suffices for an application.
// When handling a specific HTTP request, calling code supplies the data
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(l.Skip() + responderFrames)
	}

	return d
}

// Json writes the value set by Data as the JSON body of the response.
// The value is written as is, without wrapping it.
//
// The default status code is 200.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.closeBody && r.Body != nil {
		defer r.Body.Close()
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(rr.data); err != nil {
		err = fmt.Errorf("%w: cannot encode %T: %s", ErrInvalid, rr.data, err)
		doer.logger.Error(err.Error(), newLogContext(r, err, nil, rr.user))

		b.Reset()
		if nested := json.NewEncoder(b).Encode(NewFault(err.Error())); nested != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return err
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(rr.code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// Fault writes f as the JSON body of the response, logging err if it is not nil.
func (doer *Responder) Fault(w http.ResponseWriter, r *http.Request, f *Fault, err error, opts ...Fn) error {
	return doer.Json(w, r, append(opts, Err(err), WithFault(f))...)
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// Should all options apply successfully, do returns a validly formed *Response.
// Once the request context is done, do stops with ErrDone and nothing is written.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{
		closeBody: true,
		w:         w,
		r:         r,
	}

	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w: %s", ErrDone, r.Context().Err())
		default:
			if err := opt(*doer, resp); err != nil {
				return nil, err
			}
		}
	}

	return resp, nil
}
