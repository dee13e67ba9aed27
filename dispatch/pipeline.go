package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/auth"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/resource"
)

// Outcomes of a dispatch, as reported to an Observer.
const (
	OutcomeOK           = "ok"
	OutcomeNotFound     = "not_found"
	OutcomeRejected     = "rejected"
	OutcomeShortCircuit = "short_circuit"
	OutcomeTimeout      = "timeout"
	OutcomePanic        = "panic"
	OutcomeFault        = "fault"
)

// UnknownHandler is the handler key reported for requests that never resolved one.
const UnknownHandler = "unknown"

// An Observer is told how every dispatch ended.
type Observer interface {
	Observe(handler, outcome string, elapsed time.Duration)
}

type noopObserver struct{}

func (noopObserver) Observe(string, string, time.Duration) {}

// A Pipeline is the http.Handler dispatching requests to handler methods.
//
// Every request is answered with exactly one JSON body:
// the value the method returned, or a *resp.Fault.
type Pipeline struct {
	coordinator *Coordinator
	guard       *auth.Guard
	logger      logger.Logger
	observer    Observer
	provisioner *resource.Provisioner
	resolver    *Resolver
	responder   *resp.Responder
	timeout     time.Duration
}

// NewPipeline constructs a *Pipeline resolving handlers with r.
//
// Without options, no access token is required, no stores are provisioned
// and no transactions are opened.
func NewPipeline(r *Resolver, opts ...PipelineOptFn) *Pipeline {
	p := &Pipeline{resolver: r}
	for _, opt := range opts {
		opt(p)
	}

	if p.resolver == nil {
		p.resolver = NewResolver(nil, "")
	}

	if p.logger == nil {
		p.logger = logger.New()
	}

	if p.observer == nil {
		p.observer = noopObserver{}
	}

	if p.provisioner == nil {
		p.provisioner = new(resource.Provisioner)
	}

	if p.responder == nil {
		p.responder = resp.NewResponder(resp.WithLogger(p.logger))
	}

	return p
}

// Prefix returns the normalized prefix p strips from request paths.
func (p *Pipeline) Prefix() string { return p.resolver.Prefix() }

// IdentityFrom returns the identity the access guard resolved for the request ctx belongs to,
// or nil when the request went unauthenticated.
func IdentityFrom(ctx context.Context) auth.Identity {
	id, _ := ctx.Value(waypoint.IdentityKey).(auth.Identity)
	return id
}

// dispatched is what came of dispatching one request.
type dispatched struct {
	body     any
	err      error
	handler  string
	identity auth.Identity
}

// ServeHTTP dispatches r and writes the one response it gets.
func (p *Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	d := p.dispatch(r)
	if d.handler == "" {
		d.handler = UnknownHandler
	}

	body, outcome := d.body, OutcomeOK
	if d.err != nil {
		var f *resp.Fault
		f, outcome = p.fault(r, d)
		body = f
	}

	p.observer.Observe(d.handler, outcome, time.Since(start))

	err := p.responder.Json(w, r, resp.Data(body), resp.User(d.identity))
	if errors.Is(err, resp.ErrDone) {
		// The client is gone; no envelope is written.
		p.logger.Debug(
			fmt.Sprintf("client went away before %s answered", d.handler),
			&logger.LogContext{Error: err, Request: r, User: d.identity},
		)
		return
	}

	if err != nil {
		p.logger.Warn(
			fmt.Sprintf("cannot respond: %s", err),
			&logger.LogContext{Error: err, Request: r, User: d.identity},
		)
	}
}

// dispatch runs every stage for r.
// Stores opened for r are released before dispatch returns.
func (p *Pipeline) dispatch(r *http.Request) (d dispatched) {
	// Handler constructors and transaction declarators run outside call.
	defer func() {
		if rec := recover(); rec != nil {
			d.body, d.err = nil, p.recovered(r, rec)
		}
	}()

	ctx := r.Context()

	id, err := p.guard.Authenticate(ctx, r.URL.Query())
	if err != nil {
		d.err = err
		return d
	}
	d.identity = id
	if id != nil {
		ctx = context.WithValue(ctx, waypoint.IdentityKey, id)
		r = r.WithContext(ctx)
	}

	b, err := p.provisioner.Provision(ctx)
	if err != nil {
		d.err = err
		return d
	}

	defer func() {
		if err := b.Release(); err != nil {
			p.logger.Error(err.Error(), &logger.LogContext{Error: err, Request: r, User: id})
		}
	}()

	h, key, method, fn, err := p.resolver.resolve(Scope{Request: r, Identity: id, Bundle: b})
	d.handler = key
	if err != nil {
		d.err = err
		return d
	}

	tx, err := p.coordinator.MaybeBegin(ctx, h, method, id, b)
	if err != nil {
		d.err = err
		return d
	}

	if tx != nil {
		defer func() {
			if err := tx.Rollback(); err != nil {
				p.logger.Error(err.Error(), &logger.LogContext{Error: err, Request: r, User: id})
			}
		}()
	}

	ictx, cancel := p.invokeContext(ctx)
	defer cancel()

	d.body, d.err = p.call(ictx, r, func() (any, error) {
		if be, ok := h.(BeforeEacher); ok {
			if err := be.BeforeEach(ictx, method); err != nil {
				return nil, err
			}
		}

		return fn(r.WithContext(ictx))
	})

	if d.err == nil && tx != nil {
		if err := tx.Commit(); err != nil {
			d.body, d.err = nil, fmt.Errorf("%w: %w", ErrTxCommit, err)
		}
	}

	return d
}

func (p *Pipeline) invokeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, p.timeout)
}

type called struct {
	val any
	err error
}

// call runs fn in its own goroutine until it returns, panics or ctx is done.
func (p *Pipeline) call(ctx context.Context, r *http.Request, fn func() (any, error)) (any, error) {
	done := make(chan called, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- called{err: p.recovered(r, rec)}
			}
		}()

		val, err := fn()
		done <- called{val: val, err: err}
	}()

	select {
	case c := <-done:
		return c.val, c.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, p.timeout)
		}

		return nil, ctx.Err()
	}
}

// recovered logs the value of a recovered panic with the stack it unwound
// and returns it as an ErrPanic.
func (p *Pipeline) recovered(r *http.Request, rec any) error {
	err := fmt.Errorf("%w: %v", ErrPanic, rec)
	p.logger.Error(err.Error(), &logger.LogContext{
		Data:    map[string]any{"stack": string(debug.Stack())},
		Error:   err,
		Request: r,
	})

	return err
}

// fault translates the error of d into the *resp.Fault answering the request,
// logging it along the way.
func (p *Pipeline) fault(r *http.Request, d dispatched) (*resp.Fault, string) {
	lc := &logger.LogContext{Error: d.err, Request: r, User: d.identity}

	var f *resp.Fault
	if errors.As(d.err, &f) {
		p.logger.Info(fmt.Sprintf("%s short circuited: %s", d.handler, f.Msg), lc)
		return f, OutcomeShortCircuit
	}

	var rej *auth.Rejection
	switch {
	case errors.Is(d.err, auth.ErrMissingToken):
		p.logger.Info(d.err.Error(), &logger.LogContext{Request: r})
		return resp.NewAccessTokenFault(d.err.Error()), OutcomeRejected

	case errors.As(d.err, &rej):
		p.logger.Info(d.err.Error(), &logger.LogContext{Request: r})
		return resp.NewAccessTokenFault(rej.Reason), OutcomeRejected

	case errors.Is(d.err, ErrNotFound):
		if p.logger.LogLevel() <= logger.LogLevelDebug {
			p.logger.Debug(resp.MsgNotFound, lc)
		} else {
			p.logger.Error(resp.MsgNotFound, &logger.LogContext{Request: r})
		}
		return resp.NewFault(resp.MsgNotFound), OutcomeNotFound

	case errors.Is(d.err, ErrTimeout):
		p.logger.Error(d.err.Error(), lc)
		return resp.NewFault(d.err.Error()), OutcomeTimeout

	case errors.Is(d.err, ErrPanic):
		return resp.NewFault(d.err.Error()), OutcomePanic

	default:
		p.logger.Error(d.err.Error(), lc)
		return resp.NewFault(d.err.Error()), OutcomeFault
	}
}
