package dispatch

import (
	"time"

	"github.com/xy-planning-network/waypoint/auth"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/resource"
)

// A PipelineOptFn configures a Pipeline when constructing a new one.
type PipelineOptFn func(*Pipeline)

// WithCoordinator sets the Coordinator deciding on transactions.
func WithCoordinator(c *Coordinator) PipelineOptFn {
	return func(p *Pipeline) {
		p.coordinator = c
	}
}

// WithGuard sets the Guard checking access tokens.
func WithGuard(g *auth.Guard) PipelineOptFn {
	return func(p *Pipeline) {
		p.guard = g
	}
}

// WithLogger sets the Logger the Pipeline logs through.
func WithLogger(l logger.Logger) PipelineOptFn {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithObserver sets the Observer told how each dispatch ended.
func WithObserver(o Observer) PipelineOptFn {
	return func(p *Pipeline) {
		p.observer = o
	}
}

// WithProvisioner sets the Provisioner opening stores for each request.
func WithProvisioner(prov *resource.Provisioner) PipelineOptFn {
	return func(p *Pipeline) {
		p.provisioner = prov
	}
}

// WithResponder sets the Responder writing responses.
func WithResponder(d *resp.Responder) PipelineOptFn {
	return func(p *Pipeline) {
		p.responder = d
	}
}

// WithTimeout bounds how long a handler method may run.
// A timeout of 0 does not bound it.
func WithTimeout(timeout time.Duration) PipelineOptFn {
	return func(p *Pipeline) {
		p.timeout = timeout
	}
}
