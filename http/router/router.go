package router

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/middleware"
)

// A Route maps a path and HTTP method to an [http.Handler].
// An empty Method matches every method.
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []middleware.Adapter
}

// Router routes requests to the handlers of a waypoint app.
type Router struct {
	Env           waypoint.Environment
	everyReqStack []middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
func New(env waypoint.Environment) *Router {
	return &Router{Env: env, r: mux.NewRouter()}
}

// Dispatch routes every request whose path starts with prefix to handler,
// whatever its HTTP method.
//
// Routes registered before Dispatch take precedence over it.
func (r *Router) Dispatch(prefix string, handler http.Handler, middlewares ...middleware.Adapter) {
	prefix = strings.TrimSuffix(prefix, "/") + "/"
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	r.r.PathPrefix(prefix).Handler(r.chain(handler, middlewares...))
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.Handler] as the default handler
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.Handler) {
	r.r.NotFoundHandler = r.chain(handler)
	r.r.MethodNotAllowedHandler = r.chain(handler)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append(middlewares[:len(middlewares):len(middlewares)], route.Middlewares...)
		mr := r.r.Handle(route.Path, r.chain(route.Handler, mws...))
		if route.Method != "" {
			mr.Methods(route.Method)
		}
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
//
// Only routes registered after calling OnEveryRequest get the middlewares.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// chain wraps handler in the every request stack, then middlewares,
// then panic reporting closest to the handler.
func (r *Router) chain(handler http.Handler, middlewares ...middleware.Adapter) http.Handler {
	mws := make([]middleware.Adapter, 0, len(r.everyReqStack)+len(middlewares)+1)
	mws = append(mws, r.everyReqStack...)
	mws = append(mws, middlewares...)
	mws = append(mws, middleware.ReportPanic(r.Env))

	return middleware.Chain(handler, mws...)
}
