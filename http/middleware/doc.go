/*
The middleware package defines what a middleware is in waypoint and a set of basic middlewares.

The available middlewares are:
  - CORS
  - ForceHTTPS
  - InjectIPAddress
  - LogRequest
  - Metrics
  - RateLimit
  - ReportPanic
  - RequestID

A middleware with a nil or empty dependency is a NoopAdapter.
The stack waypoint applies to every request is:

	adpts := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.ReportPanic(env),
		middleware.Metrics(m),
		middleware.CORS(origins...),
		middleware.RateLimit(middleware.NewVisitors(limit, burst)),
	}
*/
package middleware
