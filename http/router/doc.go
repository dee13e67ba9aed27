/*
Package router routes the requests of a waypoint app with [mux.Router].

Most requests go to one handler mounted under a path prefix with [Router.Dispatch],
the dispatch pipeline.
A few fixed [Route]s sit beside it, such as the metrics endpoint.
Before a request gets to a handler, the middlewares registered with
[Router.OnEveryRequest] are called, then those of the Route, in the order they appear.
*/
package router
