/*
Package logger provides logging functionality to a waypoint app by defining the required behavior in [Logger]
and providing an implementation of it with [WaypointLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, a [WaypointLogger] initialized with [LogLevelWarn]
only produces messages from [*WaypointLogger.Warn], [*WaypointLogger.Error], and [*WaypointLogger.Fatal].

Log messages emitted by [WaypointLogger] are composed of a few parts:
	- timestamp
	- log level
	- call site
	- message
	- log context

Here's an example:
	2022/04/28 15:55:21 [ERROR] dispatch/pipeline.go:143 'invocation failed' log_context: {"error":"boom","user":{"id":"42"}}

The log context is a JSON-encoded [LogContext].
It carries data inessential to the message proper,
like the request being dispatched or the identity of the caller.

# SentryLogger

When a Sentry DSN is available, wrap a [WaypointLogger] with [NewSentryLogger].
Any [LogContext] with an Error logged at Warn or above is captured in Sentry.
*/
package logger
