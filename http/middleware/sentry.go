package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/waypoint"
)

// ReportPanic recovers and reports panics to Sentry, answering 500.
//
// In development, panics are left alone so they surface in the terminal,
// and NoopAdapter returns.
func ReportPanic(env waypoint.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return func(h http.Handler) http.Handler {
		return sh.Handle(h)
	}
}
