package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint/http/middleware"
)

func NoopHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
}

func TestChain(t *testing.T) {
	// Arrange
	var order []string
	mark := func(name string) middleware.Adapter {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}

	// Act
	middleware.Chain(NoopHandler(), mark("first"), mark("second"), mark("third")).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestNoopAdapters(t *testing.T) {
	noop := fmt.Sprintf("%p", middleware.NoopAdapter)

	require.Equal(t, noop, fmt.Sprintf("%p", middleware.LogRequest(nil)))
	require.Equal(t, noop, fmt.Sprintf("%p", middleware.Metrics(nil)))
	require.Equal(t, noop, fmt.Sprintf("%p", middleware.CORS()))
	require.Equal(t, noop, fmt.Sprintf("%p", middleware.RateLimit(nil)))
}
