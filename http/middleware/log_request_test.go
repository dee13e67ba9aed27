package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/logger"
)

// infoLogger keeps what is logged at Info.
type infoLogger struct {
	logger.Logger

	msgs []string
	ctxs []*logger.LogContext
}

func (l *infoLogger) Info(msg string, ctx *logger.LogContext) {
	l.msgs = append(l.msgs, msg)
	l.ctxs = append(l.ctxs, ctx)
}

func TestLogRequest(t *testing.T) {
	ip := "192.168.0.0"
	tcs := []struct {
		name     string
		method   string
		url      *url.URL
		status   int
		msg      string
		expected middleware.LogRequestRecord
	}{
		{
			"Root",
			http.MethodGet,
			&url.URL{Path: "/"},
			http.StatusOK,
			ip + " GET / 200",
			middleware.LogRequestRecord{Method: http.MethodGet, Path: "/", URI: "/", Status: http.StatusOK},
		},
		{
			"With-Query-Params",
			http.MethodPut,
			&url.URL{Path: "/api/users/save", RawQuery: "param=true"},
			http.StatusTeapot,
			ip + " PUT /api/users/save?param=true 418",
			middleware.LogRequestRecord{
				Method: http.MethodPut,
				Path:   "/api/users/save",
				URI:    "/api/users/save?param=true",
				Status: http.StatusTeapot,
			},
		},
		{
			"With-Query-Params-Hid",
			http.MethodGet,
			&url.URL{Path: "/api/users/list", RawQuery: "access_token=abc&password=hunter2"},
			http.StatusOK,
			ip + " GET /api/users/list?access_token=" + waypoint.LogMaskVal + "&password=" + waypoint.LogMaskVal + " 200",
			middleware.LogRequestRecord{
				Method: http.MethodGet,
				Path:   "/api/users/list",
				URI:    "/api/users/list?access_token=" + waypoint.LogMaskVal + "&password=" + waypoint.LogMaskVal,
				Status: http.StatusOK,
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			l := new(infoLogger)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, tc.url.String(), nil)
			r.Header.Set("User-Agent", "waypoint/test")
			ctx := context.WithValue(r.Context(), waypoint.RequestIDKey, "test-id")
			r = r.Clone(context.WithValue(ctx, waypoint.IpAddrKey, ip))

			// Act
			middleware.LogRequest(l)(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
				wx.WriteHeader(tc.status)
				fmt.Fprint(wx, "test")
			})).ServeHTTP(w, r)

			// Assert
			require.Equal(t, []string{tc.msg}, l.msgs)

			data := l.ctxs[0].Data
			require.Equal(t, tc.expected.Method, data["method"])
			require.Equal(t, tc.expected.Path, data["path"])
			require.Equal(t, tc.expected.URI, data["uri"])
			require.Equal(t, tc.expected.Status, data["status"])
			require.Equal(t, 4, data["bodySize"])
			require.Equal(t, "test-id", data["id"])
			require.Equal(t, ip, data["ipAddr"])
			require.Equal(t, "waypoint/test", data["userAgent"])
		})
	}
}
