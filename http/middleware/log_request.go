package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/logger"
)

// A LogRequestRecord is what LogRequest logs about a request.
type LogRequestRecord struct {
	BodySize  int    `json:"bodySize"`
	Duration  string `json:"duration"`
	ID        string `json:"id,omitempty"`
	IPAddr    string `json:"ipAddr,omitempty"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	URI       string `json:"uri"`
	UserAgent string `json:"userAgent,omitempty"`
}

// LogRequest logs the request's method, requested URL, originating IP address
// and the status of the response using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following keys:
//   - access_token
//   - password
//
// If logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			h.ServeHTTP(rec, r)

			record := NewLogRequestRecord(r, rec.status, rec.size, time.Since(start))
			ls.Info(
				fmt.Sprintf("%s %s %s %d", record.IPAddr, record.Method, record.URI, record.Status),
				&logger.LogContext{Data: record.Map()},
			)
		})
	}
}

// NewLogRequestRecord collects what is known about r once its response was written.
func NewLogRequestRecord(r *http.Request, status, size int, elapsed time.Duration) LogRequestRecord {
	q := r.URL.Query()
	waypoint.Mask(q, "access_token")
	waypoint.Mask(q, "password")

	uri := r.URL.Path
	if query := q.Encode(); query != "" {
		uri += "?" + query
	}

	record := LogRequestRecord{
		BodySize:  size,
		Duration:  elapsed.String(),
		IPAddr:    ClientIP(r),
		Method:    r.Method,
		Path:      r.URL.Path,
		Status:    status,
		URI:       uri,
		UserAgent: r.UserAgent(),
	}

	if id, ok := r.Context().Value(waypoint.RequestIDKey).(string); ok {
		record.ID = id
	}

	return record
}

// Map lays the record out for a logger.LogContext.
func (rec LogRequestRecord) Map() map[string]any {
	return map[string]any{
		"bodySize":  rec.BodySize,
		"duration":  rec.Duration,
		"id":        rec.ID,
		"ipAddr":    rec.IPAddr,
		"method":    rec.Method,
		"path":      rec.Path,
		"status":    rec.Status,
		"uri":       rec.URI,
		"userAgent": rec.UserAgent,
	}
}
