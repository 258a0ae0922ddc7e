package middleware

import (
	"net/http"
	"time"

	"github.com/2beens/eridanus/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-Id"

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			begin := time.Now()
			resp := newResponseWriter(w)
			next.ServeHTTP(resp, r)

			entry := log.WithFields(log.Fields{
				"request_id":  requestID,
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      resp.statusCode,
				"remote_addr": pkg.ReadUserIP(r),
				"duration_ms": time.Since(begin).Milliseconds(),
			})
			if resp.statusCode >= http.StatusInternalServerError {
				entry.Warn("request served")
				return
			}
			entry.Debug("request served")
		})
	}
}
