package pkg

import (
	"net"
	"net/http"
	"strings"
)

// ReadUserIP returns the client address, preferring the first X-Forwarded-For
// hop set by the load balancer in front of the service.
func ReadUserIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if realIP := r.Header.Get("X-Real-Ip"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
