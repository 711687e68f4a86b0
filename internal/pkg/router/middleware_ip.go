package router

import (
	"net"
	"net/http"
	"strings"
)

// middlewareIP rewrites r.RemoteAddr with the client address reported by
// proxy headers, so request logs show the caller rather than the proxy.
func middlewareIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rip := clientIP(r); rip != "" {
			r.RemoteAddr = rip
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the originating client IP. Header precedence:
// True-Client-IP, X-Real-IP, then the first entry of X-Forwarded-For.
// An unparseable candidate falls back to the socket peer address.
func clientIP(r *http.Request) string {
	var ip string

	if tcip := r.Header.Get("True-Client-IP"); tcip != "" {
		ip = tcip
	} else if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		ip = xrip
	} else if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ip, _, _ = strings.Cut(xff, ",")
	}

	ip = strings.TrimSpace(ip)
	if ip == "" || net.ParseIP(ip) == nil {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err == nil && net.ParseIP(host) != nil {
			return host
		}
		return ""
	}
	return ip
}
