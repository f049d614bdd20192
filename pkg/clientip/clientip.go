package clientip

import (
	"net"
	"net/http"
	"strings"
)

// headers are checked in priority order.
var headers = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client IP address for r. Proxy headers are consulted first;
// for X-Forwarded-For the leftmost address is used. Falls back to the host part
// of r.RemoteAddr, or the raw RemoteAddr when it cannot be split.
func GetIP(r *http.Request) string {
	for _, h := range headers {
		value := r.Header.Get(h)
		if value == "" {
			continue
		}
		if h == "X-Forwarded-For" {
			value, _, _ = strings.Cut(value, ",")
		}
		if ip := parse(value); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if ip := parse(r.RemoteAddr); ip != "" {
			return ip
		}
		return r.RemoteAddr
	}
	if ip := parse(host); ip != "" {
		return ip
	}
	return host
}

func parse(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
