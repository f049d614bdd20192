package logger

import (
	"log/slog"
	"time"
)

// Group nests attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error returns an "error" attribute, or an empty one for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Latency returns a "latency" attribute.
func Latency(d time.Duration) slog.Attr {
	return slog.Duration("latency", d)
}

// RequestID returns a "request_id" attribute, or an empty one for "".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// SessionID returns a "session_id" attribute, or an empty one for "".
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

// PageViews returns a "page_views" attribute.
func PageViews(n int) slog.Attr {
	return slog.Int("page_views", n)
}

func Method(method string) slog.Attr {
	return slog.String("method", method)
}

func Path(path string) slog.Attr {
	return slog.String("path", path)
}

func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// ClientIP returns a "client_ip" attribute, or an empty one for "".
func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}

// Component tags a record with the subsystem that wrote it.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event names what happened, e.g. "visit".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
