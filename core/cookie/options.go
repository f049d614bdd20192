package cookie

import "net/http"

// Options are the attributes written with a cookie.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int // seconds; 0 means a browser-session cookie
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// Option adjusts Options. Passed to New it changes the defaults, passed to
// Set or SetSigned it applies to that cookie only.
type Option func(*Options)

func WithPath(path string) Option { return func(o *Options) { o.Path = path } }

func WithDomain(domain string) Option { return func(o *Options) { o.Domain = domain } }

// WithMaxAge sets the lifetime in seconds. A negative value expires the
// cookie immediately.
func WithMaxAge(seconds int) Option { return func(o *Options) { o.MaxAge = seconds } }

func WithSecure(secure bool) Option { return func(o *Options) { o.Secure = secure } }

func WithHTTPOnly(httpOnly bool) Option { return func(o *Options) { o.HttpOnly = httpOnly } }

func WithSameSite(mode http.SameSite) Option { return func(o *Options) { o.SameSite = mode } }

func (o Options) with(opts []Option) Options {
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o Options) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
}
