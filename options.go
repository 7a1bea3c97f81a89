package loginflow

import "github.com/cccteam/loginflow/internal/cookie"

// Option configures an Orchestrator.
type Option func(*options)

type options struct {
	handle     LogHandler
	landingURL string
	errorURL   string
	cookieOpts []cookie.Option
}

// WithLogHandler sets the LogHandler. (default: logs failures at Error and client messages at Info)
func WithLogHandler(l LogHandler) Option {
	return func(o *options) {
		o.handle = l
	}
}

// WithLandingURL sets where the browser goes after a successful sign-in. (default: /)
func WithLandingURL(u string) Option {
	return func(o *options) {
		o.landingURL = u
	}
}

// WithErrorURL sets the page that receives the ?error= marker. (default: /)
func WithErrorURL(u string) Option {
	return func(o *options) {
		o.errorURL = u
	}
}

// WithCookieName sets the name of the session correlation cookie. (default: ASGARDEO_SESSION_ID)
func WithCookieName(name string) Option {
	return func(o *options) {
		o.cookieOpts = append(o.cookieOpts, cookie.WithName(name))
	}
}

// WithCookieDomain sets the domain of the session correlation cookie.
func WithCookieDomain(domain string) Option {
	return func(o *options) {
		o.cookieOpts = append(o.cookieOpts, cookie.WithDomain(domain))
	}
}
