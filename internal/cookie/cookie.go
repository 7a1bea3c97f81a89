// Package cookie reads and writes the session correlation cookie.
package cookie

import (
	"net/http"
	"time"

	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
)

// DefaultName is the name of the cookie carrying the Session Correlation Id
const DefaultName = "ASGARDEO_SESSION_ID"

var _ Handler = &Client{}

// Client manages the session correlation cookie. Every cookie it emits, including the
// one used to clear the session, is built by newCookie so the attributes always match.
type Client struct {
	name   string
	domain string
	secure bool
}

// New returns a new Client. secure controls the Secure attribute and should be true
// for production deployments.
func New(secure bool, options ...Option) *Client {
	c := &Client{
		name:   DefaultName,
		secure: secure,
	}
	for _, opt := range options {
		opt(c)
	}

	return c
}

// Name returns the cookie name
func (c *Client) Name() string {
	return c.name
}

// Read returns the correlation id stored in the cookie
func (c *Client) Read(r *http.Request) (correlationID string, found bool) {
	cookie, err := r.Cookie(c.name)
	if err != nil {
		if !errors.Is(err, http.ErrNoCookie) {
			logger.Req(r).Error(errors.Wrap(err, "http.Request.Cookie()"))
		}

		return "", false
	}

	if cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}

// Write sets the cookie to correlationID with a lifetime of maxAge
func (c *Client) Write(w http.ResponseWriter, correlationID string, maxAge time.Duration) {
	http.SetCookie(w, c.newCookie(correlationID, int(maxAge.Seconds())))
}

// Clear expires the cookie immediately
func (c *Client) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.newCookie("", -1))
}

func (c *Client) newCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		Domain:   c.domain,
		MaxAge:   maxAge,
		Secure:   c.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
