package cookie

// Option defines a function signature for setting cookie client options.
type Option func(*Client)

// WithName sets the name of the session cookie.
func WithName(name string) Option {
	return Option(func(c *Client) {
		if name != "" {
			c.name = name
		}
	})
}

// WithDomain sets the domain of the session cookie.
func WithDomain(domain string) Option {
	return Option(func(c *Client) {
		c.domain = domain
	})
}
