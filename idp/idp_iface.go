// Package idp defines the identity provider client the login flow delegates to,
// and an OpenID Connect implementation of it.
package idp

import "context"

var _ Client = (*OIDC)(nil)

// Client performs the provider side of the login flow. Every call is keyed by the
// session correlation id carried in the browser cookie.
type Client interface {
	// BeginAuthorization records a pending flow and returns the provider URL to send the browser to.
	BeginAuthorization(ctx context.Context, correlationID string) (string, error)
	// ExchangeCode completes the pending flow. It returns the tokens even when they are empty.
	ExchangeCode(ctx context.Context, correlationID, code, state, sessionState string) (*Tokens, error)
	// UserInfo returns nil and no error when there is no valid session for the id.
	UserInfo(ctx context.Context, correlationID string) (*UserInfo, error)
	// SignOutURL returns the provider end-session URL and forgets the session.
	SignOutURL(ctx context.Context, correlationID string) (string, error)
}
