// Package loginflow implements the server-side half of an OpenID Connect sign-in with
// an Asgardeo-style provider. The browser is correlated with its provider-side state
// through a single opaque cookie.
package loginflow

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

var _ Handlers = &Orchestrator{}

// Handlers is the HTTP surface of the login flow
type Handlers interface {
	Login() http.HandlerFunc
	Logout() http.HandlerFunc
	Status() http.HandlerFunc
	Config() http.HandlerFunc
	Greeting() http.HandlerFunc
	Mount(r chi.Router)

	Initiate(ctx context.Context, w http.ResponseWriter, r *http.Request) error
	HandleCallback(ctx context.Context, w http.ResponseWriter, r *http.Request) error
	CheckStatus(ctx context.Context, r *http.Request) (*StatusResponse, error)
	SignOut(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}
