package loader

import (
	"context"

	"golang.org/x/oauth2"
)

// Loader is the interface for loading OIDC provider configurations.
type Loader interface {
	Provider(ctx context.Context) (Provider, error)
}

// Provider represents a discovered OIDC provider bound to this client.
type Provider interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
	VerifyIDToken(ctx context.Context, rawIDToken string) (*IDClaims, error)
	UserInfo(ctx context.Context, token *oauth2.Token) (*IDClaims, error)
	EndSessionEndpoint() string
	ClientID() string
}
