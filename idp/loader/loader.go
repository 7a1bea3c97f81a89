// Package loader lazily discovers the OIDC provider and exposes the calls the login flow needs.
package loader

import (
	"context"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-playground/errors/v5"
	"golang.org/x/oauth2"
)

type loader struct {
	issuerURL    string
	clientID     string
	clientSecret string
	redirectURL  string
	scopes       []string

	mu       sync.RWMutex
	provider *provider
}

// New returns a Loader. Discovery happens on the first call to Provider and is retried
// on later calls until it succeeds.
func New(issuerURL, clientID, clientSecret, redirectURL string, scopes []string) Loader {
	return &loader{
		issuerURL:    issuerURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		scopes:       scopes,
	}
}

func (l *loader) Provider(ctx context.Context) (Provider, error) {
	l.mu.RLock()
	if l.provider != nil {
		l.mu.RUnlock()

		return l.provider, nil
	}

	l.mu.RUnlock()
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.provider != nil {
		return l.provider, nil
	}

	if err := l.newProvider(ctx); err != nil {
		return nil, errors.Wrap(err, "newProvider()")
	}

	return l.provider, nil
}

func (l *loader) newProvider(ctx context.Context) error {
	newProvider, err := oidc.NewProvider(ctx, l.issuerURL)
	if err != nil {
		return errors.Wrap(err, "oidc.NewProvider()")
	}

	var discovery struct {
		EndSessionEndpoint string `json:"end_session_endpoint"`
	}
	if err := newProvider.Claims(&discovery); err != nil {
		return errors.Wrap(err, "oidc.Provider.Claims()")
	}

	scopes := l.scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile"}
	}

	l.provider = &provider{
		provider:           newProvider,
		endSessionEndpoint: discovery.EndSessionEndpoint,
		config: oauth2.Config{
			ClientID:     l.clientID,
			ClientSecret: l.clientSecret,
			RedirectURL:  l.redirectURL,
			Endpoint:     newProvider.Endpoint(),
			Scopes:       scopes,
		},
	}

	return nil
}
