package loader

import (
	"context"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-playground/errors/v5"
	"golang.org/x/oauth2"
)

var _ Provider = &provider{}

type provider struct {
	provider           *oidc.Provider
	endSessionEndpoint string
	config             oauth2.Config
}

// AuthCodeURL returns the URL to redirect to in order to initiate the OIDC authentication process.
func (o *provider) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return o.config.AuthCodeURL(state, opts...)
}

// Exchange exchanges the authorization code for an OAuth2 token.
func (o *provider) Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	expire, cancel := context.WithTimeoutCause(ctx, 5*time.Second, errors.New("oauth2.Config.Exchange() timeout"))
	defer cancel()

	t, err := o.config.Exchange(expire, code, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "oauth2.Config.Exchange()")
	}

	return t, nil
}

// VerifyIDToken verifies the ID token signature, issuer and audience and returns its claims.
func (o *provider) VerifyIDToken(ctx context.Context, rawIDToken string) (*IDClaims, error) {
	expire, cancel := context.WithTimeoutCause(ctx, 5*time.Second, errors.New("oidc.IDTokenVerifier.Verify() timeout"))
	defer cancel()

	token, err := o.provider.Verifier(&oidc.Config{ClientID: o.config.ClientID}).Verify(expire, rawIDToken)
	if err != nil {
		return nil, errors.Wrap(err, "oidc.IDTokenVerifier.Verify()")
	}

	var extra extraClaims
	if err := token.Claims(&extra); err != nil {
		return nil, errors.Wrap(err, "oidc.IDToken.Claims()")
	}

	return &IDClaims{
		Subject:  token.Subject,
		Nonce:    token.Nonce,
		Username: extra.username(),
	}, nil
}

// UserInfo asks the userinfo endpoint who the access token belongs to.
func (o *provider) UserInfo(ctx context.Context, token *oauth2.Token) (*IDClaims, error) {
	expire, cancel := context.WithTimeoutCause(ctx, 5*time.Second, errors.New("oidc.Provider.UserInfo() timeout"))
	defer cancel()

	info, err := o.provider.UserInfo(expire, oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, errors.Wrap(err, "oidc.Provider.UserInfo()")
	}

	var extra extraClaims
	if err := info.Claims(&extra); err != nil {
		return nil, errors.Wrap(err, "oidc.UserInfo.Claims()")
	}
	if extra.Email == "" {
		extra.Email = info.Email
	}

	return &IDClaims{
		Subject:  info.Subject,
		Username: extra.username(),
	}, nil
}

// EndSessionEndpoint is the RP-initiated logout endpoint from discovery. It is empty when
// the provider does not publish one.
func (o *provider) EndSessionEndpoint() string {
	return o.endSessionEndpoint
}

func (o *provider) ClientID() string {
	return o.config.ClientID
}
