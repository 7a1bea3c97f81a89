package idp

import (
	"context"
	"net/url"
	"time"

	"github.com/cccteam/httpio"
	"github.com/cccteam/logger"
	"github.com/cccteam/loginflow/config"
	"github.com/cccteam/loginflow/flowstore"
	"github.com/cccteam/loginflow/idp/loader"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-playground/errors/v5"
	"github.com/gofrs/uuid"
	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"
)

const (
	name = "github.com/cccteam/loginflow/idp"

	signOutState = "sign_out_success"
)

// OIDC is a Client for an OpenID Connect provider such as Asgardeo.
type OIDC struct {
	loader             loader.Loader
	store              flowstore.Store
	signOutRedirectURL string
	pendingFlowTTL     time.Duration
	sessionTTL         time.Duration
	now                func() time.Time
}

// New returns an OIDC client for the provider described by cfg. Discovery is deferred
// until the first request that needs the provider.
func New(cfg *config.Config, store flowstore.Store) *OIDC {
	return newOIDC(
		loader.New(cfg.Issuer(), cfg.ClientID, cfg.ClientSecret, cfg.SignInRedirectURL, cfg.Scopes),
		store, cfg,
	)
}

func newOIDC(l loader.Loader, store flowstore.Store, cfg *config.Config) *OIDC {
	return &OIDC{
		loader:             l,
		store:              store,
		signOutRedirectURL: cfg.SignOutRedirectURL,
		pendingFlowTTL:     cfg.PendingFlowTTL,
		sessionTTL:         cfg.SessionTTL,
		now:                time.Now,
	}
}

// BeginAuthorization stores a new pending flow and returns the authorization URL
func (o *OIDC) BeginAuthorization(ctx context.Context, correlationID string) (string, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "OIDC.BeginAuthorization()")
	defer span.End()

	provider, err := o.loader.Provider(ctx)
	if err != nil {
		return "", errors.Wrap(err, "loader.Loader.Provider()")
	}

	// Using PKCE (Proof Key for Code Exchange) to protect against authorization code interception attacks
	pkceVerifier := oauth2.GenerateVerifier()

	state, err := uuid.NewV4()
	if err != nil {
		return "", errors.Wrap(err, "uuid.NewV4()")
	}
	nonce, err := uuid.NewV4()
	if err != nil {
		return "", errors.Wrap(err, "uuid.NewV4()")
	}

	now := o.now()
	flow := &flowstore.Flow{
		CorrelationID: correlationID,
		State:         state.String(),
		Nonce:         nonce.String(),
		PKCEVerifier:  pkceVerifier,
		CreatedAt:     now,
		ExpiresAt:     now.Add(o.pendingFlowTTL),
	}
	if err := o.store.SaveFlow(ctx, flow); err != nil {
		return "", errors.Wrap(err, "flowstore.Store.SaveFlow()")
	}

	return provider.AuthCodeURL(flow.State, oauth2.S256ChallengeOption(pkceVerifier), oidc.Nonce(flow.Nonce)), nil
}

// ExchangeCode consumes the pending flow, exchanges the code and stores the resulting session.
// Tokens are returned as received; a session is only stored when at least one token is present.
func (o *OIDC) ExchangeCode(ctx context.Context, correlationID, code, state, sessionState string) (*Tokens, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "OIDC.ExchangeCode()")
	defer span.End()

	flow, err := o.store.Flow(ctx, correlationID)
	if err != nil {
		if flowstore.IsNotFound(err) {
			return nil, httpio.NewUnauthorizedMessage("no pending login flow")
		}

		return nil, errors.Wrap(err, "flowstore.Store.Flow()")
	}

	// A flow is good for one callback regardless of how the callback turns out.
	if err := o.store.DeleteFlow(ctx, correlationID); err != nil {
		return nil, errors.Wrap(err, "flowstore.Store.DeleteFlow()")
	}

	if state != flow.State {
		return nil, httpio.NewUnauthorizedMessage("Invalid 'state' parameter value")
	}

	provider, err := o.loader.Provider(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loader.Loader.Provider()")
	}

	oauth2Token, err := provider.Exchange(ctx, code, oauth2.VerifierOption(flow.PKCEVerifier))
	if err != nil {
		return nil, errors.Wrap(err, "loader.Provider.Exchange()")
	}

	rawIDToken, _ := oauth2Token.Extra("id_token").(string)
	tokens := &Tokens{
		AccessToken:  oauth2Token.AccessToken,
		IDToken:      rawIDToken,
		RefreshToken: oauth2Token.RefreshToken,
		Expiry:       oauth2Token.Expiry,
	}
	if tokens.Empty() {
		logger.Ctx(ctx).Infof("token exchange for %s returned no tokens", correlationID)

		return tokens, nil
	}

	claims, err := o.identify(ctx, provider, oauth2Token, rawIDToken, flow.Nonce)
	if err != nil {
		return nil, err
	}

	now := o.now()
	session := &flowstore.Session{
		CorrelationID: correlationID,
		Subject:       claims.Subject,
		Username:      claims.Username,
		SessionState:  sessionState,
		Tokens: flowstore.Tokens{
			AccessToken:  tokens.AccessToken,
			IDToken:      tokens.IDToken,
			RefreshToken: tokens.RefreshToken,
			Expiry:       tokens.Expiry,
		},
		CreatedAt: now,
		ExpiresAt: now.Add(o.sessionTTL),
	}
	if err := o.store.SaveSession(ctx, session); err != nil {
		return nil, errors.Wrap(err, "flowstore.Store.SaveSession()")
	}

	return tokens, nil
}

// identify returns the verified identity from the ID token, or from the userinfo
// endpoint when the provider issued only an access token.
func (o *OIDC) identify(ctx context.Context, provider loader.Provider, token *oauth2.Token, rawIDToken, nonce string) (*loader.IDClaims, error) {
	if rawIDToken == "" {
		claims, err := provider.UserInfo(ctx, token)
		if err != nil {
			return nil, errors.Wrap(err, "loader.Provider.UserInfo()")
		}

		return claims, nil
	}

	claims, err := provider.VerifyIDToken(ctx, rawIDToken)
	if err != nil {
		return nil, errors.Wrap(err, "loader.Provider.VerifyIDToken()")
	}
	if claims.Nonce != nonce {
		return nil, httpio.NewUnauthorizedMessage("Invalid 'nonce' in ID token")
	}

	return claims, nil
}

// UserInfo returns the user of the stored session, or nil when there is none
func (o *OIDC) UserInfo(ctx context.Context, correlationID string) (*UserInfo, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "OIDC.UserInfo()")
	defer span.End()

	session, err := o.store.Session(ctx, correlationID)
	if err != nil {
		if flowstore.IsNotFound(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "flowstore.Store.Session()")
	}

	return &UserInfo{
		Subject:  session.Subject,
		Username: session.Username,
	}, nil
}

// SignOutURL builds the RP-initiated logout URL and destroys the stored session
func (o *OIDC) SignOutURL(ctx context.Context, correlationID string) (string, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "OIDC.SignOutURL()")
	defer span.End()

	session, err := o.store.Session(ctx, correlationID)
	if err != nil {
		if flowstore.IsNotFound(err) {
			return "", httpio.NewNotFoundMessagef("no session for %s", correlationID)
		}

		return "", errors.Wrap(err, "flowstore.Store.Session()")
	}

	provider, err := o.loader.Provider(ctx)
	if err != nil {
		return "", errors.Wrap(err, "loader.Loader.Provider()")
	}

	endpoint := provider.EndSessionEndpoint()
	if endpoint == "" {
		return "", errors.New("provider does not publish an end_session_endpoint")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", errors.Wrap(err, "url.Parse()")
	}

	q := u.Query()
	if session.Tokens.IDToken != "" {
		q.Set("id_token_hint", session.Tokens.IDToken)
	}
	q.Set("post_logout_redirect_uri", o.signOutRedirectURL)
	q.Set("client_id", provider.ClientID())
	q.Set("state", signOutState)
	u.RawQuery = q.Encode()

	if err := o.store.DestroySession(ctx, correlationID); err != nil {
		return "", errors.Wrap(err, "flowstore.Store.DestroySession()")
	}

	return u.String(), nil
}
