package loginflow

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/cccteam/ccc"
	"github.com/cccteam/httpio"
	"github.com/cccteam/logger"
	"github.com/cccteam/loginflow/config"
	"github.com/cccteam/loginflow/idp"
	"github.com/cccteam/loginflow/internal/cookie"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/errors/v5"
	"go.opentelemetry.io/otel"
)

const name = "github.com/cccteam/loginflow"

// User is the authenticated user reported by the status route
type User struct {
	Username string `json:"username"`
	Sub      string `json:"sub"`
}

// StatusResponse is the body of the status route
type StatusResponse struct {
	IsAuthenticated bool      `json:"isAuthenticated"`
	User            *User     `json:"user,omitempty"`
	Error           ErrorKind `json:"error,omitempty"`
	Details         string    `json:"details,omitempty"`
}

// GreetingResponse is the body of the greeting route
type GreetingResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Orchestrator drives the login, logout and status routes.
type Orchestrator struct {
	cfg        *config.Config
	client     idp.Client
	cookie     cookie.Handler
	handle     LogHandler
	landingURL string
	errorURL   string
	now        func() time.Time
}

// New returns an Orchestrator. cfg is read but never modified.
func New(cfg *config.Config, client idp.Client, opts ...Option) *Orchestrator {
	o := &options{
		handle:     logErrors,
		landingURL: "/",
		errorURL:   "/",
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Orchestrator{
		cfg:        cfg,
		client:     client,
		cookie:     cookie.New(cfg.Production, o.cookieOpts...),
		handle:     o.handle,
		landingURL: o.landingURL,
		errorURL:   o.errorURL,
		now:        time.Now,
	}
}

// Mount registers the routes on r
func (o *Orchestrator) Mount(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/login", o.Login())
		r.Get("/logout", o.Logout())
		r.Get("/status", o.Status())
		r.Get("/config", o.Config())
	})
	r.Get("/api/greeting", o.Greeting())
}

// Login starts a new sign-in, or completes one when the provider redirects back with code and state.
func (o *Orchestrator) Login() http.HandlerFunc {
	return o.handle(func(w http.ResponseWriter, r *http.Request) error {
		q := r.URL.Query()
		if q.Get("code") != "" && q.Get("state") != "" {
			return o.HandleCallback(r.Context(), w, r)
		}

		return o.Initiate(r.Context(), w, r)
	})
}

// Logout ends the session with the provider
func (o *Orchestrator) Logout() http.HandlerFunc {
	return o.handle(func(w http.ResponseWriter, r *http.Request) error {
		return o.SignOut(r.Context(), w, r)
	})
}

// Status reports whether the browser has an authenticated session
func (o *Orchestrator) Status() http.HandlerFunc {
	return o.handle(func(w http.ResponseWriter, r *http.Request) error {
		resp, statusErr := o.CheckStatus(r.Context(), r)
		if err := httpio.NewEncoder(w).Ok(resp); err != nil {
			return errors.Wrap(err, "httpio.Encoder.Ok()")
		}

		return statusErr
	})
}

// Config returns the browser-safe configuration
func (o *Orchestrator) Config() http.HandlerFunc {
	return o.handle(func(w http.ResponseWriter, _ *http.Request) error {
		return httpio.NewEncoder(w).Ok(o.cfg.Public())
	})
}

// Greeting is a liveness probe for the front end
func (o *Orchestrator) Greeting() http.HandlerFunc {
	return o.handle(func(w http.ResponseWriter, _ *http.Request) error {
		return httpio.NewEncoder(w).Ok(GreetingResponse{
			Message:   "Hello from the login flow API!",
			Timestamp: o.now().UTC(),
		})
	})
}

// Initiate mints a new correlation id, sets it as the session cookie and redirects the
// browser to the provider. On failure the browser is sent to the error page and no
// cookie is set.
func (o *Orchestrator) Initiate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Orchestrator.Initiate()")
	defer span.End()

	if err := o.cfg.Validate(); err != nil {
		return o.fail(w, r, ConfigMissing, err)
	}

	id, err := ccc.NewUUID()
	if err != nil {
		return o.fail(w, r, InitiationFailed, errors.Wrap(err, "ccc.NewUUID()"))
	}
	correlationID := id.String()

	redirectURL, err := o.client.BeginAuthorization(ctx, correlationID)
	if err != nil {
		return o.fail(w, r, InitiationFailed, errors.Wrap(err, "idp.Client.BeginAuthorization()"))
	}
	if redirectURL == "" {
		return o.fail(w, r, InitiationFailed, ErrNoRedirectURL)
	}

	logger.Req(r).AddRequestAttribute("correlation ID", correlationID)

	o.cookie.Write(w, correlationID, o.cfg.PendingFlowTTL)
	http.Redirect(w, r, redirectURL, http.StatusFound)

	return nil
}

// HandleCallback completes the sign-in started by Initiate.
func (o *Orchestrator) HandleCallback(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Orchestrator.HandleCallback()")
	defer span.End()

	if err := o.cfg.Validate(); err != nil {
		return o.fail(w, r, ConfigMissing, err)
	}

	correlationID, ok := o.cookie.Read(r)
	if !ok {
		return o.fail(w, r, SessionMissing, httpio.NewUnauthorizedMessage("session cookie missing on callback"))
	}
	logger.Req(r).AddRequestAttribute("correlation ID", correlationID)

	q := r.URL.Query()
	tokens, err := o.client.ExchangeCode(ctx, correlationID, q.Get("code"), q.Get("state"), q.Get("session_state"))
	if err != nil {
		return o.fail(w, r, CallbackExchangeFailed, errors.Wrap(err, "idp.Client.ExchangeCode()"))
	}
	if tokens.Empty() {
		return o.fail(w, r, SignInIncomplete, httpio.NewUnauthorizedMessage("sign-in returned no tokens"))
	}

	o.cookie.Write(w, correlationID, o.cfg.SessionTTL)
	http.Redirect(w, r, o.landingURL, http.StatusFound)

	return nil
}

// CheckStatus reports the authentication state of the browser. The response is always
// usable; the error is only returned so it can be logged.
func (o *Orchestrator) CheckStatus(ctx context.Context, r *http.Request) (*StatusResponse, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Orchestrator.CheckStatus()")
	defer span.End()

	if err := o.cfg.ValidateStatus(); err != nil {
		return &StatusResponse{Error: ConfigMissing}, err
	}

	correlationID, ok := o.cookie.Read(r)
	if !ok {
		return &StatusResponse{}, nil
	}

	info, err := o.client.UserInfo(ctx, correlationID)
	if err != nil {
		// Only the root cause is sent to the browser.
		return &StatusResponse{Error: StatusCheckFailed, Details: errors.Cause(err).Error()}, errors.Wrap(err, "idp.Client.UserInfo()")
	}
	if info == nil || info.Subject == "" {
		return &StatusResponse{}, nil
	}

	username := info.Username
	if username == "" {
		username = info.Subject
	}

	return &StatusResponse{
		IsAuthenticated: true,
		User:            &User{Username: username, Sub: info.Subject},
	}, nil
}

// SignOut clears the session cookie and redirects the browser to the provider's
// end-session endpoint. The cookie is cleared even when the provider call fails.
func (o *Orchestrator) SignOut(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Orchestrator.SignOut()")
	defer span.End()

	if err := o.cfg.Validate(); err != nil {
		return o.fail(w, r, ConfigMissing, err)
	}

	correlationID, ok := o.cookie.Read(r)
	if !ok {
		return o.fail(w, r, LogoutFailedNoSession, httpio.NewUnauthorizedMessage("no session to sign out"))
	}
	logger.Req(r).AddRequestAttribute("correlation ID", correlationID)

	signOutURL, err := o.client.SignOutURL(ctx, correlationID)
	o.cookie.Clear(w)
	if err != nil {
		return o.fail(w, r, LogoutFailed, errors.Wrap(err, "idp.Client.SignOutURL()"))
	}

	http.Redirect(w, r, signOutURL, http.StatusFound)

	return nil
}

// fail redirects to the error page with the marker and returns err for the LogHandler.
func (o *Orchestrator) fail(w http.ResponseWriter, r *http.Request, kind ErrorKind, err error) error {
	http.Redirect(w, r, o.errorPage(kind), http.StatusFound)

	return errors.Wrapf(err, "%s", kind)
}

func (o *Orchestrator) errorPage(kind ErrorKind) string {
	u, err := url.Parse(o.errorURL)
	if err != nil {
		return "/?error=" + url.QueryEscape(string(kind))
	}
	q := u.Query()
	q.Set("error", string(kind))
	u.RawQuery = q.Encode()

	return u.String()
}
