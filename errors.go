package loginflow

import "github.com/go-playground/errors/v5"

// ErrorKind is the marker reported to the browser when a flow step fails.
type ErrorKind string

const (
	ConfigMissing          ErrorKind = "config_missing"
	SessionMissing         ErrorKind = "session_missing"
	CallbackExchangeFailed ErrorKind = "callback_failed"
	SignInIncomplete       ErrorKind = "signin_incomplete"
	InitiationFailed       ErrorKind = "initiation_failed"
	StatusCheckFailed      ErrorKind = "status_check_failed"
	LogoutFailedNoSession  ErrorKind = "logout_failed_no_session"
	LogoutFailed           ErrorKind = "logout_failed"
)

// ErrNoRedirectURL is reported when the provider client neither failed nor produced a redirect URL.
var ErrNoRedirectURL = errors.New("identity provider returned no redirect URL")
