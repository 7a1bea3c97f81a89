// Package config loads the process configuration from the environment.
//
// The configuration is loaded once at startup and passed explicitly to every
// component that needs it. It is never read from global state.
package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/errors/v5"
)

// StorageBackend selects where provider-side flow and session state is kept
type StorageBackend string

const (
	StorageMemory    StorageBackend = "memory"
	StoragePostgres  StorageBackend = "postgres"
	StorageSpanner   StorageBackend = "spanner"
	StorageFirestore StorageBackend = "firestore"
)

// ErrConfigMissing is returned by Validate when a required setting is absent
var ErrConfigMissing = errors.New("required configuration missing")

// Config holds the settings of the login flow.
type Config struct {
	ClientID           string         `env:"ASGARDEO_CLIENT_ID"`
	ClientSecret       string         `env:"ASGARDEO_CLIENT_SECRET"`
	BaseURL            string         `env:"ASGARDEO_BASE_URL"`
	IssuerURL          string         `env:"ASGARDEO_ISSUER_URL"`
	SignInRedirectURL  string         `env:"ASGARDEO_SIGN_IN_REDIRECT_URL"  envDefault:"http://localhost:3000/api/auth/login"`
	SignOutRedirectURL string         `env:"ASGARDEO_SIGN_OUT_REDIRECT_URL" envDefault:"http://localhost:3000"`
	Scopes             []string       `env:"ASGARDEO_SCOPE"                 envDefault:"openid,profile" envSeparator:","`
	Storage            StorageBackend `env:"ASGARDEO_STORAGE"               envDefault:"memory"`

	PendingFlowTTL time.Duration `env:"LOGINFLOW_PENDING_FLOW_TTL" envDefault:"15m"`
	SessionTTL     time.Duration `env:"LOGINFLOW_SESSION_TTL"      envDefault:"8h"`
	Production     bool          `env:"LOGINFLOW_PRODUCTION"`
	ListenAddr     string        `env:"LOGINFLOW_LISTEN_ADDR"      envDefault:":3000"`

	PostgresURL           string `env:"LOGINFLOW_POSTGRES_URL"`
	SpannerDatabase       string `env:"LOGINFLOW_SPANNER_DATABASE"`
	FirestoreProject      string `env:"LOGINFLOW_FIRESTORE_PROJECT"`
	GoogleCredentialsFile string `env:"LOGINFLOW_GOOGLE_CREDENTIALS_FILE"`

	// TokenKey seals tokens at rest (base64, at least 96 bytes). Required for persistent storage;
	// a random key is used with memory storage when empty.
	TokenKey string `env:"LOGINFLOW_TOKEN_KEY"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "env.Parse()")
	}

	cfg.Scopes = trimCSV(cfg.Scopes)
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	if err := cfg.validateStorage(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Issuer returns the OIDC issuer used for discovery. Asgardeo tenants publish
// their discovery document under <BaseURL>/oauth2/token.
func (c *Config) Issuer() string {
	if c.IssuerURL != "" {
		return c.IssuerURL
	}

	return c.BaseURL + "/oauth2/token"
}

// Validate reports ErrConfigMissing when the client identifier or provider base URL is absent.
// It is checked per request so a misconfigured process keeps serving error outcomes.
func (c *Config) Validate() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "ASGARDEO_CLIENT_ID")
	}
	if c.BaseURL == "" {
		missing = append(missing, "ASGARDEO_BASE_URL")
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrConfigMissing, "missing %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateStatus is Validate plus the sign-in redirect URL, which the status check also requires.
func (c *Config) ValidateStatus() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.SignInRedirectURL == "" {
		return errors.Wrap(ErrConfigMissing, "missing ASGARDEO_SIGN_IN_REDIRECT_URL")
	}

	return nil
}

// Public is the subset of the configuration that is safe to expose to the browser
type Public struct {
	ClientID           string   `json:"clientID"`
	BaseURL            string   `json:"baseUrl"`
	SignInRedirectURL  string   `json:"signInRedirectURL"`
	SignOutRedirectURL string   `json:"signOutRedirectURL"`
	Scope              []string `json:"scope"`
}

// Public returns the browser-safe projection of the configuration. It never includes the client secret.
func (c *Config) Public() Public {
	return Public{
		ClientID:           c.ClientID,
		BaseURL:            c.BaseURL,
		SignInRedirectURL:  c.SignInRedirectURL,
		SignOutRedirectURL: c.SignOutRedirectURL,
		Scope:              append([]string(nil), c.Scopes...),
	}
}

func (c *Config) validateStorage() error {
	if c.Storage != StorageMemory && c.TokenKey == "" {
		// Sealed tokens must stay readable across restarts.
		return errors.Newf("LOGINFLOW_TOKEN_KEY is required for %s storage", c.Storage)
	}

	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.PostgresURL == "" {
			return errors.New("LOGINFLOW_POSTGRES_URL is required for postgres storage")
		}
	case StorageSpanner:
		if c.SpannerDatabase == "" {
			return errors.New("LOGINFLOW_SPANNER_DATABASE is required for spanner storage")
		}
	case StorageFirestore:
		if c.FirestoreProject == "" {
			return errors.New("LOGINFLOW_FIRESTORE_PROJECT is required for firestore storage")
		}
	default:
		return errors.Newf("unknown storage backend %q", c.Storage)
	}

	return nil
}

// trimCSV removes empty entries from a string slice.
func trimCSV(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}

	return result
}
