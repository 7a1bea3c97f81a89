package flowstore

import "time"

// Flow is a pending authorization flow awaiting its callback.
type Flow struct {
	CorrelationID string
	State         string
	Nonce         string
	PKCEVerifier  string
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// Tokens is the token set returned by the provider. It is sealed before it reaches a driver.
type Tokens struct {
	AccessToken  string    `json:"accessToken,omitempty"`
	IDToken      string    `json:"idToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	Expiry       time.Time `json:"expiry,omitzero"`
}

// Session is an authenticated session established by a completed callback.
type Session struct {
	CorrelationID string
	Subject       string
	Username      string
	SessionState  string
	Tokens        Tokens
	CreatedAt     time.Time
	ExpiresAt     time.Time
}
