package idp

import "time"

// Tokens returned by a completed code exchange
type Tokens struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
	Expiry       time.Time
}

// Empty reports whether the exchange produced neither an access token nor an ID token.
func (t *Tokens) Empty() bool {
	return t == nil || (t.AccessToken == "" && t.IDToken == "")
}

// UserInfo identifies the authenticated user
type UserInfo struct {
	Subject  string
	Username string
}
