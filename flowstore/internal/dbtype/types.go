// Package dbtype contains types used by the database driver packages for flow storage.
package dbtype

import "time"

// Flow defines the structure for storing a pending authorization flow.
type Flow struct {
	ID           string    `spanner:"Id"           db:"Id"           firestore:"id"`
	State        string    `spanner:"State"        db:"State"        firestore:"state"`
	Nonce        string    `spanner:"Nonce"        db:"Nonce"        firestore:"nonce"`
	PkceVerifier string    `spanner:"PkceVerifier" db:"PkceVerifier" firestore:"pkceVerifier"`
	CreatedAt    time.Time `spanner:"CreatedAt"    db:"CreatedAt"    firestore:"createdAt"`
	ExpiresAt    time.Time `spanner:"ExpiresAt"    db:"ExpiresAt"    firestore:"expiresAt"`
}

// Session defines the structure for storing an authenticated session.
// SealedTokens holds the encrypted token set and is opaque to the drivers.
type Session struct {
	ID           string    `spanner:"Id"           db:"Id"           firestore:"id"`
	Subject      string    `spanner:"Subject"      db:"Subject"      firestore:"subject"`
	Username     string    `spanner:"Username"     db:"Username"     firestore:"username"`
	SessionState string    `spanner:"SessionState" db:"SessionState" firestore:"sessionState"`
	SealedTokens string    `spanner:"SealedTokens" db:"SealedTokens" firestore:"sealedTokens"`
	CreatedAt    time.Time `spanner:"CreatedAt"    db:"CreatedAt"    firestore:"createdAt"`
	ExpiresAt    time.Time `spanner:"ExpiresAt"    db:"ExpiresAt"    firestore:"expiresAt"`
}
