package loader

// IDClaims are the verified claims of an ID token used by the login flow.
type IDClaims struct {
	Subject  string
	Nonce    string
	Username string
}

type extraClaims struct {
	Username          string `json:"username"`
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email"`
}

func (c extraClaims) username() string {
	switch {
	case c.Username != "":
		return c.Username
	case c.PreferredUsername != "":
		return c.PreferredUsername
	default:
		return c.Email
	}
}
