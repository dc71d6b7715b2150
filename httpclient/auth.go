package httpclient

import "net/http"

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Header is the header carrying the credential. Defaults to Authorization.
	Header string
	// Scheme prefixes the token, e.g. "Bearer".
	Scheme string
	// Token is the credential.
	Token Secret
}

// BearerAuth creates an auth config sending "Authorization: Bearer <token>".
func BearerAuth(token Secret) *AuthConfig {
	return &AuthConfig{Header: "Authorization", Scheme: "Bearer", Token: token}
}

// headerName returns the canonical header the credential is sent in.
func (a *AuthConfig) headerName() string {
	if a.Header == "" {
		return "Authorization"
	}
	return http.CanonicalHeaderKey(a.Header)
}

// apply sets the credential header on req.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Token.IsZero() {
		return
	}
	value := a.Token.reveal()
	if a.Scheme != "" {
		value = a.Scheme + " " + value
	}
	req.Header.Set(a.headerName(), value)
}
