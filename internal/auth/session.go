package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"
)

// SessionCookieName is the cookie carrying the admin session token
const SessionCookieName = "admin_session"

const sessionTokenBytes = 32 // 256 bits of entropy

// SessionIssuer mints opaque session tokens and owns the cookie contract.
//
// Validity is existence-only: the server keeps no session table, so the
// cookie itself is the bearer of validity and age (Max-Age enforces expiry
// in the browser). That is deliberately lightweight and only acceptable
// because every data-bearing API route sits behind the bearer token tier.
type SessionIssuer struct {
	maxAge time.Duration
	secure bool
}

// NewSessionIssuer creates an issuer. secure should be false only in local
// development, where the site is served over plain HTTP.
func NewSessionIssuer(maxAge time.Duration, secure bool) *SessionIssuer {
	return &SessionIssuer{maxAge: maxAge, secure: secure}
}

// GenerateToken returns a new cryptographically random opaque token
func GenerateToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Issue mints a token and attaches it to the response as the session cookie
func (si *SessionIssuer) Issue(w http.ResponseWriter) error {
	token, err := GenerateToken()
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(si.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   si.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Clear invalidates the session by re-issuing the cookie empty and expired
func (si *SessionIssuer) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   si.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// HasSession reports whether the request carries a non-empty session cookie
func HasSession(r *http.Request) bool {
	cookie, err := r.Cookie(SessionCookieName)
	return err == nil && cookie.Value != ""
}
