package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	pkghttp "github.com/haseab/retrace-frontend-sub001/pkg/http"
)

const bearerPrefix = "Bearer "

// BearerAuthorizer is the stateless check protecting every machine-to-machine
// API route with a single static shared secret.
type BearerAuthorizer struct {
	secret string
}

func NewBearerAuthorizer(secret string) *BearerAuthorizer {
	return &BearerAuthorizer{secret: secret}
}

// Authorize validates the Authorization header of a request. Returns the HTTP
// status to respond with on failure:
//   - 500 when no secret is configured server-side
//   - 401 when the header is absent or not a Bearer token
//   - 401 when the token does not match
//
// Status granularity is the only signal exposed; the 401 sub-cases are not
// distinguishable by the caller beyond the details string.
func (b *BearerAuthorizer) Authorize(r *http.Request) (int, string) {
	if b.secret == "" {
		return http.StatusInternalServerError, "server configuration error"
	}

	// Both 401 sub-cases get the same details string so a probing caller
	// cannot tell a malformed header from a wrong token
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return http.StatusUnauthorized, "invalid or missing bearer token"
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if subtle.ConstantTimeCompare([]byte(token), []byte(b.secret)) != 1 {
		return http.StatusUnauthorized, "invalid or missing bearer token"
	}

	return http.StatusOK, ""
}

// RequireBearer is middleware enforcing the bearer check before any other
// work in the protected handler chain.
func (b *BearerAuthorizer) RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, details := b.Authorize(r)
		switch status {
		case http.StatusOK:
			next.ServeHTTP(w, r)
		case http.StatusInternalServerError:
			pkghttp.WriteServerMisconfigured(w)
		default:
			pkghttp.WriteAPIUnauthorized(w, details)
		}
	})
}
