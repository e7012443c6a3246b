package http

import (
	"net/http"
	"strings"
)

// UnknownClient is the sentinel partition key used when no client address
// can be derived from the request.
const UnknownClient = "unknown"

// ClientKey derives the rate-limit partition key for a request.
//
// Policy: first comma-separated entry of X-Forwarded-For if present and
// non-empty, otherwise X-Real-IP, otherwise "unknown". The service runs
// behind a reverse proxy that sets these headers; a client spoofing them
// only degrades rate-limit accuracy, it cannot bypass the credential check,
// so the key is deliberately not validated as an IP address.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	return UnknownClient
}
