package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientKey_ForwardedForTakesFirstEntry(t *testing.T) {
	req := httptest.NewRequest("POST", "/auth/login", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1, 10.0.0.2")
	req.Header.Set("X-Real-IP", "5.6.7.8")

	assert.Equal(t, "1.2.3.4", ClientKey(req))
}

func TestClientKey_TrimsWhitespace(t *testing.T) {
	req := httptest.NewRequest("POST", "/auth/login", nil)
	req.Header.Set("X-Forwarded-For", "  1.2.3.4 , 10.0.0.1")

	assert.Equal(t, "1.2.3.4", ClientKey(req))
}

func TestClientKey_FallsBackToRealIP(t *testing.T) {
	req := httptest.NewRequest("POST", "/auth/login", nil)
	req.Header.Set("X-Real-IP", "5.6.7.8")

	assert.Equal(t, "5.6.7.8", ClientKey(req))
}

func TestClientKey_EmptyForwardedForEntryFallsBack(t *testing.T) {
	req := httptest.NewRequest("POST", "/auth/login", nil)
	req.Header.Set("X-Forwarded-For", " , 10.0.0.1")
	req.Header.Set("X-Real-IP", "5.6.7.8")

	assert.Equal(t, "5.6.7.8", ClientKey(req))
}

func TestClientKey_Unknown(t *testing.T) {
	req := httptest.NewRequest("POST", "/auth/login", nil)

	assert.Equal(t, UnknownClient, ClientKey(req))
}
