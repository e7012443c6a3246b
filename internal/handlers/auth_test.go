package handlers_test

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/haseab/retrace-frontend-sub001/internal/auth"
	"github.com/haseab/retrace-frontend-sub001/internal/handlers"
	pkghttp "github.com/haseab/retrace-frontend-sub001/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func loginRequest(t *testing.T, password, clientIP string) *http.Request {
	req := handlers.NewTestRequest(t, "POST", "/auth/login", handlers.LoginRequest{Password: password})
	req.Header.Set("X-Forwarded-For", clientIP)
	return req
}

func TestLogin_Success(t *testing.T) {
	h := handlers.NewTestAuthHandler(sha256Hex("hunter2"))

	w := httptest.NewRecorder()
	h.Login(w, loginRequest(t, "hunter2", "1.2.3.4"))

	var resp map[string]bool
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.True(t, resp["success"])

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			session = c
		}
	}
	require.NotNil(t, session, "login must set the session cookie")
	assert.NotEmpty(t, session.Value)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, session.SameSite)
	assert.Equal(t, 86400, session.MaxAge)
}

func TestLogin_MissingPassword(t *testing.T) {
	h := handlers.NewTestAuthHandler(sha256Hex("hunter2"))

	for _, body := range []interface{}{nil, map[string]string{}, map[string]string{"password": ""}} {
		req := handlers.NewTestRequest(t, "POST", "/auth/login", body)
		w := httptest.NewRecorder()
		h.Login(w, req)

		var resp pkghttp.LoginErrorResponse
		handlers.AssertJSONResponse(t, w, 400, &resp)
		assert.Equal(t, "Password is required", resp.Error)
	}
}

func TestLogin_InvalidPasswordCountsDown(t *testing.T) {
	h := handlers.NewTestAuthHandler(sha256Hex("hunter2"))

	for want := 4; want >= 1; want-- {
		w := httptest.NewRecorder()
		h.Login(w, loginRequest(t, "wrong", "1.2.3.4"))

		var resp pkghttp.LoginErrorResponse
		handlers.AssertJSONResponse(t, w, 401, &resp)
		assert.Equal(t, "Invalid password", resp.Error)
		require.NotNil(t, resp.RemainingAttempts)
		assert.Equal(t, want, *resp.RemainingAttempts)
	}
}

func TestLogin_LockoutAfterMaxAttempts(t *testing.T) {
	h := handlers.NewTestAuthHandler(sha256Hex("hunter2"))

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		h.Login(w, loginRequest(t, "wrong", "1.2.3.4"))
		require.Equal(t, 401, w.Code, "attempt %d", i+1)
	}

	// Sixth attempt is rejected before the credential check, even with the
	// right password
	w := httptest.NewRecorder()
	h.Login(w, loginRequest(t, "hunter2", "1.2.3.4"))

	var resp pkghttp.LoginErrorResponse
	handlers.AssertJSONResponse(t, w, 429, &resp)
	require.NotNil(t, resp.RetryAfter)
	assert.InDelta(t, 900, *resp.RetryAfter, 5)

	headerSecs, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.InDelta(t, 900, headerSecs, 5)
}

func TestLogin_OtherClientsUnaffectedByLockout(t *testing.T) {
	h := handlers.NewTestAuthHandler(sha256Hex("hunter2"))

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		h.Login(w, loginRequest(t, "wrong", "1.2.3.4"))
		require.Equal(t, 401, w.Code)
	}

	w := httptest.NewRecorder()
	h.Login(w, loginRequest(t, "hunter2", "5.6.7.8"))
	assert.Equal(t, 200, w.Code)
}

func TestLogin_SuccessResetsAttemptState(t *testing.T) {
	h := handlers.NewTestAuthHandler(sha256Hex("hunter2"))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h.Login(w, loginRequest(t, "wrong", "1.2.3.4"))
		require.Equal(t, 401, w.Code)
	}

	w := httptest.NewRecorder()
	h.Login(w, loginRequest(t, "hunter2", "1.2.3.4"))
	require.Equal(t, 200, w.Code)

	// The next failure is a first offense again
	w = httptest.NewRecorder()
	h.Login(w, loginRequest(t, "wrong", "1.2.3.4"))

	var resp pkghttp.LoginErrorResponse
	handlers.AssertJSONResponse(t, w, 401, &resp)
	require.NotNil(t, resp.RemainingAttempts)
	assert.Equal(t, 4, *resp.RemainingAttempts)
}

func TestLogin_UnsetHashIs500(t *testing.T) {
	h := handlers.NewTestAuthHandler("")

	w := httptest.NewRecorder()
	h.Login(w, loginRequest(t, "hunter2", "1.2.3.4"))

	var resp pkghttp.LoginErrorResponse
	handlers.AssertJSONResponse(t, w, 500, &resp)
	assert.Equal(t, "Server configuration error", resp.Error)
}

func TestLogin_MisconfigurationDoesNotBurnAttempts(t *testing.T) {
	h := handlers.NewTestAuthHandler("")

	// However many requests arrive against an unconfigured gate, none of
	// them count as failed attempts
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		h.Login(w, loginRequest(t, "hunter2", "1.2.3.4"))
		assert.Equal(t, 500, w.Code)
	}
}

func TestCheck_SessionPresence(t *testing.T) {
	h := handlers.NewTestAuthHandler(sha256Hex("hunter2"))

	req := httptest.NewRequest("GET", "/auth/check", nil)
	w := httptest.NewRecorder()
	h.Check(w, req)

	var resp map[string]bool
	handlers.AssertJSONResponse(t, w, 401, &resp)
	assert.False(t, resp["authenticated"])

	req = httptest.NewRequest("GET", "/auth/check", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "token"})
	w = httptest.NewRecorder()
	h.Check(w, req)

	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.True(t, resp["authenticated"])
}

func TestLogout_ClearsCookie(t *testing.T) {
	h := handlers.NewTestAuthHandler(sha256Hex("hunter2"))

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	w := httptest.NewRecorder()
	h.Logout(w, req)

	var resp map[string]bool
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.True(t, resp["success"])

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestTokenCheck_Succeeds(t *testing.T) {
	h := handlers.NewTestAuthHandler(sha256Hex("hunter2"))

	w := httptest.NewRecorder()
	h.TokenCheck(w, httptest.NewRequest("GET", "/auth/token-check", nil))

	var resp map[string]bool
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.True(t, resp["success"])
}
