package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/haseab/retrace-frontend-sub001/internal/auth"
	pkghttp "github.com/haseab/retrace-frontend-sub001/pkg/http"
	pkglogger "github.com/haseab/retrace-frontend-sub001/pkg/logger"
)

// AuthHandler owns the admin login gate: admission check, credential
// verification, session issuance. The tracker is injected rather than shared
// module state so each test (and a future distributed store) can own one.
type AuthHandler struct {
	tracker  *auth.AttemptTracker
	verifier *auth.CredentialVerifier
	sessions *auth.SessionIssuer
	timing   *auth.TimingDelay
	audit    *pkglogger.AuditLogger
}

func NewAuthHandler(
	tracker *auth.AttemptTracker,
	verifier *auth.CredentialVerifier,
	sessions *auth.SessionIssuer,
	timing *auth.TimingDelay,
	audit *pkglogger.AuditLogger,
) *AuthHandler {
	return &AuthHandler{
		tracker:  tracker,
		verifier: verifier,
		sessions: sessions,
		timing:   timing,
		audit:    audit,
	}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// Login handles the admin login flow: client key → admission check →
// credential verification → outcome recording → session issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteLoginError(w, http.StatusBadRequest, "Password is required")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteLoginError(w, http.StatusBadRequest, "Password is required")
		return
	}

	clientKey := pkghttp.ClientKey(r)

	adm := h.tracker.CheckAdmission(clientKey)
	if !adm.Allowed {
		h.audit.LogAuthEvent(pkglogger.AuditEvent{
			EventType:     "login",
			ClientKey:     clientKey,
			FailureReason: "rate_limited",
		})
		pkghttp.WriteRateLimited(w, h.tracker.RetryAfterSeconds(adm))
		return
	}

	ok, err := h.verifier.Verify(req.Password)
	if err != nil {
		// Misconfiguration is a server error, never a failed attempt
		pkghttp.WriteLoginError(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	h.tracker.RecordOutcome(clientKey, ok)

	if !ok {
		h.audit.LogAuthEvent(pkglogger.AuditEvent{
			EventType:     "login",
			ClientKey:     clientKey,
			FailureReason: "invalid_password",
		})
		h.timing.Wait(false)
		pkghttp.WriteInvalidPassword(w, h.tracker.CheckAdmission(clientKey).RemainingAttempts)
		return
	}

	if err := h.sessions.Issue(w); err != nil {
		pkghttp.WriteLoginError(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	h.audit.LogAuthEvent(pkglogger.AuditEvent{
		EventType: "login",
		ClientKey: clientKey,
		Success:   true,
	})
	pkghttp.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Check reports whether the request carries a session cookie. Existence-only
// by contract; the bearer tier guards anything data-bearing.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if auth.HasSession(r) {
		pkghttp.WriteJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
		return
	}
	pkghttp.WriteJSON(w, http.StatusUnauthorized, map[string]bool{"authenticated": false})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	h.audit.LogAuthEvent(pkglogger.AuditEvent{
		EventType: "logout",
		ClientKey: pkghttp.ClientKey(r),
		Success:   true,
	})
	pkghttp.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// TokenCheck is the bearer-protected probe endpoint. The middleware has
// already rejected anything unauthorized by the time this runs.
func (h *AuthHandler) TokenCheck(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
