package http

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// LoginErrorResponse is the error body returned by the login endpoint
type LoginErrorResponse struct {
	Error             string `json:"error"`
	RemainingAttempts *int   `json:"remainingAttempts,omitempty"`
	RetryAfter        *int   `json:"retryAfter,omitempty"`
}

// APIErrorResponse is the error body returned by bearer-protected API routes
type APIErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSON writes an arbitrary JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	// Headers are already sent; an encode failure here is unrecoverable
	_ = json.NewEncoder(w).Encode(body)
}

// WriteLoginError writes a login-tier error body
func WriteLoginError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, LoginErrorResponse{Error: message})
}

// WriteInvalidPassword writes a 401 with the caller's remaining attempt budget
func WriteInvalidPassword(w http.ResponseWriter, remaining int) {
	WriteJSON(w, http.StatusUnauthorized, LoginErrorResponse{
		Error:             "Invalid password",
		RemainingAttempts: &remaining,
	})
}

// WriteRateLimited writes a 429 with a Retry-After header and retryAfter body field
func WriteRateLimited(w http.ResponseWriter, retryAfterSeconds int) {
	if retryAfterSeconds < 1 {
		retryAfterSeconds = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	WriteJSON(w, http.StatusTooManyRequests, LoginErrorResponse{
		Error:      "Too many login attempts. Please try again later.",
		RetryAfter: &retryAfterSeconds,
	})
}

// WriteAPIError writes a bearer-tier error body
func WriteAPIError(w http.ResponseWriter, statusCode int, errorMsg, details string) {
	WriteJSON(w, statusCode, APIErrorResponse{
		Success: false,
		Error:   errorMsg,
		Details: details,
	})
}

// WriteAPIUnauthorized writes a bearer-tier 401
func WriteAPIUnauthorized(w http.ResponseWriter, details string) {
	WriteAPIError(w, http.StatusUnauthorized, "Unauthorized", details)
}

// WriteServerMisconfigured writes the distinct 500 used when a required
// secret is absent server-side. Never attributed to the caller.
func WriteServerMisconfigured(w http.ResponseWriter) {
	WriteAPIError(w, http.StatusInternalServerError, "Server configuration error", "")
}
