package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/haseab/retrace-frontend-sub001/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier checks a submitted admin password against the expected
// digest from configuration. The default scheme is hex-encoded SHA-256 with
// a constant-time comparison; values in bcrypt format ($2a$/$2b$/$2y$) are
// verified with bcrypt instead, as an operator upgrade path.
type CredentialVerifier struct {
	expectedHash string
}

// NewCredentialVerifier creates a verifier for the configured expected hash.
// An empty expectedHash is legal at construction; Verify fails closed with
// models.ErrNotConfigured so the handler can answer with a distinct 500.
func NewCredentialVerifier(expectedHash string) *CredentialVerifier {
	return &CredentialVerifier{expectedHash: expectedHash}
}

// Verify reports whether the provided password matches the expected digest.
// Returns models.ErrNotConfigured when no expected digest is set; that is a
// server error, not "password incorrect". Neither the password nor any
// digest is ever logged.
func (v *CredentialVerifier) Verify(password string) (bool, error) {
	if v.expectedHash == "" {
		return false, models.ErrNotConfigured
	}

	if strings.HasPrefix(v.expectedHash, "$2") {
		err := bcrypt.CompareHashAndPassword([]byte(v.expectedHash), []byte(password))
		return err == nil, nil
	}

	expected, err := hex.DecodeString(strings.ToLower(v.expectedHash))
	if err != nil {
		// A malformed hash is a deployment mistake, same bucket as unset
		return false, models.ErrNotConfigured
	}

	digest := sha256.Sum256([]byte(password))

	// ConstantTimeCompare handles the equal-length case; unequal length is
	// immediate inequality without branching on content
	if len(expected) != len(digest) {
		return false, nil
	}
	return subtle.ConstantTimeCompare(digest[:], expected) == 1, nil
}
