package handlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/rsvp-api/api"
	"github.com/linesmerrill/rsvp-api/config"
	"github.com/linesmerrill/rsvp-api/metrics"
	"github.com/linesmerrill/rsvp-api/models"
)

// Credential checks the gate secret. It issues no session or token: a match
// only lets the client reveal the wizard.
type Credential struct {
	Secret string
}

// VerifyCredentialHandler compares the posted secret with the configured one
func (c Credential) VerifyCredentialHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.CredentialChecks.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Invalid request body"})
		return
	}
	if req.Secret == "" {
		metrics.CredentialChecks.WithLabelValues("empty").Inc()
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Password cannot be empty."})
		return
	}
	if c.Secret == "" {
		metrics.CredentialChecks.WithLabelValues("misconfigured").Inc()
		config.ErrorStatus("Server configuration error", http.StatusInternalServerError, w, errMissingGateSecret)
		return
	}

	if !secretMatches(c.Secret, req.Secret) {
		metrics.CredentialChecks.WithLabelValues("mismatch").Inc()
		zap.S().Infow("gate credential rejected", "requestId", api.RequestID(r.Context()))
		writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Incorrect password."})
		return
	}

	metrics.CredentialChecks.WithLabelValues("match").Inc()
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Password accepted."})
}

// secretMatches compares in constant time. A configured bcrypt hash is
// checked with bcrypt instead.
func secretMatches(configured, candidate string) bool {
	if isBcryptHash(configured) {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(candidate)) == nil
	}
	want := sha256.Sum256([]byte(configured))
	got := sha256.Sum256([]byte(candidate))
	return subtle.ConstantTimeCompare(want[:], got[:]) == 1
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
