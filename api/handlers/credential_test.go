package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/rsvp-api/metrics"
	"github.com/linesmerrill/rsvp-api/models"
)

func verify(c Credential, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/verify-credential", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(c.VerifyCredentialHandler).ServeHTTP(rr, req)
	return rr
}

func message(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Message
}

func TestCredential_VerifyCredentialHandler(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		body   string
		status int
	}{
		{"match", "letmein", `{"secret":"letmein"}`, http.StatusOK},
		{"mismatch", "letmein", `{"secret":"nope"}`, http.StatusUnauthorized},
		{"empty secret", "letmein", `{"secret":""}`, http.StatusBadRequest},
		{"missing secret", "letmein", `{}`, http.StatusBadRequest},
		{"bad json", "letmein", `not json`, http.StatusBadRequest},
		{"server misconfigured", "", `{"secret":"letmein"}`, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := verify(Credential{Secret: tt.secret}, tt.body)

			assert.Equal(t, tt.status, rr.Code)
			assert.NotEmpty(t, message(t, rr))
		})
	}
}

func TestCredential_CheckResultLabels(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		result string
	}{
		{"bad json", `not json`, "invalid"},
		{"empty body", ``, "invalid"},
		{"empty secret", `{"secret":""}`, "empty"},
		{"mismatch", `{"secret":"nope"}`, "mismatch"},
		{"match", `{"secret":"letmein"}`, "match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invalid := testutil.ToFloat64(metrics.CredentialChecks.WithLabelValues("invalid"))
			empty := testutil.ToFloat64(metrics.CredentialChecks.WithLabelValues("empty"))
			want := testutil.ToFloat64(metrics.CredentialChecks.WithLabelValues(tt.result))

			verify(Credential{Secret: "letmein"}, tt.body)

			assert.Equal(t, want+1, testutil.ToFloat64(metrics.CredentialChecks.WithLabelValues(tt.result)))
			if tt.result != "empty" {
				assert.Equal(t, empty, testutil.ToFloat64(metrics.CredentialChecks.WithLabelValues("empty")))
			}
			if tt.result != "invalid" {
				assert.Equal(t, invalid, testutil.ToFloat64(metrics.CredentialChecks.WithLabelValues("invalid")))
			}
		})
	}
}

func TestCredential_MisconfiguredDoesNotLeak(t *testing.T) {
	rr := verify(Credential{}, `{"secret":"letmein"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "GATE_SECRET")
	assert.Equal(t, "Server configuration error", message(t, rr))
}

func TestCredential_RetriesAreUnlimited(t *testing.T) {
	c := Credential{Secret: "letmein"}
	for n := 0; n < 20; n++ {
		assert.Equal(t, http.StatusUnauthorized, verify(c, `{"secret":"nope"}`).Code)
	}
	assert.Equal(t, http.StatusOK, verify(c, `{"secret":"letmein"}`).Code)
}

func TestSecretMatchesBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, secretMatches(string(hash), "letmein"))
	assert.False(t, secretMatches(string(hash), "nope"))
}

func TestSecretMatchesPlain(t *testing.T) {
	assert.True(t, secretMatches("letmein", "letmein"))
	assert.False(t, secretMatches("letmein", "letmein "))
	assert.False(t, secretMatches("letmein", ""))
}
