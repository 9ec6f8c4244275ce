package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/rsvp-api/api"
	"github.com/linesmerrill/rsvp-api/config"
	"github.com/linesmerrill/rsvp-api/databases"
	"github.com/linesmerrill/rsvp-api/metrics"
	"github.com/linesmerrill/rsvp-api/models"
)

// InviteNotifier is told about every stored invite. It must not block.
type InviteNotifier interface {
	InviteSubmitted(invite models.Invite)
}

// Invite exported for testing purposes
type Invite struct {
	DB             databases.InviteDatabase
	Notifier       InviteNotifier
	SuccessMessage string
	Now            func() time.Time
}

// SubmitInviteHandler stores a full or partial invite submission
func (i Invite) SubmitInviteHandler(w http.ResponseWriter, r *http.Request) {
	// an empty body is an empty submission and fails schema validation below
	var sub models.InviteSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil && !errors.Is(err, io.EOF) {
		metrics.Submissions.WithLabelValues("unknown", "invalid").Inc()
		writeJSON(w, http.StatusBadRequest, models.ValidationResponse{
			Message: "Invalid request body",
			Errors:  []string{err.Error()},
		})
		return
	}
	kind := submissionKind(sub)

	now := time.Now
	if i.Now != nil {
		now = i.Now
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	invite, err := i.DB.InsertOne(ctx, models.NewInvite(sub, now()))
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			metrics.Submissions.WithLabelValues(kind, "invalid").Inc()
			zap.S().Infow("submission rejected", "requestId", api.RequestID(r.Context()), "errors", ve.Messages)
			writeJSON(w, http.StatusBadRequest, models.ValidationResponse{
				Message: "Validation failed",
				Errors:  ve.Messages,
			})
			return
		}
		metrics.Submissions.WithLabelValues(kind, "error").Inc()
		config.ErrorStatus("Error saving submission", http.StatusInternalServerError, w, err)
		return
	}

	metrics.Submissions.WithLabelValues(kind, "created").Inc()
	zap.S().Infow("invite stored",
		"requestId", api.RequestID(r.Context()),
		"invite", invite.ID.Hex(),
		"likelihood", invite.Likelihood,
		"kind", kind,
	)

	if i.Notifier != nil {
		i.Notifier.InviteSubmitted(*invite)
	}

	writeJSON(w, http.StatusCreated, models.InviteCreatedResponse{
		Message: i.SuccessMessage,
		Invite:  *invite,
	})
}

func submissionKind(sub models.InviteSubmission) string {
	if sub.Partial() {
		return "partial"
	}
	return "full"
}
