// Package docs RSVP API.
//
// Documentation of the RSVP API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/rsvp-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the health of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/verify-credential credential verifyCredential
// Checks the gate secret. No session or token is issued.
// responses:
//   200: messageResponse
//   400: messageResponse
//   401: messageResponse
//   500: messageResponse

// swagger:parameters verifyCredential
type verifyCredentialParamsWrapper struct {
	// in:body
	Body models.CredentialRequest
}

// A single human readable message.
// swagger:response messageResponse
type messageResponseWrapper struct {
	// in:body
	Body models.MessageResponse
}

// swagger:route POST /submit invite submitInvite
// Stores a full or partial invite submission.
// responses:
//   201: inviteCreatedResponse
//   400: validationResponse
//   500: messageResponse

// swagger:parameters submitInvite
type submitInviteParamsWrapper struct {
	// in:body
	Body models.InviteSubmission
}

// The stored invite along with the configured success message.
// swagger:response inviteCreatedResponse
type inviteCreatedResponseWrapper struct {
	// in:body
	Body models.InviteCreatedResponse
}

// Itemized reasons a submission was rejected.
// swagger:response validationResponse
type validationResponseWrapper struct {
	// in:body
	Body models.ValidationResponse
}
