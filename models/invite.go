package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Likelihood is how keen the visitor is on coming
type Likelihood string

// Supported likelihood values, mildest first
const (
	LikelihoodMild      Likelihood = "mild"
	LikelihoodMedium    Likelihood = "medium"
	LikelihoodHot       Likelihood = "hot"
	LikelihoodBigwayHot Likelihood = "bigway_hot"
)

// Likelihoods lists every accepted likelihood in display order
var Likelihoods = []Likelihood{LikelihoodMild, LikelihoodMedium, LikelihoodHot, LikelihoodBigwayHot}

// Valid reports whether l is one of the supported values
func (l Likelihood) Valid() bool {
	for _, v := range Likelihoods {
		if l == v {
			return true
		}
	}
	return false
}

// Soft reports whether l is a soft decline, which skips the rest of the wizard
func (l Likelihood) Soft() bool {
	return l == LikelihoodMild || l == LikelihoodMedium
}

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{7,}$`)

// PhoneShaped reports whether s loosely looks like a phone number. The empty
// string is not phone shaped; callers treat it as "not provided".
func PhoneShaped(s string) bool {
	return phonePattern.MatchString(s)
}

// Invite holds the structure for the invites collection in mongo
type Invite struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name" validate:"required"`
	Likelihood    Likelihood         `json:"likelihood" bson:"likelihood" validate:"required,likelihood"`
	Availability  string             `json:"availability,omitempty" bson:"availability,omitempty"`
	Activities    string             `json:"activities,omitempty" bson:"activities,omitempty"`
	ContactNumber string             `json:"contactNumber,omitempty" bson:"contactNumber,omitempty" validate:"omitempty,phone_shaped"`
	Timestamp     time.Time          `json:"timestamp" bson:"timestamp"`
}

// InviteSubmission is the request body accepted by POST /submit. A partial
// submission only carries name and likelihood.
type InviteSubmission struct {
	Name          string     `json:"name"`
	Likelihood    Likelihood `json:"likelihood"`
	Availability  string     `json:"availability,omitempty"`
	Activities    string     `json:"activities,omitempty"`
	ContactNumber string     `json:"contactNumber,omitempty"`
}

// Partial reports whether only the name and likelihood were provided
func (s InviteSubmission) Partial() bool {
	return s.Availability == "" && s.Activities == "" && s.ContactNumber == ""
}

// NewInvite builds a trimmed invite record from a submission, stamped with now
func NewInvite(s InviteSubmission, now time.Time) Invite {
	return Invite{
		Name:          strings.TrimSpace(s.Name),
		Likelihood:    Likelihood(strings.TrimSpace(string(s.Likelihood))),
		Availability:  strings.TrimSpace(s.Availability),
		Activities:    strings.TrimSpace(s.Activities),
		ContactNumber: strings.TrimSpace(s.ContactNumber),
		Timestamp:     now.UTC(),
	}
}

// InviteCreatedResponse is returned with 201 on a successful submission
type InviteCreatedResponse struct {
	Message string `json:"message"`
	Invite  Invite `json:"invite"`
}

// CredentialRequest is the body of POST /api/verify-credential
type CredentialRequest struct {
	Secret string `json:"secret"`
}
