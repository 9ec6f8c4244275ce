package wizard

import (
	"strings"

	"github.com/linesmerrill/rsvp-api/models"
)

// Keys of the collected data map. They match the JSON field names of
// models.InviteSubmission.
const (
	FieldName          = "name"
	FieldLikelihood    = "likelihood"
	FieldAvailability  = "availability"
	FieldActivities    = "activities"
	FieldContactNumber = "contactNumber"
)

// StepError is a validation failure for the current step. Message is meant
// for the visitor.
type StepError struct {
	Field   string
	Message string
}

func (e *StepError) Error() string {
	return e.Field + ": " + e.Message
}

// Validator checks the trimmed input of one step. It returns nil when the
// input is acceptable.
type Validator func(value string) *StepError

// Step is one screen of the wizard
type Step struct {
	ID       string
	Field    string
	Prompt   string
	Options  []string
	Validate Validator
}

// DefaultSteps is the stock invite flow: name, likelihood, availability,
// activities, contact.
func DefaultSteps() []Step {
	options := make([]string, 0, len(models.Likelihoods))
	for _, l := range models.Likelihoods {
		options = append(options, string(l))
	}
	return []Step{
		{ID: "name", Field: FieldName, Prompt: "What's your name?", Validate: NameRequired},
		{ID: "likelihood", Field: FieldLikelihood, Prompt: "How likely are you to come?", Options: options, Validate: SelectionRequired},
		{ID: "availability", Field: FieldAvailability, Prompt: "When are you free?"},
		{ID: "activities", Field: FieldActivities, Prompt: "Anything you'd like to do?"},
		{ID: "contact", Field: FieldContactNumber, Prompt: "Phone number (optional)", Validate: OptionalPhone},
	}
}

// NameRequired rejects an empty name
func NameRequired(value string) *StepError {
	if strings.TrimSpace(value) == "" {
		return &StepError{Field: FieldName, Message: "Please enter your name."}
	}
	return nil
}

// SelectionRequired rejects a missing or unknown likelihood
func SelectionRequired(value string) *StepError {
	if !models.Likelihood(strings.TrimSpace(value)).Valid() {
		return &StepError{Field: FieldLikelihood, Message: "Please select an option."}
	}
	return nil
}

// OptionalPhone accepts an empty value or a loosely phone shaped one
func OptionalPhone(value string) *StepError {
	v := strings.TrimSpace(value)
	if v != "" && !models.PhoneShaped(v) {
		return &StepError{Field: FieldContactNumber, Message: "Please enter a valid phone number format."}
	}
	return nil
}
