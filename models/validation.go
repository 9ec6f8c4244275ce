package models

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// ValidationError collects the human readable messages for every field that
// failed the invite schema.
type ValidationError struct {
	Messages []string
}

func (v *ValidationError) Error() string {
	if len(v.Messages) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(v.Messages, "; ")
}

// Validate checks the invite against the collection schema. It returns a
// *ValidationError when any field is rejected.
func (i Invite) Validate() error {
	err := getValidator().Struct(i)
	if err == nil {
		return nil
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(ve))
	for _, fe := range ve {
		messages = append(messages, fieldMessage(fe))
	}
	return &ValidationError{Messages: messages}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "likelihood":
		return fmt.Sprintf("%v is not a supported likelihood", fe.Value())
	case "phone_shaped":
		return fmt.Sprintf("%v is not a valid phone number", fe.Value())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("likelihood", func(fl validator.FieldLevel) bool {
			return Likelihood(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("phone_shaped", func(fl validator.FieldLevel) bool {
			return PhoneShaped(fl.Field().String())
		})
	})
	return validate
}
