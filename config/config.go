package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL          string        `env:"MONGODB_URI,required,notEmpty"`
	DatabaseName string        `env:"DB_NAME" envDefault:"rsvp"`
	GateSecret   string        `env:"GATE_SECRET"`
	FrontendURL  string        `env:"FRONTEND_URL" envDefault:"*"`
	Port         string        `env:"PORT" envDefault:"3000"`
	Env          string        `env:"ENV" envDefault:"production"`
	Timeout      time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	SuccessMessage string `env:"SUBMIT_SUCCESS_MESSAGE" envDefault:"Submission successful!"`
	DigestSchedule string `env:"DIGEST_SCHEDULE"`

	Mail Mail
}

// Mail holds the outbound mail settings. Notification is disabled unless both
// the API key and the recipient are set.
type Mail struct {
	APIKey string `env:"SENDGRID_API_KEY"`
	To     string `env:"NOTIFY_EMAIL_TO"`
	From   string `env:"NOTIFY_EMAIL_FROM" envDefault:"no-reply@rsvp.local"`
}

// Enabled reports whether enough settings are present to send mail
func (m Mail) Enabled() bool {
	return m.APIKey != "" && m.To != ""
}

// New parses the environment and installs the global zap logger. It fails when
// a required value such as MONGODB_URI is missing.
func New() (*Config, error) {
	conf := &Config{}
	if err := env.Parse(conf); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	//setup zap logger and replace default logger
	logger, err := setLogger(conf.Env)
	if err != nil {
		return nil, err
	}
	_ = zap.ReplaceGlobals(logger)

	return conf, nil
}

// errorResponse mirrors models.MessageResponse; config cannot import models.
type errorResponse struct {
	Message string `json:"message"`
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err. The err is logged but never written to the
// caller.
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().Errorw(message, "status", httpStatusCode, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{Message: message})
}
