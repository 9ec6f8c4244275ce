package models

// MessageResponse is the generic JSON body carrying a single message
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationResponse returns the itemized messages for a rejected submission
type ValidationResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// HealthCheckResponse is returned by the health endpoint
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
