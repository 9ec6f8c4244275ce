package config

import (
	"fmt"

	"go.uber.org/zap"
)

// setLogger builds the zap logger for the given environment name
func setLogger(environment string) (*zap.Logger, error) {
	switch environment {
	case "local":
		return zap.NewExample(), nil
	case "development":
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("development logger: %w", err)
		}
		return l, nil
	default:
		l, err := zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("production logger: %w", err)
		}
		return l, nil
	}
}
