package config

import (
	"go.uber.org/zap"
)

// setLogger builds the zap logger for the given APP_ENV. Development and
// local environments get a human-readable logger; anything else gets the
// production JSON logger.
func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "development":
		return zap.NewDevelopment()
	case "local":
		return zap.NewExample(), nil
	default:
		return zap.NewProduction()
	}
}
