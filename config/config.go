package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Config holds the project config values. All values come from the
// environment once, at startup; nothing else reads env vars.
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string

	SendGridAPIKey string
	FromName       string
	FromEmail      string
	AppBaseURL     string

	SweepSpec     string
	FollowUpDelay time.Duration
	MaxFollowUps  int
	ResetLocation *time.Location
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger, err := setLogger(os.Getenv("APP_ENV"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	loc := time.UTC
	if tz := os.Getenv("RESET_TIMEZONE"); tz != "" {
		if parsed, err := time.LoadLocation(tz); err == nil {
			loc = parsed
		} else {
			zap.S().Warnw("invalid RESET_TIMEZONE, falling back to UTC", "tz", tz)
		}
	}

	return &Config{
		URL:            os.Getenv("DB_URI"),
		DatabaseName:   os.Getenv("DB_NAME"),
		BaseURL:        os.Getenv("BASE_URL"),
		Port:           os.Getenv("PORT"),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		FromName:       envOrDefault("FROM_NAME", "MedLove Reminders"),
		FromEmail:      envOrDefault("FROM_EMAIL", "no-reply@medlove.app"),
		AppBaseURL:     envOrDefault("APP_BASE_URL", "https://med-love-reminder.vercel.app"),
		SweepSpec:      envOrDefault("SWEEP_SPEC", "*/5 * * * *"),
		FollowUpDelay:  envDuration("FOLLOWUP_DELAY", 15*time.Minute),
		MaxFollowUps:   envInt("MAX_FOLLOWUPS", 3),
		ResetLocation:  loc,
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		zap.S().Warnw("invalid duration env value, using default", "key", key, "value", v)
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		zap.S().Warnw("invalid integer env value, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
