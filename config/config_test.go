package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, "*/5 * * * *", conf.SweepSpec)
	assert.Equal(t, 15*time.Minute, conf.FollowUpDelay)
	assert.Equal(t, 3, conf.MaxFollowUps)
	assert.Equal(t, time.UTC, conf.ResetLocation)
}

func TestNewReadsReminderOverrides(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	os.Setenv("FOLLOWUP_DELAY", "5m")
	os.Setenv("MAX_FOLLOWUPS", "1")
	defer os.Unsetenv("FOLLOWUP_DELAY")
	defer os.Unsetenv("MAX_FOLLOWUPS")

	conf := New()
	assert.Equal(t, 5*time.Minute, conf.FollowUpDelay)
	assert.Equal(t, 1, conf.MaxFollowUps)
}

func TestNewIgnoresInvalidOverrides(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	os.Setenv("FOLLOWUP_DELAY", "not-a-duration")
	os.Setenv("RESET_TIMEZONE", "Mars/Olympus_Mons")
	defer os.Unsetenv("FOLLOWUP_DELAY")
	defer os.Unsetenv("RESET_TIMEZONE")

	conf := New()
	assert.Equal(t, 15*time.Minute, conf.FollowUpDelay)
	assert.Equal(t, time.UTC, conf.ResetLocation)
}

func TestErrorStatus(t *testing.T) {

	ErrorStatus("error it borked", http.StatusBadRequest, httptest.NewRecorder(), errors.New("bad request"))
	assert.True(t, true)
}

func TestSetLoggerSetsDevelopmentLogger(t *testing.T) {
	l, err := setLogger("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(1))
}

func TestSetLoggerSetsProductionLogger(t *testing.T) {
	l, err := setLogger("production")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(2))
}

func TestSetLoggerSetsLocalLogger(t *testing.T) {
	l, err := setLogger("local")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(0))
}
